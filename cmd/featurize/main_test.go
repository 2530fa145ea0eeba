package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survfeat/pkg/data"
)

const trainCSV = "../../pkg/pipeline/testdata/train.csv"
const testCSV = "../../pkg/pipeline/testdata/test.csv"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "survfeat.prom")
	_, err := execute(t, "run",
		"--train", trainCSV, "--test", testCSV,
		"--out-dir", dir, "--preset", "rich", "--gzip",
		"--log-level", "error", "--metrics-file", metricsFile)
	require.NoError(t, err)

	train, err := data.ReadFile(filepath.Join(dir, "train_features.csv.gz"), data.Schema{})
	require.NoError(t, err)
	assert.Equal(t, 25, train.Len())
	test, err := data.ReadFile(filepath.Join(dir, "test_features.csv.gz"), data.Schema{})
	require.NoError(t, err)
	assert.Equal(t, 5, test.Len())
	assert.False(t, test.Has("Name"))

	b, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "survfeat_rows_total")
}

func TestRun_Formats(t *testing.T) {
	for _, format := range []string{data.FormatJSONL, data.FormatArrow} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			_, err := execute(t, "run", "--train", trainCSV, "--out-dir", dir, "--format", format, "--log-level", "error")
			require.NoError(t, err)
			info, err := os.Stat(filepath.Join(dir, "train_features."+format))
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	_, err := execute(t, "run", "--train", trainCSV, "--out-dir", t.TempDir(), "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestRun_Preview(t *testing.T) {
	out, err := execute(t, "run", "--train", trainCSV, "--out-dir", t.TempDir(), "--preview", "2", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "FamilySize")
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config", "--preset", "rich")
	require.NoError(t, err)
	assert.Contains(t, out, "preset: rich")
	assert.Contains(t, out, "fill_label: UnknownDeck")

	_, err = execute(t, "config", "--preset", "exotic")
	assert.Error(t, err)
}

func TestPlotCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fare.png")
	out, err := execute(t, "plot", "--train", trainCSV, "--column", "Fare", "--out", path, "--preset", "rich")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Fare histogram")
	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = execute(t, "plot", "--train", trainCSV, "--column", "Title", "--out", path)
	assert.ErrorContains(t, err, "no numeric values")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "featurize v"+version)
}
