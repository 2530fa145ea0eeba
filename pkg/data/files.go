package data

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"survfeat/pkg/table"
)

// Open opens path for reading, decompressing *.gz files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReader{Reader: zr, f: f}, nil
}

// Create creates path for writing, compressing *.gz files.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return &gzipWriter{Writer: gzip.NewWriter(f), f: f}, nil
}

type gzipReader struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipReader) Close() error {
	return multierr.Append(g.Reader.Close(), g.f.Close())
}

type gzipWriter struct {
	*gzip.Writer
	f *os.File
}

func (g *gzipWriter) Close() error {
	return multierr.Append(g.Writer.Close(), g.f.Close())
}

// ReadFile reads a CSV file, gzip aware.
func ReadFile(path string, s Schema) (t *table.Table, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, r.Close()) }()
	return ReadCSV(r, s)
}
