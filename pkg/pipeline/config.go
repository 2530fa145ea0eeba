package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
	yamlv3 "gopkg.in/yaml.v3"

	"survfeat/pkg/dataprep"
)

// Preset names.
const (
	PresetBase = "base"
	PresetRich = "rich"
)

// Switch values for optional stages.
const (
	EmbarkedMode         = "mode"
	InteractionSexPclass = "sex_pclass"
	Off                  = "none"
)

type AgeConfig struct {
	Policy    string `koanf:"policy" yaml:"policy"`       // learned|fixed
	Reference string `koanf:"reference" yaml:"reference"` // base|rich table, fixed policy only
}

type FamilyConfig struct {
	Buckets dataprep.Buckets `koanf:"buckets" yaml:"buckets"`
}

type TicketConfig struct {
	AllowedPrefixes []string `koanf:"allowed_prefixes" yaml:"allowed_prefixes,omitempty"`
}

type NameConfig struct {
	RareTitles []string `koanf:"rare_titles" yaml:"rare_titles,omitempty"`
}

type DeckConfig struct {
	Model     string `koanf:"model" yaml:"model"` // tree|forest
	MaxDepth  int    `koanf:"max_depth" yaml:"max_depth"`
	Trees     int    `koanf:"trees" yaml:"trees"`
	Seed      int64  `koanf:"seed" yaml:"seed"`
	FillLabel string `koanf:"fill_label" yaml:"fill_label,omitempty"`
}

type BinConfig struct {
	Quantiles []dataprep.QuantileRule `koanf:"quantiles" yaml:"quantiles,omitempty"`
	Buckets   []dataprep.BucketRule   `koanf:"buckets" yaml:"buckets,omitempty"`
}

// Config names every difference between the base and rich pipelines.
type Config struct {
	Preset      string                `koanf:"preset" yaml:"preset"`
	Age         AgeConfig             `koanf:"age" yaml:"age"`
	Family      FamilyConfig          `koanf:"family" yaml:"family"`
	Ticket      TicketConfig          `koanf:"ticket" yaml:"ticket"`
	Name        NameConfig            `koanf:"name" yaml:"name"`
	Deck        DeckConfig            `koanf:"deck" yaml:"deck"`
	Embarked    string                `koanf:"embarked" yaml:"embarked"`       // mode|none
	Interaction string                `koanf:"interaction" yaml:"interaction"` // sex_pclass|none
	Bins        BinConfig             `koanf:"bins" yaml:"bins"`
	Encoding    []dataprep.EncodeRule `koanf:"encoding" yaml:"encoding,omitempty"`
	Drop        []string              `koanf:"drop" yaml:"drop"`
}

// Preset returns the full configuration of a named preset. Both presets end
// with an encoder, so every output column is numeric.
func Preset(name string) (Config, error) {
	switch name {
	case PresetBase, "":
		return Config{
			Preset:      PresetBase,
			Age:         AgeConfig{Policy: string(dataprep.AgeLearned), Reference: PresetBase},
			Family:      FamilyConfig{Buckets: dataprep.FamilySizeBase},
			Deck:        DeckConfig{Model: dataprep.DeckTree, MaxDepth: 4, Trees: 100, Seed: 42},
			Embarked:    Off,
			Interaction: Off,
			Encoding: encoding(
				dataprep.ColSex, dataprep.ColEmbarked, dataprep.ColTitle, dataprep.ColTicketPrefix,
				dataprep.ColDeck, dataprep.ColFamilySizeCategory,
			),
			Drop: append([]string(nil), DefaultDrop...),
		}, nil
	case PresetRich:
		return Config{
			Preset:      PresetRich,
			Age:         AgeConfig{Policy: string(dataprep.AgeLearned), Reference: PresetRich},
			Family:      FamilyConfig{Buckets: dataprep.FamilySizeRich},
			Ticket:      TicketConfig{AllowedPrefixes: []string{"PC", "CA"}},
			Name:        NameConfig{RareTitles: append([]string(nil), dataprep.RareTitles...)},
			Deck:        DeckConfig{Model: dataprep.DeckForest, MaxDepth: 4, Trees: 100, Seed: 42, FillLabel: dataprep.SentinelUnknownDeck},
			Embarked:    EmbarkedMode,
			Interaction: InteractionSexPclass,
			Bins: BinConfig{
				Quantiles: []dataprep.QuantileRule{
					{Source: dataprep.ColFare, Target: dataprep.ColFareBin, Bins: 5},
					{Source: dataprep.ColAge, Target: dataprep.ColAgeBin, Bins: 5},
				},
				Buckets: []dataprep.BucketRule{
					{Source: dataprep.ColTicketGroupSize, Target: dataprep.ColTicketGroupSizeBin, Buckets: dataprep.GroupSizeRich},
				},
			},
			Encoding: encoding(
				dataprep.ColSex, dataprep.ColEmbarked, dataprep.ColTitle, dataprep.ColTicketPrefix,
				dataprep.ColDeck, dataprep.ColFamilySizeCategory, dataprep.ColTicketGroupSizeBin,
				dataprep.ColSexPclass,
			),
			Drop:     append([]string(nil), DefaultDrop...),
		}, nil
	default:
		return Config{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
}

// encoding one-hot encodes the categorical columns and label encodes Surname,
// whose vocabulary is too large for one column per value.
func encoding(oneHot ...string) []dataprep.EncodeRule {
	var rules []dataprep.EncodeRule
	for _, c := range oneHot {
		rules = append(rules, dataprep.EncodeRule{Column: c, Method: dataprep.OneHot})
	}
	return append(rules, dataprep.EncodeRule{Column: dataprep.ColSurname, Method: dataprep.Label})
}

// LoadConfig merges YAML (if present) with env-vars (prefix `SURVFEAT_`,
// `__` separates nested keys: SURVFEAT_DECK__MODEL=forest). A non-empty
// preset overrides the loaded one. Unset fields are filled from the preset.
func LoadConfig(path, preset string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("SURVFEAT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SURVFEAT_")), "__", ".", -1)
	}), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	if preset != "" {
		cfg.Preset = preset
	}
	if err := applyDefaults(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyDefaults fills every zero field from the named preset.
func applyDefaults(c *Config) error {
	p, err := Preset(c.Preset)
	if err != nil {
		return err
	}
	c.Preset = p.Preset
	if c.Age.Policy == "" {
		c.Age.Policy = p.Age.Policy
	}
	if c.Age.Reference == "" {
		c.Age.Reference = p.Age.Reference
	}
	if c.Family.Buckets == nil {
		c.Family.Buckets = p.Family.Buckets
	}
	if c.Ticket.AllowedPrefixes == nil {
		c.Ticket.AllowedPrefixes = p.Ticket.AllowedPrefixes
	}
	if c.Name.RareTitles == nil {
		c.Name.RareTitles = p.Name.RareTitles
	}
	if c.Deck.Model == "" {
		c.Deck.Model = p.Deck.Model
	}
	if c.Deck.MaxDepth == 0 {
		c.Deck.MaxDepth = p.Deck.MaxDepth
	}
	if c.Deck.Trees == 0 {
		c.Deck.Trees = p.Deck.Trees
	}
	if c.Deck.Seed == 0 {
		c.Deck.Seed = p.Deck.Seed
	}
	if c.Deck.FillLabel == "" {
		c.Deck.FillLabel = p.Deck.FillLabel
	}
	if c.Embarked == "" {
		c.Embarked = p.Embarked
	}
	if c.Interaction == "" {
		c.Interaction = p.Interaction
	}
	if c.Bins.Quantiles == nil {
		c.Bins.Quantiles = p.Bins.Quantiles
	}
	if c.Bins.Buckets == nil {
		c.Bins.Buckets = p.Bins.Buckets
	}
	if c.Encoding == nil {
		c.Encoding = p.Encoding
	}
	if c.Drop == nil {
		c.Drop = p.Drop
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	switch dataprep.AgePolicy(c.Age.Policy) {
	case dataprep.AgeLearned, dataprep.AgeFixed:
	default:
		errs = append(errs, fmt.Errorf("age.policy %q: want learned or fixed", c.Age.Policy))
	}
	if _, ok := referenceAges[c.Age.Reference]; !ok {
		errs = append(errs, fmt.Errorf("age.reference %q: want base or rich", c.Age.Reference))
	}
	if len(c.Family.Buckets) > 0 {
		if err := c.Family.Buckets.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("family.buckets: %w", err))
		}
	}
	if c.Deck.Model != dataprep.DeckTree && c.Deck.Model != dataprep.DeckForest {
		errs = append(errs, fmt.Errorf("deck.model %q: want tree or forest", c.Deck.Model))
	}
	if c.Deck.MaxDepth < 1 || c.Deck.Trees < 1 {
		errs = append(errs, errors.New("deck.max_depth and deck.trees must be positive"))
	}
	if c.Embarked != EmbarkedMode && c.Embarked != Off {
		errs = append(errs, fmt.Errorf("embarked %q: want mode or none", c.Embarked))
	}
	if c.Interaction != InteractionSexPclass && c.Interaction != Off {
		errs = append(errs, fmt.Errorf("interaction %q: want sex_pclass or none", c.Interaction))
	}
	for _, r := range c.Bins.Quantiles {
		if r.Source == "" || r.Target == "" || r.Bins < 1 {
			errs = append(errs, fmt.Errorf("bins.quantiles: invalid rule %+v", r))
		}
	}
	for _, r := range c.Bins.Buckets {
		if err := r.Buckets.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("bins.buckets %s: %w", r.Source, err))
		}
	}
	for _, r := range c.Encoding {
		if r.Method != dataprep.OneHot && r.Method != dataprep.Label {
			errs = append(errs, fmt.Errorf("encoding %s: method %q: want onehot or label", r.Column, r.Method))
		}
	}
	return multierr.Combine(errs...)
}

// YAML renders the effective configuration.
func (c Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}

var referenceAges = map[string]map[dataprep.AgeKey]float64{
	PresetBase: dataprep.BaseReferenceAges,
	PresetRich: dataprep.RichReferenceAges,
}

// Build validates cfg and assembles its stages in the fixed order
// Fare, Age, Embarked, Family, Ticket, Name, Deck, Interaction, Binner, Encoder.
// Optional stages are left out when disabled.
func Build(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := New(nil, append([]Option{WithDrop(cfg.Drop...)}, opts...)...)

	age := dataprep.NewAgeImputer()
	age.Policy = dataprep.AgePolicy(cfg.Age.Policy)
	age.Reference = referenceAges[cfg.Age.Reference]

	deck := dataprep.NewDeckPredictor()
	deck.Model = cfg.Deck.Model
	deck.MaxDepth = cfg.Deck.MaxDepth
	deck.Trees = cfg.Deck.Trees
	deck.Seed = cfg.Deck.Seed
	deck.FillLabel = cfg.Deck.FillLabel
	deck.Logger = p.log.Named("deck")

	stages := []Stage{dataprep.NewFareImputer(), age}
	if cfg.Embarked == EmbarkedMode {
		stages = append(stages, dataprep.NewEmbarkedImputer())
	}
	stages = append(stages,
		dataprep.NewFamilySizeDeriver(cfg.Family.Buckets),
		dataprep.NewTicketFeatureDeriver(cfg.Ticket.AllowedPrefixes),
		dataprep.NewNameFeatureDeriver(cfg.Name.RareTitles),
		deck,
	)
	if cfg.Interaction == InteractionSexPclass {
		stages = append(stages, dataprep.NewInteractionDeriver())
	}
	if len(cfg.Bins.Quantiles) > 0 || len(cfg.Bins.Buckets) > 0 {
		stages = append(stages, dataprep.NewBinner(cfg.Bins.Quantiles, cfg.Bins.Buckets))
	}
	if len(cfg.Encoding) > 0 {
		stages = append(stages, dataprep.NewEncoder(cfg.Encoding))
	}
	p.stages = stages
	return p, nil
}
