// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = ".coreiq.yml"

// EnvPrefix namespaces environment overrides, e.g. COREIQ_WEIGHTS_FRICTION.
const EnvPrefix = "COREIQ"

// Config represents the .coreiq.yml configuration file.
type Config struct {
	ActiveFunctions    []string        `mapstructure:"active_functions"`
	InScopeCount       int             `mapstructure:"in_scope_count"`
	UseAssessmentScope bool            `mapstructure:"use_assessment_scope"`
	Weights            WeightsConfig   `mapstructure:"weights"`
	Thresholds         ThresholdConfig `mapstructure:"thresholds"`
	Output             OutputConfig    `mapstructure:"output"`
	FailBelow          string          `mapstructure:"fail_below"`
	Batch              BatchConfig     `mapstructure:"batch"`
}

// WeightsConfig holds the per-dimension weights of a function score.
type WeightsConfig struct {
	Functionality   float64 `mapstructure:"functionality"`
	Friction        float64 `mapstructure:"friction"`
	DataFitness     float64 `mapstructure:"data_fitness"`
	ChangeReadiness float64 `mapstructure:"change_readiness"`
}

// ThresholdConfig holds the inclusive lower bound of each band.
type ThresholdConfig struct {
	Prime     float64 `mapstructure:"prime"`
	Strong    float64 `mapstructure:"strong"`
	Competent float64 `mapstructure:"competent"`
}

// OutputConfig controls report output settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// BatchConfig controls multi-document scoring.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	w := scorer.DefaultWeights()
	t := scorer.DefaultThresholds()

	v.SetDefault("active_functions", []string{})
	v.SetDefault("in_scope_count", assessment.DefaultInScopeCount)
	v.SetDefault("use_assessment_scope", false)
	v.SetDefault("weights.functionality", w[assessment.Functionality])
	v.SetDefault("weights.friction", w[assessment.Friction])
	v.SetDefault("weights.data_fitness", w[assessment.DataFitness])
	v.SetDefault("weights.change_readiness", w[assessment.ChangeReadiness])
	v.SetDefault("thresholds.prime", t.Prime)
	v.SetDefault("thresholds.strong", t.Strong)
	v.SetDefault("thresholds.competent", t.Competent)
	v.SetDefault("output.format", "terminal")
	v.SetDefault("fail_below", "")
	v.SetDefault("batch.workers", 4)
}

// LoadConfig reads configuration from defaults, a .env file, the config file
// and COREIQ_* environment variables, in increasing precedence.
// If path is empty, .coreiq.yml in the current directory is used when present.
// If an explicitly specified config file is not found, an error is returned.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cli: reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	useDefault := path == ""
	if useDefault {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !(useDefault && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("cli: reading config %s: %w", path, err)
		}
		slog.Debug("no config file, using defaults", "path", path)
	} else {
		slog.Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cli: invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with the documented .coreiq.yml defaults.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg) // defaults always decode
	return cfg
}

// Validate checks every setting that would otherwise surface later as a
// scoring or rendering failure.
func (c *Config) Validate() error {
	var errs []error
	if err := c.ScoringWeights().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.BandThresholds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := assessment.ParseActiveSet(c.ActiveFunctions); err != nil {
		errs = append(errs, err)
	}
	if c.InScopeCount < 0 {
		errs = append(errs, fmt.Errorf("in_scope_count must not be negative, got %d", c.InScopeCount))
	}
	switch c.Output.Format {
	case "terminal", "json", "markdown":
	default:
		errs = append(errs, fmt.Errorf("invalid output format %q: must be terminal, json or markdown", c.Output.Format))
	}
	if _, _, err := c.FailBand(); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers))
	}
	return errors.Join(errs...)
}

// ScoringWeights returns the configured weights indexed by dimension.
func (c *Config) ScoringWeights() scorer.Weights {
	var w scorer.Weights
	w[assessment.Functionality] = c.Weights.Functionality
	w[assessment.Friction] = c.Weights.Friction
	w[assessment.DataFitness] = c.Weights.DataFitness
	w[assessment.ChangeReadiness] = c.Weights.ChangeReadiness
	return w
}

// BandThresholds returns the configured band bounds.
func (c *Config) BandThresholds() scorer.Thresholds {
	return scorer.Thresholds{
		Prime:     c.Thresholds.Prime,
		Strong:    c.Thresholds.Strong,
		Competent: c.Thresholds.Competent,
	}
}

// FailBand reports the band below which the score command fails.
// The boolean is false when fail_below is unset.
func (c *Config) FailBand() (scorer.Band, bool, error) {
	if c.FailBelow == "" {
		return scorer.BandBaseline, false, nil
	}
	b, err := scorer.ParseBand(c.FailBelow)
	if err != nil {
		return scorer.BandBaseline, false, fmt.Errorf("fail_below: %w", err)
	}
	return b, true, nil
}

// ActiveSet picks the business functions to score for an assessment:
// an explicit active_functions list wins, then the assessment's own scope
// when use_assessment_scope is set, then the first in_scope_count functions.
func (c *Config) ActiveSet(a *assessment.Assessment) assessment.ActiveSet {
	if len(c.ActiveFunctions) > 0 {
		set, err := assessment.ParseActiveSet(c.ActiveFunctions)
		if err == nil {
			return set
		}
		slog.Warn("ignoring invalid active_functions", "error", err)
	}
	if c.UseAssessmentScope && a != nil {
		return assessment.ScopeActiveSet(a)
	}
	return assessment.FirstN(c.InScopeCount)
}

// NewCalculator builds a calculator from the configured weights and
// thresholds for the given active set.
func (c *Config) NewCalculator(active assessment.ActiveSet) (*scorer.Calculator, error) {
	calc, err := scorer.NewCalculator(
		scorer.WithWeights(c.ScoringWeights()),
		scorer.WithThresholds(c.BandThresholds()),
		scorer.WithActiveFunctions(active),
	)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return calc, nil
}
