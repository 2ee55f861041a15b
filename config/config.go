// Package config loads salesdesk settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/salesdesk/logger"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	Logging logger.Config `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
	// Metrics adds metrics to lists, keyed by list name or page path.
	Metrics map[string][]MetricConfig `yaml:"metrics"`
}

// UIConfig configures the interactive dashboard.
type UIConfig struct {
	ToastTimeout Duration `yaml:"toast_timeout"`
	ReportDelay  Duration `yaml:"report_delay"`
	StartPage    string   `yaml:"start_page"`
}

// MetricConfig declares one extra metric. Where is a CEL expression over the
// list's dimensions (strings) and measures (doubles); it is required by the
// default count_where reducer. sum, avg, max and min read Measure; ratio and
// percent divide Measure by Denominator.
type MetricConfig struct {
	Name        string `yaml:"name"`
	Scope       string `yaml:"scope"`   // full, filtered
	Reducer     string `yaml:"reducer"` // count_where (default), count, sum, avg, max, min, ratio, percent
	Measure     string `yaml:"measure,omitempty"`
	Denominator string `yaml:"denominator,omitempty"`
	Where       string `yaml:"where,omitempty"`
}

// Duration is a time.Duration that reads and writes as "4s", "1800ms".
type Duration time.Duration

// D returns d as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: logger.Config{
			Level:       "info",
			OutputPaths: []string{"stderr"},
		},
		UI: UIConfig{
			ToastTimeout: Duration(4 * time.Second),
			ReportDelay:  Duration(1800 * time.Millisecond),
			StartPage:    "/",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks durations, scopes and metric declarations.
func (c *Config) Validate() error {
	if c.UI.ToastTimeout <= 0 {
		return fmt.Errorf("%w: ui.toast_timeout must be positive", ErrInvalid)
	}
	if c.UI.ReportDelay < 0 {
		return fmt.Errorf("%w: ui.report_delay must not be negative", ErrInvalid)
	}
	for page, metrics := range c.Metrics {
		seen := make(map[string]bool, len(metrics))
		for i, m := range metrics {
			if m.Name == "" {
				return fmt.Errorf("%w: metrics[%s][%d]: name is required", ErrInvalid, page, i)
			}
			if seen[m.Name] {
				return fmt.Errorf("%w: metrics[%s]: duplicate metric %q", ErrInvalid, page, m.Name)
			}
			seen[m.Name] = true
			if err := m.validate(); err != nil {
				return fmt.Errorf("%w: metric %q: %v", ErrInvalid, m.Name, err)
			}
		}
	}
	return nil
}

func (m MetricConfig) validate() error {
	switch m.Scope {
	case "", "full", "filtered":
	default:
		return fmt.Errorf("scope %q (valid: full, filtered)", m.Scope)
	}

	switch m.Reducer {
	case "", "count_where":
		if m.Where == "" {
			return errors.New("where is required")
		}
	case "count":
	case "sum", "avg", "max", "min":
		if m.Measure == "" {
			return fmt.Errorf("%s needs a measure", m.Reducer)
		}
	case "ratio", "percent":
		if m.Measure == "" || m.Denominator == "" {
			return fmt.Errorf("%s needs a measure and a denominator", m.Reducer)
		}
	default:
		return fmt.Errorf("reducer %q (valid: count_where, count, sum, avg, max, min, ratio, percent)", m.Reducer)
	}
	return nil
}
