package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	frame "github.com/mweidwork/training-frames"
	"github.com/mweidwork/training-frames/agg"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nesting levels: FRAMEAGG_DISPLAY__MAX_ROWS sets display.max_rows.
const EnvPrefix = "FRAMEAGG_"

// Config is the frameagg configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Display   DisplayConfig   `koanf:"display"`
	Input     InputConfig     `koanf:"input"`
	Parallel  ParallelConfig  `koanf:"parallel"`
	Aggregate AggregateConfig `koanf:"aggregate"`
}

type LogConfig struct {
	Mode  string `koanf:"mode"` // dev | prod
	Level string `koanf:"level"`
}

type DisplayConfig struct {
	MaxRows        int    `koanf:"max_rows"`
	MaxCols        int    `koanf:"max_cols"`
	FloatPrecision int    `koanf:"float_precision"`
	TableStyle     string `koanf:"table_style"`
}

type InputConfig struct {
	Columns []string `koanf:"columns"`
	MaxRows int      `koanf:"max_rows"` // 0 = all rows
}

type ParallelConfig struct {
	Enabled    bool `koanf:"enabled"`
	MinRows    int  `koanf:"min_rows"`
	MaxWorkers int  `koanf:"max_workers"` // 0 = GOMAXPROCS
}

type AggregateConfig struct {
	Ops []string `koanf:"ops"`
}

func (c *Config) Validate() error {
	if c.Log.Mode != "dev" && c.Log.Mode != "prod" {
		return fmt.Errorf("invalid log.mode %q (must be dev or prod)", c.Log.Mode)
	}

	if c.Display.MaxRows < 0 {
		return fmt.Errorf("display.max_rows must be >= 0")
	}
	if c.Display.MaxCols < 0 {
		return fmt.Errorf("display.max_cols must be >= 0")
	}
	if c.Display.FloatPrecision < 0 {
		return fmt.Errorf("display.float_precision must be >= 0")
	}
	if !frame.IsTableStyle(c.Display.TableStyle) {
		return fmt.Errorf("unsupported display.table_style %q", c.Display.TableStyle)
	}

	if c.Input.MaxRows < 0 {
		return fmt.Errorf("input.max_rows must be >= 0")
	}
	for _, col := range c.Input.Columns {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("input.columns contains an empty name")
		}
	}

	if c.Parallel.MinRows < 0 {
		return fmt.Errorf("parallel.min_rows must be >= 0")
	}
	if c.Parallel.MaxWorkers < 0 {
		return fmt.Errorf("parallel.max_workers must be >= 0")
	}

	if len(c.Aggregate.Ops) == 0 {
		return fmt.Errorf("aggregate.ops must name at least one reduction")
	}
	for _, op := range c.Aggregate.Ops {
		if !agg.ValidOp(op) {
			return fmt.Errorf("unknown reduction %q in aggregate.ops", op)
		}
	}

	return nil
}

// FrameDisplay returns the engine display settings this config selects,
// starting from the engine defaults.
func (c *Config) FrameDisplay() frame.DisplayConfig {
	d := frame.DefaultDisplayConfig()
	d.MaxRows = c.Display.MaxRows
	d.MaxCols = c.Display.MaxCols
	d.FloatPrecision = c.Display.FloatPrecision
	d.TableStyle = c.Display.TableStyle
	return d
}

// FrameParallel returns the engine parallel settings for Parquet reads.
func (c *Config) FrameParallel() *frame.ParallelConfig {
	return &frame.ParallelConfig{
		MinRowsForParallel: c.Parallel.MinRows,
		MaxWorkers:         c.Parallel.MaxWorkers,
		Enabled:            c.Parallel.Enabled,
	}
}

// ParquetOptions returns the read options for the input file.
func (c *Config) ParquetOptions() frame.ParquetReadOptions {
	return frame.ParquetReadOptions{Columns: c.Input.Columns, MaxRows: c.Input.MaxRows}
}

// Load parses config from defaults, an optional YAML file and the
// environment, in that order, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	display := frame.DefaultDisplayConfig()
	parallel := frame.DefaultParallelConfig()
	defaults := map[string]interface{}{
		"log.mode":                "dev",
		"log.level":               "info",
		"display.max_rows":        display.MaxRows,
		"display.max_cols":        display.MaxCols,
		"display.float_precision": display.FloatPrecision,
		"display.table_style":     display.TableStyle,
		"input.columns":           []string{},
		"input.max_rows":          0,
		"parallel.enabled":        parallel.Enabled,
		"parallel.min_rows":       parallel.MinRowsForParallel,
		"parallel.max_workers":    parallel.MaxWorkers,
		"aggregate.ops":           append([]string{}, agg.Ops...),
	}
	if err := setDefaults(k, defaults); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	// Comma-separated strings from the environment decode into lists.
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf, defaults map[string]interface{}) error {
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}
	return nil
}
