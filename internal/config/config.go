// Package config loads wikiedits settings from defaults, an optional YAML
// file, a .env file and WIKIEDITS_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/wikiedits"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WIKIEDITS_"

// Config is the full set of settings shared by the command line tools.
type Config struct {
	Log        Log        `koanf:"log"`
	Store      Store      `koanf:"store"`
	Context    Context    `koanf:"context"`
	Clean      Clean      `koanf:"clean"`
	Dataset    Dataset    `koanf:"dataset"`
	Similarity Similarity `koanf:"similarity"`
	Bench      Bench      `koanf:"bench"`
}

// Log configures the logger.
type Log struct {
	Level      string `koanf:"level"       validate:"oneof=debug info warn error"`
	JSON       bool   `koanf:"json"`
	TimeFormat string `koanf:"time_format"`
}

// Store locates the edits database.
type Store struct {
	Path        string        `koanf:"path"`
	BusyTimeout time.Duration `koanf:"busy_timeout" validate:"min=0"`
}

// Context tunes context extraction.
type Context struct {
	Length    int    `koanf:"length"    validate:"min=1"`
	Tolerance int    `koanf:"tolerance" validate:"min=0,max=100"`
	Open      string `koanf:"open"      validate:"required"`
	Close     string `koanf:"close"     validate:"required"`
}

// Options converts the settings to Extract options.
func (c Context) Options() []wikiedits.Option {
	return []wikiedits.Option{
		wikiedits.WithLength(c.Length),
		wikiedits.WithOverlapTolerance(c.Tolerance),
		wikiedits.WithMarkers(c.Open, c.Close),
	}
}

// Clean configures the cleaning pipeline.
type Clean struct {
	Samples int    `koanf:"samples" validate:"min=1,max=5"`
	Users   string `koanf:"users"`
	GeoIP   string `koanf:"geoip"`
}

// Dataset configures dataset extraction.
type Dataset struct {
	Until  string `koanf:"until"`
	Google bool   `koanf:"google"`
	Output string `koanf:"output"`
}

// Similarity configures the embedding model and the scoring run.
type Similarity struct {
	Model      string `koanf:"model"`
	Tokenizer  string `koanf:"tokenizer"`
	Library    string `koanf:"library"`
	OutputName string `koanf:"output_name"`
	Stopwords  string `koanf:"stopwords"`
	PoolSize   int    `koanf:"pool_size"   validate:"min=0"`
	CacheSize  int    `koanf:"cache_size"  validate:"min=0"`
	MaxSeqLen  int    `koanf:"max_seq_len" validate:"min=3"`
	Workers    int    `koanf:"workers"     validate:"min=1"`
	Strict     bool   `koanf:"strict"`
}

// Bench configures the extraction benchmark.
type Bench struct {
	Cases      string `koanf:"cases"`
	Tolerances []int  `koanf:"tolerances"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:      "info",
			TimeFormat: "15:04:05",
		},
		Store: Store{
			Path:        "wikiedits.db",
			BusyTimeout: 5 * time.Second,
		},
		Context: Context{
			Length:    500,
			Tolerance: 90,
			Open:      "<b>",
			Close:     "</b>",
		},
		Clean: Clean{
			Samples: 1,
		},
		Similarity: Similarity{
			Stopwords:  "stopwords-iso.json",
			OutputName: "last_hidden_state",
			CacheSize:  50000,
			MaxSeqLen:  128,
			Workers:    4,
		},
		Bench: Bench{
			Tolerances: []int{50, 60, 70, 80, 90, 100},
		},
	}
}

// Sources names the optional files Load reads.
type Sources struct {
	File    string // YAML settings
	EnvFile string // dotenv file
}

// Load builds a Config from defaults, then src.File, then src.EnvFile and
// the process environment, and validates the result. Missing files named in
// src are errors.
func Load(src Sources) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if src.File != "" {
		data, err := readYAML(src.File)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("applying %s: %w", src.File, err)
		}
	}

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", src.EnvFile, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToIntSliceHook,
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %w", verrs)
		}
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

func readYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return dropNils(m), nil
}

// stringToIntSliceHook decodes "40,80" into []int{40, 80}.
func stringToIntSliceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]int(nil)) {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return []int{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer list %q: %w", raw, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// dropNils removes nil values so empty YAML keys keep their defaults.
func dropNils(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case nil:
		case map[string]any:
			if nested := dropNils(v); len(nested) > 0 {
				out[k] = nested
			}
		default:
			out[k] = v
		}
	}
	return out
}

// transformEnvKey maps CONTEXT_LENGTH to context.length and
// SIMILARITY_MAX_SEQ_LEN to similarity.max_seq_len.
func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// rawMap adapts a decoded map to koanf.Provider.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("ReadBytes not implemented")
}
