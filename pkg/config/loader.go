package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "FRAMESEQ_"

var sections = map[string]bool{
	"project":    true,
	"resequence": true,
	"refresh":    true,
	"output":     true,
	"logging":    true,
}

// ValidFormats are the accepted output.format values
var ValidFormats = []string{"auto", "text", "term", "json"}

// LoadOptions selects the configuration sources
type LoadOptions struct {
	// ConfigFile replaces the user config file path
	ConfigFile string
	// WorkDir is searched for the project file; defaults to the working directory
	WorkDir string
	// Overrides are applied last, e.g. from command-line flags
	Overrides map[string]interface{}

	SkipUser    bool
	SkipProject bool
	SkipEnv     bool
}

// Load merges every configuration source and decodes the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config
	if !opts.SkipUser {
		path, explicit, err := userConfigPath(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		loaded, err := loadFile(k, path, explicit)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, path)
		}
	}

	// 3. Project config
	if !opts.SkipProject {
		dir := opts.WorkDir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		if dir != "" {
			path := filepath.Join(dir, paths.ProjectConfigFile)
			loaded, err := loadFile(k, path, false)
			if err != nil {
				return nil, err
			}
			if loaded {
				sources = append(sources, path)
			}
		}
	}

	// 4. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg := &Config{}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	cfg.Project.Root = paths.ExpandHome(cfg.Project.Root)
	cfg.Sources = sources
	cfg.k = k

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Msg("Configuration loaded")
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Resequence.Padding < 1 {
		return errors.Newf(errors.ErrConfigParse, "resequence.padding must be at least 1, got %d", c.Resequence.Padding)
	}
	if c.Resequence.StartIndex < 0 {
		return errors.Newf(errors.ErrConfigParse, "resequence.start_index must not be negative, got %d", c.Resequence.StartIndex)
	}
	if c.Refresh.Interval <= 0 {
		return errors.Newf(errors.ErrConfigParse, "refresh.interval must be positive, got %s", c.Refresh.Interval)
	}
	if c.Refresh.TrailingFrames < 0 {
		return errors.Newf(errors.ErrConfigParse, "refresh.trailing_frames must not be negative, got %d", c.Refresh.TrailingFrames)
	}
	for _, f := range ValidFormats {
		if c.Output.Format == f {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigParse, "output.format must be one of %s, got %q",
		strings.Join(ValidFormats, ", "), c.Output.Format)
}

// userConfigPath returns the file to load and whether it was requested explicitly
func userConfigPath(override string) (string, bool, error) {
	if override != "" {
		return paths.ExpandHome(override), true, nil
	}
	p, err := paths.New("")
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve config directory")
	}
	return p.ConfigFilePath(), false, nil
}

// loadFile merges a TOML file. Missing files are skipped unless required.
func loadFile(k *koanf.Koanf, path string, required bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// envKey maps FRAMESEQ_REFRESH_TRAILING_FRAMES to refresh.trailing_frames.
// Variables outside the known sections are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || !sections[section] {
		return ""
	}
	return section + "." + rest
}
