package config

import (
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
)

// Config is the effective frameseq configuration
type Config struct {
	Project    Project    `koanf:"project"`
	Resequence Resequence `koanf:"resequence"`
	Refresh    Refresh    `koanf:"refresh"`
	Output     Output     `koanf:"output"`
	Logging    Logging    `koanf:"logging"`

	// Sources lists the files that were merged, in load order
	Sources []string `koanf:"-"`

	k *koanf.Koanf
}

// Project holds where frames live by default
type Project struct {
	Root string `koanf:"root"`
}

// Resequence holds defaults for the resequence command
type Resequence struct {
	Padding         int  `koanf:"padding"`
	StartIndex      int  `koanf:"start_index"`
	StrictVote      bool `koanf:"strict_vote"`
	RollbackOnError bool `koanf:"rollback_on_error"`
}

// Refresh holds settings of the watch loop. The sequence package never
// reads these.
type Refresh struct {
	Auto           bool          `koanf:"auto"`
	Interval       time.Duration `koanf:"interval"`
	TrailingFrames int           `koanf:"trailing_frames"`
	UseFsnotify    bool          `koanf:"use_fsnotify"`
}

// Output holds rendering settings
type Output struct {
	Format  string `koanf:"format"`
	NoColor bool   `koanf:"no_color"`
}

// Logging holds logging settings
type Logging struct {
	File bool `koanf:"file"`
}

// Default returns the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUser: true, SkipProject: true, SkipEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}

// TOML renders the merged configuration as TOML
func (c *Config) TOML() ([]byte, error) {
	if c.k == nil {
		return nil, nil
	}
	return c.k.Marshal(toml.Parser())
}

// Keys returns every configured key with its merged value
func (c *Config) Keys() map[string]interface{} {
	if c.k == nil {
		return map[string]interface{}{}
	}
	return c.k.All()
}
