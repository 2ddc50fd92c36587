package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/frameseq/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for frameseq
	EnvDataDir = "FRAMESEQ_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for frameseq
	EnvConfigDir = "FRAMESEQ_CONFIG_DIR"

	// EnvBindingFile overrides the location of the active binding
	EnvBindingFile = "FRAMESEQ_BINDING_FILE"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultProjectDir is the default folder for frame capture and watching
	DefaultProjectDir = "stopmotion_frames"

	// AppDirName is the directory name for frameseq-specific files
	AppDirName = "frameseq"

	// ConfigFileName is the user configuration file inside the config dir
	ConfigFileName = "config.toml"

	// ProjectConfigFile is the per-directory configuration file
	ProjectConfigFile = ".frameseq.toml"

	// BindingFileName is the name of the active binding file
	BindingFileName = "binding.toml"

	// LogFileName is the name of the log file
	LogFileName = "frameseq.log"
)

// Paths provides centralized path management for frameseq
type Paths interface {
	ProjectRoot() string
	DataDir() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	BindingFilePath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	projectRoot string
	xdgData     string
	xdgConfig   string
	xdgState    string
	bindingFile string
}

// New creates a new Paths instance. An empty projectRoot falls back to
// ~/stopmotion_frames.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		home, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		projectRoot = filepath.Join(home, DefaultProjectDir)
	}

	absRoot, err := filepath.Abs(expandHome(projectRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// State follows the same rule as the logger so both agree on the log location
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}

	if bindingFile := os.Getenv(EnvBindingFile); bindingFile != "" {
		p.bindingFile = expandHome(bindingFile)
	} else {
		p.bindingFile = filepath.Join(p.xdgData, BindingFileName)
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// ProjectRoot returns the default project folder
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// DataDir returns the XDG data directory for frameseq
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for frameseq
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for frameseq
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the user configuration file path
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// BindingFilePath returns where the active binding is persisted
func (p *paths) BindingFilePath() string {
	return p.bindingFile
}

// LogFilePath returns the path to the frameseq log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get home directory")
	}
	return homeDir, nil
}
