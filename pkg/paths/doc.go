// Package paths provides centralized path handling for frameseq.
//
// It implements the XDG Base Directory specification for frameseq's own
// files (configuration, the active binding, logs) and resolves the default
// project folder where capture sessions store their frames.
//
// # Environment Variables
//
//   - FRAMESEQ_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/frameseq)
//   - FRAMESEQ_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/frameseq)
//   - FRAMESEQ_BINDING_FILE: Override the binding file (default: <data dir>/binding.toml)
//   - XDG_STATE_HOME: Base for the log file (default: ~/.local/state)
//
// # Usage
//
//	p, err := paths.New("~/stopmotion_frames")
//	if err != nil {
//	    return err
//	}
//	binding := p.BindingFilePath() // $XDG_DATA_HOME/frameseq/binding.toml
//	dir, err := p.NormalizePath("~/frames/take1")
package paths
