package binding

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Store reads and writes a binding file
type Store struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewStore creates a store for the binding file at path
func NewStore(fsys types.FS, path string) *Store {
	return &Store{
		fs:     fsys,
		path:   path,
		logger: logging.GetLogger("binding"),
		now:    time.Now,
	}
}

// WithClock replaces the time source used for updated_at
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Path returns the binding file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the binding. A missing file is not an error and returns nil.
func (s *Store) Load() (*Binding, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", s.path).Msg("No binding file")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrBindingLoad, "cannot read binding %s", s.path).
			WithDetail("path", s.path)
	}

	var b Binding
	if err := toml.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, errors.ErrBindingLoad, "invalid binding file %s", s.path).
			WithDetail("path", s.path)
	}
	if b.Kind == "" {
		b.Kind = types.SourceImage
	}

	s.logger.Debug().
		Str("path", s.path).
		Str("directory", b.Directory).
		Int("frames", len(b.Frames)).
		Msg("Loaded binding")
	return &b, nil
}

// Save writes the binding, stamping updated_at. The file is written to a
// temporary name first and renamed into place.
func (s *Store) Save(b *Binding) error {
	if b == nil {
		return errors.New(errors.ErrBindingSave, "nothing to save")
	}
	b.UpdatedAt = s.now().UTC().Truncate(time.Second)

	data, err := toml.Marshal(b)
	if err != nil {
		return errors.Wrap(err, errors.ErrBindingSave, "failed to encode binding")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBindingSave, "cannot create %s", filepath.Dir(s.path))
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrBindingSave, "cannot write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrBindingSave, "cannot replace %s", s.path)
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("frames", len(b.Frames)).
		Msg("Saved binding")
	return nil
}

// Clear removes the binding file
func (s *Store) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrBindingSave, "cannot remove %s", s.path)
	}
	return nil
}
