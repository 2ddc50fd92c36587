package sequence

import (
	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/types"
)

// Selection is what a host has bound as its active sequence: where the
// frames were loaded from and in which order.
type Selection struct {
	Kind      types.SourceKind
	Directory string
	Frames    []string
}

// Validate checks that the selection exists and is an image sequence
func (s *Selection) Validate() error {
	if s == nil {
		return errors.New(errors.ErrInvalidSelection, "no active sequence is bound")
	}
	if s.Kind != types.SourceImage {
		return errors.Newf(errors.ErrInvalidSelection, "bound sequence is of type %q, select an image sequence", s.Kind).
			WithDetail("kind", string(s.Kind))
	}
	return nil
}

// ResolveDirectory returns explicit when given, otherwise the directory of
// the selection. The result is verified to be an existing directory.
func ResolveDirectory(fsys types.FS, explicit string, sel *Selection) (string, error) {
	if explicit != "" {
		if err := checkDirectory(fsys, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	if err := sel.Validate(); err != nil {
		return "", err
	}
	if err := checkDirectory(fsys, sel.Directory); err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidDirectory, "invalid directory detected on sequence")
	}
	return sel.Directory, nil
}
