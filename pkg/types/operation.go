package types

import "path/filepath"

// SourceKind is the type of media a host binding points at
type SourceKind string

const (
	// SourceImage is an image sequence, the only kind frameseq operates on
	SourceImage SourceKind = "image"
	// SourceMovie is a single movie file
	SourceMovie SourceKind = "movie"
	// SourceSound is an audio file
	SourceSound SourceKind = "sound"
)

// OperationStatus defines the state of a rename
type OperationStatus string

const (
	// StatusPending means the rename has not been attempted
	StatusPending OperationStatus = "pending"
	// StatusApplied means the rename completed
	StatusApplied OperationStatus = "applied"
	// StatusFailed means the rename was attempted and failed
	StatusFailed OperationStatus = "failed"
	// StatusRolledBack means the rename was applied and later undone
	StatusRolledBack OperationStatus = "rolled_back"
)

// Rename is a single move of a file inside one directory.
// From and To are base names; Dir holds the directory.
type Rename struct {
	Dir    string          `json:"dir" toml:"dir"`
	From   string          `json:"from" toml:"from"`
	To     string          `json:"to" toml:"to"`
	Status OperationStatus `json:"status" toml:"status"`
}

// FromPath returns the absolute source path
func (r Rename) FromPath() string {
	return filepath.Join(r.Dir, r.From)
}

// ToPath returns the absolute target path
func (r Rename) ToPath() string {
	return filepath.Join(r.Dir, r.To)
}

// Reverse returns the rename that undoes r
func (r Rename) Reverse() Rename {
	return Rename{Dir: r.Dir, From: r.To, To: r.From, Status: StatusPending}
}

// RenamePlan is an ordered list of renames. Staged plans route every
// member through a temporary name so no rename overwrites another member.
type RenamePlan struct {
	Renames []Rename `json:"renames"`
	Staged  bool     `json:"staged"`
}

// Len returns the number of renames in the plan
func (p RenamePlan) Len() int {
	return len(p.Renames)
}

// Empty reports whether the plan has nothing to do
func (p RenamePlan) Empty() bool {
	return len(p.Renames) == 0
}

// Applied returns the renames that completed, in plan order
func (p RenamePlan) Applied() []Rename {
	var out []Rename
	for _, r := range p.Renames {
		if r.Status == StatusApplied {
			out = append(out, r)
		}
	}
	return out
}

// Moves returns the net renames of the plan. For staged plans each member's
// two hops through its temporary name are folded into one move.
func (p RenamePlan) Moves() []Rename {
	if !p.Staged {
		return append([]Rename(nil), p.Renames...)
	}
	half := len(p.Renames) / 2
	moves := make([]Rename, 0, half)
	for i := 0; i < half; i++ {
		first, second := p.Renames[i], p.Renames[half+i]
		status := second.Status
		if first.Status != StatusApplied {
			status = first.Status
		}
		moves = append(moves, Rename{Dir: first.Dir, From: first.From, To: second.To, Status: status})
	}
	return moves
}
