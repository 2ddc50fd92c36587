// Package binding persists the active image sequence of the CLI host.
//
// A binding plays the part an editor's selected strip plays for a plugin:
// it records which directory is bound and which frames, in order, are
// currently loaded. Commands read it to build a sequence.Selection and
// write back the frames an operation returns.
package binding
