// Package types defines the value types and interfaces shared across
// frameseq: the filesystem interface, rename plans and the kinds of
// sources a host can bind.
package types
