// Package watch keeps a bound sequence in sync while frames are being
// captured. A single goroutine merges two triggers, a periodic ticker and
// debounced fsnotify events on the frames directory, into serialized calls
// of a refresh callback. It stops when its context is cancelled.
package watch
