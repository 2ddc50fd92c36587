// Package sequence implements the two frame-sequence algorithms of frameseq.
//
// Resequence renames a folder of image files into a contiguous, zero-padded
// sequence that shares one prefix:
//
//	shot-a.png, shot-b.png, shot-c.png  ->  shot-0000.png, shot-0001.png, shot-0002.png
//
// Refresh reconciles an already bound, ordered list of frames with what is
// on disk now. It keeps the first bound frame as an anchor, replaces it when
// it was deleted, and appends every newer frame in sorted order. It never
// back-fills frames that sort before the anchor and never touches the disk.
//
// Both operations are plain functions over a directory path and a frame
// list. Hosts (the CLI, an editor plugin) own the "active selection" and
// apply the returned values themselves.
package sequence
