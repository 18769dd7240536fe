// Package unifieddiff parses the canonical unified-diff text format into the
// same [patch.Patch] data model the myers package builds. It is a
// hand-rolled, line-oriented state machine rather than a general grammar
// parser: the format tolerates header variance (bare "---"/"+++" diffs vs.
// "diff --git" diffs), timestamp decoration, optional chunk-count fields,
// and a handful of other quirks that are reproduced here exactly as
// observed in the reference reader this package is ported from, even where
// they look suspect (see the comments on chunkComplete and
// parseGitDiffFileNames).
package unifieddiff

import "github.com/ibrahimAlii/java-diff-utils/patch"

// UnifiedDiffFile holds the header metadata and body patch for one file
// section of a unified diff. Any header field may be absent depending on
// which header lines the section actually carried.
type UnifiedDiffFile struct {
	// DiffCommand is the raw "diff --git a/... b/..." line, if present.
	DiffCommand string
	// Index is the text following "index " on an index line, if present.
	Index string
	// FromFile and ToFile are the original- and revised-side paths.
	FromFile string
	ToFile   string
	// FromTimestamp and ToTimestamp are the optional timestamps trailing
	// the "---"/"+++" lines.
	FromTimestamp string
	ToTimestamp   string

	// Patch holds the deltas parsed from this file's hunks. Every delta
	// unifieddiff produces is a Change: a hunk is read as one paired run
	// of original/revised lines, never split into finer Insert/Delete
	// deltas (that decomposition is myers's job, not this package's).
	Patch *patch.Patch[string]
}

func newUnifiedDiffFile() *UnifiedDiffFile {
	return &UnifiedDiffFile{Patch: patch.NewPatch[string]()}
}

// UnifiedDiff is the top-level parsed document: free-text preamble, the
// ordered list of file sections, and free-text trailer.
type UnifiedDiff struct {
	// Header is the free text, if any, before the first recognized header
	// line.
	Header string
	// Files is the ordered list of parsed file sections.
	Files []*UnifiedDiffFile
	// Tail is the free text, if any, after the last hunk's data lines.
	Tail string
}
