// Package diff renders a [patch.Patch] as unified diff text. The shortest
// edit script itself is computed by the myers package; this package only
// turns the sparse delta list a [patch.Patch] carries into the dense,
// hunk-merged output format diff(1) produces.
package diff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ibrahimAlii/java-diff-utils/patch"
)

// OpType represents the type of edit operation in a rendered line stream.
type OpType int

const (
	// Ins indicates a line should be inserted from the new sequence.
	Ins OpType = iota
	// Del indicates a line should be deleted from the old sequence.
	Del
	// Eq indicates the line is equal in both sequences.
	Eq
)

func (op OpType) String() string {
	switch op {
	case Ins:
		return "+"
	case Del:
		return "-"
	case Eq:
		return " "
	default:
		panic("unknown OpType")
	}
}

// Edit represents a single line in a dense edit stream. Line values may
// include a trailing '\n' delimiter. A line without a trailing '\n'
// represents the last line of a sequence that has no final newline.
type Edit struct {
	Op      OpType
	OldLine string // line from the old sequence (for Del and Eq)
	NewLine string // line from the new sequence (for Ins and Eq)
}

// EditsFromPatch expands p's sparse deltas against the original line slice
// into the dense Eq/Del/Ins stream [WriteUnified] expects. original must be
// the exact slice p's deltas were computed against, e.g. via
// [myers.SplitLines] or the slice passed to [myers.DiffComparable].
func EditsFromPatch[T any](original []T, p *patch.Patch[T], toLine func(T) string) []Edit {
	var edits []Edit
	pos := 0
	for _, d := range p.Deltas() {
		oc := d.Original()
		for pos < oc.Position() {
			line := toLine(original[pos])
			edits = append(edits, Edit{Op: Eq, OldLine: line, NewLine: line})
			pos++
		}
		for _, l := range oc.Lines() {
			edits = append(edits, Edit{Op: Del, OldLine: toLine(l)})
		}
		for _, l := range d.Revised().Lines() {
			edits = append(edits, Edit{Op: Ins, NewLine: toLine(l)})
		}
		pos += oc.Size()
	}
	for pos < len(original) {
		line := toLine(original[pos])
		edits = append(edits, Edit{Op: Eq, OldLine: line, NewLine: line})
		pos++
	}
	return edits
}

// unifiedWriter writes edits as unified diff hunks. It groups changes into hunks, merging
// hunks that are separated by at most 2*context equal lines.
type unifiedWriter struct {
	w       *bufio.Writer
	edits   []Edit
	context int
	eqCount int // consecutive equal lines since the last change

	lineOld int // current line number in the old sequence
	lineNew int // current line number in the new sequence

	hunkStart int // index into edits where the current hunk starts (0-indexed, -1 if no active hunk)
	hunkEnd   int // index into edits where the current hunk ends (0-indexed, inclusive)
	startOld  int // start line in the old sequence for the current hunk (1-indexed)
	startNew  int // start line in the new sequence for the current hunk (1-indexed)
	countOld  int // number of old lines in the current hunk
	countNew  int // number of new lines in the current hunk
}

// WriteUnified writes the edits in unified diff format to w. Lines that do not end in '\n'
// are followed by a "\ No newline at end of file" marker. The context parameter specifies
// the number of unchanged lines to show around each change. With context=0, only deletions
// and insertions are written; equal lines are omitted.
func WriteUnified(w io.Writer, edits []Edit, context int) error {
	uw := &unifiedWriter{
		w:         bufio.NewWriter(w),
		edits:     edits,
		context:   context,
		hunkStart: -1,
		hunkEnd:   -1,
	}
	if err := uw.write(); err != nil {
		return err
	}
	return uw.w.Flush()
}

func (uw *unifiedWriter) write() error {
	for i := 0; i < len(uw.edits); i++ {
		switch uw.edits[i].Op {
		case Eq:
			uw.lineNew++
			uw.lineOld++

			if uw.hunkStart >= 0 {
				uw.hunkEnd = i

				// set start line for the side that did not initiate the hunk
				if uw.context > 0 {
					if uw.startOld == 0 {
						uw.startOld = uw.lineOld
					} else if uw.startNew == 0 {
						uw.startNew = uw.lineNew
					}
				} else {
					if uw.startOld == 0 {
						uw.startOld = uw.lineOld - 1
					} else if uw.startNew == 0 {
						uw.startNew = uw.lineNew - 1
					}
				}

				if uw.eqCount+1 > 2*uw.context { // hunk end
					// adjust for the extra eq we counted to wait for a possibly merged hunk
					if uw.context > 0 && uw.eqCount > uw.context {
						adjust := uw.eqCount - uw.context
						uw.countOld -= adjust
						uw.countNew -= adjust
						uw.hunkEnd -= adjust
					}

					if err := uw.writeHunk(uw.hunkEnd); err != nil {
						return err
					}
					uw.hunkStart = -1
					uw.hunkEnd = -1
					uw.startNew = 0
					uw.startOld = 0
					uw.eqCount = 0
					uw.countNew = 0
					uw.countOld = 0
				} else {
					uw.eqCount++
					uw.countNew++
					uw.countOld++
				}
			}
		case Ins:
			uw.lineNew++
			uw.countNew++
			uw.eqCount = 0
			uw.hunkEnd = i

			if uw.hunkStart < 0 { // starting new hunk
				uw.hunkStart = max(0, i-uw.context)
				context := i - uw.hunkStart
				// context before
				uw.countOld += context
				uw.countNew += context
				// defer setting non-initiating hunk start if there is no context before as a Del could be part of this hunk
				if context > 0 {
					uw.startOld = uw.lineOld
				}
				uw.startNew = uw.lineNew - context
			} else { // part of an existing hunk
				// set start line for the non-initiating hunk that had no context before the Del
				// initiating the hunk
				if uw.startNew == 0 {
					uw.startNew = uw.lineNew
				}
			}
		case Del:
			uw.lineOld++
			uw.countOld++
			uw.eqCount = 0
			uw.hunkEnd = i

			if uw.hunkStart < 0 { // starting new hunk
				uw.hunkStart = max(0, i-uw.context)
				context := i - uw.hunkStart
				// context before
				uw.countOld += context
				uw.countNew += context
				// defer setting non-initiating hunk start if there is no context before as an Ins could be part of this hunk
				if context > 0 {
					uw.startNew = uw.lineNew
				}
				uw.startOld = uw.lineOld - context
			} else { // part of an existing hunk
				// set start line for the non-initiating hunk that had no context before the Ins
				// initiating the hunk
				if uw.startOld == 0 {
					uw.startOld = uw.lineOld
				}
			}
		}
	}

	// flush remaining hunk
	if uw.hunkStart >= 0 {
		if uw.startOld == 0 {
			uw.startOld = uw.lineOld
		} else if uw.startNew == 0 {
			uw.startNew = uw.lineNew
		}
		// adjust for the extra eq we counted to wait for a possibly merged hunk
		if uw.context > 0 && uw.eqCount > uw.context {
			adjust := uw.eqCount - uw.context
			uw.countOld -= adjust
			uw.countNew -= adjust
			uw.hunkEnd -= adjust
		}

		if err := uw.writeHunk(uw.hunkEnd + 1); err != nil {
			return err
		}
	}
	return nil
}

// writeHunk writes the hunk header and edits from hunkStart up to but not including end.
func (uw *unifiedWriter) writeHunk(end int) error {
	if err := writeHunkHeader(uw.w, uw.startOld, uw.countOld, uw.startNew, uw.countNew); err != nil {
		return err
	}
	for j := uw.hunkStart; j < end; j++ {
		if err := uw.writeEdit(uw.edits[j]); err != nil {
			return err
		}
	}
	return nil
}

// writeHunkHeader writes a hunk header in unified diff format.
// When count is 1, it is omitted (e.g., @@ -2 +2 @@ instead of @@ -2,1 +2,1 @@).
func writeHunkHeader(w io.Writer, oldStart, oldCount, newStart, newCount int) error {
	var err error
	if oldCount != 1 && newCount != 1 {
		_, err = fmt.Fprintf(w, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	} else if oldCount == 1 && newCount == 1 {
		_, err = fmt.Fprintf(w, "@@ -%d +%d @@\n", oldStart, newStart)
	} else if oldCount == 1 {
		_, err = fmt.Fprintf(w, "@@ -%d +%d,%d @@\n", oldStart, newStart, newCount)
	} else {
		_, err = fmt.Fprintf(w, "@@ -%d,%d +%d @@\n", oldStart, oldCount, newStart)
	}
	return err
}

func (uw *unifiedWriter) writeEdit(e Edit) error {
	if _, err := uw.w.WriteString(e.Op.String()); err != nil {
		return err
	}
	if e.Op == Del {
		return uw.writeLine(e.OldLine)
	}
	return uw.writeLine(e.NewLine)
}

func (uw *unifiedWriter) writeLine(s string) error {
	if _, err := uw.w.WriteString(s); err != nil {
		return err
	}
	if len(s) > 0 && s[len(s)-1] != '\n' {
		if _, err := uw.w.WriteString("\n\\ No newline at end of file\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteGutter writes edits as a line-numbered, whitespace-visualizing
// listing: each kept line is prefixed with its position in the old
// sequence (blank for pure insertions) and a one-character marker, and
// runs of equal lines outside the context window collapse into a single
// "N identical lines" separator instead of a unified-diff hunk header.
func WriteGutter(w io.Writer, edits []Edit, context int) error {
	bw := bufio.NewWriter(w)

	shown := gutterShown(edits, context)
	marks := gutterNewlineMarks(edits)

	oldTotal := 0
	for _, e := range edits {
		if e.Op != Ins {
			oldTotal++
		}
	}
	width := len(strconv.Itoa(oldTotal))
	if width < 1 {
		width = 1
	}
	blank := strings.Repeat(" ", width)

	lineOld := 0
	n := len(edits)
	for i := 0; i < n; {
		if !shown[i] {
			start := i
			for i < n && !shown[i] {
				lineOld++
				i++
			}
			if start > 0 && i < n {
				count := i - start
				noun := "lines"
				if count == 1 {
					noun = "line"
				}
				if _, err := fmt.Fprintf(bw, "%s───┼─── %d identical %s ───\n", blank, count, noun); err != nil {
					return err
				}
			}
			continue
		}

		e := edits[i]
		var err error
		switch e.Op {
		case Eq:
			lineOld++
			_, err = fmt.Fprintf(bw, "%*d   │ %s\n", width, lineOld, gutterContent(e.Op, e.OldLine, false))
		case Del:
			lineOld++
			_, err = fmt.Fprintf(bw, "%*d - │ %s\n", width, lineOld, gutterContent(e.Op, e.OldLine, marks[i]))
		case Ins:
			_, err = fmt.Fprintf(bw, "%s + │ %s\n", blank, gutterContent(e.Op, e.NewLine, marks[i]))
		}
		if err != nil {
			return err
		}
		i++
	}
	return bw.Flush()
}

// gutterShown marks which Eq edits fall within context lines of a Del or
// Ins edit; Del and Ins edits are always shown.
func gutterShown(edits []Edit, context int) []bool {
	n := len(edits)
	shown := make([]bool, n)
	for i, e := range edits {
		if e.Op != Eq {
			shown[i] = true
		}
	}
	for i, e := range edits {
		if e.Op == Eq {
			continue
		}
		for d := 1; d <= context; d++ {
			if i-d >= 0 {
				shown[i-d] = true
			}
			if i+d < n {
				shown[i+d] = true
			}
		}
	}
	return shown
}

// gutterNewlineMarks reports, for each Del or Ins edit, whether its trailing
// newline should render as a visible "↵" because it sits at the end of a
// change run whose opposite side ends without one: e.g. a deleted line
// missing its final newline right next to an inserted line that has one.
// Without the marker, that inserted line would look like any other and the
// only place the newline mismatch would show up is the unified diff's own
// "\ No newline at end of file" marker, which the gutter view doesn't print.
func gutterNewlineMarks(edits []Edit) []bool {
	n := len(edits)
	marks := make([]bool, n)
	for i := 0; i < n; {
		if edits[i].Op == Eq {
			i++
			continue
		}
		start := i
		for i < n && edits[i].Op != Eq {
			i++
		}
		lastDel, lastIns := -1, -1
		for j := start; j < i; j++ {
			switch edits[j].Op {
			case Del:
				lastDel = j
			case Ins:
				lastIns = j
			}
		}
		if lastDel < 0 || lastIns < 0 {
			continue
		}
		delHasNL := strings.HasSuffix(edits[lastDel].OldLine, "\n")
		insHasNL := strings.HasSuffix(edits[lastIns].NewLine, "\n")
		if delHasNL == insHasNL {
			continue
		}
		if delHasNL {
			marks[lastDel] = true
		} else {
			marks[lastIns] = true
		}
	}
	return marks
}

// gutterContent strips the trailing newline and, for changed lines only,
// renders spaces and tabs as visible glyphs; context lines are shown as-is.
// A stripped line that is now empty, or one whose markNewline is set by
// [gutterNewlineMarks], renders its newline as "↵" instead of disappearing.
func gutterContent(op OpType, line string, markNewline bool) string {
	stripped := strings.TrimSuffix(line, "\n")
	hasNL := len(stripped) < len(line)

	visual := stripped
	if op != Eq {
		var b strings.Builder
		for _, r := range stripped {
			switch r {
			case ' ':
				b.WriteRune('·')
			case '\t':
				b.WriteRune('→')
			default:
				b.WriteRune(r)
			}
		}
		visual = b.String()
	}

	if hasNL && (visual == "" || markNewline) {
		return visual + "↵"
	}
	return visual
}
