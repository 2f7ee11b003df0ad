package transformer

import (
	"bytes"
	"sort"
)

// textEdit replaces the half-open byte range [start, end) of the original
// buffer with text. A zero-length range is an insertion.
type textEdit struct {
	start, end int
	text       string
	order      int
}

func (e textEdit) isInsert() bool { return e.start == e.end }

// sortEdits orders edits by start offset. At equal offsets insertions come
// first, then edits in the order they were recorded.
func sortEdits(edits []textEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		if edits[i].isInsert() != edits[j].isInsert() {
			return edits[i].isInsert()
		}
		return edits[i].order < edits[j].order
	})
}

// resolveEdits sorts edits and splits them into a non-overlapping set and the
// edits that overlap one kept earlier. An insertion conflicts with a
// replacement only when it falls strictly inside it.
func resolveEdits(edits []textEdit) (kept, dropped []textEdit) {
	sorted := append([]textEdit(nil), edits...)
	sortEdits(sorted)

	pos := 0
	for _, e := range sorted {
		if e.start < pos {
			dropped = append(dropped, e)
			continue
		}
		kept = append(kept, e)
		pos = e.end
	}
	return kept, dropped
}

// applyEdits splices edits into src in a single forward pass. Overlapping
// edits are returned as dropped and leave the buffer untouched.
func applyEdits(src []byte, edits []textEdit) (out []byte, dropped []textEdit) {
	kept, dropped := resolveEdits(edits)

	var buf bytes.Buffer
	buf.Grow(len(src) + 64*len(kept))

	pos := 0
	for _, e := range kept {
		buf.Write(src[pos:e.start])
		buf.WriteString(e.text)
		pos = e.end
	}
	buf.Write(src[pos:])
	return buf.Bytes(), dropped
}
