package chunker

import (
	"fmt"

	"gobi/internal/textnorm"
)

// WindowChunker splits text into fixed-size character windows with overlap.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker panics unless 0 < overlap < size; that is a
// configuration bug, not a runtime condition.
func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 || overlap <= 0 || overlap >= size {
		panic(fmt.Sprintf("chunker: invalid window size=%d overlap=%d", size, overlap))
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk collapses whitespace and returns windows of c.size characters starting
// every size-overlap characters. The last window may be shorter.
func (c *WindowChunker) Chunk(text string) []string {
	return Split(text, c.size, c.overlap)
}

// Split is the stateless form of WindowChunker.Chunk. It never loops forever:
// the window advances by at least one character.
func Split(text string, size, overlap int) []string {
	s := []rune(textnorm.CollapseSpace(text))
	if len(s) == 0 || size <= 0 {
		return nil
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}
	var chunks []string
	for start := 0; start < len(s); start += step {
		end := start + size
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, string(s[start:end]))
	}
	return chunks
}
