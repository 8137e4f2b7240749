package chunker

import "strings"

// Separator preference order: paragraph, line, sentence, word, then a
// hard character cut once no separator is left.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter cuts text into chunks of at most chunkSize characters, with
// chunkOverlap characters carried over between consecutive chunks.
// Sizes are measured in characters (runes), not tokens.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Split returns the ordered chunks of text. Empty or whitespace-only
// input yields nil.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.withOverlap(s.split(text, separators))
}

// split recursively cuts text along the preferred separators, regrouping
// pieces so each chunk stays within chunkSize where possible.
func (s *Splitter) split(text string, seps []string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if runeLen(text) <= s.chunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return s.hardCut(text)
	}

	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return s.split(text, seps[1:])
	}

	grouped := make([]string, 0, len(parts))
	current := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		candidate := part
		if current != "" {
			candidate = current + sep + part
		}
		if current == "" || runeLen(candidate) <= s.chunkSize {
			current = candidate
			continue
		}
		grouped = append(grouped, current)
		current = part
	}
	if current != "" {
		grouped = append(grouped, current)
	}

	out := make([]string, 0, len(grouped))
	for _, g := range grouped {
		if runeLen(g) <= s.chunkSize {
			out = append(out, g)
			continue
		}
		out = append(out, s.split(g, seps[1:])...)
	}
	return out
}

// hardCut slices text into fixed-size rune windows.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	out := make([]string, 0, len(runes)/s.chunkSize+1)
	for start := 0; start < len(runes); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// withOverlap prepends the tail of each chunk onto its successor so
// context bleeds across chunk boundaries.
func (s *Splitter) withOverlap(chunks []string) []string {
	if s.chunkOverlap <= 0 || len(chunks) <= 1 {
		return chunks
	}
	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		t := tail(chunks[i-1], s.chunkOverlap)
		if t == "" {
			out[i] = chunks[i]
			continue
		}
		out[i] = t + " " + chunks[i]
	}
	return out
}

// tail returns roughly the last n runes of chunk, advanced to the next
// word boundary so the overlap does not begin mid-word.
func tail(chunk string, n int) string {
	runes := []rune(chunk)
	if len(runes) <= n {
		return chunk
	}
	t := string(runes[len(runes)-n:])
	if i := strings.IndexByte(t, ' '); i >= 0 && i+1 < len(t) {
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}

func runeLen(s string) int {
	return len([]rune(s))
}
