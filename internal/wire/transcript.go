package wire

import (
	"fmt"
	"strings"
)

// Word is one transcribed token, ordered within its segment.
type Word struct {
	Raw     string
	Display string
	StartMS *int64
	EndMS   *int64
}

// Segment is a contiguous run of words attributed to one speaker and language.
type Segment struct {
	// Text is the display forms of the words joined by single spaces.
	Text string
	// SpeakerIndex is the zero-based speaker number, nil when the backend did
	// not attribute the segment.
	SpeakerIndex *int
	Language     string
	Words        []Word
}

// SpeakerLabel derives the user-facing speaker name ("Speaker 1" for index 0).
// It returns the empty string when no speaker was attributed.
func (s Segment) SpeakerLabel() string {
	if s.SpeakerIndex == nil {
		return ""
	}
	return fmt.Sprintf("Speaker %d", *s.SpeakerIndex+1)
}

// StartMS returns the start time of the first timed word.
func (s Segment) StartMS() (int64, bool) {
	for _, w := range s.Words {
		if w.StartMS != nil {
			return *w.StartMS, true
		}
	}
	return 0, false
}

// EndMS returns the end time of the last timed word.
func (s Segment) EndMS() (int64, bool) {
	for i := len(s.Words) - 1; i >= 0; i-- {
		if s.Words[i].EndMS != nil {
			return *s.Words[i].EndMS, true
		}
	}
	return 0, false
}

// Transcript is the ordered segments of one recording.
type Transcript struct {
	Segments []Segment
}

// FullText joins segment texts with newlines. It is always derived from
// Segments so the two can never drift apart.
func (t Transcript) FullText() string {
	texts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		texts = append(texts, seg.Text)
	}
	return strings.Join(texts, "\n")
}

// isWordGroup reports whether node matches the word-list shape: element 0 is an
// array, element 0 of that is an array, and element 0 of that is a string.
// The upstream format carries no schema, so this predicate is the sole
// definition of what counts as a segment node; keep any shape adjustments here
// rather than in the traversal.
func isWordGroup(node []any) bool {
	if len(node) == 0 {
		return false
	}
	words, ok := asArray(node[0])
	if !ok || len(words) == 0 {
		return false
	}
	first, ok := asArray(words[0])
	if !ok || len(first) == 0 {
		return false
	}
	_, ok = asString(first[0])
	return ok
}

// DecodeTranscript decodes a GetTranscription-shaped response by searching the
// nested payload depth-first for word-list nodes. Payloads with no matching
// nodes decode to an empty transcript rather than an error.
func DecodeTranscript(raw any) Transcript {
	var t Transcript
	collectSegments(raw, &t.Segments)
	return t
}

func collectSegments(node any, segments *[]Segment) {
	arr, ok := asArray(node)
	if !ok {
		return
	}
	if isWordGroup(arr) {
		if seg, ok := decodeSegment(arr); ok {
			*segments = append(*segments, seg)
		}
		return
	}
	for _, el := range arr {
		collectSegments(el, segments)
	}
}

// decodeSegment decodes one word-group node: element 0 is the word list,
// element 1 (when numeric) the zero-based speaker index, element 2 the
// language code.
func decodeSegment(node []any) (Segment, bool) {
	var seg Segment
	words, _ := asArray(node[0])
	parts := make([]string, 0, len(words))
	for _, el := range words {
		entry, ok := asArray(el)
		if !ok || len(entry) == 0 {
			continue
		}
		word := decodeWord(entry)
		seg.Words = append(seg.Words, word)
		if word.Display != "" {
			parts = append(parts, word.Display)
		} else if word.Raw != "" {
			parts = append(parts, word.Raw)
		}
	}
	seg.Text = strings.TrimSpace(strings.Join(parts, " "))
	if seg.Text == "" {
		return Segment{}, false
	}
	if idx, ok := numberAt(node, 1); ok {
		speaker := int(idx)
		seg.SpeakerIndex = &speaker
	}
	seg.Language, _ = stringAt(node, 2)
	return seg, true
}

// decodeWord decodes a [raw, display, startMs, endMs] entry.
func decodeWord(entry []any) Word {
	var word Word
	word.Raw, _ = stringAt(entry, 0)
	word.Display, _ = stringAt(entry, 1)
	if ms, ok := numberAt(entry, 2); ok {
		start := int64(ms)
		word.StartMS = &start
	}
	if ms, ok := numberAt(entry, 3); ok {
		end := int64(ms)
		word.EndMS = &end
	}
	return word
}
