// Package transcript splits free-text earnings call transcripts into ordered
// speaker segments. Speaker detection is a best-effort heuristic over
// paragraph-leading "Name:" lines, not a verified parse: short single-word
// speaker tags and capitalized sentence starts can both misfire.
package transcript

import (
	"regexp"
	"strings"

	"github.com/coresight-research/coreiq/internal/models"
)

var (
	paragraphDelim = regexp.MustCompile(`\n\s*\n`)

	// A speaker line opens a paragraph with a proper-looking name (leading
	// capital, possibly several words) followed by a colon. The remainder of
	// that first line, if any, starts the utterance.
	speakerLine = regexp.MustCompile(`^([A-Z][a-zA-Z\s.]+(?:\s+[A-Z][a-zA-Z]+)*):\s*(.*)$`)
)

// FallbackSpeaker is the sentinel attribution used when no speaker line is
// ever matched.
const FallbackSpeaker = "Transcript"

// Parse splits a transcript into speaker segments. Paragraphs are blank-line
// delimited; paragraphs that do not open with a speaker line accumulate into
// the current speaker's utterance, joined by spaces. When no speaker is ever
// detected the whole input becomes a single segment attributed to
// FallbackSpeaker. Empty input yields an empty slice.
func Parse(text string) []models.SpeakerSegment {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []models.SpeakerSegment{}
	}

	paragraphs := paragraphDelim.Split(trimmed, -1)

	segments := []models.SpeakerSegment{}
	currentSpeaker := ""
	var currentText []string

	flush := func() {
		if currentSpeaker != "" && len(currentText) > 0 {
			segments = append(segments, models.SpeakerSegment{
				Speaker: currentSpeaker,
				Text:    strings.Join(currentText, " "),
			})
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		m := speakerLine.FindStringSubmatch(para)
		if m == nil {
			currentText = append(currentText, para)
			continue
		}

		flush()
		currentSpeaker = strings.TrimSpace(m[1])
		currentText = nil
		if rest := strings.TrimSpace(m[2]); rest != "" {
			currentText = []string{rest}
		}
	}
	flush()

	if len(segments) == 0 {
		segments = append(segments, models.SpeakerSegment{
			Speaker: FallbackSpeaker,
			Text:    trimmed,
		})
	}
	return segments
}
