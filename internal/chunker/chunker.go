// Package chunker normalizes extracted document text and splits it into
// bounded, overlapping, source-tagged segments for indexing.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

// Unit is one extracted block of document text prior to chunking, e.g. the
// full text of a single slide.
type Unit struct {
	Text string
	// SlideNumber is nil for units that do not come from a paginated source.
	SlideNumber *int
}

// Config controls chunk window size and overlap, both in runes.
type Config struct {
	Size    int
	Overlap int
}

// DefaultConfig matches the tuned production values.
func DefaultConfig() Config {
	return Config{Size: 550, Overlap: 80}
}

// Validate rejects configurations where the window cannot advance.
func (c Config) Validate() error {
	if c.Overlap < 0 || c.Size <= c.Overlap {
		return domain.ErrInvalidChunkConfig
	}
	return nil
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses runs of horizontal whitespace to a single space,
// runs of three or more newlines to exactly two, and trims the result.
func Normalize(raw string) string {
	text := multiSpace.ReplaceAllString(raw, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Split cuts each unit into chunks of at most cfg.Size runes, overlapping by
// cfg.Overlap. Windows that do not reach the end of the unit are trimmed back
// to the last space past 30% of the window so words are not cut in half.
// Sequence indices start at startIndex so several sources can append into one
// global corpus. Empty chunks are never emitted.
func Split(units []Unit, cfg Config, source string, startIndex int) ([]domain.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var chunks []domain.Chunk
	idx := startIndex

	for _, unit := range units {
		text := Normalize(unit.Text)
		if text == "" {
			continue
		}

		runes := []rune(text)
		if len(runes) <= cfg.Size {
			chunks = append(chunks, domain.Chunk{
				Text:          text,
				Source:        source,
				SequenceIndex: idx,
				SlideNumber:   unit.SlideNumber,
			})
			idx++
			continue
		}

		start := 0
		for start < len(runes) {
			end := start + cfg.Size
			if end > len(runes) {
				end = len(runes)
			}
			fragment := runes[start:end]

			if end < len(runes) {
				if cut := lastSpace(fragment); float64(cut) > float64(cfg.Size)*0.3 {
					fragment = fragment[:cut]
					end = start + cut
				}
			}

			chunk := strings.TrimSpace(string(fragment))
			if chunk != "" {
				chunks = append(chunks, domain.Chunk{
					Text:          chunk,
					Source:        source,
					SequenceIndex: idx,
					SlideNumber:   unit.SlideNumber,
				})
				idx++
			}

			// Never step backwards: a trimmed window shorter than the
			// overlap advances to its own end instead.
			if end-cfg.Overlap > start {
				start = end - cfg.Overlap
			} else {
				start = end
			}
		}
	}

	return chunks, nil
}

// FoldQA turns already-paired question/answer entries into one chunk per
// pair with no further splitting. FAQ entries are short by construction.
func FoldQA(pairs []QAPair, startIndex int) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(pairs))
	for i, qa := range pairs {
		chunks = append(chunks, domain.Chunk{
			Text:          fmt.Sprintf("Soru: %s\nCevap: %s", qa.Question, qa.Answer),
			Source:        domain.SourceFAQ,
			SequenceIndex: startIndex + i,
		})
	}
	return chunks
}

// QAPair is one question/answer pair extracted from the FAQ document.
type QAPair struct {
	Question string
	Answer   string
	Section  string
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
