package service

import (
	"strings"
	"unicode"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

// Grounded-reply composition limits, all in runes.
const (
	// Chunks shorter than this are likely bare headings, not answers.
	minChunkRunes = 80
	// Minimum that must remain after stripping a stray slide-number line.
	minStrippedRunes = 40
	// Per-chunk cap; longer chunks are cut at the last sentence end.
	maxChunkRunes = 600
	// A sentence-ending period is only honored past this point.
	minSentenceCut = 200
	// Accumulation stops once the joined reply exceeds this.
	maxReplyRunes = 900
)

// Source attribution lines appended to every grounded reply.
const (
	attributionFAQ    = "Kaynak: İşletmede Mesleki Eğitim – SSS Belgesi"
	attributionSlides = "Kaynak: İşletmede Mesleki Eğitim sunumu"
)

// buildGroundedReply composes an answer from retrieved chunks, best first.
// Heading-only chunks are skipped, stray leading slide numbers stripped,
// over-long chunks cut at a sentence boundary, and fragments accumulated
// until the reply is long enough. If nothing survives the filters the
// single best chunk is used as-is.
func buildGroundedReply(results []domain.RetrievalResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for _, r := range results {
		text := r.ChunkText
		if runeLen(text) < minChunkRunes {
			continue
		}

		// The first line of a slide chunk is sometimes just the slide
		// number; drop it.
		lines := strings.Split(text, "\n")
		if len(lines) > 0 && isNumeric(strings.TrimSpace(lines[0])) {
			lines = lines[1:]
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
		if runeLen(text) < minStrippedRunes {
			continue
		}

		if runeLen(text) > maxChunkRunes {
			cut := []rune(text)[:maxChunkRunes]
			if period := lastRuneIndex(cut, '.'); period > minSentenceCut {
				text = string(cut[:period+1])
			} else {
				text = string(cut) + "…"
			}
		}

		parts = append(parts, text)

		if runeLen(strings.Join(parts, "\n\n")) > maxReplyRunes {
			break
		}
	}

	if len(parts) == 0 {
		parts = append(parts, results[0].ChunkText)
	}

	reply := strings.Join(parts, "\n\n")

	if anyFromFAQ(results) {
		return reply + "\n\n" + attributionFAQ
	}
	return reply + "\n\n" + attributionSlides
}

func anyFromFAQ(results []domain.RetrievalResult) bool {
	for _, r := range results {
		if r.Score > 0 && r.Source == domain.SourceFAQ {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}

func lastRuneIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
