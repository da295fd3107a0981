package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ogrenci-destek/destekai/internal/chunker"
	"github.com/ogrenci-destek/destekai/internal/domain"
)

// docxDocumentPath is the main document body inside a .docx package.
const docxDocumentPath = "word/document.xml"

var (
	wParaRe = regexp.MustCompile(`(?s)<w:p>.*?</w:p>|(?s)<w:p [^>]*>.*?</w:p>`)
	wTextRe = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

	// sectionRe matches numbered section headings like "1. İşyeri Uygulama...".
	sectionRe = regexp.MustCompile(`^(\d+)\.\s+(.+)`)
)

// ExtractQA extracts question/answer pairs from the DOCX FAQ document. Two
// layouts are supported: question and answer in a single paragraph
// ("Soru: ...\nCevap: ...") and in separate "Soru:" / "Cevap:" paragraphs,
// where bare paragraphs after a question continue the current answer.
// Numbered headings set the section label carried on subsequent pairs.
func ExtractQA(content []byte) ([]chunker.QAPair, error) {
	paragraphs, err := docxParagraphs(content)
	if err != nil {
		return nil, err
	}

	var (
		pairs       []chunker.QAPair
		section     string
		question    string
		answerLines []string
	)

	flush := func() {
		if question != "" && len(answerLines) > 0 {
			pairs = append(pairs, chunker.QAPair{
				Question: question,
				Answer:   chunker.Normalize(strings.Join(answerLines, "\n")),
				Section:  section,
			})
		}
		question = ""
		answerLines = nil
	}

	for _, para := range paragraphs {
		// Non-breaking spaces show up around the Soru/Cevap markers.
		text := strings.TrimSpace(strings.ReplaceAll(para, "\u00a0", " "))
		if text == "" {
			continue
		}

		if sectionRe.MatchString(text) && !strings.Contains(text, "Soru:") && !strings.Contains(text, "Cevap:") {
			flush()
			section = text
			continue
		}

		if strings.Contains(text, "Soru:") && strings.Contains(text, "Cevap:") {
			flush()
			parts := strings.SplitN(text, "Cevap:", 2)
			q := strings.TrimSpace(strings.ReplaceAll(parts[0], "Soru:", ""))
			a := strings.TrimSpace(parts[1])
			if q != "" && a != "" {
				pairs = append(pairs, chunker.QAPair{Question: q, Answer: a, Section: section})
			}
			continue
		}

		if rest, ok := strings.CutPrefix(text, "Soru:"); ok {
			flush()
			question = strings.TrimSpace(rest)
			continue
		}

		if rest, ok := strings.CutPrefix(text, "Cevap:"); ok {
			if answer := strings.TrimSpace(rest); answer != "" {
				answerLines = append(answerLines, answer)
			}
			continue
		}

		// Continuation of the current answer.
		if question != "" {
			answerLines = append(answerLines, text)
		}
	}
	flush()

	return pairs, nil
}

// LoadQA reads the DOCX FAQ from disk. A missing file is reported as
// ErrSourceUnavailable so callers can skip the source instead of failing.
func LoadQA(path string) ([]chunker.QAPair, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeSourceUnavailable, "faq document not found: "+path, err)
		}
		return nil, err
	}
	return ExtractQA(content)
}

func docxParagraphs(content []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract docx: not a zip: %w", err)
	}

	var document []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentPath {
			continue
		}
		document, err = readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("extract docx: read %s: %w", f.Name, err)
		}
		break
	}
	if document == nil {
		return nil, fmt.Errorf("extract docx: %s not found", docxDocumentPath)
	}

	var paragraphs []string
	for _, para := range wParaRe.FindAllString(string(document), -1) {
		var b strings.Builder
		for _, run := range wTextRe.FindAllStringSubmatch(para, -1) {
			b.WriteString(run[1])
		}
		paragraphs = append(paragraphs, xmlUnescaper.Replace(b.String()))
	}
	return paragraphs, nil
}
