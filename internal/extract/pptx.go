// Package extract pulls raw text out of the source documents: slide text
// from PPTX decks and question/answer pairs from the DOCX FAQ. OOXML
// packages are ZIP archives of XML parts; the text runs are scraped with
// regular expressions rather than a full XML parse, which is enough for
// text content and keeps the package dependency-free.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

// Slide is the extracted text of one presentation slide.
type Slide struct {
	Number int
	Text   string
}

var (
	slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	// aParaRe matches one DrawingML paragraph; aTextRe the text runs inside it.
	aParaRe = regexp.MustCompile(`(?s)<a:p>.*?</a:p>|(?s)<a:p [^>]*>.*?</a:p>`)
	aTextRe = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
)

// xmlUnescaper reverses the predefined XML entities found in text runs.
var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// ExtractSlides extracts the text of every slide in a PPTX package, in slide
// order. Slides without any text are omitted. Paragraphs within a slide are
// joined with newlines, text runs within a paragraph concatenated.
func ExtractSlides(content []byte) ([]Slide, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract pptx: not a zip: %w", err)
	}

	var slides []Slide
	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		part, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("extract pptx: read %s: %w", f.Name, err)
		}

		text := slideText(string(part))
		if text == "" {
			continue
		}
		slides = append(slides, Slide{Number: number, Text: text})
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Number < slides[j].Number })
	return slides, nil
}

// LoadSlides reads a PPTX file from disk. A missing file is reported as
// ErrSourceUnavailable so callers can skip the source instead of failing.
func LoadSlides(path string) ([]Slide, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeSourceUnavailable, "slide deck not found: "+path, err)
		}
		return nil, err
	}
	return ExtractSlides(content)
}

func slideText(part string) string {
	var lines []string
	for _, para := range aParaRe.FindAllString(part, -1) {
		var b strings.Builder
		for _, run := range aTextRe.FindAllStringSubmatch(para, -1) {
			b.WriteString(run[1])
		}
		line := strings.TrimSpace(xmlUnescaper.Replace(b.String()))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
