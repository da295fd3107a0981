package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// BuildPPTX assembles a minimal PPTX package with one slide part per entry.
// Each slide's text lines become separate DrawingML paragraphs.
func BuildPPTX(t *testing.T, slides map[int]string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml":        `<?xml version="1.0"?><Types/>`,
		"ppt/presentation.xml":       `<?xml version="1.0"?><p:presentation/>`,
		"ppt/slides/_rels/ignore.me": "not a slide part",
	}

	numbers := make([]int, 0, len(slides))
	for n := range slides {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><p:sld>`)
		for _, line := range strings.Split(slides[n], "\n") {
			fmt.Fprintf(&b, `<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, line)
		}
		b.WriteString(`</p:sld>`)
		files[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = b.String()
	}

	return buildZip(t, files)
}

// BuildDOCX assembles a minimal DOCX package with one w:p element per
// paragraph.
func BuildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&b, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	b.WriteString(`</w:body></w:document>`)

	return buildZip(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   b.String(),
	})
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}
