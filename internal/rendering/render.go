// Package rendering converts generated resume text into a typed document
// and lays it out as a styled, paginated PDF.
package rendering

import "strings"

// LineKind classifies one line of the generated text.
type LineKind string

// Recognized line kinds, from strongest heading to plain spacing.
const (
	KindH1        LineKind = "h1"
	KindH2        LineKind = "h2"
	KindH3        LineKind = "h3"
	KindBullet    LineKind = "bullet"
	KindParagraph LineKind = "paragraph"
	KindBlank     LineKind = "blank"
)

// Line is a single classified line.
type Line struct {
	Kind LineKind
	Text string
}

// Document is the typed form of the generated resume text. It is built
// fresh on every export and never mutated afterwards.
type Document struct {
	Lines []Line
}

// Render classifies each line of the generated text. Trailing whitespace
// is trimmed first; the first matching rule wins. Any line that matches
// no heading or bullet pattern falls back to a paragraph, so malformed
// input never aborts rendering.
func Render(text string) *Document {
	doc := &Document{}
	if text == "" {
		return doc
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		switch {
		case line == "":
			doc.Lines = append(doc.Lines, Line{Kind: KindBlank})
		case strings.HasPrefix(line, "### "):
			doc.Lines = append(doc.Lines, Line{Kind: KindH3, Text: strings.TrimPrefix(line, "### ")})
		case strings.HasPrefix(line, "## "):
			doc.Lines = append(doc.Lines, Line{Kind: KindH2, Text: strings.TrimPrefix(line, "## ")})
		case strings.HasPrefix(line, "# "):
			doc.Lines = append(doc.Lines, Line{Kind: KindH1, Text: strings.TrimPrefix(line, "# ")})
		case strings.HasPrefix(line, "- "):
			doc.Lines = append(doc.Lines, Line{Kind: KindBullet, Text: strings.TrimPrefix(line, "- ")})
		default:
			doc.Lines = append(doc.Lines, Line{Kind: KindParagraph, Text: line})
		}
	}

	return doc
}
