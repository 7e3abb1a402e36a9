package draft

import (
	"strings"

	"github.com/coolbeans/regula/pkg/amend"
)

// linesPerSyntheticPage approximates how many lines of a plain-text bill
// correspond to one printed page, since a .txt bill carries no PDF page
// coordinates of its own.
const linesPerSyntheticPage = 55

// ParagraphsFromSection adapts a DraftSection's RawText into the
// Paragraph/Line stream the amendatory pipeline's Extractor consumes. Real
// PDF-sourced bills carry true page and x-coordinate metadata; this adapter
// exists so that plain-text bill fixtures (what Parser already produces) can
// drive the same pipeline without a PDF extraction step.
func ParagraphsFromSection(section *DraftSection) []amend.Paragraph {
	lines := strings.Split(section.RawText, "\n")

	var paragraphs []amend.Paragraph
	var cur []amend.Line
	lineNo := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		var texts []string
		for _, l := range cur {
			texts = append(texts, l.Text)
		}
		paragraphs = append(paragraphs, amend.Paragraph{
			Text:      strings.Join(texts, "\n"),
			Lines:     cur,
			StartPage: cur[0].Page,
			EndPage:   cur[len(cur)-1].Page,
		})
		cur = nil
	}

	for _, raw := range lines {
		lineNo++
		trimmed := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			flush()
			continue
		}
		indent := leadingWhitespaceWidth(trimmed)
		cur = append(cur, amend.Line{
			XStart: float64(indent),
			Y:      float64(lineNo),
			Page:   lineNo / linesPerSyntheticPage,
			Text:   strings.TrimLeft(trimmed, " \t"),
		})
	}
	flush()

	return paragraphs
}

// leadingWhitespaceWidth counts a line's leading whitespace, expanding tabs
// to a width of 4 to approximate a PDF extractor's x-coordinate spacing.
func leadingWhitespaceWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
