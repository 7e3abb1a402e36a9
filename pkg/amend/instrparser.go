package amend

import "strings"

// anchorMarkers are the sentence-start markers the handcrafted parser tries
// within the first line, in addition to the line's own start (spec.md
// §4.3).
var anchorMarkers = []string{
	"Section ", "Subsection ", "Paragraph ", "Subparagraph ",
	"Clause ", "Subclause ", "Item ", "Subitem ",
}

// AST is a parsed instruction's syntax tree. It preserves the rule name,
// source text, and child rule nodes in document order; RuleName identifies
// which grammar rule matched, and Text is this node's matched substring.
// Grammar nodes form a directed graph via ref; the instruction AST instead
// is always a tree (one parent), so a plain pointer tree is used here even
// though the grammar's own rule-AST uses an arena (grammar.go).
type AST struct {
	RuleName string
	Text     string
	Children []*AST
}

// ParseResult is what the handcrafted instruction parser returns for a
// successful parse (spec.md §4.3).
type ParseResult struct {
	StartIndex int
	EndIndex   int
	EndColumn  int
	Text       string
	AST        *AST
}

// InstructionParser feeds instruction text into a Grammar at multiple
// anchor offsets and keeps the longest accepting parse.
type InstructionParser struct {
	Grammar *Grammar
}

// NewInstructionParser wraps a loaded Grammar.
func NewInstructionParser(g *Grammar) *InstructionParser {
	return &InstructionParser{Grammar: g}
}

// Parse implements spec.md §4.3: form the joined source from lines[startIndex:],
// try every anchor offset found in the first line (plus offset 0), keep the
// longest accepting end, and return the resulting ParseResult. It returns
// nil, not an error, on a parse miss (spec.md §7 error #1) — a miss is
// non-fatal and recorded upstream as "unparseable instruction".
func (ip *InstructionParser) Parse(lines []string, startIndex int) *ParseResult {
	if startIndex >= len(lines) {
		return nil
	}
	source := strings.Join(lines[startIndex:], "\n")
	firstLine := lines[startIndex]

	anchors := []int{0}
	for _, marker := range anchorMarkers {
		idx := 0
		for {
			found := strings.Index(firstLine[idx:], marker)
			if found < 0 {
				break
			}
			anchors = append(anchors, idx+found)
			idx += found + len(marker)
		}
	}

	bestEnd := -1
	for _, a := range anchors {
		if a > len(source) {
			continue
		}
		ends := ip.Grammar.ParseRuleAll("instruction", 0, source[a:])
		for _, e := range ends {
			adjusted := e + a
			if adjusted > bestEnd {
				bestEnd = adjusted
			}
		}
	}

	if bestEnd < 0 {
		return nil
	}

	parsedText := source[:bestEnd]
	endIndex := startIndex + strings.Count(parsedText, "\n")
	endColumn := len(parsedText)
	if nl := strings.LastIndex(parsedText, "\n"); nl >= 0 {
		endColumn = len(parsedText) - (nl + 1)
	}

	return &ParseResult{
		StartIndex: startIndex,
		EndIndex:   endIndex,
		EndColumn:  endColumn,
		Text:       parsedText,
		AST:        buildInstructionAST(parsedText),
	}
}

// buildInstructionAST constructs a minimal single-rule AST node for the
// accepted instruction text. A full reference implementation threads rule
// identity through the grammar evaluator's parse; this parser records the
// top-level "instruction" rule match and lets the translator (translate.go)
// work from the matched text directly via its own regex-based sub-rule
// dispatch, which is how the translator's Edit classification is specified
// (spec.md §4.4 "dispatched on the leading tokens of the edit rule").
func buildInstructionAST(text string) *AST {
	return &AST{RuleName: "instruction", Text: text}
}
