package amend

import "testing"

func mkParagraph(text string, indent float64) Paragraph {
	return Paragraph{
		Text:  text,
		Lines: []Line{{XStart: indent, Text: text}},
	}
}

func TestExtractSingleInstruction(t *testing.T) {
	ex := NewExtractor()
	paras := []Paragraph{
		mkParagraph(`Section 3(u)(4) of the Act (7 U.S.C. 2014(u)(4)) is amended by striking "2023" and inserting "2024".`, 0),
	}

	instrs := ex.Extract(paras)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instrs))
	}
	if instrs[0].USCCitation != "7 U.S.C. 2014(u)(4)" {
		t.Fatalf("unexpected citation: %q", instrs[0].USCCitation)
	}
}

func TestExtractStopsAtSecHeader(t *testing.T) {
	ex := NewExtractor()
	paras := []Paragraph{
		mkParagraph(`Section 5 of the Act is amended by striking "A" and inserting "B".`, 0),
		mkParagraph(`SEC. 102. ANOTHER SECTION.`, 0),
		mkParagraph(`Section 6 of the Act is amended by striking "C" and inserting "D".`, 0),
	}

	instrs := ex.Extract(paras)
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions split by SEC. header, got %d", len(instrs))
	}
}

func TestPluralTargetSplitting(t *testing.T) {
	ex := NewExtractor()
	op := ex.parseOperation(`by striking subparagraphs (A) and (B)`)
	if len(op.Target) == 0 {
		t.Fatal("expected a target to be parsed")
	}
}

func TestClassifyKindReplace(t *testing.T) {
	ex := NewExtractor()
	op := ex.parseOperation(`by striking "old text" and inserting "new text"`)
	if op.Kind != OpReplace {
		t.Fatalf("expected replace, got %v", op.Kind)
	}
	if op.StrikingContent != "old text" || op.Content != "new text" {
		t.Fatalf("unexpected striking/content: %q / %q", op.StrikingContent, op.Content)
	}
}

func TestClassifyKindDelete(t *testing.T) {
	ex := NewExtractor()
	op := ex.parseOperation(`is repealed`)
	if op.Kind != OpDelete {
		t.Fatalf("expected delete, got %v", op.Kind)
	}
}

func TestClassifyKindInsertBeforeAfter(t *testing.T) {
	ex := NewExtractor()
	before := ex.parseOperation(`by inserting "X" before "households"`)
	if before.Kind != OpInsertBefore {
		t.Fatalf("expected insert_before, got %v", before.Kind)
	}
	after := ex.parseOperation(`by inserting "X" after "households"`)
	if after.Kind != OpInsertAfter {
		t.Fatalf("expected insert_after, got %v", after.Kind)
	}
}

func TestUSCCitationSectionOfTitle(t *testing.T) {
	ex := NewExtractor()
	got := ex.extractUSCCitation("Section 101 of title 10, United States Code, is amended")
	if got != "10 U.S.C. 101" {
		t.Fatalf("unexpected citation: %q", got)
	}
}

func TestParseTargetSectionFirst(t *testing.T) {
	ex := NewExtractor()
	path := ex.parseTarget("Section 28(d)(1)(F)")
	if len(path) == 0 || path[0].Tag != RankSection {
		t.Fatalf("expected section level first, got %v", path)
	}
}

func TestLeafOperationKindsAreDefined(t *testing.T) {
	ex := NewExtractor()
	paras := []Paragraph{
		mkParagraph(`Section 9 of the Act is amended by adding at the end the following:`, 0),
		mkParagraph(`"(c) New subsection text."`, 10),
	}
	instrs := ex.Extract(paras)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instrs))
	}
	var walk func(nodes []*InstructionNode)
	walk = func(nodes []*InstructionNode) {
		for _, n := range nodes {
			switch n.Operation.Kind {
			case OpReplace, OpDelete, OpInsert, OpInsertBefore, OpInsertAfter, OpAddAtEnd, OpRedesignate, OpContext, OpUnknown:
			default:
				t.Fatalf("unexpected operation kind: %v", n.Operation.Kind)
			}
			walk(n.Children)
		}
	}
	walk(instrs[0].Tree)
}
