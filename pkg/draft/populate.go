package draft

import (
	"strings"

	"github.com/coolbeans/regula/pkg/amend"
)

// PopulateAmendments runs the amendatory instruction pipeline (extractor,
// grammar-driven parser, translator) over the section's raw text and fills
// in both Instructions (the full tree) and the legacy flat Amendments slice,
// so existing callers of DraftSection.Amendments keep working unchanged.
//
// When an instruction's text doesn't parse against g (a non-fatal parse
// miss), that one instruction falls back to the older Recognizer so a result
// is still produced for it rather than silently dropping it.
func (section *DraftSection) PopulateAmendments(g *amend.Grammar) error {
	paragraphs := ParagraphsFromSection(section)

	extractor := amend.NewExtractor()
	instructions := extractor.Extract(paragraphs)
	section.Instructions = instructions

	parser := amend.NewInstructionParser(g)
	translator := amend.NewTranslator()
	recognizer := NewRecognizer()

	var amendments []Amendment
	for _, instr := range instructions {
		lines := strings.Split(instr.Text, "\n")
		parsed := parser.Parse(lines, 0)
		if parsed == nil {
			fallback, err := recognizer.ExtractAmendments(instr.Text)
			if err != nil {
				continue
			}
			amendments = append(amendments, fallback...)
			continue
		}

		tree, _ := translator.Translate(instr)
		amendments = append(amendments, projectSemanticTree(tree)...)
	}

	section.Amendments = amendments
	return nil
}

// projectSemanticTree walks a translated InstructionSemanticTree and
// flattens its ChildEdit leaves down into the legacy Amendment shape.
func projectSemanticTree(tree amend.InstructionSemanticTree) []Amendment {
	title, section := scopeTitleAndSection(tree.TargetScopePath)
	return projectChildren(tree.Children, title, section, "")
}

func scopeTitleAndSection(segments []amend.TargetScopeSegment) (title, section string) {
	for _, seg := range segments {
		switch seg.Kind {
		case amend.SegmentCodeReference, amend.SegmentActReference:
			title = seg.Ref
		case amend.SegmentScopeSelector:
			if seg.Level.Tag == amend.RankSection && section == "" {
				section = seg.Level.Val
			}
		}
	}
	return title, section
}

func projectChildren(children []amend.TreeChild, title, section, subsection string) []Amendment {
	var out []Amendment
	for _, c := range children {
		switch c.Kind {
		case amend.ChildScope:
			sub := subsection
			if c.Scope.Tag == amend.RankSubsection {
				sub = c.Scope.Val
			}
			out = append(out, projectChildren(c.Children, title, section, sub)...)
		case amend.ChildLocationRestriction:
			out = append(out, projectChildren(c.Children, title, section, subsection)...)
		case amend.ChildEdit:
			out = append(out, amendmentFromEdit(c.Edit, title, section, subsection))
		}
	}
	return out
}

func amendmentFromEdit(edit amend.UltimateEdit, title, section, subsection string) Amendment {
	a := Amendment{
		TargetTitle:      title,
		TargetSection:    section,
		TargetSubsection: subsection,
		StrikeText:       edit.StrikingContent,
		InsertText:       edit.Content,
	}
	switch edit.Kind {
	case amend.EditStrike:
		a.Type = AmendRepeal
	case amend.EditStrikeInsert, amend.EditRewrite:
		a.Type = AmendStrikeInsert
	case amend.EditInsert:
		if edit.AtEndOf != nil {
			a.Type = AmendAddAtEnd
		} else {
			a.Type = AmendAddNewSection
		}
	case amend.EditRedesignate:
		a.Type = AmendRedesignate
	case amend.EditMove:
		a.Type = AmendRedesignate
	}
	return a
}
