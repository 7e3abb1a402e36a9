package amend

import "strings"

// Pipeline wires together extraction, grammar-driven parsing, translation,
// and application (spec.md §2 control flow): Paragraphs → Extractor →
// (Instruction, text) → Parser → AST → Translator → EditTree →
// Applier(sectionBody) → Effect.
type Pipeline struct {
	Grammar    *Grammar
	extractor  *Extractor
	parser     *InstructionParser
	translator *Translator
	applier    *Applier
}

// NewPipeline builds a Pipeline around an already-loaded Grammar.
func NewPipeline(g *Grammar) *Pipeline {
	return &Pipeline{
		Grammar:    g,
		extractor:  NewExtractor(),
		parser:     NewInstructionParser(g),
		translator: NewTranslator(),
		applier:    NewApplier(),
	}
}

// InstructionResult bundles one instruction's parse/translate outcome,
// including any non-fatal issues recorded along the way.
type InstructionResult struct {
	Instruction AmendatoryInstruction
	Parsed      *ParseResult // nil on a parse miss (spec.md §7, error #1)
	Tree        InstructionSemanticTree
	Issues      []TranslationIssue
}

// Run executes the full pipeline over a paragraph stream and a target
// section body, returning one InstructionResult per extracted instruction
// plus the AmendmentEffect of applying each instruction's tree to the body.
//
// Per spec.md §4.6, the applier accepts either the extractor's operation
// tree or the translator's semantic tree as its entry point; Run applies
// the extractor's tree directly (ApplyInstructionTree), since it carries
// the same semantic fields without requiring a successful grammar parse —
// an instruction with a parse miss still gets its structural tree applied,
// matching spec.md §7's requirement that a parse miss "records... without
// aborting the batch" rather than losing the instruction's edits entirely.
func (p *Pipeline) Run(paragraphs []Paragraph, sectionPath, sectionBody string) ([]InstructionResult, []AmendmentEffect) {
	instructions := p.extractor.Extract(paragraphs)

	results := make([]InstructionResult, 0, len(instructions))
	effects := make([]AmendmentEffect, 0, len(instructions))

	for _, instr := range instructions {
		lines := strings.Split(instr.Text, "\n")
		parsed := p.parser.Parse(lines, 0)

		tree, issues := p.translator.Translate(instr)

		results = append(results, InstructionResult{
			Instruction: instr,
			Parsed:      parsed,
			Tree:        tree,
			Issues:      issues,
		})

		effect := p.applier.ApplyInstructionTree(instr.Tree, sectionPath, sectionBody)
		effects = append(effects, effect)
		sectionBody = effectBody(effect, sectionBody)
	}

	return results, effects
}

// effectBody returns the effect's resulting body text, or the original body
// when the effect's status is unsupported (spec.md §3 AmendmentEffect
// invariant: unsupported leaves segments equal to the original body).
func effectBody(effect AmendmentEffect, original string) string {
	if effect.Status != StatusOK || len(effect.Segments) == 0 {
		return original
	}
	var sb strings.Builder
	for _, seg := range effect.Segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
