// Package amend implements the amendatory instruction pipeline: it turns
// free-form English amendment sentences from draft bills into a structured
// edit plan and applies that plan to the Markdown body of a U.S. Code
// section.
//
// The pipeline has four stages, each in its own file: extraction
// (extractor.go) groups a paragraph stream into AmendatoryInstructions and
// builds each one's operation tree; grammar (grammar.go, grammar_eval.go)
// loads a BNF grammar and evaluates prefix parses; the instruction parser
// (instrparser.go) feeds instruction text through the grammar at several
// anchor offsets and keeps the longest parse; the translator (translate.go)
// lowers the resulting AST into a semantic edit tree; and the applier
// (apply.go) resolves that tree's scopes against a parsed Markdown hierarchy
// (markdown.go) and emits an AmendmentEffect. pipeline.go wires the stages
// together.
//
// Every stage is a pure function of its inputs; there is no shared mutable
// state between instructions and no I/O inside the core — callers do I/O
// (reading the grammar file, the paragraph stream, the section body) before
// invoking the pipeline.
package amend
