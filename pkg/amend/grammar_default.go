package amend

import _ "embed"

//go:embed grammardata/instruction.bnf
var defaultGrammarSource string

// DefaultGrammar loads the grammar bundled with the module — a reasonable
// starting point for a CLI invocation or test that has no external grammar
// file configured. Real deployments are expected to point GrammarStore at a
// maintained grammar directory instead (spec.md §6's grammar file is a data
// input, not a component).
func DefaultGrammar() (*Grammar, error) {
	return LoadGrammar(defaultGrammarSource)
}
