package amend

import (
	"fmt"
	"regexp"
	"strings"
)

// GrammarError reports a grammar construction failure: an unknown rule
// reference, an unterminated literal, or an empty sequence. Grammar
// construction errors are fatal and only ever occur at load time, never
// during per-instruction parsing (spec.md §7, error #6).
type GrammarError struct {
	Rule    string
	Message string
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return "grammar error: " + e.Message
	}
	return fmt.Sprintf("grammar error in rule %q: %s", e.Rule, e.Message)
}

// NodeKind is the closed tag for a grammar rule-AST node.
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeCharClass
	NodeRef
	NodeSequence
	NodeChoice
	NodeRepeat
)

// RepeatMode is the closed set of postfix repetition operators.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatStar
	RepeatPlus
	RepeatOptional
)

// RuleNodeID indexes into a Grammar's node arena. Grammar rule-ASTs form a
// directed, possibly cyclic graph; representing them as an arena of nodes
// addressed by integer id (rather than a pointer graph) keeps ref nodes
// trivially memoizable by (ruleID, pos) and avoids any ownership-cycle
// concerns when traversing (spec.md §9 Design Notes).
type RuleNodeID int

// RuleNode is one node of a grammar rule's AST, tagged by Kind. Only the
// fields relevant to Kind are populated.
type RuleNode struct {
	Kind NodeKind

	Literal   string       // NodeLiteral
	ClassExpr *regexp.Regexp // NodeCharClass
	RefRule   string       // NodeRef: target rule name (resolved to RefID at Build)
	RefID     int          // NodeRef: resolved rule index
	Children  []RuleNodeID // NodeSequence, NodeChoice: operand nodes
	Repeat    RepeatMode   // NodeRepeat
	Inner     RuleNodeID   // NodeRepeat
}

// Rule is a named production: an ordered list of alternative right-hand
// sides is itself represented as a NodeChoice root, so Rule simply pairs a
// name with its root node id.
type Rule struct {
	Name string
	Root RuleNodeID
}

// Grammar is an immutable, reentrant BNF grammar: an arena of rule-AST
// nodes plus an ordered mapping from rule name to rule index. It is loaded
// once and never mutated afterward (spec.md §5).
type Grammar struct {
	Rules     []Rule
	RuleIndex map[string]int
	nodes     []RuleNode
}

func (g *Grammar) addNode(n RuleNode) RuleNodeID {
	g.nodes = append(g.nodes, n)
	return RuleNodeID(len(g.nodes) - 1)
}

func (g *Grammar) node(id RuleNodeID) *RuleNode {
	return &g.nodes[id]
}

// fallbackRules are injected when the grammar source does not define them
// (spec.md §4.2 Fallback rules).
var fallbackRules = []string{
	`section_id ::= [0-9]+ [A-Za-z0-9-]* | [0-9]+`,
	`subitem_or_sub ::= subitem_id`,
	`sub_location_range ::= sub_location " through " sub_location`,
}

// LoadGrammar parses a plain-text BNF grammar source (spec.md §6): lines of
// the form "name ::= expression", with subsequent non-empty lines lacking
// "::=" treated as whitespace-joined continuations of the previous rule.
// It injects the canonical fallback rules for section_id, subitem_or_sub,
// and sub_location_range when the source omits them, and requires an
// "instruction" rule to be present. Unknown rule references, unterminated
// literals, and empty sequences are reported as *GrammarError.
func LoadGrammar(source string) (*Grammar, error) {
	raw := map[string]string{}
	order := []string{}

	var currentName string
	for _, rawLine := range strings.Split(source, "\n") {
		line := rawLine
		if strings.TrimSpace(line) == "" {
			continue
		}
		if idx := strings.Index(line, "::="); idx >= 0 {
			name := strings.TrimSpace(line[:idx])
			expr := strings.TrimSpace(line[idx+3:])
			if _, exists := raw[name]; !exists {
				order = append(order, name)
			}
			raw[name] = expr
			currentName = name
			continue
		}
		if currentName != "" {
			raw[currentName] += " " + strings.TrimSpace(line)
		}
	}

	for _, fb := range fallbackRules {
		idx := strings.Index(fb, "::=")
		name := strings.TrimSpace(fb[:idx])
		if _, exists := raw[name]; !exists {
			raw[name] = strings.TrimSpace(fb[idx+3:])
			order = append(order, name)
		}
	}

	if _, ok := raw["instruction"]; !ok {
		return nil, &GrammarError{Message: `grammar must define an "instruction" rule`}
	}

	g := &Grammar{RuleIndex: map[string]int{}}
	for i, name := range order {
		g.RuleIndex[name] = i
	}
	g.Rules = make([]Rule, len(order))

	for i, name := range order {
		p := &exprParser{src: raw[name], rule: name}
		root, err := p.parseChoice()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos != len(p.src) {
			return nil, &GrammarError{Rule: name, Message: "trailing input after expression"}
		}
		rootID := buildNode(g, root)
		g.Rules[i] = Rule{Name: name, Root: rootID}
	}

	for i := range g.nodes {
		if err := resolveRefs(g, &g.nodes[i]); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func resolveRefs(g *Grammar, n *RuleNode) error {
	if n.Kind != NodeRef {
		return nil
	}
	idx, ok := g.RuleIndex[n.RefRule]
	if !ok {
		return &GrammarError{Message: fmt.Sprintf("unknown rule reference %q", n.RefRule)}
	}
	n.RefID = idx
	return nil
}

// astNode is the parser's intermediate representation before being written
// into the grammar's node arena.
type astNode struct {
	kind     NodeKind
	literal  string
	class    string
	ref      string
	children []*astNode
	repeat   RepeatMode
	inner    *astNode
}

func buildNode(g *Grammar, a *astNode) RuleNodeID {
	switch a.kind {
	case NodeLiteral:
		return g.addNode(RuleNode{Kind: NodeLiteral, Literal: a.literal})
	case NodeCharClass:
		return g.addNode(RuleNode{Kind: NodeCharClass, ClassExpr: regexp.MustCompile("^[" + a.class + "]")})
	case NodeRef:
		return g.addNode(RuleNode{Kind: NodeRef, RefRule: a.ref})
	case NodeRepeat:
		innerID := buildNode(g, a.inner)
		return g.addNode(RuleNode{Kind: NodeRepeat, Repeat: a.repeat, Inner: innerID})
	case NodeSequence, NodeChoice:
		ids := make([]RuleNodeID, 0, len(a.children))
		for _, c := range a.children {
			ids = append(ids, buildNode(g, c))
		}
		return g.addNode(RuleNode{Kind: a.kind, Children: ids})
	}
	return g.addNode(RuleNode{Kind: NodeSequence})
}
