package amend

import (
	"regexp"
	"strings"
)

// TargetScopeSegmentKind is the closed tag for a TargetScopeSegment.
type TargetScopeSegmentKind int

const (
	SegmentCodeReference TargetScopeSegmentKind = iota
	SegmentActReference
	SegmentScopeSelector
)

// TargetScopeSegment is one segment of an InstructionSemanticTree's top-level
// target scope path (spec.md §3).
type TargetScopeSegment struct {
	Kind  TargetScopeSegmentKind
	Ref   string // CodeReference ("7 U.S.C.") or ActReference ("Public Law 117-58") text
	Level HierarchyLevel // ScopeSelector
}

// LocationRestrictionKind is the closed set of textual-qualifier kinds.
type LocationRestrictionKind int

const (
	LocIn LocationRestrictionKind = iota
	LocBefore
	LocAfter
	LocSentenceOrdinal
	LocSentenceLast
	LocHeading
	LocSubLocationHeading
	LocMatterPreceding
	LocMatterFollowing
)

// InnerLocationTarget is the closed variant describing what a location
// restriction's anchor refers to.
type InnerLocationTarget struct {
	IsRef     bool
	Ref       HierarchyLevel
	IsOrdinal bool
	Ordinal   int
}

// LocationRestriction is a textual qualifier wrapping a scope, e.g. "in the
// matter preceding paragraph (2)" or "in the first sentence".
type LocationRestriction struct {
	Kind    LocationRestrictionKind
	Refs    []HierarchyLevel
	Ordinal int
	Anchor  *InnerLocationTarget
}

// UltimateEditKind is the closed set of leaf edit kinds produced by the
// translator.
type UltimateEditKind int

const (
	EditStrike UltimateEditKind = iota
	EditStrikeInsert
	EditInsert
	EditRewrite
	EditRedesignate
	EditMove
)

// RedesignateMapping pairs an old label with its new label.
type RedesignateMapping struct {
	From HierarchyLevel
	To   HierarchyLevel
}

// UltimateEdit is a leaf of the semantic edit tree.
type UltimateEdit struct {
	Kind            UltimateEditKind
	Target          TargetPath
	StrikingContent string
	Content         string
	EachPlaceItAppears bool
	Before          *HierarchyLevel
	After           *HierarchyLevel
	AtEndOf         *HierarchyLevel
	Mappings        []RedesignateMapping
	Respectively    bool
	MoveFrom        []HierarchyLevel
}

// TreeChildKind is the closed tag for InstructionSemanticTree children.
type TreeChildKind int

const (
	ChildScope TreeChildKind = iota
	ChildLocationRestriction
	ChildEdit
)

// TreeChild is one child of an InstructionSemanticTree node.
type TreeChild struct {
	Kind        TreeChildKind
	Scope       HierarchyLevel
	Restriction LocationRestriction
	Edit        UltimateEdit
	Children    []TreeChild
}

// InstructionSemanticTree is the translator's output: a language-agnostic
// semantic tree of scope wrappers, location restrictions, and ultimate
// edits.
type InstructionSemanticTree struct {
	TargetScopePath []TargetScopeSegment
	TargetSection   string
	Children        []TreeChild
}

// TranslationIssue records structural incompleteness encountered while
// translating (spec.md §7, error #2). The translator accumulates issues in
// a side list and continues producing a partial tree rather than aborting.
type TranslationIssue struct {
	Message    string
	NodeType   string
	SourceText string
}

// Translator converts an instruction's operation tree (from Extractor) or
// parsed AST text (from InstructionParser) into an InstructionSemanticTree.
type Translator struct {
	internalRevenueCodePattern *regexp.Regexp
	uscRefPattern              *regexp.Regexp
	redesignatePattern         *regexp.Regexp
	rangePattern               *regexp.Regexp
	matterPrecedingPattern     *regexp.Regexp
	matterFollowingPattern     *regexp.Regexp
	sentenceOrdinalPattern     *regexp.Regexp
	eachPlaceItAppearsPattern  *regexp.Regexp
	moveSuchPattern            *regexp.Regexp
	toReadAsFollowsPattern     *regexp.Regexp
}

// NewTranslator builds a Translator with all patterns compiled.
func NewTranslator() *Translator {
	return &Translator{
		internalRevenueCodePattern: regexp.MustCompile(`(?i)Internal Revenue Code of 1986`),
		uscRefPattern:              regexp.MustCompile(`(\d+)\s+U\.S\.C\.`),
		redesignatePattern:         regexp.MustCompile(`(?i)redesignating\s+(.+?)\s+as\s+(.+?)(,\s*respectively)?$`),
		rangePattern:               regexp.MustCompile(`(?i)^\(([0-9A-Za-z]+)\)\s+through\s+\(([0-9A-Za-z]+)\)$`),
		matterPrecedingPattern:     regexp.MustCompile(`(?i)matter preceding (\w+)\s+\(([0-9A-Za-z]+)\)`),
		matterFollowingPattern:     regexp.MustCompile(`(?i)matter following (\w+)\s+\(([0-9A-Za-z]+)\)`),
		sentenceOrdinalPattern:     regexp.MustCompile(`(?i)in the (first|second|third|last) sentence`),
		eachPlaceItAppearsPattern:  regexp.MustCompile(`(?i)each place it appears|both places it appears`),
		moveSuchPattern:            regexp.MustCompile(`(?i)moving such section[s]? (before|after)`),
		toReadAsFollowsPattern:     regexp.MustCompile(`(?i)to read as follows:`),
	}
}

// Translate walks an AmendatoryInstruction's operation tree and produces an
// InstructionSemanticTree plus accumulated issues.
func (t *Translator) Translate(instr AmendatoryInstruction) (InstructionSemanticTree, []TranslationIssue) {
	var issues []TranslationIssue

	tree := InstructionSemanticTree{
		TargetScopePath: t.extractTopLevelScope(instr),
	}

	ctx := &translateContext{moveFromRefs: nil}
	for _, node := range instr.Tree {
		children, nodeIssues := t.walkNode(node, ctx)
		issues = append(issues, nodeIssues...)
		tree.Children = append(tree.Children, children...)
	}

	return tree, issues
}

// translateContext carries the state the translator threads through a
// subinstruction walk (spec.md §4.4): the accumulated scope path and the
// most recently seen "in subsections (X) and (Y)" refs for a following
// "moving such sections" edit to resolve `from`.
type translateContext struct {
	moveFromRefs []HierarchyLevel
}

// extractTopLevelScope implements spec.md §4.4's top-level scope extraction:
// prefer an explicit "<title> U.S.C." reference; else a codification
// parenthetical; Internal Revenue Code of 1986 becomes a synthetic 26
// U.S.C. reference.
func (t *Translator) extractTopLevelScope(instr AmendatoryInstruction) []TargetScopeSegment {
	var segs []TargetScopeSegment

	if instr.USCCitation != "" {
		if m := t.uscRefPattern.FindStringSubmatch(instr.USCCitation); m != nil {
			segs = append(segs, TargetScopeSegment{Kind: SegmentCodeReference, Ref: m[1] + " U.S.C."})
		}
	} else if t.internalRevenueCodePattern.MatchString(instr.Target) {
		segs = append(segs, TargetScopeSegment{Kind: SegmentCodeReference, Ref: "26 U.S.C."})
	}

	ex := NewExtractor()
	path := ex.parseTarget(instr.Target)
	for _, lvl := range path {
		segs = append(segs, TargetScopeSegment{Kind: SegmentScopeSelector, Level: lvl})
	}

	return segs
}

// walkNode translates one InstructionNode (and its children) into the
// corresponding TreeChild wrappers and leaf edits.
func (t *Translator) walkNode(node *InstructionNode, ctx *translateContext) ([]TreeChild, []TranslationIssue) {
	var issues []TranslationIssue

	if restriction, ok := t.classifyLocationRestriction(node.Text); ok {
		if restriction.Kind == LocIn && len(restriction.Refs) > 0 {
			ctx.moveFromRefs = restriction.Refs
		}
		var childChildren []TreeChild
		if len(node.Children) == 0 {
			edit, editIssues := t.classifyEdit(node, ctx)
			issues = append(issues, editIssues...)
			childChildren = append(childChildren, TreeChild{Kind: ChildEdit, Edit: edit})
		} else {
			for _, c := range node.Children {
				cc, ci := t.walkNode(c, ctx)
				childChildren = append(childChildren, cc...)
				issues = append(issues, ci...)
			}
		}
		return []TreeChild{{Kind: ChildLocationRestriction, Restriction: restriction, Children: childChildren}}, issues
	}

	if node.Label != nil && !node.Label.IsNone() {
		var childChildren []TreeChild
		if len(node.Children) == 0 && node.Operation.Kind != OpContext && node.Operation.Kind != OpUnknown {
			edit, editIssues := t.classifyEdit(node, ctx)
			issues = append(issues, editIssues...)
			childChildren = append(childChildren, TreeChild{Kind: ChildEdit, Edit: edit})
		} else {
			for _, c := range node.Children {
				cc, ci := t.walkNode(c, ctx)
				childChildren = append(childChildren, cc...)
				issues = append(issues, ci...)
			}
		}
		return []TreeChild{{Kind: ChildScope, Scope: *node.Label, Children: childChildren}}, issues
	}

	if node.Operation.Kind == OpContext || node.Operation.Kind == OpUnknown {
		var out []TreeChild
		for _, c := range node.Children {
			cc, ci := t.walkNode(c, ctx)
			out = append(out, cc...)
			issues = append(issues, ci...)
		}
		return out, issues
	}

	edit, editIssues := t.classifyEdit(node, ctx)
	issues = append(issues, editIssues...)
	return []TreeChild{{Kind: ChildEdit, Edit: edit}}, issues
}

// classifyLocationRestriction recognizes textual qualifiers like "in the
// matter preceding paragraph (2)" or "in the first sentence" (spec.md §4.4).
func (t *Translator) classifyLocationRestriction(text string) (LocationRestriction, bool) {
	if m := t.matterPrecedingPattern.FindStringSubmatch(text); m != nil {
		return LocationRestriction{
			Kind: LocMatterPreceding,
			Anchor: &InnerLocationTarget{IsRef: true, Ref: HierarchyLevel{Tag: classifyLabel(m[2]), Val: m[2]}},
		}, true
	}
	if m := t.matterFollowingPattern.FindStringSubmatch(text); m != nil {
		return LocationRestriction{
			Kind: LocMatterFollowing,
			Anchor: &InnerLocationTarget{IsRef: true, Ref: HierarchyLevel{Tag: classifyLabel(m[2]), Val: m[2]}},
		}, true
	}
	if m := t.sentenceOrdinalPattern.FindStringSubmatch(text); m != nil {
		ordinal := ordinalFromWord(m[1])
		if m[1] == "last" {
			return LocationRestriction{Kind: LocSentenceLast}, true
		}
		return LocationRestriction{Kind: LocSentenceOrdinal, Ordinal: ordinal}, true
	}
	return LocationRestriction{}, false
}

func ordinalFromWord(w string) int {
	switch strings.ToLower(w) {
	case "first":
		return 1
	case "second":
		return 2
	case "third":
		return 3
	default:
		return 0
	}
}

// classifyEdit dispatches on the leading tokens of a node's text to produce
// an UltimateEdit (spec.md §4.4 Edit classification).
func (t *Translator) classifyEdit(node *InstructionNode, ctx *translateContext) (UltimateEdit, []TranslationIssue) {
	var issues []TranslationIssue
	text := node.Text
	op := node.Operation

	switch {
	case t.toReadAsFollowsPattern.MatchString(text):
		return UltimateEdit{Kind: EditRewrite, Target: op.Target, Content: op.Content}, issues

	case op.Kind == OpRedesignate:
		mappings, respectively, ok := t.parseRedesignation(text)
		if !ok {
			issues = append(issues, TranslationIssue{
				Message:    "unable to parse redesignation mapping",
				NodeType:   "redesignate",
				SourceText: text,
			})
		}
		return UltimateEdit{Kind: EditRedesignate, Mappings: mappings, Respectively: respectively}, issues

	case strings.Contains(strings.ToLower(text), "moving such section"):
		var before, after *HierarchyLevel
		if m := t.moveSuchPattern.FindStringSubmatch(text); m != nil {
			if strings.EqualFold(m[1], "before") {
				if len(op.Target) > 0 {
					before = &op.Target[len(op.Target)-1]
				}
			} else {
				if len(op.Target) > 0 {
					after = &op.Target[len(op.Target)-1]
				}
			}
		}
		return UltimateEdit{Kind: EditMove, MoveFrom: ctx.moveFromRefs, Before: before, After: after}, issues

	case op.Kind == OpReplace:
		return UltimateEdit{
			Kind:               EditStrikeInsert,
			Target:             op.Target,
			StrikingContent:    op.StrikingContent,
			Content:            op.Content,
			EachPlaceItAppears: t.eachPlaceItAppearsPattern.MatchString(text),
		}, issues

	case op.Kind == OpDelete:
		return UltimateEdit{
			Kind:               EditStrike,
			Target:             op.Target,
			StrikingContent:    op.StrikingContent,
			EachPlaceItAppears: t.eachPlaceItAppearsPattern.MatchString(text),
		}, issues

	case op.Kind == OpInsert, op.Kind == OpInsertBefore, op.Kind == OpInsertAfter, op.Kind == OpAddAtEnd:
		edit := UltimateEdit{Kind: EditInsert, Target: op.Target, Content: op.Content}
		switch op.Kind {
		case OpInsertBefore:
			if len(op.Target) > 0 {
				edit.Before = &op.Target[len(op.Target)-1]
			}
		case OpInsertAfter:
			if len(op.Target) > 0 {
				edit.After = &op.Target[len(op.Target)-1]
			}
		case OpAddAtEnd:
			if len(op.Target) > 0 {
				edit.AtEndOf = &op.Target[len(op.Target)-1]
			}
		}
		return edit, issues

	default:
		issues = append(issues, TranslationIssue{
			Message:    "could not classify edit",
			NodeType:   string(op.Kind),
			SourceText: text,
		})
		return UltimateEdit{Kind: EditStrike, Target: op.Target}, issues
	}
}

// parseRedesignation implements the redesignation mapping + plural/range
// expansion rules of spec.md §4.4: "redesignating A and B as C and D[,
// respectively]", truncating to the shorter side on a count mismatch.
func (t *Translator) parseRedesignation(text string) ([]RedesignateMapping, bool, bool) {
	m := t.redesignatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false, false
	}
	respectively := m[3] != ""

	froms := expandLabelList(m[1])
	tos := expandLabelList(m[2])

	n := len(froms)
	if len(tos) < n {
		n = len(tos)
	}

	mappings := make([]RedesignateMapping, 0, n)
	for i := 0; i < n; i++ {
		mappings = append(mappings, RedesignateMapping{From: froms[i], To: tos[i]})
	}
	return mappings, respectively, true
}

// expandLabelList expands "(a) and (b)" or "(a) through (c)" into an
// enumerated list of HierarchyLevels. Hyphenated endpoints like "(i)-(iii)"
// are NOT expanded — they're kept as the two explicit endpoints the
// grammar produced (spec.md §4.4).
func expandLabelList(text string) []HierarchyLevel {
	text = strings.TrimSpace(text)
	bare := regexp.MustCompile(`\(([0-9A-Za-z]+)\)`)

	if m := regexp.MustCompile(`(?i)^\(([0-9A-Za-z]+)\)\s+through\s+\(([0-9A-Za-z]+)\)$`).FindStringSubmatch(text); m != nil {
		return expandRange(m[1], m[2])
	}

	if strings.Contains(text, "-") && !strings.Contains(text, " ") {
		matches := bare.FindAllStringSubmatch(text, -1)
		out := make([]HierarchyLevel, 0, len(matches))
		for _, mm := range matches {
			out = append(out, HierarchyLevel{Tag: classifyLabel(mm[1]), Val: mm[1]})
		}
		return out
	}

	matches := bare.FindAllStringSubmatch(text, -1)
	out := make([]HierarchyLevel, 0, len(matches))
	for _, mm := range matches {
		out = append(out, HierarchyLevel{Tag: classifyLabel(mm[1]), Val: mm[1]})
	}
	return out
}

// expandRange enumerates "(a) through (c)" -> a, b, c by alphabetic
// increment (single letters) or numeric increment (digits).
func expandRange(start, end string) []HierarchyLevel {
	tag := classifyLabel(start)
	if isAllDigits(start) && isAllDigits(end) {
		var out []HierarchyLevel
		lo, hi := atoiSafe(start), atoiSafe(end)
		for v := lo; v <= hi; v++ {
			out = append(out, HierarchyLevel{Tag: tag, Val: itoaSafe(v)})
		}
		return out
	}
	if len(start) == 1 && len(end) == 1 {
		var out []HierarchyLevel
		for c := start[0]; c <= end[0]; c++ {
			out = append(out, HierarchyLevel{Tag: tag, Val: string(rune(c))})
		}
		return out
	}
	return []HierarchyLevel{{Tag: tag, Val: start}, {Tag: tag, Val: end}}
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func itoaSafe(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
