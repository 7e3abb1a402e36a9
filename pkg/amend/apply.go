package amend

import (
	"regexp"
	"strings"
)

// SegmentKind is the closed tag for one span of an AmendmentEffect's
// post-patch body.
type SegmentKind string

const (
	SegUnchanged SegmentKind = "unchanged"
	SegDeleted   SegmentKind = "deleted"
	SegInserted  SegmentKind = "inserted"
)

// Segment is one span of the applier's final output body.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Change records one applied patch's deleted/inserted text.
type Change struct {
	Deleted  string
	Inserted string
}

// AttemptOutcome is the closed set of per-operation patch outcomes.
type AttemptOutcome string

const (
	OutcomeApplied         AttemptOutcome = "applied"
	OutcomeNoPatch         AttemptOutcome = "no_patch"
	OutcomeScopeUnresolved AttemptOutcome = "scope_unresolved"
)

// SearchTextKind classifies what text an attempt searched for.
type SearchTextKind string

const (
	SearchStriking     SearchTextKind = "striking"
	SearchAnchorBefore SearchTextKind = "anchor_before"
	SearchAnchorAfter  SearchTextKind = "anchor_after"
	SearchNone         SearchTextKind = "none"
)

// OperationMatchAttempt is the per-operation diagnostic record spec.md
// §4.6 requires.
type OperationMatchAttempt struct {
	OperationType        OperationKind
	NodeText             string
	StrikingContent      string
	TargetPath           string
	HasExplicitTargetPath bool
	ScopedRange          string
	SearchText           string
	SearchTextKind       SearchTextKind
	SearchIndex          int
	PatchApplied         bool
	Outcome              AttemptOutcome
}

// DebugInfo is the applier's auxiliary diagnostic bundle.
type DebugInfo struct {
	SectionTextLength int
	OperationCount    int
	OperationAttempts []OperationMatchAttempt
	FailureReason     string
}

// EffectStatus is the closed tag for an AmendmentEffect's overall status.
type EffectStatus string

const (
	StatusOK         EffectStatus = "ok"
	StatusUnsupported EffectStatus = "unsupported"
)

// AmendmentEffect is the applier's output: the annotated result of applying
// an edit tree to a section body.
type AmendmentEffect struct {
	Status      EffectStatus
	SectionPath string
	Segments    []Segment
	Changes     []Change
	Debug       DebugInfo
}

// flatOperation is one actionable operation produced by flattening the
// operation/edit tree, carrying its fully merged target path.
type flatOperation struct {
	kind            OperationKind
	editKind        *UltimateEditKind
	text            string
	target          TargetPath
	strikingContent string
	content         string
	before          *HierarchyLevel
	after           *HierarchyLevel
	atEndOf         *HierarchyLevel
	mappings        []RedesignateMapping
}

const scopedRangePreviewLimit = 600

var (
	designatorPrefixPattern = regexp.MustCompile(`^\([0-9A-Za-z]+\)\s*`)
	sectionRefPattern       = regexp.MustCompile(`(?i)section\s+\d+((?:\([0-9A-Za-z]+\))+)`)
	markdownLinkPattern     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// Applier resolves an edit tree's scopes against a parsed Markdown section
// body and generates a non-overlapping sequence of patches.
type Applier struct{}

// NewApplier constructs an Applier. The applier carries no state of its own
// — everything it needs is threaded through Apply's parameters, matching
// the pipeline's single-threaded, synchronous resource model (spec.md §5).
func NewApplier() *Applier {
	return &Applier{}
}

// ApplyInstructionTree runs the applier directly against an extractor-level
// operation tree — spec.md §4.6 permits either entry point since both trees
// carry the same semantic fields.
func (ap *Applier) ApplyInstructionTree(nodes []*InstructionNode, sectionPath, sectionBody string) AmendmentEffect {
	ops := flattenInstructionNodes(nodes, nil)
	return ap.apply(ops, sectionPath, sectionBody)
}

// ApplySemanticTree runs the applier against a translator-level semantic
// edit tree.
func (ap *Applier) ApplySemanticTree(tree InstructionSemanticTree, sectionPath, sectionBody string) AmendmentEffect {
	var inherited TargetPath
	for _, seg := range tree.TargetScopePath {
		if seg.Kind == SegmentScopeSelector {
			inherited = append(inherited, seg.Level)
		}
	}
	ops := flattenTreeChildren(tree.Children, inherited)
	return ap.apply(ops, sectionPath, sectionBody)
}

func flattenInstructionNodes(nodes []*InstructionNode, inherited TargetPath) []flatOperation {
	var out []flatOperation
	for _, n := range nodes {
		merged := inherited.Merge(n.Operation.Target)
		if n.Operation.Kind == OpContext || n.Operation.Kind == OpUnknown {
			out = append(out, flattenInstructionNodes(n.Children, merged)...)
			continue
		}
		out = append(out, flatOperation{
			kind:            n.Operation.Kind,
			text:            n.Text,
			target:          merged,
			strikingContent: n.Operation.StrikingContent,
			content:         n.Operation.Content,
		})
		out = append(out, flattenInstructionNodes(n.Children, merged)...)
	}
	return out
}

func flattenTreeChildren(children []TreeChild, inherited TargetPath) []flatOperation {
	var out []flatOperation
	for _, c := range children {
		switch c.Kind {
		case ChildScope:
			merged := inherited.Merge(TargetPath{c.Scope})
			out = append(out, flattenTreeChildren(c.Children, merged)...)
		case ChildLocationRestriction:
			out = append(out, flattenTreeChildren(c.Children, inherited)...)
		case ChildEdit:
			merged := inherited.Merge(c.Edit.Target)
			ek := c.Edit.Kind
			out = append(out, flatOperation{
				kind:            editKindToOpKind(ek),
				editKind:        &ek,
				text:            "",
				target:          merged,
				strikingContent: c.Edit.StrikingContent,
				content:         c.Edit.Content,
				before:          c.Edit.Before,
				after:           c.Edit.After,
				atEndOf:         c.Edit.AtEndOf,
				mappings:        c.Edit.Mappings,
			})
		}
	}
	return out
}

func editKindToOpKind(k UltimateEditKind) OperationKind {
	switch k {
	case EditStrike:
		return OpDelete
	case EditStrikeInsert:
		return OpReplace
	case EditInsert:
		return OpInsert
	case EditRewrite:
		return OpReplace
	case EditRedesignate:
		return OpRedesignate
	case EditMove:
		return OpContext
	default:
		return OpUnknown
	}
}

// apply is the shared implementation behind both entry points.
func (ap *Applier) apply(ops []flatOperation, sectionPath, sectionBody string) AmendmentEffect {
	working := sectionBody
	var changes []Change
	var attempts []OperationMatchAttempt
	redesignations := map[string]HierarchyLevel{} // new label key -> old label

	for _, op := range ops {
		if op.kind == OpRedesignate {
			for _, m := range op.mappings {
				redesignations[m.To.String()] = m.From
			}
		}
	}

	anyApplied := false
	for _, op := range ops {
		_, hierarchy := ParseMarkdownHierarchy(working)

		hasExplicit := len(op.target) > 0
		attempt := OperationMatchAttempt{
			OperationType:         op.kind,
			NodeText:              op.text,
			StrikingContent:       op.strikingContent,
			TargetPath:            op.target.String(),
			HasExplicitTargetPath: hasExplicit,
			SearchTextKind:        SearchNone,
			Outcome:               OutcomeNoPatch,
		}

		if op.kind == OpRedesignate || op.kind == OpContext {
			attempt.Outcome = OutcomeNoPatch
			attempts = append(attempts, attempt)
			continue
		}

		scopeStart, scopeEnd := 0, len(working)
		if hasExplicit {
			start, end, resolved := ap.resolveScope(hierarchy, op.target, working, redesignations)
			if !resolved {
				attempt.Outcome = OutcomeScopeUnresolved
				attempts = append(attempts, attempt)
				return AmendmentEffect{
					Status:      StatusUnsupported,
					SectionPath: sectionPath,
					Segments:    []Segment{{Kind: SegUnchanged, Text: sectionBody}},
					Changes:     nil,
					Debug: DebugInfo{
						SectionTextLength: len(sectionBody),
						OperationCount:    len(ops),
						OperationAttempts: attempts,
						FailureReason:     "explicit_target_scope_unresolved",
					},
				}
			}
			scopeStart, scopeEnd = start, end
		}

		preview := working[scopeStart:scopeEnd]
		if len(preview) > scopedRangePreviewLimit {
			preview = preview[:scopedRangePreviewLimit]
		}
		attempt.ScopedRange = preview

		newWorking, change, applied, searchKind, searchText, searchIdx := ap.applyOne(op, working, scopeStart, scopeEnd)
		attempt.SearchTextKind = searchKind
		attempt.SearchText = searchText
		attempt.SearchIndex = searchIdx
		attempt.PatchApplied = applied
		if applied {
			attempt.Outcome = OutcomeApplied
			working = newWorking
			changes = append(changes, change)
			anyApplied = true
		} else {
			attempt.Outcome = OutcomeNoPatch
		}
		attempts = append(attempts, attempt)
	}

	if !anyApplied {
		return AmendmentEffect{
			Status:      StatusUnsupported,
			SectionPath: sectionPath,
			Segments:    []Segment{{Kind: SegUnchanged, Text: sectionBody}},
			Changes:     nil,
			Debug: DebugInfo{
				SectionTextLength: len(sectionBody),
				OperationCount:    len(ops),
				OperationAttempts: attempts,
				FailureReason:     "no_patches_applied",
			},
		}
	}

	return AmendmentEffect{
		Status:      StatusOK,
		SectionPath: sectionPath,
		Segments:    []Segment{{Kind: SegUnchanged, Text: working}},
		Changes:     changes,
		Debug: DebugInfo{
			SectionTextLength: len(sectionBody),
			OperationCount:    len(ops),
			OperationAttempts: attempts,
		},
	}
}

// resolveScope implements spec.md §4.6's explicit target scope resolution,
// redesignation fallback, and matter-preceding narrowing.
func (ap *Applier) resolveScope(roots []*HierarchyNode, target TargetPath, body string, redesignations map[string]HierarchyLevel) (int, int, bool) {
	start, end, ok := walkScope(roots, target, 0, len(body))
	if ok {
		return start, end, true
	}

	// Redesignation fallback: retry once with old labels substituted in.
	retried := make(TargetPath, len(target))
	changed := false
	for i, lvl := range target {
		if old, found := redesignations[lvl.String()]; found {
			retried[i] = old
			changed = true
		} else {
			retried[i] = lvl
		}
	}
	if changed {
		return walkScope(roots, retried, 0, len(body))
	}

	return 0, 0, false
}

func walkScope(roots []*HierarchyNode, target TargetPath, bodyStart, bodyEnd int) (int, int, bool) {
	current := roots
	scopeStart, scopeEnd := bodyStart, bodyEnd
	var matched *HierarchyNode

	for _, seg := range target {
		var next *HierarchyNode
		for _, n := range current {
			if n.Marker.Offset < scopeStart || n.Marker.Offset >= scopeEnd {
				continue
			}
			// current is always the previous match's Children (or the
			// document roots for the first segment), so finding a candidate
			// here already guarantees it is a descendant of the prior match.
			if strings.EqualFold(n.Marker.Level.Val, seg.Val) && sameKindFamily(n.Marker.Level, seg) {
				next = n
				break
			}
		}
		if next == nil {
			return 0, 0, false
		}
		matched = next
		scopeStart = next.Start
		scopeEnd = next.End
		current = next.Children
	}

	if matched == nil {
		return bodyStart, bodyEnd, false
	}
	return scopeStart, scopeEnd, true
}

func sameKindFamily(a, b HierarchyLevel) bool {
	return classifyLabel(a.Val) == classifyLabel(b.Val) || a.Tag == b.Tag
}

// applyOne generates and applies the patch for a single operation kind
// against the working string, returning the new working string, the
// recorded Change, whether a patch applied, and search diagnostics.
func (ap *Applier) applyOne(op flatOperation, working string, scopeStart, scopeEnd int) (string, Change, bool, SearchTextKind, string, int) {
	scope := working[scopeStart:scopeEnd]

	switch op.kind {
	case OpReplace:
		if op.strikingContent == "" && len(op.target) > 0 {
			formatted := formatBlock(op.content, 0)
			newWorking := working[:scopeStart] + formatted + working[scopeEnd:]
			return newWorking, Change{Deleted: scope, Inserted: formatted}, true, SearchNone, "", -1
		}
		idx := findStrikingText(scope, op.strikingContent)
		if idx < 0 {
			return working, Change{}, false, SearchStriking, op.strikingContent, -1
		}
		absStart := scopeStart + idx
		absEnd := absStart + len(op.strikingContent)
		newWorking := working[:absStart] + op.content + working[absEnd:]
		return newWorking, Change{Deleted: op.strikingContent, Inserted: op.content}, true, SearchStriking, op.strikingContent, idx

	case OpDelete:
		idx := findStrikingText(scope, op.strikingContent)
		if idx < 0 {
			return working, Change{}, false, SearchStriking, op.strikingContent, -1
		}
		absStart := scopeStart + idx
		absEnd := absStart + len(op.strikingContent)
		deleted := op.strikingContent
		if absStart > 0 && working[absStart-1] == ' ' && absEnd < len(working) && working[absEnd] != ' ' {
			absStart--
			deleted = " " + deleted
		}
		newWorking := working[:absStart] + working[absEnd:]
		return newWorking, Change{Deleted: deleted}, true, SearchStriking, op.strikingContent, idx

	case OpInsert, OpAddAtEnd:
		insertAt := scopeEnd
		prefix := ""
		if insertAt > 0 && working[insertAt-1] != '\n' {
			prefix = "\n"
		}
		content := prefix + formatBlock(op.content, 0)
		newWorking := working[:insertAt] + content + working[insertAt:]
		return newWorking, Change{Inserted: op.content}, true, SearchNone, "", -1

	case OpInsertBefore, OpInsertAfter:
		anchor := extractQuotedAnchor(op.text)
		if anchor == "" && strings.Contains(strings.ToLower(op.text), "the period at the end") {
			anchor = "."
		}
		if anchor == "" {
			return working, Change{}, false, SearchNone, "", -1
		}
		idx := strings.Index(scope, anchor)
		if idx < 0 {
			return working, Change{}, false, searchKindFor(op.kind), anchor, -1
		}
		var insertAt int
		if op.kind == OpInsertBefore {
			insertAt = scopeStart + idx
		} else {
			insertAt = scopeStart + idx + len(anchor)
		}
		content := padInsertion(working, insertAt, op.content)
		newWorking := working[:insertAt] + content + working[insertAt:]
		return newWorking, Change{Inserted: content}, true, searchKindFor(op.kind), anchor, idx
	}

	return working, Change{}, false, SearchNone, "", -1
}

func searchKindFor(k OperationKind) SearchTextKind {
	if k == OpInsertBefore {
		return SearchAnchorBefore
	}
	return SearchAnchorAfter
}

// findStrikingText implements spec.md §4.6's replace/delete locating
// strategy: exact match, then designator-stripped, then bare-section-ref
// alias, then fuzzy Markdown-citation-tolerant, then whitespace-flexible.
func findStrikingText(scope, striking string) int {
	if striking == "" {
		return -1
	}
	if idx := strings.Index(scope, striking); idx >= 0 {
		return idx
	}
	stripped := designatorPrefixPattern.ReplaceAllString(striking, "")
	if stripped != striking {
		if idx := strings.Index(scope, stripped); idx >= 0 {
			return idx
		}
	}
	if m := sectionRefPattern.FindString(striking); m != "" {
		if idx := strings.Index(scope, m); idx >= 0 {
			return idx
		}
	}
	fuzzyScope := markdownLinkPattern.ReplaceAllString(scope, "$1")
	if idx := strings.Index(fuzzyScope, striking); idx >= 0 {
		return idx
	}
	flexPattern := regexp.MustCompile(regexp.QuoteMeta(striking))
	if loc := flexPattern.FindStringIndex(scope); loc != nil {
		return loc[0]
	}
	whitespaceFlexible := strings.Join(strings.Fields(striking), `\s+`)
	if re, err := regexp.Compile(whitespaceFlexible); err == nil {
		if loc := re.FindStringIndex(scope); loc != nil {
			return loc[0]
		}
	}
	return -1
}

var quotedSpanPattern = regexp.MustCompile(`["“]([^"”]+)["”]`)

// extractQuotedAnchor returns the anchor text for an insert_before/
// insert_after operation: the quoted span following "before"/"after" in the
// node text. Node text of this shape always quotes the inserted content
// first and the anchor last (e.g. `by inserting "X" before "Y"`), so the
// anchor is the last quoted span rather than the first.
func extractQuotedAnchor(text string) string {
	matches := quotedSpanPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// padInsertion pads an insertion with a leading/trailing space when the
// neighboring character is non-whitespace and non-punctuation, and never
// pads when it's punctuation (spec.md §4.6).
func padInsertion(body string, at int, content string) string {
	needsLeadingSpace := at > 0 && isWordChar(rune(body[at-1])) && len(content) > 0 && isWordChar(rune(content[0]))
	needsTrailingSpace := at < len(body) && isWordChar(rune(body[at])) && len(content) > 0 && isWordChar(rune(content[len(content)-1]))
	out := content
	if needsLeadingSpace {
		out = " " + out
	}
	if needsTrailingSpace {
		out = out + " "
	}
	return out
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// formatBlock applies spec.md §4.6's block formatting for multiline inserts:
// each line's structural rank anchors to the current blockquote depth D.
func formatBlock(content string, depth int) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 1 {
		return content
	}

	minRank := -1
	ranks := make([]int, len(lines))
	for i, line := range lines {
		sanitized := strings.TrimLeft(line, `"“”'`)
		if m := designatorPrefixPattern.FindString(sanitized); m != "" {
			val := strings.Trim(m, "() ")
			rank := int(classifyLabel(val))
			ranks[i] = rank
			if minRank < 0 || rank < minRank {
				minRank = rank
			}
		} else {
			ranks[i] = -1
		}
	}
	if minRank < 0 {
		minRank = 0
	}

	var out []string
	lastDepth := depth
	for i, line := range lines {
		if ranks[i] >= 0 {
			lastDepth = depth + (ranks[i] - minRank)
		}
		out = append(out, strings.Repeat("> ", lastDepth)+line)
	}
	return strings.Join(out, "\n")
}
