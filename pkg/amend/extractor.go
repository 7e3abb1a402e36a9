package amend

import (
	"regexp"
	"strings"
)

// Extractor segments an ordered paragraph stream into AmendatoryInstructions
// and builds each instruction's operation tree. It holds only compiled
// regular expressions and is safe for concurrent use — it carries no
// per-call state (the traversal context lives on the call stack of
// Extract), matching the grammar engine's per-call cache discipline.
type Extractor struct {
	secHeaderPattern      *regexp.Regexp
	divisionHeaderPattern *regexp.Regexp
	headPhrasePattern     *regexp.Regexp

	splitBeforeMarkerPattern *regexp.Regexp
	splitAfterAmendedPattern *regexp.Regexp

	labelPattern        *regexp.Regexp
	verboseTargetPattern *regexp.Regexp
	bareMarkerPattern    *regexp.Regexp
	noiseWordPattern     *regexp.Regexp
	parentheticalPattern *regexp.Regexp

	strikingPattern       *regexp.Regexp
	insertingPattern      *regexp.Regexp
	theFollowingPattern   *regexp.Regexp
	structuralStrikePattern *regexp.Regexp

	uscCitationPattern    *regexp.Regexp
	sectionOfTitlePattern *regexp.Regexp
}

// NewExtractor builds an Extractor with all patterns compiled, mirroring
// pkg/draft's Recognizer constructor.
func NewExtractor() *Extractor {
	return &Extractor{
		secHeaderPattern:      regexp.MustCompile(`^SEC\.\s+\d+`),
		divisionHeaderPattern: regexp.MustCompile(`^(TITLE|Subtitle|CHAPTER|SUBCHAPTER|PART|SEC\.)\s+[A-Z0-9]+[\s.—-]`),
		headPhrasePattern:     regexp.MustCompile(`is amended|is repealed|is further amended`),

		splitBeforeMarkerPattern: regexp.MustCompile(`([.;]\s+(?:and\s+)?)(?:\(\d+\)|\([a-z]\)|\([A-Z]\)|\([ivx]+\))`),
		splitAfterAmendedPattern: regexp.MustCompile(`(is amended|is repealed|is further amended)(\x{2014}|--)`),

		labelPattern:         regexp.MustCompile(`^\(([0-9]+|[a-z]|[A-Z]|[ivxlcdm]+|[IVXLCDM]+)\)\s*`),
		verboseTargetPattern: regexp.MustCompile(`(?i)(subsection|paragraph|subparagraph|clause|subclause|item)s?\s+\(([0-9A-Za-z]+)\)`),
		bareMarkerPattern:    regexp.MustCompile(`^\(([0-9A-Za-z]+)\)`),
		noiseWordPattern:     regexp.MustCompile(`(?i)^(in|of|and|the|by|striking|inserting|adding|redesignating|after|before|is amended|is repealed|is further amended|Act|[,;\x{2014}-])\s*`),
		parentheticalPattern: regexp.MustCompile(`(?i)^\([^)]*(as|added|amended|redesignated|inserted)[^)]*\)\s*`),

		strikingPattern:         regexp.MustCompile(`(?i)striking\s+["“‟]([^"”]+)["”]`),
		insertingPattern:        regexp.MustCompile(`(?i)inserting\s+["“‟‘]([^"”]+)["”]`),
		theFollowingPattern:     regexp.MustCompile(`(?i)the following:\s*(.*)$`),
		structuralStrikePattern: regexp.MustCompile(`(?i)by striking\s+(.+?)\s+and inserting the following`),

		uscCitationPattern:    regexp.MustCompile(`(\d+)\s+U\.S\.C\.\s+\d+[A-Za-z0-9\x{2013}-]*(\([^)]*\))*`),
		sectionOfTitlePattern: regexp.MustCompile(`(?i)section\s+(\d+(?:[A-Za-z0-9-]*)(?:\([^)]*\))*)\s+of\s+title\s+(\d+),?\s+United States Code`),
	}
}

// paraTreeNode is one node of the indentation-built paragraph tree, prior
// to combined-instruction splitting and operation reconstruction.
type paraTreeNode struct {
	para     Paragraph
	indent   float64
	children []*paraTreeNode
}

// Extract groups paragraphs into AmendatoryInstructions. It never aborts on
// malformed input; paragraphs that cannot be classified contribute unknown
// operations rather than errors (spec.md §4.1 Failure model).
func (ex *Extractor) Extract(paragraphs []Paragraph) []AmendatoryInstruction {
	var instructions []AmendatoryInstruction
	currentBillSection := ""
	lastCitation := ""

	roots := ex.buildIndentTree(paragraphs)

	i := 0
	for i < len(roots) {
		node := roots[i]
		trimmed := strings.TrimSpace(node.para.Text)

		if ex.secHeaderPattern.MatchString(trimmed) {
			currentBillSection = trimmed
			lastCitation = ""
			i++
			continue
		}

		if !node.para.IsQuoted() && ex.headPhrasePattern.MatchString(node.para.Text) {
			headLevel := leadingHierarchyLevel(node.para.Text, ex.labelPattern)
			collected := []*paraTreeNode{node}
			j := i + 1
			for j < len(roots) {
				sib := roots[j]
				sibTrimmed := strings.TrimSpace(sib.para.Text)
				if ex.secHeaderPattern.MatchString(sibTrimmed) || ex.divisionHeaderPattern.MatchString(sibTrimmed) {
					break
				}
				// A sibling at the same or a shallower rank than the head's
				// own label (e.g. head "(a)" followed by sibling "(b)") is a
				// new instruction, not a continuation of this one (spec.md
				// §4.1 "Consume following same-level siblings"). Only
				// quoted, unknown-rank, or strictly-deeper-rank siblings
				// belong to the current instruction.
				if headLevel != nil && !sib.para.IsQuoted() {
					if sibLevel := leadingHierarchyLevel(sib.para.Text, ex.labelPattern); sibLevel != nil && sibLevel.Tag <= headLevel.Tag {
						break
					}
				}
				collected = append(collected, sib)
				j++
			}

			instr := ex.buildInstruction(collected, currentBillSection, &lastCitation)
			instructions = append(instructions, instr)
			i = j
			continue
		}

		i++
	}

	return instructions
}

// buildIndentTree walks paragraphs in order maintaining a stack of
// (node, indent); a paragraph attaches as a child of the deepest stack node
// whose indent is strictly less than its own by more than 5 visual units,
// popping otherwise. Quoted paragraphs always attach to the current top.
func (ex *Extractor) buildIndentTree(paragraphs []Paragraph) []*paraTreeNode {
	var roots []*paraTreeNode
	var stack []*paraTreeNode

	for _, p := range paragraphs {
		node := &paraTreeNode{para: p, indent: p.Indent()}

		if p.IsQuoted() && len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, node)
			continue
		}

		for len(stack) > 0 && !(stack[len(stack)-1].indent < node.indent-5) {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			top := stack[len(stack)-1]
			top.children = append(top.children, node)
		}
		stack = append(stack, node)
	}

	return roots
}

// flattenSubtree returns all paragraphs in reading order covered by a head
// node and its children, stopping before recursing into any SEC./division
// header (these are structural boundaries that end the instruction).
func (ex *Extractor) flattenSubtree(node *paraTreeNode) []Paragraph {
	out := []Paragraph{node.para}
	for _, child := range node.children {
		trimmed := strings.TrimSpace(child.para.Text)
		if ex.secHeaderPattern.MatchString(trimmed) || ex.divisionHeaderPattern.MatchString(trimmed) {
			continue
		}
		out = append(out, ex.flattenSubtree(child)...)
	}
	return out
}

// buildInstruction fuses the head node and its collected siblings into a
// single AmendatoryInstruction, splitting combined text and reconstructing
// the operation tree.
func (ex *Extractor) buildInstruction(nodes []*paraTreeNode, billSection string, lastCitation *string) AmendatoryInstruction {
	var allParas []Paragraph
	for _, n := range nodes {
		allParas = append(allParas, ex.flattenSubtree(n)...)
	}

	virtual := ex.splitCombined(allParas)

	target := ex.extractTarget(allParas[0].Text)
	citation := ex.extractUSCCitation(allParas[0].Text)
	if citation == "" {
		citation = *lastCitation
	} else {
		*lastCitation = citation
	}

	textJoined := make([]string, 0, len(allParas))
	startPage, endPage := 0, 0
	for idx, p := range allParas {
		textJoined = append(textJoined, p.Text)
		if idx == 0 {
			startPage = p.StartPage
		}
		endPage = p.EndPage
	}

	tree := ex.reconstructTree(virtual)
	ex.postPassNormalize(tree)

	return AmendatoryInstruction{
		BillSection: billSection,
		Target:      target,
		USCCitation: citation,
		Text:        strings.Join(textJoined, "\n"),
		Paragraphs:  allParas,
		StartPage:   startPage,
		EndPage:     endPage,
		Tree:        tree,
	}
}

// virtualPara is one split fragment of a collected paragraph, carrying the
// metadata of its source paragraph.
type virtualPara struct {
	text   string
	source Paragraph
	quoted bool
}

// splitCombined splits each paragraph's text at combined-instruction
// boundaries (spec.md §4.1 Combined-instruction splitting).
func (ex *Extractor) splitCombined(paras []Paragraph) []virtualPara {
	var out []virtualPara
	for _, p := range paras {
		text := p.Text
		if loc := ex.splitAfterAmendedPattern.FindStringSubmatchIndex(text); loc != nil {
			splitAt := loc[3]
			text = text[:splitAt] + "\x00" + text[splitAt:]
		}
		pieces := strings.Split(text, "\x00")
		var fragments []string
		for _, piece := range pieces {
			fragments = append(fragments, ex.splitAtCombinedBoundary(piece)...)
		}
		for _, frag := range fragments {
			trimmed := strings.TrimSpace(frag)
			if trimmed == "" {
				continue
			}
			out = append(out, virtualPara{text: trimmed, source: p, quoted: isQuotedText(trimmed)})
		}
	}
	return out
}

func (ex *Extractor) splitAtCombinedBoundary(text string) []string {
	locs := ex.splitBeforeMarkerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	var frags []string
	last := 0
	for _, loc := range locs {
		cut := loc[3] // end of captured group 1 (the punctuation + "and ")
		frags = append(frags, text[last:cut])
		last = cut
	}
	frags = append(frags, text[last:])
	return frags
}

func isQuotedText(text string) bool {
	for _, r := range text {
		if r == ' ' || r == '\t' {
			continue
		}
		switch r {
		case '"', '\'', '“', '”', '‘', '’':
			return true
		}
		return false
	}
	return false
}

// reconstructTree builds the operation tree from linearized virtual
// paragraphs using a stack keyed by label rank (spec.md §4.1
// Operation-tree reconstruction).
func (ex *Extractor) reconstructTree(paras []virtualPara) []*InstructionNode {
	var roots []*InstructionNode
	type frame struct {
		node *InstructionNode
		rank HierarchyRank
	}
	var stack []frame

	for _, vp := range paras {
		if vp.quoted {
			if len(stack) > 0 {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, &InstructionNode{
					Operation: InstructionOperation{Kind: OpUnknown, Content: vp.text},
					Text:      vp.text,
				})
			} else {
				roots = append(roots, &InstructionNode{
					Operation: InstructionOperation{Kind: OpUnknown, Content: vp.text},
					Text:      vp.text,
				})
			}
			continue
		}

		label := leadingHierarchyLevel(vp.text, ex.labelPattern)
		rank := RankNone
		if label != nil {
			rank = label.Tag
		}

		for len(stack) > 0 && stack[len(stack)-1].rank >= rank && rank != RankNone {
			stack = stack[:len(stack)-1]
		}

		op := ex.parseOperation(vp.text)
		node := &InstructionNode{Label: label, Operation: op, Text: vp.text}

		nodes := ex.maybeSplitPlural(node)

		for _, n := range nodes {
			if len(stack) > 0 && rank != RankNone {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, n)
			} else {
				roots = append(roots, n)
			}
		}

		if rank != RankNone {
			stack = append(stack, frame{node: nodes[len(nodes)-1], rank: rank})
		}
	}

	return roots
}

// maybeSplitPlural implements the plural-target splitting rule: when
// parseOperation yields multiple same-rank targets on an editing kind,
// emit one sibling node per target, each retaining the shared prefix.
func (ex *Extractor) maybeSplitPlural(node *InstructionNode) []*InstructionNode {
	if !editingKinds[node.Operation.Kind] || len(node.Operation.Target) == 0 {
		return []*InstructionNode{node}
	}

	last := node.Operation.Target[len(node.Operation.Target)-1]
	siblings := splitPluralLabels(last.Val, last.Tag)
	if len(siblings) <= 1 {
		return []*InstructionNode{node}
	}

	prefix := node.Operation.Target[:len(node.Operation.Target)-1]
	out := make([]*InstructionNode, 0, len(siblings))
	for _, lvl := range siblings {
		op := node.Operation
		op.Target = append(append(TargetPath{}, prefix...), lvl)
		out = append(out, &InstructionNode{
			Label:     node.Label,
			Operation: op,
			Text:      node.Text,
		})
	}
	return out
}

// splitPluralLabels splits a conjunction like "(A) and (B)" recorded in a
// single target val into its constituent labels. Most target vals are
// already single labels and return a one-element slice unchanged.
func splitPluralLabels(val string, tag HierarchyRank) []HierarchyLevel {
	parts := strings.Split(val, " and ")
	if len(parts) <= 1 {
		return []HierarchyLevel{{Tag: tag, Val: val}}
	}
	out := make([]HierarchyLevel, 0, len(parts))
	for _, p := range parts {
		out = append(out, HierarchyLevel{Tag: tag, Val: strings.TrimSpace(p)})
	}
	return out
}

// leadingHierarchyLevel parses the leading label of a paragraph's text into
// a HierarchyLevel, or nil if the text carries no leading marker.
func leadingHierarchyLevel(text string, labelPattern *regexp.Regexp) *HierarchyLevel {
	m := labelPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	val := m[1]
	return &HierarchyLevel{Tag: classifyLabel(val), Val: val}
}

// classifyLabel infers a HierarchyRank from a bare label string, following
// the bare-marker classification in parseTarget: roman-lowercase -> clause,
// roman-uppercase -> subclause, lowercase-alpha -> subsection,
// digits -> paragraph, uppercase-alpha -> subparagraph.
func classifyLabel(val string) HierarchyRank {
	switch {
	case isAllDigits(val):
		return RankParagraph
	case isRoman(val, false):
		return RankClause
	case isRoman(val, true):
		return RankSubclause
	case isAllLower(val):
		return RankSubsection
	case isAllUpper(val):
		return RankSubparagraph
	default:
		return RankNone
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAllLower(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isAllUpper(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

var romanLower = regexp.MustCompile(`^[ivxlcdm]+$`)
var romanUpper = regexp.MustCompile(`^[IVXLCDM]+$`)

func isRoman(s string, upper bool) bool {
	if upper {
		return romanUpper.MatchString(s)
	}
	return romanLower.MatchString(s) && s != "i" || s == "i"
}

// parseOperation implements spec.md §4.1's parseOperation contract.
func (ex *Extractor) parseOperation(text string) InstructionOperation {
	stripped := ex.labelPattern.ReplaceAllString(text, "")

	var strikingContent, content string
	if m := ex.strikingPattern.FindStringSubmatch(stripped); m != nil {
		strikingContent = m[1]
	}
	if m := ex.insertingPattern.FindStringSubmatch(stripped); m != nil {
		content = m[1]
	}
	if m := ex.theFollowingPattern.FindStringSubmatch(stripped); m != nil {
		content = strings.Trim(strings.TrimSpace(m[1]), `"“”'`)
	}

	target := ex.parseTarget(stripped)
	if m := ex.structuralStrikePattern.FindStringSubmatch(stripped); m != nil {
		strikingContent = m[1]
	}

	kind := ex.classifyKind(stripped)

	return InstructionOperation{
		Kind:            kind,
		Target:          target,
		StrikingContent: strikingContent,
		Content:         content,
	}
}

func (ex *Extractor) classifyKind(text string) OperationKind {
	lower := strings.ToLower(text)
	hasStriking := strings.Contains(lower, "by striking") || strings.Contains(lower, "striking")
	hasInserting := strings.Contains(lower, "inserting")

	switch {
	case hasStriking && hasInserting:
		return OpReplace
	case strings.Contains(lower, "is amended to read as follows") || strings.Contains(lower, "is further amended to read as follows"):
		return OpReplace
	case hasStriking || strings.Contains(lower, "is repealed"):
		return OpDelete
	case strings.Contains(lower, "by inserting") && strings.Contains(lower, "before"):
		return OpInsertBefore
	case strings.Contains(lower, "by inserting") && strings.Contains(lower, "after"):
		return OpInsertAfter
	case strings.Contains(lower, "by inserting"):
		return OpInsert
	case strings.Contains(lower, "by adding"):
		return OpAddAtEnd
	case strings.Contains(lower, "by redesignating"):
		return OpRedesignate
	default:
		return OpContext
	}
}

// parseTarget implements spec.md §4.1's parseTarget contract: consume the
// target string greedily from the left, stripping noise words and
// parentheticals, collecting section/verbose/bare hierarchy references.
func (ex *Extractor) parseTarget(text string) TargetPath {
	var sectionLevel *HierarchyLevel
	var rest TargetPath

	remaining := text
	for {
		trimmedLen := len(remaining)

		if m := ex.noiseWordPattern.FindStringIndex(remaining); m != nil && m[0] == 0 {
			remaining = remaining[m[1]:]
			continue
		}
		if m := ex.parentheticalPattern.FindStringIndex(remaining); m != nil && m[0] == 0 {
			remaining = remaining[m[1]:]
			continue
		}
		if m := regexp.MustCompile(`(?i)^section\s+(\S+)\s*`).FindStringSubmatch(remaining); m != nil {
			sectionLevel = &HierarchyLevel{Tag: RankSection, Val: m[1]}
			remaining = remaining[len(m[0]):]
			continue
		}
		if m := ex.verboseTargetPattern.FindStringSubmatch(remaining); m != nil && strings.Index(remaining, m[0]) == 0 {
			rank, ok := rankFromName(strings.ToLower(m[1]))
			if ok {
				rest = append(rest, HierarchyLevel{Tag: rank, Val: m[2]})
			}
			remaining = remaining[len(m[0]):]
			continue
		}
		if m := ex.bareMarkerPattern.FindStringSubmatch(remaining); m != nil {
			rest = append(rest, HierarchyLevel{Tag: classifyLabel(m[1]), Val: m[1]})
			remaining = remaining[len(m[0]):]
			continue
		}

		if len(remaining) == trimmedLen {
			break
		}
	}

	var out TargetPath
	if sectionLevel != nil {
		out = append(out, *sectionLevel)
	}
	out = append(out, rest...)
	return out
}

// extractTarget returns the phrase before "is amended" etc., with leading
// labels stripped.
func (ex *Extractor) extractTarget(text string) string {
	stripped := ex.labelPattern.ReplaceAllString(text, "")
	if loc := ex.headPhrasePattern.FindStringIndex(stripped); loc != nil {
		return strings.TrimSpace(stripped[:loc[0]])
	}
	return strings.TrimSpace(stripped)
}

// extractUSCCitation implements spec.md §4.1's USC citation extraction.
func (ex *Extractor) extractUSCCitation(text string) string {
	if m := ex.uscCitationPattern.FindStringSubmatch(text); m != nil {
		full := m[0]
		idx := strings.Index(full, "U.S.C.")
		title := m[1]
		suffix := strings.TrimSpace(full[idx+len("U.S.C."):])
		return title + " U.S.C. " + suffix
	}
	if m := ex.sectionOfTitlePattern.FindStringSubmatch(text); m != nil {
		return m[2] + " U.S.C. " + m[1]
	}
	return ""
}

// postPassNormalize walks the reconstructed tree promoting delete nodes
// whose child is an "inserting the following" continuation into replace
// nodes (spec.md §4.1 Post-pass normalization).
func (ex *Extractor) postPassNormalize(nodes []*InstructionNode) {
	for _, n := range nodes {
		if n.Operation.Kind == OpDelete && strings.Contains(strings.ToLower(n.Text), "by striking") {
			for _, child := range n.Children {
				if strings.HasPrefix(strings.ToLower(strings.TrimSpace(child.Text)), "inserting") ||
					strings.Contains(strings.ToLower(child.Text), "inserting the following") {
					n.Operation.Kind = OpReplace
					n.Operation.Content = child.Operation.Content
					if n.Operation.Content == "" {
						n.Operation.Content = child.Text
					}
					if m := ex.structuralStrikePattern.FindStringSubmatch(n.Text); m != nil {
						last := ex.parseTarget(m[1])
						if len(last) > 0 {
							n.Operation.Target = n.Operation.Target.Merge(last)
						}
					}
					break
				}
			}
		}
		ex.postPassNormalize(n.Children)
	}
}
