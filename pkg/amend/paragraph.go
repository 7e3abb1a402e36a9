package amend

// Line is one visual line of extracted paragraph text, carrying the
// coordinates a PDF extractor would have produced.
type Line struct {
	XStart float64
	Y      float64
	Page   int
	Text   string
}

// Paragraph is a paragraph of instruction text together with the visual
// metadata an external PDF extractor attaches to it. Lines is never empty;
// Lines[0].XStart is the visual indentation used for hierarchy inference.
type Paragraph struct {
	Text      string
	Lines     []Line
	StartPage int
	EndPage   int
}

// Indent returns the visual indentation used to place this paragraph in the
// extractor's indentation stack.
func (p Paragraph) Indent() float64 {
	if len(p.Lines) == 0 {
		return 0
	}
	return p.Lines[0].XStart
}

// IsQuoted reports whether the paragraph's first non-space character is a
// quotation mark (straight or smart), which marks it as continuation content
// rather than instruction structure.
func (p Paragraph) IsQuoted() bool {
	for _, r := range p.Text {
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

// HierarchyRank orders HierarchyLevel tags from broadest to narrowest.
// Smaller values are broader.
type HierarchyRank int

const (
	RankSection HierarchyRank = iota
	RankSubsection
	RankParagraph
	RankSubparagraph
	RankClause
	RankSubclause
	RankItem
	RankSubitem
	RankNone HierarchyRank = -1
)

// HierarchyLevel is the closed tagged variant naming a single segment of a
// statutory hierarchy path, e.g. "subsection (a)" or "clause (iv)".
type HierarchyLevel struct {
	Tag HierarchyRank
	Val string
}

// IsNone reports whether this level carries no tag (the "none" variant).
func (h HierarchyLevel) IsNone() bool {
	return h.Tag == RankNone
}

// String renders a level as "type:val", the format used by target-path
// diagnostics (spec.md's OperationMatchAttempt.targetPath).
func (h HierarchyLevel) String() string {
	if h.IsNone() {
		return "none"
	}
	return rankName(h.Tag) + ":" + h.Val
}

func rankName(r HierarchyRank) string {
	switch r {
	case RankSection:
		return "section"
	case RankSubsection:
		return "subsection"
	case RankParagraph:
		return "paragraph"
	case RankSubparagraph:
		return "subparagraph"
	case RankClause:
		return "clause"
	case RankSubclause:
		return "subclause"
	case RankItem:
		return "item"
	case RankSubitem:
		return "subitem"
	default:
		return "none"
	}
}

// rankFromName is the inverse of rankName, used when parsing target paths
// out of instruction text.
func rankFromName(name string) (HierarchyRank, bool) {
	switch name {
	case "section":
		return RankSection, true
	case "subsection":
		return RankSubsection, true
	case "paragraph":
		return RankParagraph, true
	case "subparagraph":
		return RankSubparagraph, true
	case "clause":
		return RankClause, true
	case "subclause":
		return RankSubclause, true
	case "item":
		return RankItem, true
	case "subitem":
		return RankSubitem, true
	default:
		return RankNone, false
	}
}

// TargetPath is an ordered list of HierarchyLevels naming a sub-tree within
// a section. Segment order follows document nesting (section first).
type TargetPath []HierarchyLevel

// Merge overlays other onto p by rank: a segment in other replaces any
// same-or-higher rank segment inherited from p, per the Edit Applier's
// operation-collection rule (spec.md §4.6).
func (p TargetPath) Merge(other TargetPath) TargetPath {
	if len(other) == 0 {
		return p
	}
	minRank := other[0].Tag
	merged := make(TargetPath, 0, len(p)+len(other))
	for _, lvl := range p {
		if lvl.Tag < minRank {
			merged = append(merged, lvl)
		}
	}
	merged = append(merged, other...)
	return merged
}

// String renders a path as "type:val > type:val", the format required by
// OperationMatchAttempt.targetPath.
func (p TargetPath) String() string {
	out := ""
	for i, lvl := range p {
		if i > 0 {
			out += " > "
		}
		out += lvl.String()
	}
	return out
}
