package amend

import (
	"regexp"
	"strings"
)

// MDParagraph is one logical paragraph of a Markdown section body: a run of
// non-blank lines, additionally split at any line whose first content
// begins a new marker chain (spec.md §4.5).
type MDParagraph struct {
	Start        int
	End          int
	Text         string
	LeadingLabels []HierarchyLevel
	QuoteDepth   int
}

// MDMarker is one structural marker occurrence found in the body, with its
// absolute offset and absolute rank (quoteDepth + position in its chain).
type MDMarker struct {
	Offset int
	Level  HierarchyLevel
	Rank   int
}

// HierarchyNode is one node of the Markdown hierarchy tree built from
// structure markers.
type HierarchyNode struct {
	Marker   MDMarker
	Start    int // offset of this node's first paragraph
	End      int // offset of this node's end (next marker of rank <= its own, or EOF)
	Heading  []MDParagraph
	Footing  []MDParagraph
	Children []*HierarchyNode
	Parent   *HierarchyNode
}

var markerChainPattern = regexp.MustCompile(`\*\*\(([0-9A-Za-z]+)\)\*\*|\(([0-9A-Za-z]+)\)`)
var quotePrefixPattern = regexp.MustCompile(`^(>\s*)+`)

// ParseMarkdownHierarchy parses a Markdown section body into paragraphs and
// a hierarchy tree of structural markers (spec.md §4.5).
func ParseMarkdownHierarchy(body string) ([]MDParagraph, []*HierarchyNode) {
	paragraphs := splitMDParagraphs(body)
	markers := collectMarkers(body)
	tree := buildHierarchyTree(markers, paragraphs, len(body))
	return paragraphs, tree
}

// splitMDParagraphs splits the body into logical paragraphs: runs of
// non-blank lines separated by blank lines, with an additional split at any
// line beginning a new marker chain.
func splitMDParagraphs(body string) []MDParagraph {
	lines := strings.Split(body, "\n")
	var paragraphs []MDParagraph
	offset := 0
	var curLines []string
	curStart := 0

	flush := func(endOffset int) {
		if len(curLines) == 0 {
			return
		}
		text := strings.Join(curLines, "\n")
		depth, labels := parseLeadingMarkers(curLines[0])
		paragraphs = append(paragraphs, MDParagraph{
			Start: curStart, End: endOffset, Text: text,
			LeadingLabels: labels, QuoteDepth: depth,
		})
		curLines = nil
	}

	for _, line := range lines {
		lineLen := len(line) + 1
		trimmed := strings.TrimSpace(stripQuotePrefix(line))
		if trimmed == "" {
			flush(offset)
			offset += lineLen
			continue
		}
		if markerChainPattern.MatchString(leadingMarkerRegion(trimmed)) && len(curLines) > 0 {
			flush(offset)
			curStart = offset
		}
		if len(curLines) == 0 {
			curStart = offset
		}
		curLines = append(curLines, line)
		offset += lineLen
	}
	flush(offset)

	return paragraphs
}

func leadingMarkerRegion(s string) string {
	if len(s) > 40 {
		return s[:40]
	}
	return s
}

func stripQuotePrefix(line string) string {
	loc := quotePrefixPattern.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[loc[1]:]
}

func quoteDepthOf(line string) int {
	depth := 0
	for _, r := range line {
		if r == '>' {
			depth++
		} else if r == ' ' {
			continue
		} else {
			break
		}
	}
	return depth
}

// markerOccurrence is one marker match within a line-relative string, with
// both its semantic Level and its actual matched byte range — the range a
// caller needs to place the marker's absolute document offset correctly,
// rather than approximating it from the label's length.
type markerOccurrence struct {
	Level HierarchyLevel
	Start int // offset of the match within the scanned string
	End   int // offset just past the match (e.g. past "**(X)**" or "(X)")
}

// parseMarkerChain walks s from its start, collecting the leading run of
// marker occurrences (skipping the whitespace between them) and reporting
// each match's real consumed byte range within s.
func parseMarkerChain(s string) []markerOccurrence {
	var matches []markerOccurrence
	base := 0
	rest := s
	for {
		trimmed := strings.TrimLeft(rest, " ")
		base += len(rest) - len(trimmed)
		rest = trimmed

		m := markerChainPattern.FindStringSubmatchIndex(rest)
		if m == nil || m[0] != 0 {
			break
		}
		var val string
		if m[2] >= 0 {
			val = rest[m[2]:m[3]]
		} else {
			val = rest[m[4]:m[5]]
		}
		matches = append(matches, markerOccurrence{
			Level: HierarchyLevel{Tag: classifyLabel(val), Val: val},
			Start: base,
			End:   base + m[1],
		})
		base += m[1]
		rest = rest[m[1]:]
	}
	return matches
}

// parseLeadingMarkers parses a paragraph's first line into its quote depth
// and the ordered list of marker labels at its head.
func parseLeadingMarkers(line string) (int, []HierarchyLevel) {
	depth := quoteDepthOf(line)
	rest := stripQuotePrefix(line)

	occurrences := parseMarkerChain(rest)
	labels := make([]HierarchyLevel, len(occurrences))
	for i, o := range occurrences {
		labels[i] = o.Level
	}
	return depth, labels
}

// collectMarkers scans every line of the body for marker chains and returns
// them in document order with their absolute rank (quoteDepth + position in
// chain). Each marker's Offset is derived from parseMarkerChain's actual
// matched byte range rather than a guessed label width, so chained same-line
// markers (e.g. "**(11)** **(A)**") land at their true starts.
func collectMarkers(body string) []MDMarker {
	var markers []MDMarker
	lines := strings.Split(body, "\n")
	offset := 0
	for _, line := range lines {
		depth := quoteDepthOf(line)
		quotePrefixLen := 0
		if loc := quotePrefixPattern.FindStringIndex(line); loc != nil {
			quotePrefixLen = loc[1]
		}
		rest := line[quotePrefixLen:]
		for chainIdx, o := range parseMarkerChain(rest) {
			markers = append(markers, MDMarker{
				Offset: offset + quotePrefixLen + o.Start,
				Level:  o.Level,
				Rank:   depth + chainIdx,
			})
		}
		offset += len(line) + 1
	}
	return markers
}

// buildHierarchyTree implements spec.md §4.5's tree construction: a
// marker's parent is the most recent earlier marker of strictly lower rank;
// a marker's range ends at the next marker whose rank <= its own, or EOF.
func buildHierarchyTree(markers []MDMarker, paragraphs []MDParagraph, bodyLen int) []*HierarchyNode {
	var roots []*HierarchyNode
	var stack []*HierarchyNode

	nodes := make([]*HierarchyNode, len(markers))
	for i, m := range markers {
		n := &HierarchyNode{Marker: m, Start: m.Offset}
		nodes[i] = n

		for len(stack) > 0 && stack[len(stack)-1].Marker.Rank >= m.Rank {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			n.Parent = parent
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
	}

	for i, n := range nodes {
		end := bodyLen
		for j := i + 1; j < len(nodes); j++ {
			if nodes[j].Marker.Rank <= n.Marker.Rank {
				end = nodes[j].Marker.Offset
				break
			}
		}
		n.End = end
	}

	for _, n := range nodes {
		assignHeadingFooting(n, paragraphs)
	}

	return roots
}

// assignHeadingFooting computes a node's heading (paragraphs from its start
// up to its first child's start, or its end if no children) and footing
// (paragraphs from its last child's end to its own end).
func assignHeadingFooting(n *HierarchyNode, paragraphs []MDParagraph) {
	headingEnd := n.End
	footingStart := n.End
	if len(n.Children) > 0 {
		headingEnd = n.Children[0].Start
		footingStart = n.Children[len(n.Children)-1].End
	}

	for _, p := range paragraphs {
		if p.Start >= n.Start && p.Start < headingEnd {
			n.Heading = append(n.Heading, p)
		}
		if len(n.Children) > 0 && p.Start >= footingStart && p.Start < n.End {
			n.Footing = append(n.Footing, p)
		}
	}
}

// FindByPath descends recursively through a hierarchy tree's levels
// comparing lowercased markers, returning the deepest matched node or nil
// (spec.md §4.5 Marker-path lookup).
func FindByPath(roots []*HierarchyNode, path []HierarchyLevel) *HierarchyNode {
	var current []*HierarchyNode = roots
	var found *HierarchyNode
	for _, seg := range path {
		var next *HierarchyNode
		for _, n := range current {
			if strings.EqualFold(n.Marker.Level.Val, seg.Val) && sameKindFamily(n.Marker.Level, seg) {
				next = n
				break
			}
		}
		if next == nil {
			return found
		}
		found = next
		current = next.Children
	}
	return found
}
