package amend

import "testing"

func TestParseMarkdownHierarchySimple(t *testing.T) {
	body := "**(a)** first subsection text.\n**(b)** second subsection text."
	_, tree := ParseMarkdownHierarchy(body)
	if len(tree) != 2 {
		t.Fatalf("expected 2 top-level markers, got %d", len(tree))
	}
	if tree[0].Marker.Level.Val != "a" || tree[1].Marker.Level.Val != "b" {
		t.Fatalf("unexpected marker labels: %q %q", tree[0].Marker.Level.Val, tree[1].Marker.Level.Val)
	}
}

func TestParseMarkdownHierarchyNesting(t *testing.T) {
	body := "**(a)** heading text.\n> **(1)** nested paragraph.\n> **(2)** second nested paragraph.\n**(b)** sibling."
	_, tree := ParseMarkdownHierarchy(body)
	if len(tree) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(tree))
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("expected subsection (a) to have 2 children, got %d", len(tree[0].Children))
	}
}

func TestFindByPath(t *testing.T) {
	body := "**(a)** heading.\n> **(1)** item one.\n> **(2)** item two.\n**(b)** sibling."
	_, tree := ParseMarkdownHierarchy(body)

	found := FindByPath(tree, TargetPath{
		{Tag: RankSubsection, Val: "a"},
	})
	if found == nil {
		t.Fatal("expected to find subsection (a)")
	}
}

func TestMarkerRankInference(t *testing.T) {
	_, labels := parseLeadingMarkers("> > **(11)** **(A)** some text")
	if len(labels) != 2 {
		t.Fatalf("expected 2 chained markers, got %d", len(labels))
	}
	if labels[0].Val != "11" || labels[1].Val != "A" {
		t.Fatalf("unexpected chain labels: %v", labels)
	}
}

func TestCollectMarkersSameLineChainOffsets(t *testing.T) {
	// spec.md §4.5's own "Marker rank inference" example: a same-line
	// chain at quote-depth 2. Each marker's Offset must point at its own
	// rendered text, not a guessed width landing inside the prior marker.
	body := "> > **(11)** **(A)** some text"
	markers := collectMarkers(body)
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if got := body[markers[0].Offset : markers[0].Offset+len("**(11)**")]; got != "**(11)**" {
		t.Fatalf("first marker offset %d does not point at its own text: %q", markers[0].Offset, got)
	}
	if got := body[markers[1].Offset : markers[1].Offset+len("**(A)**")]; got != "**(A)**" {
		t.Fatalf("second marker offset %d does not point at its own text (landed inside the first marker): %q", markers[1].Offset, got)
	}
	if markers[0].Rank != 2 || markers[1].Rank != 3 {
		t.Fatalf("unexpected ranks: %d %d", markers[0].Rank, markers[1].Rank)
	}
}
