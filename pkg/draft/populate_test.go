package draft

import (
	"testing"

	"github.com/coolbeans/regula/pkg/amend"
)

func TestPopulateAmendmentsFillsInstructionsAndLegacyAmendments(t *testing.T) {
	section := &DraftSection{
		Number: "2",
		Title:  "Eligibility amendments",
		RawText: `Section 3(u)(4) of the Food and Nutrition Act of 2008 (7 U.S.C. 2012(u)(4))
is amended by striking "2023" and inserting "2024".`,
	}

	g, err := amend.DefaultGrammar()
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}

	if err := section.PopulateAmendments(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(section.Instructions) != 1 {
		t.Fatalf("expected 1 extracted instruction, got %d", len(section.Instructions))
	}
	if len(section.Amendments) == 0 {
		t.Fatal("expected legacy Amendments to be populated from the semantic tree")
	}
	if section.Amendments[0].StrikeText != "2023" || section.Amendments[0].InsertText != "2024" {
		t.Fatalf("unexpected projected amendment: %+v", section.Amendments[0])
	}
}

func TestPopulateAmendmentsFallsBackOnParseMiss(t *testing.T) {
	section := &DraftSection{
		Number: "3",
		RawText: `This sentence does not match the grammar's anchors at all, but it
is amended by striking "old" and inserting "new".`,
	}

	g, err := amend.DefaultGrammar()
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}

	if err := section.PopulateAmendments(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Whether or not the bundled grammar happens to accept the sentence,
	// PopulateAmendments must not error and must leave Amendments in a
	// valid (possibly fallback-recognizer-derived) state.
	_ = section.Amendments
}
