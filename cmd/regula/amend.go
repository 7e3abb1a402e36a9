package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/coolbeans/regula/pkg/amend"
	"github.com/coolbeans/regula/pkg/draft"
	"github.com/coolbeans/regula/pkg/uscode"
	"github.com/spf13/cobra"
)

// amendCmd groups the amendatory instruction pipeline: extracting
// instructions from a draft bill's sections, and applying them to an
// existing section's Markdown body.
func amendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Amendatory instruction pipeline: extract and apply bill edits",
		Long: `Compile the English amendment sentences in a draft bill into an edit
plan and, optionally, apply that plan to an existing U.S. Code section's
Markdown body.

Commands:
  parse  Extract and translate amendatory instructions from a draft bill
  apply  Apply a draft bill section's instructions to a section body file

Examples:
  regula amend parse --bill draft-hr-1234.txt
  regula amend apply --bill draft-hr-1234.txt --section 2 --target "7 U.S.C. 2012" --body section.md`,
	}

	cmd.AddCommand(amendParseCmd())
	cmd.AddCommand(amendApplyCmd())

	return cmd
}

func amendParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract and translate amendatory instructions from a draft bill",
		Long: `Parse a draft bill and run the amendatory instruction pipeline over each
section's raw text: indentation-tree extraction, grammar-driven parsing,
and semantic translation. Falls back to the simpler Recognizer for any
instruction the grammar does not accept.

Examples:
  regula amend parse --bill testdata/drafts/hr1234.txt
  regula amend parse --bill draft-hr-1234.txt --grammar ./grammar --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			billPath, _ := cmd.Flags().GetString("bill")
			grammarDir, _ := cmd.Flags().GetString("grammar")
			formatFlag, _ := cmd.Flags().GetString("format")

			if billPath == "" {
				return fmt.Errorf("--bill flag is required: specify the path to a draft bill file")
			}

			bill, err := draft.ParseBillFromFile(billPath)
			if err != nil {
				return fmt.Errorf("failed to parse bill: %w", err)
			}

			g, err := loadAmendGrammar(grammarDir)
			if err != nil {
				return err
			}

			for _, section := range bill.Sections {
				if err := section.PopulateAmendments(g); err != nil {
					return fmt.Errorf("failed to populate amendments for section %s: %w", section.Number, err)
				}
			}

			switch formatFlag {
			case "json":
				data, marshalErr := json.MarshalIndent(bill, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("failed to marshal JSON: %w", marshalErr)
				}
				fmt.Println(string(data))
			default:
				for _, section := range bill.Sections {
					fmt.Printf("SEC. %s — %d instruction(s), %d amendment(s)\n",
						section.Number, len(section.Instructions), len(section.Amendments))
					for _, instr := range section.Instructions {
						fmt.Printf("  target=%q citation=%q\n", instr.Target, instr.USCCitation)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().String("bill", "", "Path to draft bill file (required)")
	cmd.Flags().String("grammar", "", "Path to a grammar directory (defaults to the bundled grammar)")
	cmd.Flags().String("format", "table", "Output format (table, json)")

	return cmd
}

func amendApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a draft bill section's instructions to a section body file",
		Long: `Run the full pipeline for one draft bill section — extraction, parsing,
translation, and application — against an existing U.S. Code section's
Markdown body, and print the resulting AmendmentEffect.

Examples:
  regula amend apply --bill draft-hr-1234.txt --section 2 --target "7 U.S.C. 2012" --body section.md
  regula amend apply --bill draft-hr-1234.txt --section 2 --target "7 U.S.C. 2012" --body section.md --output result.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			billPath, _ := cmd.Flags().GetString("bill")
			sectionNumber, _ := cmd.Flags().GetString("section")
			targetCitation, _ := cmd.Flags().GetString("target")
			bodyPath, _ := cmd.Flags().GetString("body")
			grammarDir, _ := cmd.Flags().GetString("grammar")
			outputPath, _ := cmd.Flags().GetString("output")

			if billPath == "" || sectionNumber == "" || targetCitation == "" || bodyPath == "" {
				return fmt.Errorf("--bill, --section, --target, and --body flags are all required")
			}

			bill, err := draft.ParseBillFromFile(billPath)
			if err != nil {
				return fmt.Errorf("failed to parse bill: %w", err)
			}

			var section *draft.DraftSection
			for _, s := range bill.Sections {
				if s.Number == sectionNumber {
					section = s
					break
				}
			}
			if section == nil {
				return fmt.Errorf("no section numbered %q in %s", sectionNumber, billPath)
			}

			sectionPath, err := normalizeSectionPath(targetCitation)
			if err != nil {
				return err
			}

			bodyBytes, err := os.ReadFile(bodyPath)
			if err != nil {
				return fmt.Errorf("failed to read section body file: %w", err)
			}

			g, err := loadAmendGrammar(grammarDir)
			if err != nil {
				return err
			}

			paragraphs := draft.ParagraphsFromSection(section)
			pipeline := amend.NewPipeline(g)
			results, effects := pipeline.Run(paragraphs, sectionPath, string(bodyBytes))

			output := struct {
				SectionPath string                     `json:"section_path"`
				Results     []amend.InstructionResult  `json:"results"`
				Effects     []amend.AmendmentEffect    `json:"effects"`
			}{
				SectionPath: sectionPath,
				Results:     results,
				Effects:     effects,
			}

			data, marshalErr := json.MarshalIndent(output, "", "  ")
			if marshalErr != nil {
				return fmt.Errorf("failed to marshal JSON: %w", marshalErr)
			}

			if outputPath != "" {
				if writeErr := os.WriteFile(outputPath, data, 0o644); writeErr != nil {
					return fmt.Errorf("failed to write output file: %w", writeErr)
				}
				fmt.Printf("wrote %s\n", outputPath)
				return nil
			}

			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().String("bill", "", "Path to draft bill file (required)")
	cmd.Flags().String("section", "", "Bill section number to apply (required)")
	cmd.Flags().String("target", "", "Target USC citation, e.g. \"7 U.S.C. 2012\" (required)")
	cmd.Flags().String("body", "", "Path to the target section's Markdown body file (required)")
	cmd.Flags().String("grammar", "", "Path to a grammar directory (defaults to the bundled grammar)")
	cmd.Flags().String("output", "", "Write the resulting JSON to this file instead of stdout")

	return cmd
}

// loadAmendGrammar loads a grammar directory via GrammarStore when dir is
// non-empty, otherwise falls back to the bundled default grammar.
func loadAmendGrammar(dir string) (*amend.Grammar, error) {
	if dir == "" {
		g, err := amend.DefaultGrammar()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled grammar: %w", err)
		}
		return g, nil
	}

	store := amend.NewGrammarStore()
	if err := store.LoadDirectory(dir); err != nil {
		return nil, fmt.Errorf("failed to load grammar directory %s: %w", dir, err)
	}
	return store.Grammar(), nil
}

// normalizeSectionPath validates a USC citation via pkg/uscode and renders
// it as a stable "usc/{title}/{section}" path for the applier's diagnostics.
func normalizeSectionPath(targetCitation string) (string, error) {
	n, err := uscode.ParseUSCNumber(targetCitation)
	if err != nil {
		return "", fmt.Errorf("invalid --target citation %q: %w", targetCitation, err)
	}
	return fmt.Sprintf("usc/%s/%s", n.Title, n.Section), nil
}
