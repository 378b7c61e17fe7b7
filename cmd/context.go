package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context [focus]",
	Short: "Show the memory bank context for a work session",
	Long: `Assemble the project context from the memory bank: the project brief,
the active context notes, and recorded decisions. An optional focus
argument narrows the session to one area (for example a PRD name).`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runContext,
}

var contextNoteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Append a note to the active context",
	Long: `Append a timestamped note to the memory bank's active context file.
Notes survive between sessions and show up in 'taskfold context'.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runContextNote,
}

var contextDecisionCmd = &cobra.Command{
	Use:   "decision <prd> <decision> <rationale>",
	Short: "Record a decision against a PRD",
	Long: `Record a decision and its rationale in the memory bank's decision log,
tied to the PRD it concerns.`,
	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,
	RunE:         runContextDecision,
}

var contextPRDsCmd = &cobra.Command{
	Use:          "prds",
	Short:        "List the PRDs in the memory bank",
	SilenceUsage: true,
	RunE:         runContextPRDs,
}

var contextNoteKind string

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextNoteCmd)
	contextCmd.AddCommand(contextDecisionCmd)
	contextCmd.AddCommand(contextPRDsCmd)

	contextNoteCmd.Flags().StringVar(&contextNoteKind, "kind", "note", "note kind recorded with the entry")
}

func runContext(cmd *cobra.Command, args []string) error {
	bank := GetBank()

	exists, err := bank.Exists()
	if err != nil {
		return err
	}
	if !exists {
		cmd.Println("No memory bank found. Run 'taskfold init' first.")
		return nil
	}

	focus := ""
	if len(args) > 0 {
		focus = args[0]
	}

	session, err := bank.SessionContext(focus)
	if err != nil {
		return fmt.Errorf("failed to assemble session context: %w", err)
	}

	if isJSON() {
		return printJSON(contextResponse{Focus: focus, Context: session})
	}

	cmd.Print(session)
	return nil
}

func runContextNote(cmd *cobra.Command, args []string) error {
	bank := GetBank()

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("note text is empty")
	}

	if err := bank.AppendActiveContext(contextNoteKind, text); err != nil {
		return fmt.Errorf("failed to record note: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "recorded", "kind": contextNoteKind})
	}
	cmd.Printf("📝 Noted (%s): %s\n", contextNoteKind, text)
	return nil
}

func runContextDecision(cmd *cobra.Command, args []string) error {
	bank := GetBank()

	prdName, decision, rationale := args[0], args[1], args[2]
	if err := bank.RecordDecision(prdName, decision, rationale); err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "recorded", "prd": prdName})
	}
	cmd.Printf("✅ Decision recorded for PRD '%s'.\n", prdName)
	return nil
}

func runContextPRDs(cmd *cobra.Command, args []string) error {
	bank := GetBank()

	prds, err := bank.ListPRDs()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(prds)
	}

	if len(prds) == 0 {
		cmd.Println("No PRDs in the memory bank yet.")
		cmd.Println("Add one under the prds/ directory of the memory bank.")
		return nil
	}
	cmd.Println("📄 PRDs:")
	for _, name := range prds {
		cmd.Printf("  - %s\n", name)
	}
	return nil
}
