package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize taskfold in the current directory",
	Long: `Initialize the taskfold memory bank in the current directory.

This creates the memory-bank directory with its core context files:
  • projectbrief.md - mission and goals
  • productContext.md - why the project exists
  • activeContext.md - current focus and recent decisions
  • systemPatterns.md - architecture and conventions
  • techContext.md - technology stack
  • progress.md - what works and what's left

It also creates memory-bank/prds/ for requirement documents, the
work-plans directory, and the .taskfold config directory.

Run this in your project root before creating plans.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get current directory: %w", err)
		}

		project := filepath.Base(cwd)
		if len(args) > 0 && args[0] != "" {
			project = args[0]
		}

		bank := GetBank()
		created, err := bank.Scaffold(project)
		if err != nil {
			return fmt.Errorf("scaffold memory bank: %w", err)
		}

		// Establishes the work-plans directory and its lock file.
		planStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = planStore.Close() }()

		config := GetConfig()
		if err := os.MkdirAll(config.Project.RootDir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		// The structured log under .taskfold/logs is local noise, not
		// something to commit.
		gitignorePath := filepath.Join(config.Project.RootDir, ".gitignore")
		if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
			gitignoreContent := "# taskfold generated files\nlogs/\n"
			if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Could not create .gitignore: %v\n", err)
			}
		}

		if isJSON() {
			return printJSON(initResponse{
				Status:       "initialized",
				BankDir:      config.Project.BankDir,
				FilesCreated: created,
			})
		}

		if created == 0 {
			cmd.Println("✓ Taskfold already initialized in this directory")
			return nil
		}

		cmd.Println("✓ Taskfold initialized")
		if !isQuiet() {
			cmd.Println("")
			cmd.Println("Created:")
			cmd.Printf("  • %s/ (%d core files)\n", config.Project.BankDir, created)
			cmd.Printf("  • %s/prds/\n", config.Project.BankDir)
			cmd.Printf("  • %s/\n", config.Project.PlansDir)
			cmd.Printf("  • %s/\n", config.Project.RootDir)
			cmd.Println("")
			cmd.Println("Next steps:")
			cmd.Println("  taskfold new \"Build user authentication\"")
			cmd.Println("  taskfold context")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
