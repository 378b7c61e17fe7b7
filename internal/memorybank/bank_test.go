package memorybank

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const testBankDir = "/project/memory-bank"

func TestBank_ProjectContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)

	long := strings.Repeat("x", 600)
	_ = afero.WriteFile(fs, testBankDir+"/activeContext.md", []byte(long), 0644)

	bank := NewBank(fs, testBankDir)

	context, err := bank.ProjectContext()
	if err != nil {
		t.Fatalf("ProjectContext() error = %v", err)
	}
	if len(context) != 500 {
		t.Errorf("ProjectContext() returned %d chars, want the 500-char excerpt", len(context))
	}
}

func TestBank_ProjectContext_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	bank := NewBank(fs, testBankDir)

	context, err := bank.ProjectContext()
	if err != nil {
		t.Fatalf("ProjectContext() error = %v", err)
	}
	if context != "" {
		t.Errorf("ProjectContext() = %q for missing bank, want empty", context)
	}
}

func TestBank_PRDContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	prd := `# Checkout PRD

## Goal
Ship a one-page checkout.

## Background
Long history nobody needs during planning.

## Requirements
- Card payments
- Invoice payments

## Success Metrics
Conversion above 4%.
`
	_ = fs.MkdirAll(testBankDir+"/prds", 0755)
	_ = afero.WriteFile(fs, testBankDir+"/prds/checkout.md", []byte(prd), 0644)

	bank := NewBank(fs, testBankDir)

	context, err := bank.PRDContext("checkout")
	if err != nil {
		t.Fatalf("PRDContext() error = %v", err)
	}

	for _, want := range []string{"## Goal", "Ship a one-page checkout.", "- Card payments", "Conversion above 4%."} {
		if !strings.Contains(context, want) {
			t.Errorf("PRDContext() missing %q:\n%s", want, context)
		}
	}
	if strings.Contains(context, "Long history") {
		t.Errorf("PRDContext() leaked a non-requested section:\n%s", context)
	}
}

func TestBank_PRDContext_MissingPRD(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)

	bank := NewBank(fs, testBankDir)

	context, err := bank.PRDContext("ghost")
	if err != nil {
		t.Fatalf("PRDContext() error = %v", err)
	}
	if context != "" {
		t.Errorf("PRDContext() = %q for missing PRD, want empty", context)
	}
}

func TestBank_ListPRDs(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir+"/prds", 0755)
	_ = afero.WriteFile(fs, testBankDir+"/prds/zeta.md", []byte("# Z"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/prds/alpha.md", []byte("# A"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/prds/notes.txt", []byte("skip"), 0644)

	bank := NewBank(fs, testBankDir)

	prds, err := bank.ListPRDs()
	if err != nil {
		t.Fatalf("ListPRDs() error = %v", err)
	}
	if len(prds) != 2 || prds[0] != "alpha" || prds[1] != "zeta" {
		t.Errorf("ListPRDs() = %v, want [alpha zeta]", prds)
	}
}

func TestBank_ListPRDs_NoDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()

	bank := NewBank(fs, testBankDir)

	prds, err := bank.ListPRDs()
	if err != nil {
		t.Fatalf("ListPRDs() error = %v", err)
	}
	if len(prds) != 0 {
		t.Errorf("ListPRDs() = %v for missing directory, want empty", prds)
	}
}

func TestBank_AppendActiveContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)
	_ = afero.WriteFile(fs, testBankDir+"/activeContext.md", []byte("# Active Context\n"), 0644)

	bank := NewBank(fs, testBankDir)

	if err := bank.AppendActiveContext("decision", "Use per-plan files."); err != nil {
		t.Fatalf("AppendActiveContext() error = %v", err)
	}

	content, _ := afero.ReadFile(fs, testBankDir+"/activeContext.md")
	if !strings.Contains(string(content), "## Decision - ") {
		t.Errorf("appended entry missing titled heading:\n%s", content)
	}
	if !strings.Contains(string(content), "Use per-plan files.") {
		t.Errorf("appended entry missing content:\n%s", content)
	}
}

func TestBank_AppendActiveContext_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	bank := NewBank(fs, testBankDir)

	if err := bank.AppendActiveContext("decision", "anything"); err == nil {
		t.Error("AppendActiveContext() succeeded without an active context file")
	}
}

func TestBank_RecordDecision(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)
	_ = afero.WriteFile(fs, testBankDir+"/activeContext.md", []byte("# Active Context\n"), 0644)

	bank := NewBank(fs, testBankDir)

	if err := bank.RecordDecision("checkout", "Split payment step", "Reduces form abandonment"); err != nil {
		t.Fatalf("RecordDecision() error = %v", err)
	}

	content, _ := afero.ReadFile(fs, testBankDir+"/activeContext.md")
	for _, want := range []string{"### PRD Decision: checkout", "**Decision**: Split payment step", "**Rationale**: Reduces form abandonment"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("recorded decision missing %q:\n%s", want, content)
		}
	}
}

func TestBank_SessionContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir+"/prds", 0755)
	_ = afero.WriteFile(fs, testBankDir+"/projectbrief.md", []byte(
		"# Demo - Project Brief\n\n**Mission Statement**: Fold goals into executable plans.\n"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/productContext.md", []byte(
		"# Demo - Product Context\n\n## Why This Project Exists\nTeams lose track of multi-step work.\n"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/activeContext.md", []byte(
		"# Demo - Active Context\n\n## Current Focus\nScheduling engine.\n"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/progress.md", []byte(
		"# Demo - Progress\n\n## What Works\nValidation and scheduling.\n"), 0644)
	_ = afero.WriteFile(fs, testBankDir+"/prds/checkout.md", []byte(
		"# Checkout\n\n## Goal\nShip checkout.\n"), 0644)

	bank := NewBank(fs, testBankDir)

	context, err := bank.SessionContext("")
	if err != nil {
		t.Fatalf("SessionContext() error = %v", err)
	}

	wants := []string{
		"# Memory Bank Context",
		"**Mission**: Fold goals into executable plans.",
		"**Purpose**: Teams lose track of multi-step work.",
		"## Active Context",
		"Scheduling engine.",
		"## Progress Summary",
		"### checkout",
		"Core files available: 4 of 6",
		"PRDs available: 1",
	}
	for _, want := range wants {
		if !strings.Contains(context, want) {
			t.Errorf("SessionContext() missing %q:\n%s", want, context)
		}
	}
}

func TestBank_SessionContext_FocusArea(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)
	_ = afero.WriteFile(fs, testBankDir+"/techContext.md", []byte(
		"# Demo - Technical Context\n\nThe REST endpoint layer is versioned.\n"), 0644)

	bank := NewBank(fs, testBankDir)

	context, err := bank.SessionContext("api")
	if err != nil {
		t.Fatalf("SessionContext() error = %v", err)
	}
	if !strings.Contains(context, "## Focus: Api") {
		t.Errorf("SessionContext() missing focus section:\n%s", context)
	}
	if !strings.Contains(context, "The REST endpoint layer is versioned.") {
		t.Errorf("SessionContext() missing the focus hit:\n%s", context)
	}
}

func TestBank_SessionContext_MissingBank(t *testing.T) {
	fs := afero.NewMemMapFs()

	bank := NewBank(fs, testBankDir)

	context, err := bank.SessionContext("")
	if err != nil {
		t.Fatalf("SessionContext() error = %v", err)
	}
	if !strings.Contains(context, "No Memory Bank Found") {
		t.Errorf("SessionContext() = %q, want the missing-bank message", context)
	}
	if !strings.Contains(context, "taskfold init") {
		t.Errorf("missing-bank message should point at init:\n%s", context)
	}
}

func TestBank_Scaffold(t *testing.T) {
	fs := afero.NewMemMapFs()

	bank := NewBank(fs, testBankDir)

	created, err := bank.Scaffold("demo")
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	if created != 6 {
		t.Errorf("Scaffold() created %d files, want 6", created)
	}

	exists, _ := afero.DirExists(fs, testBankDir+"/prds")
	if !exists {
		t.Error("Scaffold() did not create the prds directory")
	}

	brief, err := afero.ReadFile(fs, testBankDir+"/projectbrief.md")
	if err != nil {
		t.Fatalf("reading scaffolded brief: %v", err)
	}
	if !strings.Contains(string(brief), "# demo - Project Brief") {
		t.Errorf("scaffolded brief missing project heading:\n%s", brief)
	}

	// a second scaffold must leave everything alone
	created, err = bank.Scaffold("demo")
	if err != nil {
		t.Fatalf("second Scaffold() error = %v", err)
	}
	if created != 0 {
		t.Errorf("second Scaffold() created %d files, want 0", created)
	}
}

func TestBank_Scaffold_KeepsExistingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testBankDir, 0755)
	_ = afero.WriteFile(fs, testBankDir+"/activeContext.md", []byte("KEEP"), 0644)

	bank := NewBank(fs, testBankDir)

	created, err := bank.Scaffold("demo")
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	if created != 5 {
		t.Errorf("Scaffold() created %d files, want 5", created)
	}

	content, _ := afero.ReadFile(fs, testBankDir+"/activeContext.md")
	if string(content) != "KEEP" {
		t.Errorf("Scaffold() overwrote an existing file: %q", content)
	}
}
