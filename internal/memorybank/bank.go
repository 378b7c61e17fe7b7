// Package memorybank reads and maintains the project memory bank: the
// markdown files under memory-bank/ that carry project context across
// working sessions. Plans reference PRD documents stored in the bank, and
// session summaries are condensed from the core files rather than dumped
// raw.
package memorybank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/taskfold/taskfold/internal/util"
)

// DefaultDir is the memory bank directory relative to the project root.
const DefaultDir = "memory-bank"

const (
	activeContextFile = "activeContext.md"
	prdsDir           = "prds"

	// projectContextChars caps the activeContext excerpt handed to plan flows.
	projectContextChars = 500
	// prdContextLines caps extracted PRD sections.
	prdContextLines = 20
)

// coreFiles are read for session context, in presentation order.
var coreFiles = []string{
	"projectbrief.md",
	"productContext.md",
	"activeContext.md",
	"systemPatterns.md",
	"techContext.md",
	"progress.md",
}

// Bank reads and updates a memory bank directory. It uses an afero.Fs
// interface for filesystem operations, enabling easy testing with in-memory
// filesystems.
type Bank struct {
	fs      afero.Fs
	baseDir string
}

// NewBank creates a bank over the provided filesystem. The baseDir should be
// the path to the memory-bank directory. Use afero.NewOsFs() for real
// filesystem operations, or afero.NewMemMapFs() for testing.
func NewBank(fs afero.Fs, baseDir string) *Bank {
	return &Bank{
		fs:      fs,
		baseDir: baseDir,
	}
}

// NewOsBank creates a Bank using the real operating system filesystem.
func NewOsBank(baseDir string) *Bank {
	return NewBank(afero.NewOsFs(), baseDir)
}

// Path constructs the memory bank path for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, DefaultDir)
}

// Exists checks if the memory bank directory exists.
func (b *Bank) Exists() (bool, error) {
	return afero.DirExists(b.fs, b.baseDir)
}

// ProjectContext returns a short excerpt of the active context for plan
// construction flows. A missing bank or file yields an empty string, not an
// error.
func (b *Bank) ProjectContext() (string, error) {
	path := filepath.Join(b.baseDir, activeContextFile)
	exists, err := afero.Exists(b.fs, path)
	if err != nil {
		return "", fmt.Errorf("check active context: %w", err)
	}
	if !exists {
		return "", nil
	}

	content, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return "", fmt.Errorf("read active context: %w", err)
	}

	runes := []rune(string(content))
	if len(runes) > projectContextChars {
		runes = runes[:projectContextChars]
	}
	return string(runes), nil
}

// PRDContext extracts the Goal, Requirements and Success sections of a PRD
// for plan construction. A missing PRD yields an empty string.
func (b *Bank) PRDContext(name string) (string, error) {
	content, err := b.readPRD(name)
	if err != nil || content == "" {
		return "", err
	}
	sections := extractSections(content, []string{"## Goal", "## Requirements", "## Success"}, prdContextLines)
	return strings.Join(sections, "\n"), nil
}

// PRDSummary extracts the Goal, Problem and Solution sections of a PRD for
// session summaries. A missing PRD yields an empty string.
func (b *Bank) PRDSummary(name string) (string, error) {
	content, err := b.readPRD(name)
	if err != nil || content == "" {
		return "", err
	}
	sections := extractSections(content, []string{"## Goal", "## Problem", "## Solution"}, prdContextLines)
	return strings.Join(sections, "\n"), nil
}

func (b *Bank) readPRD(name string) (string, error) {
	path := filepath.Join(b.baseDir, prdsDir, name+".md")
	exists, err := afero.Exists(b.fs, path)
	if err != nil {
		return "", fmt.Errorf("check PRD %s: %w", name, err)
	}
	if !exists {
		return "", nil
	}
	content, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return "", fmt.Errorf("read PRD %s: %w", name, err)
	}
	return string(content), nil
}

// ListPRDs returns the names of PRD documents in the bank, sorted.
func (b *Bank) ListPRDs() ([]string, error) {
	dir := filepath.Join(b.baseDir, prdsDir)
	exists, err := afero.DirExists(b.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("check prds directory: %w", err)
	}
	if !exists {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read prds directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// AppendActiveContext appends a timestamped, titled entry to
// activeContext.md. The file must already exist; Scaffold creates it.
func (b *Bank) AppendActiveContext(kind, content string) error {
	path := filepath.Join(b.baseDir, activeContextFile)
	exists, err := afero.Exists(b.fs, path)
	if err != nil {
		return fmt.Errorf("check active context: %w", err)
	}
	if !exists {
		return fmt.Errorf("no active context at %s, run init first", path)
	}

	entry := fmt.Sprintf("\n## %s - %s\n%s\n",
		util.ToTitle(kind), time.Now().Format("2006-01-02 15:04"), content)

	file, err := b.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open active context: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(entry); err != nil {
		return fmt.Errorf("append active context: %w", err)
	}
	return nil
}

// RecordDecision appends a PRD-related decision with its rationale to the
// active context.
func (b *Bank) RecordDecision(prdName, decision, rationale string) error {
	content := fmt.Sprintf(`
### PRD Decision: %s
**Decision**: %s
**Rationale**: %s
`, prdName, decision, rationale)
	return b.AppendActiveContext("PRD Decision", content)
}

// extractSections collects the lines of every section whose heading contains
// one of the markers, stopping each section at the next "## " heading and
// capping the total line count.
func extractSections(content string, markers []string, maxLines int) []string {
	lines := strings.Split(content, "\n")
	collected := []string{}
	inSection := false

	for _, line := range lines {
		switch {
		case headingMatches(line, markers):
			inSection = true
			collected = append(collected, line)
		case strings.HasPrefix(line, "## "):
			inSection = false
		case inSection:
			collected = append(collected, line)
		}
		if len(collected) >= maxLines {
			break
		}
	}
	return collected
}

func headingMatches(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
