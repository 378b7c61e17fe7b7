package memorybank

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/taskfold/taskfold/internal/util"
)

const (
	activeContextCap   = 10
	systemPatternsCap  = 15
	progressSummaryCap = 12
	focusContextCap    = 10
	recentPRDCount     = 3
	prdSummaryChars    = 200
)

// focusKeywords widens a focus area into the words scanned for in the core
// files. Unknown areas fall back to the area name itself.
var focusKeywords = map[string][]string{
	"api":         {"api", "endpoint", "route", "service", "rest"},
	"testing":     {"test", "coverage", "tdd", "quality"},
	"features":    {"feature", "functionality", "requirement", "user"},
	"performance": {"performance", "optimization", "benchmark", "speed"},
	"deployment":  {"deploy", "docker", "production", "infrastructure"},
}

// SessionContext assembles a condensed project summary from the core bank
// files: overview, active focus, system patterns, progress, an optional
// focus-specific slice and recent PRDs. The condensed form replaces reading
// the raw files at session start.
func (b *Bank) SessionContext(focus string) (string, error) {
	exists, err := b.Exists()
	if err != nil {
		return "", fmt.Errorf("check memory bank: %w", err)
	}
	if !exists {
		return b.missingBankMessage(), nil
	}

	files := b.readCoreFiles()

	var sections []string
	appendSection := func(s string) {
		if s != "" {
			sections = append(sections, s)
		}
	}

	appendSection(projectOverview(files))
	appendSection(keywordSection("Active Context", files["activeContext.md"],
		[]string{"current focus", "recent decisions", "next steps"}, activeContextCap))
	appendSection(keywordSection("System Patterns", files["systemPatterns.md"],
		[]string{"architecture", "design patterns", "quality standards", "testing"}, systemPatternsCap))
	appendSection(keywordSection("Progress Summary", files["progress.md"],
		[]string{"what works", "what's left", "known issues", "recent achievements"}, progressSummaryCap))
	if focus != "" {
		appendSection(focusContext(files, focus))
	}
	appendSection(b.recentPRDSummaries())

	return b.formatSession(strings.Join(sections, "\n\n"), files), nil
}

// readCoreFiles loads the core bank files; missing files map to "".
func (b *Bank) readCoreFiles() map[string]string {
	files := make(map[string]string, len(coreFiles))
	for _, name := range coreFiles {
		content, err := afero.ReadFile(b.fs, filepath.Join(b.baseDir, name))
		if err != nil {
			files[name] = ""
			continue
		}
		files[name] = string(content)
	}
	return files
}

// projectOverview pulls the mission line from the project brief and the
// first purpose line after "Why This Project Exists" in the product context.
func projectOverview(files map[string]string) string {
	var parts []string

	for _, line := range strings.Split(files["projectbrief.md"], "\n") {
		if strings.Contains(line, "**Mission") || strings.Contains(line, "Mission Statement") {
			if _, after, found := strings.Cut(line, ":"); found {
				parts = append(parts, "**Mission**: "+strings.TrimSpace(after))
			}
			break
		}
	}

	lines := strings.Split(files["productContext.md"], "\n")
	for i, line := range lines {
		if !strings.Contains(line, "Why This Project Exists") {
			continue
		}
		for j := i + 1; j < len(lines) && j < i+5; j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate != "" && !strings.HasPrefix(candidate, "#") && !strings.HasPrefix(candidate, "*") {
				parts = append(parts, "**Purpose**: "+candidate)
				break
			}
		}
		break
	}

	if len(parts) == 0 {
		return ""
	}
	return "## Project Overview\n" + strings.Join(parts, "\n")
}

// keywordSection collects the lines following any line that mentions one of
// the keywords, stopping at the next "##" heading and capping the total.
func keywordSection(title, content string, keywords []string, maxLines int) string {
	if content == "" {
		return ""
	}

	var collected []string
	inSection := false
	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		switch {
		case containsAnyKeyword(lower, keywords):
			inSection = true
			collected = append(collected, line)
		case strings.HasPrefix(line, "##"):
			inSection = false
		case inSection && strings.TrimSpace(line) != "":
			collected = append(collected, line)
		}
		if len(collected) >= maxLines {
			break
		}
	}

	if len(collected) == 0 {
		return ""
	}
	return "## " + title + "\n" + strings.Join(collected, "\n")
}

// focusContext pulls a few lines of context around the first keyword hit in
// each core file for the requested focus area.
func focusContext(files map[string]string, focus string) string {
	keywords, ok := focusKeywords[strings.ToLower(focus)]
	if !ok {
		keywords = []string{strings.ToLower(focus)}
	}

	var collected []string
	for _, name := range coreFiles {
		content := files[name]
		if content == "" {
			continue
		}
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if !containsAnyKeyword(strings.ToLower(line), keywords) {
				continue
			}
			start := i - 1
			if start < 0 {
				start = 0
			}
			end := i + 3
			if end > len(lines) {
				end = len(lines)
			}
			collected = append(collected, lines[start:end]...)
			break
		}
	}

	if len(collected) == 0 {
		return ""
	}
	if len(collected) > focusContextCap {
		collected = collected[:focusContextCap]
	}
	return "## Focus: " + util.ToTitle(focus) + "\n" + strings.Join(collected, "\n")
}

// recentPRDSummaries summarizes the most recently modified PRDs.
func (b *Bank) recentPRDSummaries() string {
	dir := filepath.Join(b.baseDir, prdsDir)
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return ""
	}

	var prds []string
	modTimes := make(map[string]time.Time)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		prds = append(prds, name)
		modTimes[name] = entry.ModTime()
	}
	sort.Slice(prds, func(i, j int) bool {
		return modTimes[prds[i]].After(modTimes[prds[j]])
	})
	if len(prds) > recentPRDCount {
		prds = prds[:recentPRDCount]
	}

	var summaries []string
	for _, name := range prds {
		summary, err := b.PRDSummary(name)
		if err != nil || summary == "" {
			continue
		}
		summaries = append(summaries, "### "+name+"\n"+util.Truncate(summary, prdSummaryChars))
	}

	if len(summaries) == 0 {
		return ""
	}
	return "## Recent PRDs\n" + strings.Join(summaries, "\n")
}

func (b *Bank) formatSession(body string, files map[string]string) string {
	available := 0
	for _, content := range files {
		if content != "" {
			available++
		}
	}
	prds, _ := b.ListPRDs()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Memory Bank Context - %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Bank: %s\n\n---\n\n", b.baseDir)
	sb.WriteString(body)
	sb.WriteString("\n\n---\n\n## Memory Bank Status\n")
	fmt.Fprintf(&sb, "- Core files available: %d of %d\n", available, len(coreFiles))
	fmt.Fprintf(&sb, "- PRDs available: %d\n", len(prds))
	return sb.String()
}

func (b *Bank) missingBankMessage() string {
	return fmt.Sprintf(`# No Memory Bank Found

No memory-bank directory at %s.

Run 'taskfold init' to create one, then capture project context in
memory-bank/activeContext.md.
`, b.baseDir)
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
