package builder

import (
	"strings"
	"time"

	"github.com/taskfold/taskfold/models"
)

// Complexity levels accepted by InitialBreakdown.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Estimate review thresholds in minutes. Tasks above LargeTaskMinutes
// should be split; tasks below SmallTaskMinutes are candidates for merging.
const (
	LargeTaskMinutes      = 45
	SmallTaskMinutes      = 10
	DefaultSubtaskMinutes = 30
)

const (
	baseTaskMinutes       = 20
	longDescriptionChars  = 100
	longDescriptionFactor = 1.3
	planNameMaxChars      = 30
)

// InitialBreakdown returns a starter task list for a goal, chosen by keyword
// pattern. The generic pattern grows extra tasks for high complexity.
func InitialBreakdown(goal, complexity string) []string {
	g := strings.ToLower(goal)
	switch {
	case strings.Contains(g, "api"):
		return []string{
			"Design API endpoints and data models",
			"Implement request/response validation",
			"Create API route handlers",
			"Add comprehensive error handling",
			"Write API integration tests",
			"Create API documentation",
			"Add authentication/authorization if needed",
			"Performance testing and optimization",
		}
	case containsAny(g, "ui", "interface", "frontend", "gui"):
		return []string{
			"Design component structure and layout",
			"Create base components and styling",
			"Implement user interaction logic",
			"Add form validation and error handling",
			"Create responsive design adaptations",
			"Add accessibility features",
			"Write component unit tests",
			"Integration testing with user workflows",
		}
	case containsAny(g, "test", "testing", "coverage"):
		return []string{
			"Analyze current test coverage gaps",
			"Design test strategy and structure",
			"Write unit tests for core functionality",
			"Create integration tests",
			"Add edge case and error condition tests",
			"Set up test fixtures and mock data",
			"Create performance/load tests if needed",
			"Configure continuous testing pipeline",
		}
	case containsAny(g, "refactor", "optimize", "improve"):
		return []string{
			"Analyze current code structure and identify issues",
			"Create comprehensive test coverage for existing code",
			"Design improved architecture/structure",
			"Refactor in small safe increments",
			"Update related documentation",
			"Performance benchmarking before/after",
			"Update any affected APIs or interfaces",
			"Validation testing to ensure no regressions",
		}
	default:
		tasks := []string{
			"Research and understand requirements",
			"Design approach and architecture",
			"Implement core functionality",
			"Add error handling and edge cases",
			"Create comprehensive tests",
			"Write documentation",
			"Integration and validation testing",
		}
		if complexity == ComplexityHigh {
			tasks = append(tasks,
				"Performance optimization",
				"Security analysis",
				"Deployment considerations",
			)
		}
		return tasks
	}
}

// complexityLevels is scanned in order; a description is scored once, at the
// first level that matches.
var complexityLevels = []struct {
	factor float64
	words  []string
}{
	{2.5, []string{"complex", "integrate", "refactor", "architecture", "security", "performance"}},
	{1.5, []string{"implement", "create", "build", "design", "configure"}},
	{1.0, []string{"update", "fix", "adjust", "modify", "change"}},
}

// EstimateComplexity guesses a minute estimate for a task from keywords in
// its description, with a bump for long descriptions.
func EstimateComplexity(description string) int {
	minutes := float64(baseTaskMinutes)
	lower := strings.ToLower(description)
	for _, level := range complexityLevels {
		if containsAny(lower, level.words...) {
			minutes *= level.factor
			break
		}
	}
	if len(description) > longDescriptionChars {
		minutes *= longDescriptionFactor
	}
	return int(minutes)
}

// tagKeywords maps a tag to the description words that imply it. Order is
// fixed so extracted tags are deterministic.
var tagKeywords = []struct {
	tag   string
	words []string
}{
	{"api", []string{"api", "endpoint", "route", "service"}},
	{"frontend", []string{"ui", "interface", "component", "styling"}},
	{"backend", []string{"server", "database", "logic", "processing"}},
	{"testing", []string{"test", "spec", "coverage", "validation"}},
	{"documentation", []string{"docs", "readme", "documentation", "guide"}},
}

// ExtractTags derives tags from keywords in a task description.
func ExtractTags(description string) []string {
	tags := []string{}
	lower := strings.ToLower(description)
	for _, tk := range tagKeywords {
		if containsAny(lower, tk.words...) {
			tags = append(tags, tk.tag)
		}
	}
	return tags
}

// GeneratePlanName derives a filesystem-friendly plan name from a goal:
// lowercased, spaces to underscores, capped at 30 characters, with a date
// suffix so repeated invocations on different days stay distinct.
func GeneratePlanName(goal string, now time.Time) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(goal)), " ", "_")
	runes := []rune(name)
	if len(runes) > planNameMaxChars {
		name = string(runes[:planNameMaxChars])
	}
	return name + "_" + now.Format("20060102")
}

// OversizedTasks returns the tasks whose estimate exceeds LargeTaskMinutes.
func OversizedTasks(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.EstimatedMinutes > LargeTaskMinutes {
			out = append(out, t)
		}
	}
	return out
}

// UndersizedTasks returns the tasks whose estimate is below SmallTaskMinutes.
func UndersizedTasks(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.EstimatedMinutes < SmallTaskMinutes {
			out = append(out, t)
		}
	}
	return out
}

// SplitBudget tracks the remaining minutes while an oversized task is broken
// into subtasks. The usual flow: while NeedsSplit, take a piece; then take a
// final piece with whatever Remaining holds.
type SplitBudget struct {
	Title     string
	Remaining int
	Max       int
}

// NewSplitBudget starts a split for a task of the given size. A zero max
// falls back to LargeTaskMinutes.
func NewSplitBudget(title string, minutes, max int) *SplitBudget {
	if max <= 0 {
		max = LargeTaskMinutes
	}
	return &SplitBudget{Title: title, Remaining: minutes, Max: max}
}

// NeedsSplit reports whether more pieces are required before the remainder
// fits the budget.
func (b *SplitBudget) NeedsSplit() bool {
	return b.Remaining > b.Max
}

// NextDefault suggests the estimate for the next piece: the default chunk,
// capped by what is left.
func (b *SplitBudget) NextDefault() int {
	if b.Remaining < DefaultSubtaskMinutes {
		return b.Remaining
	}
	return DefaultSubtaskMinutes
}

// Take consumes minutes from the budget and returns the input for one
// subtask, titled after the parent. Non-positive minutes take the default;
// requests beyond Remaining are clamped.
func (b *SplitBudget) Take(subtitle string, minutes int) TaskInput {
	if minutes <= 0 {
		minutes = b.NextDefault()
	}
	if minutes > b.Remaining {
		minutes = b.Remaining
	}
	b.Remaining -= minutes
	return TaskInput{
		Title:            b.Title + " - " + subtitle,
		Description:      subtitle,
		EstimatedMinutes: minutes,
		Priority:         models.PriorityMedium,
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
