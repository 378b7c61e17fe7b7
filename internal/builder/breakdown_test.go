package builder

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestInitialBreakdown_PatternRouting(t *testing.T) {
	tests := []struct {
		name       string
		goal       string
		complexity string
		wantFirst  string
		wantLen    int
	}{
		{
			name:       "api goal",
			goal:       "Build REST API for user management",
			complexity: ComplexityMedium,
			wantFirst:  "Design API endpoints and data models",
			wantLen:    8,
		},
		{
			name:       "ui goal",
			goal:       "Redesign the settings UI",
			complexity: ComplexityMedium,
			wantFirst:  "Design component structure and layout",
			wantLen:    8,
		},
		{
			name:       "testing goal",
			goal:       "Raise unit test coverage",
			complexity: ComplexityMedium,
			wantFirst:  "Analyze current test coverage gaps",
			wantLen:    8,
		},
		{
			name:       "refactoring goal",
			goal:       "Refactor the payment module",
			complexity: ComplexityMedium,
			wantFirst:  "Analyze current code structure and identify issues",
			wantLen:    8,
		},
		{
			name:       "generic goal",
			goal:       "Ship the onboarding flow",
			complexity: ComplexityLow,
			wantFirst:  "Research and understand requirements",
			wantLen:    7,
		},
		{
			name:       "generic goal high complexity",
			goal:       "Ship the onboarding flow",
			complexity: ComplexityHigh,
			wantFirst:  "Research and understand requirements",
			wantLen:    10,
		},
		{
			// api outranks ui when a goal mentions both
			name:       "api beats ui",
			goal:       "API for the settings UI",
			complexity: ComplexityMedium,
			wantFirst:  "Design API endpoints and data models",
			wantLen:    8,
		},
		{
			// "improve" alone would route to refactoring, but test wins
			name:       "test beats refactor keywords",
			goal:       "Improve test reliability",
			complexity: ComplexityMedium,
			wantFirst:  "Analyze current test coverage gaps",
			wantLen:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialBreakdown(tt.goal, tt.complexity)
			if len(got) != tt.wantLen {
				t.Fatalf("InitialBreakdown(%q) returned %d tasks, want %d", tt.goal, len(got), tt.wantLen)
			}
			if got[0] != tt.wantFirst {
				t.Errorf("first task = %q, want %q", got[0], tt.wantFirst)
			}
		})
	}
}

func TestInitialBreakdown_HighComplexityExtension(t *testing.T) {
	got := InitialBreakdown("Ship the onboarding flow", ComplexityHigh)
	want := []string{"Performance optimization", "Security analysis", "Deployment considerations"}
	if len(got) < len(want) {
		t.Fatalf("breakdown too short: %v", got)
	}
	tail := got[len(got)-len(want):]
	if !reflect.DeepEqual(tail, want) {
		t.Errorf("high-complexity tail = %v, want %v", tail, want)
	}
}

func TestEstimateComplexity(t *testing.T) {
	longPad := strings.Repeat("x", 100)

	tests := []struct {
		name        string
		description string
		want        int
	}{
		{"no keywords", "write release notes", 20},
		{"low keyword", "adjust the page padding", 20},
		{"medium keyword", "implement the parser", 30},
		{"high keyword", "integrate the billing provider", 50},
		{"high beats low when both present", "integrate the fix for billing", 50},
		{"long description bump", "architecture " + longPad, 65},
		{"medium with long description", "create " + longPad, 39},
		{"plain long description", "notes " + longPad, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateComplexity(tt.description); got != tt.want {
				t.Errorf("EstimateComplexity(%q) = %d, want %d", tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{"api words", "Add an API endpoint for login", []string{"api"}},
		{"frontend words", "Build the component styling", []string{"frontend"}},
		{"backend words", "Wire the database into the server", []string{"backend"}},
		{"testing words", "Extend unit test coverage", []string{"testing"}},
		{"documentation words", "Refresh the README guide", []string{"documentation"}},
		{"multiple tags keep fixed order", "Test the API endpoint docs", []string{"api", "testing", "documentation"}},
		{"no matches", "plan the offsite", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.description)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tt.description, got, tt.want)
			}
		})
	}
}

func TestGeneratePlanName(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		goal string
		want string
	}{
		{"simple goal", "Build Auth Service", "build_auth_service_20260823"},
		{"surrounding whitespace trimmed", "  Fix Bug  ", "fix_bug_20260823"},
		{
			"long goal capped at 30 chars",
			"Implement the new authentication and authorization layer",
			"implement_the_new_authenticati_20260823",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneratePlanName(tt.goal, now); got != tt.want {
				t.Errorf("GeneratePlanName(%q) = %q, want %q", tt.goal, got, tt.want)
			}
		})
	}
}

func TestSplitBudget(t *testing.T) {
	budget := NewSplitBudget("Build importer", 120, 0)

	if !budget.NeedsSplit() {
		t.Fatal("120 minutes over a 45-minute cap should need splitting")
	}
	if got := budget.NextDefault(); got != 30 {
		t.Fatalf("NextDefault() = %d, want 30", got)
	}

	first := budget.Take("Parse input", 50)
	if first.Title != "Build importer - Parse input" {
		t.Errorf("subtask title = %q", first.Title)
	}
	if first.EstimatedMinutes != 50 || budget.Remaining != 70 {
		t.Errorf("after first take: minutes=%d remaining=%d, want 50 and 70", first.EstimatedMinutes, budget.Remaining)
	}

	// zero minutes fall back to the default chunk
	second := budget.Take("Map fields", 0)
	if second.EstimatedMinutes != 30 || budget.Remaining != 40 {
		t.Errorf("after second take: minutes=%d remaining=%d, want 30 and 40", second.EstimatedMinutes, budget.Remaining)
	}

	if budget.NeedsSplit() {
		t.Error("40 minutes remaining fits the cap, should not need splitting")
	}

	final := budget.Take("Write output", budget.Remaining)
	if final.EstimatedMinutes != 40 || budget.Remaining != 0 {
		t.Errorf("after final take: minutes=%d remaining=%d, want 40 and 0", final.EstimatedMinutes, budget.Remaining)
	}

	total := first.EstimatedMinutes + second.EstimatedMinutes + final.EstimatedMinutes
	if total != 120 {
		t.Errorf("subtask minutes sum to %d, want the original 120", total)
	}
}

func TestSplitBudget_ClampsOverdraw(t *testing.T) {
	budget := NewSplitBudget("Migrate data", 50, 45)
	piece := budget.Take("Everything at once", 100)
	if piece.EstimatedMinutes != 50 {
		t.Errorf("take beyond remaining = %d minutes, want clamp to 50", piece.EstimatedMinutes)
	}
	if budget.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", budget.Remaining)
	}
}

func TestOversizedAndUndersizedTasks(t *testing.T) {
	tasks := []struct {
		title   string
		minutes int
	}{
		{"big", 60},
		{"fine", 30},
		{"tiny", 5},
	}

	b := New("Estimate review")
	for _, in := range tasks {
		if _, err := b.AddTask(TaskInput{Title: in.title, EstimatedMinutes: in.minutes}); err != nil {
			t.Fatalf("AddTask(%s): %v", in.title, err)
		}
	}

	over := OversizedTasks(b.Tasks())
	if len(over) != 1 || over[0].Title != "big" {
		t.Errorf("OversizedTasks = %v, want just the 60-minute task", over)
	}

	under := UndersizedTasks(b.Tasks())
	if len(under) != 1 || under[0].Title != "tiny" {
		t.Errorf("UndersizedTasks = %v, want just the 5-minute task", under)
	}
}
