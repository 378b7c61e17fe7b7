package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/models"
)

const (
	progressBarWidth  = 40
	maxNextTasksShown = 3
	goalColumnWidth   = 40
	titleColumnWidth  = 45
)

// FormatTaskLine renders one numbered summary line for a task.
func FormatTaskLine(index int, t models.Task) string {
	line := fmt.Sprintf("  %d. %s %s (%dmin)", index, PriorityIcon(t.Priority), t.Title, t.EstimatedMinutes)
	if len(t.Dependencies) > 0 {
		line += fmt.Sprintf(" (depends: %d)", len(t.Dependencies))
	}
	if len(t.Risks) > 0 {
		line += fmt.Sprintf(" ⚠️%d", len(t.Risks))
	}
	return line
}

// RenderTaskSummary renders a numbered one-line-per-task summary.
func RenderTaskSummary(tasks []models.Task) string {
	var sb strings.Builder
	for i, t := range tasks {
		sb.WriteString(FormatTaskLine(i+1, t) + "\n")
	}
	return sb.String()
}

// RenderPlanHeader renders the identity block of a plan.
func RenderPlanHeader(plan *models.WorkPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Work Plan: %s\n", StyleTitle.Render(plan.Name))
	fmt.Fprintf(&sb, "🎯 Goal: %s\n", plan.Goal)
	fmt.Fprintf(&sb, "📊 Total Time: %.1f hours\n", plan.TotalEstimatedHours)
	fmt.Fprintf(&sb, "📝 Tasks: %d\n", len(plan.Tasks))
	if plan.PRDReference != "" {
		fmt.Fprintf(&sb, "📄 PRD: %s\n", plan.PRDReference)
	}
	return sb.String()
}

// RenderPlanList renders a table over all stored plans.
func RenderPlanList(plans []*models.WorkPlan) string {
	if len(plans) == 0 {
		return StyleSubtle.Render("No work plans yet. Create one with 'taskfold new'.") + "\n"
	}

	table := &Table{
		Headers:  []string{"Name", "Tasks", "Hours", "Created", "Goal"},
		MaxWidth: goalColumnWidth,
	}
	for _, p := range plans {
		table.Rows = append(table.Rows, []string{
			p.Name,
			fmt.Sprintf("%d", len(p.Tasks)),
			fmt.Sprintf("%.1f", p.TotalEstimatedHours),
			p.CreatedAt.Format("Jan 02"),
			p.Goal,
		})
	}
	return table.Render()
}

// RenderTaskTable renders plan tasks with status and dependency columns.
// Dependency IDs drop the task- prefix to keep the column narrow.
func RenderTaskTable(tasks []models.Task) string {
	table := &Table{
		Headers:  []string{"ID", "", "Status", "Title", "Min", "Deps"},
		MaxWidth: titleColumnWidth,
	}
	for _, t := range tasks {
		deps := "-"
		if len(t.Dependencies) > 0 {
			short := make([]string, len(t.Dependencies))
			for i, d := range t.Dependencies {
				short[i] = strings.TrimPrefix(d, "task-")
			}
			deps = strings.Join(short, ",")
		}
		table.Rows = append(table.Rows, []string{
			t.ID,
			PriorityIcon(t.Priority),
			string(t.Status),
			t.Title,
			fmt.Sprintf("%d", t.EstimatedMinutes),
			deps,
		})
	}
	return table.Render()
}

// RenderTaskDetail renders the full record of a single task.
func RenderTaskDetail(t models.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n", StatusIcon(t.Status), PriorityIcon(t.Priority), StyleTitle.Render(t.Title))
	fmt.Fprintf(&sb, "  ID: %s\n", t.ID)
	fmt.Fprintf(&sb, "  Status: %s\n", t.Status)
	fmt.Fprintf(&sb, "  Priority: %s\n", t.Priority)
	fmt.Fprintf(&sb, "  Estimate: %d minutes\n", t.EstimatedMinutes)
	if t.Description != "" && t.Description != t.Title {
		fmt.Fprintf(&sb, "  Description: %s\n", t.Description)
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&sb, "  Depends on: %s\n", strings.Join(t.Dependencies, ", "))
	}
	if len(t.AcceptanceCriteria) > 0 {
		sb.WriteString("  Acceptance criteria:\n")
		for _, c := range t.AcceptanceCriteria {
			fmt.Fprintf(&sb, "    - %s\n", c)
		}
	}
	if len(t.Risks) > 0 {
		sb.WriteString("  Risks:\n")
		for _, r := range t.Risks {
			fmt.Fprintf(&sb, "    ⚠️ %s\n", r)
		}
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&sb, "  Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Fprintf(&sb, "  Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	return sb.String()
}

// RenderSchedule renders tasks in execution order.
func RenderSchedule(tasks []models.Task) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("Nothing to schedule.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render("Execution Order") + "\n")
	for i, t := range tasks {
		fmt.Fprintf(&sb, "  %2d. %s %s %s (%dmin)\n",
			i+1, StatusIcon(t.Status), PriorityIcon(t.Priority), t.Title, t.EstimatedMinutes)
	}
	return sb.String()
}

// RenderTimeline renders sequential and parallel estimates, milestones and
// the critical path.
func RenderTimeline(tl *planner.Timeline) string {
	var sb strings.Builder
	sb.WriteString("⏱️ Timeline Estimates:\n")
	fmt.Fprintf(&sb, "  Sequential: %.1f hours\n", tl.SequentialHours)
	fmt.Fprintf(&sb, "  With parallel work: %.1f hours\n", tl.ParallelEstimateHours)

	if len(tl.Milestones) > 0 {
		sb.WriteString("\n🎯 Key Milestones:\n")
		for _, m := range tl.Milestones {
			fmt.Fprintf(&sb, "  - %s (%.1fh)\n", m.Name, m.CumulativeHours)
		}
	}

	if len(tl.CriticalPath) > 0 {
		fmt.Fprintf(&sb, "\n🔗 Critical path: %s\n", strings.Join(tl.CriticalPath, " -> "))
	}
	return sb.String()
}

// RenderProgress renders the completion bar, counters and next available
// tasks for a plan.
func RenderProgress(planName string, p *planner.Progress) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Progress for %s:\n", StyleTitle.Render(planName))
	sb.WriteString("  " + ProgressBar(p.CompletionPercentage) + "\n")
	fmt.Fprintf(&sb, "  Completion: %.1f%%\n", p.CompletionPercentage)
	fmt.Fprintf(&sb, "  Tasks: %d/%d\n", p.TasksCompleted, p.TasksTotal)
	fmt.Fprintf(&sb, "  Time: %.1f/%.1f hours\n", p.HoursCompleted, p.HoursTotal)
	if p.TasksBlocked > 0 {
		fmt.Fprintf(&sb, "  ⚠️ Blocked tasks: %d\n", p.TasksBlocked)
	}

	if len(p.NextAvailableTasks) > 0 {
		sb.WriteString("\n🎯 Next available tasks:\n")
		for i, t := range p.NextAvailableTasks {
			if i == maxNextTasksShown {
				break
			}
			fmt.Fprintf(&sb, "  - %s %s (%dmin)\n", PriorityIcon(t.Priority), t.Title, t.EstimatedMinutes)
		}
	}
	return sb.String()
}

// ProgressBar renders a static completion bar for a 0-100 percentage.
func ProgressBar(percent float64) string {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(progressBarWidth),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(percent / 100)
}
