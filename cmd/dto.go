package cmd

import (
	"fmt"

	"github.com/taskfold/taskfold/models"
	"github.com/taskfold/taskfold/types"
)

type statusChangedResponse struct {
	Plan   string `json:"plan"`
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type planCreatedResponse struct {
	Status string  `json:"status"`
	Name   string  `json:"name"`
	Goal   string  `json:"goal"`
	Tasks  int     `json:"tasks"`
	Hours  float64 `json:"total_estimated_hours"`
}

type validationResponse struct {
	Plan  string   `json:"plan"`
	Valid bool     `json:"valid"`
	Error string   `json:"error,omitempty"`
	Cycle []string `json:"cycle,omitempty"`
}

type initResponse struct {
	Status       string `json:"status"`
	BankDir      string `json:"bank_dir"`
	FilesCreated int    `json:"files_created"`
}

type breakdownResponse struct {
	Input            string `json:"input"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	MaxMinutes       int    `json:"max_minutes"`
	NeedsBreakdown   bool   `json:"needs_breakdown"`
}

type contextResponse struct {
	Focus   string `json:"focus,omitempty"`
	Context string `json:"context"`
}

// planSummary flattens a plan into its compact listing form.
func planSummary(p *models.WorkPlan) types.PlanSummary {
	return types.PlanSummary{
		Name:                p.Name,
		Goal:                p.Goal,
		TaskCount:           len(p.Tasks),
		TotalEstimatedHours: p.TotalEstimatedHours,
		CreatedAt:           p.CreatedAt,
		PRDReference:        p.PRDReference,
	}
}

// estimateReview flags tasks whose estimates fall outside [min, max] minutes.
func estimateReview(planName string, tasks []models.Task, maxMinutes, minMinutes int) types.EstimateReview {
	review := types.EstimateReview{
		Plan:       planName,
		MaxMinutes: maxMinutes,
		MinMinutes: minMinutes,
		Oversized:  []types.EstimateFlag{},
		Undersized: []types.EstimateFlag{},
	}
	for _, t := range tasks {
		switch {
		case t.EstimatedMinutes > maxMinutes:
			review.Oversized = append(review.Oversized, types.EstimateFlag{
				TaskID:           t.ID,
				Title:            t.Title,
				EstimatedMinutes: t.EstimatedMinutes,
				Suggestion:       fmt.Sprintf("split into subtasks of at most %d minutes", maxMinutes),
			})
		case t.EstimatedMinutes < minMinutes:
			review.Undersized = append(review.Undersized, types.EstimateFlag{
				TaskID:           t.ID,
				Title:            t.Title,
				EstimatedMinutes: t.EstimatedMinutes,
				Suggestion:       "consider combining with a related task",
			})
		}
	}
	review.Stats = types.EstimateStats{
		Total:      len(tasks),
		Oversized:  len(review.Oversized),
		Undersized: len(review.Undersized),
	}
	return review
}
