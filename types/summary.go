package types

import "time"

// PlanSummary is the compact machine-readable listing entry for a plan.
type PlanSummary struct {
	Name                string    `json:"name"`
	Goal                string    `json:"goal"`
	TaskCount           int       `json:"task_count"`
	TotalEstimatedHours float64   `json:"total_estimated_hours"`
	CreatedAt           time.Time `json:"created_at"`
	PRDReference        string    `json:"prd_reference,omitempty"`
}
