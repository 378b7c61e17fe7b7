package types

// EstimateFlag describes a single task whose time estimate falls outside
// the configured bounds.
type EstimateFlag struct {
	TaskID           string `json:"task_id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Suggestion       string `json:"suggestion,omitempty"`
}

// EstimateReview is the persisted review of a plan's time estimates.
type EstimateReview struct {
	Plan       string         `json:"plan"`
	MaxMinutes int            `json:"max_minutes"`
	MinMinutes int            `json:"min_minutes"`
	Oversized  []EstimateFlag `json:"oversized"`
	Undersized []EstimateFlag `json:"undersized"`
	Stats      EstimateStats  `json:"stats"`
}

type EstimateStats struct {
	Total      int `json:"total"`
	Oversized  int `json:"oversized"`  // estimate above max_minutes
	Undersized int `json:"undersized"` // estimate below min_minutes
}
