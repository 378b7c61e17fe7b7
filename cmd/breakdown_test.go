package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskfold/taskfold/models"
)

func TestEstimateReview(t *testing.T) {
	tasks := []models.Task{
		*models.NewTask("task-aa111111", "Right sized", 30),
		*models.NewTask("task-bb222222", "Too big", 90),
		*models.NewTask("task-cc333333", "Too small", 5),
	}

	review := estimateReview("sized_plan", tasks, 45, 10)

	assert.Equal(t, "sized_plan", review.Plan)
	assert.Equal(t, 3, review.Stats.Total)
	assert.Equal(t, 1, review.Stats.Oversized)
	assert.Equal(t, 1, review.Stats.Undersized)

	assert.Len(t, review.Oversized, 1)
	assert.Equal(t, "task-bb222222", review.Oversized[0].TaskID)
	assert.Contains(t, review.Oversized[0].Suggestion, "at most 45 minutes")

	assert.Len(t, review.Undersized, 1)
	assert.Equal(t, "task-cc333333", review.Undersized[0].TaskID)
}

func TestBreakdownCmd_Review(t *testing.T) {
	plan := planWithTasks("sized_plan", []int{60, 5, 30}, nil)
	seedPlans(t, plan)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"breakdown", "--review", "sized_plan"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := b.String()

	assert.Contains(t, output, "Time Estimate Review for sized_plan")
	assert.Contains(t, output, "too large")
	assert.Contains(t, output, "60 minutes")
	assert.Contains(t, output, "too small")
}
