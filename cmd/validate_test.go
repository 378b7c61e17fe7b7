package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCmd_ValidPlan(t *testing.T) {
	// C depends on A and B, B depends on A: a clean diamond-free DAG.
	plan := planWithTasks("build_rest_api", []int{30, 30, 30}, map[int][]int{
		1: {0},
		2: {0, 1},
	})
	seedPlans(t, plan)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"validate", "build_rest_api"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := b.String()
	assert.Contains(t, output, "is valid")
	assert.Contains(t, output, "3 tasks")
}

func TestValidateCmd_Cycle(t *testing.T) {
	// A depends on B and B depends on A.
	plan := planWithTasks("cyclic_plan", []int{30, 30}, map[int][]int{
		0: {1},
		1: {0},
	})
	seedPlans(t, plan)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"validate", "cyclic_plan"})
	err := rootCmd.Execute()

	assert.Error(t, err)
	output := b.String()
	assert.Contains(t, output, "circular dependency")
	assert.Contains(t, output, "->")
}

func TestValidateCmd_UnknownDependency(t *testing.T) {
	plan := planWithTasks("dangling_plan", []int{30}, nil)
	plan.Tasks[0].Dependencies = []string{"task-zz999999"}
	seedPlans(t, plan)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"validate", "dangling_plan"})
	err := rootCmd.Execute()

	assert.Error(t, err)
	output := b.String()
	assert.Contains(t, output, "unknown task")
	assert.Contains(t, output, "task-zz999999")
}
