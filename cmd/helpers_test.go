package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/taskfold/taskfold/models"
	"github.com/taskfold/taskfold/store"
)

// seedPlans points the store at a fresh temp directory and saves the given
// plans there. It returns the plans directory the CLI was configured with.
func seedPlans(t *testing.T, plans ...*models.WorkPlan) string {
	t.Helper()

	plansDir := filepath.Join(t.TempDir(), "work-plans")

	// Reset config state so each test starts from defaults plus the temp dir.
	viper.Reset()
	viper.Set("project.plansDir", plansDir)

	s := store.NewFilePlanStore()
	require.NoError(t, s.Initialize(map[string]string{
		"plansDir":       plansDir,
		"dataFileFormat": "json",
	}))
	for _, p := range plans {
		require.NoError(t, s.CreatePlan(p))
	}
	require.NoError(t, s.Close())

	return plansDir
}

// planWithTasks builds a plan whose tasks carry the given dependency lists,
// keyed by position: deps[i] holds indexes into tasks created before it.
func planWithTasks(name string, minutes []int, deps map[int][]int) *models.WorkPlan {
	plan := models.NewWorkPlan(name, "goal for "+name)
	ids := make([]string, len(minutes))
	for i, m := range minutes {
		task := models.NewTask(
			// Fixed IDs keep dependency wiring in tests deterministic.
			"task-"+string(rune('a'+i))+"0000000",
			"Task "+string(rune('A'+i)),
			m,
		)
		ids[i] = task.ID
		plan.Tasks = append(plan.Tasks, *task)
	}
	for i, depIdx := range deps {
		for _, d := range depIdx {
			plan.Tasks[i].Dependencies = append(plan.Tasks[i].Dependencies, ids[d])
		}
	}
	plan.RecomputeTotals()
	return plan
}
