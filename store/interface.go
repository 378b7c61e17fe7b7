package store

import (
	"errors"

	"github.com/taskfold/taskfold/models"
)

// Sentinel errors returned by plan stores.
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanExists   = errors.New("plan already exists")
)

// PlanStore defines the interface for work plan persistence.
// It outlines the contract for managing plans as whole documents,
// including initialization, backup, restore, and resource cleanup.
type PlanStore interface {
	// Initialize configures the store with necessary parameters, such as
	// the plans directory, data format, and any other backend-specific
	// settings. It should be called before any other store operations.
	Initialize(config map[string]string) error

	// CreatePlan persists a new plan under its name.
	// It refreshes derived fields before writing and returns ErrPlanExists
	// if a plan with the same name is already stored.
	CreatePlan(plan *models.WorkPlan) error

	// GetPlan retrieves a plan by name.
	// It returns ErrPlanNotFound if no plan with that name is stored.
	GetPlan(name string) (*models.WorkPlan, error)

	// SavePlan overwrites an existing plan with the given state.
	// It refreshes derived fields before writing and returns
	// ErrPlanNotFound if the plan has never been created.
	SavePlan(plan *models.WorkPlan) error

	// ListPlanNames returns the names of all stored plans in lexical order.
	ListPlanNames() ([]string, error)

	// ListPlans loads every stored plan, ordered by name.
	ListPlans() ([]*models.WorkPlan, error)

	// DeletePlan removes a stored plan by name.
	// It returns ErrPlanNotFound if the plan does not exist.
	DeletePlan(name string) error

	// Backup copies all stored plans into the destination directory.
	// It returns an error if the backup operation fails.
	Backup(destinationPath string) error

	// Restore replaces the current plans with those found in the source
	// directory. This operation is destructive to current data.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks.
	// It should be called when the store is no longer needed.
	Close() error
}
