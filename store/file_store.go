package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/taskfold/taskfold/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultPlansDir   = "memory-bank/work-plans"
	plansDirKey       = "plansDir"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
	lockFileName      = ".plans.lock"
)

// FilePlanStore implements the PlanStore interface with one file per plan
// under a plans directory. It supports JSON, YAML, and TOML formats, keeps
// a SHA256 checksum sidecar next to each plan file, and serializes access
// through a directory-level file lock.
type FilePlanStore struct {
	plansDir string
	format   string // "json", "yaml", or "toml"
	flk      *flock.Flock
}

// NewFilePlanStore creates a new instance of FilePlanStore.
// It does not initialize the store; Initialize must be called separately.
func NewFilePlanStore() *FilePlanStore {
	return &FilePlanStore{}
}

// Initialize configures the FilePlanStore.
// It expects a 'plansDir' key in the config map specifying the directory
// plans are stored in, defaulting to 'memory-bank/work-plans'. The
// directory is created if missing and a lock file is established in it.
func (s *FilePlanStore) Initialize(config map[string]string) error {
	if val, ok := config[plansDirKey]; ok && val != "" {
		s.plansDir = val
	} else {
		s.plansDir = defaultPlansDir
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if err := os.MkdirAll(s.plansDir, 0o755); err != nil {
		return fmt.Errorf("failed to create plans directory %s: %w", s.plansDir, err)
	}

	s.flk = flock.New(filepath.Join(s.plansDir, lockFileName))
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// planFilePath maps a plan name to its data file path. Names containing
// path separators are rejected up front so a crafted name cannot escape
// the plans directory.
func (s *FilePlanStore) planFilePath(name string) (string, error) {
	if name == "" {
		return "", errors.New("plan name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid plan name %q", name)
	}
	return filepath.Join(s.plansDir, name+"."+s.format), nil
}

// readPlanFileInternal reads one plan file, verifies its checksum, and
// unmarshals it. The caller must hold the lock.
func (s *FilePlanStore) readPlanFileInternal(path string) (*models.WorkPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	checksumFilePath := path + checksumSuffix
	if _, statErr := os.Stat(checksumFilePath); statErr == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		actualChecksum := calculateChecksum(data)
		if actualChecksum != expectedChecksum {
			return nil, fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", path, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, statErr)
	}
	// A plan file without a sidecar predates checksums; loading is allowed
	// and the next save creates one.

	var plan models.WorkPlan
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON from %s: %w", path, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML from %s: %w", path, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML from %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	return &plan, nil
}

// writePlanFileInternal marshals a plan, writes it to a temp file, renames
// it into place and then updates the checksum sidecar. The caller must
// hold the lock and have refreshed derived fields.
func (s *FilePlanStore) writePlanFileInternal(path string, plan *models.WorkPlan) error {
	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(plan, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(plan)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(plan); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal plan to %s: %w", s.format, err)
	}

	tempFilePath := path + ".tmp"
	checksumFilePath := path + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary plan file %s: %w", tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		return fmt.Errorf("failed to rename temporary plan file %s to %s: %w", tempFilePath, path, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("CRITICAL: plan file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", path, checksumFilePath, err)
	}

	return nil
}

// CreatePlan persists a new plan under its name.
func (s *FilePlanStore) CreatePlan(plan *models.WorkPlan) error {
	path, err := s.planFilePath(plan.Name)
	if err != nil {
		return err
	}

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock plans directory for create: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("plan %q: %w", plan.Name, ErrPlanExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check for existing plan %s: %w", path, err)
	}

	plan.RecomputeTotals()
	if err := models.ValidateStruct(plan); err != nil {
		return fmt.Errorf("validation failed for new plan: %w", err)
	}

	return s.writePlanFileInternal(path, plan)
}

// GetPlan retrieves a plan by name.
func (s *FilePlanStore) GetPlan(name string) (*models.WorkPlan, error) {
	path, err := s.planFilePath(name)
	if err != nil {
		return nil, err
	}

	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for GetPlan: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	plan, err := s.readPlanFileInternal(path)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return nil, fmt.Errorf("plan %q: %w", name, ErrPlanNotFound)
		}
		return nil, err
	}
	return plan, nil
}

// SavePlan overwrites an existing plan with the given state.
func (s *FilePlanStore) SavePlan(plan *models.WorkPlan) error {
	path, err := s.planFilePath(plan.Name)
	if err != nil {
		return err
	}

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock plans directory for save: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plan %q: %w", plan.Name, ErrPlanNotFound)
		}
		return fmt.Errorf("failed to check for existing plan %s: %w", path, err)
	}

	plan.RecomputeTotals()
	if err := models.ValidateStruct(plan); err != nil {
		return fmt.Errorf("validation failed for plan: %w", err)
	}

	return s.writePlanFileInternal(path, plan)
}

// ListPlanNames returns the names of all stored plans in lexical order.
func (s *FilePlanStore) ListPlanNames() ([]string, error) {
	entries, err := os.ReadDir(s.plansDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read plans directory %s: %w", s.plansDir, err)
	}

	suffix := "." + s.format
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(names)
	return names, nil
}

// ListPlans loads every stored plan, ordered by name.
func (s *FilePlanStore) ListPlans() ([]*models.WorkPlan, error) {
	names, err := s.ListPlanNames()
	if err != nil {
		return nil, err
	}

	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for ListPlans: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	plans := make([]*models.WorkPlan, 0, len(names))
	for _, name := range names {
		path, pathErr := s.planFilePath(name)
		if pathErr != nil {
			return nil, pathErr
		}
		plan, readErr := s.readPlanFileInternal(path)
		if readErr != nil {
			return nil, fmt.Errorf("failed to load plan %q: %w", name, readErr)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// DeletePlan removes a stored plan by name.
func (s *FilePlanStore) DeletePlan(name string) error {
	path, err := s.planFilePath(name)
	if err != nil {
		return err
	}

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock plans directory for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plan %q: %w", name, ErrPlanNotFound)
		}
		return fmt.Errorf("failed to delete plan file %s: %w", path, err)
	}
	_ = os.Remove(path + checksumSuffix) // best effort
	return nil
}

// Backup copies all stored plan files and their checksums into the
// destination directory.
func (s *FilePlanStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.MkdirAll(destinationPath, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", destinationPath, err)
	}

	names, err := s.listPlanFilesInternal()
	if err != nil {
		return err
	}
	for _, fileName := range names {
		input, readErr := os.ReadFile(filepath.Join(s.plansDir, fileName))
		if readErr != nil {
			return fmt.Errorf("failed to read %s for backup: %w", fileName, readErr)
		}
		if writeErr := os.WriteFile(filepath.Join(destinationPath, fileName), input, 0o644); writeErr != nil {
			return fmt.Errorf("failed to write backup file %s: %w", fileName, writeErr)
		}
	}
	return nil
}

// Restore replaces the current plans with those found in the source
// directory. Existing plan files are removed first.
func (s *FilePlanStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	entries, err := os.ReadDir(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read backup directory %s: %w", sourcePath, err)
	}

	current, err := s.listPlanFilesInternal()
	if err != nil {
		return err
	}
	for _, fileName := range current {
		if removeErr := os.Remove(filepath.Join(s.plansDir, fileName)); removeErr != nil {
			return fmt.Errorf("failed to remove %s before restore: %w", fileName, removeErr)
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, "."+s.format) && !strings.HasSuffix(name, checksumSuffix) {
			continue
		}
		input, readErr := os.ReadFile(filepath.Join(sourcePath, name))
		if readErr != nil {
			return fmt.Errorf("failed to read backup file %s: %w", name, readErr)
		}
		if writeErr := os.WriteFile(filepath.Join(s.plansDir, name), input, 0o644); writeErr != nil {
			return fmt.Errorf("failed to restore file %s: %w", name, writeErr)
		}
	}
	return nil
}

// listPlanFilesInternal returns plan data and checksum file names in the
// plans directory. The caller must hold the lock.
func (s *FilePlanStore) listPlanFilesInternal() ([]string, error) {
	entries, err := os.ReadDir(s.plansDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans directory %s: %w", s.plansDir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, "."+s.format) || strings.HasSuffix(name, "."+s.format+checksumSuffix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close releases the directory lock.
func (s *FilePlanStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
