// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Standard ID lengths for taskfold entities.
const (
	// TaskIDLength is the full length of a task ID (e.g., "task-abcdef12").
	TaskIDLength = 13 // "task-" (5) + 8 hex chars
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// NewTaskID returns a fresh task ID of the form "task-abcdef12".
func NewTaskID() string {
	return "task-" + uuid.New().String()[:8]
}

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
// Examples:
//
//	ShortID("task-abcdef12", 0) → "task-abc" (8 chars total including prefix)
//	ShortID("task-abcdef12", 10) → "task-abcde" (10 chars total)
//	ShortID("task-abc", 20) → "task-abc" (no truncation if shorter)
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveTaskID resolves a task ID or prefix against the given candidate IDs.
//
// Resolution rules:
//  1. An exact match always wins.
//  2. A prefix matching exactly one ID resolves to that ID.
//  3. If multiple IDs match, return ErrAmbiguousID with candidates.
//  4. If no IDs match, return ErrNotFound.
func ResolveTaskID(ids []string, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	// Normalize: if no prefix, assume task prefix
	normalized := idOrPrefix
	if !strings.HasPrefix(normalized, "task-") {
		normalized = "task-" + normalized
	}

	var candidates []string
	for _, id := range ids {
		if id == normalized {
			return id, nil
		}
		if strings.HasPrefix(id, normalized) {
			candidates = append(candidates, id)
		}
	}

	return resolveFromCandidates(normalized, candidates, "task")
}

// ResolvePlanName resolves a plan name or prefix against the stored plan
// names. Plan names are variable length, so an exact match is preferred
// over prefix expansion.
func ResolvePlanName(names []string, nameOrPrefix string) (string, error) {
	if nameOrPrefix == "" {
		return "", fmt.Errorf("plan name: %w", ErrNotFound)
	}

	var candidates []string
	for _, name := range names {
		if name == nameOrPrefix {
			return name, nil
		}
		if strings.HasPrefix(name, nameOrPrefix) {
			candidates = append(candidates, name)
		}
	}

	return resolveFromCandidates(nameOrPrefix, candidates, "plan")
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string, entityType string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
