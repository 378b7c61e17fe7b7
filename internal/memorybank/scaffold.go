package memorybank

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Scaffold creates the memory bank directory with its core files and the
// prds/ subdirectory. Existing files are left untouched; the number of files
// written is returned.
func (b *Bank) Scaffold(project string) (int, error) {
	if err := b.fs.MkdirAll(filepath.Join(b.baseDir, prdsDir), 0o755); err != nil {
		return 0, fmt.Errorf("create memory bank: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	templates := map[string]string{
		"projectbrief.md":   fmt.Sprintf(projectBriefTemplate, project, date),
		"productContext.md": fmt.Sprintf(productContextTemplate, project, date),
		"activeContext.md":  fmt.Sprintf(activeContextTemplate, project, time.Now().Format("2006-01-02 15:04")),
		"systemPatterns.md": fmt.Sprintf(systemPatternsTemplate, project, date),
		"techContext.md":    fmt.Sprintf(techContextTemplate, project, date),
		"progress.md":       fmt.Sprintf(progressTemplate, project, date),
	}

	created := 0
	for _, name := range coreFiles {
		path := filepath.Join(b.baseDir, name)
		exists, err := afero.Exists(b.fs, path)
		if err != nil {
			return created, fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := afero.WriteFile(b.fs, path, []byte(templates[name]), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", name, err)
		}
		created++
	}
	return created, nil
}

const projectBriefTemplate = `# %[1]s - Project Brief

## Mission Statement
*[Describe the core purpose of this project in 1-2 sentences]*

## Project Overview
- **Phase**: Initial Setup

## Success Metrics
*[Define what success looks like for this project]*

## Core Requirements
*[List the essential requirements that define this project]*

---
*Generated by taskfold init - %[2]s*
*Update this file as the project evolves*
`

const productContextTemplate = `# %[1]s - Product Context

## Why This Project Exists
*[Explain the problem this project solves]*

## Target Audience
- **Primary**: *[Who uses this]*
- **Use Cases**: *[Describe main use cases]*

## Value Proposition
*[What unique value does this project provide?]*

---
*Generated by taskfold init - %[2]s*
*This context explains the "why" behind decisions*
`

const activeContextTemplate = `# %[1]s - Active Context

## Current Focus
*[What are we working on right now?]*

## Recent Decisions
*[Important architectural or design decisions made in recent sessions]*

## Next Steps
*[What needs to happen next?]*

## Blockers/Questions
*[Any current blockers or open questions]*

---
*Last Updated: %[2]s*
*This file should be updated frequently during active development*
`

const systemPatternsTemplate = `# %[1]s - System Patterns

## Architecture Overview
*[High-level architecture description]*

## Design Patterns
*[Key design patterns used in the project]*

## Code Organization
*[How the code is structured and organized]*

## Testing Approach
*[Testing strategy and patterns]*

## Quality Standards
*[Formatters, linters and checks the project relies on]*

---
*Generated by taskfold init - %[2]s*
*Document established patterns here for consistency*
`

const techContextTemplate = `# %[1]s - Technical Context

## Technology Stack
*[Languages, frameworks and services in play]*

## Development Environment
*[Describe setup requirements, dependencies, etc.]*

## Build/Deploy Process
*[How to build and deploy this project]*

## Constraints
*[Technical constraints, performance requirements, etc.]*

---
*Generated by taskfold init - %[2]s*
*This grounds decisions in the technical environment*
`

const progressTemplate = `# %[1]s - Progress Tracking

## What Works
*[Current working features/functionality]*

## What's Left
*[Major items still to be implemented]*

## Known Issues
*[Current bugs or limitations]*

## Recent Achievements
*[Recent milestones or completed features]*

---
*Generated by taskfold init - %[2]s*
*Track progress to maintain momentum and identify bottlenecks*
`
