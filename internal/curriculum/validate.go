package curriculum

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCatalog is returned when a module catalogue fails structural checks.
var ErrInvalidCatalog = errors.New("invalid module catalog")

// validateModules performs all structural checks on the given module set.
// Returns a combined error describing all problems found, or nil if valid.
func validateModules(modules []Module) error {
	var errs []string

	idSet := make(map[string]bool, len(modules))

	// Check for empty and duplicate IDs
	for _, m := range modules {
		if strings.TrimSpace(m.ID) == "" {
			errs = append(errs, fmt.Sprintf("module with title %q has an empty ID", m.Title))
			continue
		}
		if idSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		idSet[m.ID] = true
	}

	// Check for self references and dangling prerequisites
	for _, m := range modules {
		seen := make(map[string]bool, len(m.Prerequisites))
		for _, prereqID := range m.Prerequisites {
			if prereqID == m.ID {
				errs = append(errs, fmt.Sprintf("module %q lists itself as a prerequisite", m.ID))
				continue
			}
			if seen[prereqID] {
				errs = append(errs, fmt.Sprintf("module %q lists prerequisite %q more than once", m.ID, prereqID))
			}
			seen[prereqID] = true
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("module %q references nonexistent prerequisite %q", m.ID, prereqID))
			}
		}
	}

	// Check for cycles using Kahn's algorithm over known edges only
	inDegree := make(map[string]int, len(modules))
	adjList := make(map[string][]string)
	for _, m := range modules {
		for _, prereqID := range m.Prerequisites {
			if !idSet[prereqID] || prereqID == m.ID {
				continue
			}
			inDegree[m.ID]++
			adjList[prereqID] = append(adjList[prereqID], m.ID)
		}
	}

	var queue []string
	for id := range idSet {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(idSet) {
		var cycleNodes []string
		for id := range idSet {
			if inDegree[id] > 0 {
				cycleNodes = append(cycleNodes, id)
			}
		}
		sort.Strings(cycleNodes)
		errs = append(errs, fmt.Sprintf("cycle detected involving modules: %s", strings.Join(cycleNodes, ", ")))
	}

	// Check at least one root
	if len(modules) > 0 {
		hasRoot := false
		for _, m := range modules {
			if len(m.Prerequisites) == 0 {
				hasRoot = true
				break
			}
		}
		if !hasRoot {
			errs = append(errs, "no root modules found (at least one module must have no prerequisites)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
