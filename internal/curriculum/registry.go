package curriculum

import (
	"slices"
	"sort"
)

// Registry holds the module DAG with precomputed indices.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	modules    []Module
	byID       map[string]*Module
	ordered    []Module
	roots      []Module
	dependents map[string][]string
	topoOrder  []Module
}

// New validates the modules and builds a Registry from them.
// Any structural problem (duplicate IDs, dangling prerequisites, cycles)
// is reported as a single error wrapping ErrInvalidCatalog.
func New(modules []Module) (*Registry, error) {
	if err := validateModules(modules); err != nil {
		return nil, err
	}
	return buildRegistry(modules), nil
}

// buildRegistry constructs the indices for an already validated module set,
// including a topological order (Kahn's algorithm).
func buildRegistry(modules []Module) *Registry {
	r := &Registry{
		modules:    make([]Module, len(modules)),
		byID:       make(map[string]*Module, len(modules)),
		dependents: make(map[string][]string),
	}
	for i, m := range modules {
		m.Prerequisites = slices.Clone(m.Prerequisites)
		r.modules[i] = m
	}

	// Build ID index
	for i := range r.modules {
		r.byID[r.modules[i].ID] = &r.modules[i]
	}

	// Build reverse edges (dependents)
	for i := range r.modules {
		for _, prereqID := range r.modules[i].Prerequisites {
			r.dependents[prereqID] = append(r.dependents[prereqID], r.modules[i].ID)
		}
	}

	// Display order: Order ascending, ID as tie-break
	r.ordered = slices.Clone(r.modules)
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.less(r.ordered[i].ID, r.ordered[j].ID)
	})

	// Topological sort (Kahn's algorithm)
	inDegree := make(map[string]int, len(r.modules))
	for i := range r.modules {
		inDegree[r.modules[i].ID] = len(r.modules[i].Prerequisites)
	}

	var queue []string
	for _, m := range r.ordered {
		if inDegree[m.ID] == 0 {
			queue = append(queue, m.ID)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		r.topoOrder = append(r.topoOrder, *r.byID[id])

		// Sort dependents for deterministic ordering
		deps := slices.Clone(r.dependents[id])
		sort.Slice(deps, func(i, j int) bool { return r.less(deps[i], deps[j]) })
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	// Identify roots
	for _, m := range r.ordered {
		if len(m.Prerequisites) == 0 {
			r.roots = append(r.roots, m)
		}
	}

	return r
}

// less orders module IDs by Order, then ID.
func (r *Registry) less(a, b string) bool {
	ma, mb := r.byID[a], r.byID[b]
	if ma.Order != mb.Order {
		return ma.Order < mb.Order
	}
	return ma.ID < mb.ID
}

// Info returns the descriptor for id. An unknown id is not an error;
// callers treat it as "no metadata, no prerequisites".
func (r *Registry) Info(id string) (Module, bool) {
	m, ok := r.byID[id]
	if !ok {
		return Module{}, false
	}
	out := *m
	out.Prerequisites = slices.Clone(m.Prerequisites)
	return out, true
}

// Title returns the display title for id, or "" if unknown.
func (r *Registry) Title(id string) string {
	if m, ok := r.byID[id]; ok {
		return m.Title
	}
	return ""
}

// Has reports whether id is a registered module.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Prerequisites returns the prerequisite IDs of id in declared order.
// It returns an empty slice for unknown modules and never fails.
func (r *Registry) Prerequisites(id string) []string {
	m, ok := r.byID[id]
	if !ok {
		return []string{}
	}
	return append([]string{}, m.Prerequisites...)
}

// Dependents returns modules that directly depend on the given module ID.
func (r *Registry) Dependents(id string) []Module {
	depIDs := slices.Clone(r.dependents[id])
	sort.Slice(depIDs, func(i, j int) bool { return r.less(depIDs[i], depIDs[j]) })
	result := make([]Module, 0, len(depIDs))
	for _, depID := range depIDs {
		if m, ok := r.Info(depID); ok {
			result = append(result, m)
		}
	}
	return result
}

// All returns every module sorted by Order.
func (r *Registry) All() []Module {
	return cloneModules(r.ordered)
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Roots returns all modules with no prerequisites, sorted by Order.
func (r *Registry) Roots() []Module {
	return cloneModules(r.roots)
}

// TopologicalOrder returns all modules so that every module appears after
// all of its prerequisites.
func (r *Registry) TopologicalOrder() []Module {
	return cloneModules(r.topoOrder)
}

func cloneModules(in []Module) []Module {
	out := make([]Module, len(in))
	for i, m := range in {
		m.Prerequisites = slices.Clone(m.Prerequisites)
		out[i] = m
	}
	return out
}
