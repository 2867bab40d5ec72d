package compiler

import (
	"errors"
	"fmt"
)

// Errors for StepGraph operations.
var (
	ErrDuplicateStep    = errors.New("step with this ID already exists")
	ErrCyclicDependency = errors.New("cyclic dependency detected")
	ErrMissingDep       = errors.New("step depends on nonexistent step")
)

// StepGraph represents a directed acyclic graph of steps.
// It remembers declaration order so that sorting is deterministic.
type StepGraph struct {
	steps      map[string]Step
	order      []string            // declaration order
	dependsOn  map[string][]string // step ID -> list of dependency IDs
	dependedBy map[string][]string // step ID -> list of steps that depend on it
}

// NewStepGraph creates an empty StepGraph.
func NewStepGraph() *StepGraph {
	return &StepGraph{
		steps:      make(map[string]Step),
		order:      make([]string, 0),
		dependsOn:  make(map[string][]string),
		dependedBy: make(map[string][]string),
	}
}

// Len returns the number of steps in the graph.
func (g *StepGraph) Len() int {
	return len(g.steps)
}

// Add adds a step to the graph.
// Returns ErrDuplicateStep if a step with the same ID already exists.
func (g *StepGraph) Add(step Step) error {
	id := step.ID().String()

	if _, exists := g.steps[id]; exists {
		return ErrDuplicateStep
	}

	g.steps[id] = step
	g.order = append(g.order, id)

	deps := step.DependsOn()
	depIDs := make([]string, len(deps))
	for i, dep := range deps {
		depID := dep.String()
		depIDs[i] = depID
		g.dependedBy[depID] = append(g.dependedBy[depID], id)
	}
	g.dependsOn[id] = depIDs

	return nil
}

// Get retrieves a step by ID.
func (g *StepGraph) Get(id StepID) (Step, bool) {
	step, ok := g.steps[id.String()]
	return step, ok
}

// Steps returns all steps in declaration order.
func (g *StepGraph) Steps() []Step {
	steps := make([]Step, 0, len(g.order))
	for _, id := range g.order {
		steps = append(steps, g.steps[id])
	}
	return steps
}

// Dependents returns the IDs of steps that directly depend on id.
func (g *StepGraph) Dependents(id StepID) []StepID {
	raw := g.dependedBy[id.String()]
	out := make([]StepID, 0, len(raw))
	for _, d := range raw {
		out = append(out, MustNewStepID(d))
	}
	return out
}

// Validate checks that all dependencies exist.
func (g *StepGraph) Validate() error {
	for _, id := range g.order {
		for _, depID := range g.dependsOn[id] {
			if _, exists := g.steps[depID]; !exists {
				return NewDependencyMissingError(id, depID).WithUnderlying(
					fmt.Errorf("%w: step %q depends on %q", ErrMissingDep, id, depID))
			}
		}
	}
	return nil
}

// Roots returns steps that have no dependencies, in declaration order.
func (g *StepGraph) Roots() []Step {
	roots := make([]Step, 0)
	for _, id := range g.order {
		if len(g.dependsOn[id]) == 0 {
			roots = append(roots, g.steps[id])
		}
	}
	return roots
}

// TopologicalSort returns steps in dependency order.
// The order is stable: among steps whose dependencies are satisfied, the one
// declared first comes first. Returns a CYCLIC_DEPENDENCY StepError wrapping
// ErrCyclicDependency if the graph contains a cycle.
func (g *StepGraph) TopologicalSort() ([]Step, error) {
	emitted := make(map[string]bool, len(g.order))
	sorted := make([]Step, 0, len(g.order))

	for len(sorted) < len(g.order) {
		progressed := false
		for _, id := range g.order {
			if emitted[id] || !g.ready(id, emitted) {
				continue
			}
			emitted[id] = true
			sorted = append(sorted, g.steps[id])
			progressed = true
			// Restart the scan so an earlier-declared step unblocked by this
			// one is emitted before later-declared ready steps.
			break
		}
		if !progressed {
			return nil, NewCyclicDependencyError(g.findCycle(emitted)).WithUnderlying(ErrCyclicDependency)
		}
	}

	return sorted, nil
}

// ready reports whether every in-graph dependency of id has been emitted.
func (g *StepGraph) ready(id string, emitted map[string]bool) bool {
	for _, depID := range g.dependsOn[id] {
		if _, exists := g.steps[depID]; !exists {
			continue
		}
		if !emitted[depID] {
			return false
		}
	}
	return true
}

// findCycle returns one dependency cycle among the steps not yet emitted.
func (g *StepGraph) findCycle(emitted map[string]bool) []string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)
	stack := make([]string, 0)

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = grey
		stack = append(stack, id)
		for _, dep := range g.dependsOn[id] {
			if _, exists := g.steps[dep]; !exists || emitted[dep] {
				continue
			}
			switch color[dep] {
			case grey:
				for i, s := range stack {
					if s == dep {
						cycle := append([]string{}, stack[i:]...)
						return append(cycle, dep)
					}
				}
			case white:
				if c := visit(dep); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, id := range g.order {
		if emitted[id] || color[id] != white {
			continue
		}
		if c := visit(id); c != nil {
			return c
		}
	}
	return nil
}
