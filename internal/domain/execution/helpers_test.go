package execution

import (
	"errors"
	"sync"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
)

// configurableMockStep allows configuring each Step method.
type configurableMockStep struct {
	id        compiler.StepID
	deps      []compiler.StepID
	critical  bool
	checkFn   func(compiler.RunContext) (compiler.StepStatus, error)
	planFn    func(compiler.RunContext) (compiler.Diff, error)
	applyFn   func(compiler.RunContext) error
	explainFn func() compiler.Explanation

	mu      sync.Mutex
	checks  int
	applies int
}

func newConfigurableStep(id string, deps ...string) *configurableMockStep {
	stepID := compiler.MustNewStepID(id)
	depIDs := make([]compiler.StepID, len(deps))
	for i, d := range deps {
		depIDs[i] = compiler.MustNewStepID(d)
	}
	return &configurableMockStep{
		id:   stepID,
		deps: depIDs,
		checkFn: func(_ compiler.RunContext) (compiler.StepStatus, error) {
			return compiler.StatusNeedsApply, nil
		},
		planFn: func(_ compiler.RunContext) (compiler.Diff, error) {
			return compiler.AddDiff("test", id, "new"), nil
		},
		applyFn: func(_ compiler.RunContext) error {
			return nil
		},
		explainFn: func() compiler.Explanation {
			return compiler.Explanation{Title: "Test", Remediation: "fix " + id}
		},
	}
}

func (m *configurableMockStep) ID() compiler.StepID          { return m.id }
func (m *configurableMockStep) DependsOn() []compiler.StepID { return m.deps }
func (m *configurableMockStep) Critical() bool               { return m.critical }

func (m *configurableMockStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	m.mu.Lock()
	m.checks++
	m.mu.Unlock()
	return m.checkFn(ctx)
}

func (m *configurableMockStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	return m.planFn(ctx)
}

func (m *configurableMockStep) Apply(ctx compiler.RunContext) error {
	m.mu.Lock()
	m.applies++
	m.mu.Unlock()
	return m.applyFn(ctx)
}

func (m *configurableMockStep) Explain() compiler.Explanation {
	return m.explainFn()
}

func (m *configurableMockStep) Checks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks
}

func (m *configurableMockStep) Applies() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applies
}

// fakeMachine is a key/value stand-in for the workstation. Steps built from
// it probe by comparing a key with its desired value and apply by writing it.
type fakeMachine struct {
	state   map[string]string
	failing map[string]error
	silent  map[string]bool
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{
		state:   make(map[string]string),
		failing: make(map[string]error),
		silent:  make(map[string]bool),
	}
}

// failApply makes Apply for key return err.
func (f *fakeMachine) failApply(key string, err error) {
	f.failing[key] = err
}

// silentlyFail makes Apply for key report success without changing anything.
func (f *fakeMachine) silentlyFail(key string) {
	f.silent[key] = true
}

func (f *fakeMachine) heal() {
	f.failing = make(map[string]error)
	f.silent = make(map[string]bool)
}

func (f *fakeMachine) step(id, key, want string, deps ...string) *configurableMockStep {
	s := newConfigurableStep(id, deps...)
	s.checkFn = func(_ compiler.RunContext) (compiler.StepStatus, error) {
		if f.state[key] == want {
			return compiler.StatusSatisfied, nil
		}
		return compiler.StatusNeedsApply, nil
	}
	s.planFn = func(_ compiler.RunContext) (compiler.Diff, error) {
		if cur, ok := f.state[key]; ok {
			return compiler.UpdateDiff("key", key, cur, want), nil
		}
		return compiler.AddDiff("key", key, want), nil
	}
	s.applyFn = func(_ compiler.RunContext) error {
		if err, ok := f.failing[key]; ok {
			return err
		}
		if f.silent[key] {
			return nil
		}
		f.state[key] = want
		return nil
	}
	return s
}

// workstation builds the default tool chain against f:
// bootstrap → git → {user_email, github-cli → gh auth}, bootstrap → browser.
func (f *fakeMachine) workstation() (*compiler.StepGraph, map[string]*configurableMockStep) {
	bootstrap := f.step("winget:bootstrap", "winget", "present")
	bootstrap.critical = true
	steps := []*configurableMockStep{
		bootstrap,
		f.step("winget:package:git", "git", "present", "winget:bootstrap"),
		f.step("git:config:user_email", "user.email", "ada@example.com", "winget:package:git"),
		f.step("winget:package:github-cli", "gh", "present", "winget:bootstrap"),
		f.step("ghcli:auth:github_com", "gh-auth", "yes", "winget:package:github-cli"),
		f.step("winget:package:browser", "chrome", "present", "winget:bootstrap"),
	}

	graph := compiler.NewStepGraph()
	byID := make(map[string]*configurableMockStep, len(steps))
	for _, s := range steps {
		if err := graph.Add(s); err != nil {
			panic(err)
		}
		byID[s.ID().String()] = s
	}
	return graph, byID
}

var errNetwork = errors.New("network unreachable")
