package compiler

import "fmt"

// ChangeKind says what applying a step would do to the machine.
type ChangeKind int

const (
	// ChangeNone means the step would leave the machine as it is.
	ChangeNone ChangeKind = iota
	// ChangeAdd means the resource is missing and will be installed or set.
	ChangeAdd
	// ChangeUpdate means the resource exists with a different value.
	ChangeUpdate
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	default:
		return "none"
	}
}

// Diff is the planned effect of one step. The zero value describes no
// change. Nothing is ever removed, so there is no removal kind.
type Diff struct {
	Kind     ChangeKind
	Resource string
	Name     string
	Current  string
	Desired  string
}

// AddDiff describes installing or setting a resource that is not present.
func AddDiff(resource, name, desired string) Diff {
	return Diff{Kind: ChangeAdd, Resource: resource, Name: name, Desired: desired}
}

// UpdateDiff describes moving a present resource from current to desired.
func UpdateDiff(resource, name, current, desired string) Diff {
	return Diff{Kind: ChangeUpdate, Resource: resource, Name: name, Current: current, Desired: desired}
}

// IsEmpty reports whether the diff describes no change.
func (d Diff) IsEmpty() bool {
	return d.Kind == ChangeNone
}

// String renders the diff as a single plan line, e.g.
// "+ package Git.Git (latest)" or "~ gitconfig core.autocrlf (false -> true)".
func (d Diff) String() string {
	switch d.Kind {
	case ChangeAdd:
		if d.Desired == "" {
			return fmt.Sprintf("+ %s %s", d.Resource, d.Name)
		}
		return fmt.Sprintf("+ %s %s (%s)", d.Resource, d.Name, d.Desired)
	case ChangeUpdate:
		return fmt.Sprintf("~ %s %s (%s -> %s)", d.Resource, d.Name, d.Current, d.Desired)
	default:
		return fmt.Sprintf("  %s %s", d.Resource, d.Name)
	}
}
