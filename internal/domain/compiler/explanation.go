package compiler

// Explanation is what a person needs to understand a step without reading
// code: a short title, what it does, where to read more, and the command
// that does the same thing by hand.
type Explanation struct {
	Title       string
	Detail      string
	Link        string
	Remediation string
}

// IsEmpty reports whether the explanation says nothing.
func (e Explanation) IsEmpty() bool {
	return e == Explanation{}
}
