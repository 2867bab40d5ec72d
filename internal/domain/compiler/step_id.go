package compiler

import (
	"errors"
	"strings"
)

// StepID names a step as colon-separated segments, provider first:
// "winget:package:git", "git:config:user_email".
type StepID struct {
	value string
}

var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID format invalid: segments of letters, digits, '_', '-' or '/' separated by colons")
)

// NewStepID validates value and returns it as a StepID. Surrounding
// whitespace is ignored.
func NewStepID(value string) (StepID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return StepID{}, ErrEmptyStepID
	}
	for _, seg := range strings.Split(value, ":") {
		if !validSegment(seg) {
			return StepID{}, ErrInvalidStepID
		}
	}
	return StepID{value: value}, nil
}

// MustNewStepID is NewStepID for IDs built from validated configuration.
// It panics on an invalid value.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID " + value + ": " + err.Error())
	}
	return id
}

func validSegment(seg string) bool {
	if seg == "" || !isAlnum(rune(seg[0])) {
		return false
	}
	for _, r := range seg {
		if !isSegmentRune(r) {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func isSegmentRune(r rune) bool {
	return isAlnum(r) || r == '_' || r == '-' || r == '/'
}

// SanitizeSegment turns a resource name such as "user.email" or
// "ms-python.python" into a valid segment by replacing every other rune
// with '_'. Leading separators are dropped; a name with nothing left
// becomes "x".
func SanitizeSegment(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if isSegmentRune(r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if s := strings.TrimLeft(mapped, "_-/"); s != "" {
		return s
	}
	return "x"
}

func (id StepID) String() string {
	return id.value
}

// Provider returns the first segment.
func (id StepID) Provider() string {
	provider, _, _ := strings.Cut(id.value, ":")
	return provider
}

// IsZero reports whether id is the zero StepID.
func (id StepID) IsZero() bool {
	return id.value == ""
}
