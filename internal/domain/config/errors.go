package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrorCode classifies a configuration problem.
type ErrorCode string

const (
	ErrCodeConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeFilePermission    ErrorCode = "FILE_PERMISSION"
)

// UserError is a configuration problem the person running the tool can fix.
// Context names where it happened (a file, a line or a config field) and
// Suggestion says what to change.
type UserError struct {
	Code       ErrorCode
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// NewUserError creates a UserError with the given code and message.
func NewUserError(code ErrorCode, message string) *UserError {
	return &UserError{Code: code, Message: message}
}

func (e *UserError) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return e.Message + " (at " + e.Context + ")"
}

func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is matches any *UserError with the same code.
func (e *UserError) Is(target error) bool {
	t, ok := target.(*UserError)
	return ok && t.Code == e.Code
}

// Format renders the code, message, location and hint on separate lines.
func (e *UserError) Format() string {
	lines := []string{fmt.Sprintf("%s: %s", e.Code, e.Message)}
	if e.Context != "" {
		lines = append(lines, "  at:   "+e.Context)
	}
	if e.Suggestion != "" {
		lines = append(lines, "  hint: "+e.Suggestion)
	}
	return strings.Join(lines, "\n")
}

// WithContext returns a copy with Context set.
func (e *UserError) WithContext(ctx string) *UserError {
	c := *e
	c.Context = ctx
	return &c
}

// WithSuggestion returns a copy with Suggestion set.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a copy wrapping err.
func (e *UserError) WithUnderlying(err error) *UserError {
	c := *e
	c.Underlying = err
	return &c
}

// ErrorList collects every validation problem in a file so they can be
// reported together.
type ErrorList struct {
	errs []*UserError
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err. Nil is ignored.
func (l *ErrorList) Add(err *UserError) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// AddValidation records that field failed validation with cause.
func (l *ErrorList) AddValidation(field string, cause error, suggestion string) {
	l.Add(&UserError{
		Code:       ErrCodeValidationFailed,
		Message:    fmt.Sprintf("%s: %v", field, cause),
		Context:    field,
		Suggestion: suggestion,
		Underlying: cause,
	})
}

// HasErrors reports whether anything was added.
func (l *ErrorList) HasErrors() bool {
	return len(l.errs) > 0
}

// Len returns the number of collected errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Errors returns a copy of the collected errors.
func (l *ErrorList) Errors() []*UserError {
	return append([]*UserError(nil), l.errs...)
}

func (l *ErrorList) Error() string {
	switch len(l.errs) {
	case 0:
		return ""
	case 1:
		return l.errs[0].Error()
	}
	msgs := make([]string, len(l.errs))
	for i, err := range l.errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d configuration errors: %s", len(l.errs), strings.Join(msgs, "; "))
}

// Format renders every error with its location and hint.
func (l *ErrorList) Format() string {
	if len(l.errs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The configuration has %d problems:\n", len(l.errs))
	for _, err := range l.errs {
		b.WriteString("\n")
		b.WriteString(err.Format())
		b.WriteString("\n")
	}
	return b.String()
}

// AsError returns the list as an error, or nil when it is empty.
func (l *ErrorList) AsError() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

// NewConfigNotFoundError reports a --config path that does not exist.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found: " + path,
		Context:    path,
		Suggestion: "Check the --config path, or omit --config to use the built-in step list.",
	}
}

// NewUnsupportedFormatError reports a config file with an unknown extension.
func NewUnsupportedFormatError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeUnsupportedFormat,
		Message:    "unsupported configuration format",
		Context:    path,
		Suggestion: "Use a .yaml, .yml, or .toml file.",
	}
}

// NewValidationFailedError reports a field whose value was rejected.
func NewValidationFailedError(field, message string) *UserError {
	return &UserError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for '%s': %s", field, message),
		Context: field,
	}
}

// IsUserError reports whether err wraps a UserError with code.
func IsUserError(err error, code ErrorCode) bool {
	ue := GetUserError(err)
	return ue != nil && ue.Code == code
}

// GetUserError returns the first UserError in err's chain, or nil.
func GetUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}

// yamlHints maps fragments of yaml.v3 error text to a readable message.
// The first match wins.
var yamlHints = []struct {
	fragment   string
	message    string
	suggestion string
}{
	{
		"not found in type",
		"unknown configuration key",
		"Check the key spelling. Top-level sections are identity, bootstrap, packages, git, editor, github, and run.",
	},
	{
		"cannot unmarshal !!map into []",
		"expected a list but found an object",
		"Packages and extensions are lists. Prefix each entry with '- '.",
	},
	{
		"cannot unmarshal !!seq into",
		"expected an object but found a list",
		"Use 'key: value' pairs here instead of '- item' entries.",
	},
	{
		"cannot unmarshal !!str into",
		"unexpected string value",
		"Check the indentation of the nested values above this line.",
	},
	{
		"did not find expected key",
		"missing key or wrong indentation",
		"Indent each level with 2 spaces, never tabs.",
	},
	{
		"mapping values are not allowed",
		"invalid YAML structure",
		"Look for missing colons after keys, or a value on the wrong line.",
	},
	{
		"found character that cannot start",
		"invalid character in YAML",
		"Quote values that contain ':', '#', or '{'.",
	},
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// NewYAMLParseError turns a yaml.v3 decode error into a UserError.
func NewYAMLParseError(path string, err error) *UserError {
	text := err.Error()
	ue := &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "invalid YAML syntax",
		Context:    path,
		Suggestion: "Check the YAML syntax: indentation, colons after keys, and quoting.",
		Underlying: err,
	}
	for _, h := range yamlHints {
		if strings.Contains(text, h.fragment) {
			ue.Message, ue.Suggestion = h.message, h.suggestion
			break
		}
	}
	if m := yamlLine.FindStringSubmatch(text); m != nil {
		ue.Context = fmt.Sprintf("%s (line %s)", path, m[1])
	}
	return ue
}

// NewTOMLParseError turns a go-toml decode error into a UserError, keeping
// the row and column when the decoder reports them.
func NewTOMLParseError(path string, err error) *UserError {
	ue := &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "invalid TOML syntax",
		Context:    path,
		Suggestion: "Check the TOML syntax. Quote keys that contain dots, e.g. \"init.defaultBranch\" = \"main\".",
		Underlying: err,
	}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		ue.Message = "unknown configuration key"
		ue.Suggestion = "Check the key spelling. Top-level tables are identity, bootstrap, packages, git, editor, github, and run."
		return ue
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		ue.Context = fmt.Sprintf("%s (line %d, column %d)", path, row, col)
	}
	return ue
}
