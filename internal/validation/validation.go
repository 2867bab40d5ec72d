// Package validation provides input validation utilities that keep
// configuration and prompt answers from smuggling shell syntax or newlines
// into the external commands winprep runs.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput          = errors.New("input cannot be empty")
	ErrCommandInjection    = errors.New("potential command injection detected")
	ErrInvalidHostname     = errors.New("invalid hostname")
	ErrNewlineInjection    = errors.New("newline injection detected")
	ErrInvalidGitConfig    = errors.New("invalid git config value")
	ErrInvalidGitConfigKey = errors.New("invalid git config key")
	ErrInvalidWingetID     = errors.New("invalid winget package ID")
	ErrInvalidWingetSource = errors.New("invalid winget source")
	ErrInvalidWingetScope  = errors.New("invalid winget scope")
	ErrInvalidURL          = errors.New("invalid URL")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidExtensionID  = errors.New("invalid extension ID")
	ErrInvalidCommandName  = errors.New("invalid command name")
	ErrInvalidVersion      = errors.New("invalid version")
)

var (
	// hostnameRegex matches valid hostnames.
	// Examples: "github.com", "ghe.example.com"
	hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]*$`)

	// gitConfigSafeRegex matches safe git config values (no newlines, no control chars)
	gitConfigSafeRegex = regexp.MustCompile(`^[^\x00-\x1f\x7f]*$`)

	// gitConfigKeyRegex matches section.key or section.subsection.key, where a
	// subsection may be a URL.
	// Examples: "user.email", "init.defaultBranch", "credential.https://example.com.helper"
	gitConfigKeyRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*(\.[a-zA-Z0-9_:/-]+)*\.[a-zA-Z][a-zA-Z0-9-]*$`)

	// wingetIDRegex matches valid winget package IDs: Publisher.PackageName format
	// Examples: "Microsoft.VisualStudioCode", "Git.Git", "Python.Python.3.12"
	wingetIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*\.[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// wingetSourceRegex matches valid winget source names
	// Examples: "winget", "msstore"
	wingetSourceRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

	// urlRegex matches HTTPS URLs without query strings.
	urlRegex = regexp.MustCompile(`^https://[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

	// emailRegex is deliberately loose: one @, no spaces, a dot in the domain.
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// extensionIDRegex matches VS Code extension IDs: publisher.name
	// Examples: "ms-python.python", "GitHub.copilot"
	extensionIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// commandNameRegex matches bare executable names.
	// Examples: "git", "gh", "code", "python3"
	commandNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// versionRegex matches dotted numeric versions.
	// Examples: "3", "3.12", "1.85.0"
	versionRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)

	shellMetaChars = ";|&$`(){}<>\n\r\\"
)

// check runs the shared empty, length and pattern checks. A maxLen of zero
// means no length limit.
func check(value string, maxLen int, re *regexp.Regexp, kind error, shape string) error {
	if value == "" {
		return ErrEmptyInput
	}
	if maxLen > 0 && len(value) > maxLen {
		return fmt.Errorf("%w: longer than %d characters", kind, maxLen)
	}
	if !re.MatchString(value) {
		return fmt.Errorf("%w: %q %s", kind, value, shape)
	}
	return nil
}

// ValidateWingetID validates a winget package identifier.
func ValidateWingetID(id string) error {
	if err := check(id, 256, wingetIDRegex, ErrInvalidWingetID, "must be in 'Publisher.PackageName' format"); err != nil {
		return err
	}
	if containsShellMeta(id) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, id)
	}
	return nil
}

// ValidateWingetSource validates a winget source name such as "msstore".
func ValidateWingetSource(source string) error {
	return check(source, 0, wingetSourceRegex, ErrInvalidWingetSource, "contains invalid characters")
}

// ValidateWingetScope validates the --scope argument.
func ValidateWingetScope(scope string) error {
	switch scope {
	case "user", "machine":
		return nil
	case "":
		return ErrEmptyInput
	}
	return fmt.Errorf("%w: %q must be 'user' or 'machine'", ErrInvalidWingetScope, scope)
}

// ValidateURL validates an HTTPS download URL.
func ValidateURL(rawURL string) error {
	if err := check(rawURL, 2048, urlRegex, ErrInvalidURL, "must be a valid HTTPS URL"); err != nil {
		return err
	}
	if containsShellMeta(rawURL) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, rawURL)
	}
	return nil
}

// ValidateHostname validates a GitHub host such as "github.com".
func ValidateHostname(hostname string) error {
	return check(hostname, 253, hostnameRegex, ErrInvalidHostname, "contains invalid characters")
}

// ValidateGitConfigKey validates a key like "user.email" or
// "credential.https://example.com.helper".
func ValidateGitConfigKey(key string) error {
	return check(key, 0, gitConfigKeyRegex, ErrInvalidGitConfigKey, "must look like section.key")
}

// ValidateGitConfigValue rejects values that could add lines to .gitconfig.
func ValidateGitConfigValue(value string) error {
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: git config value contains newlines", ErrNewlineInjection)
	}
	if !gitConfigSafeRegex.MatchString(value) {
		return fmt.Errorf("%w: contains control characters", ErrInvalidGitConfig)
	}
	return nil
}

// ValidateDisplayName validates a user.name answer.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	return ValidateGitConfigValue(name)
}

// ValidateEmail validates a user.email answer.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyInput
	}
	if err := ValidateGitConfigValue(email); err != nil {
		return err
	}
	return check(email, 0, emailRegex, ErrInvalidEmail, "is not an e-mail address")
}

// ValidateExtensionID validates a marketplace identifier such as
// "ms-python.python".
func ValidateExtensionID(id string) error {
	return check(id, 0, extensionIDRegex, ErrInvalidExtensionID, "must be in 'publisher.name' format")
}

// ValidateCommandName validates a bare executable name looked up on PATH.
func ValidateCommandName(name string) error {
	return check(name, 0, commandNameRegex, ErrInvalidCommandName, "must be a bare executable name")
}

// ValidateVersion validates MAJOR[.MINOR[.PATCH]].
func ValidateVersion(version string) error {
	return check(version, 0, versionRegex, ErrInvalidVersion, "must be MAJOR[.MINOR[.PATCH]]")
}

func containsShellMeta(s string) bool {
	return strings.ContainsAny(s, shellMetaChars)
}
