// Package versionutil extracts and compares tool versions.
package versionutil

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+){0,2}`)

// Extract returns the first dotted version in output, or "".
// "git version 2.47.1.windows.1" yields "2.47.1".
func Extract(output string) string {
	return versionPattern.FindString(output)
}

// Canonical turns "3.12" into the semver form "v3.12.0".
func Canonical(version string) (string, error) {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", version)
	}
	return semver.Canonical(v), nil
}

// AtLeast reports whether found is greater than or equal to minimum.
func AtLeast(found, minimum string) (bool, error) {
	f, err := Canonical(found)
	if err != nil {
		return false, err
	}
	m, err := Canonical(minimum)
	if err != nil {
		return false, err
	}
	return semver.Compare(f, m) >= 0, nil
}
