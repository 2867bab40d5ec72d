package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/winprep/internal/validation"
)

// Validate checks every field that ends up on a command line.
// It returns an *ErrorList when anything is wrong.
func (c *Config) Validate() error {
	errs := NewErrorList()

	if c.Identity.Name != "" {
		if err := validation.ValidateDisplayName(c.Identity.Name); err != nil {
			errs.AddValidation("identity.name", err, "Use a single-line display name.")
		}
	}
	if c.Identity.Email != "" {
		if err := validation.ValidateEmail(c.Identity.Email); err != nil {
			errs.AddValidation("identity.email", err, "Use an address like name@example.com.")
		}
	}

	if c.Bootstrap.InstallerURL != "" {
		if err := validation.ValidateURL(c.Bootstrap.InstallerURL); err != nil {
			errs.AddValidation("bootstrap.installer_url", err, "Use an https:// link to an .msixbundle, or remove the key.")
		}
	}

	c.validatePackages(errs)
	c.validateGit(errs)

	if err := validation.ValidateCommandName(c.Editor.Command); err != nil {
		errs.AddValidation("editor.command", err, "Use the bare executable name, e.g. \"code\".")
	}
	for i, ext := range c.Editor.Extensions {
		if err := validation.ValidateExtensionID(ext); err != nil {
			errs.AddValidation(fmt.Sprintf("editor.extensions[%d]", i), err, "Use the marketplace identifier, e.g. \"ms-python.python\".")
		}
	}

	if err := validation.ValidateHostname(c.GitHub.Host); err != nil {
		errs.AddValidation("github.host", err, "Use a bare hostname such as \"github.com\".")
	}

	return errs.AsError()
}

func (c *Config) validatePackages(errs *ErrorList) {
	seen := make(map[string]int, len(c.Packages))
	for i, p := range c.Packages {
		field := fmt.Sprintf("packages[%d]", i)

		if err := validation.ValidateCommandName(p.Name); err != nil {
			errs.AddValidation(field+".name", err, "Give every package a short name such as \"git\".")
		} else if prev, dup := seen[strings.ToLower(p.Name)]; dup {
			errs.AddValidation(field+".name", fmt.Errorf("duplicate of packages[%d]", prev), "Package names must be unique.")
		} else {
			seen[strings.ToLower(p.Name)] = i
		}

		if err := validation.ValidateWingetID(p.ID); err != nil {
			errs.AddValidation(field+".id", err, "Look the ID up with 'winget search <name>'.")
		}
		if p.Command != "" {
			if err := validation.ValidateCommandName(p.Command); err != nil {
				errs.AddValidation(field+".command", err, "Use the bare executable name the package puts on PATH.")
			}
		}
		if p.MinVersion != "" {
			if p.Command == "" {
				errs.AddValidation(field+".min_version", fmt.Errorf("requires command"), "Set command so the installed version can be read.")
			} else if err := validation.ValidateVersion(p.MinVersion); err != nil {
				errs.AddValidation(field+".min_version", err, "Use MAJOR[.MINOR[.PATCH]], e.g. \"3.12\".")
			}
		}
		if p.Version != "" && strings.ContainsAny(p.Version, " \t\r\n") {
			errs.AddValidation(field+".version", fmt.Errorf("contains whitespace"), "Use the exact version string from 'winget show'.")
		}
		if p.Source != "" {
			if err := validation.ValidateWingetSource(p.Source); err != nil {
				errs.AddValidation(field+".source", err, "Use \"winget\" or \"msstore\".")
			}
		}
		if p.Scope != "" {
			if err := validation.ValidateWingetScope(p.Scope); err != nil {
				errs.AddValidation(field+".scope", err, "Use \"user\" or \"machine\".")
			}
		}
	}
}

func (c *Config) validateGit(errs *ErrorList) {
	keys := make([]string, 0, len(c.Git.Settings))
	for k := range c.Git.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := "git.config." + k
		switch strings.ToLower(k) {
		case "user.name", "user.email":
			errs.AddValidation(field, fmt.Errorf("identity keys are not allowed here"), "Set identity.name and identity.email instead.")
			continue
		}
		if err := validation.ValidateGitConfigKey(k); err != nil {
			errs.AddValidation(field, err, "Use section.key, e.g. \"init.defaultBranch\".")
			continue
		}
		if err := validation.ValidateGitConfigValue(c.Git.Settings[k]); err != nil {
			errs.AddValidation(field, err, "Values must be a single line.")
		}
	}
}
