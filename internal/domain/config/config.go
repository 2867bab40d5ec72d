// Package config holds the typed winprep configuration, its built-in
// default step list, and the YAML/TOML loader.
package config

import "strings"

// Config is the root configuration document.
type Config struct {
	Identity  Identity  `yaml:"identity" toml:"identity"`
	Bootstrap Bootstrap `yaml:"bootstrap" toml:"bootstrap"`
	Packages  []Package `yaml:"packages" toml:"packages"`
	Git       Git       `yaml:"git" toml:"git"`
	Editor    Editor    `yaml:"editor" toml:"editor"`
	GitHub    GitHub    `yaml:"github" toml:"github"`
	Run       Run       `yaml:"run" toml:"run"`
}

// Identity is the global git identity. Empty fields are prompted for.
type Identity struct {
	Name  string `yaml:"name" toml:"name"`
	Email string `yaml:"email" toml:"email"`
}

// IsComplete reports whether both name and e-mail are set.
func (i Identity) IsComplete() bool {
	return strings.TrimSpace(i.Name) != "" && strings.TrimSpace(i.Email) != ""
}

// Bootstrap configures how winget itself is installed.
type Bootstrap struct {
	// InstallerURL is an App Installer bundle to install instead of
	// re-registering the in-box package.
	InstallerURL string `yaml:"installer_url" toml:"installer_url"`
}

// Package is one winget package to install.
type Package struct {
	Name       string `yaml:"name" toml:"name"`
	ID         string `yaml:"id" toml:"id"`
	Command    string `yaml:"command" toml:"command"`
	MinVersion string `yaml:"min_version" toml:"min_version"`
	Version    string `yaml:"version" toml:"version"`
	Source     string `yaml:"source" toml:"source"`
	Scope      string `yaml:"scope" toml:"scope"`
}

// Git configures global git settings.
type Git struct {
	// Package names the entry in Packages that provides git.
	Package  string            `yaml:"package" toml:"package"`
	Settings map[string]string `yaml:"config" toml:"config"`
}

// Editor configures the editor and its extensions.
type Editor struct {
	Package    string   `yaml:"package" toml:"package"`
	Command    string   `yaml:"command" toml:"command"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
}

// GitHub configures GitHub CLI authentication.
type GitHub struct {
	Package  string `yaml:"package" toml:"package"`
	Host     string `yaml:"host" toml:"host"`
	SkipAuth bool   `yaml:"skip_auth" toml:"skip_auth"`
}

// Run holds runner behaviour switches.
type Run struct {
	// RetryPrompt asks the user whether to retry a step after a failed apply.
	RetryPrompt bool `yaml:"retry_prompt" toml:"retry_prompt"`
}

// Default package names referenced by the git, editor and github sections.
const (
	DefaultGitPackage    = "git"
	DefaultEditorPackage = "vscode"
	DefaultEditorCommand = "code"
	DefaultGitHubPackage = "github-cli"
	DefaultGitHubHost    = "github.com"
)

// Default returns the built-in step list.
func Default() *Config {
	return &Config{
		Packages: []Package{
			{Name: "git", ID: "Git.Git", Command: "git"},
			{Name: "github-cli", ID: "GitHub.cli", Command: "gh"},
			{Name: "vscode", ID: "Microsoft.VisualStudioCode", Command: "code"},
			{Name: "python", ID: "Python.Python.3.12", Command: "python", MinVersion: "3.12"},
			{Name: "browser", ID: "Google.Chrome"},
		},
		Git: Git{
			Package:  DefaultGitPackage,
			Settings: map[string]string{},
		},
		Editor: Editor{
			Package:    DefaultEditorPackage,
			Command:    DefaultEditorCommand,
			Extensions: []string{"ms-python.python"},
		},
		GitHub: GitHub{
			Package: DefaultGitHubPackage,
			Host:    DefaultGitHubHost,
		},
	}
}

// WithDefaults returns a copy of c where every absent section is taken from Default.
func (c *Config) WithDefaults() *Config {
	d := Default()
	out := c.Clone()

	if out.Packages == nil {
		out.Packages = d.Packages
	}
	if out.Git.Package == "" {
		out.Git.Package = d.Git.Package
	}
	if out.Git.Settings == nil {
		out.Git.Settings = d.Git.Settings
	}
	if out.Editor.Package == "" {
		out.Editor.Package = d.Editor.Package
	}
	if out.Editor.Command == "" {
		out.Editor.Command = d.Editor.Command
	}
	if out.Editor.Extensions == nil {
		out.Editor.Extensions = d.Editor.Extensions
	}
	if out.GitHub.Package == "" {
		out.GitHub.Package = d.GitHub.Package
	}
	if out.GitHub.Host == "" {
		out.GitHub.Host = d.GitHub.Host
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Packages != nil {
		out.Packages = make([]Package, len(c.Packages))
		copy(out.Packages, c.Packages)
	}
	if c.Git.Settings != nil {
		out.Git.Settings = make(map[string]string, len(c.Git.Settings))
		for k, v := range c.Git.Settings {
			out.Git.Settings[k] = v
		}
	}
	if c.Editor.Extensions != nil {
		out.Editor.Extensions = make([]string, len(c.Editor.Extensions))
		copy(out.Editor.Extensions, c.Editor.Extensions)
	}
	return &out
}

// PackageByName looks up a configured package.
func (c *Config) PackageByName(name string) (Package, bool) {
	for _, p := range c.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// WithIdentity returns a copy of c with the identity replaced.
func (c *Config) WithIdentity(id Identity) *Config {
	out := c.Clone()
	out.Identity = id
	return out
}
