package winget

import "github.com/felixgeelhaar/winprep/internal/domain/compiler"

// BootstrapID is the step that makes winget itself available.
const BootstrapID = "winget:bootstrap"

// PackageID returns the step ID of the package named name.
// Other providers use it to depend on the tool they configure.
func PackageID(name string) compiler.StepID {
	return compiler.MustNewStepID("winget:package:" + compiler.SanitizeSegment(name))
}
