package version

import "fmt"

// Set at build time with -ldflags "-X ...".
var (
	Version   = "0.1.0"
	GitCommit = ""
)

// HumanVersion returns the version with the commit when known.
func HumanVersion() string {
	if GitCommit == "" {
		return fmt.Sprintf("boxkit v%s", Version)
	}
	return fmt.Sprintf("boxkit v%s (%s)", Version, GitCommit)
}
