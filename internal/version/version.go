package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/frameseq/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/frameseq/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/frameseq/internal/version.Date={{.Date}}
)

// String describes the build in one line
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
