package version

// Version is the version of the backtest binary. It is set at build time:
// -ldflags "-X github.com/rxtech-lab/argo-macdrsi/internal/version.Version=1.2.3"
// "main" marks a development build.
var Version = "v1.0.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
