package version

import "fmt"

// Заполняются линкером при сборке (-ldflags "-X ...").
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildDate string `json:"buildDate"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
}

// Info returns structured version information. Safe to call at any time.
func Info() VersionInfo {
	return VersionInfo{
		BuildDate: coalesce(BuildDate, "unknown"),
		Commit:    coalesce(BuildCommit, "unknown"),
		Branch:    coalesce(BuildBranch, "unknown"),
	}
}

// String returns a human-readable build string.
func String() string {
	info := Info()
	return fmt.Sprintf("Build %s commit[%s] branch[%s]", info.BuildDate, info.Commit, info.Branch)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
