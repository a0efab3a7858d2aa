// Package buildinfo carries the firmware identity stamped in at link time:
//
//	-ldflags "-X pager/internal/buildinfo.Version=v1.2.0 -X pager/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the display and the log.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns every known field, e.g. "v1.2.0 (3f2a9c1, 2024-06-01)".
func Long() string {
	s := Version
	if s == "" {
		s = "dev"
	}
	var extra string
	if Commit != "" && Commit != "unknown" {
		extra = Commit
	}
	if Date != "" && Date != "unknown" {
		if extra != "" {
			extra += ", "
		}
		extra += Date
	}
	if extra == "" {
		return s
	}
	return s + " (" + extra + ")"
}
