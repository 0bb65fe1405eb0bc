package tui

import "runtime/debug"

// Version is set at link time with -ldflags "-X ...tui.Version=v1.2.3".
// Development builds fall back to the VCS revision.
var Version = "dev"

func init() {
	if Version == "dev" {
		Version = buildVersion(debug.ReadBuildInfo())
	}
}

func buildVersion(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				rev = s.Value[:7]
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	if dirty {
		rev += "-dirty"
	}
	return "dev (" + rev + ")"
}
