package version

import (
	"github.com/carlmjohnson/versioninfo"
)

/* injected: -ldflags "-X github.com/dogeorg/wifid/pkg/version.release=v1.2.3" */

var release string

/* ** */

type VersionInfoGit struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type VersionInfo struct {
	Release string         `json:"release"`
	Git     VersionInfoGit `json:"git"`
}

func GetRelease() *VersionInfo {
	r := release
	if r == "" {
		r = versioninfo.Version
	}
	if r == "" || r == "(devel)" {
		r = "unknown"
	}

	return &VersionInfo{
		Release: r,
		Git: VersionInfoGit{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}
}
