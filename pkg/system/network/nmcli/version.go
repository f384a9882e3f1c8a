package network_nmcli

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/semver"
	wifid "github.com/dogeorg/wifid/pkg"
)

// Terse mode with -f field selection has been around since 1.0.
var minimumToolVersion = semver.MustParse("1.0.0")

var versionRegex = regexp.MustCompile(`version\s+v?([0-9]+(?:\.[0-9]+){0,2}(?:-[0-9A-Za-z.\-]+)?)`)

type ToolVersion struct {
	Raw     string
	Version *semver.Version
}

func (v ToolVersion) String() string {
	if v.Version == nil {
		return v.Raw
	}
	return v.Version.String()
}

func (v ToolVersion) Supported() bool {
	return v.Version != nil && !v.Version.LessThan(minimumToolVersion)
}

// ParseToolVersion reads the output of `nmcli --version`, ie:
// "nmcli tool, version 1.46.0".
func ParseToolVersion(output string) (ToolVersion, error) {
	m := versionRegex.FindStringSubmatch(output)
	if m == nil {
		return ToolVersion{Raw: output}, fmt.Errorf("no version found in %q", output)
	}

	v, err := semver.NewVersion(m[1])
	if err != nil {
		return ToolVersion{Raw: m[1]}, fmt.Errorf("parsing nmcli version %q: %w", m[1], err)
	}
	return ToolVersion{Raw: m[1], Version: v}, nil
}

func ProbeToolVersion(ctx context.Context, runner wifid.CommandRunner, timeout time.Duration) (ToolVersion, error) {
	out, err := runner.Run(ctx, wifid.Invocation{
		Name:    "version",
		Args:    VersionArgs(),
		Timeout: timeout,
	})
	if err != nil {
		return ToolVersion{}, err
	}
	return ParseToolVersion(out)
}
