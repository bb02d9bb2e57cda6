package tools

import (
	"context"
	"regexp"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProbeFunc runs the probed executable with the given arguments and returns
// its combined textual output.
type ProbeFunc func(ctx context.Context, args ...string) (string, error)

// VersionProber extracts a tool version from a probe invocation. Tool
// families with unusual version reporting plug in their own strategy.
type VersionProber interface {
	Probe(ctx context.Context, run ProbeFunc) (domain.Version, error)
}

// RegexProber is the common strategy: run a version command and pull the
// version string out of the output with a single-group pattern.
type RegexProber struct {
	// Args for the probe invocation. Defaults to ["--version"].
	Args []string
	// Pattern must capture the dotted version string in group one.
	Pattern *regexp.Regexp
	// Normalize optionally rewrites the raw output before matching.
	Normalize func(string) string
}

var _ VersionProber = (*RegexProber)(nil)

var genericVersionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)*)`)

func defaultProber() *RegexProber {
	return &RegexProber{Pattern: genericVersionPattern}
}

// Probe implements VersionProber.
func (p *RegexProber) Probe(ctx context.Context, run ProbeFunc) (domain.Version, error) {
	args := p.Args
	if len(args) == 0 {
		args = []string{"--version"}
	}

	out, err := run(ctx, args...)
	if err != nil {
		return nil, zerr.Wrap(err, "version probe failed")
	}
	if p.Normalize != nil {
		out = p.Normalize(out)
	}

	m := p.Pattern.FindStringSubmatch(out)
	if m == nil {
		e := zerr.New("version probe output did not match")
		return nil, zerr.With(e, "output", firstLine(out))
	}
	return domain.ParseVersion(m[1])
}

// DashesToDots rewrites dash-separated version components to the dotted
// form, for vendors that report versions like 23.5-0.
func DashesToDots(s string) string {
	return strings.ReplaceAll(s, "-", ".")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
