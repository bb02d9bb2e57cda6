package tools

import (
	"context"
	"regexp"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Psyclone is the PSyclone code generator. Its command line changed
// incompatibly after release 2.5.0, so argument construction is
// version-aware, and so is the version probe itself.
type Psyclone struct {
	*Generic
}

// PsycloneRequest describes one transformation run. Exactly one of the two
// modes applies: DSL processing (API set, PsyFile and AlgFile set) or plain
// transformation (API empty, TransformedFile set).
type PsycloneRequest struct {
	// API selects a DSL, e.g. "dynamo0.3". Empty means transformation mode.
	API string
	// InputFile is the x90 or Fortran source.
	InputFile string
	// PsyFile and AlgFile receive the generated PSy layer and rewritten
	// algorithm in DSL mode.
	PsyFile string
	AlgFile string
	// TransformedFile receives the output in transformation mode.
	TransformedFile string
	// TransformationScript is the path of the Python recipe, optional.
	TransformationScript string
	// KernelRoots are extra kernel search directories.
	KernelRoots []string
	// AdditionalArgs are appended verbatim.
	AdditionalArgs []string
}

// NewPsyclone creates the PSyclone tool.
func NewPsyclone(deps Deps) *Psyclone {
	g := NewTool("psyclone", "psyclone", domain.CategoryCodeGen, deps)
	g.prober = &psycloneProber{}
	return &Psyclone{Generic: g}
}

// Process runs PSyclone over one source file.
func (p *Psyclone) Process(ctx context.Context, req PsycloneRequest) error {
	if err := validatePsycloneRequest(req); err != nil {
		return err
	}

	v, err := p.Version(ctx)
	if err != nil {
		return err
	}

	// 2.5.0.1 marks a post-2.5.0 development build with the new CLI.
	newCLI := v.Compare(domain.Version{2, 5, 0}) > 0

	var args []string
	switch {
	case req.API != "":
		api := req.API
		if newCLI {
			api = renamedAPI(api)
			args = append(args, "--psykal-dsl", api, "-opsy", req.PsyFile, "-oalg", req.AlgFile)
		} else {
			args = append(args, "-api", api, "-opsy", req.PsyFile, "-oalg", req.AlgFile)
		}
	case newCLI:
		args = append(args, "-o", req.TransformedFile)
	default:
		args = append(args, "-api", "nemo", "-opsy", req.TransformedFile)
	}

	args = append(args, "-l", "all")
	if req.TransformationScript != "" {
		args = append(args, "-s", req.TransformationScript)
	}
	args = append(args, req.AdditionalArgs...)
	for _, root := range req.KernelRoots {
		args = append(args, "-d", root)
	}
	args = append(args, req.InputFile)

	_, err = p.Run(ctx, RunRequest{Args: args})
	return err
}

func validatePsycloneRequest(req PsycloneRequest) error {
	bad := func(msg string) error {
		return zerr.With(zerr.New(msg), "input", req.InputFile)
	}
	if req.API != "" {
		if req.PsyFile == "" || req.AlgFile == "" {
			return bad("DSL mode requires both a psy and an alg output file")
		}
		if req.TransformedFile != "" {
			return bad("DSL mode does not take a transformed output file")
		}
		return nil
	}
	if req.PsyFile != "" || req.AlgFile != "" {
		return bad("transformation mode does not take psy or alg output files")
	}
	if req.TransformedFile == "" {
		return bad("transformation mode requires a transformed output file")
	}
	return nil
}

// renamedAPI maps the pre-3.0 DSL names onto their new spellings.
func renamedAPI(api string) string {
	switch api {
	case "dynamo0.3":
		return "lfric"
	case "gocean1.0":
		return "gocean"
	}
	return api
}

var psycloneVersionPattern = regexp.MustCompile(`PSyclone version: (\d[\d.]+\d)`)

// psycloneProber handles PSyclone's quirky version reporting: old releases
// insist on a file argument even for --version, and development builds after
// 2.5.0 still report 2.5.0. A second probe with a retired DSL name tells a
// true 2.5.0 apart from head-of-trunk; the latter is recorded as 2.5.0.1.
type psycloneProber struct{}

var _ VersionProber = (*psycloneProber)(nil)

func (p *psycloneProber) Probe(ctx context.Context, run ProbeFunc) (domain.Version, error) {
	out, err := run(ctx, "--version", "does_not_exist")
	if err != nil && !strings.Contains(out, "PSyclone version:") {
		return nil, zerr.Wrap(err, "version probe failed")
	}

	m := psycloneVersionPattern.FindStringSubmatch(out)
	if m == nil {
		e := zerr.New("version probe output did not match")
		return nil, zerr.With(e, "output", firstLine(out))
	}
	v, err := domain.ParseVersion(m[1])
	if err != nil {
		return nil, err
	}

	if v.Equal(domain.Version{2, 5, 0}) {
		out, err := run(ctx, "-api", "nemo", "does_not_exist.f90")
		if err != nil && strings.Contains(out, "Unsupported PSyKAL DSL") {
			v = domain.Version{2, 5, 0, 1}
		}
	}
	return v, nil
}
