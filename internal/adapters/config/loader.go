// Package config provides the configuration loader for forge.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ProfileLoader = (*FileProfileLoader)(nil)

// FileProfileLoader implements ports.ProfileLoader using a YAML file.
type FileProfileLoader struct{}

// Load reads the profile from the given path.
func (l *FileProfileLoader) Load(path string) (*domain.Profile, error) {
	return Load(path)
}

// Load reads a forge.yaml file and returns a validated domain.Profile.
func Load(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Forgefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	return toProfile(&file)
}

func toProfile(file *Forgefile) (*domain.Profile, error) {
	if file.Jobs < 0 {
		return nil, zerr.With(zerr.New("jobs must not be negative"), "jobs", file.Jobs)
	}

	jobs := file.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	reuse := true
	if file.Reuse != nil {
		reuse = *file.Reuse
	}

	sourceRoot := file.SourceRoot
	if sourceRoot == "" {
		sourceRoot = "src"
	}
	buildRoot := file.BuildRoot
	if buildRoot == "" {
		buildRoot = "build"
	}

	seen := make(map[string]bool, len(file.Libs))
	libs := make([]domain.LibFlags, 0, len(file.Libs))
	for _, lib := range file.Libs {
		if lib.Name == "" {
			return nil, zerr.New("library entry without a name")
		}
		if seen[lib.Name] {
			return nil, zerr.With(zerr.New("duplicate library entry"), "library", lib.Name)
		}
		seen[lib.Name] = true
		libs = append(libs, domain.LibFlags{Name: lib.Name, Flags: lib.Flags})
	}

	return &domain.Profile{
		Project:        file.Project,
		Suite:          file.Suite,
		MPI:            file.MPI,
		OpenMP:         file.OpenMP,
		Jobs:           jobs,
		Reuse:          reuse,
		SourceRoot:     filepath.Clean(sourceRoot),
		BuildRoot:      filepath.Clean(buildRoot),
		FortranPPFlags: file.Preprocess.FortranFlags,
		CPPFlags:       file.Preprocess.CFlags,
		Libs:           libs,
		PreLibFlags:    file.Link.PreLibFlags,
		PostLibFlags:   file.Link.PostLibFlags,
		Psyclone:       psycloneConfig(file.Psyclone),
	}, nil
}

func psycloneConfig(dto *PsycloneDTO) *domain.PsycloneConfig {
	if dto == nil {
		return nil
	}
	return &domain.PsycloneConfig{
		API:         dto.API,
		Script:      dto.Script,
		KernelRoots: dto.KernelRoots,
		Args:        dto.Args,
	}
}
