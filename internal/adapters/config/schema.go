package config

// Forgefile represents the structure of the forge.yaml configuration file.
type Forgefile struct {
	Version    string        `yaml:"version"`
	Project    string        `yaml:"project"`
	Suite      string        `yaml:"suite"`
	MPI        bool          `yaml:"mpi"`
	OpenMP     bool          `yaml:"openmp"`
	Jobs       int           `yaml:"jobs"`
	Reuse      *bool         `yaml:"reuse"`
	SourceRoot string        `yaml:"source_root"`
	BuildRoot  string        `yaml:"build_root"`
	Preprocess PreprocessDTO `yaml:"preprocess"`
	Libs       []LibDTO      `yaml:"libs"`
	Link       LinkDTO       `yaml:"link"`
	Psyclone   *PsycloneDTO  `yaml:"psyclone"`
}

// PsycloneDTO configures the optional PSyclone code-generation step.
type PsycloneDTO struct {
	API         string   `yaml:"api"`
	Script      string   `yaml:"script"`
	KernelRoots []string `yaml:"kernel_roots"`
	Args        []string `yaml:"args"`
}

// PreprocessDTO holds per-language preprocessor flags.
type PreprocessDTO struct {
	FortranFlags []string `yaml:"fortran_flags"`
	CFlags       []string `yaml:"c_flags"`
}

// LibDTO is one named library with its linker flags. A list keeps the
// caller-significant declaration order that a YAML map would lose.
type LibDTO struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
}

// LinkDTO holds flags surrounding the per-library flag groups.
type LinkDTO struct {
	PreLibFlags  []string `yaml:"pre_lib_flags"`
	PostLibFlags []string `yaml:"post_lib_flags"`
}
