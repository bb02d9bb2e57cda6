package domain

// Profile is a validated build profile loaded from forge.yaml.
// It selects tools from the registry and parameterizes the build steps.
type Profile struct {
	Project string

	// Suite is the preferred compiler suite ("gnu", "intel-classic", ...).
	// Empty means keep registration order.
	Suite string

	// MPI states whether MPI-capable compilers and linkers are required.
	MPI bool

	// OpenMP enables the compiler-specific OpenMP flag on compile and link.
	OpenMP bool

	// Jobs is the preprocessing worker count; 1 means serial.
	Jobs int

	// Reuse enables the fast path that keeps existing output artefacts.
	Reuse bool

	SourceRoot string
	BuildRoot  string

	// FortranPPFlags and CPPFlags are extra preprocessor flags.
	FortranPPFlags []string
	CPPFlags       []string

	// Libs maps library names to linker flags, in declaration order.
	Libs []LibFlags

	PreLibFlags  []string
	PostLibFlags []string

	// Psyclone configures the optional code-generation step, nil disables it.
	Psyclone *PsycloneConfig
}

// PsycloneConfig parameterizes the PSyclone code-generation step.
type PsycloneConfig struct {
	// API selects a PSyKAl DSL; empty runs plain transformation mode.
	API string

	// Script is the path of the transformation recipe, optional.
	Script string

	// KernelRoots are extra kernel search directories.
	KernelRoots []string

	// Args are appended to every PSyclone invocation.
	Args []string
}

// LibFlags is one named library with its ordered linker flags.
type LibFlags struct {
	Name  string
	Flags []string
}
