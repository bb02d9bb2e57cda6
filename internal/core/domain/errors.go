package domain

import "go.trai.ch/zerr"

var (
	// ErrToolUnavailable is returned when a tool's availability probe failed or
	// its version output could not be parsed.
	ErrToolUnavailable = zerr.New("tool unavailable")

	// ErrToolExecution is returned when a spawned tool exits non-zero or could
	// not be started at all.
	ErrToolExecution = zerr.New("tool execution failed")

	// ErrUnsupportedOperation is returned when a capability is requested on a
	// tool that does not support it, e.g. syntax-only on a C compiler.
	ErrUnsupportedOperation = zerr.New("operation not supported by tool")

	// ErrUnknownCategory is returned when a registry category has no entries.
	ErrUnknownCategory = zerr.New("unknown tool category")

	// ErrUnknownTool is returned when no tool in a category matches a name.
	ErrUnknownTool = zerr.New("unknown tool")

	// ErrNoMatchingTool is returned when no tool in a category matches the
	// requested MPI capability.
	ErrNoMatchingTool = zerr.New("no tool matches the requested capability")

	// ErrMPIRequired is returned when a default is requested for a compiler or
	// linker category without stating the MPI requirement. This is a
	// programming error, not a data error.
	ErrMPIRequired = zerr.New("mpi requirement must be specified for compiler and linker categories")

	// ErrSuiteNotFound is returned when a suite preference cannot be satisfied
	// for a category.
	ErrSuiteNotFound = zerr.New("compiler suite not found in category")

	// ErrUnknownLibrary is returned when linker flags are requested for an
	// unregistered library name.
	ErrUnknownLibrary = zerr.New("unknown library name")

	// ErrMissingDependencyHash is returned by the fingerprint engine when a
	// dependency name has no resolved hash.
	ErrMissingDependencyHash = zerr.New("missing dependency hash")
)
