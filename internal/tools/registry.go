package tools

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry holds every tool forge knows about, grouped by category. Within a
// category the first tool is the default; SetDefaultCompilerSuite reorders
// compilers and linkers to prefer a suite.
type Registry struct {
	deps Deps

	mu    sync.RWMutex
	tools map[domain.Category][]Tool
}

// New creates an empty registry.
func New(deps Deps) *Registry {
	return &Registry{
		deps:  deps,
		tools: map[domain.Category][]Tool{},
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it and registering the
// built-in tool set on first call. The first caller's dependencies win;
// later calls return the same instance regardless of arguments.
func Default(deps Deps) *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(deps)
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// Add registers a tool. Registering a compiler also synthesizes a matching
// linker named "linker-<compiler>", so every compiler and wrapper can link.
func (r *Registry) Add(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(tool)
}

func (r *Registry) add(tool Tool) {
	r.tools[tool.Category()] = append(r.tools[tool.Category()], tool)
	if c, ok := tool.(Compiler); ok {
		linker := NewLinker(c, r.deps)
		r.tools[domain.CategoryLinker] = append(r.tools[domain.CategoryLinker], linker)
	}
}

// Lookup returns the tool with the given name in a category.
func (r *Registry) Lookup(category domain.Category, name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.tools[category]
	if len(list) == 0 {
		return nil, zerr.With(domain.ErrUnknownCategory, "category", category.String())
	}
	for _, t := range list {
		if t.Name() == name {
			return t, nil
		}
	}
	unknown := zerr.With(domain.ErrUnknownTool, "tool", name)
	return nil, zerr.With(unknown, "category", category.String())
}

// GetDefault returns the first available tool of a category. Compilers and
// linkers are MPI-aware and must be requested through GetDefaultWithMPI so
// the choice is always explicit.
func (r *Registry) GetDefault(ctx context.Context, category domain.Category) (Tool, error) {
	if category.IsMPIAware() {
		return nil, zerr.With(domain.ErrMPIRequired, "category", category.String())
	}
	return r.firstAvailable(ctx, category, func(Tool) bool { return true })
}

// GetDefaultWithMPI returns the first available tool of an MPI-aware
// category whose MPI capability matches.
func (r *Registry) GetDefaultWithMPI(ctx context.Context, category domain.Category, mpi bool) (Tool, error) {
	if !category.IsMPIAware() {
		unsupported := zerr.With(domain.ErrUnsupportedOperation, "operation", "mpi selection")
		return nil, zerr.With(unsupported, "category", category.String())
	}
	t, err := r.firstAvailable(ctx, category, func(t Tool) bool {
		st, ok := t.(SuiteTool)
		return ok && st.MPI() == mpi
	})
	if err != nil {
		return nil, zerr.With(err, "mpi", mpi)
	}
	return t, nil
}

func (r *Registry) firstAvailable(ctx context.Context, category domain.Category, match func(Tool) bool) (Tool, error) {
	// Availability probes spawn processes, so work on a snapshot instead of
	// holding the registry lock.
	list := r.ToolsIn(category)
	if len(list) == 0 {
		return nil, zerr.With(domain.ErrUnknownCategory, "category", category.String())
	}
	for _, t := range list {
		if match(t) && t.Available(ctx) {
			return t, nil
		}
	}
	return nil, zerr.With(domain.ErrNoMatchingTool, "category", category.String())
}

// SetDefaultCompilerSuite stably moves every compiler and linker of the
// given suite to the front of its category, keeping relative order within
// both partitions. A category with no tool of the suite fails; categories
// already reordered stay reordered.
func (r *Registry) SetDefaultCompilerSuite(suite string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, category := range []domain.Category{
		domain.CategoryCCompiler,
		domain.CategoryFortranCompiler,
		domain.CategoryLinker,
	} {
		list := r.tools[category]
		slices.SortStableFunc(list, func(a, b Tool) int {
			return suiteRank(a, suite) - suiteRank(b, suite)
		})
		if len(list) == 0 || suiteOf(list[0]) != suite {
			notFound := zerr.With(domain.ErrSuiteNotFound, "suite", suite)
			return zerr.With(notFound, "category", category.String())
		}
	}
	return nil
}

// ToolsIn returns a copy of the category's tool list in priority order.
func (r *Registry) ToolsIn(category domain.Category) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tools[category])
}

func suiteOf(t Tool) string {
	if st, ok := t.(SuiteTool); ok {
		return st.Suite()
	}
	return ""
}

func suiteRank(t Tool, suite string) int {
	if suiteOf(t) == suite {
		return 0
	}
	return 1
}
