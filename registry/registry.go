package registry

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/infra/perf-selftest/checks"
	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// Assembler builds the ordered list of top-level test nodes.
type Assembler func() []*types.Node

// Registry hands out the fixed, ordered set of tests of the harness
type Registry struct {
	config Config
}

// Config contains registry configuration
type Config struct {
	Log log.Logger
	// Assemble overrides the built-in test set.
	Assemble Assembler
}

// NewRegistry creates a new registry instance
func NewRegistry(cfg Config) *Registry {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if cfg.Assemble == nil {
		cfg.Assemble = DefaultTests
	}
	r := &Registry{config: cfg}
	cfg.Log.Debug("Registry loaded", "len(tests)", r.Len())
	return r
}

// DefaultTests gathers all built-in checks in registration order. New checks
// are added by appending them here.
func DefaultTests() []*types.Node {
	return []*types.Node{
		checks.AlwaysPasses(),
		checks.AlwaysFails(),
		checks.PassesAfterOneSecond(),
		checks.WithPointlessSubtests(),
		checks.Libpfm4(),
		checks.FDSanity(),
	}
}

// Tests returns a freshly assembled copy of the test tree. Every call
// returns the same sequence.
func (r *Registry) Tests() []*types.Node {
	return r.config.Assemble()
}

// Len returns the number of top-level tests.
func (r *Registry) Len() int {
	return len(r.config.Assemble())
}
