package registry

import (
	"sync"
	"time"

	"github.com/cuemby/brokerage/pkg/types"
)

// Entry is a single worker's recorded state. Tool is always nil in this
// module: the compiler/tool manifest and dependency graph that would
// populate it is an external collaborator out of scope here (spec.md §1),
// referenced only through the types.ToolIdentity marker interface.
type Entry struct {
	Available bool
	LastSeen  time.Time
	Tool      types.ToolIdentity
}

// Registry is a mutex-guarded, insertion-ordered map of worker address to
// Entry. The zero value is not usable; use New.
type Registry struct {
	mu    sync.Mutex
	byKey map[uint32]Entry
	order []uint32
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byKey: make(map[uint32]Entry)}
}

// SetStatus records available for addr, updating LastSeen. A previously
// unseen address is appended to the insertion order.
func (r *Registry) SetStatus(addr uint32, available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.byKey[addr]; !seen {
		r.order = append(r.order, addr)
	}
	r.byKey[addr] = Entry{Available: available, LastSeen: time.Now()}
}

// List returns every known address that is currently marked available, in
// first-seen order.
func (r *Registry) List() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := make([]uint32, 0, len(r.order))
	for _, addr := range r.order {
		if r.byKey[addr].Available {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// Get returns the recorded entry for addr, if any.
func (r *Registry) Get(addr uint32) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byKey[addr]
	return entry, ok
}

// Len returns the number of distinct addresses ever recorded, regardless of
// current availability.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
