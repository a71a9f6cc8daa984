package scaffold

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mrz1836/flow/internal/domain"
	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// kindKey identifies a kind by the wizard selection that resolves to it.
type kindKey struct {
	projectType domain.ProjectType
	framework   domain.Framework
}

// Registry provides thread-safe access to registered kinds. Kinds are
// resolved by (project type, framework) during the wizard and looked up by
// name for `flow templates info`.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[kindKey]*Kind
	byName map[string]*Kind
}

// NewRegistry creates a new empty kind registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[kindKey]*Kind),
		byName: make(map[string]*Kind),
	}
}

// Register adds a kind to the registry.
// Returns an error if the kind is nil, has an empty name, or collides with
// an already registered kind by name or by (project type, framework).
func (r *Registry) Register(k *Kind) error {
	if k == nil {
		return flowerrors.ErrKindNil
	}
	if strings.TrimSpace(k.Name) == "" {
		return flowerrors.ErrKindNameEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[k.Name]; exists {
		return fmt.Errorf("%w: %s", flowerrors.ErrKindDuplicate, k.Name)
	}
	key := kindKey{projectType: k.Type, framework: k.Framework}
	if existing, exists := r.byKey[key]; exists {
		return fmt.Errorf("%w: %s and %s share project type %q framework %q",
			flowerrors.ErrKindDuplicate, existing.Name, k.Name, k.Type, k.Framework)
	}

	r.byName[k.Name] = k
	r.byKey[key] = k
	return nil
}

// Resolve returns the kind for a project type and framework selection.
// Returns ErrKindNotFound when nothing is registered for the pair; the
// orchestrator treats that as a user-input error, never a crash.
func (r *Registry) Resolve(t domain.ProjectType, fw domain.Framework) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byKey[kindKey{projectType: t, framework: fw}]
	if !ok {
		return nil, fmt.Errorf("%w: project type %q framework %q", flowerrors.ErrKindNotFound, t, fw)
	}
	return k, nil
}

// Lookup returns the kind registered under the given stable name.
func (r *Registry) Lookup(name string) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", flowerrors.ErrKindNotFound, name)
	}
	return k, nil
}

// List returns all registered kinds sorted by name.
func (r *Registry) List() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Kind, 0, len(r.byName))
	for _, k := range r.byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
