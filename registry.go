package paramparse

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultHandler is invoked for every token that does not resolve to a
// registered parameter. It returns the value to record under the raw
// token, and false to reject the token, which makes the parse invalid.
type DefaultHandler func(token string) (any, bool)

// RejectAll is the default handler of a new Registry: every unknown token
// is rejected.
func RejectAll(string) (any, bool) { return nil, false }

// AcceptAll records every unknown token with the token itself as value.
func AcceptAll(token string) (any, bool) { return token, true }

type group = orderedmap.OrderedMap[string, *Parameter]

// Registry holds the parameters known to a parser, keyed by prefix and
// then by name, both in insertion order. A Registry may be shared by
// concurrent parses; parsing never modifies it.
type Registry struct {
	mu         sync.RWMutex
	prefixes   *orderedmap.OrderedMap[string, *group]
	defaultFn  DefaultHandler
	defaultSet bool
}

// NewRegistry returns an empty Registry that rejects unknown tokens.
func NewRegistry() *Registry {
	return &Registry{
		prefixes:  orderedmap.New[string, *group](),
		defaultFn: RejectAll,
	}
}

// Add inserts the parameter, replacing any parameter with the same prefix
// and name.
func (r *Registry) Add(p *Parameter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(p)
	return r
}

func (r *Registry) add(p *Parameter) {
	g, ok := r.prefixes.Get(p.prefix)
	if !ok {
		g = orderedmap.New[string, *Parameter]()
		r.prefixes.Set(p.prefix, g)
	}
	g.Set(p.name, p)
}

// AddMany adds all parameters, in order.
func (r *Registry) AddMany(params ...*Parameter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		r.add(p)
	}
	return r
}

// Remove deletes the parameter with the given prefix and name, and
// reports whether it was present. A prefix left without parameters is
// dropped as well.
func (r *Registry) Remove(prefix, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.prefixes.Get(prefix)
	if !ok {
		return false
	}
	if _, ok := g.Delete(name); !ok {
		return false
	}
	if g.Len() == 0 {
		r.prefixes.Delete(prefix)
	}
	return true
}

// SetDefault replaces the handler for unknown tokens. A nil handler
// restores RejectAll.
func (r *Registry) SetDefault(fn DefaultHandler) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		r.defaultFn, r.defaultSet = RejectAll, false
		return r
	}
	r.defaultFn, r.defaultSet = fn, true
	return r
}

// Default returns the handler for unknown tokens.
func (r *Registry) Default() DefaultHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaultFn
}

// Merge adds every parameter of other to r. Parameters of other replace
// those of r with the same prefix and name. The default handler of other
// is taken over only if it was set explicitly.
func (r *Registry) Merge(other *Registry) *Registry {
	if other == nil || other == r {
		return r
	}

	params := other.All()
	other.mu.RLock()
	fn, set := other.defaultFn, other.defaultSet
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		r.add(p)
	}
	if set {
		r.defaultFn, r.defaultSet = fn, true
	}
	return r
}

// Lookup returns the parameter registered under prefix and name.
func (r *Registry) Lookup(prefix, name string) (*Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.prefixes.Get(prefix)
	if !ok {
		return nil, false
	}
	return g.Get(name)
}

// Prefixes returns the registered prefixes in insertion order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, r.prefixes.Len())
	for pair := r.prefixes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Parameters returns the parameters registered under prefix, in insertion
// order.
func (r *Registry) Parameters(prefix string) []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.prefixes.Get(prefix)
	if !ok {
		return nil
	}
	return groupParameters(g)
}

// All returns every parameter, grouped by prefix, in insertion order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Parameter{}
	for pair := r.prefixes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, groupParameters(pair.Value)...)
	}
	return out
}

// Len returns the number of registered parameters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for pair := r.prefixes.Oldest(); pair != nil; pair = pair.Next() {
		n += pair.Value.Len()
	}
	return n
}

func groupParameters(g *group) []*Parameter {
	out := make([]*Parameter, 0, g.Len())
	for pair := g.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
