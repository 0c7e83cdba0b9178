package paramparse

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ResultSet holds the outcome of one parse: the values produced by the
// handlers, keyed by root parameter name (or by the raw token, for tokens
// handled by the default handler), in the order they were recorded.
// A ResultSet is not modified after Parse returns.
type ResultSet struct {
	values   *orderedmap.OrderedMap[string, any]
	valid    bool
	state    State
	haltedBy *Parameter
	invalid  *Parameter
}

func newResultSet() *ResultSet {
	return &ResultSet{
		values: orderedmap.New[string, any](),
		valid:  true,
		state:  Idle,
	}
}

// Get returns the value recorded under key.
func (rs *ResultSet) Get(key string) (any, bool) {
	return rs.values.Get(key)
}

// Has reports whether a value was recorded under key.
func (rs *ResultSet) Has(key string) bool {
	_, ok := rs.values.Get(key)
	return ok
}

// Keys returns the result keys in the order they were recorded.
func (rs *ResultSet) Keys() []string {
	out := make([]string, 0, rs.values.Len())
	for pair := rs.values.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of recorded values.
func (rs *ResultSet) Len() int { return rs.values.Len() }

// Map returns a copy of the recorded values.
func (rs *ResultSet) Map() map[string]any {
	out := make(map[string]any, rs.values.Len())
	for pair := rs.values.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Valid is false if a required parameter was missing, a parameter did not
// receive enough arguments, or the default handler rejected a token.
// Values of an invalid ResultSet should not be trusted.
func (rs *ResultSet) Valid() bool { return rs.valid }

// State returns the state the parse ended in.
func (rs *ResultSet) State() State { return rs.state }

// Halted reports whether a handler stopped the parse.
func (rs *ResultSet) Halted() bool { return rs.haltedBy != nil }

// HaltedBy returns the parameter whose handler stopped the parse, or nil.
// For an alias this is the alias parameter; see Parameter.RootName.
func (rs *ResultSet) HaltedBy() *Parameter { return rs.haltedBy }

// InvalidParameter returns the required parameter found missing, or nil.
func (rs *ResultSet) InvalidParameter() *Parameter { return rs.invalid }

func (rs *ResultSet) set(key string, value any) {
	rs.values.Set(key, value)
}

func (rs *ResultSet) remove(key string) {
	rs.values.Delete(key)
}

// -----

type resultDocument struct {
	Valid    bool   `json:"valid" yaml:"valid"`
	State    string `json:"state" yaml:"state"`
	HaltedBy string `json:"halted_by,omitempty" yaml:"halted_by,omitempty"`
	Results  any    `json:"results" yaml:"results"`
}

func (rs *ResultSet) document() resultDocument {
	doc := resultDocument{
		Valid: rs.valid,
		State: rs.state.String(),
	}
	if rs.haltedBy != nil {
		doc.HaltedBy = rs.haltedBy.Token()
	}
	return doc
}

// MarshalJSON encodes validity, state, halting parameter, and the values
// in recording order.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	doc := rs.document()
	doc.Results = rs.values
	return json.Marshal(doc)
}

// MarshalYAML is the YAML counterpart of MarshalJSON.
func (rs *ResultSet) MarshalYAML() (any, error) {
	results := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := rs.values.Oldest(); pair != nil; pair = pair.Next() {
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		results.Content = append(results.Content, key, value)
	}

	doc := rs.document()
	doc.Results = results
	return doc, nil
}
