package paramparse

import (
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	defaultPlaceholder         = "arg"
	defaultVariadicPlaceholder = "args"
	variadicMarker             = ", ..."
)

// -----

// Arity describes how many argument tokens follow a parameter on the
// command line: either a fixed count, or a variadic (one or more) run
// that extends up to the next token carrying a registered prefix.
type Arity struct {
	count    int
	variadic bool
	names    []string // placeholder names, only used for usage output
}

// Fixed returns an Arity of exactly n trailing arguments. Negative
// values are treated as zero.
func Fixed(n int) Arity {
	return Arity{count: max(n, 0)}
}

// Variadic returns an Arity of one or more trailing arguments.
func Variadic() Arity {
	return Arity{variadic: true}
}

// Named returns a copy of the arity with the given placeholder names,
// which are used by PropertiesUsage instead of the generic ones.
func (a Arity) Named(names ...string) Arity {
	a.names = slices.Clone(names)
	return a
}

// IsVariadic reports whether the arity is variadic.
func (a Arity) IsVariadic() bool { return a.variadic }

// Count returns the number of arguments of a fixed arity, and zero for
// a variadic one.
func (a Arity) Count() int { return a.count }

func (a Arity) String() string {
	if a.variadic {
		return "1+"
	}
	return fmt.Sprint(a.count)
}

// placeholders returns one "<name>" token per fixed argument, or a single
// "<name, ...>" token for a variadic arity.
func (a Arity) placeholders() []string {
	if a.variadic {
		name := defaultVariadicPlaceholder
		if len(a.names) > 0 && a.names[0] != "" {
			name = a.names[0]
		}
		return []string{"<" + name + variadicMarker + ">"}
	}

	out := make([]string, 0, a.count)
	for i := 0; i < a.count; i++ {
		name := defaultPlaceholder
		if a.count > 1 {
			name = fmt.Sprintf("%s%d", defaultPlaceholder, i+1)
		}
		if i < len(a.names) && a.names[i] != "" {
			name = a.names[i]
		}
		out = append(out, "<"+name+">")
	}
	return out
}

// -----

// Handler is invoked with the argument tokens collected for a parameter
// and returns the value stored in the ResultSet. Returning Halt() or
// HaltWith() stops the parse after this parameter.
type Handler func(args []string) any

type haltSignal struct {
	value   any
	carries bool
}

// Halt returns the value a Handler uses to stop the parse. The parameter
// that halted is not recorded in the results.
func Halt() any {
	return haltSignal{}
}

// HaltWith returns the value a Handler uses to stop the parse while still
// recording v as the parameter's result.
func HaltWith(v any) any {
	return haltSignal{value: v, carries: true}
}

// -----

// Alias is an alternate prefix and name resolving to the same handler and
// result key as the parameter that declares it.
type Alias struct {
	Prefix string
	Name   string
}

func (a Alias) String() string { return a.Prefix + a.Name }

// Parameter describes one recognized command-line token. Parameters are
// configured with the chaining setters before they are added to a
// Registry, and are not modified by parsing.
type Parameter struct {
	prefix      string
	name        string
	arity       Arity
	handler     Handler
	required    bool
	description string
	aliases     *orderedmap.OrderedMap[string, string] // alias prefix -> alias name

	parent string // root name, set only on materialized aliases
}

// NewParameter takes a prefix (like "--"), a name, an arity, and the
// handler invoked with the collected arguments, and returns the new
// Parameter. A nil handler records the arguments unchanged.
func NewParameter(prefix, name string, arity Arity, handler Handler) *Parameter {
	if handler == nil {
		handler = passthrough
	}
	return &Parameter{
		prefix:  prefix,
		name:    name,
		arity:   arity,
		handler: handler,
		aliases: orderedmap.New[string, string](),
	}
}

func passthrough(args []string) any {
	if len(args) == 1 {
		return args[0]
	}
	return slices.Clone(args)
}

// Alias adds an alias sharing the parameter's own prefix. At most one
// alias exists per prefix; a second one replaces the first.
func (p *Parameter) Alias(name string) *Parameter {
	return p.AliasWithPrefix(p.prefix, name)
}

// AliasWithPrefix adds an alias under the given prefix.
func (p *Parameter) AliasWithPrefix(prefix, name string) *Parameter {
	p.aliases.Set(prefix, name)
	return p
}

// SetRequired marks the parameter as required: parsing fails unless the
// parameter, or one of its aliases, appears on the command line.
func (p *Parameter) SetRequired(required bool) *Parameter {
	p.required = required
	return p
}

// SetDescription sets the help text shown in usage output.
func (p *Parameter) SetDescription(description string) *Parameter {
	p.description = description
	return p
}

// Prefix returns the prefix, like "--".
func (p *Parameter) Prefix() string { return p.prefix }

// Name returns the name without prefix.
func (p *Parameter) Name() string { return p.name }

// Arity returns the number of trailing arguments.
func (p *Parameter) Arity() Arity { return p.arity }

// Required reports whether parsing fails without the parameter.
func (p *Parameter) Required() bool { return p.required }

// Description returns the help text.
func (p *Parameter) Description() string { return p.description }

// Token returns the command-line form of the parameter, ie. prefix
// followed by name.
func (p *Parameter) Token() string { return p.prefix + p.name }

// Aliases returns the aliases in the order they were added.
func (p *Parameter) Aliases() []Alias {
	if p.aliases == nil {
		return nil
	}
	out := make([]Alias, 0, p.aliases.Len())
	for pair := p.aliases.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Alias{Prefix: pair.Key, Name: pair.Value})
	}
	return out
}

// HasParent reports whether the parameter was materialized from an alias.
func (p *Parameter) HasParent() bool { return p.parent != "" }

// Parent returns the name of the parameter an alias was derived from, or
// the empty string.
func (p *Parameter) Parent() string { return p.parent }

// RootName returns the key under which the parameter's result is stored:
// the parent's name for an alias, the own name otherwise.
func (p *Parameter) RootName() string {
	if p.parent != "" {
		return p.parent
	}
	return p.name
}

// invoke calls the handler with the given arguments.
func (p *Parameter) invoke(args []string) any {
	return p.handler(args)
}

// aliasParameters materializes one Parameter per alias, sharing handler
// and arity, with the parent set to p's name. Aliases are never required
// themselves.
func (p *Parameter) aliasParameters() []*Parameter {
	aliases := p.Aliases()
	out := make([]*Parameter, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, &Parameter{
			prefix:      a.Prefix,
			name:        a.Name,
			arity:       p.arity,
			handler:     p.handler,
			description: p.description,
			parent:      p.name,
		})
	}
	return out
}

// PropertiesUsage returns the argument placeholders of the parameter,
// eg. "<host> <port>" or "<files, ...>".
func (p *Parameter) PropertiesUsage() string {
	return strings.Join(p.arity.placeholders(), " ")
}

// AliasUsage lists the aliases of the parameter. If encapsulate is true,
// the list is wrapped in parentheses, eg. " ( -v, +v )"; otherwise it is
// a plain comma separated list, eg. "-v, +v".
func (p *Parameter) AliasUsage(encapsulate bool) string {
	aliases := p.Aliases()
	if len(aliases) == 0 {
		return ""
	}

	names := make([]string, len(aliases))
	for i, a := range aliases {
		names[i] = a.String()
	}

	if encapsulate {
		return " ( " + strings.Join(names, ", ") + " )"
	}
	return strings.Join(names, ", ")
}

// Usage returns the one-word usage of the parameter including aliases and
// placeholders. Optional parameters are enclosed in brackets.
func (p *Parameter) Usage() string {
	usage := p.Token() + p.AliasUsage(true)
	if props := p.PropertiesUsage(); props != "" {
		usage += " " + props
	}
	if p.required {
		return usage
	}
	return "[" + usage + "]"
}
