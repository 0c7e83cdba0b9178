package paramparse

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// State is the state of a parse. A parse moves from Idle through
// Validating and Scanning to one of the final states Halted, Completed,
// or Failed.
type State int

const (
	Idle State = iota
	Validating
	Scanning
	Halted
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Scanning:
		return "scanning"
	case Halted:
		return "halted"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// -----

// ErrorHandler receives the conditions raised during a parse. While an
// ErrorHandler is set, argument count errors do not abort the parse.
type ErrorHandler func(*ParseError)

// Option configures a Parser.
type Option func(*Parser)

// WithErrorHandler routes parse errors to fn instead of returning them.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(p *Parser) { p.errorHandler = fn }
}

// WithLogger sets the logger for debug tracing of the parse.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser parses argument vectors against a Registry. A Parser holds no
// per-parse state and may be used from several goroutines at once.
type Parser struct {
	registry     *Registry
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// NewParser returns a Parser for the given registry. A nil registry is
// replaced by an empty one.
func NewParser(reg *Registry, opts ...Option) *Parser {
	if reg == nil {
		reg = NewRegistry()
	}
	p := &Parser{
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the parser resolves tokens against.
func (p *Parser) Registry() *Registry { return p.registry }

// Parse takes a complete argument vector (program path first) and returns
// the results. If no error handler is set, the first error aborts the
// parse and is returned, along with the results recorded so far (which
// are marked invalid). With an error handler, the returned error is
// always nil; check ResultSet.Valid.
func (p *Parser) Parse(argv []string) (*ResultSet, error) {
	r := &run{
		Parser: p,
		table:  newTable(p.registry),
		tokens: Tokenize(argv),
		rs:     newResultSet(),
	}
	err := r.execute()
	return r.rs, err
}

// ParseString splits cmdline into words the way a POSIX shell does, and
// parses the result. The first word is taken to be the program path.
func (p *Parser) ParseString(cmdline string) (*ResultSet, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("split command line: %w", err)
	}
	return p.Parse(argv)
}

// Parse parses argv against reg with default settings.
func Parse(argv []string, reg *Registry) (*ResultSet, error) {
	return NewParser(reg).Parse(argv)
}

// FromCommandLine parses the arguments of the running process.
func FromCommandLine(reg *Registry, opts ...Option) (*ResultSet, error) {
	return NewParser(reg, opts...).Parse(os.Args)
}

// -----

// sortableFlags is sorted by length, then lexically; the longest prefix is last.
type sortableFlags []string

func (s sortableFlags) Len() int      { return len(s) }
func (s sortableFlags) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s sortableFlags) Less(a, b int) bool {
	if len(s[a]) != len(s[b]) {
		return len(s[a]) < len(s[b])
	}
	return s[a] < s[b]
}

// table is the private lookup structure of one parse: the registered
// parameters together with the parameters materialized from their
// aliases. It is rebuilt for every parse, so the registry is never
// modified.
type table struct {
	params    map[string]map[string]*Parameter
	prefixes  sortableFlags
	required  []*Parameter
	defaultFn DefaultHandler

	// tokens of the aliases that made it into params, per root
	aliasTokens map[*Parameter][]string
}

func newTable(reg *Registry) *table {
	t := &table{
		params:      map[string]map[string]*Parameter{},
		defaultFn:   reg.Default(),
		aliasTokens: map[*Parameter][]string{},
	}

	roots := reg.All()
	for _, p := range roots {
		t.insert(p)
		if p.required {
			t.required = append(t.required, p)
		}
	}

	// Aliases never shadow registered parameters
	for _, p := range roots {
		for _, a := range p.aliasParameters() {
			if _, ok := t.params[a.prefix][a.name]; ok {
				continue
			}
			t.insert(a)
			t.aliasTokens[p] = append(t.aliasTokens[p], a.Token())
		}
	}

	for prefix := range t.params {
		t.prefixes = append(t.prefixes, prefix)
	}
	sort.Sort(t.prefixes)

	return t
}

func (t *table) insert(p *Parameter) {
	names, ok := t.params[p.prefix]
	if !ok {
		names = map[string]*Parameter{}
		t.params[p.prefix] = names
	}
	names[p.name] = p
}

// resolve returns the parameter for token, trying the longest matching
// prefix first.
func (t *table) resolve(token string) (*Parameter, bool) {
	for i := len(t.prefixes) - 1; i >= 0; i-- {
		prefix := t.prefixes[i]
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		if p, ok := t.params[prefix][token[len(prefix):]]; ok {
			return p, true
		}
	}
	return nil, false
}

// hasPrefix reports whether token starts with any registered prefix, ie.
// whether it looks like a parameter.
func (t *table) hasPrefix(token string) bool {
	for _, prefix := range t.prefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// -----

type run struct {
	*Parser
	table  *table
	tokens []string
	cursor int
	rs     *ResultSet
}

func (r *run) execute() error {
	r.logger.Debug("parse started", "tokens", r.tokens)

	r.transition(Validating)
	if missing := r.missingRequired(); missing != nil {
		r.rs.valid = false
		r.rs.invalid = missing
		r.transition(Failed)
		return r.raise(missingRequiredError(missing))
	}

	r.transition(Scanning)
	for r.cursor < len(r.tokens) {
		halted, err := r.step()
		if err != nil {
			r.transition(Failed)
			return err
		}
		if halted {
			r.transition(Halted)
			return nil
		}
	}

	r.transition(Completed)
	return nil
}

func (r *run) transition(s State) {
	r.logger.Debug("parse state", "from", r.rs.state, "to", s)
	r.rs.state = s
}

// raise hands e to the error handler, if any; otherwise e is returned.
func (r *run) raise(e *ParseError) error {
	r.logger.Debug("parse error", "code", int(e.Code), "error", e.Message)
	if r.errorHandler != nil {
		r.errorHandler(e)
		return nil
	}
	return e
}

// missingRequired returns the first required parameter of which neither
// the parameter token nor any alias token resolving to it occurs in the
// input. A shadowed alias does not count.
func (r *run) missingRequired() *Parameter {
	for _, p := range r.table.required {
		if slices.Contains(r.tokens, p.Token()) {
			continue
		}
		found := false
		for _, token := range r.table.aliasTokens[p] {
			if slices.Contains(r.tokens, token) {
				found = true
				break
			}
		}
		if !found {
			return p
		}
	}
	return nil
}

// step processes the token under the cursor and advances the cursor past
// everything consumed. Returns true if a handler halted the parse.
func (r *run) step() (bool, error) {
	token := r.tokens[r.cursor]

	param, ok := r.table.resolve(token)
	if !ok {
		r.respondDefault(token)
		return false, nil
	}
	r.logger.Debug("parameter resolved", "token", token, "root", param.RootName(),
		"arity", param.arity.String())

	var args []string
	var short bool
	if param.arity.variadic {
		args = r.collectVariadic()
		short = len(args) == 0
	} else {
		args = r.collectFixed(param.arity.count)
		short = len(args) < param.arity.count
	}

	if short {
		r.rs.valid = false
		return false, r.raise(argumentCountError(param, len(args)))
	}

	key := param.RootName()
	value := param.invoke(args)
	r.rs.set(key, value)

	h, ok := value.(haltSignal)
	if !ok {
		return false, nil
	}

	// A carried halt signal is a bare halt
	if inner, ok := h.value.(haltSignal); ok && h.carries {
		h = inner
	}

	r.rs.haltedBy = param
	if h.carries {
		r.rs.set(key, h.value)
	} else {
		r.rs.remove(key)
	}
	r.logger.Debug("parse halted", "by", param.Token(), "value", h.carries)
	return true, nil
}

// collectFixed consumes up to n tokens following the parameter, whatever
// they look like.
func (r *run) collectFixed(n int) []string {
	start := r.cursor + 1
	end := min(start+n, len(r.tokens))
	args := slices.Clone(r.tokens[start:end])
	r.cursor = end
	return args
}

// collectVariadic consumes tokens following the parameter up to the end
// of input or the next token with a registered prefix, which is left for
// the next step.
func (r *run) collectVariadic() []string {
	r.cursor++
	start := r.cursor
	for r.cursor < len(r.tokens) && !r.table.hasPrefix(r.tokens[r.cursor]) {
		r.cursor++
	}
	return slices.Clone(r.tokens[start:r.cursor])
}

func (r *run) respondDefault(token string) {
	value, ok := r.table.defaultFn(token)
	if !ok {
		r.rs.valid = false
	}
	r.logger.Debug("default handler", "token", token, "accepted", ok)
	r.rs.set(token, value)
	r.cursor++
}
