package dflags

import (
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/apstndb/dflags/conversion"
)

// Parser assigns command-line arguments to the flags of a Registry.
// A Parser holds no per-call state and may be shared between goroutines.
type Parser struct {
	registry        *Registry
	conversions     *conversion.Table
	logger          *zap.Logger
	policy          ErrorPolicy
	normalizePrefix bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithConversions sets the conversion table. The default table serves only
// the built-in conversions.
func WithConversions(t *conversion.Table) ParserOption {
	return func(p *Parser) {
		p.conversions = t
	}
}

// WithLogger sets the logger used to report problems and assignments.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithErrorPolicy sets how unknown, ambiguous and value-less flags are handled.
func WithErrorPolicy(policy ErrorPolicy) ParserOption {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithPrefixNormalization controls the retry that drops the first two
// characters of an unmatched name, so that "----name" still finds "name".
// It is enabled by default.
func WithPrefixNormalization(enabled bool) ParserOption {
	return func(p *Parser) {
		p.normalizePrefix = enabled
	}
}

// NewParser creates a parser over r.
func NewParser(r *Registry, opts ...ParserOption) *Parser {
	p := &Parser{
		registry:        r,
		conversions:     conversion.NewTable(),
		logger:          zap.NewNop(),
		policy:          PolicyLog,
		normalizePrefix: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of a successful parse.
type Result struct {
	// Args holds the positional arguments in input order.
	Args []string
	// Problems holds the non-fatal problems in input order.
	Problems []error
}

// Err joins the problems into one error, nil if there were none.
func (r *Result) Err() error {
	return errors.Join(r.Problems...)
}

// Pair is one entry of map input.
type Pair struct {
	Name  string
	Value string
}

// Parse assigns args to flags and returns the positional arguments.
//
// Tokens starting with "-" or "--" name a flag, optionally with an inline
// value ("--name=value"). A boolean flag is set to true by its name and to
// false by its name prefixed with "no". Any other flag takes the following
// token as its value. Tokens that are not consumed as values are returned
// as positional arguments.
//
// Unknown, ambiguous and value-less flags are reported according to the
// ErrorPolicy. Conversion and validation failures stop the parse and are
// returned as the error; flags assigned before the failure keep their new
// values.
func (p *Parser) Parse(args []string) (*Result, error) {
	s := &parseState{parser: p, result: &Result{}}
	for _, arg := range args {
		if err := s.token(arg); err != nil {
			return nil, err
		}
	}
	if err := s.flushPending(); err != nil {
		return nil, err
	}
	return s.result, nil
}

// ParseMap assigns each pair's value to the flag the pair names. Names are
// matched literally, by name or by fully-qualified name; every value,
// booleans included, is converted with the flag's conversion.
func (p *Parser) ParseMap(pairs []Pair) (*Result, error) {
	s := &parseState{parser: p, result: &Result{}}
	for _, pair := range pairs {
		ms := p.registry.resolve(pair.Name)
		if err := s.assignLiteral(ms, pair.Name, pair.Value); err != nil {
			return nil, err
		}
	}
	return s.result, nil
}

// parseState is the per-call state. A nil pending means a key is expected.
type parseState struct {
	parser  *Parser
	result  *Result
	pending *Metadata
}

func (s *parseState) token(arg string) error {
	name, isFlag := strings.CutPrefix(arg, "--")
	if !isFlag {
		name, isFlag = strings.CutPrefix(arg, "-")
	}
	if !isFlag {
		return s.value(arg)
	}

	if key, value, ok := strings.Cut(name, "="); ok {
		return s.keyValue(key, value, arg)
	}
	return s.key(name, arg)
}

func (s *parseState) key(name, original string) error {
	if err := s.flushPending(); err != nil {
		return err
	}

	ms := s.lookup(name)
	if len(ms) == 0 {
		if negated, ok := strings.CutPrefix(name, "no"); ok {
			return s.negate(s.parser.registry.resolve(negated), original)
		}
	}

	switch len(ms) {
	case 0:
		return s.problem(&UnknownFlagError{Token: original})
	case 1:
		m := ms[0]
		if m.IsBool() {
			return s.store(m, true)
		}
		s.pending = &m
		return nil
	default:
		return s.problem(ambiguous(original, ms))
	}
}

func (s *parseState) negate(ms []Metadata, original string) error {
	switch {
	case len(ms) == 1 && ms[0].IsBool():
		return s.store(ms[0], false)
	case len(ms) > 1:
		return s.problem(ambiguous(original, ms))
	default:
		return s.problem(&UnknownFlagError{Token: original})
	}
}

func (s *parseState) keyValue(name, value, original string) error {
	if err := s.flushPending(); err != nil {
		return err
	}
	return s.assignLiteral(s.lookup(name), original, value)
}

func (s *parseState) value(token string) error {
	if s.pending == nil {
		s.result.Args = append(s.result.Args, token)
		return nil
	}

	m := *s.pending
	s.pending = nil
	return s.convert(m, token)
}

func (s *parseState) assignLiteral(ms []Metadata, original, literal string) error {
	switch len(ms) {
	case 0:
		return s.problem(&UnknownFlagError{Token: original})
	case 1:
		return s.convert(ms[0], literal)
	default:
		return s.problem(ambiguous(original, ms))
	}
}

func (s *parseState) lookup(name string) []Metadata {
	r := s.parser.registry
	ms := r.resolve(name)
	if len(ms) == 0 && s.parser.normalizePrefix && len(name) > 2 && !strings.HasPrefix(name, "no") {
		ms = r.resolve(name[2:])
	}
	return ms
}

func (s *parseState) convert(m Metadata, literal string) error {
	fn, ok := s.parser.conversions.ForType(m.Type)
	if !ok {
		return &UnsupportedTypeError{Flag: m.ID, Type: m.Type}
	}

	v, err := fn(literal)
	if err != nil {
		var convErr *conversion.ConversionError
		if !errors.As(err, &convErr) {
			convErr = &conversion.ConversionError{Type: m.Type, Literal: literal, Err: err}
		}
		return &ConversionError{Flag: m.ID, Err: convErr}
	}
	return s.store(m, v)
}

func (s *parseState) store(m Metadata, v any) error {
	if err := m.Handle.Accept(v); err != nil {
		var mismatchErr *TypeMismatchError
		if errors.As(err, &mismatchErr) {
			return err
		}
		return &ValidationError{Flag: m.ID, Value: v, Err: err}
	}
	s.parser.logger.Debug("flag set", zap.Stringer("flag", m.ID), zap.Any("value", v))
	return nil
}

func (s *parseState) flushPending() error {
	if s.pending == nil {
		return nil
	}
	id := s.pending.ID
	s.pending = nil
	return s.problem(&MissingValueError{Flag: id})
}

// problem records a non-fatal problem. It returns non-nil only under
// PolicyFailFast.
func (s *parseState) problem(err error) error {
	logger := s.parser.logger
	switch s.parser.policy {
	case PolicyFailFast:
		return err
	case PolicyCollect:
		logger.Debug("flag problem", zap.Error(err))
	default:
		logger.Error("flag problem", zap.Error(err))
	}
	s.result.Problems = append(s.result.Problems, err)
	return nil
}

func ambiguous(token string, ms []Metadata) *AmbiguousFlagError {
	return &AmbiguousFlagError{
		Token:      token,
		Candidates: lo.Map(ms, func(m Metadata, _ int) FlagID { return m.ID }),
	}
}
