package dice

import (
	"log/slog"
	"sort"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// Options adjust how a formula is evaluated
type Options struct {
	// Minimize forces every draw to 1
	Minimize bool
	// Maximize forces every draw to the die's faces
	Maximize bool
	// Roller supplies random draws, defaults to the toolkit roller
	Roller toolkitdice.Roller
}

// Result is the immutable outcome of evaluating a formula
type Result struct {
	Total   int          `json:"total"`
	Formula string       `json:"formula"`
	Terms   []TermResult `json:"terms"`
}

// Expression is a tokenized formula ready to evaluate
type Expression struct {
	formula string
	tokens  []token
}

// Formula returns the source text
func (e *Expression) Formula() string {
	return e.formula
}

// Terms returns the dice terms of the expression in order
func (e *Expression) Terms() []Term {
	var terms []Term
	for _, t := range e.tokens {
		if t.kind == tokenDice {
			terms = append(terms, t.term)
		}
	}
	return terms
}

// Parse tokenizes and syntax-checks a formula
func Parse(formula string) (*Expression, error) {
	tokens, err := tokenize(formula)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed dice formula %q", formula)
	}

	expr := &Expression{formula: formula, tokens: tokens}
	// syntax check without drawing; division by a forced value of zero is
	// reported later at evaluation time
	p := &parser{tokens: tokens, draw: func(t Term) (TermResult, error) {
		return forced(t, t.Faces), nil
	}, syntaxOnly: true}
	if _, err := p.parse(); err != nil {
		return nil, errors.Wrapf(err, "malformed dice formula %q", formula)
	}
	return expr, nil
}

// Roll evaluates a formula once. Later calls to Evaluate return the first
// result without drawing again.
type Roll struct {
	formula string
	opts    Options

	once   sync.Once
	result Result
	err    error
}

// NewRoll prepares a roll; nothing is drawn until Evaluate is called
func NewRoll(formula string, opts *Options) *Roll {
	r := &Roll{formula: formula}
	if opts != nil {
		r.opts = *opts
	}
	if r.opts.Roller == nil {
		r.opts.Roller = toolkitdice.DefaultRoller
	}
	return r
}

// Evaluate returns the roll total. A malformed formula totals 0 and the
// failure is available from Err.
func (r *Roll) Evaluate() int {
	r.once.Do(r.evaluate)
	return r.result.Total
}

// Result returns the full outcome, evaluating if needed
func (r *Roll) Result() Result {
	r.Evaluate()
	return r.result
}

// Err returns why the formula could not be evaluated, if it could not
func (r *Roll) Err() error {
	r.Evaluate()
	return r.err
}

func (r *Roll) evaluate() {
	r.result = Result{Formula: r.formula}

	expr, err := Parse(r.formula)
	if err != nil {
		r.fail(err)
		return
	}

	var terms []TermResult
	p := &parser{tokens: expr.tokens, draw: func(t Term) (TermResult, error) {
		tr, err := r.drawTerm(t)
		if err == nil {
			terms = append(terms, tr)
		}
		return tr, err
	}}
	total, err := p.parse()
	if err != nil {
		r.fail(errors.Wrapf(err, "failed to evaluate dice formula %q", r.formula))
		return
	}

	r.result.Total = total
	r.result.Terms = terms
}

func (r *Roll) fail(err error) {
	r.err = err
	r.result.Total = 0
	r.result.Terms = nil
	slog.Warn("dice formula evaluated to 0",
		"formula", r.formula,
		"error", err)
}

func (r *Roll) drawTerm(t Term) (TermResult, error) {
	switch {
	case r.opts.Minimize:
		return forced(t, 1), nil
	case r.opts.Maximize:
		return forced(t, t.Faces), nil
	}

	values, err := r.opts.Roller.RollN(t.Count, t.Faces)
	if err != nil {
		return TermResult{}, errors.Wrapf(err, "failed to roll %s", t)
	}
	if len(values) != t.Count {
		return TermResult{}, errors.Internalf("roller returned %d draws for %s", len(values), t)
	}
	return applyKeep(t, values), nil
}

func forced(t Term, value int) TermResult {
	values := make([]int, t.Count)
	for i := range values {
		values[i] = value
	}
	return applyKeep(t, values)
}

// applyKeep orders draws for keep modifiers, marks the first K active and
// totals the active draws
func applyKeep(t Term, values []int) TermResult {
	sorted := append([]int(nil), values...)
	switch t.Keep {
	case KeepHighest:
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	case KeepLowest:
		sort.Ints(sorted)
	}

	res := TermResult{Term: t, Draws: make([]Draw, len(sorted))}
	for i, v := range sorted {
		active := t.Keep == KeepAll || i < t.KeepCount
		res.Draws[i] = Draw{Value: v, Active: active}
		if active {
			res.Total += v
		}
	}
	return res
}

// Evaluate rolls a formula and returns its result
func Evaluate(formula string, opts *Options) Result {
	return NewRoll(formula, opts).Result()
}

// Bounds returns the totals reached with every die forced low and forced
// high. Formulas that subtract or divide by dice report those forced totals.
func Bounds(formula string) (int, int, error) {
	low := NewRoll(formula, &Options{Minimize: true})
	high := NewRoll(formula, &Options{Maximize: true})
	if err := low.Err(); err != nil {
		return 0, 0, err
	}
	if err := high.Err(); err != nil {
		return 0, 0, err
	}
	a, b := low.Evaluate(), high.Evaluate()
	return min(a, b), max(a, b), nil
}
