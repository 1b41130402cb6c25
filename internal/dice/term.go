// Package dice parses and evaluates dice formulas such as "2d20kh1 + 3" or
// "2d6 * 5" with a recursive-descent evaluator over typed tokens.
package dice

import (
	"fmt"
	"strconv"
)

// KeepMode selects which draws of a dice term count toward its total
type KeepMode int

// Keep modes
const (
	KeepAll KeepMode = iota
	KeepHighest
	KeepLowest
)

func (k KeepMode) String() string {
	switch k {
	case KeepHighest:
		return "kh"
	case KeepLowest:
		return "kl"
	default:
		return "sum"
	}
}

// Term is a single NdM dice term, optionally keeping the K highest or lowest
type Term struct {
	Count     int      `json:"count"`
	Faces     int      `json:"faces"`
	Keep      KeepMode `json:"keep"`
	KeepCount int      `json:"keep_count,omitempty"`
}

func (t Term) String() string {
	s := strconv.Itoa(t.Count) + "d" + strconv.Itoa(t.Faces)
	if t.Keep != KeepAll {
		s += t.Keep.String() + strconv.Itoa(t.KeepCount)
	}
	return s
}

// Draw is one die result. Inactive draws were discarded by a keep modifier.
type Draw struct {
	Value  int  `json:"value"`
	Active bool `json:"active"`
}

// TermResult is the evaluated outcome of a dice term
type TermResult struct {
	Term  Term   `json:"term"`
	Draws []Draw `json:"draws"`
	Total int    `json:"total"`
}

func (r TermResult) String() string {
	return fmt.Sprintf("%s%v=%d", r.Term, r.values(), r.Total)
}

func (r TermResult) values() []int {
	out := make([]int, len(r.Draws))
	for i, d := range r.Draws {
		out[i] = d.Value
	}
	return out
}
