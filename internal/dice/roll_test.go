package dice_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// sequenceRoller hands out fixed draws in order and counts calls
type sequenceRoller struct {
	values []int
	next   int
	calls  int
}

func (r *sequenceRoller) Roll(_ int) (int, error) {
	r.calls++
	v := r.values[r.next%len(r.values)]
	r.next++
	return v, nil
}

func (r *sequenceRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, _ := r.Roll(size)
		out[i] = v
	}
	return out, nil
}

type RollTestSuite struct {
	suite.Suite
}

func TestRollSuite(t *testing.T) {
	suite.Run(t, new(RollTestSuite))
}

func (s *RollTestSuite) TestTotalsStayWithinDiceRange() {
	testCases := []struct {
		formula string
		low     int
		high    int
	}{
		{formula: "1d6", low: 1, high: 6},
		{formula: "2d6", low: 2, high: 12},
		{formula: "3d8", low: 3, high: 24},
		{formula: "d20", low: 1, high: 20},
		{formula: "10d4", low: 10, high: 40},
	}

	for _, tc := range testCases {
		s.Run(tc.formula, func() {
			for i := 0; i < 200; i++ {
				total := dice.NewRoll(tc.formula, nil).Evaluate()
				s.GreaterOrEqual(total, tc.low)
				s.LessOrEqual(total, tc.high)
			}
		})
	}
}

func (s *RollTestSuite) TestEvaluateIsIdempotent() {
	roller := &sequenceRoller{values: []int{4, 2, 6}}
	roll := dice.NewRoll("3d6", &dice.Options{Roller: roller})

	first := roll.Evaluate()
	second := roll.Evaluate()

	s.Equal(12, first)
	s.Equal(first, second)
	s.Equal(3, roller.calls)
}

func (s *RollTestSuite) TestKeepHighestUsesMaximumDraw() {
	for i := 0; i < 500; i++ {
		res := dice.Evaluate("2d20kh1", nil)
		s.Require().Len(res.Terms, 1)
		draws := res.Terms[0].Draws
		s.Require().Len(draws, 2)
		s.Equal(max(draws[0].Value, draws[1].Value), res.Total)
	}
}

func (s *RollTestSuite) TestKeepModifiersWithFixedDraws() {
	testCases := []struct {
		name    string
		formula string
		values  []int
		want    int
		active  []bool
	}{
		{
			name:    "keep highest",
			formula: "2d20kh1",
			values:  []int{3, 17},
			want:    17,
			active:  []bool{true, false},
		},
		{
			name:    "keep lowest",
			formula: "2d20kl",
			values:  []int{3, 17},
			want:    3,
			active:  []bool{true, false},
		},
		{
			name:    "keep highest three of four",
			formula: "4d6kh3",
			values:  []int{1, 5, 3, 6},
			want:    14,
			active:  []bool{true, true, true, false},
		},
		{
			name:    "keep count above dice count keeps all",
			formula: "2d6kh5",
			values:  []int{2, 3},
			want:    5,
			active:  []bool{true, true},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res := dice.Evaluate(tc.formula, &dice.Options{Roller: &sequenceRoller{values: tc.values}})

			s.Equal(tc.want, res.Total)
			s.Require().Len(res.Terms, 1)
			for i, d := range res.Terms[0].Draws {
				s.Equal(tc.active[i], d.Active, "draw %d", i)
			}
		})
	}
}

func (s *RollTestSuite) TestGoldFormula() {
	for i := 0; i < 300; i++ {
		total := dice.NewRoll("2d6 * 5", nil).Evaluate()
		s.GreaterOrEqual(total, 10)
		s.LessOrEqual(total, 60)
		s.Zero(total % 5)
	}
}

func (s *RollTestSuite) TestArithmetic() {
	testCases := []struct {
		formula string
		want    int
	}{
		{formula: "2 + 3 * 4", want: 14},
		{formula: "(2 + 3) * 4", want: 20},
		{formula: "7 / 2", want: 3},
		{formula: "-7 / 2", want: -3},
		{formula: "10 - 2 - 3", want: 5},
		{formula: "-(1d1)", want: -1},
		{formula: "1d1 + 1d1 * 3", want: 4},
	}

	for _, tc := range testCases {
		s.Run(tc.formula, func() {
			roll := dice.NewRoll(tc.formula, nil)
			s.Equal(tc.want, roll.Evaluate())
			s.NoError(roll.Err())
		})
	}
}

func (s *RollTestSuite) TestMalformedFormulaTotalsZero() {
	testCases := []string{
		"",
		"2d",
		"1d6 +",
		"abc",
		"(1d6",
		"1d6)",
		"4 / 0",
		"2d6kx",
		"0d6",
		"1d6; rm -rf",
		"999999*999999*999999*999999",
		"-999999*999999*999999*999999",
		"999999*999999*999999 + 999999*999999*999999 + 999999*999999*999999 + " +
			"999999*999999*999999 + 999999*999999*999999 + 999999*999999*999999 + " +
			"999999*999999*999999 + 999999*999999*999999 + 999999*999999*999999 + " +
			"999999*999999*999999",
	}

	for _, formula := range testCases {
		s.Run(formula, func() {
			roll := dice.NewRoll(formula, nil)
			s.Equal(0, roll.Evaluate())
			s.Error(roll.Err())
			s.True(errors.IsInvalidArgument(roll.Err()))
		})
	}
}

func (s *RollTestSuite) TestParse() {
	expr, err := dice.Parse("2d20kh1 + d4 + 3")
	s.Require().NoError(err)
	s.Equal([]dice.Term{
		{Count: 2, Faces: 20, Keep: dice.KeepHighest, KeepCount: 1},
		{Count: 1, Faces: 4},
	}, expr.Terms())

	_, err = dice.Parse("2d20 +* 3")
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = dice.Parse("1000d1000 * 999999 * 999999 * 999999")
	s.True(errors.IsInvalidArgument(err), "overflow is malformed")
}

func (s *RollTestSuite) TestMinimizeAndMaximize() {
	s.Equal(6, dice.Evaluate("2d6 + 1d8 + 3", &dice.Options{Minimize: true}).Total)
	s.Equal(23, dice.Evaluate("2d6 + 1d8 + 3", &dice.Options{Maximize: true}).Total)
}

func (s *RollTestSuite) TestBounds() {
	testCases := []struct {
		formula string
		low     int
		high    int
	}{
		{formula: "2d6", low: 2, high: 12},
		{formula: "2d20kh1", low: 1, high: 20},
		{formula: "2d6 * 5", low: 10, high: 60},
		{formula: "1d12", low: 1, high: 12},
	}

	for _, tc := range testCases {
		s.Run(tc.formula, func() {
			low, high, err := dice.Bounds(tc.formula)
			s.Require().NoError(err)
			s.Equal(tc.low, low)
			s.Equal(tc.high, high)
		})
	}

	_, _, err := dice.Bounds("1d")
	s.Error(err)
}
