package filters_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

type ClassifierTestSuite struct {
	suite.Suite
	classifier *filters.Classifier
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func (s *ClassifierTestSuite) SetupTest() {
	var err error
	s.classifier, err = filters.Default()
	s.Require().NoError(err)
}

func (s *ClassifierTestSuite) TestEveryBundledPatternPartitionsItsDomain() {
	sources := s.classifier.Sources()
	s.Require().NotEmpty(sources)

	for _, source := range sources {
		s.Run(source, func() {
			p, ok := s.classifier.Pattern(source)
			s.Require().True(ok)

			low, high, err := dice.Bounds(p.Formula)
			s.Require().NoError(err)

			for total := low; total <= high; total++ {
				matches := 0
				for _, e := range p.Entries {
					if e.Contains(total) {
						matches++
					}
				}
				s.Equal(1, matches, "total %d", total)
			}
		})
	}
}

func (s *ClassifierTestSuite) TestClassify() {
	testCases := []struct {
		name   string
		source string
		total  int
		want   filters.Flags
	}{
		{
			name:   "fighter twelve is a choose-one with distribution",
			source: "class-fighter",
			total:  12,
			want:   filters.DropChooseOne | filters.ChooseOne | filters.HasDistributeTable | filters.DropBlank,
		},
		{
			name:   "fighter plain entry",
			source: "class-fighter",
			total:  4,
			want:   filters.FlagNone,
		},
		{
			name:   "warlock boon twice",
			source: "class-warlock",
			total:  12,
			want:   filters.BoonTwice,
		},
		{
			name:   "witch choose two",
			source: "class-witch",
			total:  2,
			want:   filters.ChooseTwoInstead,
		},
		{
			name:   "unknown source",
			source: "class-bard",
			total:  12,
			want:   filters.FlagNone,
		},
		{
			name:   "total outside the domain",
			source: "class-fighter",
			total:  13,
			want:   filters.FlagNone,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, s.classifier.Classify(tc.source, tc.total))
		})
	}
}

func (s *ClassifierTestSuite) TestLoadRejectsBadPatterns() {
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "gap",
			yaml: `
patterns:
  - source: class-test
    formula: 1d6
    entries:
      - range: [1, 2]
        flags: []
      - range: [4, 6]
        flags: []
`,
		},
		{
			name: "overlap",
			yaml: `
patterns:
  - source: class-test
    formula: 1d6
    entries:
      - range: [1, 3]
        flags: []
      - range: [3, 6]
        flags: [choose-one]
`,
		},
		{
			name: "outside domain",
			yaml: `
patterns:
  - source: class-test
    formula: 1d6
    entries:
      - range: [0, 6]
        flags: []
`,
		},
		{
			name: "unknown flag",
			yaml: `
patterns:
  - source: class-test
    formula: 1d6
    entries:
      - range: [1, 6]
        flags: [roll-twice]
`,
		},
		{
			name: "bad formula",
			yaml: `
patterns:
  - source: class-test
    formula: 1d
    entries:
      - range: [1, 6]
        flags: []
`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := filters.Load([]byte(tc.yaml))
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *ClassifierTestSuite) TestFlagSetOperations() {
	f := filters.DropChooseOne | filters.ChooseOne

	s.True(f.Has(filters.ChooseOne))
	s.True(f.HasAll(filters.DropChooseOne, filters.ChooseOne))
	s.False(f.HasAll(filters.DropChooseOne, filters.HasDistributeTable))
	s.True(f.HasAny(filters.BoonAny, filters.ChooseOne))
	s.False(f.HasAny(filters.BoonAny, filters.BoonOnce))
	s.Equal("drop-choose-one|choose-one", f.String())
	s.Equal("none", filters.FlagNone.String())

	parsed, err := filters.ParseFlag("Boon-Twice")
	s.Require().NoError(err)
	s.Equal(filters.BoonTwice, parsed)
}
