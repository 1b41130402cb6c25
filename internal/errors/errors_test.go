package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "roll table not found",
			expected: "NOT_FOUND: roll table not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid formula",
			expected: "INVALID_ARGUMENT: invalid formula",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("document not found").WithMeta("document_id", "weapon-mastery")
	wrapped := errors.Wrap(base, "failed to resolve table entry")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("weapon-mastery", wrapped.Meta["document_id"])
	s.Assert().True(errors.IsNotFound(wrapped))
	s.Assert().True(errors.Is(wrapped, errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	baseErr := fmt.Errorf("redis: connection refused")
	wrapped := errors.Wrap(baseErr, "failed to store session")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.NotFound("actor missing").WithMeta("actor_id", "a1")
	wrapped := errors.WrapWithCode(base, errors.CodeUnavailable, "external service rejected update")

	s.Assert().True(errors.IsUnavailable(wrapped))
	s.Assert().Equal("a1", wrapped.Meta["actor_id"])
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	original := errors.FailedPrecondition("advancement is not valid").
		WithMeta("reason", "hit points have not been rolled")

	grpcErr := errors.ToGRPCError(original)
	s.Require().Error(grpcErr)

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsFailedPrecondition(back))
	s.Assert().Equal("hit points have not been rolled", errors.GetMeta(back)["reason"])
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ActorID", "", vb)
	errors.ValidateRange("TargetLevel", 11, 1, 10, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "ActorID: is required")
	s.Assert().Contains(err.Error(), "TargetLevel: must be between 1 and 10")

	s.Assert().NoError(errors.NewValidationBuilder().Build())
}
