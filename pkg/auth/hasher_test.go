package auth

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type HasherTestSuite struct {
	suite.Suite
	hasher *BcryptHasher
}

func TestHasherSuite(t *testing.T) {
	suite.Run(t, new(HasherTestSuite))
}

func (s *HasherTestSuite) SetupTest() {
	s.hasher = NewBcryptHasher(bcrypt.MinCost)
}

func (s *HasherTestSuite) TestHashAndVerify() {
	// Execute
	digest, err := s.hasher.Hash("hunter2")

	// Assert
	s.Require().NoError(err)
	s.NotEqual("hunter2", digest)
	s.True(s.hasher.Verify("hunter2", digest))
	s.False(s.hasher.Verify("hunter3", digest))
}

func (s *HasherTestSuite) TestHashIsSalted() {
	first, err := s.hasher.Hash("same")
	s.Require().NoError(err)
	second, err := s.hasher.Hash("same")
	s.Require().NoError(err)

	s.NotEqual(first, second)
}

func (s *HasherTestSuite) TestHashEmpty() {
	_, err := s.hasher.Hash("")

	s.ErrorIs(err, ErrEmptyPassword)
}

func (s *HasherTestSuite) TestVerifyMalformedDigest() {
	s.False(s.hasher.Verify("anything", "not-a-bcrypt-digest"))
	s.False(s.hasher.Verify("anything", ""))
}

func (s *HasherTestSuite) TestCostFallback() {
	s.Equal(bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	s.Equal(bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
