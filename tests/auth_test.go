package tests

import (
	"fmt"
	"time"

	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/internal/validator"
)

func (s *IntegrationTestSuite) TestRegisterUser_Success() {
	email := "test@example.com"
	password := "secret123qwe"

	user, err := s.AuthService.Register(s.Ctx, email, password, "Alice")
	s.Require().NoError(err)
	s.Require().NotNil(user)

	var dbEmail string
	var dbPassHash string
	err = s.DbPool.QueryRow(s.Ctx, "SELECT email, password_hash FROM users WHERE id=$1", user.ID).
		Scan(&dbEmail, &dbPassHash)
	s.Require().NoError(err)

	s.Equal(email, dbEmail)
	s.NotEqual(password, dbPassHash)

	query := `
		SELECT published_at
		FROM outbox
		WHERE aggregate_id = $1
	`

	s.Require().Eventually(func() bool {
		var publishedAt *time.Time
		err := s.DbPool.QueryRow(s.Ctx, query, fmt.Sprintf("%d", user.ID)).
			Scan(&publishedAt)

		if err != nil || publishedAt == nil {
			return false
		}

		return true
	}, 5*time.Second, 100*time.Millisecond, "registration event must be published within 5 seconds")
}

func (s *IntegrationTestSuite) TestRegisterUser_DuplicateEmail_Fails() {
	email := "dup@example.com"

	user, err := s.AuthService.Register(s.Ctx, email, "secret123qwe", "Alice")
	s.Require().NoError(err)
	s.Require().NotNil(user)

	user2, err := s.AuthService.Register(s.Ctx, email, "secret123qwe", "Bob")
	s.Require().ErrorIs(err, repository.ErrEmailTaken)
	s.Require().Nil(user2)
}

func (s *IntegrationTestSuite) TestRegisterUser_WeakPassword_Fails() {
	user, err := s.AuthService.Register(s.Ctx, "weak@example.com", "abcdefgh", "Alice")
	s.Require().ErrorIs(err, validator.ErrPasswordTooWeak)
	s.Require().Nil(user)
}

func (s *IntegrationTestSuite) TestLogin_Success() {
	email := "login@example.com"
	password := "secret123qwe"
	s.registerUser(email)

	access, refresh, err := s.AuthService.Login(s.Ctx, email, password)
	s.Require().NoError(err)
	s.NotEmpty(access)
	s.NotEmpty(refresh)
}

func (s *IntegrationTestSuite) TestLogin_WrongPassword_Fails() {
	email := "wrongpass@example.com"
	s.registerUser(email)

	_, _, err := s.AuthService.Login(s.Ctx, email, "totally-wrong-1")
	s.Require().ErrorIs(err, service.ErrBadCredentials)
}

func (s *IntegrationTestSuite) TestLogin_UnknownEmail_Fails() {
	_, _, err := s.AuthService.Login(s.Ctx, "nobody@example.com", "secret123qwe")
	s.Require().ErrorIs(err, service.ErrBadCredentials)
}

func (s *IntegrationTestSuite) TestRefresh_Success() {
	email := "refresh@example.com"
	s.registerUser(email)

	_, refresh, err := s.AuthService.Login(s.Ctx, email, "secret123qwe")
	s.Require().NoError(err)

	newAccess, newRefresh, err := s.AuthService.Refresh(s.Ctx, refresh)
	s.Require().NoError(err)
	s.NotEmpty(newAccess)
	s.NotEmpty(newRefresh)
}

func (s *IntegrationTestSuite) TestRefresh_AccessTokenRejected() {
	email := "refresh2@example.com"
	s.registerUser(email)

	access, _, err := s.AuthService.Login(s.Ctx, email, "secret123qwe")
	s.Require().NoError(err)

	_, _, err = s.AuthService.Refresh(s.Ctx, access)
	s.Require().Error(err)
}
