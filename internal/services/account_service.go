package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/validate"
)

type AccountService struct {
	Users *repos.UserRepo
}

func NewAccountService(users *repos.UserRepo) *AccountService {
	return &AccountService{Users: users}
}

type NewUser struct {
	Username string
	Email    string
	Location string
	Password string
}

// Create registers a user with a bcrypt-hashed credential. Username
// uniqueness is enforced by the store's unique index and surfaces as a
// ValidationError.
func (s *AccountService) Create(ctx context.Context, in NewUser) (domain.User, error) {
	username, ok := validate.Username(in.Username)
	if !ok {
		return domain.User{}, &domain.ValidationError{Field: "username", Reason: "3-30 letters, digits, _ or -"}
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.User{}, &domain.ValidationError{Field: "email", Reason: "not a valid address"}
	}
	if in.Password == "" {
		return domain.User{}, &domain.ValidationError{Field: "password", Reason: "required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash credential: %w", err)
	}

	return s.Users.Insert(ctx, domain.User{
		Username: username,
		Email:    email,
		Location: in.Location,
		Hash:     string(hash),
	})
}

func (s *AccountService) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.Users.ByUsername(ctx, username)
}
