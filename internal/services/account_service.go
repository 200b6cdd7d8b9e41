package services

import (
	"context"
	"errors"
	"strings"

	"gentil/internal/auth"
	"gentil/internal/providers"
	"gentil/internal/repositories"
	"gentil/internal/structures"
)

type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type AccountServiceInterface interface {
	Register(ctx context.Context, form auth.RegisterForm) (*Session, error)
	Login(ctx context.Context, form auth.LoginForm) (*Session, error)
}

type AccountService struct {
	users      repositories.UserRepository
	tokens     auth.TokenIssuerInterface
	bcryptCost int
	logger     providers.Logger
}

func NewAccountService(conf *structures.Config, users repositories.UserRepository, tokens auth.TokenIssuerInterface, logger providers.Logger) *AccountService {
	return &AccountService{users: users, tokens: tokens, bcryptCost: conf.Auth.BcryptCost, logger: logger}
}

func (s *AccountService) Register(ctx context.Context, form auth.RegisterForm) (*Session, error) {
	if errs := auth.ValidateRegister(&form); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	hash, err := auth.HashPassword(form.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, strings.ToLower(form.Email), hash)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, storageErr("create user", err)
	}
	s.logger.Infof(providers.TypeApp, "Registered user %s", user.ID)
	return s.session(user.ID)
}

func (s *AccountService) Login(ctx context.Context, form auth.LoginForm) (*Session, error) {
	if errs := auth.ValidateLogin(&form); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(form.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(user.ID)
}

func (s *AccountService) session(userID string) (*Session, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, Token: token}, nil
}
