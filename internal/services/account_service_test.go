package services

import (
	"context"
	"testing"
	"time"

	"gentil/internal/auth"
	"gentil/internal/clock"
	"gentil/internal/repositories"
	"gentil/internal/structures"
	"gentil/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService() (*AccountService, *auth.TokenIssuer) {
	clk := clock.Fake(testNow)
	conf := &structures.Config{Auth: structures.AuthConfig{BcryptCost: 4}}
	issuer := auth.NewTokenIssuer("0123456789abcdef0123", time.Hour, clk)
	return NewAccountService(conf, repositories.NewMemoryStore(clk), issuer, &testutil.MockLogger{}), issuer
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	svc, issuer := newAccountService()
	ctx := context.Background()

	session, err := svc.Register(ctx, auth.RegisterForm{Email: " Ana@Example.com ", Password: "123456", ConfirmPassword: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.UserID)

	userID, err := issuer.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, userID)

	login, err := svc.Login(ctx, auth.LoginForm{Email: "ana@example.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, session.UserID, login.UserID)
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()
	form := auth.RegisterForm{Email: "ana@example.com", Password: "123456", ConfirmPassword: "123456"}

	_, err := svc.Register(ctx, form)
	require.NoError(t, err)
	_, err = svc.Register(ctx, form)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountService_Validation(t *testing.T) {
	svc, _ := newAccountService()

	_, err := svc.Register(context.Background(), auth.RegisterForm{Email: "ana@example.com", Password: "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A senha deve ter no minimo 6 caracteres.", verr.Fields["password"])
	assert.Equal(t, "Confirme sua senha.", verr.Fields["confirmPassword"])
}

func TestAccountService_LoginFailures(t *testing.T) {
	svc, _ := newAccountService()
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginForm{Email: "nobody@example.com", Password: "123456"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, auth.RegisterForm{Email: "ana@example.com", Password: "123456", ConfirmPassword: "123456"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, auth.LoginForm{Email: "ana@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
