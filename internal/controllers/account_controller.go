package controllers

import (
	"net/http"

	"gentil/internal/auth"
	"gentil/internal/providers"
	"gentil/internal/services"
)

type AccountController struct {
	logger   providers.Logger
	accounts services.AccountServiceInterface
}

func NewAccountController(logger providers.Logger, accounts services.AccountServiceInterface) *AccountController {
	return &AccountController{logger: logger, accounts: accounts}
}

func (ac *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var form auth.RegisterForm
	if !decodeJSON(w, r, &form) {
		return
	}
	session, err := ac.accounts.Register(r.Context(), form)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (ac *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var form auth.LoginForm
	if !decodeJSON(w, r, &form) {
		return
	}
	session, err := ac.accounts.Login(r.Context(), form)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
