package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
)

func (srv *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	user, hash, err := srv.users.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		srv.handleError(w, r, err)
		return
	}

	if err := auth.CheckPassword(hash, creds.Password); err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		srv.handleError(w, r, err)
		return
	}
	if !user.IsActive {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}

	token, err := srv.deps.TokenManager.GenerateToken(user)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	srv.respond(w, http.StatusOK, model.LoginResponse{User: user, Token: token})
}

type meResponse struct {
	model.User
	RoleLabel  string `json:"roleLabel"`
	IsInternal bool   `json:"isInternal"`
	ClientName string `json:"clientName,omitempty"`
}

func (srv *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	resp := meResponse{
		User:       user,
		RoleLabel:  status.RoleLabel(user.Role),
		IsInternal: user.Role.IsInternal(),
	}
	if user.ClientID != "" {
		client, err := srv.users.GetClient(r.Context(), user.ClientID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			srv.handleError(w, r, err)
			return
		}
		resp.ClientName = client.Name
	}
	srv.respond(w, http.StatusOK, resp)
}
