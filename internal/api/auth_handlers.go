package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"quotes-server/internal/auth"
	"quotes-server/internal/database"
)

type TokenRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"900"`
}

func (s *Server) tokenTTL() time.Duration {
	if s.config.JWT.TTLMinutes > 0 {
		return time.Duration(s.config.JWT.TTLMinutes) * time.Minute
	}
	return auth.DefaultTokenTTL
}

// credentials come in either as a JSON body or as the classic OAuth2
// password-flow form.
func decodeCredentials(r *http.Request) (TokenRequest, error) {
	var req TokenRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	return req, nil
}

// @Summary      Issue an access token
// @Description  Authenticates a username/password pair and returns a signed, time-limited bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        tokenRequest   body      TokenRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Incorrect username or password"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /auth/token [post]
func (s *Server) TokenHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := auth.Authenticate(r.Context(), s.store, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
			return
		}
		s.log.Errorw("credential lookup failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	ttl := s.tokenTTL()
	accessToken, err := auth.IssueToken(user.Username, s.config.JWT.Secret, ttl)
	if err != nil {
		s.log.Errorw("failed to sign access token", "error", err)
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}

type CreateUserRequest struct {
	Username string `json:"username" example:"newuser"`
	Email    string `json:"email" example:"new@example.com"`
	Password string `json:"password" example:"password123"`
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        createUserRequest   body      CreateUserRequest  true  "New account"
// @Success      201  {object}  models.User
// @Failure      400  {string}  string "Invalid request body"
// @Failure      409  {string}  string "Username or email already registered"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /users [post]
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) || errors.Is(err, database.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		s.log.Errorw("failed to create user", "username", req.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// @Summary      Get current user info
// @Description  Resolves the bearer token to the calling account.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      400  {string}  string "Inactive user"
// @Failure      401  {string}  string "Could not validate credentials"
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
