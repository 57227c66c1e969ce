package web

import (
	"errors"
	"net/http"

	"quotes-server/internal/auth"
	"quotes-server/internal/database"
)

type registerData struct {
	Username string
	Form     RegisterForm
	Errors   map[string]string
}

// RegisterHandler creates an account and logs it straight in. Validation
// failures redisplay the form with field errors; nothing is persisted on
// that path.
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	data := registerData{Username: s.currentUsername(r)}

	if r.Method == http.MethodGet {
		s.render(w, "register.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	data.Form = RegisterForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}

	if err := s.validate.Struct(data.Form); err != nil {
		data.Errors = formErrors(err)
		s.render(w, "register.html", data)
		return
	}

	hashedPassword, err := auth.HashPassword(data.Form.Password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:     data.Form.Username,
		Email:        data.Form.Email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			data.Errors = map[string]string{"Username": "This username is already taken."}
		case errors.Is(err, database.ErrEmailTaken):
			data.Errors = map[string]string{"Email": "This email is already registered."}
		default:
			s.log.Errorw("failed to register user", "username", data.Form.Username, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		s.render(w, "register.html", data)
		return
	}

	if err := s.establishSession(w, r, user.ID, user.Username); err != nil {
		s.log.Errorw("failed to establish session", "username", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type loginData struct {
	Username        string
	Error           string
	EnteredUsername string
}

// LoginHandler verifies credentials and opens a session. The failure
// message never says whether the username or the password was wrong.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	data := loginData{Username: s.currentUsername(r)}

	if r.Method == http.MethodGet {
		s.render(w, "login.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	data.EnteredUsername = username

	user, err := auth.Authenticate(r.Context(), s.store, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			data.Error = "Please enter a correct username and password."
			s.render(w, "login.html", data)
			return
		}
		s.log.Errorw("login lookup failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Deactivated accounts fail the same way as bad credentials here;
	// only the token API reports the distinct inactive state.
	if !user.IsActive {
		data.Error = "Please enter a correct username and password."
		s.render(w, "login.html", data)
		return
	}

	if err := s.establishSession(w, r, user.ID, user.Username); err != nil {
		s.log.Errorw("failed to establish session", "username", user.Username, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.destroySession(w, r); err != nil {
		s.log.Errorw("failed to destroy session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
