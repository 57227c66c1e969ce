package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"quotes-server/internal/auth"
	"quotes-server/internal/database"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

var errResetTokenInvalid = errors.New("reset token is invalid or expired")

// resetTokenTTL bounds how long a mailed reset link stays usable.
const resetTokenTTL = time.Hour

const resetEmailSubject = "Password reset request"

const resetEmailBody = `Someone (hopefully you) requested a password reset for your account.

Follow the link below to choose a new password. The link expires in one hour.

%v/password-reset/confirm?token=%v

If you did not request this, you can ignore this email.
`

type resetRequestData struct {
	Username string
	Form     ResetRequestForm
	Errors   map[string]string
}

// ResetRequestHandler collects an email address and mails a reset link.
// It always proceeds to the sent page, whether or not the address matched
// an account, so the form cannot be used to probe for registered emails.
func (s *Server) ResetRequestHandler(w http.ResponseWriter, r *http.Request) {
	data := resetRequestData{Username: s.currentUsername(r)}

	if r.Method == http.MethodGet {
		s.render(w, "password_reset_form.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	data.Form = ResetRequestForm{Email: r.PostFormValue("email")}

	if err := s.validate.Struct(data.Form); err != nil {
		data.Errors = formErrors(err)
		s.render(w, "password_reset_form.html", data)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), data.Form.Email)
	if err != nil {
		s.log.Errorw("reset lookup failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if user != nil {
		generateID, err := nanoid.Standard(40)
		if err != nil {
			s.log.Errorw("failed to initialize token generator", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		token := generateID()

		err = s.store.CreateResetToken(r.Context(), database.CreateResetTokenParams{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		})
		if err != nil {
			s.log.Errorw("failed to store reset token", "user_id", user.ID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		body := fmt.Sprintf(resetEmailBody, s.config.AppHost, token)
		if err := s.mailer.SendTo(resetEmailSubject, body, []string{user.Email}); err != nil {
			s.log.Errorw("failed to send reset email", "user_id", user.ID, "error", err)
		}
	}

	http.Redirect(w, r, "/password-reset/sent", http.StatusSeeOther)
}

func (s *Server) ResetSentHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, "password_reset_done.html", struct {
		Username string
	}{
		Username: s.currentUsername(r),
	})
}

type resetConfirmData struct {
	Username     string
	Token        string
	TokenInvalid bool
	Errors       map[string]string
}

// ResetConfirmHandler shows the new-password form for a valid token and
// applies the change. Consuming the token and rewriting the hash happen in
// one transaction so a token can never be spent twice.
func (s *Server) ResetConfirmHandler(w http.ResponseWriter, r *http.Request) {
	data := resetConfirmData{Username: s.currentUsername(r)}

	if r.Method == http.MethodGet {
		data.Token = r.URL.Query().Get("token")

		user, err := s.store.GetUserByResetToken(r.Context(), data.Token)
		if err != nil {
			s.log.Errorw("reset token lookup failed", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data.TokenInvalid = user == nil

		s.render(w, "password_reset_confirm.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := ResetConfirmForm{
		Token:    r.PostFormValue("token"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	data.Token = form.Token

	if err := s.validate.Struct(form); err != nil {
		data.Errors = formErrors(err)
		s.render(w, "password_reset_confirm.html", data)
		return
	}

	hashedPassword, err := auth.HashPassword(form.Password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	err = s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		user, err := q.GetUserByResetToken(r.Context(), form.Token)
		if err != nil {
			return err
		}
		if user == nil {
			return errResetTokenInvalid
		}
		if err := q.UpdateUserPassword(r.Context(), user.ID, hashedPassword); err != nil {
			return err
		}
		return q.DeleteResetToken(r.Context(), form.Token)
	})
	if err != nil {
		if errors.Is(err, errResetTokenInvalid) {
			data.TokenInvalid = true
			s.render(w, "password_reset_confirm.html", data)
			return
		}
		s.log.Errorw("password reset failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/password-reset/complete", http.StatusSeeOther)
}

func (s *Server) ResetCompleteHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, "password_reset_complete.html", struct {
		Username string
	}{
		Username: s.currentUsername(r),
	})
}
