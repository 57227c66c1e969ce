// Package web serves the HTML quotes site: browsing, search, registration,
// login sessions and the password reset flow.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"quotes-server/internal/config"
	"quotes-server/internal/database"
	"quotes-server/internal/logger"
	"quotes-server/internal/mail"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templatesFS embed.FS

const sessionName = "quotes_session"

type Server struct {
	config    *config.Config
	store     *database.Store
	mailer    mail.Mailer
	sessions  *sessions.CookieStore
	templates *template.Template
	validate  *validator.Validate
	log       *logger.Logger
}

func NewServer(cfg *config.Config, store *database.Store, mailer mail.Mailer, log *logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		config:    cfg,
		store:     store,
		mailer:    mailer,
		sessions:  sessionStore,
		templates: tmpl,
		validate:  validator.New(),
		log:       log,
	}, nil
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorw("template render failed", "template", name, "error", err)
	}
}

func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", struct {
		Username string
	}{
		Username: s.currentUsername(r),
	})
}
