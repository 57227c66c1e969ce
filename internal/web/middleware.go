package web

import "net/http"

const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
)

// RequireSession gates a handler behind a logged-in browser session.
// Anonymous requests are turned away to the login page before the handler
// (and any form handling inside it) runs.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessions.Get(r, sessionName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if _, ok := session.Values[sessionKeyUserID].(int64); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUsername returns the logged-in username for the navbar, or ""
// for anonymous visitors.
func (s *Server) currentUsername(r *http.Request) string {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	username, _ := session.Values[sessionKeyUsername].(string)
	return username
}

func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, userID int64, username string) error {
	session, _ := s.sessions.Get(r, sessionName)
	session.Values[sessionKeyUserID] = userID
	session.Values[sessionKeyUsername] = username
	return session.Save(r, w)
}

func (s *Server) destroySession(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
