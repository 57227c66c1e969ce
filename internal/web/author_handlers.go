package web

import (
	"net/http"
	"strconv"

	"quotes-server/internal/database"
	"quotes-server/internal/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := s.store.ListAuthors(r.Context())
	if err != nil {
		s.log.Errorw("failed to list authors", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "authors_list.html", struct {
		Username string
		Authors  []models.Author
	}{
		Username: s.currentUsername(r),
		Authors:  authors,
	})
}

func (s *Server) AuthorDetailHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(chi.URLParam(r, "authorID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	author, err := s.store.GetAuthor(r.Context(), authorID)
	if err != nil {
		s.log.Errorw("failed to load author", "author_id", authorID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if author == nil {
		http.NotFound(w, r)
		return
	}

	quotes, err := s.store.ListQuotesByAuthor(r.Context(), authorID)
	if err != nil {
		s.log.Errorw("failed to load author quotes", "author_id", authorID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "author_detail.html", struct {
		Username string
		Author   *models.Author
		Quotes   []models.Quote
	}{
		Username: s.currentUsername(r),
		Author:   author,
		Quotes:   quotes,
	})
}

type addAuthorData struct {
	Username string
	Form     AuthorForm
	Errors   map[string]string
}

func (s *Server) AddAuthorHandler(w http.ResponseWriter, r *http.Request) {
	data := addAuthorData{Username: s.currentUsername(r)}

	if r.Method == http.MethodGet {
		s.render(w, "add_author.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	data.Form = AuthorForm{
		Name: r.PostFormValue("name"),
		Bio:  r.PostFormValue("bio"),
	}

	if err := s.validate.Struct(data.Form); err != nil {
		data.Errors = formErrors(err)
		s.render(w, "add_author.html", data)
		return
	}

	params := database.CreateAuthorParams{Name: data.Form.Name}
	if data.Form.Bio != "" {
		params.Bio = &data.Form.Bio
	}

	if _, err := s.store.CreateAuthor(r.Context(), params); err != nil {
		s.log.Errorw("failed to create author", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
