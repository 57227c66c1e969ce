package web

import (
	"net/http"
	"strconv"

	"quotes-server/internal/database"
	"quotes-server/internal/models"
)

// topQuotesCount is how many quotes the most-recent listing shows.
const topQuotesCount = 10

type quoteListData struct {
	Username string
	Page     *database.QuotePage
	Quotes   []models.Quote
	Tags     []string
	Query    string
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) ListQuotesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.ListQuotesPage(r.Context(), pageParam(r))
	if err != nil {
		s.log.Errorw("failed to list quotes", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	uniqueTags, err := s.store.UniqueTags(r.Context())
	if err != nil {
		s.log.Errorw("failed to collect tags", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "quote_list.html", quoteListData{
		Username: s.currentUsername(r),
		Page:     page,
		Quotes:   page.Quotes,
		Tags:     uniqueTags,
	})
}

func (s *Server) TopQuotesHandler(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.TopQuotes(r.Context(), topQuotesCount)
	if err != nil {
		s.log.Errorw("failed to list top quotes", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	uniqueTags, err := s.store.UniqueTags(r.Context())
	if err != nil {
		s.log.Errorw("failed to collect tags", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "quote_list.html", quoteListData{
		Username: s.currentUsername(r),
		Quotes:   quotes,
		Tags:     uniqueTags,
	})
}

// SearchQuotesHandler filters quotes by a case-insensitive substring of the
// tags field. An empty query falls back to the full listing.
func (s *Server) SearchQuotesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	page, err := s.store.SearchQuotesPage(r.Context(), query, pageParam(r))
	if err != nil {
		s.log.Errorw("quote search failed", "query", query, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	uniqueTags, err := s.store.UniqueTags(r.Context())
	if err != nil {
		s.log.Errorw("failed to collect tags", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "quote_list.html", quoteListData{
		Username: s.currentUsername(r),
		Page:     page,
		Quotes:   page.Quotes,
		Tags:     uniqueTags,
		Query:    query,
	})
}

type addQuoteData struct {
	Username string
	Form     QuoteForm
	Errors   map[string]string
	Authors  []models.Author
}

func (s *Server) AddQuoteHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := s.store.ListAuthors(r.Context())
	if err != nil {
		s.log.Errorw("failed to list authors", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := addQuoteData{
		Username: s.currentUsername(r),
		Authors:  authors,
	}

	if r.Method == http.MethodGet {
		s.render(w, "add_quote.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	authorID, _ := strconv.ParseInt(r.PostFormValue("author_id"), 10, 64)
	data.Form = QuoteForm{
		Text:     r.PostFormValue("text"),
		Tags:     r.PostFormValue("tags"),
		AuthorID: authorID,
	}

	if err := s.validate.Struct(data.Form); err != nil {
		data.Errors = formErrors(err)
		s.render(w, "add_quote.html", data)
		return
	}

	_, err = s.store.CreateQuote(r.Context(), database.CreateQuoteParams{
		Text:     data.Form.Text,
		Tags:     data.Form.Tags,
		AuthorID: data.Form.AuthorID,
	})
	if err != nil {
		s.log.Errorw("failed to create quote", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
