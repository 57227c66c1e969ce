package web

import (
	"context"
	"log"
	"net/http"
	"os"
	"testing"

	"quotes-server/internal/config"
	"quotes-server/internal/database"
	"quotes-server/internal/logger"
	"quotes-server/internal/mail"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testServer *Server
	testStore  *database.Store
	testPool   *pgxpool.Pool
	testRouter http.Handler
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_web_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := testPool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	testStore = database.NewStore(testPool)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "web_test_secret"},
		Session: config.SessionConfig{Secret: "web_test_session_secret"},
		AppHost: "http://localhost:8080",
	}

	mailer, err := mail.NewClient("", "noreply@example.com", "Quotes Server", true)
	if err != nil {
		log.Fatalf("Could not create mail client: %s", err)
	}

	testServer, err = NewServer(cfg, testStore, mailer, logger.Get("error"))
	if err != nil {
		log.Fatalf("Could not create web server: %s", err)
	}
	testRouter = newTestRouter(testServer)

	os.Exit(m.Run())
}

// newTestRouter mirrors the route wiring in cmd/server/main.go.
func newTestRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.HomeHandler)
	r.Get("/quotes", s.ListQuotesHandler)
	r.Get("/quotes/top", s.TopQuotesHandler)
	r.Get("/authors", s.ListAuthorsHandler)
	r.Get("/authors/{authorID}", s.AuthorDetailHandler)
	r.Get("/search", s.SearchQuotesHandler)

	r.Get("/register", s.RegisterHandler)
	r.Post("/register", s.RegisterHandler)
	r.Get("/login", s.LoginHandler)
	r.Post("/login", s.LoginHandler)

	r.Get("/password-reset", s.ResetRequestHandler)
	r.Post("/password-reset", s.ResetRequestHandler)
	r.Get("/password-reset/sent", s.ResetSentHandler)
	r.Get("/password-reset/confirm", s.ResetConfirmHandler)
	r.Post("/password-reset/confirm", s.ResetConfirmHandler)
	r.Get("/password-reset/complete", s.ResetCompleteHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireSession)
		r.Get("/logout", s.LogoutHandler)
		r.Get("/quotes/add", s.AddQuoteHandler)
		r.Post("/quotes/add", s.AddQuoteHandler)
		r.Get("/authors/add", s.AddAuthorHandler)
		r.Post("/authors/add", s.AddAuthorHandler)
	})

	return r
}
