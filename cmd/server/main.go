// @title           Quotes Server API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"quotes-server/internal/api"
	"quotes-server/internal/config"
	"quotes-server/internal/database"
	"quotes-server/internal/logger"
	"quotes-server/internal/mail"
	"quotes-server/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "quotes-server/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	zlog := logger.Get(cfg.Log.Level)
	defer zlog.Sync()

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		zlog.Fatalw("could not connect to database", "error", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		zlog.Fatalw("could not ping database", "error", err)
	}
	zlog.Infow("connected to database")

	mailer, err := mail.NewClient(cfg.SMTP.Host, cfg.SMTP.From, cfg.SMTP.Name, cfg.SMTP.Disabled)
	if err != nil {
		zlog.Fatalw("could not initialize mail client", "error", err)
	}
	if !mailer.IsEnabled() {
		zlog.Warnw("mail delivery disabled, reset emails will not be sent")
	}

	store := database.NewStore(dbpool)
	apiServer := api.NewServer(cfg, store, zlog)
	webServer, err := web.NewServer(cfg, store, mailer, zlog)
	if err != nil {
		zlog.Fatalw("could not initialize web server", "error", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/health", apiServer.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Token-authenticated JSON API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))

		r.Post("/auth/token", apiServer.TokenHandler)
		r.Post("/users", apiServer.CreateUserHandler)

		r.Group(func(r chi.Router) {
			r.Use(apiServer.AuthMiddleware)
			r.Get("/me", apiServer.GetCurrentUserHandler)
		})
	})

	// Session-authenticated HTML site.
	r.Get("/", webServer.HomeHandler)
	r.Get("/quotes", webServer.ListQuotesHandler)
	r.Get("/quotes/top", webServer.TopQuotesHandler)
	r.Get("/authors", webServer.ListAuthorsHandler)
	r.Get("/authors/{authorID}", webServer.AuthorDetailHandler)
	r.Get("/search", webServer.SearchQuotesHandler)

	r.Get("/register", webServer.RegisterHandler)
	r.Post("/register", webServer.RegisterHandler)
	r.Get("/login", webServer.LoginHandler)
	r.Post("/login", webServer.LoginHandler)

	r.Get("/password-reset", webServer.ResetRequestHandler)
	r.Post("/password-reset", webServer.ResetRequestHandler)
	r.Get("/password-reset/sent", webServer.ResetSentHandler)
	r.Get("/password-reset/confirm", webServer.ResetConfirmHandler)
	r.Post("/password-reset/confirm", webServer.ResetConfirmHandler)
	r.Get("/password-reset/complete", webServer.ResetCompleteHandler)

	r.Group(func(r chi.Router) {
		r.Use(webServer.RequireSession)
		r.Get("/logout", webServer.LogoutHandler)
		r.Get("/quotes/add", webServer.AddQuoteHandler)
		r.Post("/quotes/add", webServer.AddQuoteHandler)
		r.Get("/authors/add", webServer.AddAuthorHandler)
		r.Post("/authors/add", webServer.AddAuthorHandler)
	})

	zlog.Infow("starting server", "addr", ":8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
