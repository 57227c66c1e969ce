package api

import (
	"encoding/json"
	"net/http"

	"quotes-server/internal/config"
	"quotes-server/internal/database"
	"quotes-server/internal/logger"
)

type Server struct {
	config *config.Config
	store  *database.Store
	log    *logger.Logger
}

func NewServer(cfg *config.Config, store *database.Store, log *logger.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store,
		log:    log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
