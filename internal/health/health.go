package health

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
)

const (
	readyTimeout = 2 * time.Second
	banner       = "Server is running"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type HealthHandler struct {
	db  Pinger
	log *logger.Logger
}

func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, banner); err != nil {
		h.log.Error("failed to write text response", "handler", "Root", "operation", "WriteText", "error", err)
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.db == nil {
		h.writeUnavailable(w, r, nil)
		return
	}
	if err := h.db.Ping(ctx, nil); err != nil {
		h.writeUnavailable(w, r, err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) writeUnavailable(w http.ResponseWriter, r *http.Request, cause error) {
	h.log.Error("Database health check failed",
		"error", cause,
		"path", r.URL.Path,
	)
	if err := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
		Status:   "unavailable",
		Database: "error",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
