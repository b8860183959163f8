package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Mongo *mongo.Client
	SQL   *sql.DB
	Log   *zap.Logger
}

// NewHandler constructs a health Handler over both store connections.
func NewHandler(mongoClient *mongo.Client, sqlDB *sql.DB, logger *zap.Logger) *Handler {
	return &Handler{
		Mongo: mongoClient,
		SQL:   sqlDB,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Mongo    string `json:"mongo"`
	Postgres string `json:"postgres"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "mongo":"connected", "postgres":"connected" }
//
// When either store is unreachable: 503 with the failing side marked
// disconnected.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Mongo:    "connected",
		Postgres: "connected",
	}

	if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Mongo = "disconnected"
		resp.Error = err.Error()
	}
	if err := h.SQL.PingContext(ctx); err != nil {
		h.Log.Error("health-check: postgres ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Postgres = "disconnected"
		resp.Error = err.Error()
	}

	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
