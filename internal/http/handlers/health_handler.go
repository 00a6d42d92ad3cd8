package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// DatabaseStatus состояние соединения с базой (db.Monitor).
type DatabaseStatus interface {
	Connected() bool
	LastError() error
	CheckedAt() time.Time
}

// HubStats счётчики WebSocket hub.
type HubStats interface {
	Clients() int
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db  DatabaseStatus
	hub HubStats
	now func() time.Time
}

// NewHealthHandler создаёт новый health handler. hub может быть nil.
func NewHealthHandler(db DatabaseStatus, hub HubStats) *HealthHandler {
	return &HealthHandler{db: db, hub: hub, now: time.Now}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Database  string            `json:"database"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health и GET /api/health.
// Состояние базы берётся из монитора, сам запрос в базу не ходит.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := map[string]string{}
	resp := HealthResponse{
		Status:    "healthy",
		Message:   "SkillSwap API is running!",
		Timestamp: h.now(),
		Database:  "connected",
		Checks:    checks,
	}

	if h.db.Connected() {
		checks["database"] = "healthy"
	} else {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		checks["database"] = "unhealthy"
		if err := h.db.LastError(); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		}
	}
	if at := h.db.CheckedAt(); !at.IsZero() {
		checks["database_checked_at"] = at.UTC().Format(time.RFC3339)
	}
	if h.hub != nil {
		checks["websocket_clients"] = strconv.Itoa(h.hub.Clients())
	}

	statusCode := http.StatusOK
	if resp.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, resp)
}
