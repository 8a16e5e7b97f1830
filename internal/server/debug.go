package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/peakflames/riddle-sub001/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты.
func (h *DebugHandler) RegisterRoutes(router *gin.Engine) {
	debug := router.Group("/debug")
	debug.GET("/sessions", h.handleListSessions)
	debug.GET("/sessions/:id", h.handleDumpSession)
	debug.GET("/connections/:id", h.handleConnections)
	debug.GET("/operations", h.handleOperations)
}

// /debug/sessions - список сессий и их ключевые показатели
func (h *DebugHandler) handleListSessions(c *gin.Context) {
	type SessionSummary struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Characters   int    `json:"characters"`
		LogEntries   int    `json:"log_entries"`
		CombatActive bool   `json:"combat_active"`
		Connections  int    `json:"connections"`
	}

	sessions, err := h.Service.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summary = append(summary, SessionSummary{
			ID:           sess.ID,
			Name:         sess.Name,
			Characters:   len(sess.Characters),
			LogEntries:   len(sess.Log),
			CombatActive: sess.Combat != nil,
			Connections:  h.Service.Hub.SubscriberCount(sess.ID),
		})
	}
	c.JSON(http.StatusOK, summary)
}

// /debug/sessions/:id - полный дамп сессии, включая скрытые от игроков поля
func (h *DebugHandler) handleDumpSession(c *gin.Context) {
	sess, err := h.Service.Store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// /debug/connections/:id - живые подключения сессии
func (h *DebugHandler) handleConnections(c *gin.Context) {
	entries := h.Service.Registry.ListPlayers(c.Param("id"))
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ConnectedAt.Before(entries[j].ConnectedAt)
	})
	c.JSON(http.StatusOK, entries)
}

// /debug/operations - зарегистрированные операции диспетчера
func (h *DebugHandler) handleOperations(c *gin.Context) {
	ops := h.Service.Operations()
	sort.Strings(ops)
	c.JSON(http.StatusOK, ops)
}
