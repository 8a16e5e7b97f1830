package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine"
	"github.com/peakflames/riddle-sub001/internal/version"
	"github.com/peakflames/riddle-sub001/pkg/api"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

// Server — HTTP/WebSocket обвязка вокруг диспетчера.
type Server struct {
	Engine *engine.Service
	Port   string
}

func New(eng *engine.Service, port string) *Server {
	return &Server{
		Engine: eng,
		Port:   port,
	}
}

// Run запускает HTTP сервер.
func (s *Server) Run() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())

	router.GET("/health", s.handleHealth)
	router.GET("/version", s.handleVersion)
	router.GET("/ws", s.handleWS)

	// Заведение новой сессии (подготовка игры до подключения клиентов)
	router.POST("/api/sessions", s.handleCreateSession)

	// Точка входа слоя модели: одна операция = один POST
	router.POST("/api/sessions/:id/command", s.handleCommand)

	debug := NewDebugHandler(s.Engine)
	debug.RegisterRoutes(router)

	logger.Log.Infof("🎲 Riddle session server running on :%s", s.Port)
	return router.Run(":" + s.Port)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Разрешаем запросы с фронтенда
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// handleCreateSession создает сессию из полного JSON-документа.
// Без этой точки входа свежий сервер не может получить ни одной сессии.
func (s *Server) handleCreateSession(c *gin.Context) {
	var sess domain.Session
	if err := c.ShouldBindJSON(&sess); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session body"})
		return
	}

	if err := s.Engine.CreateSession(c.Request.Context(), &sess); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, engine.ErrSessionExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// handleCommand выполняет одну операцию модели против сессии.
// HTTP-статус всегда 200 при корректном конверте: ошибки операций —
// часть текстового результата, их читает модель, а не HTTP-клиент.
func (s *Server) handleCommand(c *gin.Context) {
	sessionID := c.Param("id")

	var req api.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Operation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation is required"})
		return
	}
	if len(req.Arguments) == 0 {
		req.Arguments = json.RawMessage(`{}`)
	}

	result := s.Engine.Execute(c.Request.Context(), sessionID, req.Operation, req.Arguments)
	c.JSON(http.StatusOK, api.CommandResponse{Result: result})
}

// handleWS апгрейдит соединение и запускает пампы клиента.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := NewClient(s.Engine, conn)
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.Info())
}
