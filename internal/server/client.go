package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/peakflames/riddle-sub001/internal/engine"
	"github.com/peakflames/riddle-sub001/pkg/api"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и движком.
type Client struct {
	Engine *engine.Service
	Conn   *websocket.Conn
	Send   chan api.ServerEvent
	ConnID string
}

func NewClient(eng *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Engine: eng,
		Conn:   conn,
		Send:   make(chan api.ServerEvent, 256),
		ConnID: uuid.NewString(),
	}
}

// readPump читает сообщения клиента: handshake, затем сабмиты выбора.
func (c *Client) readPump() {
	defer func() {
		c.Engine.LeaveSession(c.ConnID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (JOIN)
	var join api.JoinRequest
	if err := c.Conn.ReadJSON(&join); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}

	events, err := c.Engine.JoinSession(context.Background(), engine.JoinParams{
		ConnID:       c.ConnID,
		SessionID:    join.SessionID,
		UserID:       join.UserID,
		CharacterRef: join.CharacterRef,
		DisplayName:  join.DisplayName,
		IsModerator:  join.IsModerator,
	})
	if err != nil {
		logger.Log.WithError(err).Warn("Join rejected")
		// Сообщаем причину и закрываемся: без join подписки нет
		_ = c.Conn.WriteJSON(map[string]string{"error": err.Error()})
		close(c.Send)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"conn":    c.ConnID,
		"session": join.SessionID,
		"user":    join.UserID,
	}).Info("Client connected")

	// 2. ПЕРЕСЫЛКА СОБЫТИЙ из Hub в writePump.
	go c.forwardEvents(events)

	// 3. ЦИКЛ ЧТЕНИЯ
	for {
		var msg api.ClientMessage
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("websocket read error")
			}
			break
		}

		switch msg.Type {
		case "choice":
			var sub api.ChoiceSubmission
			if err := json.Unmarshal(msg.Payload, &sub); err != nil {
				logger.Log.WithField("conn", c.ConnID).Warn("malformed choice payload")
				continue
			}
			if err := c.Engine.SubmitChoice(c.ConnID, sub); err != nil {
				logger.Log.WithError(err).Warn("choice submission rejected")
			}

		default:
			logger.Log.WithFields(logrus.Fields{
				"conn": c.ConnID,
				"type": msg.Type,
			}).Debug("unknown client message type ignored")
		}
	}
}

// forwardEvents перекачивает события из канала хаба в Send.
// Hub закрывает свой канал при Unsubscribe — тогда закрывается и Send.
// Переполненный Send не блокирует горутину: writePump мог уже умереть,
// событие дропается так же, как в самом хабе.
func (c *Client) forwardEvents(events <-chan api.ServerEvent) {
	defer close(c.Send)
	for ev := range events {
		select {
		case c.Send <- ev:
		default:
			logger.Log.WithField("conn", c.ConnID).Debug("send buffer full, event dropped")
		}
	}
}

// writePump отправляет события клиенту + Ping.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case event, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
