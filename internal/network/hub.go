package network

import (
	"sync"

	"github.com/peakflames/riddle-sub001/pkg/api"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

// subscriber — личный канал одного подключения плюс его роль,
// по которой решается попадание в аудиторию события.
type subscriber struct {
	ch          chan api.ServerEvent
	isModerator bool
}

// Hub занимается только рассылкой событий подписчикам.
// Publish — fire-and-forget: отправитель не ждет доставки, переполненный
// канал молча роняет событие (клиент с забитым буфером сам виноват).
type Hub struct {
	mu sync.RWMutex
	// sessionID -> connID -> подписчик
	sessions map[string]map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[string]*subscriber),
	}
}

// Subscribe создает личный канал для подключения.
// Повторная подписка того же connID закрывает старый канал.
func (h *Hub) Subscribe(sessionID, connID string, isModerator bool) chan api.ServerEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		conns = make(map[string]*subscriber)
		h.sessions[sessionID] = conns
	}
	if old, ok := conns[connID]; ok {
		close(old.ch)
	}

	ch := make(chan api.ServerEvent, 100)
	conns[connID] = &subscriber{ch: ch, isModerator: isModerator}
	return ch
}

// Unsubscribe удаляет подписчика. Последний подписчик сессии
// убирает и запись о самой сессии.
func (h *Hub) Unsubscribe(sessionID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	if sub, ok := conns[connID]; ok {
		close(sub.ch)
		delete(conns, connID)
	}
	if len(conns) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Publish доставляет событие его аудитории внутри сессии.
// Событие вне таблицы маршрутизации не уходит никому — это защита от
// опечатки в имени, которая иначе молча раздала бы данные всем.
func (h *Hub) Publish(sessionID, event string, payload any) {
	scope, ok := ScopeFor(event)
	if !ok {
		logger.Log.WithField("event", event).Warn("publish of unrouted event dropped")
		return
	}

	msg := api.ServerEvent{
		Event:     event,
		SessionID: sessionID,
		Payload:   payload,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.sessions[sessionID] {
		switch scope {
		case ScopePlayers:
			if sub.isModerator {
				continue
			}
		case ScopeModerator:
			if !sub.isModerator {
				continue
			}
		}

		select {
		case sub.ch <- msg:
		default:
			logger.Log.WithField("event", event).Debug("subscriber channel full, event dropped")
		}
	}
}

// SubscriberCount возвращает количество подписчиков сессии.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}
