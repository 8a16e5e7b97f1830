package network

import (
	"sync"
	"time"
)

// ConnectionEntry — эфемерная запись о живом подключении.
// Живет ровно столько, сколько физическое соединение; не персистится.
type ConnectionEntry struct {
	ConnID      string    `json:"connId"`
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId"`
	CharacterID string    `json:"characterId,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	IsModerator bool      `json:"isModerator"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Registry — реестр подключений, общий для всех сессий процесса.
// Два индекса (по connID и по sessionID) меняются строго вместе
// под одним критическим участком, иначе один из них повиснет.
type Registry struct {
	mu        sync.RWMutex
	byConn    map[string]*ConnectionEntry
	bySession map[string]map[string]*ConnectionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		byConn:    make(map[string]*ConnectionEntry),
		bySession: make(map[string]map[string]*ConnectionEntry),
	}
}

// Join регистрирует подключение. Несколько устройств одного пользователя
// сосуществуют: порядок их Join не гарантируется и не важен.
func (r *Registry) Join(entry ConnectionEntry) {
	entry.ConnectedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byConn[entry.ConnID] = &entry

	conns, ok := r.bySession[entry.SessionID]
	if !ok {
		conns = make(map[string]*ConnectionEntry)
		r.bySession[entry.SessionID] = conns
	}
	conns[entry.ConnID] = &entry
}

// Leave снимает подключение с учета и возвращает его запись.
// Последнее подключение сессии подчищает и индекс по сессии.
func (r *Registry) Leave(connID string) *ConnectionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byConn[connID]
	if !ok {
		return nil
	}
	delete(r.byConn, connID)

	if conns, ok := r.bySession[entry.SessionID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(r.bySession, entry.SessionID)
		}
	}
	return entry
}

// Get возвращает запись по connID.
func (r *Registry) Get(connID string) *ConnectionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.byConn[connID]; ok {
		copied := *entry
		return &copied
	}
	return nil
}

// ListPlayers возвращает все подключения сессии (включая мастера).
func (r *Registry) ListPlayers(sessionID string) []ConnectionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.bySession[sessionID]
	out := make([]ConnectionEntry, 0, len(conns))
	for _, entry := range conns {
		out = append(out, *entry)
	}
	return out
}

// IsOnline: пользователь онлайн, если у него есть ХОТЬ ОДНО подключение.
func (r *Registry) IsOnline(sessionID, userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.bySession[sessionID] {
		if entry.UserID == userID {
			return true
		}
	}
	return false
}
