package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// MemoryStore — потокобезопасное in-memory хранилище.
// Используется в тестах и в dev-режиме без файла БД.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]json.RawMessage),
	}
}

// Сессии храним сериализованными: Load всегда отдает независимую копию,
// и никакая мутация у вызывающего не протечет в хранилище мимо Save.
func (m *MemoryStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	raw, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (m *MemoryStore) Save(ctx context.Context, sess *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sess.ID == "" {
		return fmt.Errorf("session id is required")
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	m.mu.Lock()
	m.sessions[sess.ID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Session, 0, len(m.sessions))
	for id, raw := range m.sessions {
		var sess domain.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
		out = append(out, &sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
