package storage

import (
	"context"
	"errors"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// ErrNotFound возвращается при запросе несуществующей сессии.
var ErrNotFound = errors.New("session not found")

// Store — контракт хранилища сессий. Ядру нужны только Load/Save:
// прочитать полную копию агрегата, записать его обратно целиком.
// Семантика записи — last-writer-wins по ID сессии; никакого
// оптимистичного контроля версий на этом уровне нет.
type Store interface {
	// Load возвращает копию сессии. Мутации результата не видны
	// хранилищу, пока не вызван Save.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Save перезаписывает сессию целиком (upsert).
	Save(ctx context.Context, sess *domain.Session) error

	// List возвращает все сессии (для debug-эндпоинтов и dev-режима).
	List(ctx context.Context) ([]*domain.Session, error)
}
