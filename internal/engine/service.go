package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers/actions"
	"github.com/peakflames/riddle-sub001/internal/infrastructure/storage"
	"github.com/peakflames/riddle-sub001/internal/network"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

// ErrSessionExists возвращается при попытке создать сессию с занятым ID.
var ErrSessionExists = errors.New("session already exists")

// Service — диспетчер команд. Единственная точка входа для слоя,
// который управляет языковой моделью: одна операция = один вызов Execute.
type Service struct {
	Store    storage.Store
	Hub      *network.Hub
	Registry *network.Registry

	handlers map[string]handlers.HandlerFunc

	// Пер-сессионная сериализация read-apply-write цикла.
	// Без неё конкурентные команды по одной сессии теряют апдейты
	// (last-writer-wins в хранилище). Рассылка идет уже БЕЗ замка.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewService(store storage.Store, hub *network.Hub, registry *network.Registry) *Service {
	s := &Service{
		Store:    store,
		Hub:      hub,
		Registry: registry,
		handlers: make(map[string]handlers.HandlerFunc),
		locks:    make(map[string]*sync.Mutex),
	}
	s.registerHandlers()
	return s
}

// Новые операции добавляются регистрацией в таблицу, а не правкой Execute.
func (s *Service) registerHandlers() {
	s.handlers["get_state"] = handlers.WithoutArgs(actions.HandleGetState)
	s.handlers["list_character_properties"] = handlers.WithoutArgs(actions.HandleListCharacterProperties)
	s.handlers["get_character_properties"] = handlers.WithArgs(actions.HandleGetCharacterProperties)
	s.handlers["update_character_state"] = handlers.WithArgs(actions.HandleUpdateCharacterState)

	s.handlers["append_log"] = handlers.WithArgs(actions.HandleAppendLog)
	s.handlers["get_log"] = handlers.WithArgs(actions.HandleGetLog)
	s.handlers["log_roll"] = handlers.WithArgs(actions.HandleLogRoll)
	s.handlers["get_roll_log"] = handlers.WithArgs(actions.HandleGetRollLog)

	s.handlers["display_narration"] = handlers.WithArgs(actions.HandleDisplayNarration)
	s.handlers["present_choices"] = handlers.WithArgs(actions.HandlePresentChoices)
	s.handlers["set_scene"] = handlers.WithArgs(actions.HandleSetScene)

	s.handlers["start_combat"] = handlers.WithArgs(actions.HandleStartCombat)
	s.handlers["end_combat"] = handlers.WithoutArgs(actions.HandleEndCombat)
	s.handlers["advance_turn"] = handlers.WithoutArgs(actions.HandleAdvanceTurn)
	s.handlers["get_combat_state"] = handlers.WithoutArgs(actions.HandleGetCombatState)
	s.handlers["add_combatant"] = handlers.WithArgs(actions.HandleAddCombatant)
	s.handlers["remove_combatant"] = handlers.WithArgs(actions.HandleRemoveCombatant)

	s.handlers["pulse"] = handlers.WithArgs(actions.HandlePulse)
	s.handlers["set_anchor"] = handlers.WithArgs(actions.HandleSetAnchor)
	s.handlers["trigger_insight"] = handlers.WithArgs(actions.HandleTriggerInsight)
}

// Operations возвращает имена зарегистрированных операций (для debug).
func (s *Service) Operations() []string {
	out := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		out = append(out, name)
	}
	return out
}

// Execute применяет одну операцию к сессии.
// Возвращаемое значение ВСЕГДА текст для модели. Ошибки валидации и
// состояния приходят как "Error: ..." — модель читает текст и повторяет
// вызов с исправленными аргументами. Наружу ошибки не летят.
func (s *Service) Execute(ctx context.Context, sessionID, operation string, rawArgs json.RawMessage) string {
	handler, ok := s.handlers[operation]
	if !ok {
		return fmt.Sprintf("Error: unknown operation %q.", operation)
	}

	result, err := s.runLocked(ctx, sessionID, handler, rawArgs)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"session":   sessionID,
			"operation": operation,
		}).WithError(err).Debug("operation rejected")
		return fmt.Sprintf("Error: %v.", err)
	}

	// Рассылка после записи и вне замка. Fire-and-forget: мутация уже
	// сохранена, проблемы доставки не повод ронять операцию.
	for _, ev := range result.Events {
		s.Hub.Publish(sessionID, ev.Name, ev.Payload)
	}

	return result.Text
}

// runLocked держит замок сессии ровно на цикл load -> apply -> save.
func (s *Service) runLocked(ctx context.Context, sessionID string, handler handlers.HandlerFunc, rawArgs json.RawMessage) (handlers.Result, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		if err == storage.ErrNotFound {
			return handlers.Result{}, fmt.Errorf("session %q not found", sessionID)
		}
		return handlers.Result{}, fmt.Errorf("failed to load session: %v", err)
	}

	hctx := &handlers.Context{Session: sess}
	result, err := handler(hctx, rawArgs)
	if err != nil {
		return handlers.Result{}, err
	}

	if result.Mutated {
		if err := s.Store.Save(ctx, sess); err != nil {
			// Персист не удался — операция НЕ вступила в силу, события не шлем
			logger.Log.WithField("session", sessionID).WithError(err).Error("session save failed")
			return handlers.Result{}, fmt.Errorf("failed to save session: %v", err)
		}
	}
	return result, nil
}

// CreateSession заводит новую сессию в хранилище. Пустой ID генерируется.
// Занятый ID — ошибка: молчаливой перезаписи существующей игры нет.
func (s *Service) CreateSession(ctx context.Context, sess *domain.Session) error {
	if strings.TrimSpace(sess.Name) == "" {
		return fmt.Errorf("session name is required")
	}
	if sess.ID == "" {
		sess.ID = "sess_" + uuid.NewString()[:8]
	}

	lock := s.sessionLock(sess.ID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.Store.Load(ctx, sess.ID)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrSessionExists, sess.ID)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check session: %v", err)
	}

	if err := s.Store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"session": sess.ID,
		"name":    sess.Name,
	}).Info("Session created")
	return nil
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
