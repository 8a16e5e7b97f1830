package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/peakflames/riddle-sub001/internal/network"
	"github.com/peakflames/riddle-sub001/internal/systems"
	"github.com/peakflames/riddle-sub001/pkg/api"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

// Жизненный цикл подключений. Сюда приходит WebSocket-слой:
// он не трогает ни реестр, ни хаб напрямую.

// JoinParams — параметры подключения клиента к сессии.
type JoinParams struct {
	ConnID       string
	SessionID    string
	UserID       string
	CharacterRef string
	DisplayName  string
	IsModerator  bool
}

// JoinSession регистрирует подключение и возвращает личный канал событий.
// Непустой CharacterRef привязывает игрока к персонажу (claim);
// мастер узнает и о подключении, и о привязке.
func (s *Service) JoinSession(ctx context.Context, p JoinParams) (chan api.ServerEvent, error) {
	if p.SessionID == "" || p.UserID == "" {
		return nil, fmt.Errorf("sessionId and userId are required")
	}

	var claimed *api.CharacterClaimedEvent
	var characterID string

	// Привязка к персонажу мутирует сессию — проходит через замок и Save.
	err := func() error {
		lock := s.sessionLock(p.SessionID)
		lock.Lock()
		defer lock.Unlock()

		sess, err := s.Store.Load(ctx, p.SessionID)
		if err != nil {
			return fmt.Errorf("session %q not found", p.SessionID)
		}

		if p.CharacterRef == "" {
			return nil
		}
		ch := systems.ResolveCharacter(sess, p.CharacterRef)
		if ch == nil {
			return fmt.Errorf("character %q not found", p.CharacterRef)
		}

		ch.PlayerID = p.UserID
		ch.PlayerName = p.DisplayName
		characterID = ch.ID

		if err := s.Store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to save session: %v", err)
		}
		claimed = &api.CharacterClaimedEvent{
			CharacterID:   ch.ID,
			CharacterName: ch.Name,
			PlayerID:      p.UserID,
			PlayerName:    p.DisplayName,
		}
		return nil
	}()
	if err != nil {
		return nil, err
	}

	s.Registry.Join(network.ConnectionEntry{
		ConnID:      p.ConnID,
		SessionID:   p.SessionID,
		UserID:      p.UserID,
		CharacterID: characterID,
		DisplayName: p.DisplayName,
		IsModerator: p.IsModerator,
	})
	ch := s.Hub.Subscribe(p.SessionID, p.ConnID, p.IsModerator)

	logger.Log.WithFields(logrus.Fields{
		"session":   p.SessionID,
		"user":      p.UserID,
		"moderator": p.IsModerator,
	}).Info("Client joined session")

	s.Hub.Publish(p.SessionID, network.EventPlayerConnected, api.PlayerPresenceEvent{
		PlayerID:    p.UserID,
		DisplayName: p.DisplayName,
		CharacterID: characterID,
	})
	if claimed != nil {
		s.Hub.Publish(p.SessionID, network.EventCharacterClaimed, *claimed)
	}

	return ch, nil
}

// LeaveSession снимает подключение с учета. Безопасно звать повторно.
func (s *Service) LeaveSession(connID string) {
	entry := s.Registry.Leave(connID)
	if entry == nil {
		return
	}
	s.Hub.Unsubscribe(entry.SessionID, connID)

	logger.Log.WithFields(logrus.Fields{
		"session": entry.SessionID,
		"user":    entry.UserID,
	}).Info("Client left session")

	s.Hub.Publish(entry.SessionID, network.EventPlayerDisconnected, api.PlayerPresenceEvent{
		PlayerID:    entry.UserID,
		DisplayName: entry.DisplayName,
		CharacterID: entry.CharacterID,
	})
}

// SubmitChoice пересылает выбор игрока мастеру.
// Состояние сессии не трогается: что делать с выбором, решает мастер (и модель).
func (s *Service) SubmitChoice(connID string, sub api.ChoiceSubmission) error {
	entry := s.Registry.Get(connID)
	if entry == nil {
		return fmt.Errorf("connection is not joined to a session")
	}
	if sub.Choice == "" {
		return fmt.Errorf("choice is required")
	}

	s.Hub.Publish(entry.SessionID, network.EventChoiceSubmitted, api.ChoiceSubmittedEvent{
		PromptID:   sub.PromptID,
		PlayerID:   entry.UserID,
		PlayerName: entry.DisplayName,
		Choice:     sub.Choice,
	})
	return nil
}
