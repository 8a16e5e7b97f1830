package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/internal/systems"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// AppendLogArgs — запись в журнал повествования.
type AppendLogArgs struct {
	Text       string `json:"text"`
	Importance string `json:"importance,omitempty"` // normal, important, critical
}

func (a AppendLogArgs) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func HandleAppendLog(ctx *handlers.Context, args AppendLogArgs) (handlers.Result, error) {
	importance := strings.ToLower(strings.TrimSpace(args.Importance))
	if importance == "" {
		importance = "normal"
	}

	entry := domain.LogEntry{
		ID:         uuid.NewString(),
		Text:       args.Text,
		Importance: importance,
		Timestamp:  time.Now().UnixMilli(),
	}
	ctx.Session.AppendLog(entry)

	return handlers.Mutation("Log entry recorded.",
		handlers.Event{Name: evLogAppended, Payload: api.LogAppendedEvent(entry)},
	), nil
}

// LimitArgs — общий аргумент для операций чтения журнала.
type LimitArgs struct {
	Limit api.FlexInt `json:"limit,omitempty"`
}

func HandleGetLog(ctx *handlers.Context, args LimitArgs) (handlers.Result, error) {
	limit := clampLimit(args.Limit.Int(), 20, 100)

	log := ctx.Session.Log
	if len(log) == 0 {
		return handlers.Ack("The log is empty."), nil
	}
	if len(log) > limit {
		log = log[len(log)-limit:]
	}

	var b strings.Builder
	for _, e := range log {
		ts := time.UnixMilli(e.Timestamp).UTC().Format("15:04")
		fmt.Fprintf(&b, "- [%s][%s] %s\n", ts, e.Importance, e.Text)
	}
	return handlers.Ack(b.String()), nil
}

// LogRollArgs — фиксация броска. RollID нужен для дедупликации:
// модель иногда повторяет вызов, второй раз бросок не записывается.
type LogRollArgs struct {
	Character string      `json:"character"`
	CheckType string      `json:"checkType"`
	Result    api.FlexInt `json:"result"`
	Outcome   string      `json:"outcome,omitempty"`
	RollID    string      `json:"rollId,omitempty"`
}

func (a LogRollArgs) Validate() error {
	if strings.TrimSpace(a.Character) == "" {
		return fmt.Errorf("character is required")
	}
	if strings.TrimSpace(a.CheckType) == "" {
		return fmt.Errorf("checkType is required")
	}
	return nil
}

func HandleLogRoll(ctx *handlers.Context, args LogRollArgs) (handlers.Result, error) {
	name := args.Character
	var charID string
	ch, cd := systems.ResolveEntity(ctx.Session, args.Character)
	switch {
	case ch != nil:
		name, charID = ch.Name, ch.ID
	case cd != nil:
		name, charID = cd.Name, cd.ID
	}
	// Неизвестное имя не фатально: бросок мог сделать безымянный NPC

	roll := domain.RollResult{
		ID:            args.RollID,
		CharacterID:   charID,
		CharacterName: name,
		CheckType:     args.CheckType,
		Result:        args.Result.Int(),
		Outcome:       args.Outcome,
		Timestamp:     time.Now().UnixMilli(),
	}
	if roll.ID == "" {
		roll.ID = uuid.NewString()
	}

	if !ctx.Session.AddRoll(roll) {
		// Повтор: состояние не трогаем, событие не шлем
		return handlers.Ack(fmt.Sprintf("Roll %s already recorded, ignored.", roll.ID)), nil
	}

	return handlers.Mutation(
		fmt.Sprintf("Recorded %s %s: %d (%s).", name, roll.CheckType, roll.Result, orDash(roll.Outcome)),
		handlers.Event{Name: evRollLogged, Payload: api.RollLoggedEvent{
			ID:            roll.ID,
			CharacterName: roll.CharacterName,
			CheckType:     roll.CheckType,
			Result:        roll.Result,
			Outcome:       roll.Outcome,
		}},
	), nil
}

func HandleGetRollLog(ctx *handlers.Context, args LimitArgs) (handlers.Result, error) {
	limit := clampLimit(args.Limit.Int(), 20, 100)

	rolls := ctx.Session.RecentRolls
	if len(rolls) == 0 {
		return handlers.Ack("No rolls recorded yet."), nil
	}
	if len(rolls) > limit {
		rolls = rolls[:limit]
	}

	rows := make([][]string, 0, len(rolls))
	for _, r := range rolls {
		rows = append(rows, []string{
			r.CharacterName,
			r.CheckType,
			fmt.Sprintf("%d", r.Result),
			r.Outcome,
		})
	}
	return handlers.Ack(mdTable([]string{"Character", "Check", "Result", "Outcome"}, rows)), nil
}
