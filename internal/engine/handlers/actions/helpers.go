package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/network"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// errEntityNotFound — единый текст для нерезолвящейся ссылки.
// Хендлеры никогда молча не игнорируют неизвестную сущность.
func errEntityNotFound(ref string) error {
	return fmt.Errorf("character or combatant %q not found", ref)
}

// mdTable собирает markdown-таблицу. Результаты операций читает модель,
// поэтому табличный формат — часть контракта, а не украшение.
func mdTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	for _, row := range rows {
		// Пустые ячейки заполняем прочерком, чтобы таблица не ломалась
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(row) && row[i] != "" {
				cells[i] = row[i]
			} else {
				cells[i] = "-"
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// characterEvent — снимок персонажа для рассылки.
func characterEvent(ch *domain.Character) api.CharacterUpdatedEvent {
	return api.CharacterUpdatedEvent{
		ID:          ch.ID,
		Name:        ch.Name,
		CurrentHP:   ch.CurrentHP,
		MaxHP:       ch.MaxHP,
		Conditions:  append([]string(nil), ch.Conditions...),
		StatusNotes: ch.StatusNotes,
	}
}

// deathSaveEvent — снимок под-состояния умирания.
func deathSaveEvent(ch *domain.Character) api.DeathSaveEvent {
	return api.DeathSaveEvent{
		CharacterID:   ch.ID,
		CharacterName: ch.Name,
		Successes:     ch.DeathSaveSuccesses,
		Failures:      ch.DeathSaveFailures,
		IsStable:      ch.IsStable(),
		IsDead:        ch.IsDead(),
	}
}

// combatStateEvent — полный снимок боя для рассылки и для get_combat_state.
func combatStateEvent(enc *domain.CombatEncounter) api.CombatStateEvent {
	ev := api.CombatStateEvent{
		Round:            enc.Round,
		CurrentTurnIndex: enc.CurrentTurnIndex,
		ActiveID:         enc.ActiveCombatantID(),
	}
	for _, id := range enc.TurnOrder {
		cd := enc.Combatants[id]
		if cd == nil {
			continue
		}
		ev.Order = append(ev.Order, api.CombatantView{
			ID:          cd.ID,
			Name:        cd.Name,
			Type:        string(cd.Type),
			Initiative:  cd.Initiative,
			CurrentHP:   cd.CurrentHP,
			MaxHP:       cd.MaxHP,
			IsDefeated:  cd.IsDefeated,
			IsSurprised: enc.Surprised[cd.ID],
		})
	}
	return ev
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func boolWord(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// Имена событий переэкспортируются, чтобы хендлеры не тянули network напрямую
// в каждую строку (таблица маршрутизации все равно живет в network).
const (
	evNarration        = network.EventNarration
	evChoices          = network.EventChoices
	evLogAppended      = network.EventLogAppended
	evRollLogged       = network.EventRollLogged
	evCharacterUpdated = network.EventCharacterUpdated
	evDeathSave        = network.EventDeathSave
	evCombatStarted    = network.EventCombatStarted
	evCombatEnded      = network.EventCombatEnded
	evTurnAdvanced     = network.EventTurnAdvanced
	evCombatantUpdated = network.EventCombatantUpdated
	evSceneChanged     = network.EventSceneChanged
	evPulse            = network.EventPulse
	evAnchor           = network.EventAnchor
	evInsight          = network.EventInsight
)
