package actions

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/internal/systems"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// UpdateCharacterStateArgs — "обнови одно именованное свойство одной сущности".
// Key-дискриминатор несет и обычные свойства, и под-протокол умирания:
// так устроен контракт вызывающей стороны, отдельных операций у неё нет.
type UpdateCharacterStateArgs struct {
	Character string          `json:"character"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
}

func (a UpdateCharacterStateArgs) Validate() error {
	if strings.TrimSpace(a.Character) == "" {
		return fmt.Errorf("character is required")
	}
	if strings.TrimSpace(a.Key) == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}

// HandleUpdateCharacterState применяет одно изменение к персонажу или участнику боя.
func HandleUpdateCharacterState(ctx *handlers.Context, args UpdateCharacterStateArgs) (handlers.Result, error) {
	ch, cd := systems.ResolveEntity(ctx.Session, args.Character)
	if ch == nil && cd == nil {
		return handlers.Result{}, errEntityNotFound(args.Character)
	}

	key := strings.ToLower(strings.TrimSpace(args.Key))

	// Участник боя без Character (враг/союзник): поддерживаем только HP.
	if ch == nil {
		if key != "current_hp" {
			return handlers.Result{}, fmt.Errorf("combatant %s supports only current_hp updates", cd.Name)
		}
		return applyCombatantHP(ctx, cd, args.Value)
	}

	switch key {
	case "current_hp":
		return applyCharacterHP(ctx, ch, args.Value)

	case "conditions":
		conds, err := decodeStringList(args.Value)
		if err != nil {
			return handlers.Result{}, fmt.Errorf("conditions: %v", err)
		}
		ch.Conditions = nil
		for _, c := range conds {
			ch.AddCondition(strings.TrimSpace(c))
		}
		return handlers.Mutation(
			fmt.Sprintf("%s conditions set to [%s].", ch.Name, strings.Join(ch.Conditions, ", ")),
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
		), nil

	case "add_condition":
		cond, err := decodeString(args.Value)
		if err != nil || cond == "" {
			return handlers.Result{}, fmt.Errorf("add_condition requires a non-empty string value")
		}
		ch.AddCondition(cond)
		return handlers.Mutation(
			fmt.Sprintf("%s gains condition %s.", ch.Name, cond),
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
		), nil

	case "remove_condition":
		cond, err := decodeString(args.Value)
		if err != nil || cond == "" {
			return handlers.Result{}, fmt.Errorf("remove_condition requires a non-empty string value")
		}
		ch.RemoveCondition(cond)
		return handlers.Mutation(
			fmt.Sprintf("%s loses condition %s.", ch.Name, cond),
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
		), nil

	case "status_notes":
		notes, err := decodeString(args.Value)
		if err != nil {
			return handlers.Result{}, fmt.Errorf("status_notes requires a string value")
		}
		ch.StatusNotes = notes
		return handlers.Mutation(
			fmt.Sprintf("%s status notes updated.", ch.Name),
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
		), nil

	case "initiative":
		v, err := decodeInt(args.Value)
		if err != nil {
			return handlers.Result{}, fmt.Errorf("initiative: %v", err)
		}
		clamped, wasClamped := systems.ClampInitiative(v)
		ch.Initiative = clamped
		syncCombatantMirror(ctx.Session, ch)
		text := fmt.Sprintf("%s initiative set to %d.", ch.Name, clamped)
		if wasClamped {
			text += fmt.Sprintf(" Warning: %d was out of range and clamped.", v)
		}
		return handlers.Mutation(text,
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
		), nil

	case "death_save_success":
		critical := false
		if s, err := decodeString(args.Value); err == nil {
			critical = strings.EqualFold(strings.TrimSpace(s), "critical")
		}
		if err := systems.DeathSaveSuccess(ch, critical); err != nil {
			return handlers.Result{}, err
		}
		text := fmt.Sprintf("%s: death save success (%d/3).", ch.Name, ch.DeathSaveSuccesses)
		if critical {
			text = fmt.Sprintf("%s rolled a natural 20 and regains consciousness with 1 HP!", ch.Name)
			syncCombatantMirror(ctx.Session, ch)
		} else if ch.IsStable() {
			text = fmt.Sprintf("%s is now stable (3 successes).", ch.Name)
		}
		return handlers.Mutation(text,
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
			handlers.Event{Name: evDeathSave, Payload: deathSaveEvent(ch)},
		), nil

	case "death_save_failure":
		amount := 1
		if v, err := decodeInt(args.Value); err == nil && v > 0 {
			amount = v
		}
		if err := systems.DeathSaveFailure(ch, amount); err != nil {
			return handlers.Result{}, err
		}
		text := fmt.Sprintf("%s: death save failure (%d/3).", ch.Name, ch.DeathSaveFailures)
		if ch.IsDead() {
			text = fmt.Sprintf("%s has died (3 failures).", ch.Name)
		}
		return handlers.Mutation(text,
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
			handlers.Event{Name: evDeathSave, Payload: deathSaveEvent(ch)},
		), nil

	case "stabilize":
		if err := systems.Stabilize(ch); err != nil {
			return handlers.Result{}, err
		}
		return handlers.Mutation(
			fmt.Sprintf("%s has been stabilized.", ch.Name),
			handlers.Event{Name: evCharacterUpdated, Payload: characterEvent(ch)},
			handlers.Event{Name: evDeathSave, Payload: deathSaveEvent(ch)},
		), nil

	default:
		return handlers.Result{}, fmt.Errorf("unknown key %q for update_character_state", args.Key)
	}
}

// applyCharacterHP меняет HP персонажа партии.
// Пересечение нуля ВСЕГДА дает death_save событие, даже если операция
// была обычным апдейтом HP: зависимые экраны обязаны увидеть под-состояние.
func applyCharacterHP(ctx *handlers.Context, ch *domain.Character, raw json.RawMessage) (handlers.Result, error) {
	newHP, err := decodeInt(raw)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("current_hp: %v", err)
	}

	crossing := systems.SetCharacterHP(ch, newHP)
	syncCombatantMirror(ctx.Session, ch)

	events := []handlers.Event{
		{Name: evCharacterUpdated, Payload: characterEvent(ch)},
	}
	text := fmt.Sprintf("%s HP is now %d/%d.", ch.Name, ch.CurrentHP, ch.MaxHP)

	switch crossing {
	case systems.CrossingDown:
		events = append(events, handlers.Event{Name: evDeathSave, Payload: deathSaveEvent(ch)})
		text = fmt.Sprintf("%s drops to %d HP and falls unconscious! Death saves begin.", ch.Name, ch.CurrentHP)
	case systems.CrossingUp:
		events = append(events, handlers.Event{Name: evDeathSave, Payload: deathSaveEvent(ch)})
		text = fmt.Sprintf("%s is back on their feet with %d/%d HP.", ch.Name, ch.CurrentHP, ch.MaxHP)
	}

	return handlers.Mutation(text, events...), nil
}

// applyCombatantHP меняет HP не-партийного участника. Ноль — поражение,
// последний побежденный враг завершает бой автоматически.
func applyCombatantHP(ctx *handlers.Context, cd *domain.CombatantDetails, raw json.RawMessage) (handlers.Result, error) {
	newHP, err := decodeInt(raw)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("current_hp: %v", err)
	}

	enc := ctx.Session.Combat
	defeated, ended := systems.SetCombatantHP(enc, cd, newHP)

	if !defeated {
		return handlers.Mutation(
			fmt.Sprintf("%s HP is now %d/%d.", cd.Name, cd.CurrentHP, cd.MaxHP),
			handlers.Event{Name: evCombatantUpdated, Payload: combatStateEvent(enc)},
		), nil
	}

	if ended {
		ctx.Session.Combat = nil
		return handlers.Mutation(
			fmt.Sprintf("%s is defeated! No enemies remain — combat has ended.", cd.Name),
			handlers.Event{Name: evCombatEnded, Payload: api.CombatEndedEvent{Reason: "all enemies defeated"}},
		), nil
	}

	return handlers.Mutation(
		fmt.Sprintf("%s is defeated and removed from the turn order.", cd.Name),
		handlers.Event{Name: evCombatantUpdated, Payload: combatStateEvent(enc)},
	), nil
}

// syncCombatantMirror держит зеркальную запись персонажа в активном бою
// согласованной с Character (HP и инициатива показываются из энкаунтера).
func syncCombatantMirror(sess *domain.Session, ch *domain.Character) {
	if sess.Combat == nil {
		return
	}
	if cd, ok := sess.Combat.Combatants[ch.ID]; ok {
		cd.CurrentHP = ch.CurrentHP
		cd.MaxHP = ch.MaxHP
		cd.Initiative = ch.Initiative
	}
}

// --- декодеры значений value ---
// Модель присылает value в произвольной форме; числа бывают строками.

// decodeInt требует настоящее число. null и пустая строка — ошибка,
// а не ноль: "value": null для current_hp не должен укладывать персонажа.
func decodeInt(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("a numeric value is required, got %s", orNullWord(s))
	}
	if unquoted, err := strconv.Unquote(s); err == nil && strings.TrimSpace(unquoted) == "" {
		return 0, fmt.Errorf("a numeric value is required, got an empty string")
	}
	var v api.FlexInt
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v.Int(), nil
}

func orNullWord(s string) string {
	if s == "" {
		return "nothing"
	}
	return s
}

func decodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("a string value is required")
	}
	return s, nil
}

// decodeStringList принимает и JSON-массив, и строку с запятыми.
func decodeStringList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("expected an array of strings or a comma-separated string")
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return strings.Split(s, ","), nil
}
