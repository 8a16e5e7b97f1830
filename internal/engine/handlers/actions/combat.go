package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/internal/systems"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// EnemyArg — враг в аргументах start_combat.
type EnemyArg struct {
	Name       string      `json:"name"`
	Initiative api.FlexInt `json:"initiative"`
	MaxHP      api.FlexInt `json:"max_hp"`
	CurrentHP  api.FlexInt `json:"current_hp,omitempty"`
}

// StartCombatArgs — враги + инициативы партии (+ опционально застигнутые врасплох).
type StartCombatArgs struct {
	Enemies          []EnemyArg             `json:"enemies"`
	PartyInitiatives map[string]api.FlexInt `json:"partyInitiatives"`
	Surprised        []string               `json:"surprised,omitempty"`
}

func (a StartCombatArgs) Validate() error {
	if len(a.Enemies) == 0 && len(a.PartyInitiatives) == 0 {
		return fmt.Errorf("enemies or partyInitiatives are required")
	}
	return nil
}

func HandleStartCombat(ctx *handlers.Context, args StartCombatArgs) (handlers.Result, error) {
	if ctx.Session.Combat != nil {
		return handlers.Result{}, fmt.Errorf("combat is already active (end_combat first)")
	}

	enemies := make([]systems.EnemySpec, 0, len(args.Enemies))
	for _, e := range args.Enemies {
		enemies = append(enemies, systems.EnemySpec{
			Name:       e.Name,
			Initiative: e.Initiative.Int(),
			MaxHP:      e.MaxHP.Int(),
			CurrentHP:  e.CurrentHP.Int(),
		})
	}
	partyInit := make(map[string]int, len(args.PartyInitiatives))
	for ref, init := range args.PartyInitiatives {
		partyInit[ref] = init.Int()
	}

	enc, warnings, err := systems.StartCombat(ctx.Session, enemies, partyInit, args.Surprised)
	if err != nil {
		return handlers.Result{}, err
	}
	ctx.Session.Combat = enc

	var b strings.Builder
	b.WriteString("Combat started!\n")
	b.WriteString(renderCombatTable(enc))
	for _, w := range warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w)
	}

	return handlers.Mutation(b.String(),
		handlers.Event{Name: evCombatStarted, Payload: combatStateEvent(enc)},
	), nil
}

func HandleEndCombat(ctx *handlers.Context) (handlers.Result, error) {
	if ctx.Session.Combat == nil {
		return handlers.Result{}, fmt.Errorf("no active combat to end")
	}
	ctx.Session.Combat = nil

	return handlers.Mutation("Combat ended.",
		handlers.Event{Name: evCombatEnded, Payload: api.CombatEndedEvent{Reason: "ended by narrator"}},
	), nil
}

func HandleAdvanceTurn(ctx *handlers.Context) (handlers.Result, error) {
	enc := ctx.Session.Combat
	if err := systems.AdvanceTurn(enc); err != nil {
		return handlers.Result{}, err
	}

	activeID := enc.ActiveCombatantID()
	activeName := activeID
	if cd := enc.Combatant(activeID); cd != nil {
		activeName = cd.Name
	}

	return handlers.Mutation(
		fmt.Sprintf("Round %d, turn %d: %s is up.", enc.Round, enc.CurrentTurnIndex+1, activeName),
		handlers.Event{Name: evTurnAdvanced, Payload: api.TurnAdvancedEvent{
			Round:            enc.Round,
			CurrentTurnIndex: enc.CurrentTurnIndex,
			ActiveID:         activeID,
			ActiveName:       activeName,
		}},
	), nil
}

func HandleGetCombatState(ctx *handlers.Context) (handlers.Result, error) {
	enc := ctx.Session.Combat
	if enc == nil {
		// Штатный ответ, не ошибка: модель регулярно спрашивает "а бой идет?"
		return handlers.Ack("No active combat."), nil
	}
	return handlers.Ack(renderCombatTable(enc)), nil
}

// AddCombatantArgs — подкрепление посреди боя.
type AddCombatantArgs struct {
	Name       string      `json:"name"`
	Initiative api.FlexInt `json:"initiative"`
	MaxHP      api.FlexInt `json:"max_hp"`
	CurrentHP  api.FlexInt `json:"current_hp,omitempty"`
	Type       string      `json:"type,omitempty"` // Enemy (default) | Ally
}

func (a AddCombatantArgs) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func HandleAddCombatant(ctx *handlers.Context, args AddCombatantArgs) (handlers.Result, error) {
	enc := ctx.Session.Combat
	if enc == nil {
		return handlers.Result{}, fmt.Errorf("no active combat")
	}

	ctype := domain.CombatantEnemy
	if strings.EqualFold(args.Type, string(domain.CombatantAlly)) {
		ctype = domain.CombatantAlly
	}

	clamped, wasClamped := systems.ClampInitiative(args.Initiative.Int())
	hp := args.CurrentHP.Int()
	if hp <= 0 || hp > args.MaxHP.Int() {
		hp = args.MaxHP.Int()
	}

	cd := &domain.CombatantDetails{
		ID:         "npc_" + uuid.NewString()[:8],
		Name:       args.Name,
		Type:       ctype,
		Initiative: clamped,
		CurrentHP:  hp,
		MaxHP:      args.MaxHP.Int(),
	}
	systems.InsertCombatant(enc, cd)

	text := fmt.Sprintf("%s joins the fight at initiative %d.", cd.Name, cd.Initiative)
	if wasClamped {
		text += fmt.Sprintf(" Warning: initiative %d was out of range and clamped.", args.Initiative.Int())
	}

	return handlers.Mutation(text,
		handlers.Event{Name: evCombatantUpdated, Payload: combatStateEvent(enc)},
	), nil
}

// RemoveCombatantArgs — участник покидает бой (сбежал, отозван).
type RemoveCombatantArgs struct {
	Character string `json:"character"`
	Reason    string `json:"reason,omitempty"`
}

func (a RemoveCombatantArgs) Validate() error {
	if strings.TrimSpace(a.Character) == "" {
		return fmt.Errorf("character is required")
	}
	return nil
}

func HandleRemoveCombatant(ctx *handlers.Context, args RemoveCombatantArgs) (handlers.Result, error) {
	enc := ctx.Session.Combat
	if enc == nil {
		return handlers.Result{}, fmt.Errorf("no active combat")
	}

	cd := systems.ResolveCombatant(enc, args.Character)
	if cd == nil {
		return handlers.Result{}, errEntityNotFound(args.Character)
	}
	systems.RemoveCombatant(enc, cd.ID)

	text := fmt.Sprintf("%s leaves the combat.", cd.Name)
	if args.Reason != "" {
		text = fmt.Sprintf("%s leaves the combat (%s).", cd.Name, args.Reason)
	}

	return handlers.Mutation(text,
		handlers.Event{Name: evCombatantUpdated, Payload: combatStateEvent(enc)},
	), nil
}

// renderCombatTable — табличное представление боя для модели.
func renderCombatTable(enc *domain.CombatEncounter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d\n", enc.Round)

	rows := make([][]string, 0, len(enc.TurnOrder))
	for i, id := range enc.TurnOrder {
		cd := enc.Combatants[id]
		if cd == nil {
			continue
		}
		marker := ""
		if i == enc.CurrentTurnIndex {
			marker = "<-- active"
		}
		surprised := ""
		if enc.Surprised[id] {
			surprised = "surprised"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cd.Name,
			string(cd.Type),
			strconv.Itoa(cd.Initiative),
			fmt.Sprintf("%d/%d", cd.CurrentHP, cd.MaxHP),
			surprised,
			marker,
		})
	}
	b.WriteString(mdTable([]string{"#", "Name", "Type", "Init", "HP", "Status", ""}, rows))
	return b.String()
}
