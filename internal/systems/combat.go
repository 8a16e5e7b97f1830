package systems

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// Границы инициативы. Выход за них — не ошибка, а повод для предупреждения:
// модель регулярно присылает мусорные значения, бой из-за этого не срывается.
const (
	MinInitiative = 1
	MaxInitiative = 30
)

// EnemySpec — входные данные о враге при старте боя.
type EnemySpec struct {
	Name       string
	Initiative int
	MaxHP      int
	CurrentHP  int
}

// ClampInitiative приводит значение к [MinInitiative, MaxInitiative].
func ClampInitiative(v int) (int, bool) {
	switch {
	case v < MinInitiative:
		return MinInitiative, true
	case v > MaxInitiative:
		return MaxInitiative, true
	}
	return v, false
}

// StartCombat собирает энкаунтер из врагов и инициатив партии.
// Порядок ходов: убывание инициативы, при равенстве — порядок ввода
// (персонажи партии в порядке списка партии, затем враги как пришли).
// Нерезолвящиеся ссылки партии и кривые инициативы не фатальны —
// они попадают в warnings, бой стартует с тем, что удалось собрать.
func StartCombat(sess *domain.Session, enemies []EnemySpec, partyInit map[string]int, surprised []string) (*domain.CombatEncounter, []string, error) {
	var warnings []string
	var roster []*domain.CombatantDetails

	// 1. Партия: идем по списку персонажей сессии, чтобы порядок был стабильным.
	matched := make(map[string]bool, len(partyInit))
	for i := range sess.Characters {
		ch := &sess.Characters[i]
		for ref, init := range partyInit {
			if matched[ref] {
				continue
			}
			if ch.ID != ref && NormalizeName(ch.Name) != NormalizeName(ref) {
				continue
			}
			matched[ref] = true

			clamped, wasClamped := ClampInitiative(init)
			if wasClamped {
				warnings = append(warnings, fmt.Sprintf("initiative %d for %s clamped to %d", init, ch.Name, clamped))
			}
			ch.Initiative = clamped

			ctype := domain.CombatantAlly
			if ch.Kind == domain.KindPC {
				ctype = domain.CombatantPC
			}
			roster = append(roster, &domain.CombatantDetails{
				ID:         ch.ID,
				Name:       ch.Name,
				Type:       ctype,
				Initiative: clamped,
				CurrentHP:  ch.CurrentHP,
				MaxHP:      ch.MaxHP,
			})
			break
		}
	}
	for ref := range partyInit {
		if !matched[ref] {
			warnings = append(warnings, fmt.Sprintf("party member %q not found, skipped", ref))
		}
	}

	// 2. Враги: порядок ввода сохраняется.
	for _, e := range enemies {
		if e.Name == "" {
			warnings = append(warnings, "enemy without a name skipped")
			continue
		}
		clamped, wasClamped := ClampInitiative(e.Initiative)
		if wasClamped {
			warnings = append(warnings, fmt.Sprintf("initiative %d for %s clamped to %d", e.Initiative, e.Name, clamped))
		}
		hp := e.CurrentHP
		if hp <= 0 || hp > e.MaxHP {
			hp = e.MaxHP
		}
		roster = append(roster, &domain.CombatantDetails{
			ID:         "npc_" + uuid.NewString()[:8],
			Name:       e.Name,
			Type:       domain.CombatantEnemy,
			Initiative: clamped,
			CurrentHP:  hp,
			MaxHP:      e.MaxHP,
		})
	}

	if len(roster) == 0 {
		return nil, warnings, fmt.Errorf("no combatants resolved, combat not started")
	}

	// 3. Сортировка по убыванию инициативы. Stable сохраняет порядок ввода при равенстве.
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Initiative > roster[j].Initiative
	})

	enc := &domain.CombatEncounter{
		Round:            1,
		CurrentTurnIndex: 0,
		TurnOrder:        make([]string, 0, len(roster)),
		Combatants:       make(map[string]*domain.CombatantDetails, len(roster)),
	}
	for _, cd := range roster {
		enc.TurnOrder = append(enc.TurnOrder, cd.ID)
		enc.Combatants[cd.ID] = cd
	}

	// 4. Метки внезапности (опционально).
	for _, ref := range surprised {
		cd := ResolveCombatant(enc, ref)
		if cd == nil {
			warnings = append(warnings, fmt.Sprintf("surprised ref %q not found, skipped", ref))
			continue
		}
		if enc.Surprised == nil {
			enc.Surprised = make(map[string]bool)
		}
		enc.Surprised[cd.ID] = true
	}

	return enc, warnings, nil
}

// AdvanceTurn двигает ход. Переполнение индекса начинает новый раунд;
// переход с первого раунда на второй снимает все метки внезапности.
func AdvanceTurn(enc *domain.CombatEncounter) error {
	if enc == nil {
		return fmt.Errorf("no active combat")
	}
	if len(enc.TurnOrder) == 0 {
		return fmt.Errorf("turn order is empty")
	}

	enc.CurrentTurnIndex++
	if enc.CurrentTurnIndex >= len(enc.TurnOrder) {
		enc.CurrentTurnIndex = 0
		prevRound := enc.Round
		enc.Round++
		if prevRound == 1 {
			enc.Surprised = nil
		}
	}
	return nil
}

// removeFromOrder вырезает участника из порядка ходов и чинит индекс:
// если вырезанный слот был раньше текущего — индекс сдвигается на один вниз;
// если текущий слот был последним и именно он вырезан — индекс заворачивается в 0.
func removeFromOrder(enc *domain.CombatEncounter, id string) bool {
	pos := enc.OrderPosition(id)
	if pos < 0 {
		return false
	}
	enc.TurnOrder = append(enc.TurnOrder[:pos], enc.TurnOrder[pos+1:]...)

	switch {
	case len(enc.TurnOrder) == 0:
		enc.CurrentTurnIndex = 0
	case pos < enc.CurrentTurnIndex:
		enc.CurrentTurnIndex--
	case enc.CurrentTurnIndex >= len(enc.TurnOrder):
		enc.CurrentTurnIndex = 0
	}
	return true
}

// DefeatCombatant помечает участника побежденным и убирает его из порядка.
// Возвращает true, если после этого не осталось живых врагов — бой надо завершать.
func DefeatCombatant(enc *domain.CombatEncounter, cd *domain.CombatantDetails) bool {
	cd.IsDefeated = true
	if cd.CurrentHP > 0 {
		cd.CurrentHP = 0
	}
	removeFromOrder(enc, cd.ID)
	return !enc.HasLivingEnemies()
}

// SetCombatantHP меняет HP участника-не-персонажа. Падение до нуля
// автоматически означает поражение. Возвращает (defeated, combatEnded).
func SetCombatantHP(enc *domain.CombatEncounter, cd *domain.CombatantDetails, newHP int) (bool, bool) {
	if newHP > cd.MaxHP {
		newHP = cd.MaxHP
	}
	if newHP < 0 {
		newHP = 0
	}
	cd.CurrentHP = newHP

	if newHP <= 0 && !cd.IsDefeated {
		ended := DefeatCombatant(enc, cd)
		return true, ended
	}
	return false, false
}

// InsertCombatant добавляет участника с сохранением убывания инициативы:
// первая позиция, чья инициатива строго меньше. Текущий актор остается текущим.
func InsertCombatant(enc *domain.CombatEncounter, cd *domain.CombatantDetails) {
	pos := len(enc.TurnOrder)
	for i, id := range enc.TurnOrder {
		if other := enc.Combatants[id]; other != nil && other.Initiative < cd.Initiative {
			pos = i
			break
		}
	}

	enc.TurnOrder = append(enc.TurnOrder, "")
	copy(enc.TurnOrder[pos+1:], enc.TurnOrder[pos:])
	enc.TurnOrder[pos] = cd.ID
	enc.Combatants[cd.ID] = cd

	if pos <= enc.CurrentTurnIndex && len(enc.TurnOrder) > 1 {
		enc.CurrentTurnIndex++
	}
}

// RemoveCombatant полностью удаляет участника (сбежал, отозван мастером).
// Правило сдвига индекса то же, что при поражении.
func RemoveCombatant(enc *domain.CombatEncounter, id string) bool {
	if _, ok := enc.Combatants[id]; !ok {
		return false
	}
	removeFromOrder(enc, id)
	delete(enc.Combatants, id)
	return true
}
