package domain

// CombatantType — тип участника боя.
type CombatantType string

const (
	CombatantPC    CombatantType = "PC"
	CombatantEnemy CombatantType = "Enemy"
	CombatantAlly  CombatantType = "Ally"
)

// CombatantDetails — запись об участнике боя.
// Для врагов и союзников это ЕДИНСТВЕННЫЙ долговременный носитель состояния:
// у них нет Character в партии, поэтому детали живут внутри энкаунтера
// и переживают рестарт процесса вместе с сессией.
type CombatantDetails struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       CombatantType `json:"type"`
	Initiative int           `json:"initiative"`
	CurrentHP  int           `json:"currentHp"`
	MaxHP      int           `json:"maxHp"`
	IsDefeated bool          `json:"isDefeated"`
}

// CombatEncounter — активный бой. Существует только между start_combat и end_combat.
// Инварианты:
//   - 0 <= CurrentTurnIndex < len(TurnOrder), пока TurnOrder не пуст;
//   - каждый ID из TurnOrder имеет запись в Combatants.
type CombatEncounter struct {
	Round            int                          `json:"round"`
	TurnOrder        []string                     `json:"turnOrder"`
	CurrentTurnIndex int                          `json:"currentTurnIndex"`
	Surprised        map[string]bool              `json:"surprised,omitempty"`
	Combatants       map[string]*CombatantDetails `json:"combatants"`
}

// ActiveCombatantID возвращает ID того, чей сейчас ход ("" если порядок пуст).
func (e *CombatEncounter) ActiveCombatantID() string {
	if len(e.TurnOrder) == 0 || e.CurrentTurnIndex < 0 || e.CurrentTurnIndex >= len(e.TurnOrder) {
		return ""
	}
	return e.TurnOrder[e.CurrentTurnIndex]
}

// Combatant возвращает запись участника по ID.
func (e *CombatEncounter) Combatant(id string) *CombatantDetails {
	return e.Combatants[id]
}

// OrderPosition возвращает позицию участника в порядке ходов (-1 если выбыл).
func (e *CombatEncounter) OrderPosition(id string) int {
	for i, oid := range e.TurnOrder {
		if oid == id {
			return i
		}
	}
	return -1
}

// HasLivingEnemies сообщает, остался ли хоть один непобежденный враг.
func (e *CombatEncounter) HasLivingEnemies() bool {
	for _, cd := range e.Combatants {
		if cd.Type == CombatantEnemy && !cd.IsDefeated {
			return true
		}
	}
	return false
}
