package domain

import "strings"

// CharacterKind разделяет персонажей игроков и NPC партии.
type CharacterKind string

const (
	KindPC  CharacterKind = "PC"
	KindNPC CharacterKind = "NPC"
)

// Стандартные теги состояний, которыми управляет движок.
// Остальные теги (Poisoned, Blessed и т.д.) свободные — их задает мастер.
const (
	ConditionUnconscious = "Unconscious"
	ConditionStable      = "Stable"
	ConditionDead        = "Dead"
)

// Character — персонаж партии (игровой или NPC).
// Создается при подготовке сессии, движок его только мутирует, никогда не удаляет.
type Character struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Kind CharacterKind `json:"kind"`

	CurrentHP  int `json:"currentHp"`
	MaxHP      int `json:"maxHp"`
	ArmorClass int `json:"armorClass"`
	Initiative int `json:"initiative"`

	// Conditions — набор строковых тегов. Дубликаты не допускаются.
	Conditions  []string `json:"conditions"`
	StatusNotes string   `json:"statusNotes,omitempty"`

	// Счетчики спасбросков от смерти. Инвариант: 0 <= x <= 3.
	DeathSaveSuccesses int `json:"deathSaveSuccesses"`
	DeathSaveFailures  int `json:"deathSaveFailures"`

	// Привязка к подключенному игроку. Пустая строка = персонаж свободен.
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
}

// IsStable: три успеха при HP <= 0.
func (c *Character) IsStable() bool {
	return c.DeathSaveSuccesses >= 3 && c.CurrentHP <= 0
}

// IsDead: три провала.
func (c *Character) IsDead() bool {
	return c.DeathSaveFailures >= 3
}

// HasCondition проверяет тег без учета регистра.
func (c *Character) HasCondition(name string) bool {
	for _, cond := range c.Conditions {
		if strings.EqualFold(cond, name) {
			return true
		}
	}
	return false
}

// AddCondition добавляет тег, если его еще нет.
func (c *Character) AddCondition(name string) {
	if name == "" || c.HasCondition(name) {
		return
	}
	c.Conditions = append(c.Conditions, name)
}

// RemoveCondition убирает тег (сравнение без регистра).
func (c *Character) RemoveCondition(name string) {
	filtered := c.Conditions[:0]
	for _, cond := range c.Conditions {
		if !strings.EqualFold(cond, name) {
			filtered = append(filtered, cond)
		}
	}
	c.Conditions = filtered
}

// ResetDeathSaves обнуляет оба счетчика.
func (c *Character) ResetDeathSaves() {
	c.DeathSaveSuccesses = 0
	c.DeathSaveFailures = 0
}
