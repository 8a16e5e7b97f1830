package api

// Типизированные payload событий. Все — чистые данные без поведения:
// диспетчер собирает их и передает в хаб как есть.

// NarrationEvent — мастер вывел новый блок повествования.
type NarrationEvent struct {
	Text   string `json:"text"`
	Tone   string `json:"tone,omitempty"`
	Pacing string `json:"pacing,omitempty"`
}

// ChoicesEvent — игрокам предъявлен выбор.
type ChoicesEvent struct {
	PromptID string   `json:"promptId"`
	Prompt   string   `json:"prompt,omitempty"`
	Options  []string `json:"options"`
}

// LogAppendedEvent — в журнал добавлена запись.
type LogAppendedEvent struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Importance string `json:"importance"`
	Timestamp  int64  `json:"timestamp"`
}

// RollLoggedEvent — зафиксирован бросок кубов.
type RollLoggedEvent struct {
	ID            string `json:"id"`
	CharacterName string `json:"characterName"`
	CheckType     string `json:"checkType"`
	Result        int    `json:"result"`
	Outcome       string `json:"outcome,omitempty"`
}

// CharacterUpdatedEvent — изменилось состояние персонажа партии.
type CharacterUpdatedEvent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CurrentHP   int      `json:"currentHp"`
	MaxHP       int      `json:"maxHp"`
	Conditions  []string `json:"conditions"`
	StatusNotes string   `json:"statusNotes,omitempty"`
}

// DeathSaveEvent — изменилось под-состояние умирания.
// Шлется и при обычном апдейте HP, если тот пересек ноль: зависимые
// экраны обязаны отразить новое под-состояние немедленно.
type DeathSaveEvent struct {
	CharacterID   string `json:"characterId"`
	CharacterName string `json:"characterName"`
	Successes     int    `json:"successes"`
	Failures      int    `json:"failures"`
	IsStable      bool   `json:"isStable"`
	IsDead        bool   `json:"isDead"`
}

// CombatantView — участник боя глазами клиента.
type CombatantView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Initiative  int    `json:"initiative"`
	CurrentHP   int    `json:"currentHp"`
	MaxHP       int    `json:"maxHp"`
	IsDefeated  bool   `json:"isDefeated"`
	IsSurprised bool   `json:"isSurprised,omitempty"`
}

// CombatStateEvent — полный снимок боя (старт боя, изменение состава).
type CombatStateEvent struct {
	Round            int             `json:"round"`
	CurrentTurnIndex int             `json:"currentTurnIndex"`
	ActiveID         string          `json:"activeId,omitempty"`
	Order            []CombatantView `json:"order"`
}

// CombatEndedEvent — бой завершен.
type CombatEndedEvent struct {
	Reason string `json:"reason,omitempty"`
}

// TurnAdvancedEvent — ход перешел к следующему участнику.
type TurnAdvancedEvent struct {
	Round            int    `json:"round"`
	CurrentTurnIndex int    `json:"currentTurnIndex"`
	ActiveID         string `json:"activeId"`
	ActiveName       string `json:"activeName"`
}

// SceneChangedEvent — смена главы/локации.
type SceneChangedEvent struct {
	Chapter  string `json:"chapter,omitempty"`
	Location string `json:"location,omitempty"`
}

// PulseEvent — атмосферная вставка (только игрокам).
type PulseEvent struct {
	Text        string `json:"text"`
	Intensity   string `json:"intensity,omitempty"`
	SensoryType string `json:"sensoryType,omitempty"`
}

// AnchorEvent — короткая "якорная" фраза сцены (только игрокам).
type AnchorEvent struct {
	Text string `json:"text"`
	Mood string `json:"mood,omitempty"`
}

// InsightEvent — подсказка-озарение (только игрокам).
type InsightEvent struct {
	Text          string `json:"text"`
	RelevantSkill string `json:"relevantSkill"`
	Highlight     bool   `json:"highlight,omitempty"`
}

// CharacterClaimedEvent — игрок привязался к персонажу (только мастеру).
type CharacterClaimedEvent struct {
	CharacterID   string `json:"characterId"`
	CharacterName string `json:"characterName"`
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName,omitempty"`
}

// PlayerPresenceEvent — игрок подключился/отключился (только мастеру).
type PlayerPresenceEvent struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName,omitempty"`
	CharacterID string `json:"characterId,omitempty"`
}

// ChoiceSubmittedEvent — игрок отправил выбор (только мастеру).
type ChoiceSubmittedEvent struct {
	PromptID   string `json:"promptId,omitempty"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName,omitempty"`
	Choice     string `json:"choice"`
}
