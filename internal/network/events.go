package network

// Scope — аудитория события. Ровно три группы на сессию.
type Scope int

const (
	// ScopeAll — все подключенные клиенты сессии.
	ScopeAll Scope = iota
	// ScopePlayers — только игроки (мастер НЕ получает).
	ScopePlayers
	// ScopeModerator — только мастер.
	ScopeModerator
)

// Названия событий. Каждому соответствует ровно одна payload-структура
// из pkg/api и ровно одна аудитория из таблицы ниже.
const (
	EventNarration        = "narration"
	EventChoices          = "choices"
	EventLogAppended      = "log_appended"
	EventRollLogged       = "roll_logged"
	EventCharacterUpdated = "character_updated"
	EventDeathSave        = "death_save"
	EventCombatStarted    = "combat_started"
	EventCombatEnded      = "combat_ended"
	EventTurnAdvanced     = "turn_advanced"
	EventCombatantUpdated = "combatant_updated"
	EventSceneChanged     = "scene_changed"

	EventPulse   = "pulse"
	EventAnchor  = "anchor"
	EventInsight = "insight"

	EventCharacterClaimed   = "character_claimed"
	EventPlayerConnected    = "player_connected"
	EventPlayerDisconnected = "player_disconnected"
	EventChoiceSubmitted    = "choice_submitted"
)

// eventScopes — фиксированная таблица маршрутизации.
// Событие без записи здесь НЕ доставляется (см. Hub.Publish).
var eventScopes = map[string]Scope{
	EventNarration:        ScopeAll,
	EventChoices:          ScopeAll,
	EventLogAppended:      ScopeAll,
	EventRollLogged:       ScopeAll,
	EventCharacterUpdated: ScopeAll,
	EventDeathSave:        ScopeAll,
	EventCombatStarted:    ScopeAll,
	EventCombatEnded:      ScopeAll,
	EventTurnAdvanced:     ScopeAll,
	EventCombatantUpdated: ScopeAll,
	EventSceneChanged:     ScopeAll,

	EventPulse:   ScopePlayers,
	EventAnchor:  ScopePlayers,
	EventInsight: ScopePlayers,

	EventCharacterClaimed:   ScopeModerator,
	EventPlayerConnected:    ScopeModerator,
	EventPlayerDisconnected: ScopeModerator,
	EventChoiceSubmitted:    ScopeModerator,
}

// ScopeFor возвращает аудиторию события.
func ScopeFor(event string) (Scope, bool) {
	scope, ok := eventScopes[event]
	return scope, ok
}
