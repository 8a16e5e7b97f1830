package domain

// MaxRecentRolls ограничивает список последних бросков при записи.
const MaxRecentRolls = 50

// Session — одна запущенная игра и все её изменяемое состояние.
// Хранилище владеет сессией между операциями: диспетчер получает полную
// копию, мутирует её и записывает обратно целиком. Частичных апдейтов нет.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Chapter  string `json:"chapter,omitempty"`
	Location string `json:"location,omitempty"`

	Characters []Character `json:"characters"`
	Quests     []Quest     `json:"quests,omitempty"`

	// Combat присутствует только пока идет бой.
	Combat *CombatEncounter `json:"combat,omitempty"`

	// Log — append-only журнал повествования.
	Log []LogEntry `json:"log"`

	// RecentRolls — последние броски, свежие в начале. Ограничен MaxRecentRolls.
	RecentRolls []RollResult `json:"recentRolls"`

	// Display — транзиентное состояние экрана (текущая сцена, активный выбор).
	Display DisplayState `json:"display"`
}

// Quest — активное задание партии.
type Quest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

// LogEntry — неизменяемая запись журнала.
type LogEntry struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Importance string `json:"importance"` // normal, important, critical
	Timestamp  int64  `json:"timestamp"`  // Unix milliseconds
}

// RollResult — неизменяемая запись о броске кубов.
type RollResult struct {
	ID            string `json:"id"`
	CharacterID   string `json:"characterId,omitempty"`
	CharacterName string `json:"characterName"`
	CheckType     string `json:"checkType"`
	Result        int    `json:"result"`
	Outcome       string `json:"outcome,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// DisplayState — то, что сейчас видно на экранах клиентов.
type DisplayState struct {
	Narration string        `json:"narration,omitempty"`
	Tone      string        `json:"tone,omitempty"`
	Pacing    string        `json:"pacing,omitempty"`
	Choices   *ChoicePrompt `json:"choices,omitempty"`
}

// ChoicePrompt — активный запрос выбора, предъявленный игрокам.
type ChoicePrompt struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options"`
}

// FindCharacter ищет персонажа партии по точному ID.
func (s *Session) FindCharacter(id string) *Character {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i]
		}
	}
	return nil
}

// AppendLog добавляет запись в журнал.
func (s *Session) AppendLog(entry LogEntry) {
	s.Log = append(s.Log, entry)
}

// AddRoll вставляет бросок в начало списка.
// Возвращает false, если бросок с таким ID уже есть (повторная команда модели).
// Список обрезается до MaxRecentRolls при каждой записи.
func (s *Session) AddRoll(roll RollResult) bool {
	for i := range s.RecentRolls {
		if s.RecentRolls[i].ID == roll.ID {
			return false
		}
	}
	s.RecentRolls = append([]RollResult{roll}, s.RecentRolls...)
	if len(s.RecentRolls) > MaxRecentRolls {
		s.RecentRolls = s.RecentRolls[:MaxRecentRolls]
	}
	return true
}
