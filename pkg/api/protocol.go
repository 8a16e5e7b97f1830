package api

import (
	"encoding/json"
)

// --- ВНЕШНИЙ ВЫЗОВ (слой модели) -> СЕРВЕР ---

// CommandRequest это корневой объект для вызова операции.
// Его шлет слой, который управляет языковой моделью: имя операции
// и JSON-аргументы ровно в том виде, в котором их выдала модель.
type CommandRequest struct {
	// Operation название операции (get_state, update_character_state, ...).
	Operation string `json:"operation"`

	// Arguments JSON-объект с аргументами. Структура зависит от операции.
	Arguments json.RawMessage `json:"arguments"`
}

// CommandResponse это ответ на вызов операции.
// Result ВСЕГДА человекочитаемый текст (короткий ack, строка ошибки или
// markdown-таблица) — вызывающая модель не умеет разбирать типизированные
// объекты, этот формат является частью контракта.
type CommandResponse struct {
	Result string `json:"result"`
}

// --- КЛИЕНТ (WebSocket) -> СЕРВЕР ---

// JoinRequest это первое сообщение клиента после подключения (handshake).
type JoinRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`

	// CharacterRef необязательная привязка к персонажу (ID или имя).
	CharacterRef string `json:"character,omitempty"`

	DisplayName string `json:"displayName,omitempty"`

	// IsModerator true для клиента мастера (права проверяются ДО этого слоя).
	IsModerator bool `json:"isModerator,omitempty"`
}

// ClientMessage это любое последующее сообщение клиента.
type ClientMessage struct {
	// Type тип сообщения. Сейчас поддерживается только "choice".
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ChoiceSubmission — игрок выбрал один из предложенных вариантов.
type ChoiceSubmission struct {
	PromptID string `json:"promptId,omitempty"`
	Choice   string `json:"choice"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerEvent это единственный конверт, в котором сервер шлет события.
// КЛИЕНТ ДОЛЖЕН ПОДПИСЫВАТЬСЯ НА РОВНО ОДИН АРГУМЕНТ — Payload.
// Обработчик с другой арностью молча никогда не сработает.
type ServerEvent struct {
	// Event название события (см. константы в internal/network).
	Event string `json:"event"`

	// SessionID сессия, к которой относится событие.
	SessionID string `json:"sessionId"`

	// Payload полезная нагрузка. Ровно одна типизированная структура на событие.
	Payload any `json:"payload"`
}

// Validator позволяет payload-структурам проверять себя после Unmarshal.
type Validator interface {
	Validate() error
}
