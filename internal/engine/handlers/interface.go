package handlers

import (
	"encoding/json"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// Context передает хендлеру состояние сессии.
// Session — полная копия из хранилища; хендлер мутирует её напрямую.
// Хендлер НЕ пишет в хаб и НЕ сохраняет сессию сам — он декларирует
// намерения через Result, а диспетчер исполняет их в правильном порядке
// (сначала Save, потом рассылка).
type Context struct {
	Session *domain.Session
}

// Event — отложенное событие для рассылки после успешного сохранения.
type Event struct {
	Name    string
	Payload any
}

// Result — результат выполнения операции.
type Result struct {
	// Text возвращается вызывающей модели. Короткий ack, строка ошибки
	// или markdown-таблица — модель читает это как текст.
	Text string

	// Mutated true, если сессию нужно сохранить.
	Mutated bool

	// Events рассылаются хабом после сохранения (или сразу, если
	// операция ничего не меняла).
	Events []Event
}

// HandlerFunc — контракт любой операции из таблицы диспетчера.
// Ошибка означает ошибку валидации/состояния: диспетчер превратит её
// в текстовый "Error: ..." для модели, наружу она не летит.
type HandlerFunc func(ctx *Context, raw json.RawMessage) (Result, error)

// Ack — короткий успешный ответ без событий.
func Ack(text string) Result {
	return Result{Text: text}
}

// Mutation — успешный ответ, требующий сохранения сессии.
func Mutation(text string, events ...Event) Result {
	return Result{Text: text, Mutated: true, Events: events}
}
