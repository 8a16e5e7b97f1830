package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/peakflames/riddle-sub001/pkg/api"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx *Context, args T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны аргументы (get_state, end_combat)
type EmptyHandlerFunc func(ctx *Context) (Result, error)

// WithArgs берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithArgs[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx *Context, raw json.RawMessage) (Result, error) {
		var args T

		// 1. Распаковка JSON. Пустые аргументы допустимы — все поля
		// останутся нулевыми, дальше отработает Validate.
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return Result{}, fmt.Errorf("invalid arguments: %v", err)
			}
		}

		// 2. Автоматическая валидация, если структура T умеет проверять себя.
		if v, ok := any(args).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, err
			}
		}

		// 3. Вызов чистой логики
		return handler(ctx, args)
	}
}

// WithoutArgs - обертка для операций без аргументов.
func WithoutArgs(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx *Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
