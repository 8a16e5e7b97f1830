package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt принимает целое в любом виде, в котором его может прислать модель:
// 15, 15.0 или "15". Дробное число или любой другой ввод — ошибка с внятным
// текстом; молчаливого округления нет.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	// Строковая форма: снимаем кавычки
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		return nil
	}
	// Числовая форма (включая запись целого с точкой)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v != math.Trunc(v) {
			return fmt.Errorf("expected an integer, got %s", string(data))
		}
		*f = FlexInt(int(v))
		return nil
	}
	return fmt.Errorf("expected a number, got %s", string(data))
}

func (f FlexInt) Int() int { return int(f) }

// FlexBool принимает true/false, "true"/"false", 1/0.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*f = true
	case "false", "0", "no", "", "null":
		*f = false
	default:
		return fmt.Errorf("expected a boolean, got %s", string(data))
	}
	return nil
}

func (f FlexBool) Bool() bool { return bool(f) }
