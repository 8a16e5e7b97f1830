package actions

import (
	"fmt"
	"strings"

	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// Атмосферные операции только рассылают событие игрокам —
// состояние сессии они не трогают и не сохраняют.

// PulseArgs — сенсорная вставка ("вы слышите скрип половиц").
type PulseArgs struct {
	Text        string `json:"text"`
	Intensity   string `json:"intensity,omitempty"`   // subtle, moderate, strong
	SensoryType string `json:"sensoryType,omitempty"` // sound, smell, touch, sight
}

func (a PulseArgs) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func HandlePulse(ctx *handlers.Context, args PulseArgs) (handlers.Result, error) {
	return handlers.Result{
		Text: "Pulse sent to players.",
		Events: []handlers.Event{
			{Name: evPulse, Payload: api.PulseEvent{
				Text:        args.Text,
				Intensity:   args.Intensity,
				SensoryType: args.SensoryType,
			}},
		},
	}, nil
}

// SetAnchorArgs — короткая якорная фраза сцены.
type SetAnchorArgs struct {
	Text string `json:"text"`
	Mood string `json:"moodCategory,omitempty"`
}

func (a SetAnchorArgs) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func HandleSetAnchor(ctx *handlers.Context, args SetAnchorArgs) (handlers.Result, error) {
	return handlers.Result{
		Text: "Anchor set.",
		Events: []handlers.Event{
			{Name: evAnchor, Payload: api.AnchorEvent{
				Text: args.Text,
				Mood: args.Mood,
			}},
		},
	}, nil
}

// TriggerInsightArgs — озарение, привязанное к навыку персонажа.
type TriggerInsightArgs struct {
	Text          string       `json:"text"`
	RelevantSkill string       `json:"relevantSkill"`
	Highlight     api.FlexBool `json:"highlight,omitempty"`
}

func (a TriggerInsightArgs) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if strings.TrimSpace(a.RelevantSkill) == "" {
		return fmt.Errorf("relevantSkill is required")
	}
	return nil
}

func HandleTriggerInsight(ctx *handlers.Context, args TriggerInsightArgs) (handlers.Result, error) {
	return handlers.Result{
		Text: "Insight sent to players.",
		Events: []handlers.Event{
			{Name: evInsight, Payload: api.InsightEvent{
				Text:          args.Text,
				RelevantSkill: args.RelevantSkill,
				Highlight:     args.Highlight.Bool(),
			}},
		},
	}, nil
}
