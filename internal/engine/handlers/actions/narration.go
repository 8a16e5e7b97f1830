package actions

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/peakflames/riddle-sub001/internal/domain"
	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/pkg/api"
)

// DisplayNarrationArgs — блок повествования с тегами подачи.
type DisplayNarrationArgs struct {
	Text   string `json:"text"`
	Tone   string `json:"tone,omitempty"`
	Pacing string `json:"pacing,omitempty"`
}

func (a DisplayNarrationArgs) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func HandleDisplayNarration(ctx *handlers.Context, args DisplayNarrationArgs) (handlers.Result, error) {
	d := &ctx.Session.Display
	d.Narration = args.Text
	d.Tone = args.Tone
	d.Pacing = args.Pacing
	// Новое повествование снимает висящий выбор
	d.Choices = nil

	return handlers.Mutation("Narration displayed.",
		handlers.Event{Name: evNarration, Payload: api.NarrationEvent{
			Text:   args.Text,
			Tone:   args.Tone,
			Pacing: args.Pacing,
		}},
	), nil
}

// PresentChoicesArgs — варианты выбора для игроков.
type PresentChoicesArgs struct {
	Prompt  string   `json:"prompt,omitempty"`
	Choices []string `json:"choices"`
}

func (a PresentChoicesArgs) Validate() error {
	if len(a.Choices) == 0 {
		return fmt.Errorf("choices list is required")
	}
	return nil
}

func HandlePresentChoices(ctx *handlers.Context, args PresentChoicesArgs) (handlers.Result, error) {
	prompt := &domain.ChoicePrompt{
		ID:      uuid.NewString(),
		Prompt:  args.Prompt,
		Options: args.Choices,
	}
	ctx.Session.Display.Choices = prompt

	return handlers.Mutation(
		fmt.Sprintf("Presented %d choices to the players.", len(args.Choices)),
		handlers.Event{Name: evChoices, Payload: api.ChoicesEvent{
			PromptID: prompt.ID,
			Prompt:   prompt.Prompt,
			Options:  prompt.Options,
		}},
	), nil
}

// SetSceneArgs — смена главы/локации, опционально с заметкой в журнал.
type SetSceneArgs struct {
	Chapter  string `json:"chapter,omitempty"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
}

func (a SetSceneArgs) Validate() error {
	if a.Chapter == "" && a.Location == "" {
		return fmt.Errorf("chapter or location is required")
	}
	return nil
}

func HandleSetScene(ctx *handlers.Context, args SetSceneArgs) (handlers.Result, error) {
	sess := ctx.Session
	if args.Chapter != "" {
		sess.Chapter = args.Chapter
	}
	if args.Location != "" {
		sess.Location = args.Location
	}

	events := []handlers.Event{
		{Name: evSceneChanged, Payload: api.SceneChangedEvent{
			Chapter:  sess.Chapter,
			Location: sess.Location,
		}},
	}

	if strings.TrimSpace(args.Note) != "" {
		entry := domain.LogEntry{
			ID:         uuid.NewString(),
			Text:       args.Note,
			Importance: "normal",
			Timestamp:  nowMillis(),
		}
		sess.AppendLog(entry)
		events = append(events, handlers.Event{Name: evLogAppended, Payload: api.LogAppendedEvent(entry)})
	}

	return handlers.Mutation(
		fmt.Sprintf("Scene set: %s / %s.", orDash(sess.Chapter), orDash(sess.Location)),
		events...,
	), nil
}
