package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peakflames/riddle-sub001/internal/engine/handlers"
	"github.com/peakflames/riddle-sub001/internal/systems"
)

// HandleGetState возвращает общий снимок сессии: сцена, партия, квесты, бой.
func HandleGetState(ctx *handlers.Context) (handlers.Result, error) {
	sess := ctx.Session
	var b strings.Builder

	fmt.Fprintf(&b, "## Session: %s\n", sess.Name)
	if sess.Chapter != "" || sess.Location != "" {
		fmt.Fprintf(&b, "Chapter: %s | Location: %s\n", orDash(sess.Chapter), orDash(sess.Location))
	}

	b.WriteString("\n### Party\n")
	rows := make([][]string, 0, len(sess.Characters))
	for i := range sess.Characters {
		ch := &sess.Characters[i]
		rows = append(rows, []string{
			ch.Name,
			string(ch.Kind),
			fmt.Sprintf("%d/%d", ch.CurrentHP, ch.MaxHP),
			strconv.Itoa(ch.ArmorClass),
			strings.Join(ch.Conditions, ", "),
			ch.PlayerName,
		})
	}
	b.WriteString(mdTable([]string{"Name", "Kind", "HP", "AC", "Conditions", "Player"}, rows))

	if len(sess.Quests) > 0 {
		b.WriteString("\n### Quests\n")
		for _, q := range sess.Quests {
			fmt.Fprintf(&b, "- %s (%s)\n", q.Title, orDash(q.Status))
		}
	}

	if sess.Combat != nil {
		fmt.Fprintf(&b, "\nCombat active: round %d, turn %d of %d.\n",
			sess.Combat.Round, sess.Combat.CurrentTurnIndex+1, len(sess.Combat.TurnOrder))
	} else {
		b.WriteString("\nNo active combat.\n")
	}

	return handlers.Ack(b.String()), nil
}

// Свойства, доступные через get_character_properties.
// Матчатся без учета регистра.
var characterProperties = []struct {
	Name string
	Desc string
	Get  func(ch *characterProps) string
}{
	{"Name", "Character name", func(c *characterProps) string { return c.Name }},
	{"Kind", "PC or NPC", func(c *characterProps) string { return c.Kind }},
	{"CurrentHp", "Current hit points", func(c *characterProps) string { return strconv.Itoa(c.CurrentHP) }},
	{"MaxHp", "Maximum hit points", func(c *characterProps) string { return strconv.Itoa(c.MaxHP) }},
	{"ArmorClass", "Armor class", func(c *characterProps) string { return strconv.Itoa(c.ArmorClass) }},
	{"Initiative", "Last rolled initiative", func(c *characterProps) string { return strconv.Itoa(c.Initiative) }},
	{"Conditions", "Active condition tags", func(c *characterProps) string { return strings.Join(c.Conditions, ", ") }},
	{"StatusNotes", "Free-form status notes", func(c *characterProps) string { return c.StatusNotes }},
	{"DeathSaveSuccesses", "Death save successes (0-3)", func(c *characterProps) string { return strconv.Itoa(c.Successes) }},
	{"DeathSaveFailures", "Death save failures (0-3)", func(c *characterProps) string { return strconv.Itoa(c.Failures) }},
	{"IsStable", "Stabilized at 0 HP", func(c *characterProps) string { return boolWord(c.IsStable) }},
	{"IsDead", "Three death save failures", func(c *characterProps) string { return boolWord(c.IsDead) }},
	{"Player", "Claimed by player", func(c *characterProps) string { return c.PlayerName }},
}

// characterProps — распакованное представление, общее для персонажей партии
// и участников боя (у последних большинство полей пустые).
type characterProps struct {
	Name, Kind, StatusNotes, PlayerName string
	CurrentHP, MaxHP, ArmorClass        int
	Initiative, Successes, Failures     int
	Conditions                          []string
	IsStable, IsDead                    bool
}

// HandleListCharacterProperties перечисляет имена свойств для модели.
func HandleListCharacterProperties(ctx *handlers.Context) (handlers.Result, error) {
	rows := make([][]string, 0, len(characterProperties))
	for _, p := range characterProperties {
		rows = append(rows, []string{p.Name, p.Desc})
	}
	return handlers.Ack(mdTable([]string{"Property", "Description"}, rows)), nil
}

// GetCharacterPropertiesArgs — characters[] x properties[].
type GetCharacterPropertiesArgs struct {
	Characters []string `json:"characters"`
	Properties []string `json:"properties"`
}

func (a GetCharacterPropertiesArgs) Validate() error {
	if len(a.Characters) == 0 {
		return fmt.Errorf("characters list is required")
	}
	return nil
}

// HandleGetCharacterProperties строит таблицу значений.
// Неизвестный персонаж — строка "not found", а не ошибка всей операции.
func HandleGetCharacterProperties(ctx *handlers.Context, args GetCharacterPropertiesArgs) (handlers.Result, error) {
	// Пустой props-список означает "все свойства"
	selected := characterProperties
	if len(args.Properties) > 0 {
		selected = selected[:0:0]
		for _, want := range args.Properties {
			found := false
			for _, p := range characterProperties {
				if strings.EqualFold(p.Name, want) {
					selected = append(selected, p)
					found = true
					break
				}
			}
			if !found {
				return handlers.Result{}, fmt.Errorf("unknown property %q (use list_character_properties)", want)
			}
		}
	}

	headers := []string{"Character"}
	for _, p := range selected {
		headers = append(headers, p.Name)
	}

	var rows [][]string
	for _, ref := range args.Characters {
		ch, cd := systems.ResolveEntity(ctx.Session, ref)

		if ch == nil && cd == nil {
			row := []string{ref, "not found"}
			rows = append(rows, row)
			continue
		}

		var props characterProps
		if ch != nil {
			props = characterProps{
				Name: ch.Name, Kind: string(ch.Kind),
				CurrentHP: ch.CurrentHP, MaxHP: ch.MaxHP,
				ArmorClass: ch.ArmorClass, Initiative: ch.Initiative,
				Conditions: ch.Conditions, StatusNotes: ch.StatusNotes,
				Successes: ch.DeathSaveSuccesses, Failures: ch.DeathSaveFailures,
				IsStable: ch.IsStable(), IsDead: ch.IsDead(),
				PlayerName: ch.PlayerName,
			}
		} else {
			props = characterProps{
				Name: cd.Name, Kind: string(cd.Type),
				CurrentHP: cd.CurrentHP, MaxHP: cd.MaxHP,
				Initiative: cd.Initiative,
				IsDead:     cd.IsDefeated,
			}
		}

		row := []string{props.Name}
		for _, p := range selected {
			row = append(row, p.Get(&props))
		}
		rows = append(rows, row)
	}

	return handlers.Ack(mdTable(headers, rows)), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
