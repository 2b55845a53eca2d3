package controller

import (
	"testing"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func textUpdate(text string) *models.Update {
	return &models.Update{Message: &models.Message{Text: text}}
}

func TestMatchCommandDoesNotMatchPrefix(t *testing.T) {
	match := matchCommand("trainer")

	assert.True(t, match(textUpdate("/trainer 42")))
	assert.True(t, match(textUpdate("/trainer@skilllink_bot 42")))
	assert.True(t, match(textUpdate("/trainer")))
	assert.False(t, match(textUpdate("/trainer_dashboard")))
	assert.False(t, match(textUpdate("trainer 42")))
	assert.False(t, match(textUpdate("")))
	assert.False(t, match(&models.Update{}))
}

func TestIsDialogText(t *testing.T) {
	assert.True(t, isDialogText(textUpdate("yoga")))
	assert.False(t, isDialogText(textUpdate("/search")))
	assert.False(t, isDialogText(textUpdate("")))
	assert.False(t, isInlineQuery(textUpdate("yoga")))
	assert.True(t, isInlineQuery(&models.Update{InlineQuery: &models.InlineQuery{Query: "yo"}}))
}

func TestCommandsForRole(t *testing.T) {
	names := func(cmds []models.BotCommand) []string {
		out := make([]string, 0, len(cmds))
		for _, c := range cmds {
			out = append(out, c.Command)
		}
		return out
	}

	anonymous := names(commandsFor(model.RoleNone))
	assert.Contains(t, anonymous, "login")
	assert.Contains(t, anonymous, "register")
	assert.NotContains(t, anonymous, "dashboard")

	trainer := names(commandsFor(model.RoleTrainer))
	assert.Contains(t, trainer, "dashboard")
	assert.Contains(t, trainer, "logout")
	assert.NotContains(t, trainer, "login")

	assert.Contains(t, names(commandsFor(model.RoleTrainee)), "dashboard")
}
