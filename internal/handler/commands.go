package handler

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"time-clock/internal/models"
)

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.sendStartMessage(ctx, message)
	case "help":
		h.sendHelpMessage(chatID)

	// Отметки
	case "in":
		h.punch(ctx, chatID, models.PunchClockIn)
	case "lunch":
		h.punch(ctx, chatID, models.PunchLunchOut)
	case "back":
		h.punch(ctx, chatID, models.PunchLunchIn)
	case "out":
		h.punch(ctx, chatID, models.PunchClockOut)

	case "today":
		h.showToday(ctx, chatID)
	case "week":
		h.showWeek(ctx, chatID)
	case "status":
		h.showStatus(ctx, chatID)

	default:
		h.sendUnknownCommand(chatID)
	}
}

func (h *Handler) sendUnknownCommand(chatID int64) {
	h.send(chatID, "❌ Unknown command. Use /help to see the list of commands.")
}

func (h *Handler) sendStartMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	actor, err := h.employees.TelegramActor(ctx, chatID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve telegram chat")
		h.send(chatID, "❌ Something went wrong, please try again later.")
		return
	}

	if actor == nil {
		h.send(chatID, fmt.Sprintf(
			"👋 Welcome to the time clock!\n\nYour chat id is %d.\nGive it to your manager so they can link it to your employee profile, then send /start again.",
			chatID,
		))
		return
	}

	h.send(chatID, fmt.Sprintf("👋 Hi, %s! You can punch right from this chat.", actor.EmployeeName))
	h.showStatus(ctx, chatID)
}

func (h *Handler) sendHelpMessage(chatID int64) {
	h.send(chatID, `📋 Commands:

/in - clock in
/lunch - go to lunch
/back - back from lunch
/out - clock out

/today - today's punches and hours
/week - hours for this week
/status - what you can punch now

/start - show your chat id`)
}
