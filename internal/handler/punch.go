package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"time-clock/internal/models"
	"time-clock/internal/service"
	"time-clock/internal/timesheet"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const callbackPrefix = "punch:"

func callbackData(t models.PunchType) string {
	return callbackPrefix + string(t)
}

func parseCallback(data string) (models.PunchType, bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return "", false
	}
	t, err := models.ParsePunchType(strings.TrimPrefix(data, callbackPrefix))
	if err != nil {
		return "", false
	}
	return t, true
}

// actorFor resolves the chat and checks the company is allowed to use the
// clock. It reports to the chat and returns nil when the chat can't act.
func (h *Handler) actorFor(ctx context.Context, chatID int64) *service.Actor {
	actor, err := h.employees.TelegramActor(ctx, chatID)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to resolve telegram chat")
		h.send(chatID, "❌ Something went wrong, please try again later.")
		return nil
	}
	if actor == nil {
		h.send(chatID, "❌ This chat is not linked to an employee.\nSend /start to get your chat id for your manager.")
		return nil
	}

	if err := h.companies.CheckAccess(ctx, actor.CompanyID); err != nil {
		h.send(chatID, "❌ "+userMessage(err))
		return nil
	}
	return actor
}

func (h *Handler) punch(ctx context.Context, chatID int64, punchType models.PunchType) {
	actor := h.actorFor(ctx, chatID)
	if actor == nil {
		return
	}

	p, err := h.punches.Punch(ctx, *actor, service.PunchRequest{PunchType: string(punchType)})
	if err != nil {
		var gate *service.GateError
		if errors.As(err, &gate) {
			h.send(chatID, "⛔ "+gate.Reason)
			return
		}
		h.logger.WithError(err).WithFields(logrus.Fields{
			"chat_id":    chatID,
			"punch_type": punchType,
		}).Error("Telegram punch failed")
		h.send(chatID, "❌ "+userMessage(err))
		return
	}

	text := fmt.Sprintf("✅ %s at %s", punchType.Label(), p.PunchTime.In(h.location).Format("15:04"))
	if punchType == models.PunchClockOut {
		if today, err := h.punches.Today(ctx, actor.CompanyID, actor.EmployeeID); err == nil {
			text += fmt.Sprintf("\n⏳ Worked today: %.2f h", timesheet.DayHours(today))
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if kb, ok := h.keyboard(ctx, actor); ok {
		msg.ReplyMarkup = kb
	}
	h.sendMessage(msg)
}

// keyboard builds one button per currently allowed action.
func (h *Handler) keyboard(ctx context.Context, actor *service.Actor) (tgbotapi.InlineKeyboardMarkup, bool) {
	actions, err := h.punches.TodayActions(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load today's actions")
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range actions {
		if !a.Enabled {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(a.Label, callbackData(a.Type)),
		))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func (h *Handler) showStatus(ctx context.Context, chatID int64) {
	actor := h.actorFor(ctx, chatID)
	if actor == nil {
		return
	}

	actions, err := h.punches.TodayActions(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		h.send(chatID, "❌ "+userMessage(err))
		return
	}

	var b strings.Builder
	b.WriteString("📍 Today:\n")
	for _, a := range actions {
		if a.Enabled {
			fmt.Fprintf(&b, "🟢 %s\n", a.Label)
		} else {
			fmt.Fprintf(&b, "⚪ %s: %s\n", a.Label, a.Reason)
		}
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimRight(b.String(), "\n"))
	if kb, ok := h.keyboard(ctx, actor); ok {
		msg.ReplyMarkup = kb
	}
	h.sendMessage(msg)
}

func (h *Handler) showToday(ctx context.Context, chatID int64) {
	actor := h.actorFor(ctx, chatID)
	if actor == nil {
		return
	}

	today, err := h.punches.Today(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		h.send(chatID, "❌ "+userMessage(err))
		return
	}
	if len(today) == 0 {
		h.send(chatID, "📭 No punches today yet. Use /in to clock in.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s\n\n", timesheet.LocalDay(h.now(), h.location))
	for _, p := range today {
		fmt.Fprintf(&b, "%s  %s\n", p.PunchTime.In(h.location).Format("15:04"), p.PunchType.Label())
	}
	fmt.Fprintf(&b, "\n⏳ Hours: %.2f", timesheet.DayHours(today))

	h.send(chatID, b.String())
}

func (h *Handler) showWeek(ctx context.Context, chatID int64) {
	actor := h.actorFor(ctx, chatID)
	if actor == nil {
		return
	}

	monday, sunday := timesheet.WeekOf(h.now(), h.location)
	report, err := h.reports.Weekly(ctx, *actor, service.ReportQuery{
		StartDate: monday.Format(timesheet.DateLayout),
		EndDate:   sunday.Format(timesheet.DateLayout),
	})
	if err != nil {
		h.send(chatID, "❌ "+userMessage(err))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Week %s - %s\n\n", monday.Format("02.01"), sunday.Format("02.01"))

	total := 0.0
	if len(report.Rows) > 0 {
		row := report.Rows[0]
		for _, day := range row.SortedDays() {
			fmt.Fprintf(&b, "%s: %.2f h\n", day.Date, day.Hours)
		}
		total = row.TotalHours
	} else {
		b.WriteString("No punches this week.\n")
	}
	fmt.Fprintf(&b, "\n⏳ Total: %.2f h", total)

	h.send(chatID, b.String())
}

// userMessage is the text shown for a service error.
func userMessage(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Something went wrong, please try again later."
}
