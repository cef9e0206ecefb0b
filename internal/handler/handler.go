package handler

import (
	"context"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/service"
	"time-clock/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the part of the bot API the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot       Sender
	employees *service.EmployeeService
	punches   *service.PunchService
	reports   *service.ReportService
	companies *service.CompanyService
	location  *time.Location
	now       func() time.Time
	logger    *logrus.Logger
}

func NewHandler(
	client *telegram.Client,
	employees *service.EmployeeService,
	punches *service.PunchService,
	reports *service.ReportService,
	companies *service.CompanyService,
	location *time.Location,
) *Handler {
	return newHandler(client.Bot, employees, punches, reports, companies, location)
}

func newHandler(
	bot Sender,
	employees *service.EmployeeService,
	punches *service.PunchService,
	reports *service.ReportService,
	companies *service.CompanyService,
	location *time.Location,
) *Handler {
	return &Handler{
		bot:       bot,
		employees: employees,
		punches:   punches,
		reports:   reports,
		companies: companies,
		location:  location,
		now:       time.Now,
		logger:    config.NewLogger(),
	}
}

// HandleUpdates processes updates until the channel closes or ctx is done.
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Обработка callback query (для inline кнопок)
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(ctx, update.Message)
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	fields := logrus.Fields{"chat_id": message.Chat.ID}
	if message.From != nil {
		fields["from"] = message.From.UserName
	}
	h.logger.WithFields(fields).Debug(message.Text)

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.send(message.Chat.ID, "Use /help to see what I can do.")
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Отвечаем на callback (убираем "часики" у кнопки)
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			h.logger.WithError(err).Warn("Failed to answer callback")
		}
	}()

	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	punchType, ok := parseCallback(callback.Data)
	if !ok {
		h.logger.WithField("data", callback.Data).Warn("Unknown callback data")
		return
	}

	// Удаляем клавиатуру
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.WithError(err).Debug("Failed to remove keyboard")
	}

	h.punch(ctx, chatID, punchType)
}

func (h *Handler) send(chatID int64, text string) {
	h.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", msg.ChatID).Error("Failed to send message")
	}
}
