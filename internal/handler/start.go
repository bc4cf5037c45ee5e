package handler

import (
	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const mainMenuText = "🏠 Main menu\n\nChoose what to do:"

// handleStart handles /start and the menu button
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID

	h.logger.Info("Main menu opened",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	h.Goto(chatID, domain.ViewBrowse)
	return h.show(c, mainMenuText, mainMenuMarkup())
}

// handleCancel abandons the add, edit or import flow
func (h *Handler) handleCancel(c tele.Context) error {
	h.Goto(c.Chat().ID, domain.ViewBrowse)
	return h.show(c, mainMenuText, mainMenuMarkup())
}

// show edits the message behind a callback, or sends a new one
func (h *Handler) show(c tele.Context, what interface{}, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Edit(what, opts...); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(what, opts...)
		}
		return c.Respond()
	}
	return c.Send(what, opts...)
}
