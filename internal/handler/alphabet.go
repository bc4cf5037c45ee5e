package handler

import (
	"cardbot/internal/catalog"
	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAlphabet shows the letterform table
func (h *Handler) handleAlphabet(c tele.Context) error {
	h.Goto(c.Chat().ID, domain.ViewAlphabet)

	forms, err := catalog.Letterforms()
	if err != nil {
		h.logger.Error("Failed to load letterforms", zap.Error(err))
		return h.show(c, "The alphabet table is unavailable.", backMarkup())
	}
	return h.show(c, renderAlphabet(forms), backMarkup())
}
