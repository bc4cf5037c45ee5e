package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const pageSize = 10

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	chatID := c.Chat().ID
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already shows this content, acknowledging",
			zap.Int64("chat_id", chatID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", chatID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback acknowledges callbacks no button handler claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", cleanCallbackData(callback.Data)),
		zap.String("unique", callback.Unique),
		zap.Int64("chat_id", c.Chat().ID),
	)
	return c.Respond()
}

// handleBrowse shows the first page of cards
func (h *Handler) handleBrowse(c tele.Context) error {
	h.Goto(c.Chat().ID, domain.ViewBrowse)
	return h.showPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context) error {
	page, err := strconv.Atoi(cleanCallbackData(c.Callback().Data))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showPage(c, page)
}

func (h *Handler) showPage(c tele.Context, page int) error {
	cards := h.store.Snapshot()
	if len(cards) == 0 {
		return h.show(c, "You have no cards yet.", browseEmptyMarkup())
	}

	page, totalPages := clampPage(page, len(cards))
	from := (page - 1) * pageSize
	to := min(from+pageSize, len(cards))

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i := from; i < to; i++ {
		label := strconv.Itoa(i + 1)
		rows = append(rows, markup.Row(
			markup.Data("✏️ "+label, btnEdit.Unique, cards[i].ID),
			markup.Data("🗑 "+label, btnDelete.Unique, cards[i].ID),
		))
	}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", btnPage.Unique, strconv.Itoa(page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", btnPage.Unique, strconv.Itoa(page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, markup.Row(btnAdd, btnMainMenu))
	markup.Inline(rows...)

	return h.show(c, renderCardList(cards[from:to], from, page, totalPages), markup)
}

// clampPage keeps page within [1, totalPages]
func clampPage(page, cardCount int) (int, int) {
	totalPages := (cardCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

func browseEmptyMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnAdd, btnImport), markup.Row(btnMainMenu))
	return markup
}

// handleAdd starts the add flow
func (h *Handler) handleAdd(c tele.Context) error {
	chatID := c.Chat().ID
	h.Goto(chatID, domain.ViewAdd)
	h.SetState(chatID, &domain.StateData{
		View:  domain.ViewAdd,
		State: domain.StateWaitingSource,
		Card:  domain.Editing{},
	})
	return h.show(c, "Send the English text", cancelMarkup())
}

// handleEditCard starts the edit flow for one card
func (h *Handler) handleEditCard(c tele.Context) error {
	chatID := c.Chat().ID
	id := cleanCallbackData(c.Callback().Data)

	card, ok := h.store.Get(id)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "That card no longer exists"})
	}

	h.Goto(chatID, domain.ViewBrowse)
	h.SetState(chatID, &domain.StateData{
		View:  domain.ViewBrowse,
		State: domain.StateWaitingSource,
		Card:  domain.Editing{ID: card.ID, Draft: domain.NewCard{English: card.English, Kurdish: card.Kurdish}},
	})

	text := fmt.Sprintf("%s\n\nSend the new English text", renderCardView(domain.Viewing{Card: card}))
	return h.show(c, text, cancelMarkup())
}

// handleDeleteCard removes a card and shows the list again
func (h *Handler) handleDeleteCard(c tele.Context) error {
	id := cleanCallbackData(c.Callback().Data)

	if !h.store.Remove(id) {
		return c.Respond(&tele.CallbackResponse{Text: "That card no longer exists"})
	}

	h.logger.Info("Card removed",
		zap.Int64("chat_id", c.Chat().ID),
		zap.String("card_id", id),
	)
	return h.showPage(c, 1)
}
