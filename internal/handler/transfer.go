package handler

import (
	"bytes"
	"errors"
	"fmt"

	"cardbot/internal/domain"
	"cardbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleExport sends the collection as cards.json
func (h *Handler) handleExport(c tele.Context) error {
	chatID := c.Chat().ID
	h.Goto(chatID, domain.ViewExport)

	raw, err := h.store.Export()
	if err != nil {
		h.logger.Error("Failed to export cards", zap.Error(err))
		return c.Send("Export failed. Try again later.", backMarkup())
	}

	if c.Callback() != nil {
		_ = c.Respond()
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(raw)),
		FileName: service.ExportFileName,
		MIME:     "application/json",
		Caption:  fmt.Sprintf("%d cards", h.store.Len()),
	}
	return c.Send(doc, backMarkup())
}

// handleImport opens the import screen
func (h *Handler) handleImport(c tele.Context) error {
	chatID := c.Chat().ID

	h.Goto(chatID, domain.ViewImport)
	h.importSeq++
	h.SetState(chatID, &domain.StateData{
		View:        domain.ViewImport,
		State:       domain.StateWaitingImport,
		ImportToken: h.importSeq,
	})

	return h.show(c, "📥 Send a "+service.ExportFileName+" file as a document.\n\nIt replaces all current cards.", cancelMarkup())
}

// handleDocument starts reading an uploaded import file
func (h *Handler) handleDocument(c tele.Context) error {
	chatID := c.Chat().ID
	state := h.GetState(chatID)

	if state.State != domain.StateWaitingImport {
		return c.Send("To replace your cards, open Import first.", mainMenuMarkup())
	}

	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	h.startImport(chatID, state.ImportToken, doc)
	return c.Send("⏳ Reading file…")
}

// startImport downloads doc off the dispatch lock; completeImport re-checks
// that the import screen is still open. WaitImports waits for it.
func (h *Handler) startImport(chatID int64, token uint64, doc *tele.Document) {
	h.imports.Add(1)
	go func() {
		defer h.imports.Done()
		cards, err := h.readImport(doc)
		h.dispatch.Lock()
		defer h.dispatch.Unlock()
		h.completeImport(chatID, token, cards, err)
	}()
}

// WaitImports blocks until every started import has been applied or dropped
func (h *Handler) WaitImports() {
	h.imports.Wait()
}

func (h *Handler) readImport(doc *tele.Document) ([]domain.Card, error) {
	rc, err := h.fetch(doc)
	if err != nil {
		return nil, fmt.Errorf("download import file: %w", err)
	}
	defer rc.Close()

	return service.DecodeImport(rc, h.importMaxBytes)
}

// completeImport applies a finished import if the chat is still on the
// import screen it started from. Caller must hold dispatch.
func (h *Handler) completeImport(chatID int64, token uint64, cards []domain.Card, err error) bool {
	state := h.GetState(chatID)
	if state.State != domain.StateWaitingImport || state.ImportToken != token {
		h.logger.Info("Dropping import",
			zap.Int64("chat_id", chatID),
			zap.Uint64("token", token),
			zap.Error(service.ErrStaleImport),
		)
		return false
	}

	chat := tele.ChatID(chatID)

	if err != nil {
		h.logger.Warn("Import rejected", zap.Int64("chat_id", chatID), zap.Error(err))
		if _, sendErr := h.messenger.Send(chat, importErrorText(err), cancelMarkup()); sendErr != nil {
			h.logger.Warn("Failed to report import error", zap.Error(sendErr))
		}
		return false
	}

	h.store.ReplaceAll(cards)
	h.Goto(chatID, domain.ViewBrowse)

	h.logger.Info("Cards imported", zap.Int64("chat_id", chatID), zap.Int("cards", len(cards)))

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBrowse, btnMainMenu))
	if _, sendErr := h.messenger.Send(chat, fmt.Sprintf("✅ Imported %d cards.", len(cards)), markup); sendErr != nil {
		h.logger.Warn("Failed to confirm import", zap.Error(sendErr))
	}
	return true
}

func importErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrNoFile):
		return "No file selected."
	case errors.Is(err, service.ErrInvalidImport):
		return "❌ That file is not a valid card export. Your cards were not changed.\n\n" + err.Error()
	default:
		return "❌ Could not read the file. Your cards were not changed."
	}
}
