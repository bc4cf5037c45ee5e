package handler

import (
	"strings"

	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	chatID := c.Chat().ID
	text := c.Text()

	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	state := h.GetState(chatID)

	switch state.State {
	case domain.StateWaitingSource, domain.StateWaitingTarget:
		return h.handleCardInput(c, state, text)

	case domain.StateWaitingImport:
		// Text is not a file; nothing to import
		return c.Send("No file selected. Send the export file as a document.", cancelMarkup())

	case domain.StateAnswering:
		// Practice answers are compared exactly, so no trimming here
		return h.handleAnswer(c, text)

	default:
		return c.Send(mainMenuText, mainMenuMarkup())
	}
}

// handleCardInput collects the English then the Kurdish text of a draft
func (h *Handler) handleCardInput(c tele.Context, state *domain.StateData, text string) error {
	chatID := c.Chat().ID

	draft, ok := state.Card.(domain.Editing)
	if !ok {
		h.Goto(chatID, domain.ViewBrowse)
		return c.Send(mainMenuText, mainMenuMarkup())
	}

	if state.State == domain.StateWaitingSource {
		draft.Draft.English = text
		h.SetState(chatID, &domain.StateData{
			View:  state.View,
			State: domain.StateWaitingTarget,
			Card:  draft,
		})
		return c.Send(renderCardView(draft)+"\n\nSend the Kurdish text", cancelMarkup())
	}

	draft.Draft.Kurdish = text
	card, ok := h.saveDraft(draft)
	if !ok {
		h.Goto(chatID, domain.ViewBrowse)
		return c.Send("That card no longer exists.", mainMenuMarkup())
	}

	h.logger.Info("Card saved",
		zap.Int64("chat_id", chatID),
		zap.String("card_id", card.ID),
		zap.Bool("new", draft.IsNew()),
	)

	if draft.IsNew() {
		// Stay in the add flow for the next card
		h.SetState(chatID, &domain.StateData{
			View:  domain.ViewAdd,
			State: domain.StateWaitingSource,
			Card:  domain.Editing{},
		})
		return c.Send(renderCardView(domain.Viewing{Card: card})+"\n\n✅ Saved! Send the next English text or cancel.", cancelMarkup())
	}

	h.Goto(chatID, domain.ViewBrowse)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBrowse, btnMainMenu))
	return c.Send(renderCardView(domain.Viewing{Card: card})+"\n\n✅ Updated!", markup)
}

// saveDraft adds or edits the card behind draft
func (h *Handler) saveDraft(draft domain.Editing) (domain.Card, bool) {
	if draft.IsNew() {
		return h.store.Add(draft.Draft), true
	}
	if !h.store.Edit(draft.ID, draft.Draft.English, draft.Draft.Kurdish) {
		return domain.Card{}, false
	}
	return h.store.Get(draft.ID)
}
