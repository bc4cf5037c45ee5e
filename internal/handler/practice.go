package handler

import (
	"cardbot/internal/domain"
	"cardbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handlePractice enters practice mode with a fresh forward session
func (h *Handler) handlePractice(c tele.Context) error {
	chatID := c.Chat().ID

	h.Goto(chatID, domain.ViewPractice)
	quiz := h.newQuiz()
	quiz.Start(h.store.Snapshot(), domain.Forward, h.store.Version())
	h.quizzes[chatID] = quiz
	h.SetState(chatID, &domain.StateData{View: domain.ViewPractice, State: domain.StateAnswering})

	h.logger.Info("Practice started", zap.Int64("chat_id", chatID), zap.Int("cards", quiz.Len()))
	return h.show(c, renderPrompt(quiz, ""), practiceMarkup(quiz))
}

// currentQuiz returns the chat's session, restarting it when the cards
// changed since it began
func (h *Handler) currentQuiz(chatID int64) (*service.Quiz, string) {
	quiz, ok := h.quizzes[chatID]
	if !ok {
		return nil, ""
	}
	if version := h.store.Version(); quiz.Stale(version) {
		quiz.Start(h.store.Snapshot(), quiz.Direction(), version)
		return quiz, "Cards changed, starting over.\n\n"
	}
	return quiz, ""
}

// handleAnswer checks a typed answer and reveals the card
func (h *Handler) handleAnswer(c tele.Context, text string) error {
	quiz, notice := h.currentQuiz(c.Chat().ID)
	if quiz == nil {
		return c.Send(mainMenuText, mainMenuMarkup())
	}
	if notice != "" {
		return c.Send(renderPrompt(quiz, notice), practiceMarkup(quiz))
	}

	if !quiz.Submit(text) {
		if quiz.State() == service.Revealed {
			return c.Send("Press Next for the next card.", practiceMarkup(quiz))
		}
		// No card to answer
		return c.Send(renderPrompt(quiz, ""), practiceMarkup(quiz))
	}

	answer, _ := quiz.Answer()
	return c.Send(renderReveal(quiz, answer), practiceMarkup(quiz))
}

// handleNext moves on to the next card
func (h *Handler) handleNext(c tele.Context) error {
	quiz, notice := h.currentQuiz(c.Chat().ID)
	if quiz == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Practice is not running"})
	}
	if notice == "" {
		if !quiz.Advance() {
			return c.Respond(&tele.CallbackResponse{Text: "Answer the card first"})
		}
		if quiz.Position() == 0 && quiz.Len() > 0 {
			notice = "🔄 Round complete, starting over.\n\n"
		}
	}
	return h.show(c, renderPrompt(quiz, notice), practiceMarkup(quiz))
}

// handleToggle swaps prompt and answer sides and reshuffles
func (h *Handler) handleToggle(c tele.Context) error {
	quiz, ok := h.quizzes[c.Chat().ID]
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Practice is not running"})
	}

	quiz.SetDirection(h.store.Snapshot(), quiz.Direction().Toggle(), h.store.Version())
	return h.show(c, renderPrompt(quiz, ""), practiceMarkup(quiz))
}

func practiceMarkup(quiz *service.Quiz) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if quiz.State() == service.Revealed {
		rows = append(rows, markup.Row(btnNext))
	}
	rows = append(rows, markup.Row(btnToggle), markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}
