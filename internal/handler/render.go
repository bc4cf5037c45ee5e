package handler

import (
	"fmt"
	"strings"

	"cardbot/internal/domain"
	"cardbot/internal/service"
)

const emptyText = "∅"

// renderCardList renders one page of cards. offset is the index of the
// first card in the whole collection.
func renderCardList(cards []domain.Card, offset, page, totalPages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Your cards (page %d/%d):\n\n", page, totalPages)
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. %s — %s\n", offset+i+1, orEmpty(c.English), orEmpty(c.Kurdish))
	}
	return b.String()
}

// renderCardView renders a single card for display or while it is edited
func renderCardView(v domain.CardView) string {
	switch v := v.(type) {
	case domain.Viewing:
		return fmt.Sprintf("🇬🇧 %s\n🟡 %s", orEmpty(v.Card.English), orEmpty(v.Card.Kurdish))
	case domain.Editing:
		title := "✏️ Editing card"
		if v.IsNew() {
			title = "➕ New card"
		}
		return fmt.Sprintf("%s\n🇬🇧 %s\n🟡 %s", title, orEmpty(v.Draft.English), orEmpty(v.Draft.Kurdish))
	default:
		return ""
	}
}

// renderPrompt renders the current practice card
func renderPrompt(quiz *service.Quiz, notice string) string {
	prompt, ok := quiz.Prompt()
	if !ok {
		return notice + "No card. Add some cards to practice."
	}

	correct, attempted := quiz.Score()
	return fmt.Sprintf("%s🎯 %s · card %d/%d\n\n%s\n\nType the answer.\n%s",
		notice,
		quiz.Direction(),
		quiz.Position()+1,
		quiz.Len(),
		orEmpty(prompt),
		renderScore(correct, attempted),
	)
}

// renderReveal renders feedback for the revealed card
func renderReveal(quiz *service.Quiz, answer string) string {
	prompt, _ := quiz.Prompt()
	input := quiz.Input()

	verdict := "❌ Not quite"
	if input == answer {
		verdict = "✅ Correct!"
	}

	correct, attempted := quiz.Score()
	return fmt.Sprintf("%s\n\n%s\n\n%s\nAnswer: %s\n\n%s",
		orEmpty(prompt),
		verdict,
		renderFeedback(service.Compare(input, answer)),
		orEmpty(answer),
		renderScore(correct, attempted),
	)
}

// renderFeedback marks every character of the attempt
func renderFeedback(marks []service.Mark) string {
	if len(marks) == 0 {
		return emptyText
	}
	parts := make([]string, len(marks))
	for i, m := range marks {
		sign := "❌"
		if m.Correct {
			sign = "✅"
		}
		parts[i] = sign + string(m.Char)
	}
	return strings.Join(parts, " ")
}

func renderScore(correct, attempted int) string {
	return fmt.Sprintf("Score: %d/%d", correct, attempted)
}

// renderAlphabet renders the letterform table, one letter per line
func renderAlphabet(forms []domain.Letterform) string {
	var b strings.Builder
	b.WriteString("🔤 Alphabet\nisolated · initial · medial · final\n\n")
	for _, f := range forms {
		fmt.Fprintf(&b, "%s  %s  %s  %s — %s", f.Isolated, f.Initial, f.Medial, f.Final, f.Romanization)
		if f.Note != "" {
			fmt.Fprintf(&b, " (%s)", f.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orEmpty(s string) string {
	if s == "" {
		return emptyText
	}
	return s
}
