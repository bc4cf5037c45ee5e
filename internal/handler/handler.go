package handler

import (
	"io"
	"sync"

	"cardbot/internal/domain"
	"cardbot/internal/middleware"
	"cardbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Messenger sends messages outside of a handler context
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// QuizFactory creates an empty practice session
type QuizFactory func() *service.Quiz

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	messenger Messenger
	fetch     func(doc *tele.Document) (io.ReadCloser, error)
	store     *service.CollectionStore
	newQuiz   QuizFactory
	logger    *zap.Logger

	importMaxBytes int64

	// dispatch serializes every update so handlers run one at a time
	dispatch sync.Mutex

	// Chat states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Practice sessions, only touched while dispatch is held
	quizzes   map[int64]*service.Quiz
	importSeq uint64
	imports   sync.WaitGroup
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	store *service.CollectionStore,
	newQuiz QuizFactory,
	importMaxBytes int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		messenger: bot,
		fetch: func(doc *tele.Document) (io.ReadCloser, error) {
			return bot.File(&doc.File)
		},
		store:          store,
		newQuiz:        newQuiz,
		logger:         logger,
		importMaxBytes: importMaxBytes,
		states:         make(map[int64]*domain.StateData),
		quizzes:        make(map[int64]*service.Quiz),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(
		middleware.Logger(h.logger),
		middleware.Serialize(&h.dispatch),
	)

	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Navigation
	h.bot.Handle(&btnBrowse, h.handleBrowse)
	h.bot.Handle(&btnAdd, h.handleAdd)
	h.bot.Handle(&btnImport, h.handleImport)
	h.bot.Handle(&btnExport, h.handleExport)
	h.bot.Handle(&btnAlphabet, h.handleAlphabet)
	h.bot.Handle(&btnPractice, h.handlePractice)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnCancel, h.handleCancel)

	// Cards
	h.bot.Handle(&btnPage, h.handlePagination)
	h.bot.Handle(&btnEdit, h.handleEditCard)
	h.bot.Handle(&btnDelete, h.handleDeleteCard)

	// Practice
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnToggle, h.handleToggle)

	// Anything else
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns chat's current state
func (h *Handler) GetState(chatID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[chatID]
	if !exists {
		return &domain.StateData{View: domain.ViewBrowse, State: domain.StateIdle}
	}
	return state
}

// SetState sets chat's state
func (h *Handler) SetState(chatID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[chatID] = state
}

// Goto switches the chat to view and leaves any practice session
func (h *Handler) Goto(chatID int64, view domain.View) {
	if view != domain.ViewPractice {
		delete(h.quizzes, chatID)
	}
	h.SetState(chatID, &domain.StateData{View: view, State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnBrowse = tele.Btn{
		Unique: "browse",
		Text:   "📚 Cards",
	}
	btnAdd = tele.Btn{
		Unique: "add",
		Text:   "➕ Add",
	}
	btnImport = tele.Btn{
		Unique: "import",
		Text:   "📥 Import",
	}
	btnExport = tele.Btn{
		Unique: "export",
		Text:   "📤 Export",
	}
	btnAlphabet = tele.Btn{
		Unique: "alphabet",
		Text:   "🔤 Alphabet",
	}
	btnPractice = tele.Btn{
		Unique: "practice",
		Text:   "🎯 Practice",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Menu",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "➡️ Next",
	}
	btnToggle = tele.Btn{
		Unique: "toggle",
		Text:   "🔁 Switch direction",
	}

	// Buttons carrying data, used for their Unique only
	btnPage   = tele.Btn{Unique: "page"}
	btnEdit   = tele.Btn{Unique: "edit"}
	btnDelete = tele.Btn{Unique: "delete"}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnBrowse, btnAdd),
		menu.Row(btnPractice, btnAlphabet),
		menu.Row(btnImport, btnExport),
	)
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return markup
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
