package domain

// View is a screen of the bot
type View string

const (
	ViewBrowse   View = "browse"
	ViewAdd      View = "add"
	ViewImport   View = "import"
	ViewExport   View = "export"
	ViewAlphabet View = "alphabet"
	ViewPractice View = "practice"
)

// ChatState represents what the chat is waiting for
type ChatState string

const (
	StateIdle          ChatState = "idle"
	StateWaitingSource ChatState = "waiting_source"
	StateWaitingTarget ChatState = "waiting_target"
	StateWaitingImport ChatState = "waiting_import"
	StateAnswering     ChatState = "answering"
)

// StateData holds temporary data for a chat's current state
type StateData struct {
	View  View
	State ChatState
	// Card is what the current screen shows for the card being added or
	// edited. Nil outside of the add and edit flows.
	Card CardView
	// ImportToken identifies the import screen instance a pending upload
	// belongs to.
	ImportToken uint64
}

// CardView is either Viewing or Editing
type CardView interface {
	cardView()
}

// Viewing shows a stored card as is
type Viewing struct {
	Card Card
}

// Editing holds a draft being typed. ID is empty for a card being added.
type Editing struct {
	ID    string
	Draft NewCard
}

func (Viewing) cardView() {}
func (Editing) cardView() {}

// IsNew reports whether the draft will become a new card
func (e Editing) IsNew() bool {
	return e.ID == ""
}
