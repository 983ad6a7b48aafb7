// Package markup names the element ids, classes and data attributes the board
// server's HTML carries. Everything that reads or writes the view tree goes
// through these names.
package markup

// ============================================================================
// REGION IDS
// ============================================================================

const (
	// ColumnsContainerID is the root container of a rendered board; it carries
	// the board id.
	ColumnsContainerID = "columns-container"

	// BoardContentID is the region replaced on a board refresh.
	BoardContentID = "board-content"

	// ModalBackdropID is the overlay shown while a card modal is open.
	ModalBackdropID = "modal-backdrop"

	// ModalContentID is the region a card modal fragment is swapped into.
	ModalContentID = "modal-content"

	renameFormPrefix  = "rename-form-"
	renameInputPrefix = "rename-input-"
)

// ============================================================================
// DATA ATTRIBUTES
// ============================================================================

const (
	AttrBoardID    = "data-board-id"
	AttrBoardName  = "data-board-name"
	AttrColumnID   = "data-column-id"
	AttrCardID     = "data-card-id"
	AttrItemID     = "data-item-id"
	AttrCompleted  = "data-completed"
	AttrDoneColumn = "data-done-column"
)

// ============================================================================
// CLASSES
// ============================================================================

const (
	ClassColumnHeader       = "column-header"
	ClassColumnTitle        = "column-title"
	ClassCardsContainer     = "cards-container"
	ClassCardItem           = "card-item"
	ClassCardTitle          = "card-title"
	ClassCardDescription    = "card-description"
	ClassChecklistContainer = "checklist-container"
	ClassChecklistItem      = "checklist-item"
	ClassBoardName          = "board-name"
	ClassCompleted          = "completed"
	ClassHidden             = "hidden"
)

// InteractiveControls lists the tags of form controls that never start a drag.
var InteractiveControls = []string{"input", "button", "textarea", "select"}

// CardsGroup is the drag group shared by every card container.
const CardsGroup = "cards"

// RenameFormID returns the id of the inline rename form for a board.
func RenameFormID(boardID string) string {
	return renameFormPrefix + boardID
}

// RenameInputID returns the id of the rename form's text input for a board.
func RenameInputID(boardID string) string {
	return renameInputPrefix + boardID
}
