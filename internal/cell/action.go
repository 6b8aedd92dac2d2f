package cell

import (
	"pagecells/internal/plugin"
)

// Action is a request to change the document. Actions are applied by
// Store.Dispatch.
type Action interface {
	// ActionType names the action for logs, traces and metrics.
	ActionType() string
}

// UpdateCellLayout replaces the plugin state of one cell.
type UpdateCellLayout struct {
	ID    string
	State any
}

// FocusCell focuses one cell and blurs every other.
type FocusCell struct {
	ID     string
	Source plugin.FocusSource
	// Scroll additionally requests the cell to be scrolled into view.
	Scroll bool
}

// BlurCell removes focus from one cell.
type BlurCell struct {
	ID string
}

// BlurAllCells removes focus from every cell.
type BlurAllCells struct{}

// RemoveCell deletes a cell and its subtree. Rows left empty are removed
// as well.
type RemoveCell struct {
	ID string
}

// InsertCellAfter inserts Node into the row of After, right behind it. An
// empty After appends a new root row holding Node.
type InsertCellAfter struct {
	After string
	Node  Node
}

// ResizeCell sets a cell's grid width, clamped to [1, GridColumns].
type ResizeCell struct {
	ID   string
	Size int
}

// MoveCell shifts a cell within its row by Delta positions, clamped to
// the row bounds.
type MoveCell struct {
	ID    string
	Delta int
}

// ClearScroll acknowledges a scroll request.
type ClearScroll struct {
	ID string
}

// SetMode switches the display mode.
type SetMode struct {
	Mode Mode
}

// SetLang selects the content language.
type SetLang struct {
	Lang string
}

func (UpdateCellLayout) ActionType() string { return "update_cell_layout" }
func (FocusCell) ActionType() string        { return "focus_cell" }
func (BlurCell) ActionType() string         { return "blur_cell" }
func (BlurAllCells) ActionType() string     { return "blur_all_cells" }
func (RemoveCell) ActionType() string       { return "remove_cell" }
func (InsertCellAfter) ActionType() string  { return "insert_cell_after" }
func (ResizeCell) ActionType() string       { return "resize_cell" }
func (MoveCell) ActionType() string         { return "move_cell" }
func (ClearScroll) ActionType() string      { return "clear_scroll" }
func (SetMode) ActionType() string          { return "set_mode" }
func (SetLang) ActionType() string          { return "set_lang" }
