package cell

// Mode is the document-level display mode.
type Mode int

const (
	ModeEdit Mode = iota
	ModePreview
	ModeLayout
	ModeResize
	ModeInsert
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "Edit"
	case ModePreview:
		return "Preview"
	case ModeLayout:
		return "Layout"
	case ModeResize:
		return "Resize"
	case ModeInsert:
		return "Insert"
	default:
		return "Unknown"
	}
}
