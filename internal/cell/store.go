package cell

import (
	"fmt"
	"slices"
	"sync"
)

// Store owns the layout tree, the display mode and the selected language.
// It is the single write path for cells: every change goes through
// Dispatch.
type Store struct {
	mu sync.RWMutex

	cells map[string]Node
	rows  map[string]Row
	root  []string

	cellRow   map[string]string // cell id -> containing row id
	rowParent map[string]string // row id -> owning cell id, "" for root rows

	mode Mode
	lang string

	subscribers []func(Action)
}

// NewStore creates an empty document in edit mode.
func NewStore() *Store {
	return &Store{
		cells:     make(map[string]Node),
		rows:      make(map[string]Row),
		cellRow:   make(map[string]string),
		rowParent: make(map[string]string),
		mode:      ModeEdit,
	}
}

// Subscribe registers fn to be called after every applied action.
// Callbacks run outside the store lock and may read the store.
func (s *Store) Subscribe(fn func(Action)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AppendRow adds an empty row under the given cell, or at the root when
// parent is "".
func (s *Store) AppendRow(parent, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rowID == "" {
		return fmt.Errorf("append row: empty id")
	}
	if _, dup := s.rows[rowID]; dup {
		return fmt.Errorf("append row: duplicate row id %q", rowID)
	}
	if parent == "" {
		s.root = append(s.root, rowID)
	} else {
		n, ok := s.cells[parent]
		if !ok {
			return fmt.Errorf("append row %q: unknown cell %q", rowID, parent)
		}
		n.Rows = append(slices.Clone(n.Rows), rowID)
		s.cells[parent] = n
	}
	s.rows[rowID] = Row{ID: rowID}
	s.rowParent[rowID] = parent
	return nil
}

// AppendCell adds n as the last cell of a row. n.Rows is ignored; nest
// rows with AppendRow.
func (s *Store) AppendCell(rowID string, n Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		return fmt.Errorf("append cell: empty id")
	}
	if _, dup := s.cells[n.ID]; dup {
		return fmt.Errorf("append cell: duplicate cell id %q", n.ID)
	}
	r, ok := s.rows[rowID]
	if !ok {
		return fmt.Errorf("append cell %q: unknown row %q", n.ID, rowID)
	}
	n.Rows = nil
	r.Cells = append(slices.Clone(r.Cells), n.ID)
	s.rows[rowID] = r
	s.cells[n.ID] = n
	s.cellRow[n.ID] = rowID
	return nil
}

// Dispatch applies a.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	err := s.apply(a)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, fn := range subs {
		fn(a)
	}
	return nil
}

func (s *Store) apply(a Action) error {
	switch a := a.(type) {
	case UpdateCellLayout:
		s.update(a.ID, func(n *Node) { n.Layout.State = a.State })
	case FocusCell:
		if _, ok := s.cells[a.ID]; !ok {
			return nil
		}
		for id, n := range s.cells {
			if n.Focused && id != a.ID {
				n.Focused = false
				s.cells[id] = n
			}
		}
		s.update(a.ID, func(n *Node) {
			n.Focused = true
			n.FocusSource = a.Source
			if a.Scroll {
				n.ScrollToCell = true
			}
		})
	case BlurCell:
		s.update(a.ID, func(n *Node) { n.Focused = false })
	case BlurAllCells:
		for id, n := range s.cells {
			if n.Focused {
				n.Focused = false
				s.cells[id] = n
			}
		}
	case RemoveCell:
		s.remove(a.ID)
	case InsertCellAfter:
		return s.insertAfter(a.After, a.Node)
	case ResizeCell:
		size := min(max(a.Size, 1), GridColumns)
		s.update(a.ID, func(n *Node) { n.Size = size })
	case MoveCell:
		s.move(a.ID, a.Delta)
	case ClearScroll:
		s.update(a.ID, func(n *Node) { n.ScrollToCell = false })
	case SetMode:
		s.mode = a.Mode
	case SetLang:
		s.lang = a.Lang
	default:
		return fmt.Errorf("dispatch: unsupported action %T", a)
	}
	return nil
}

// update replaces the node with a modified copy. Unknown ids are ignored.
func (s *Store) update(id string, fn func(n *Node)) {
	n, ok := s.cells[id]
	if !ok {
		return
	}
	fn(&n)
	s.cells[id] = n
}

func (s *Store) remove(id string) {
	rowID, ok := s.cellRow[id]
	if !ok {
		return
	}
	s.dropCell(id)
	r := s.rows[rowID]
	r.Cells = slices.DeleteFunc(slices.Clone(r.Cells), func(c string) bool { return c == id })
	s.rows[rowID] = r
	if len(r.Cells) == 0 {
		s.unlinkRow(rowID)
	}
}

func (s *Store) move(id string, delta int) {
	rowID, ok := s.cellRow[id]
	if !ok || delta == 0 {
		return
	}
	r := s.rows[rowID]
	from := slices.Index(r.Cells, id)
	to := min(max(from+delta, 0), len(r.Cells)-1)
	if to == from {
		return
	}
	cells := slices.Delete(slices.Clone(r.Cells), from, from+1)
	r.Cells = slices.Insert(cells, to, id)
	s.rows[rowID] = r
}

// dropCell forgets a cell and everything nested below it.
func (s *Store) dropCell(id string) {
	n := s.cells[id]
	for _, rowID := range n.Rows {
		for _, child := range s.rows[rowID].Cells {
			s.dropCell(child)
		}
		delete(s.rows, rowID)
		delete(s.rowParent, rowID)
	}
	delete(s.cells, id)
	delete(s.cellRow, id)
}

// unlinkRow removes an empty row from its owner.
func (s *Store) unlinkRow(rowID string) {
	parent := s.rowParent[rowID]
	drop := func(r string) bool { return r == rowID }
	if parent == "" {
		s.root = slices.DeleteFunc(slices.Clone(s.root), drop)
	} else if n, ok := s.cells[parent]; ok {
		n.Rows = slices.DeleteFunc(slices.Clone(n.Rows), drop)
		s.cells[parent] = n
	}
	delete(s.rows, rowID)
	delete(s.rowParent, rowID)
}

func (s *Store) insertAfter(after string, n Node) error {
	if n.ID == "" {
		return fmt.Errorf("insert cell: empty id")
	}
	if _, dup := s.cells[n.ID]; dup {
		return fmt.Errorf("insert cell: duplicate cell id %q", n.ID)
	}
	n.Rows = nil
	if after == "" {
		rowID := n.ID + "-row"
		if _, dup := s.rows[rowID]; dup {
			return fmt.Errorf("insert cell: duplicate row id %q", rowID)
		}
		s.root = append(slices.Clone(s.root), rowID)
		s.rows[rowID] = Row{ID: rowID, Cells: []string{n.ID}}
		s.rowParent[rowID] = ""
		s.cells[n.ID] = n
		s.cellRow[n.ID] = rowID
		return nil
	}
	rowID, ok := s.cellRow[after]
	if !ok {
		return fmt.Errorf("insert cell %q: unknown cell %q", n.ID, after)
	}
	r := s.rows[rowID]
	idx := slices.Index(r.Cells, after)
	r.Cells = slices.Insert(slices.Clone(r.Cells), idx+1, n.ID)
	s.rows[rowID] = r
	s.cells[n.ID] = n
	s.cellRow[n.ID] = rowID
	return nil
}

// Cell returns the current snapshot of a cell.
func (s *Store) Cell(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.cells[id]
	return n, ok
}

// Row returns a row by id.
func (s *Store) Row(id string) (Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[id]
	return r, ok
}

// RootRows returns the ids of the top-level rows.
func (s *Store) RootRows() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.root)
}

// ParentRow returns the id of the row containing a cell.
func (s *Store) ParentRow(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.cellRow[id]
	return r, ok
}

// Mode returns the display mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsEditMode reports whether cells are editable.
func (s *Store) IsEditMode() bool {
	return s.Mode() == ModeEdit
}

// IsPreviewMode reports whether the document is shown read-only without
// interaction.
func (s *Store) IsPreviewMode() bool {
	return s.Mode() == ModePreview
}

// Lang returns the selected content language.
func (s *Store) Lang() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Focused returns the id of the focused cell, if any.
func (s *Store) Focused() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, n := range s.cells {
		if n.Focused {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of cells.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// CellIDs returns every cell id in document order (depth first, rows top
// to bottom, cells left to right).
func (s *Store) CellIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	var walkRows func(rows []string, path Path)
	walkRows = func(rows []string, path Path) {
		for _, rowID := range rows {
			for _, id := range s.rows[rowID].Cells {
				if path.Contains(id) {
					continue
				}
				out = append(out, id)
				walkRows(s.cells[id].Rows, path.Append(id))
			}
		}
	}
	walkRows(s.root, nil)
	return out
}
