package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecells/internal/plugin"
)

// testTree builds:
//
//	root-row: [a, b]
//	a/a-row:  [a1, a2]
func testTree(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.AppendRow("", "root-row"))
	require.NoError(t, s.AppendCell("root-row", Node{ID: "a"}))
	require.NoError(t, s.AppendCell("root-row", Node{ID: "b"}))
	require.NoError(t, s.AppendRow("a", "a-row"))
	require.NoError(t, s.AppendCell("a-row", Node{ID: "a1"}))
	require.NoError(t, s.AppendCell("a-row", Node{ID: "a2"}))
	return s
}

func TestStore_DocumentOrder(t *testing.T) {
	s := testTree(t)
	assert.Equal(t, []string{"a", "a1", "a2", "b"}, s.CellIDs())
	a, ok := s.Cell("a")
	require.True(t, ok)
	assert.Equal(t, []string{"a-row"}, a.Rows)
	assert.False(t, a.IsLeaf())
}

func TestStore_Duplicates(t *testing.T) {
	s := testTree(t)
	assert.Error(t, s.AppendCell("root-row", Node{ID: "a"}))
	assert.Error(t, s.AppendRow("", "root-row"))
	assert.Error(t, s.AppendRow("missing", "x"))
	assert.Error(t, s.Dispatch(InsertCellAfter{After: "a", Node: Node{ID: "b"}}))
}

func TestStore_UpdateCellLayoutReplacesOnlyThatCell(t *testing.T) {
	s := testTree(t)
	before, _ := s.Cell("a1")
	require.NoError(t, s.Dispatch(UpdateCellLayout{ID: "a1", State: "hello"}))

	after, _ := s.Cell("a1")
	assert.Equal(t, "hello", after.Layout.State)
	assert.Nil(t, before.Layout.State, "earlier snapshots are not mutated")
	other, _ := s.Cell("a2")
	assert.Nil(t, other.Layout.State)
}

func TestStore_FocusIsExclusive(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(FocusCell{ID: "a1", Source: plugin.SourceMouseDown}))
	require.NoError(t, s.Dispatch(FocusCell{ID: "b", Source: plugin.SourceKeyboard, Scroll: true}))

	a1, _ := s.Cell("a1")
	b, _ := s.Cell("b")
	assert.False(t, a1.Focused)
	assert.True(t, b.Focused)
	assert.True(t, b.ScrollToCell)
	assert.Equal(t, plugin.SourceKeyboard, b.FocusSource)

	id, ok := s.Focused()
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	require.NoError(t, s.Dispatch(ClearScroll{ID: "b"}))
	b, _ = s.Cell("b")
	assert.False(t, b.ScrollToCell)

	require.NoError(t, s.Dispatch(BlurAllCells{}))
	_, ok = s.Focused()
	assert.False(t, ok)
}

func TestStore_FocusUnknownIsIgnored(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(FocusCell{ID: "a"}))
	require.NoError(t, s.Dispatch(FocusCell{ID: "nope"}))
	id, _ := s.Focused()
	assert.Equal(t, "a", id)
}

func TestStore_RemoveDropsSubtreeAndEmptyRows(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(RemoveCell{ID: "a"}))
	assert.Equal(t, []string{"b"}, s.CellIDs())
	_, ok := s.Cell("a1")
	assert.False(t, ok)
	_, ok = s.Row("a-row")
	assert.False(t, ok)

	require.NoError(t, s.Dispatch(RemoveCell{ID: "b"}))
	assert.Empty(t, s.RootRows())
	assert.Equal(t, 0, s.Len())
}

func TestStore_RemoveLastChildUnlinksRowFromParent(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(RemoveCell{ID: "a1"}))
	require.NoError(t, s.Dispatch(RemoveCell{ID: "a2"}))
	a, _ := s.Cell("a")
	assert.Empty(t, a.Rows)
}

func TestStore_InsertAfter(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(InsertCellAfter{After: "a1", Node: Node{ID: "a1b", Rows: []string{"ignored"}}}))
	row, _ := s.Row("a-row")
	assert.Equal(t, []string{"a1", "a1b", "a2"}, row.Cells)
	n, _ := s.Cell("a1b")
	assert.Empty(t, n.Rows)

	require.NoError(t, s.Dispatch(InsertCellAfter{Node: Node{ID: "c"}}))
	assert.Equal(t, []string{"root-row", "c-row"}, s.RootRows())
}

func TestStore_ResizeClamps(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(ResizeCell{ID: "a", Size: 40}))
	a, _ := s.Cell("a")
	assert.Equal(t, GridColumns, a.Size)
	require.NoError(t, s.Dispatch(ResizeCell{ID: "a", Size: -1}))
	a, _ = s.Cell("a")
	assert.Equal(t, 1, a.Size)
}

func TestStore_MoveWithinRow(t *testing.T) {
	s := testTree(t)
	require.NoError(t, s.Dispatch(MoveCell{ID: "a1", Delta: 1}))
	r, _ := s.Row("a-row")
	assert.Equal(t, []string{"a2", "a1"}, r.Cells)

	require.NoError(t, s.Dispatch(MoveCell{ID: "a1", Delta: 5}))
	r, _ = s.Row("a-row")
	assert.Equal(t, []string{"a2", "a1"}, r.Cells)

	require.NoError(t, s.Dispatch(MoveCell{ID: "a1", Delta: -9}))
	r, _ = s.Row("a-row")
	assert.Equal(t, []string{"a1", "a2"}, r.Cells)
	assert.Equal(t, []string{"a", "a1", "a2", "b"}, s.CellIDs())
}

func TestStore_ModeAndLang(t *testing.T) {
	s := NewStore()
	assert.True(t, s.IsEditMode())
	require.NoError(t, s.Dispatch(SetMode{Mode: ModePreview}))
	assert.True(t, s.IsPreviewMode())
	assert.False(t, s.IsEditMode())
	require.NoError(t, s.Dispatch(SetLang{Lang: "fr"}))
	assert.Equal(t, "fr", s.Lang())
}

func TestStore_SubscribersSeeAppliedActions(t *testing.T) {
	s := testTree(t)
	var seen []string
	s.Subscribe(func(a Action) {
		seen = append(seen, a.ActionType())
		_, _ = s.Focused() // reading from a callback must not deadlock
	})
	require.NoError(t, s.Dispatch(FocusCell{ID: "a"}))
	require.NoError(t, s.Dispatch(BlurCell{ID: "a"}))
	assert.Error(t, s.Dispatch(InsertCellAfter{After: "a", Node: Node{ID: "a"}}))
	assert.Equal(t, []string{"focus_cell", "blur_cell"}, seen)
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := Path{"root"}
	left := base.Append("l")
	right := base.Append("r")
	assert.Equal(t, Path{"root", "l"}, left)
	assert.Equal(t, Path{"root", "r"}, right)
	assert.True(t, left.Contains("root"))
	assert.False(t, left.Contains("r"))
	assert.Equal(t, 2, right.Depth())
}
