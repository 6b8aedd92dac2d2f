// Package document reads and writes page files.
//
// A page is a nested tree of rows and cells. Pages are stored as YAML
// (.yaml, .yml) or JSON (.json):
//
//	lang: en
//	rows:
//	  - cells:
//	      - id: intro
//	        plugin: markdown
//	        state: "# Hello"
//	        size: 8
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pagecells/internal/cell"
	"pagecells/internal/jsonutil"
	"pagecells/internal/options"
)

// Page is the serialized form of a document.
type Page struct {
	Lang string `yaml:"lang,omitempty" json:"lang,omitempty"`
	Rows []Row  `yaml:"rows" json:"rows"`
}

// Row is a serialized row. An empty ID is generated on load.
type Row struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Cells []Cell `yaml:"cells" json:"cells"`
}

// Cell is a serialized cell.
type Cell struct {
	ID      string `yaml:"id" json:"id"`
	Plugin  string `yaml:"plugin" json:"plugin"`
	State   any    `yaml:"state,omitempty" json:"state,omitempty"`
	Size    int    `yaml:"size,omitempty" json:"size,omitempty"`
	Spacing any    `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Rows    []Row  `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// Format is a page file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported page format %q", filepath.Ext(path))
}

// Decode parses a page.
func Decode(data []byte, f Format) (Page, error) {
	var p Page
	switch f {
	case FormatJSON:
		if err := jsonutil.UnmarshalWithContext(data, &p, "decode page"); err != nil {
			return Page{}, err
		}
		normalizeCells(p.Rows)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Page{}, fmt.Errorf("decode page: %w", err)
		}
	}
	return p, nil
}

func normalizeCells(rows []Row) {
	for i := range rows {
		for j := range rows[i].Cells {
			c := &rows[i].Cells[j]
			c.State = jsonutil.Normalize(c.State)
			c.Spacing = jsonutil.Normalize(c.Spacing)
			normalizeCells(c.Rows)
		}
	}
}

// Encode serializes a page.
func Encode(p Page, f Format) ([]byte, error) {
	if f == FormatJSON {
		return jsonutil.MarshalIndentWithContext(p, "encode page")
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return b, nil
}

// Build creates a store holding the page. Plugins are resolved through
// scope; an unknown plugin id is an error.
func (p Page) Build(scope *options.Scope) (*cell.Store, error) {
	s := cell.NewStore()
	b := builder{store: s, scope: scope}
	if err := b.rows("", p.Rows); err != nil {
		return nil, err
	}
	if p.Lang != "" {
		if err := s.Dispatch(cell.SetLang{Lang: p.Lang}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type builder struct {
	store *cell.Store
	scope *options.Scope
	rowN  int
}

func (b *builder) rows(parent string, rows []Row) error {
	for _, r := range rows {
		id := r.ID
		if id == "" {
			b.rowN++
			id = fmt.Sprintf("row-%d", b.rowN)
		}
		if err := b.store.AppendRow(parent, id); err != nil {
			return err
		}
		for _, c := range r.Cells {
			p := b.scope.Plugin(c.Plugin)
			if p == nil {
				return fmt.Errorf("unknown plugin %q for cell %q", c.Plugin, c.ID)
			}
			n := cell.Node{
				ID:      c.ID,
				Layout:  cell.Layout{Plugin: p, State: c.State},
				Size:    c.Size,
				Spacing: c.Spacing,
			}
			if err := b.store.AppendCell(id, n); err != nil {
				return err
			}
			if err := b.rows(c.ID, c.Rows); err != nil {
				return err
			}
		}
	}
	return nil
}

// FromStore captures the current content of a store. Focus and scroll
// state are not persisted.
func FromStore(s *cell.Store) Page {
	return Page{Lang: s.Lang(), Rows: rowsOf(s, s.RootRows())}
}

func rowsOf(s *cell.Store, ids []string) []Row {
	out := make([]Row, 0, len(ids))
	for _, rowID := range ids {
		r, ok := s.Row(rowID)
		if !ok {
			continue
		}
		row := Row{ID: r.ID, Cells: make([]Cell, 0, len(r.Cells))}
		for _, id := range r.Cells {
			n, ok := s.Cell(id)
			if !ok {
				continue
			}
			c := Cell{
				ID:      n.ID,
				State:   n.Layout.State,
				Size:    n.Size,
				Spacing: n.Spacing,
			}
			if n.Layout.Plugin != nil {
				c.Plugin = n.Layout.Plugin.ID()
			}
			if !n.IsLeaf() {
				c.Rows = rowsOf(s, n.Rows)
			}
			row.Cells = append(row.Cells, c)
		}
		out = append(out, row)
	}
	return out
}

// Load reads the page at path into a new store.
func Load(path string, scope *options.Scope) (*cell.Store, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", path, err)
	}
	p, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", path, err)
	}
	s, err := p.Build(scope)
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", path, err)
	}
	return s, nil
}

// Save writes the content of s to path, creating parent directories.
func Save(path string, s *cell.Store) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(FromStore(s), f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save page %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save page %s: %w", path, err)
	}
	return nil
}
