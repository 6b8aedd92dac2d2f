package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecells/internal/cell"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugin"
	"pagecells/internal/plugins"
	"pagecells/internal/templates"
)

func testScope() *options.Scope {
	return options.NewScope(&options.Options{
		CellPlugins: []plugin.Plugin{plugins.Text{}, plugins.Container{}, plugins.Spacer{}},
	}, nil)
}

const samplePage = `lang: de
rows:
  - id: top
    cells:
      - id: box
        plugin: container
        state: Intro
        size: 8
        spacing: 1
        rows:
          - cells:
              - id: hello
                plugin: text
                state: Hallo
      - id: gap
        plugin: spacer
        state: 2
        size: 4
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o644))

	s, err := Load(path, testScope())
	require.NoError(t, err)

	assert.Equal(t, "de", s.Lang())
	assert.Equal(t, []string{"top"}, s.RootRows())
	assert.Equal(t, []string{"box", "hello", "gap"}, s.CellIDs())

	box, ok := s.Cell("box")
	require.True(t, ok)
	assert.Equal(t, "container", box.Layout.Plugin.ID())
	assert.Equal(t, "Intro", box.Layout.State)
	assert.Equal(t, 8, box.Size)
	assert.Equal(t, options.Uniform(1), options.NormalizeSpacing(box.Spacing))
	require.Len(t, box.Rows, 1)

	row, ok := s.Row(box.Rows[0])
	require.True(t, ok)
	assert.Equal(t, "row-1", row.ID)
	assert.Equal(t, []string{"hello"}, row.Cells)

	gap, _ := s.Cell("gap")
	assert.Equal(t, 2, gap.Layout.State)
}

func TestLoadUnknownPlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := "rows:\n  - cells:\n      - id: v\n        plugin: video\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Load(path, testScope())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown plugin "video" for cell "v"`)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "page.txt"), testScope())
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"page.yaml", "page.json"} {
		t.Run(name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "src.yaml")
			require.NoError(t, os.WriteFile(src, []byte(samplePage), 0o644))
			s, err := Load(src, testScope())
			require.NoError(t, err)
			require.NoError(t, s.Dispatch(cell.UpdateCellLayout{ID: "hello", State: "Servus"}))
			require.NoError(t, s.Dispatch(cell.FocusCell{ID: "hello"}))

			dst := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(dst, s))

			again, err := Load(dst, testScope())
			require.NoError(t, err)
			assert.Equal(t, s.CellIDs(), again.CellIDs())
			if name == "page.yaml" {
				assert.Equal(t, FromStore(s), FromStore(again))
			}

			hello, _ := again.Cell("hello")
			assert.Equal(t, "Servus", hello.Layout.State)
			assert.False(t, hello.Focused)

			gap, _ := again.Cell("gap")
			assert.EqualValues(t, 2, gap.Layout.State)
		})
	}
}

func TestDecodeJSONNormalizesNumbers(t *testing.T) {
	p, err := Decode([]byte(`{"rows":[{"cells":[{"id":"a","plugin":"spacer","state":3,"spacing":{"top":1}}]}]}`), FormatJSON)
	require.NoError(t, err)
	c := p.Rows[0].Cells[0]
	assert.Equal(t, int64(3), c.State)
	assert.Equal(t, options.Spacing{Top: 1}, options.NormalizeSpacing(c.Spacing))
}

func TestTemplatesLoad(t *testing.T) {
	scope := options.NewScope(&options.Options{
		CellPlugins: plugins.NewCatalog(logging.NewNop()).All(),
	}, nil)
	for name, data := range templates.Files() {
		t.Run(name, func(t *testing.T) {
			p, err := Decode(data, FormatYAML)
			require.NoError(t, err)
			s, err := p.Build(scope)
			require.NoError(t, err)
			assert.NotZero(t, s.Len())
		})
	}
}
