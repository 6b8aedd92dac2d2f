package plugins

import (
	"pagecells/internal/plugin"
)

// Container shows a title line above its nested rows. Its state is the
// title.
type Container struct{}

var (
	_ plugin.Plugin     = Container{}
	_ plugin.TextEditor = Container{}
)

func (Container) ID() string      { return "container" }
func (Container) Name() string    { return "Container" }
func (Container) Version() string { return "1.0.0" }
func (Container) Text() string    { return "Layout container" }

func (Container) Render(props plugin.Props, children string) string {
	title := stateString(props.State)
	if title == "" {
		title = props.Name
	}
	return joinChildren(fit(titleStyle.Render(title), props.Width), children)
}

func (Container) EditText(state any) string {
	return stateString(state)
}

func (Container) ApplyText(text string) any {
	return text
}

// Spacer renders blank lines. Its state is the number of lines, default 1.
type Spacer struct{}

var _ plugin.Plugin = Spacer{}

func (Spacer) ID() string      { return "spacer" }
func (Spacer) Name() string    { return "Spacer" }
func (Spacer) Version() string { return "1.0.0" }

func (Spacer) Render(props plugin.Props, children string) string {
	n := 1
	switch v := props.State.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	}
	n = max(n, 1)
	body := ""
	for i := 1; i < n; i++ {
		body += "\n"
	}
	if !props.ReadOnly {
		body = hintStyle.Render("·") + body
	}
	return joinChildren(body, children)
}
