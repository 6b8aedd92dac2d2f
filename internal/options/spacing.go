package options

import (
	"encoding/json"
	"fmt"
	"math"
)

// Spacing is the canonical four-edge cell spacing.
type Spacing struct {
	Top    int `json:"top,omitempty" yaml:"top,omitempty" toml:"top"`
	Right  int `json:"right,omitempty" yaml:"right,omitempty" toml:"right"`
	Bottom int `json:"bottom,omitempty" yaml:"bottom,omitempty" toml:"bottom"`
	Left   int `json:"left,omitempty" yaml:"left,omitempty" toml:"left"`
}

// Uniform returns a Spacing with all edges set to n.
func Uniform(n int) Spacing {
	return Spacing{Top: n, Right: n, Bottom: n, Left: n}
}

// NormalizeSpacing converts any accepted spacing input to a Spacing.
// Numbers expand to all four edges, structured values pass through with
// missing edges at zero, and anything else (including nil) is zero.
func NormalizeSpacing(v any) Spacing {
	switch s := v.(type) {
	case nil:
		return Spacing{}
	case Spacing:
		return s
	case *Spacing:
		if s == nil {
			return Spacing{}
		}
		return *s
	case map[string]any:
		return Spacing{
			Top:    toInt(s["top"]),
			Right:  toInt(s["right"]),
			Bottom: toInt(s["bottom"]),
			Left:   toInt(s["left"]),
		}
	case map[string]int:
		return Spacing{Top: s["top"], Right: s["right"], Bottom: s["bottom"], Left: s["left"]}
	default:
		if n, ok := number(v); ok {
			return Uniform(n)
		}
		return Spacing{}
	}
}

func toInt(v any) int {
	n, _ := number(v)
	return n
}

func number(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(math.Round(float64(n))), true
	case float64:
		return int(math.Round(n)), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	}
	return 0, false
}

// spacingKey serializes a spacing input for value comparison. Inputs that
// cannot be marshaled compare by their %v form.
func spacingKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "!" + fmt.Sprintf("%#v", v)
	}
	return string(b)
}
