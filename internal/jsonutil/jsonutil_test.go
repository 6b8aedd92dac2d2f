package jsonutil

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	var v map[string]interface{}
	if err := UnmarshalWithContext([]byte(`{"n": 3}`), &v, "page"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v["n"].(json.Number); !ok {
		t.Errorf("expected json.Number, got %T", v["n"])
	}

	err := UnmarshalWithContext([]byte(`{`), &v, "page")
	if err == nil || !strings.HasPrefix(err.Error(), "page: ") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestMarshalIndentWithContext(t *testing.T) {
	b, err := MarshalIndentWithContext(map[string]int{"a": 1}, "page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "{\n  \"a\": 1\n}\n" {
		t.Errorf("unexpected output %q", b)
	}

	_, err = MarshalIndentWithContext(make(chan int), "page")
	if err == nil || !strings.HasPrefix(err.Error(), "page: ") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	in := map[string]interface{}{
		"i":    json.Number("4"),
		"f":    json.Number("1.5"),
		"list": []interface{}{json.Number("2")},
		"s":    "x",
	}
	out := Normalize(in).(map[string]interface{})
	if out["i"] != int64(4) {
		t.Errorf("expected int64(4), got %#v", out["i"])
	}
	if out["f"] != 1.5 {
		t.Errorf("expected 1.5, got %#v", out["f"])
	}
	if out["list"].([]interface{})[0] != int64(2) {
		t.Errorf("expected nested int64(2), got %#v", out["list"])
	}
	if out["s"] != "x" {
		t.Errorf("expected string untouched, got %#v", out["s"])
	}
}
