package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestHeaderInfoPreservesKeyOrder(t *testing.T) {
	input := `{"Exam Name": "Final", "Roll No": 42, "Centre": "North", "Date": "2024-06-01"}`

	var h HeaderInfo
	if err := json.Unmarshal([]byte(input), &h); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := []string{"Exam Name", "Roll No", "Centre", "Date"}
	if !reflect.DeepEqual(h.Keys(), want) {
		t.Errorf("Keys = %v, want %v", h.Keys(), want)
	}
}

func TestHeaderInfoValueCoercion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		key      string
		expected string
	}{
		{name: "string", input: `{"k": "v"}`, key: "k", expected: "v"},
		{name: "integer", input: `{"k": 42}`, key: "k", expected: "42"},
		{name: "decimal", input: `{"k": 4.25}`, key: "k", expected: "4.25"},
		{name: "null", input: `{"k": null}`, key: "k", expected: ""},
		{name: "bool", input: `{"k": false}`, key: "k", expected: "false"},
		{name: "nested array keeps JSON form", input: `{"k": [1,2]}`, key: "k", expected: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h HeaderInfo
			if err := json.Unmarshal([]byte(tt.input), &h); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			got, ok := h.Get(tt.key)
			if !ok {
				t.Fatalf("Key %q missing", tt.key)
			}
			if got != tt.expected {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestHeaderInfoMarshalOrder(t *testing.T) {
	var h HeaderInfo
	h.Set("b", "2")
	h.Set("a", "1")
	h.Set("c", "3")

	out, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got := string(out)
	if strings.Index(got, `"b"`) > strings.Index(got, `"a"`) || strings.Index(got, `"a"`) > strings.Index(got, `"c"`) {
		t.Errorf("Expected insertion order b,a,c in output, got %s", got)
	}
}

func TestHeaderInfoSetReplacesWithoutDuplicating(t *testing.T) {
	var h HeaderInfo
	h.Set("k", "old")
	h.Set("k", "new")

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	if v, _ := h.Get("k"); v != "new" {
		t.Errorf("Get = %q, want %q", v, "new")
	}
}
