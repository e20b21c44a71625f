package models

import (
	"encoding/json"
	"testing"
)

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
	}{
		{name: "String", input: `"hello"`, wantKind: KindText, wantText: "hello"},
		{name: "Null", input: `null`, wantKind: KindNull},
		{name: "Integer coerced", input: `42`, wantKind: KindText, wantText: "42"},
		{name: "Float coerced", input: `3.14`, wantKind: KindText, wantText: "3.14"},
		{name: "Bool coerced", input: `true`, wantKind: KindText, wantText: "true"},
		{name: "Array", input: `["a","b"]`, wantKind: KindList},
		{name: "Object passthrough", input: `{"k":1}`, wantKind: KindRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if v.Kind() != tt.wantKind {
				t.Fatalf("kind = %v, want %v", v.Kind(), tt.wantKind)
			}

			if tt.wantKind == KindText && v.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", v.Text(), tt.wantText)
			}
		})
	}
}

func TestValueListWithNullElement(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`["go", null, "data"]`), &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	elems := v.List()
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}

	if elems[0].Text() != "go" || !elems[1].IsNull() || elems[2].Text() != "data" {
		t.Errorf("unexpected elements: %v", elems)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	input := `{"title":"T","tags":["a",null],"views":42,"date":null,"meta":{"source":"feed"}}`

	var rec Record
	if err := json.Unmarshal([]byte(input), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if rec["title"].Text() != "T" {
		t.Errorf("title = %q", rec["title"].Text())
	}

	if rec["views"].Text() != "42" {
		t.Errorf("views = %q, want coerced text", rec["views"].Text())
	}

	if !rec["date"].IsNull() {
		t.Error("date should be null")
	}

	if rec["meta"].Kind() != KindRaw {
		t.Error("meta should pass through as raw JSON")
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}

	if decoded["title"] != "T" {
		t.Errorf("round-tripped title = %v", decoded["title"])
	}

	meta, ok := decoded["meta"].(map[string]any)
	if !ok || meta["source"] != "feed" {
		t.Errorf("round-tripped meta = %v", decoded["meta"])
	}
}

func TestRecordAbsentVersusNull(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"title":null}`), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if v, ok := rec.Get("title"); !ok || !v.IsNull() {
		t.Error("title should be present and null")
	}

	if rec.Has("content") {
		t.Error("content should be absent")
	}
}

func TestRecordClone(t *testing.T) {
	rec := Record{"title": Text("a")}
	cloned := rec.Clone()
	cloned["title"] = Text("b")

	if rec["title"].Text() != "a" {
		t.Error("Clone should not share key storage with the original")
	}
}

func TestValidationResult(t *testing.T) {
	result := NewValidationResult()
	if !result.IsValid || len(result.Reasons) != 0 {
		t.Fatal("new result should be valid and empty")
	}

	if result.String() != "Valid" {
		t.Errorf("String() = %q", result.String())
	}

	result.AddReason("first")
	result.AddReason("second")

	if result.IsValid {
		t.Error("result with reasons must be invalid")
	}

	if got := result.String(); got != "Invalid: first; second" {
		t.Errorf("String() = %q", got)
	}

	if result.Reasons[0] != "first" || result.Reasons[1] != "second" {
		t.Errorf("reason order wrong: %v", result.Reasons)
	}
}
