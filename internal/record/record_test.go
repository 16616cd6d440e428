package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_Values(t *testing.T) {
	r := Record{
		ID: "1",
		Props: map[string]Value{
			"Tags":  List("a", "b"),
			"Note":  String("hello"),
			"Empty": List(),
		},
	}

	if got := r.Values("Tags"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Values(Tags) = %v", got)
	}
	if got := r.Values("Note"); got != nil {
		t.Errorf("Values(Note) = %v, want nil for single value", got)
	}
	if got := r.Values("Missing"); got != nil {
		t.Errorf("Values(Missing) = %v, want nil", got)
	}
	if got := r.Values("Empty"); len(got) != 0 {
		t.Errorf("Values(Empty) = %v, want empty", got)
	}
}

func TestRecord_First(t *testing.T) {
	r := Record{
		ID: "1",
		Props: map[string]Value{
			"Status": List("Todo", "Doing"),
			"Kind":   String("note"),
			"Blank":  String(""),
			"None":   List(),
		},
	}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Status", "Todo", true},
		{"Kind", "note", true},
		{"Blank", "", false},
		{"None", "", false},
		{"Missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.First(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("First(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRecord_UnmarshalFlatForm(t *testing.T) {
	data := `{
		"id": "1",
		"title": "Sample",
		"keywords": ["alpha"],
		"createdTime": "2025-06-01T00:00:00.000Z",
		"url": "https://notion.so/page1",
		"Tags": ["A", "B"],
		"Note": "hello",
		"Count": 3
	}`

	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.ID != "1" || r.Title != "Sample" {
		t.Errorf("got id=%q title=%q", r.ID, r.Title)
	}
	if !reflect.DeepEqual(r.Keywords, []string{"alpha"}) {
		t.Errorf("Keywords = %v", r.Keywords)
	}
	if r.URL != "https://notion.so/page1" {
		t.Errorf("URL = %q", r.URL)
	}
	if !reflect.DeepEqual(r.Values("Tags"), []string{"A", "B"}) {
		t.Errorf("Tags = %v", r.Values("Tags"))
	}
	if v, ok := r.First("Note"); !ok || v != "hello" {
		t.Errorf("Note = %q, %v", v, ok)
	}
	if _, ok := r.Props["Count"]; ok {
		t.Error("numeric property should be ignored")
	}
}

func TestRecord_UnmarshalMissingID(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &r); err == nil {
		t.Error("expected error for record without id")
	}
}

func TestRecord_MarshalFlatForm(t *testing.T) {
	r := Record{
		ID:    "1",
		Title: "Sample",
		Props: map[string]Value{"Tags": List("A"), "Note": String("hi")},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if m["id"] != "1" || m["title"] != "Sample" || m["Note"] != "hi" {
		t.Errorf("unexpected flat form: %s", data)
	}
	if kw, ok := m["keywords"].([]any); !ok || len(kw) != 0 {
		t.Errorf("keywords should be an empty array, got %v", m["keywords"])
	}
	if _, ok := m["url"]; ok {
		t.Error("empty url should be omitted")
	}
}

func TestRecord_WithKeywordsCopies(t *testing.T) {
	orig := Record{ID: "1", Keywords: []string{"old"}}
	kws := []string{"new"}
	got := orig.WithKeywords(kws)
	kws[0] = "mutated"

	if orig.Keywords[0] != "old" {
		t.Error("original record mutated")
	}
	if got.Keywords[0] != "new" {
		t.Errorf("Keywords = %v, want [new]", got.Keywords)
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"id", "title", "keywords", "url"} {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}
	if IsReserved("Tags") {
		t.Error("IsReserved(Tags) = true")
	}
}
