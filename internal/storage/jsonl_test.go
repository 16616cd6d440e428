package storage

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWriteReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	records := testRecords()

	if err := WriteRecords(path, records); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("ReadRecords() = %+v\nwant %+v", got, records)
	}
}

func TestEncodeRecords_FlatLines(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeRecords(&buf, testRecords()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{`"id":"2"`, `"Tags":["A","B"]`, `"Note":"hello"`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %s", lines[0], want)
		}
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"skips blank lines", "{\"id\":\"a\",\"title\":\"A\"}\n\n{\"id\":\"b\",\"title\":\"B\"}\n", []string{"a", "b"}, false},
		{"no trailing newline", `{"id":"a"}`, []string{"a"}, false},
		{"invalid json", "{\"id\":\"a\"}\nnot json\n", nil, true},
		{"missing id", `{"title":"x"}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), "line") {
					t.Errorf("error %q should name the line", err)
				}
				return
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("record %d id = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "nope.jsonl"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}
