package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithToken("secret"),
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
	)
}

func TestClient_SendsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != DefaultVersion {
			t.Errorf("Notion-Version = %q", got)
		}
		fmt.Fprint(w, `{"properties":{}}`)
	})

	if _, err := c.DatabaseProperties(context.Background(), "db"); err != nil {
		t.Fatalf("DatabaseProperties() error = %v", err)
	}
}

func TestClient_MissingToken(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:0"))
	_, err := c.SearchDatabases(context.Background())
	if !IsAuthError(err) {
		t.Errorf("error = %v, want auth error", err)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		check     func(error) bool
		wantInMsg string
	}{
		{"unauthorized", 401, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`, IsAuthError, "API token is invalid."},
		{"not found", 404, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database"}`, IsNotFound, "Could not find database"},
		{"rate limited", 429, `{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`, IsRateLimited, "slow down"},
		{"bad request", 400, `{"object":"error","status":400,"code":"validation_error","message":"bad filter"}`, func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.Code == "validation_error"
		}, "bad filter"},
		{"non-json body", 502, `bad gateway`, func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode == 502
		}, "HTTP 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := c.DatabaseProperties(context.Background(), "db")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("error %v did not match", err)
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantInMsg)
			}
		})
	}
}

func TestClient_SearchDatabasesPaginates(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		calls++
		if calls == 1 {
			if _, ok := body["start_cursor"]; ok {
				t.Error("first call should not send start_cursor")
			}
			fmt.Fprint(w, `{"results":[{"id":"db1","title":[{"plain_text":"Reading "},{"plain_text":"List"}]}],"has_more":true,"next_cursor":"c2"}`)
			return
		}
		if body["start_cursor"] != "c2" {
			t.Errorf("start_cursor = %v, want c2", body["start_cursor"])
		}
		fmt.Fprint(w, `{"results":[{"id":"db2","title":[]}],"has_more":false,"next_cursor":null}`)
	})

	dbs, err := c.SearchDatabases(context.Background())
	if err != nil {
		t.Fatalf("SearchDatabases() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d calls, want 2", calls)
	}
	want := []Database{{ID: "db1", Title: "Reading List"}, {ID: "db2", Title: ""}}
	if len(dbs) != len(want) || dbs[0] != want[0] || dbs[1] != want[1] {
		t.Errorf("databases = %+v, want %+v", dbs, want)
	}
}

func TestClient_DatabasePropertiesSorted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/databases/db1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"properties":{"Tags":{"id":"t","type":"multi_select"},"Name":{"id":"title","type":"title"},"Status":{"id":"s","type":"status"}}}`)
	})

	props, err := c.DatabaseProperties(context.Background(), "db1")
	if err != nil {
		t.Fatalf("DatabaseProperties() error = %v", err)
	}
	names := []string{}
	for _, p := range props {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "Name,Status,Tags" {
		t.Errorf("names = %v", names)
	}
	if props[2].Type != "multi_select" {
		t.Errorf("Tags type = %q", props[2].Type)
	}
}

func TestClient_QueryDatabaseLimit(t *testing.T) {
	var sizes []float64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		sizes = append(sizes, body["page_size"].(float64))

		n := len(sizes)
		fmt.Fprintf(w, `{"results":[{"id":"p%da","properties":{}},{"id":"p%db","properties":{}}],"has_more":true,"next_cursor":"c%d"}`, n, n, n)
	})

	pages, err := c.QueryDatabase(context.Background(), "db", QueryOptions{PageSize: 2, Limit: 3})
	if err != nil {
		t.Fatalf("QueryDatabase() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if len(sizes) != 2 || sizes[0] != 2 || sizes[1] != 1 {
		t.Errorf("page sizes requested = %v, want [2 1]", sizes)
	}
	if pages[2].ID != "p2a" {
		t.Errorf("third page = %q, want p2a", pages[2].ID)
	}
}

func TestClient_QueryDatabaseSendsSorts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Sorts []Sort `json:"sorts"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Sorts) != 1 || body.Sorts[0].Property != "Stacked at" || body.Sorts[0].Direction != "ascending" {
			t.Errorf("sorts = %+v", body.Sorts)
		}
		fmt.Fprint(w, `{"results":[],"has_more":false,"next_cursor":null}`)
	})

	_, err := c.QueryDatabase(context.Background(), "db", QueryOptions{
		Sorts: []Sort{{Property: "Stacked at", Direction: "ascending"}},
	})
	if err != nil {
		t.Fatalf("QueryDatabase() error = %v", err)
	}
}

func TestClient_PageBlocks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blocks/page1/children" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page_size") != "100" {
			t.Errorf("page_size = %q", r.URL.Query().Get("page_size"))
		}
		fmt.Fprint(w, `{"results":[
			{"id":"b1","type":"heading_2","heading_2":{"rich_text":[{"plain_text":"T1"}]}},
			{"id":"b2","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"Hel"},{"plain_text":"lo"}]}},
			{"id":"b3","type":"divider","divider":{}}
		],"has_more":false,"next_cursor":null}`)
	})

	blocks, err := c.PageBlocks(context.Background(), "page1")
	if err != nil {
		t.Fatalf("PageBlocks() error = %v", err)
	}
	want := []Block{
		{ID: "b1", Type: "heading_2", Text: "T1"},
		{ID: "b2", Type: "paragraph", Text: "Hello"},
		{ID: "b3", Type: "divider", Text: ""},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	})
	_, err := c.SearchDatabases(context.Background())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[],"has_more":false}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.SearchDatabases(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
