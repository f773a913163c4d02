package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	perrors "github.com/tessro/play-notion/internal/errors"
)

const databaseJSON = `{
  "object": "database",
  "id": "0f1b2c3d-4e5f-6789-abcd-ef0123456789",
  "properties": {
    "Name": {"id": "title", "type": "title", "title": {}},
    "Tags": {
      "id": "abc",
      "type": "multi_select",
      "multi_select": {
        "options": [
          {"id": "1", "name": "chill", "color": "blue"},
          {"id": "2", "name": "set", "color": "red"},
          {"id": "3", "name": "jazz", "color": "green"}
        ]
      }
    }
  }
}`

const queryJSON = `{
  "object": "list",
  "results": [
    {
      "object": "page",
      "id": "p1",
      "created_time": "2024-03-01T10:00:00.000Z",
      "properties": {
        "URL": {"id": "u", "type": "url", "url": "https://youtube.com/watch?v=1&t=3"},
        "Tags": {"id": "t", "type": "multi_select", "multi_select": [{"name": "chill"}]}
      }
    },
    {
      "object": "page",
      "id": "p2",
      "created_time": "2024-02-01T10:00:00.000Z",
      "properties": {
        "URL": {"id": "u", "type": "url", "url": null},
        "Tags": {"id": "t", "type": "multi_select", "multi_select": []}
      }
    },
    {
      "object": "page",
      "id": "p3",
      "created_time": "2024-01-01T10:00:00.000Z",
      "properties": {
        "Tags": {"id": "t", "type": "multi_select", "multi_select": [{"name": "chill"}, {"name": "jazz"}]}
      }
    }
  ],
  "has_more": false,
  "next_cursor": null
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Settings{
		DatabaseURL: srv.URL + "/v1/databases/db123",
		Token:       "secret_abc",
		APIVersion:  "2022-06-28",
		Properties:  DefaultProperties(),
	})
}

func TestFetchTagOptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/v1/databases/db123" {
			t.Errorf("Path = %s, want /v1/databases/db123", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret_abc" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret_abc")
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q, want %q", got, "2022-06-28")
		}
		_, _ = io.WriteString(w, databaseJSON)
	})

	tags, err := c.FetchTagOptions(context.Background())
	if err != nil {
		t.Fatalf("FetchTagOptions() error = %v", err)
	}

	want := []string{"chill", "set", "jazz"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestSetHTTPClientKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret_abc" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret_abc")
		}
		_, _ = io.WriteString(w, databaseJSON)
	}))
	t.Cleanup(srv.Close)

	c := New(Settings{
		DatabaseURL: srv.URL + "/v1/databases/db123",
		Token:       "secret_abc",
		APIVersion:  "2022-06-28",
		Properties:  DefaultProperties(),
	})
	c.SetHTTPClient(srv.Client())

	if _, err := c.FetchTagOptions(context.Background()); err != nil {
		t.Fatalf("FetchTagOptions() error = %v", err)
	}
}

func TestFetchTagOptionsMissingProperty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"database","properties":{}}`)
	})

	_, err := c.FetchTagOptions(context.Background())
	if !errors.Is(err, perrors.ErrRemoteService) {
		t.Errorf("error = %v, want ErrRemoteService", err)
	}
}

func TestQueryRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/databases/db123/query" {
			t.Errorf("Path = %s, want /v1/databases/db123/query", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}

		var q Query
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(q.Filter.And) != 2 {
			t.Errorf("len(And) = %d, want 2", len(q.Filter.And))
		}
		_, _ = io.WriteString(w, queryJSON)
	})

	records, err := c.QueryRecords(context.Background(), BuildQuery([]string{"chill"}, DefaultProperties()))
	if err != nil {
		t.Fatalf("QueryRecords() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].URL == nil || *records[0].URL != "https://youtube.com/watch?v=1&t=3" {
		t.Errorf("records[0].URL = %v, want the youtube URL", records[0].URL)
	}
	if records[1].URL != nil {
		t.Errorf("records[1].URL = %q, want nil for a null url", *records[1].URL)
	}
	if records[2].URL != nil {
		t.Errorf("records[2].URL = %q, want nil for a missing property", *records[2].URL)
	}
	if len(records[2].Tags) != 2 || records[2].Tags[1] != "jazz" {
		t.Errorf("records[2].Tags = %v, want [chill jazz]", records[2].Tags)
	}
	if records[0].CreatedTime.Year() != 2024 {
		t.Errorf("records[0].CreatedTime = %v, want a 2024 timestamp", records[0].CreatedTime)
	}
}

func TestRequestNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database"}`)
	})

	_, err := c.QueryRecords(context.Background(), BuildQuery([]string{"chill"}, DefaultProperties()))
	if !errors.Is(err, perrors.ErrRemoteService) {
		t.Fatalf("error = %v, want ErrRemoteService", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	expected := "notion API error 404 (object_not_found): Could not find database"
	if got := apiErr.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestRequestNon200PlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := c.FetchTagOptions(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "upstream down" {
		t.Errorf("Message = %q, want the response text", apiErr.Message)
	}
}

func TestRequestOnlyAccepts200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, databaseJSON)
	})

	if _, err := c.FetchTagOptions(context.Background()); !errors.Is(err, perrors.ErrRemoteService) {
		t.Errorf("error = %v, want ErrRemoteService for status 202", err)
	}
}

func TestRequestMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results": [`)
	})

	_, err := c.QueryRecords(context.Background(), BuildQuery([]string{"chill"}, DefaultProperties()))
	if !errors.Is(err, perrors.ErrRemoteService) {
		t.Errorf("error = %v, want ErrRemoteService", err)
	}
}

func TestRequestMissingResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list"}`)
	})

	_, err := c.QueryRecords(context.Background(), BuildQuery([]string{"chill"}, DefaultProperties()))
	if !errors.Is(err, perrors.ErrRemoteService) {
		t.Errorf("error = %v, want ErrRemoteService", err)
	}
}

func TestRequestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Settings{DatabaseURL: url + "/v1/databases/x", Token: "t", APIVersion: "v", Properties: DefaultProperties()})
	if _, err := c.FetchTagOptions(context.Background()); !errors.Is(err, perrors.ErrRemoteService) {
		t.Errorf("error = %v, want ErrRemoteService", err)
	}
}
