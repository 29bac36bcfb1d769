package oengus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"oengusbot/internal/logx"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Marathon: "spring"}, logx.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSubmissions(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/marathon/spring/game" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Quake", "console": "PC",
			 "user": {"id": 9, "username": "runner"},
			 "categories": [
				{"id": 101, "name": "any%", "estimate": "PT1H"},
				{"id": 102, "name": "100%", "estimate": "PT2H"}
			 ]},
			{"id": 2, "name": "Doom", "console": "DOS",
			 "user": {"id": 10, "username": "other"},
			 "categories": [{"id": 201, "name": "ep1", "estimate": "PT30M"}]}
		]`))
	}))

	subs, err := c.Submissions(context.Background())
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	// Order must match the API response; it becomes the announce order.
	if subs[0].Name != "Quake" || subs[1].Name != "Doom" {
		t.Fatalf("unexpected order: %q, %q", subs[0].Name, subs[1].Name)
	}
	if subs[0].User.Username != "runner" {
		t.Fatalf("unexpected user: %+v", subs[0].User)
	}
	if len(subs[0].Categories) != 2 || subs[0].Categories[1].ID != 102 {
		t.Fatalf("unexpected categories: %+v", subs[0].Categories)
	}
}

func TestMarathon(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/marathon/spring" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": "spring", "name": "Spring Marathon"}`))
	}))

	m, err := c.Marathon(context.Background())
	if err != nil {
		t.Fatalf("Marathon: %v", err)
	}
	if m.Name != "Spring Marathon" {
		t.Fatalf("unexpected marathon: %+v", m)
	}
}

func TestSubmissionsServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	if _, err := c.Submissions(context.Background()); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestSubmissionsMalformedJSON(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	}))
	if _, err := c.Submissions(context.Background()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestSubmissionsURL(t *testing.T) {
	c, err := New(Config{BaseURL: "https://oengus.io/", Marathon: "spring"}, logx.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.SubmissionsURL(); got != "https://oengus.io/marathon/spring/submissions" {
		t.Fatalf("unexpected submissions url: %q", got)
	}
}

func TestNewRequiresMarathon(t *testing.T) {
	if _, err := New(Config{}, logx.Nop()); err == nil {
		t.Fatal("expected error without marathon slug")
	}
}
