package langtool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFixtureServer serves /v2/languages and a canned /v2/check response
// keyed by the submitted text.
func newFixtureServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/languages", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/v2/check", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, ok := responses[r.PostFormValue("text")]
		if !ok {
			body = `{"matches":[]}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	return httptest.NewServer(mux)
}

func TestNew_UnreachableServer(t *testing.T) {
	if _, err := New("http://127.0.0.1:1", "ru"); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestClient_Check(t *testing.T) {
	fixture := `{"matches":[
		{"offset":0,"length":4,
		 "replacements":[{"value":"дома"},{"value":"дому"}],
		 "rule":{"category":{"id":"GRAMMAR"}}},
		{"offset":5,"length":4,
		 "replacements":[{"value":"шума"}],
		 "rule":{"category":{"id":"STYLE"}}}
	]}`
	srv := newFixtureServer(t, map[string]string{"дому шумы": fixture})
	defer srv.Close()

	client, err := New(srv.URL, "ru")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()

	matches, err := client.Check(context.Background(), "дому шумы")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Category != "GRAMMAR" || matches[0].Offset != 0 || matches[0].Length != 4 {
		t.Errorf("unexpected first match: %+v", matches[0])
	}
	if len(matches[0].Replacements) != 2 || matches[0].Replacements[0] != "дома" {
		t.Errorf("unexpected replacements: %v", matches[0].Replacements)
	}
}

func TestClient_CheckServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/languages", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/v2/check", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := New(srv.URL, "ru")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.Check(context.Background(), "текст"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestSpeller_UnknownAndCandidates(t *testing.T) {
	// The word list is checked as one newline-joined document; "превет"
	// starts at offset 7 (after "привет\n").
	resp := checkResponse{}
	raw := `{"matches":[
		{"offset":7,"length":6,
		 "replacements":[{"value":"привет"},{"value":"совет"}],
		 "rule":{"category":{"id":"TYPOS"}}}
	]}`
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	srv := newFixtureServer(t, map[string]string{"привет\nпревет": raw})
	defer srv.Close()

	client, err := New(srv.URL, "ru")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	speller := NewSpeller(client)

	unknown, err := speller.Unknown(context.Background(), []string{"привет", "превет"})
	if err != nil {
		t.Fatalf("Unknown failed: %v", err)
	}
	if len(unknown) != 1 {
		t.Fatalf("got %d unknown words, want 1: %v", len(unknown), unknown)
	}
	if _, ok := unknown["превет"]; !ok {
		t.Errorf("expected превет to be unknown")
	}

	// Candidates for the flagged word come from the cache; no further
	// fixture is needed.
	candidates, err := speller.Candidates(context.Background(), "превет")
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	if len(candidates) != 2 || candidates[0] != "привет" {
		t.Errorf("unexpected candidates: %v", candidates)
	}
}

func TestSpeller_EmptyWordList(t *testing.T) {
	srv := newFixtureServer(t, nil)
	defer srv.Close()

	client, err := New(srv.URL, "ru")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	unknown, err := NewSpeller(client).Unknown(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unknown failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("expected no unknown words, got %v", unknown)
	}
}
