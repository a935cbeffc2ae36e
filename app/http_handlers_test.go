package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akoQassym/grandmaster-ai/app/config"
	"github.com/akoQassym/grandmaster-ai/logger"
	"github.com/akoQassym/grandmaster-ai/remote"
)

type mockResp struct {
	status int
	body   string
}

type mockRoundTripper struct {
	mu        sync.Mutex
	responses map[string][]mockResp
	hits      map[string]int
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Body != nil {
		_, _ = io.ReadAll(req.Body)
	}
	url := req.URL.String()
	if m.hits == nil {
		m.hits = make(map[string]int)
	}
	m.hits[url]++

	list, ok := m.responses[url]
	if !ok || len(list) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	resp := list[0]
	if len(list) > 1 {
		m.responses[url] = list[1:]
	}

	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (m *mockRoundTripper) hitCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[url]
}

const backendURL = "http://backend.test"

// One game on 2024-05-02, one on 2024-05-01, one more on 2024-05-02: the
// grouping must keep first-occurrence key order.
const listBody = `[
  {"id":"g-a","createdAt":1714644000000,"status":"mate","winner":"white","pgn":"1. e4 e5",
   "players":{"white":{"user":{"id":"alice","name":"Alice"},"rating":1500},
              "black":{"user":{"id":"bob","name":"Bob"},"rating":1600}}},
  {"id":"g-b","createdAt":1714557600000,"status":"resign","winner":"black","pgn":"1. d4 d5",
   "players":{"white":{"user":{"id":"carol","name":"Carol"},"rating":1700},
              "black":{"user":{"id":"alice","name":"Alice"},"rating":1500}}},
  {"id":"g-c","createdAt":1714672800000,"status":"outoftime","winner":"black","pgn":"1. c4 c5",
   "players":{"white":{"user":{"id":"alice","name":"Alice"},"rating":1500},
              "black":{"aiLevel":4}}}
]`

const analysisBody = `[{"uci_move":"e2e4","best_move":"e2e4","classification":"Good",
  "evaluation_before":20,"evaluation_after":31,"fen_before":"f1","fen_after":"f2",
  "pv_before":[],"pv_after":[]}]`

func newTestServer(responses map[string][]mockResp) (*Server, *gin.Engine, *mockRoundTripper) {
	gin.SetMode(gin.TestMode)

	rt := &mockRoundTripper{responses: responses}
	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        backendURL,
			HTTPTimeout:    5 * time.Second,
			AnalyzeTimeout: 5 * time.Second,
		},
	}
	client := remote.NewClient(backendURL, &http.Client{Transport: rt})
	s := newServer(cfg, logger.NewNop(), client)
	return s, NewRouter(s), rt
}

func TestGetPlayerGamesGroupsByDay(t *testing.T) {
	_, router, _ := newTestServer(map[string][]mockResp{
		backendURL + "/api/lichess/alice": {{status: http.StatusOK, body: listBody}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/player/alice/games", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		PlayerID string `json:"playerId"`
		Count    int    `json:"count"`
		Groups   []struct {
			Date  string `json:"date"`
			Games []struct {
				ID string `json:"id"`
			} `json:"games"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.PlayerID != "alice" || body.Count != 3 {
		t.Fatalf("unexpected response: %+v", body)
	}
	if len(body.Groups) != 2 || body.Groups[0].Date != "2024-05-02" || body.Groups[1].Date != "2024-05-01" {
		t.Fatalf("group order wrong: %+v", body.Groups)
	}
	if len(body.Groups[0].Games) != 2 ||
		body.Groups[0].Games[0].ID != "g-a" || body.Groups[0].Games[1].ID != "g-c" {
		t.Fatalf("relative order wrong: %+v", body.Groups[0])
	}
}

func TestGetPlayerGamesUpstream404(t *testing.T) {
	_, router, _ := newTestServer(map[string][]mockResp{
		backendURL + "/api/lichess/ghost": {
			{status: http.StatusNotFound, body: `{"detail":"Error fetching games from Lichess"}`},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/player/ghost/games", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetGameNotFound(t *testing.T) {
	_, router, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/game/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NO_GAME") {
		t.Fatalf("body should carry the NO_GAME state: %s", w.Body.String())
	}
}

func TestDetailFlow(t *testing.T) {
	_, router, rt := newTestServer(map[string][]mockResp{
		backendURL + "/api/lichess/alice": {{status: http.StatusOK, body: listBody}},
		backendURL + "/api/analyze":       {{status: http.StatusOK, body: analysisBody}},
		backendURL + "/api/explain":       {{status: http.StatusOK, body: `{"explanation":"controls the center"}`}},
	})

	// List first so the game is cached.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/player/alice/games", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	// Mount the detail view: analysis fetched, first move auto-selected.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/g-a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d, body = %s", w.Code, w.Body.String())
	}

	var detail struct {
		State         string `json:"state"`
		Outcome       string `json:"outcome"`
		SelectedIndex int    `json:"selectedIndex"`
		SelectedMove  string `json:"selectedMove"`
		Moves         []struct {
			UCIMove     string `json:"uci_move"`
			Explanation string `json:"explanation"`
			Badge       struct {
				Label string `json:"label"`
			} `json:"badge"`
		} `json:"moves"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.State != "READY" || detail.Outcome != "win" {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.SelectedIndex != 0 || detail.SelectedMove != "e2e4" {
		t.Fatalf("auto-selection wrong: %+v", detail)
	}
	if len(detail.Moves) != 1 || detail.Moves[0].Badge.Label != "Good" {
		t.Fatalf("move badges wrong: %+v", detail.Moves)
	}

	// Remounting must not refetch the analysis.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/g-a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("remount status = %d", w.Code)
	}
	if got := rt.hitCount(backendURL + "/api/analyze"); got != 1 {
		t.Fatalf("analyze hit %d times, want 1", got)
	}

	// Explain the selected move.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/g-a/explain", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("explain status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "controls the center") {
		t.Fatalf("explain body = %s", w.Body.String())
	}

	// The explanation is now part of the view model, and a second explain
	// stays local.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/g-a/explain", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("cached explain status = %d", w.Code)
	}
	if got := rt.hitCount(backendURL + "/api/explain"); got != 1 {
		t.Fatalf("explain hit %d times, want 1", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/g-a", nil))
	if !strings.Contains(w.Body.String(), "controls the center") {
		t.Fatalf("explanation missing from view model: %s", w.Body.String())
	}
}

func TestSelectMoveValidation(t *testing.T) {
	_, router, _ := newTestServer(map[string][]mockResp{
		backendURL + "/api/lichess/alice": {{status: http.StatusOK, body: listBody}},
		backendURL + "/api/analyze":       {{status: http.StatusOK, body: analysisBody}},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/player/alice/games", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/g-a", nil))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/g-a/select",
		strings.NewReader(`{"index":0}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("select status = %d, body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/g-a/select",
		strings.NewReader(`{"index":9}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range select status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/g-a/select",
		strings.NewReader(`{}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing index select status = %d", w.Code)
	}
}

func TestContactValidation(t *testing.T) {
	_, router, _ := newTestServer(map[string][]mockResp{
		backendURL + "/api/send-details": {{status: http.StatusOK, body: `{"message":"ok"}`}},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"lichessId":"alice","email":"alice@example.test"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("contact status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"lichessId":"alice"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("contact without email status = %d", w.Code)
	}
}
