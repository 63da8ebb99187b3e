package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
	"github.com/vovakirdan/quick-skirmish/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New(io.Discard)
	mgr := session.NewManager(session.Options{Logger: logger})
	return NewServer(":0", mgr, logger), mgr
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func createSession(t *testing.T, s *Server) sessionResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/sessions", map[string]string{"player": "alice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	return decode[sessionResponse](t, w)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCreateSession(t *testing.T) {
	s, mgr := newTestServer(t)

	resp := createSession(t, s)
	if resp.SessionID == "" {
		t.Fatal("empty session_id")
	}
	if resp.Player != "alice" || resp.Difficulty != "normal" {
		t.Errorf("player/difficulty = %q/%q, want alice/normal", resp.Player, resp.Difficulty)
	}
	st := resp.State
	if st.BoardSize != 6 || st.CurrentTeam != engine.Blue || st.TurnCount != 0 || st.GameOver {
		t.Errorf("initial state = %+v", st)
	}
	if len(st.Units) != 6 {
		t.Errorf("len(units) = %d, want 6", len(st.Units))
	}
	if mgr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", mgr.Count())
	}
}

func TestCreateSessionBodies(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"empty body", nil, http.StatusCreated},
		{"hard", map[string]string{"difficulty": "hard"}, http.StatusCreated},
		{"unknown difficulty", map[string]string{"difficulty": "nightmare"}, http.StatusBadRequest},
		{"malformed", "{not json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/sessions", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestCreateSessionHardPreset(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/sessions", map[string]string{"difficulty": "hard"})
	resp := decode[sessionResponse](t, w)
	if resp.State.MaxTurns != 8 {
		t.Errorf("max_turns = %d, want 8", resp.State.MaxTurns)
	}
	if resp.Player != defaultPlayer {
		t.Errorf("player = %q, want %q", resp.Player, defaultPlayer)
	}
}

func TestUnknownSession(t *testing.T) {
	s, _ := newTestServer(t)
	missing := string(session.NewID())

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/sessions/" + missing, nil},
		{http.MethodGet, "/api/sessions/not-a-uuid", nil},
		{http.MethodDelete, "/api/sessions/" + missing, nil},
		{http.MethodGet, "/api/sessions/" + missing + "/actions?x=1&y=1", nil},
		{http.MethodPost, "/api/sessions/" + missing + "/end-turn", nil},
		{http.MethodPost, "/api/sessions/" + missing + "/reset", nil},
		{http.MethodPost, "/api/sessions/" + missing + "/move", map[string]any{
			"from": engine.Pos(1, 1), "to": engine.Pos(2, 1),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	s, _ := newTestServer(t)
	created := createSession(t, s)

	w := do(t, s, http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[sessionResponse](t, w)
	if resp.SessionID != created.SessionID {
		t.Errorf("session_id = %q, want %q", resp.SessionID, created.SessionID)
	}
	if resp.Result.Reason != "in_progress" {
		t.Errorf("result.reason = %q, want in_progress", resp.Result.Reason)
	}
}

func TestActions(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s).SessionID

	w := do(t, s, http.MethodGet, "/api/sessions/"+id+"/actions?x=1&y=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	actions := decode[engine.Actions](t, w)
	if len(actions.Moves) == 0 {
		t.Error("no moves for the Blue tank")
	}
	if len(actions.Attacks) != 0 {
		t.Errorf("attacks = %v, want none at start", actions.Attacks)
	}

	w = do(t, s, http.MethodGet, "/api/sessions/"+id+"/actions?x=5&y=2", nil)
	red := decode[engine.Actions](t, w)
	if len(red.Moves) != 0 || len(red.Attacks) != 0 {
		t.Errorf("actions for a Red unit on Blue's turn = %+v, want empty", red)
	}

	for _, q := range []string{"", "?x=1", "?x=a&y=1"} {
		w := do(t, s, http.MethodGet, "/api/sessions/"+id+"/actions"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("actions%s status = %d, want %d", q, w.Code, http.StatusBadRequest)
		}
	}
}

func TestMoveAndAttack(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s).SessionID
	base := "/api/sessions/" + id

	w := do(t, s, http.MethodPost, base+"/move", map[string]any{"from": engine.Pos(1, 1), "to": engine.Pos(3, 1)})
	if w.Code != http.StatusOK {
		t.Fatalf("move status = %d: %s", w.Code, w.Body.String())
	}
	moved := decode[commandResponse](t, w)
	if !moved.OK {
		t.Fatal("legal move rejected")
	}

	w = do(t, s, http.MethodPost, base+"/move", map[string]any{"from": engine.Pos(3, 1), "to": engine.Pos(3, 2)})
	if again := decode[commandResponse](t, w); again.OK || w.Code != http.StatusOK {
		t.Errorf("second move = %d ok=%v, want 200 ok=false", w.Code, again.OK)
	}

	w = do(t, s, http.MethodPost, base+"/attack", map[string]any{"from": engine.Pos(3, 1), "target": engine.Pos(4, 1)})
	attacked := decode[commandResponse](t, w)
	if !attacked.OK {
		t.Fatal("legal attack rejected")
	}
	for _, u := range attacked.State.Units {
		if u.Position == engine.Pos(4, 1) && u.Health >= 100 {
			t.Errorf("target health = %d, want below 100", u.Health)
		}
	}

	w = do(t, s, http.MethodPost, base+"/attack", map[string]any{"from": engine.Pos(0, 2), "target": engine.Pos(5, 2)})
	if out := decode[commandResponse](t, w); out.OK {
		t.Error("out of range attack accepted")
	}
}

func TestCommandBadBodies(t *testing.T) {
	s, _ := newTestServer(t)
	base := "/api/sessions/" + createSession(t, s).SessionID

	tests := []struct {
		path string
		body any
	}{
		{"/move", "{"},
		{"/move", map[string]any{"from": engine.Pos(1, 1)}},
		{"/attack", map[string]any{"target": engine.Pos(4, 1)}},
		{"/attack", nil},
	}
	for _, tt := range tests {
		w := do(t, s, http.MethodPost, base+tt.path, tt.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %v status = %d, want %d", tt.path, tt.body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestEndTurnAndReset(t *testing.T) {
	s, _ := newTestServer(t)
	base := "/api/sessions/" + createSession(t, s).SessionID

	w := do(t, s, http.MethodPost, base+"/end-turn", nil)
	resp := decode[commandResponse](t, w)
	if !resp.OK {
		t.Fatal("end-turn ok = false")
	}
	if resp.State.CurrentTeam != engine.Blue || resp.State.TurnCount != 1 {
		t.Errorf("after end-turn team=%v turn=%d, want blue/1", resp.State.CurrentTeam, resp.State.TurnCount)
	}

	w = do(t, s, http.MethodGet, base, nil)
	if got := decode[sessionResponse](t, w); len(got.Events) == 0 {
		t.Error("no events after a full round")
	}

	w = do(t, s, http.MethodPost, base+"/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}
	if st := decode[sessionResponse](t, w).State; st.TurnCount != 0 {
		t.Errorf("turn_count after reset = %d, want 0", st.TurnCount)
	}
}

func TestEndTurnAfterGameOver(t *testing.T) {
	s, _ := newTestServer(t)
	base := "/api/sessions/" + createSession(t, s).SessionID

	var last commandResponse
	for range 20 {
		last = decode[commandResponse](t, do(t, s, http.MethodPost, base+"/end-turn", nil))
		if last.State.GameOver {
			break
		}
	}
	if !last.State.GameOver {
		t.Fatal("game did not end")
	}

	resp := decode[commandResponse](t, do(t, s, http.MethodPost, base+"/end-turn", nil))
	if !resp.OK {
		t.Error("end-turn after game over ok = false, want true")
	}
	if !reflect.DeepEqual(resp.State, last.State) {
		t.Errorf("end-turn after game over changed state:\n got %+v\nwant %+v", resp.State, last.State)
	}
}

func TestDeleteSession(t *testing.T) {
	s, mgr := newTestServer(t)
	base := "/api/sessions/" + createSession(t, s).SessionID

	w := do(t, s, http.MethodDelete, base, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if mgr.Count() != 0 {
		t.Errorf("Count() = %d, want 0", mgr.Count())
	}
	if w := do(t, s, http.MethodGet, base, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
