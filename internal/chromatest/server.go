// Package chromatest provides an in-process control-plane emulator for
// testing backends without hardware or the vendor runtime.
package chromatest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// HandshakePath is the discovery path the emulator answers on.
const HandshakePath = "/razer/chromasdk"

var categories = map[string]bool{
	"keyboard":   true,
	"mouse":      true,
	"mousepad":   true,
	"headset":    true,
	"keypad":     true,
	"chromalink": true,
	"generic":    true,
}

// Effect is an effect instance the emulator stored.
type Effect struct {
	// ID is the identifier assigned at creation.
	ID string

	// Category is the device-category path the effect was created on.
	Category string

	// Kind is the wire name of the effect type.
	Kind string

	// Param is the raw parameter payload, if any.
	Param json.RawMessage
}

// Server emulates the local control plane. The zero value is not usable;
// create one with NewServer and close it with Close.
type Server struct {
	httpSrv *httptest.Server

	mu sync.Mutex

	// failure injection
	nextStatus  int
	failCreate  bool
	failResult  bool
	dropNextID  bool
	rejectBeats bool

	sessionSeq int64
	active     map[int64]bool

	effects   map[string]Effect
	activeFx  string
	creates   int
	beats     int64
	teardowns int
}

// NewServer starts an emulated control plane on a loopback listener.
func NewServer() *Server {
	s := &Server{
		active:  make(map[int64]bool),
		effects: make(map[string]Effect),
	}
	s.httpSrv = httptest.NewServer(http.HandlerFunc(s.route))
	return s
}

// Close shuts the emulator down.
func (s *Server) Close() {
	s.httpSrv.Close()
}

// URL returns the emulator's base URL.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// HandshakeEndpoint returns the full discovery endpoint.
func (s *Server) HandshakeEndpoint() string {
	return s.httpSrv.URL + HandshakePath
}

// FailNextWithStatus makes the next request fail with the given HTTP status.
func (s *Server) FailNextWithStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStatus = status
}

// FailCreates makes create-effect calls answer 200 with a false result.
func (s *Server) FailCreates(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate = fail
}

// FailResults makes teardown and effect calls answer 200 with a false result.
func (s *Server) FailResults(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failResult = fail
}

// DropNextEffectID makes the next create-effect response succeed logically
// but omit the effect id.
func (s *Server) DropNextEffectID() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropNextID = true
}

// RejectHeartbeats makes heartbeat calls fail with a 500.
func (s *Server) RejectHeartbeats(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectBeats = reject
}

// CreateCalls returns how many create-effect requests the emulator served.
func (s *Server) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Heartbeats returns how many heartbeat requests the emulator served.
func (s *Server) Heartbeats() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beats
}

// Teardowns returns how many session teardown requests the emulator served.
func (s *Server) Teardowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teardowns
}

// EffectByID returns a stored effect.
func (s *Server) EffectByID(id string) (Effect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fx, ok := s.effects[id]
	return fx, ok
}

// LastEffect returns the most recently created effect.
func (s *Server) LastEffect() (Effect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fx, ok := s.effects[s.activeFx]
	return fx, ok
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.nextStatus != 0 {
		status := s.nextStatus
		s.nextStatus = 0
		s.mu.Unlock()
		http.Error(w, http.StatusText(status), status)
		return
	}
	s.mu.Unlock()

	if r.URL.Path == HandshakePath && r.Method == http.MethodPost {
		s.handleHandshake(w, r)
		return
	}

	// Session-scoped paths: /sid/<n>/...
	rest, sid, ok := s.splitSession(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case (rest == "/" || rest == "") && r.Method == http.MethodDelete:
		s.handleTeardown(w, sid)
	case rest == "/heartbeat" && r.Method == http.MethodPut:
		s.handleHeartbeat(w, sid)
	case rest == "/effect" && (r.Method == http.MethodPut || r.Method == http.MethodDelete):
		s.handleEffectByID(w, r)
	case r.Method == http.MethodPost && categories[strings.TrimPrefix(rest, "/")]:
		s.handleCreate(w, r, strings.TrimPrefix(rest, "/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleHandshake(w http.ResponseWriter, r *http.Request) {
	var app struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil || app.Title == "" {
		http.Error(w, "bad application descriptor", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.sessionSeq++
	sid := s.sessionSeq
	s.active[sid] = true
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"session": sid,
		"uri":     fmt.Sprintf("%s/sid/%d", s.httpSrv.URL, sid),
	})
}

func (s *Server) splitSession(path string) (rest string, sid int64, ok bool) {
	if !strings.HasPrefix(path, "/sid/") {
		return "", 0, false
	}
	tail := strings.TrimPrefix(path, "/sid/")
	idx := strings.IndexByte(tail, '/')
	num := tail
	if idx >= 0 {
		num = tail[:idx]
		rest = tail[idx:]
	}
	if _, err := fmt.Sscanf(num, "%d", &sid); err != nil {
		return "", 0, false
	}
	s.mu.Lock()
	ok = s.active[sid]
	s.mu.Unlock()
	return rest, sid, ok
}

func (s *Server) handleTeardown(w http.ResponseWriter, sid int64) {
	s.mu.Lock()
	delete(s.active, sid)
	s.teardowns++
	result := !s.failResult
	s.mu.Unlock()

	writeJSON(w, map[string]any{"result": result})
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, sid int64) {
	s.mu.Lock()
	if s.rejectBeats {
		s.mu.Unlock()
		http.Error(w, "session expired", http.StatusInternalServerError)
		return
	}
	s.beats++
	tick := s.beats
	s.mu.Unlock()

	writeJSON(w, map[string]any{"tick": tick})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, category string) {
	var req struct {
		Effect string          `json:"effect"`
		Param  json.RawMessage `json:"param"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Effect == "" {
		http.Error(w, "bad effect request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.creates++
	if s.failCreate {
		s.mu.Unlock()
		writeJSON(w, map[string]any{"result": false})
		return
	}
	if s.dropNextID {
		s.dropNextID = false
		s.mu.Unlock()
		writeJSON(w, map[string]any{"result": true})
		return
	}

	fx := Effect{
		ID:       uuid.NewString(),
		Category: category,
		Kind:     req.Effect,
		Param:    req.Param,
	}
	s.effects[fx.ID] = fx
	s.activeFx = fx.ID
	s.mu.Unlock()

	writeJSON(w, map[string]any{"result": true, "effectId": fx.ID})
}

func (s *Server) handleEffectByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad effect reference", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, known := s.effects[req.ID]
	result := known && !s.failResult
	if known {
		switch r.Method {
		case http.MethodPut:
			s.activeFx = req.ID
		case http.MethodDelete:
			delete(s.effects, req.ID)
		}
	}
	s.mu.Unlock()

	writeJSON(w, map[string]any{"result": result})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
