package web

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/tasks"
	"github.com/tidwall/sjson"
)

// PressFunc simulates a physical button press: same path as the real
// handler (acknowledgment pulse + enqueue). Used from POST /press
// during development without the hardware.
type PressFunc func()

// SnapshotFunc returns the current processor snapshot.
type SnapshotFunc func() tasks.Snapshot

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Broadcaster *StatusBroadcaster
	Press       PressFunc
	Snapshot    SnapshotFunc
	staticFS    fs.FS
}

// NewHandlers creates handlers with the given dependencies.
// If press is nil, POST /press returns 503 Service Unavailable.
func NewHandlers(broadcaster *StatusBroadcaster, press PressFunc, snapshot SnapshotFunc, staticFS fs.FS) *Handlers {
	return &Handlers{
		Broadcaster: broadcaster,
		Press:       press,
		Snapshot:    snapshot,
		staticFS:    staticFS,
	}
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleStatus returns the current pipeline status as JSON.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	s := h.Snapshot()

	doc := "{}"
	doc, _ = sjson.Set(doc, "state", string(s.State))
	doc, _ = sjson.Set(doc, "queue.depth", s.QueueDepth)
	doc, _ = sjson.Set(doc, "counters.processed", s.Processed)
	doc, _ = sjson.Set(doc, "counters.failed", s.Failed)
	doc, _ = sjson.Set(doc, "last.description", s.LastDescription)
	doc, _ = sjson.Set(doc, "last.error", s.LastError)

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// HandlePress handles POST /press: a simulated button press.
func (h *Handlers) HandlePress(w http.ResponseWriter, r *http.Request) {
	if h.Press == nil {
		http.Error(w, "press not configured", http.StatusServiceUnavailable)
		return
	}

	h.Press()
	h.Broadcaster.BroadcastMsg("Simulated button press")

	doc, _ := sjson.Set("{}", "status", "queued")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(doc))
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
	defer unsub()

	// Send initial comment to establish connection
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
