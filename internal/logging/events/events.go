package events

import "github.com/artpar/ccol/internal/logging"

type AppTracer struct{}

type SessionTracer struct{}

type HistoryTracer struct{}

var (
	App     = AppTracer{}
	Session = SessionTracer{}
	History = HistoryTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) ConfigLoaded(path string, nodes int) {
	logging.Trace("app.config", map[string]interface{}{"path": path, "nodes": nodes})
}

func (SessionTracer) Mode(from, to string) {
	logging.Trace("session.mode", map[string]interface{}{"from": from, "to": to})
}

func (SessionTracer) Cursor(id string, cursor int) {
	logging.Trace("session.cursor", map[string]interface{}{"id": id, "cursor": cursor})
}

func (SessionTracer) Toggle(id string, expanded bool) {
	logging.Trace("session.toggle", map[string]interface{}{"id": id, "expanded": expanded})
}

func (SessionTracer) Commit(id, label string) {
	logging.Trace("session.commit", map[string]interface{}{"id": id, "label": label})
}

// LookupMiss records a commit whose identifier no longer resolves.
func (SessionTracer) LookupMiss(id string) {
	logging.Trace("session.lookup-miss", map[string]interface{}{"id": id})
}

func (SessionTracer) Quit(selected bool) {
	logging.Trace("session.quit", map[string]interface{}{"selected": selected})
}

func (HistoryTracer) Recorded(id, identifier string) {
	logging.Trace("history.recorded", map[string]interface{}{"id": id, "identifier": identifier})
}

func (HistoryTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("history.error", map[string]interface{}{"error": err.Error()})
}
