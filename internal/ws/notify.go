package ws

import (
	"encoding/json"
	"time"
)

const EventDemandsUpdated = "demands_updated"

type DemandsUpdatedEvent struct {
	Type      string `json:"type"`
	Count     int64  `json:"count"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

var now = time.Now

// NotifyDemandsUpdated tells connected browsers that the demand list changed
// and should be re-acquired.
func (h *Hub) NotifyDemandsUpdated(count int64, source string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(DemandsUpdatedEvent{
		Type:      EventDemandsUpdated,
		Count:     count,
		Source:    source,
		Timestamp: now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
