package tagging

import (
	"sync"
	"time"

	"assetconsole/pkg/models"
)

type State string

const (
	StateIdle          State = "idle"
	StateAwaitingInput State = "awaiting_input"
	StateSubmitting    State = "submitting"
)

// Quantities are always derived from the latest tag history fetched from the backend.
type Quantities struct {
	Total     int `json:"totalQuantity"`
	Bound     int `json:"boundQuantity"`
	Remaining int `json:"remainingQuantity"`
}

// Session is one operator's binding form. It holds at most one draft.
type Session struct {
	ID       string
	Operator string

	mu         sync.Mutex
	state      State
	assetName  string
	assetID    int
	quantities Quantities
	draft      *models.Tag
	bound      models.TagHistory
	completed  bool
	lastActive time.Time
}

type Snapshot struct {
	ID        string            `json:"sessionId"`
	State     State             `json:"state"`
	AssetName string            `json:"assetName,omitempty"`
	Draft     *models.Tag       `json:"draft,omitempty"`
	BoundTags models.TagHistory `json:"boundTags"`
	Completed bool              `json:"completed"`
	Quantities
}

func newSession(id, operator string) *Session {
	return &Session{
		ID:         id,
		Operator:   operator,
		state:      StateIdle,
		lastActive: time.Now(),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		ID:         s.ID,
		State:      s.state,
		AssetName:  s.assetName,
		BoundTags:  append(models.TagHistory{}, s.bound...),
		Completed:  s.completed,
		Quantities: s.quantities,
	}
	if s.draft != nil {
		draft := *s.draft
		snapshot.Draft = &draft
	}
	return snapshot
}

// resetLocked abandons the draft without persisting it.
func (s *Session) resetLocked() {
	s.state = StateIdle
	s.assetName = ""
	s.assetID = 0
	s.quantities = Quantities{}
	s.draft = nil
	s.bound = nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastActive)
}
