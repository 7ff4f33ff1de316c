package multiplayer

import "sync"

// SessionHandle is how the coordinator and matches reach a connected player
// without knowing about SSH or Bubble Tea.
type SessionHandle interface {
	ID() SessionID

	// Send must not block: a match streams frames to both seats from its
	// tick loop.
	Send(evt SessionEvent)

	Done() <-chan struct{}
}

// Seat is one player's end of a co-op room. Room and match lifecycle events
// queue on Events; battle frames go to Frames, which only ever holds the
// newest one. A terminal that falls behind skips frames but never misses a
// match start or end.
type Seat struct {
	id     SessionID
	events chan SessionEvent
	frames chan FrameEvent

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewSeat creates a seat queueing up to backlog lifecycle events.
func NewSeat(id SessionID, backlog int) *Seat {
	if backlog < 1 {
		backlog = 8
	}
	return &Seat{
		id:     id,
		events: make(chan SessionEvent, backlog),
		frames: make(chan FrameEvent, 1),
		done:   make(chan struct{}),
	}
}

func (s *Seat) ID() SessionID               { return s.id }
func (s *Seat) Events() <-chan SessionEvent { return s.events }
func (s *Seat) Frames() <-chan FrameEvent   { return s.frames }
func (s *Seat) Done() <-chan struct{}       { return s.done }

// Send routes evt to its lane. A stale frame is replaced by the new one. When
// the lifecycle backlog is full the oldest event gives way. Sends after Close
// are dropped.
func (s *Seat) Send(evt SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if frame, ok := evt.(FrameEvent); ok {
		select {
		case <-s.frames:
		default:
		}
		s.frames <- frame
		return
	}

	select {
	case s.events <- evt:
		return
	default:
	}
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Close releases the seat. Safe to call more than once.
func (s *Seat) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
}

// Roster maps connected sessions to their seats so coordinator messages,
// which carry only a SessionID, can be answered.
type Roster struct {
	mu    sync.RWMutex
	seats map[SessionID]SessionHandle
}

func NewRoster() *Roster {
	return &Roster{seats: make(map[SessionID]SessionHandle)}
}

// Add seats a session, replacing any previous seat with the same ID.
func (r *Roster) Add(seat SessionHandle) {
	r.mu.Lock()
	r.seats[seat.ID()] = seat
	r.mu.Unlock()
}

func (r *Roster) Remove(id SessionID) {
	r.mu.Lock()
	delete(r.seats, id)
	r.mu.Unlock()
}

func (r *Roster) Lookup(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seat, ok := r.seats[id]
	return seat, ok
}
