package backend

// Signal is a named notification source on a native object. Listener
// management mirrors a raw native boundary: additions are cheap, removal
// must happen exactly once, and removing twice is a hard fault rather
// than a forgiven no-op.
type Signal struct {
	name      string
	listeners []*Listener
}

// Listener is one subscription to a Signal.
type Listener struct {
	signal  *Signal
	fn      func(data any)
	removed bool
}

// Add subscribes fn to the signal and returns the listener for later
// removal. Listeners run synchronously, in subscription order.
func (s *Signal) Add(fn func(data any)) *Listener {
	l := &Listener{signal: s, fn: fn}
	s.listeners = append(s.listeners, l)
	return l
}

// Remove unsubscribes the listener. Calling Remove twice panics; the
// caller owns the obligation to unregister exactly once.
func (l *Listener) Remove() {
	if l.removed {
		panic("backend: listener removed twice from signal " + l.signal.name)
	}
	l.removed = true
	ls := l.signal.listeners
	for i, cand := range ls {
		if cand == l {
			l.signal.listeners = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

func (s *Signal) emit(data any) {
	// Snapshot so listeners may remove themselves or others mid-emit.
	snapshot := make([]*Listener, len(s.listeners))
	copy(snapshot, s.listeners)
	for _, l := range snapshot {
		if !l.removed {
			l.fn(data)
		}
	}
}
