package handle

import (
	"sync"

	"github.com/wlkit/wlkit"
)

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventUpgraded
	EventReleased
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventUpgraded:
		return "upgraded"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Event describes a resource lifecycle transition.
type Event struct {
	Kind Kind
	ID   wlkit.NativeID
	Type EventType
}

// Observer receives notifications about resource lifecycle events.
// Observers are ambient tooling (inspectors, tests); they must not call
// back into handle operations on the resource they are being notified
// about.
type Observer interface {
	OnResourceEvent(Event)
}

var (
	obsMu     sync.RWMutex
	observers []Observer
)

// Subscribe adds an observer for lifecycle events.
func Subscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	observers = append(observers, o)
}

// Unsubscribe removes an observer.
func Unsubscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	for i, obs := range observers {
		if obs == o {
			observers = append(observers[:i], observers[i+1:]...)
			return
		}
	}
}

func notify(e Event) {
	obsMu.RLock()
	defer obsMu.RUnlock()
	for _, o := range observers {
		o.OnResourceEvent(e)
	}
}
