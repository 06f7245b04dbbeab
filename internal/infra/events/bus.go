// Package events fans admin changes out to in-process subscribers and,
// optionally, to NATS.
package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

const SubjectMachinesChanged = "zozikafe.machines.changed"

type Event struct {
	Op        string    `json:"op"`
	MachineID int64     `json:"machine_id,omitempty"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
	Sold      int       `json:"sold"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

type Bus struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[int]func(Event)
	forward Publisher
}

// NewBus returns a bus; forward may be nil.
func NewBus(forward Publisher) *Bus {
	return &Bus{subs: map[int]func(Event){}, forward: forward}
}

// Subscribe registers fn and returns a func that removes it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Emit calls every subscriber synchronously, then forwards the event.
// Forwarding failures are logged, never returned: the change is already stored.
func (b *Bus) Emit(ctx context.Context, ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	forward := b.forward
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}

	if forward == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: encode %s: %v", ev.Op, err)
		return
	}
	if err := forward.Publish(ctx, SubjectMachinesChanged, payload); err != nil {
		log.Printf("events: forward %s: %v", ev.Op, err)
	}
}
