package machines

import (
	"strings"
	"time"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

// ParseStatus accepts the two persisted values, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusSold:
		return StatusSold, true
	}
	return "", false
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusAvailable {
		return StatusSold
	}
	return StatusAvailable
}

type Machine struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Type        Bilingual   `json:"type"`
	Description string      `json:"description"`
	Features    []Bilingual `json:"features"`
	Status      Status      `json:"status"`
	Image       string      `json:"image"`
	DateAdded   time.Time   `json:"dateAdded"`
}

// Clone returns a copy that shares no slices with m.
func (m Machine) Clone() Machine {
	out := m
	if m.Features != nil {
		out.Features = make([]Bilingual, len(m.Features))
		copy(out.Features, m.Features)
	}
	return out
}

func CloneAll(list []Machine) []Machine {
	out := make([]Machine, len(list))
	for i, m := range list {
		out[i] = m.Clone()
	}
	return out
}

// IndexOf returns the position of the machine with id, or -1.
func IndexOf(list []Machine, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
