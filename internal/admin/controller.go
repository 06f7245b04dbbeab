// Package admin owns the machine inventory: it is the only writer of the
// record store and keeps the working copy, the edit state and the summary.
package admin

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"zozikafe/internal/domain/machines"
	"zozikafe/internal/infra/events"
	"zozikafe/internal/infra/metrics"
)

// Store is the part of the record store the controller needs.
type Store interface {
	Load(ctx context.Context) []machines.Machine
	Persist(ctx context.Context, list []machines.Machine) error
}

// Confirmer answers the interactive yes/no question before a delete.
type Confirmer interface {
	Confirm(prompt machines.Bilingual) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt machines.Bilingual) bool

func (f ConfirmFunc) Confirm(prompt machines.Bilingual) bool { return f(prompt) }

// Always confirms; for callers that already asked (e.g. --yes).
var Always Confirmer = ConfirmFunc(func(machines.Bilingual) bool { return true })

type Summary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Sold      int `json:"sold"`
}

func Summarize(list []machines.Machine) Summary {
	s := Summary{Total: len(list)}
	for _, m := range list {
		switch m.Status {
		case machines.StatusAvailable:
			s.Available++
		case machines.StatusSold:
			s.Sold++
		}
	}
	return s
}

// Result describes a successful save.
type Result struct {
	Machine      machines.Machine `json:"machine"`
	Created      bool             `json:"created"`
	Notification Notification     `json:"notification"`
}

type Controller struct {
	mu        sync.Mutex
	store     Store
	records   []machines.Machine
	editingID int64
	editing   bool
	form      Form

	now     func() time.Time
	bus     *events.Bus
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithEvents(bus *events.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New loads the working copy from store once.
func New(ctx context.Context, store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		form:   EmptyForm(),
		now:    time.Now,
		tracer: otel.Tracer("zozikafe/admin"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.records = store.Load(ctx)
	s := c.summaryLocked()
	c.metrics.Inventory(s.Available, s.Sold)
	return c
}

// SeedIfEmpty stores the sample inventory when there is nothing yet.
func (c *Controller) SeedIfEmpty(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if len(c.records) > 0 {
		c.mu.Unlock()
		return false, nil
	}
	ev, err := c.commitLocked(ctx, "seed", 0, machines.AdminSamples(c.now()))
	c.mu.Unlock()
	if err != nil {
		return false, err
	}
	c.publish(ctx, ev)
	log.Println("admin: seeded sample machines")
	return true, nil
}

// CreateOrUpdate saves the form. While an edit is in progress it replaces
// that machine in place, keeping its DateAdded; otherwise it appends a new one.
// A rejected form leaves the inventory and the edit state untouched.
func (c *Controller) CreateOrUpdate(ctx context.Context, f Form) (Result, error) {
	return c.save(ctx, "admin.CreateOrUpdate", f, func() (int64, bool, bool) {
		return c.editingID, c.editing, true
	})
}

// Create appends a machine regardless of any edit in progress.
func (c *Controller) Create(ctx context.Context, f Form) (Result, error) {
	return c.save(ctx, "admin.Create", f, func() (int64, bool, bool) {
		return 0, false, false
	})
}

// Update replaces machine id in place regardless of the edit state.
// A blank status keeps the stored one.
func (c *Controller) Update(ctx context.Context, id int64, f Form) (Result, error) {
	return c.save(ctx, "admin.Update", f, func() (int64, bool, bool) {
		return id, true, false
	})
}

// save validates f, then, under the lock, asks target which machine to
// write: (id, replace, clearEdit).
func (c *Controller) save(ctx context.Context, spanName string, f Form, target func() (int64, bool, bool)) (Result, error) {
	ctx, span := c.tracer.Start(ctx, spanName)
	defer span.End()

	m, err := f.validate()
	if err != nil {
		c.metrics.Mutation("save", err)
		span.SetStatus(codes.Error, err.Error())
		return Result{Notification: NotificationFor(err)}, err
	}

	c.mu.Lock()
	id, replace, clearEdit := target()
	next := machines.CloneAll(c.records)
	op := "create"
	if !replace {
		m.ID = c.nextIDLocked()
		m.DateAdded = c.now().UTC()
		next = append(next, m)
	} else {
		op = "update"
		idx := machines.IndexOf(next, id)
		if idx < 0 {
			if clearEdit {
				// the machine went away while it was being edited
				c.clearEditLocked()
			}
			c.mu.Unlock()
			c.metrics.Mutation(op, ErrNotFound)
			span.SetStatus(codes.Error, ErrNotFound.Error())
			return Result{Notification: NotificationFor(ErrNotFound)}, ErrNotFound
		}
		m.ID = id
		m.DateAdded = next[idx].DateAdded
		if !f.hasStatus() {
			m.Status = next[idx].Status
		}
		next[idx] = m
	}
	ev, err := c.commitLocked(ctx, op, m.ID, next)
	if err == nil && clearEdit {
		c.clearEditLocked()
	}
	c.mu.Unlock()

	span.SetAttributes(attribute.Int64("machine.id", m.ID), attribute.String("op", op))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{Notification: NotificationFor(err)}, err
	}
	c.publish(ctx, ev)

	res := Result{Machine: m.Clone(), Created: !replace}
	if res.Created {
		res.Notification = success("Машината е добавена успешно!", "Machine added successfully!")
	} else {
		res.Notification = success("Машината е обновена успешно!", "Machine updated successfully!")
	}
	return res, nil
}

// BeginEdit marks id as being edited and returns the pre-filled form.
// An unknown id changes nothing.
func (c *Controller) BeginEdit(id int64) (Form, Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := machines.IndexOf(c.records, id)
	if idx < 0 {
		return Form{}, NotificationFor(ErrNotFound), ErrNotFound
	}
	c.editing = true
	c.editingID = id
	c.form = FormFromMachine(c.records[idx])
	return c.form, info("Машината е заредена за редактиране", "Machine loaded for editing"), nil
}

// CancelEdit clears the form and any edit in progress.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.clearEditLocked()
	c.mu.Unlock()
}

// Delete removes id after confirm agrees. Declining or an unknown id leaves
// everything as it was.
func (c *Controller) Delete(ctx context.Context, id int64, confirm Confirmer) (Notification, error) {
	ctx, span := c.tracer.Start(ctx, "admin.Delete", trace.WithAttributes(attribute.Int64("machine.id", id)))
	defer span.End()

	if confirm == nil || !confirm.Confirm(deletePrompt) {
		return NotificationFor(ErrCancelled), ErrCancelled
	}

	c.mu.Lock()
	idx := machines.IndexOf(c.records, id)
	if idx < 0 {
		c.mu.Unlock()
		c.metrics.Mutation("delete", ErrNotFound)
		return NotificationFor(ErrNotFound), ErrNotFound
	}
	next := make([]machines.Machine, 0, len(c.records)-1)
	next = append(next, machines.CloneAll(c.records[:idx])...)
	next = append(next, machines.CloneAll(c.records[idx+1:])...)
	ev, err := c.commitLocked(ctx, "delete", id, next)
	if err == nil && c.editing && c.editingID == id {
		c.clearEditLocked()
	}
	c.mu.Unlock()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return NotificationFor(err), err
	}
	c.publish(ctx, ev)
	return success("Машината е изтрита успешно!", "Machine deleted successfully!"), nil
}

// ToggleStatus flips id between available and sold.
func (c *Controller) ToggleStatus(ctx context.Context, id int64) (machines.Machine, Notification, error) {
	ctx, span := c.tracer.Start(ctx, "admin.ToggleStatus", trace.WithAttributes(attribute.Int64("machine.id", id)))
	defer span.End()

	c.mu.Lock()
	idx := machines.IndexOf(c.records, id)
	if idx < 0 {
		c.mu.Unlock()
		c.metrics.Mutation("toggle", ErrNotFound)
		return machines.Machine{}, NotificationFor(ErrNotFound), ErrNotFound
	}
	next := machines.CloneAll(c.records)
	next[idx].Status = next[idx].Status.Toggled()
	updated := next[idx].Clone()
	ev, err := c.commitLocked(ctx, "toggle", id, next)
	c.mu.Unlock()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return machines.Machine{}, NotificationFor(err), err
	}
	c.publish(ctx, ev)
	return updated, toggledNotification(updated.Status), nil
}

// Import appends machines whose ids are not in the inventory yet and
// returns how many were added.
func (c *Controller) Import(ctx context.Context, list []machines.Machine) (int, error) {
	c.mu.Lock()
	next := machines.CloneAll(c.records)
	seen := make(map[int64]bool, len(next)+len(list))
	for _, m := range next {
		seen[m.ID] = true
	}
	added := 0
	for _, m := range list {
		if seen[m.ID] {
			continue
		}
		if _, ok := machines.ParseStatus(string(m.Status)); !ok {
			m.Status = machines.StatusAvailable
		}
		if m.DateAdded.IsZero() {
			m.DateAdded = c.now().UTC()
		}
		seen[m.ID] = true
		next = append(next, m.Clone())
		added++
	}
	if added == 0 {
		c.mu.Unlock()
		return 0, nil
	}
	ev, err := c.commitLocked(ctx, "import", 0, next)
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	c.publish(ctx, ev)
	return added, nil
}

func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

// Machines returns a copy of the inventory in display order.
func (c *Controller) Machines() []machines.Machine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return machines.CloneAll(c.records)
}

func (c *Controller) Get(id int64) (machines.Machine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := machines.IndexOf(c.records, id)
	if idx < 0 {
		return machines.Machine{}, ErrNotFound
	}
	return c.records[idx].Clone(), nil
}

// Editing returns the id being edited, if any.
func (c *Controller) Editing() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID, c.editing
}

// Form returns the entry form as it should currently be shown.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.form
	f.Features = append([]FeatureInput(nil), c.form.Features...)
	return f
}

// commitLocked persists next and only then makes it the working copy.
func (c *Controller) commitLocked(ctx context.Context, op string, id int64, next []machines.Machine) (events.Event, error) {
	if err := c.store.Persist(ctx, next); err != nil {
		c.metrics.Mutation(op, err)
		log.Printf("admin: %s machine %d: %v", op, id, err)
		return events.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	c.records = next
	s := c.summaryLocked()
	c.metrics.Mutation(op, nil)
	c.metrics.Inventory(s.Available, s.Sold)
	return events.Event{
		Op:        op,
		MachineID: id,
		Total:     s.Total,
		Available: s.Available,
		Sold:      s.Sold,
		At:        c.now().UTC(),
	}, nil
}

func (c *Controller) publish(ctx context.Context, ev events.Event) {
	c.bus.Emit(ctx, ev)
}

func (c *Controller) summaryLocked() Summary {
	return Summarize(c.records)
}

func (c *Controller) clearEditLocked() {
	c.editing = false
	c.editingID = 0
	c.form = EmptyForm()
}

// nextIDLocked derives the id from the clock in milliseconds and bumps it
// past every existing id so two saves in the same millisecond stay unique.
func (c *Controller) nextIDLocked() int64 {
	id := c.now().UnixMilli()
	for _, m := range c.records {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}
