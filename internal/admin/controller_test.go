package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
	"zozikafe/internal/infra/events"
	"zozikafe/internal/infra/kv"
	"zozikafe/internal/store"
)

type fixture struct {
	ctx   context.Context
	kv    kv.Store
	store *store.RecordStore
	clock *fakeClock
	bus   *events.Bus
	ctrl  *Controller
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem, err := kv.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	f := &fixture{
		ctx:   context.Background(),
		kv:    mem,
		store: store.New(mem),
		clock: &fakeClock{t: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)},
		bus:   events.NewBus(nil),
	}
	f.ctrl = f.open()
	return f
}

// open builds a controller over the same store, like a page reload.
func (f *fixture) open() *Controller {
	return New(f.ctx, f.store, WithClock(f.clock.Now), WithEvents(f.bus))
}

func (f *fixture) raw(t *testing.T, key string) []byte {
	t.Helper()
	v, err := f.kv.Get(f.ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)
	return v
}

func (f *fixture) assertLockstep(t *testing.T) {
	t.Helper()
	assert.Equal(t, f.store.Load(f.ctx), f.store.LoadDisplay(f.ctx))
	assert.Equal(t, f.raw(t, store.KeyMachines), f.raw(t, store.KeyDisplay))
}

func testMachineForm() Form {
	return Form{
		Name:     "Test Machine",
		TypeBG:   "Тип А|Type A",
		Status:   "available",
		Features: []FeatureInput{{BG: "X", EN: "Y"}},
	}
}

func TestCreateAppendsAndPersists(t *testing.T) {
	f := newFixture(t)
	before := f.ctrl.Summary()

	res, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, KindSuccess, res.Notification.Kind)

	after := f.ctrl.Summary()
	assert.Equal(t, before.Total+1, after.Total)
	assert.Equal(t, before.Available+1, after.Available)
	assert.Equal(t, before.Sold, after.Sold)

	list := f.store.Load(f.ctx)
	require.Len(t, list, 1)
	m := list[0]
	assert.Equal(t, f.clock.Now().UnixMilli(), m.ID)
	assert.Equal(t, "Test Machine", m.Name)
	assert.Equal(t, "Тип А", m.Type.Pick(lang.Primary))
	assert.Equal(t, "Type A", m.Type.Pick(lang.Secondary))
	assert.Equal(t, []machines.Bilingual{{BG: "X", EN: "Y"}}, m.Features)
	assert.Equal(t, machines.StatusAvailable, m.Status)
	assert.True(t, f.clock.Now().Equal(m.DateAdded))
	f.assertLockstep(t)
}

func TestCreateWithoutFeaturesDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	primary := f.raw(t, store.KeyMachines)
	derived := f.raw(t, store.KeyDisplay)

	form := testMachineForm()
	form.Features = []FeatureInput{{BG: "  ", EN: "only english"}, {}}
	res, err := f.ctrl.CreateOrUpdate(f.ctx, form)
	require.ErrorIs(t, err, ErrNoFeatures)
	assert.True(t, IsValidation(err))
	assert.Equal(t, KindError, res.Notification.Kind)

	assert.Equal(t, primary, f.raw(t, store.KeyMachines))
	assert.Equal(t, derived, f.raw(t, store.KeyDisplay))
	assert.Equal(t, 1, f.ctrl.Summary().Total)
}

func TestValidationDuringEditKeepsEditState(t *testing.T) {
	f := newFixture(t)
	res, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	_, _, err = f.ctrl.BeginEdit(res.Machine.ID)
	require.NoError(t, err)

	_, err = f.ctrl.CreateOrUpdate(f.ctx, Form{Name: "x", TypeBG: "y"})
	require.ErrorIs(t, err, ErrNoFeatures)

	id, editing := f.ctrl.Editing()
	assert.True(t, editing)
	assert.Equal(t, res.Machine.ID, id)
}

func TestSecondaryFeatureDefaultsToPrimary(t *testing.T) {
	f := newFixture(t)
	form := testMachineForm()
	form.Features = []FeatureInput{{BG: "Двоен бойлер"}}
	res, err := f.ctrl.CreateOrUpdate(f.ctx, form)
	require.NoError(t, err)
	assert.Equal(t, machines.Bilingual{BG: "Двоен бойлер", EN: "Двоен бойлер"}, res.Machine.Features[0])
}

func TestEditPreservesDateAdded(t *testing.T) {
	f := newFixture(t)
	created, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	original := f.store.Load(f.ctx)[0].DateAdded

	f.clock.Advance(72 * time.Hour)

	form, note, err := f.ctrl.BeginEdit(created.Machine.ID)
	require.NoError(t, err)
	assert.Equal(t, KindInfo, note.Kind)
	assert.Equal(t, "Тип А", form.TypeBG)
	assert.Equal(t, "Type A", form.TypeEN)
	assert.Equal(t, []FeatureInput{{BG: "X", EN: "Y"}}, form.Features)

	form.Name = "Renamed Machine"
	res, err := f.ctrl.CreateOrUpdate(f.ctx, form)
	require.NoError(t, err)
	assert.False(t, res.Created)

	_, editing := f.ctrl.Editing()
	assert.False(t, editing)
	assert.Equal(t, EmptyForm(), f.ctrl.Form())

	reloaded := f.open()
	list := reloaded.Machines()
	require.Len(t, list, 1)
	assert.Equal(t, created.Machine.ID, list[0].ID)
	assert.Equal(t, "Renamed Machine", list[0].Name)
	assert.True(t, original.Equal(list[0].DateAdded), "dateAdded changed on edit")
	f.assertLockstep(t)
}

func TestEditKeepsPosition(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	list := f.ctrl.Machines()

	form, _, err := f.ctrl.BeginEdit(list[1].ID)
	require.NoError(t, err)
	form.Status = "sold"
	_, err = f.ctrl.CreateOrUpdate(f.ctx, form)
	require.NoError(t, err)

	got := f.store.Load(f.ctx)
	require.Len(t, got, 3)
	assert.Equal(t, list[1].ID, got[1].ID)
	assert.Equal(t, machines.StatusSold, got[1].Status)
}

func TestBeginEditUnknownIsNoop(t *testing.T) {
	f := newFixture(t)
	_, note, err := f.ctrl.BeginEdit(42)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindError, note.Kind)

	_, editing := f.ctrl.Editing()
	assert.False(t, editing)
	assert.Equal(t, EmptyForm(), f.ctrl.Form())
}

func TestCancelEdit(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	_, _, err := f.ctrl.BeginEdit(1)
	require.NoError(t, err)

	f.ctrl.CancelEdit()
	_, editing := f.ctrl.Editing()
	assert.False(t, editing)

	res, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	assert.True(t, res.Created, "save after cancel must create")
	assert.Equal(t, 4, f.ctrl.Summary().Total)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))

	var asked machines.Bilingual
	note, err := f.ctrl.Delete(f.ctx, 2, ConfirmFunc(func(p machines.Bilingual) bool {
		asked = p
		return true
	}))
	require.NoError(t, err)
	assert.Equal(t, KindSuccess, note.Kind)
	assert.Equal(t, DeletePrompt(), asked)

	for _, m := range f.store.Load(f.ctx) {
		assert.NotEqual(t, int64(2), m.ID)
	}
	assert.Equal(t, Summary{Total: 2, Available: 1, Sold: 1}, f.ctrl.Summary())
	f.assertLockstep(t)
}

func TestDeleteUnknownLeavesSequence(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	before := f.raw(t, store.KeyMachines)

	_, err := f.ctrl.Delete(f.ctx, 999, Always)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, f.raw(t, store.KeyMachines))
}

func TestDeleteDeclined(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	before := f.raw(t, store.KeyMachines)

	note, err := f.ctrl.Delete(f.ctx, 1, ConfirmFunc(func(machines.Bilingual) bool { return false }))
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, KindInfo, note.Kind)
	assert.Equal(t, before, f.raw(t, store.KeyMachines))

	_, err = f.ctrl.Delete(f.ctx, 1, nil)
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 3, f.ctrl.Summary().Total)
}

func TestDeleteClearsEditOfSameMachine(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	_, _, err := f.ctrl.BeginEdit(3)
	require.NoError(t, err)

	_, err = f.ctrl.Delete(f.ctx, 3, Always)
	require.NoError(t, err)
	_, editing := f.ctrl.Editing()
	assert.False(t, editing)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	original := f.ctrl.Machines()[0]

	m, note, err := f.ctrl.ToggleStatus(f.ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Status.Toggled(), m.Status)
	assert.Equal(t, "Machine marked as sold!", note.Message.EN)
	f.assertLockstep(t)

	m, _, err = f.ctrl.ToggleStatus(f.ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, m)
	assert.Equal(t, original, f.store.Load(f.ctx)[0])

	_, _, err = f.ctrl.ToggleStatus(f.ctx, 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIDsStayUniqueWithinOneMillisecond(t *testing.T) {
	f := newFixture(t)
	a, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	b, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	assert.NotEqual(t, a.Machine.ID, b.Machine.ID)
	assert.Equal(t, a.Machine.ID+1, b.Machine.ID)
}

type failingStore struct {
	*store.RecordStore
	fail bool
}

func (s *failingStore) Persist(ctx context.Context, list []machines.Machine) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.RecordStore.Persist(ctx, list)
}

func TestPersistFailureKeepsWorkingCopy(t *testing.T) {
	f := newFixture(t)
	fs := &failingStore{RecordStore: f.store}
	ctrl := New(f.ctx, fs, WithClock(f.clock.Now))
	_, err := ctrl.SeedIfEmpty(f.ctx)
	require.NoError(t, err)

	fs.fail = true
	_, err = ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	_, _, err = ctrl.ToggleStatus(f.ctx, 1)
	require.Error(t, err)

	assert.Equal(t, Summary{Total: 3, Available: 2, Sold: 1}, ctrl.Summary())
	assert.Equal(t, machines.StatusAvailable, ctrl.Machines()[0].Status)
}

func TestSeedIfEmpty(t *testing.T) {
	f := newFixture(t)
	seeded, err := f.ctrl.SeedIfEmpty(f.ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = f.ctrl.SeedIfEmpty(f.ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, Summary{Total: 3, Available: 2, Sold: 1}, f.ctrl.Summary())
	f.assertLockstep(t)
}

func TestImportSkipsKnownIDs(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))

	added, err := f.ctrl.Import(f.ctx, []machines.Machine{
		{ID: 1, Name: "duplicate"},
		{ID: 77, Name: "Imported", Type: machines.Bilingual{BG: "Тип"}, Status: "weird"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	list := f.store.Load(f.ctx)
	require.Len(t, list, 4)
	assert.Equal(t, int64(77), list[3].ID)
	assert.Equal(t, machines.StatusAvailable, list[3].Status)
	assert.False(t, list[3].DateAdded.IsZero())
}

func TestMutationsEmitEvents(t *testing.T) {
	f := newFixture(t)
	var got []events.Event
	f.bus.Subscribe(func(ev events.Event) { got = append(got, ev) })

	res, err := f.ctrl.CreateOrUpdate(f.ctx, testMachineForm())
	require.NoError(t, err)
	_, _, err = f.ctrl.ToggleStatus(f.ctx, res.Machine.ID)
	require.NoError(t, err)
	_, err = f.ctrl.CreateOrUpdate(f.ctx, Form{})
	require.Error(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "create", got[0].Op)
	assert.Equal(t, "toggle", got[1].Op)
	assert.Equal(t, 1, got[1].Sold)
}

func seed(f *fixture) error {
	_, err := f.ctrl.SeedIfEmpty(f.ctx)
	return err
}

func TestCreateAndUpdateIgnoreEditState(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, seed(f))
	_, _, err := f.ctrl.BeginEdit(1)
	require.NoError(t, err)

	res, err := f.ctrl.Create(f.ctx, testMachineForm())
	require.NoError(t, err)
	assert.True(t, res.Created)
	id, editing := f.ctrl.Editing()
	assert.True(t, editing, "API create must not end the form edit")
	assert.Equal(t, int64(1), id)

	form := testMachineForm()
	form.Name = "Via API"
	res, err = f.ctrl.Update(f.ctx, 2, form)
	require.NoError(t, err)
	assert.False(t, res.Created)
	got, err := f.ctrl.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Via API", got.Name)

	_, err = f.ctrl.Update(f.ctx, 404, form)
	require.ErrorIs(t, err, ErrNotFound)
	_, editing = f.ctrl.Editing()
	assert.True(t, editing)
}


func TestUpdateWithoutStatusKeepsStoredStatus(t *testing.T) {
	f := newFixture(t)
	res, err := f.ctrl.Create(f.ctx, testMachineForm())
	require.NoError(t, err)
	_, _, err = f.ctrl.ToggleStatus(f.ctx, res.Machine.ID)
	require.NoError(t, err)

	form := testMachineForm()
	form.Status = ""
	form.Name = "Renamed"
	_, err = f.ctrl.Update(f.ctx, res.Machine.ID, form)
	require.NoError(t, err)

	got, err := f.ctrl.Get(res.Machine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, machines.StatusSold, got.Status)

	form.Status = "available"
	_, err = f.ctrl.Update(f.ctx, res.Machine.ID, form)
	require.NoError(t, err)
	got, err = f.ctrl.Get(res.Machine.ID)
	require.NoError(t, err)
	assert.Equal(t, machines.StatusAvailable, got.Status)
	f.assertLockstep(t)
}

func TestFeatureRows(t *testing.T) {
	form := EmptyForm().AddFeatureRow()
	require.Len(t, form.Features, 2)

	form.Features[0] = FeatureInput{BG: "Е61"}
	form.Features[1] = FeatureInput{BG: "PID", EN: "PID control"}
	grown := form.AddFeatureRow()
	assert.Len(t, grown.Features, 3)
	assert.Len(t, form.Features, 2, "adding a row must not touch the original form")
	assert.Len(t, grown.ParseFeatures(), 2)

	shrunk := grown.RemoveFeatureRow().RemoveFeatureRow()
	require.Len(t, shrunk.Features, 1)
	assert.Equal(t, "Е61", shrunk.Features[0].BG)
	assert.Len(t, shrunk.RemoveFeatureRow().Features, 1)
}
