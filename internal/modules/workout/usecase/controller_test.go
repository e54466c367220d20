package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	workoutout "mapty/internal/modules/workout/port/out"
	"mapty/internal/modules/workout/service"
	"mapty/internal/modules/workout/usecase"
	apperrors "mapty/internal/platform/errors"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time {
	f.t = f.t.Add(time.Second)
	return f.t
}

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return string(rune('a' + f.n - 1))
}

type fakeLocator struct {
	pos dto.LatLng
	err error
}

func (f fakeLocator) CurrentPosition(context.Context) (dto.LatLng, error) { return f.pos, f.err }

type marker struct {
	at      dto.LatLng
	opts    dto.PopupOptions
	content string
}

type pan struct {
	at   dto.LatLng
	zoom int
	opts dto.PanOptions
}

type fakeMap struct {
	center      dto.LatLng
	zoom        int
	tileURL     string
	attribution string
	onClick     func(dto.LatLng)
	markers     []marker
	pans        []pan
}

func (f *fakeMap) LoadMap(center dto.LatLng, zoom int) (workoutout.MapWidget, error) {
	f.center, f.zoom = center, zoom
	return f, nil
}
func (f *fakeMap) AddTileLayer(url, attribution string) { f.tileURL, f.attribution = url, attribution }
func (f *fakeMap) OnClick(handler func(dto.LatLng))     { f.onClick = handler }
func (f *fakeMap) AddMarker(at dto.LatLng, opts dto.PopupOptions, content string) {
	f.markers = append(f.markers, marker{at: at, opts: opts, content: content})
}
func (f *fakeMap) PanTo(at dto.LatLng, zoom int, opts dto.PanOptions) {
	f.pans = append(f.pans, pan{at: at, zoom: zoom, opts: opts})
}

type fakeStore struct {
	items  map[string]string
	writes []string
	err    error
}

func newFakeStore() *fakeStore { return &fakeStore{items: map[string]string{}} }

func (f *fakeStore) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := f.items[key]
	return v, ok, nil
}
func (f *fakeStore) SetItem(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.items[key] = value
	f.writes = append(f.writes, value)
	return nil
}
func (f *fakeStore) RemoveItem(_ context.Context, key string) error {
	delete(f.items, key)
	return nil
}
func (f *fakeStore) Close() error { return nil }

type fakeForm struct {
	values       dto.FormValues
	visible      bool
	focused      bool
	toggles      int
	onSubmit     func()
	onTypeChange func()
}

func (f *fakeForm) Show()                       { f.visible = true }
func (f *fakeForm) Hide()                       { f.visible = false; f.values = dto.FormValues{Type: f.values.Type} }
func (f *fakeForm) FocusDistance()              { f.focused = true }
func (f *fakeForm) ToggleMetricRows()           { f.toggles++ }
func (f *fakeForm) Values() dto.FormValues      { return f.values }
func (f *fakeForm) OnSubmit(handler func())     { f.onSubmit = handler }
func (f *fakeForm) OnTypeChange(handler func()) { f.onTypeChange = handler }

type fakeList struct {
	entries  []dto.Entry
	onSelect func(string)
}

func (f *fakeList) InsertAfterForm(entry dto.Entry)  { f.entries = append(f.entries, entry) }
func (f *fakeList) OnSelect(handler func(id string)) { f.onSelect = handler }

type fakeAlerter struct{ messages []string }

func (f *fakeAlerter) Alert(message string) { f.messages = append(f.messages, message) }

type fakeReloader struct{ reloads int }

func (f *fakeReloader) Reload() { f.reloads++ }

type harness struct {
	uc       workoutin.Usecase
	maps     *fakeMap
	store    *fakeStore
	form     *fakeForm
	list     *fakeList
	alerter  *fakeAlerter
	reloader *fakeReloader
	locator  fakeLocator
}

func newHarness(store *fakeStore, locator fakeLocator) *harness {
	h := &harness{
		maps:     &fakeMap{},
		store:    store,
		form:     &fakeForm{values: dto.FormValues{Type: "running"}},
		list:     &fakeList{},
		alerter:  &fakeAlerter{},
		reloader: &fakeReloader{},
		locator:  locator,
	}
	svc := service.NewWorkoutService(&fakeClock{t: time.Date(2026, time.March, 7, 8, 0, 0, 0, time.Local)}, &fakeID{})
	h.uc = usecase.NewController(svc, usecase.Ports{
		Locator:  h.locator,
		Maps:     h.maps,
		Store:    h.store,
		Form:     h.form,
		List:     h.list,
		Alerter:  h.alerter,
		Reloader: h.reloader,
	}, usecase.Options{TileURL: "https://tiles/{z}/{x}/{y}.png", TileAttribution: "OSM"}, nil)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	req := h.uc.Start(ctx)
	h.uc.HandlePosition(ctx, req(ctx))
}

func TestStartLoadsMapAtPosition(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 38.7, Lng: -9.1}})
	h.start(t)

	if h.maps.center != (dto.LatLng{Lat: 38.7, Lng: -9.1}) || h.maps.zoom != 13 {
		t.Fatalf("map not centred at position with default zoom: %+v zoom=%d", h.maps.center, h.maps.zoom)
	}
	if h.maps.tileURL != "https://tiles/{z}/{x}/{y}.png" || h.maps.attribution != "OSM" {
		t.Fatalf("tile layer not added: %q %q", h.maps.tileURL, h.maps.attribution)
	}
	if h.maps.onClick == nil || h.form.onSubmit == nil || h.form.onTypeChange == nil || h.list.onSelect == nil {
		t.Fatalf("handlers must be registered")
	}
	if len(h.alerter.messages) != 0 {
		t.Fatalf("unexpected alerts %v", h.alerter.messages)
	}
}

func TestPositionFailureAlertsOnceAndLeavesMapUnloaded(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{err: apperrors.ErrLocationUnavailable})
	h.start(t)

	if len(h.alerter.messages) != 1 || h.alerter.messages[0] != usecase.AlertNoLocation {
		t.Fatalf("expected one location alert, got %v", h.alerter.messages)
	}
	if h.maps.onClick != nil {
		t.Fatalf("map must stay uninitialised")
	}
	// The rest of the application keeps working.
	h.uc.ShowForm(dto.LatLng{Lat: 1, Lng: 1})
	h.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	h.form.onSubmit()
	if len(h.list.entries) != 1 || len(h.store.writes) != 1 {
		t.Fatalf("form path must work without a map: entries=%d writes=%d", len(h.list.entries), len(h.store.writes))
	}
	if len(h.maps.markers) != 0 {
		t.Fatalf("no markers without a map")
	}
}

func TestMapClickShowsFormWithoutCreatingWorkout(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	h.start(t)

	h.maps.onClick(dto.LatLng{Lat: 40.1, Lng: -3.1})
	if !h.form.visible || !h.form.focused {
		t.Fatalf("form must be shown and focused")
	}
	if len(h.uc.Workouts()) != 0 || len(h.store.writes) != 0 {
		t.Fatalf("map click must not create a workout")
	}
}

func TestSubmitValidRunningWorkout(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	h.start(t)

	h.maps.onClick(dto.LatLng{Lat: 40.0, Lng: -3.0})
	h.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	h.form.onSubmit()

	workouts := h.uc.Workouts()
	if len(workouts) != 1 {
		t.Fatalf("expected one workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.Type != "running" || w.Pace != 6 || w.Lat != 40.0 || w.Lng != -3.0 {
		t.Fatalf("unexpected workout %+v", w)
	}
	if len(h.maps.markers) != 1 || h.maps.markers[0].opts.ClassName != "running-popup" {
		t.Fatalf("expected one running marker, got %+v", h.maps.markers)
	}
	if len(h.list.entries) != 1 || h.list.entries[0].ID != w.ID {
		t.Fatalf("expected one list entry, got %+v", h.list.entries)
	}
	if h.form.visible || h.form.values.Distance != "" {
		t.Fatalf("form must be hidden and cleared")
	}
	if len(h.store.writes) != 1 {
		t.Fatalf("expected one storage write, got %d", len(h.store.writes))
	}
	var stored []map[string]any
	if err := json.Unmarshal([]byte(h.store.writes[0]), &stored); err != nil {
		t.Fatalf("stored snapshot is not a JSON array: %v", err)
	}
	if len(stored) != 1 || stored[0]["type"] != "running" {
		t.Fatalf("expected one-element array, got %v", stored)
	}
}

func TestSubmitNegativeDistanceAlertsWithoutStateChange(t *testing.T) {
	t.Parallel()
	for _, kind := range []string{"running", "cycling"} {
		h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
		h.start(t)
		h.maps.onClick(dto.LatLng{Lat: 40, Lng: -3})
		h.form.values = dto.FormValues{Type: kind, Distance: "-5", Duration: "30", Cadence: "180", Elevation: "10"}
		h.form.onSubmit()

		if len(h.uc.Workouts()) != 0 || len(h.store.writes) != 0 || len(h.maps.markers) != 0 || len(h.list.entries) != 0 {
			t.Fatalf("%s: invalid input must not change state", kind)
		}
		if len(h.alerter.messages) != 1 || h.alerter.messages[0] != usecase.AlertInvalidInput {
			t.Fatalf("%s: expected exactly one alert, got %v", kind, h.alerter.messages)
		}
		if !h.form.visible {
			t.Fatalf("%s: form must stay open", kind)
		}
	}
}

func TestSubmitBeforeMapClickIsRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	h.start(t)
	h.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	h.form.onSubmit()
	if len(h.uc.Workouts()) != 0 || len(h.alerter.messages) != 1 || h.alerter.messages[0] != usecase.AlertNoMapClick {
		t.Fatalf("expected rejection with alert, got workouts=%d alerts=%v", len(h.uc.Workouts()), h.alerter.messages)
	}
}

func TestTypeChangeTogglesMetricRows(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{}})
	h.start(t)
	h.form.onTypeChange()
	h.form.onTypeChange()
	if h.form.toggles != 2 {
		t.Fatalf("expected two toggles, got %d", h.form.toggles)
	}
}

func TestPersistAndRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	first := newHarness(store, fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	first.start(t)
	first.maps.onClick(dto.LatLng{Lat: 40, Lng: -3})
	first.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	first.form.onSubmit()
	first.maps.onClick(dto.LatLng{Lat: 41, Lng: -4})
	first.form.values = dto.FormValues{Type: "cycling", Distance: "27", Duration: "95", Elevation: "523"}
	first.form.onSubmit()
	before := first.uc.Workouts()

	second := newHarness(store, fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	ctx := context.Background()
	req := second.uc.Start(ctx)
	if len(second.list.entries) != 2 {
		t.Fatalf("restored workouts must render as entries before the map loads, got %d", len(second.list.entries))
	}
	if len(second.maps.markers) != 0 {
		t.Fatalf("markers must wait for the map")
	}
	second.uc.HandlePosition(ctx, req(ctx))
	if len(second.maps.markers) != 2 {
		t.Fatalf("markers must render once the map loads, got %d", len(second.maps.markers))
	}

	after := second.uc.Workouts()
	if len(after) != 2 {
		t.Fatalf("expected two restored workouts, got %d", len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Type != before[i].Type || after[i].Description != before[i].Description {
			t.Fatalf("entry %d changed identity: %+v vs %+v", i, after[i], before[i])
		}
		if after[i].Distance != before[i].Distance || after[i].Duration != before[i].Duration || after[i].Pace != before[i].Pace || after[i].Speed != before[i].Speed {
			t.Fatalf("entry %d changed values: %+v vs %+v", i, after[i], before[i])
		}
		if !after[i].Date.Equal(before[i].Date) {
			t.Fatalf("entry %d changed date", i)
		}
	}
}

func TestRestoreSkipsMalformedStorage(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.items[service.SnapshotKey] = "{broken"
	h := newHarness(store, fakeLocator{pos: dto.LatLng{}})
	h.start(t)
	if len(h.uc.Workouts()) != 0 || len(h.list.entries) != 0 || len(h.alerter.messages) != 0 {
		t.Fatalf("malformed storage must be skipped silently")
	}
}

func TestRestoreSkipsOutOfRangeRecordsAndKeepsSaving(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.items[service.SnapshotKey] = `[{"id":"1","type":"running","coords":[40,-3],"distance":0,"duration":30,"cadence":170,"date":"2026-03-07T09:00:00Z"},` +
		`{"id":"2","type":"cycling","coords":[40,-3],"distance":20,"duration":60,"elevationGain":100,"date":"2026-03-07T10:00:00Z"}]`
	h := newHarness(store, fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	h.start(t)
	if got := h.uc.Workouts(); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only the valid stored workout, got %+v", got)
	}

	h.maps.onClick(dto.LatLng{Lat: 40.1, Lng: -3.1})
	h.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	h.form.onSubmit()
	if len(h.alerter.messages) != 0 {
		t.Fatalf("unexpected alerts %v", h.alerter.messages)
	}
	if len(store.writes) != 1 {
		t.Fatalf("expected the new workout to be saved, got %d writes", len(store.writes))
	}
	var saved []map[string]any
	if err := json.Unmarshal([]byte(store.writes[0]), &saved); err != nil || len(saved) != 2 {
		t.Fatalf("expected two saved records, got %v (%v)", saved, err)
	}
}

func TestMoveToPopupPansOnlyForKnownWorkout(t *testing.T) {
	t.Parallel()
	h := newHarness(newFakeStore(), fakeLocator{pos: dto.LatLng{Lat: 40, Lng: -3}})
	h.start(t)
	h.maps.onClick(dto.LatLng{Lat: 40.5, Lng: -3.5})
	h.form.values = dto.FormValues{Type: "running", Distance: "5", Duration: "30", Cadence: "180"}
	h.form.onSubmit()
	id := h.uc.Workouts()[0].ID

	h.list.onSelect("")
	h.list.onSelect("missing")
	if len(h.maps.pans) != 0 {
		t.Fatalf("unknown selections must not pan, got %d", len(h.maps.pans))
	}
	h.list.onSelect(id)
	if len(h.maps.pans) != 1 {
		t.Fatalf("expected exactly one pan, got %d", len(h.maps.pans))
	}
	p := h.maps.pans[0]
	if p.at != (dto.LatLng{Lat: 40.5, Lng: -3.5}) || p.zoom != 13 || !p.opts.Animate || p.opts.Duration != time.Second {
		t.Fatalf("unexpected pan %+v", p)
	}
}

func TestResetClearsStorageAndReloads(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	h := newHarness(store, fakeLocator{pos: dto.LatLng{}})
	h.start(t)
	if _, err := h.uc.Submit(context.Background(), dto.SubmitInput{Type: "cycling", Distance: 10, Duration: 30, Elevation: 5}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := h.uc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if h.reloader.reloads != 1 {
		t.Fatalf("expected one reload, got %d", h.reloader.reloads)
	}
	fresh := newHarness(store, fakeLocator{pos: dto.LatLng{}})
	fresh.start(t)
	if len(fresh.uc.Workouts()) != 0 {
		t.Fatalf("restore after reset must find nothing")
	}
}

func TestSubmitReportsValidationAndStorageErrors(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	h := newHarness(store, fakeLocator{pos: dto.LatLng{}})
	h.start(t)
	if _, err := h.uc.Submit(context.Background(), dto.SubmitInput{Type: "running", Distance: 0, Duration: 30, Cadence: 170}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	store.err = errors.New("disk full")
	out, err := h.uc.Submit(context.Background(), dto.SubmitInput{Type: "running", Distance: 10, Duration: 50, Cadence: 170})
	if err == nil {
		t.Fatalf("expected storage error")
	}
	if out.Pace != 5 || len(h.uc.Workouts()) != 1 {
		t.Fatalf("workout stays in memory even when saving fails")
	}
}
