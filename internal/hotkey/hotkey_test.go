package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.design/x/hotkey"

	"keyclip/internal/config"
)

type mockBackend struct {
	mu            sync.Mutex
	registerErr   error
	unregisterErr error
	registered    bool
	down          chan hotkey.Event
	up            chan hotkey.Event
}

func (m *mockBackend) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = true
	return nil
}

func (m *mockBackend) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unregisterErr != nil {
		return m.unregisterErr
	}
	m.registered = false
	return nil
}

func (m *mockBackend) Keydown() <-chan hotkey.Event { return m.down }
func (m *mockBackend) Keyup() <-chan hotkey.Event   { return m.up }

func (m *mockBackend) isRegistered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered
}

// mockOS хранит бэкенды по комбинациям и помечает занятые.
type mockOS struct {
	mu       sync.Mutex
	backends map[config.Binding]*mockBackend
	taken    map[config.Binding]bool
}

func newMockOS() *mockOS {
	return &mockOS{
		backends: make(map[config.Binding]*mockBackend),
		taken:    make(map[config.Binding]bool),
	}
}

func (o *mockOS) factory(b config.Binding) (backend, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	be := &mockBackend{
		down: make(chan hotkey.Event, 4),
		up:   make(chan hotkey.Event, 4),
	}
	if o.taken[b] {
		be.registerErr = errors.New("already grabbed")
	}
	o.backends[b] = be
	return be, nil
}

func (o *mockOS) backend(b config.Binding) *mockBackend {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.backends[b]
}

var ctrlAltU = config.Binding{Modifiers: config.ModControl | config.ModAlt, Code: "KeyU"}

func nextEvent(t *testing.T, r *Registrar) Event {
	t.Helper()
	select {
	case ev := <-r.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return Event{}
	}
}

func TestRegisterDeliversPhases(t *testing.T) {
	sys := newMockOS()
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	defer r.Close()

	def := config.DefaultBinding()
	if err := r.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	be := sys.backend(def)
	if !be.isRegistered() {
		t.Fatal("backend not registered")
	}

	be.down <- hotkey.Event{}
	if ev := nextEvent(t, r); ev.Phase != PhasePressed || ev.Binding != def {
		t.Errorf("first keydown = %+v", ev)
	}
	be.down <- hotkey.Event{}
	if ev := nextEvent(t, r); ev.Phase != PhaseRepeat {
		t.Errorf("second keydown phase = %v, want repeat", ev.Phase)
	}
	be.up <- hotkey.Event{}
	if ev := nextEvent(t, r); ev.Phase != PhaseReleased {
		t.Errorf("keyup phase = %v, want released", ev.Phase)
	}
	be.down <- hotkey.Event{}
	if ev := nextEvent(t, r); ev.Phase != PhasePressed {
		t.Errorf("keydown after release = %v, want pressed", ev.Phase)
	}
}

func TestRegisterConflict(t *testing.T) {
	sys := newMockOS()
	sys.taken[ctrlAltU] = true
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	defer r.Close()

	err := r.Register(ctrlAltU)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Register err = %v, want ErrConflict", err)
	}
	if _, ok := r.Active(); ok {
		t.Error("conflicting binding became active")
	}
	if err := r.Register(config.DefaultBinding()); err != nil {
		t.Errorf("Register after conflict: %v", err)
	}
}

func TestRegisterBusy(t *testing.T) {
	sys := newMockOS()
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	defer r.Close()

	if err := r.Register(config.DefaultBinding()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(ctrlAltU); !errors.Is(err, ErrBusy) {
		t.Errorf("second Register err = %v, want ErrBusy", err)
	}
	if got, _ := r.Active(); got != config.DefaultBinding() {
		t.Errorf("Active = %v", got)
	}
}

func TestUnregister(t *testing.T) {
	sys := newMockOS()
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	defer r.Close()

	def := config.DefaultBinding()
	if err := r.Unregister(def); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Unregister before Register err = %v", err)
	}
	if err := r.Register(def); err != nil {
		t.Fatal(err)
	}
	if err := r.Unregister(ctrlAltU); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Unregister of other binding err = %v", err)
	}
	if err := r.Unregister(def); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if sys.backend(def).isRegistered() {
		t.Error("backend still registered")
	}
	if _, ok := r.Active(); ok {
		t.Error("binding still active")
	}
	if err := r.Register(ctrlAltU); err != nil {
		t.Errorf("Register after Unregister: %v", err)
	}
}

func TestUnregisterFailureKeepsBinding(t *testing.T) {
	sys := newMockOS()
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	defer r.Close()

	def := config.DefaultBinding()
	if err := r.Register(def); err != nil {
		t.Fatal(err)
	}
	be := sys.backend(def)
	be.mu.Lock()
	be.unregisterErr = errors.New("boom")
	be.mu.Unlock()

	if err := r.Unregister(def); err == nil {
		t.Fatal("Unregister succeeded")
	}
	if got, ok := r.Active(); !ok || got != def {
		t.Errorf("Active = %v, %v", got, ok)
	}
	be.down <- hotkey.Event{}
	if ev := nextEvent(t, r); ev.Phase != PhasePressed {
		t.Errorf("listener stopped after failed unregister: %+v", ev)
	}

	be.mu.Lock()
	be.unregisterErr = nil
	be.mu.Unlock()
}

func TestCloseClosesEvents(t *testing.T) {
	sys := newMockOS()
	r := newRegistrar(zap.NewNop().Sugar(), sys.factory)
	if err := r.Register(config.DefaultBinding()); err != nil {
		t.Fatal(err)
	}
	r.Close()
	r.Close()

	if _, ok := <-r.Events(); ok {
		t.Error("events channel still open")
	}
	if err := r.Register(ctrlAltU); !errors.Is(err, ErrClosed) {
		t.Errorf("Register after Close err = %v", err)
	}
}

func TestConvert(t *testing.T) {
	for _, code := range config.AvailableCodes() {
		b := config.Binding{Modifiers: config.ModMeta | config.ModShift | config.ModAlt | config.ModControl, Code: code}
		mods, _, err := convert(b)
		if err != nil {
			t.Errorf("convert(%v): %v", b, err)
			continue
		}
		if len(mods) != 4 {
			t.Errorf("convert(%v) mods = %d, want 4", b, len(mods))
		}
	}

	if _, _, err := convert(config.Binding{Modifiers: config.ModShift, Code: "NumpadEnter"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("unknown code err = %v", err)
	}
	if _, _, err := convert(config.Binding{Modifiers: 1 << 20, Code: "KeyK"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("bad mask err = %v", err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRepeat.String() != "repeat" || Phase(9).String() != "Phase(9)" {
		t.Errorf("unexpected Phase strings")
	}
}
