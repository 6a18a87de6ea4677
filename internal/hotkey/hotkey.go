// Package hotkey предоставляет глобальную горячую клавишу.
//
// Registrar держит одну активную комбинацию и доставляет нажатия
// и отпускания в общий канал Events.
package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"keyclip/internal/config"
)

var (
	// ErrConflict - комбинация уже занята другим приложением.
	ErrConflict = errors.New("комбинация уже занята другим приложением")
	// ErrNotRegistered - комбинация не зарегистрирована этим процессом.
	ErrNotRegistered = errors.New("комбинация не зарегистрирована")
	// ErrBusy - уже зарегистрирована другая комбинация.
	ErrBusy = errors.New("уже зарегистрирована другая комбинация")
	// ErrUnsupported - комбинацию нельзя выразить на этой платформе.
	ErrUnsupported = errors.New("комбинация не поддерживается")
	// ErrClosed - Registrar закрыт.
	ErrClosed = errors.New("регистратор закрыт")
)

const (
	eventBuffer       = 16
	unregisterTimeout = 500 * time.Millisecond
)

// Phase - фаза события клавиши.
type Phase int

const (
	PhasePressed  Phase = iota // нажатие из отпущенного состояния
	PhaseRepeat                // повторное нажатие без отпускания (автоповтор)
	PhaseReleased              // отпускание
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseRepeat:
		return "repeat"
	case PhaseReleased:
		return "released"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Event - событие зарегистрированной комбинации.
type Event struct {
	Binding config.Binding
	Phase   Phase
}

// backend абстрагирует golang.design/x/hotkey, чтобы в тестах
// подставлять мок.
type backend interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
	Keyup() <-chan hotkey.Event
}

type registration struct {
	binding config.Binding
	be      backend
	stopCh  chan struct{}
	done    chan struct{}
}

// Registrar регистрирует одну комбинацию в ОС.
type Registrar struct {
	mu      sync.Mutex
	log     *zap.SugaredLogger
	factory func(config.Binding) (backend, error)
	active  *registration
	events  chan Event
	closed  bool
}

// New создаёт Registrar поверх системных горячих клавиш.
func New(log *zap.SugaredLogger) *Registrar {
	return newRegistrar(log, newNativeBackend)
}

func newRegistrar(log *zap.SugaredLogger, factory func(config.Binding) (backend, error)) *Registrar {
	return &Registrar{
		log:     log,
		factory: factory,
		events:  make(chan Event, eventBuffer),
	}
}

// Events возвращает канал событий. Канал один на всё время жизни
// Registrar и закрывается в Close.
func (r *Registrar) Events() <-chan Event {
	return r.events
}

// Register регистрирует комбинацию и запускает её слушатель.
func (r *Registrar) Register(b config.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.active != nil {
		return fmt.Errorf("%w: %s", ErrBusy, r.active.binding)
	}

	be, err := r.factory(b)
	if err != nil {
		return err
	}
	if err := be.Register(); err != nil {
		r.log.Warnw("Ошибка регистрации горячей клавиши", "hotkey", b.String(), "error", err)
		return fmt.Errorf("%w: %s: %v", ErrConflict, b, err)
	}

	reg := &registration{
		binding: b,
		be:      be,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	r.active = reg
	go r.listen(reg)

	r.log.Infow("Горячая клавиша зарегистрирована", "hotkey", b.String())
	return nil
}

// Unregister отменяет регистрацию комбинации b. Если b не активна,
// возвращается ErrNotRegistered и ничего не меняется.
func (r *Registrar) Unregister(b config.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil || r.active.binding != b {
		return fmt.Errorf("%w: %s", ErrNotRegistered, b)
	}
	if err := r.release(r.active); err != nil {
		return err
	}
	r.active = nil
	r.log.Infow("Регистрация горячей клавиши отменена", "hotkey", b.String())
	return nil
}

// Active возвращает активную комбинацию.
func (r *Registrar) Active() (config.Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return config.Binding{}, false
	}
	return r.active.binding, true
}

// Close снимает регистрацию и закрывает канал событий.
func (r *Registrar) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	if r.active != nil {
		if err := r.release(r.active); err != nil {
			r.log.Warnw("Ошибка отмены регистрации при закрытии", "error", err)
			close(r.active.stopCh)
		}
		<-r.active.done
		r.active = nil
	}
	close(r.events)
}

// release снимает регистрацию в ОС и останавливает слушатель.
// Вызывается под r.mu.
func (r *Registrar) release(reg *registration) error {
	// Unregister на некоторых платформах может зависнуть,
	// поэтому ждём с таймаутом.
	errCh := make(chan error, 1)
	go func() {
		errCh <- reg.be.Unregister()
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("отмена регистрации %s: %w", reg.binding, err)
		}
	case <-time.After(unregisterTimeout):
		r.log.Warnw("Таймаут отмены регистрации горячей клавиши", "hotkey", reg.binding.String())
	}
	close(reg.stopCh)
	return nil
}

func (r *Registrar) listen(reg *registration) {
	defer close(reg.done)

	keydown := reg.be.Keydown()
	keyup := reg.be.Keyup()
	down := false

	for {
		select {
		case <-reg.stopCh:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			phase := PhasePressed
			if down {
				phase = PhaseRepeat
			}
			down = true
			r.emit(Event{Binding: reg.binding, Phase: phase})
		case _, ok := <-keyup:
			if !ok {
				return
			}
			down = false
			r.emit(Event{Binding: reg.binding, Phase: PhaseReleased})
		}
	}
}

// emit не блокирует слушатель: при переполненном канале событие теряется.
func (r *Registrar) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		r.log.Warnw("Очередь событий горячей клавиши переполнена, событие пропущено",
			"hotkey", ev.Binding.String(), "phase", ev.Phase.String())
	}
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// nativeBackend - регистрация через golang.design/x/hotkey.
// hotkey.Hotkey создаётся в Register, чтобы не плодить cgo-состояние заранее.
type nativeBackend struct {
	mods []hotkey.Modifier
	key  hotkey.Key
	hk   *hotkey.Hotkey
}

func newNativeBackend(b config.Binding) (backend, error) {
	mods, key, err := convert(b)
	if err != nil {
		return nil, err
	}
	return &nativeBackend{mods: mods, key: key}, nil
}

func (n *nativeBackend) Register() error {
	n.hk = hotkey.New(n.mods, n.key)
	if err := n.hk.Register(); err != nil {
		n.hk = nil
		return err
	}
	return nil
}

func (n *nativeBackend) Unregister() error {
	if n.hk == nil {
		return nil
	}
	return n.hk.Unregister()
}

func (n *nativeBackend) Keydown() <-chan hotkey.Event {
	return n.hk.Keydown()
}

func (n *nativeBackend) Keyup() <-chan hotkey.Event {
	return n.hk.Keyup()
}

// modifierOrder - порядок перебора битов маски при конвертации.
var modifierOrder = []config.Modifiers{
	config.ModMeta, config.ModShift, config.ModAlt, config.ModControl,
}

// convert переводит комбинацию в модификаторы и клавишу x/hotkey.
func convert(b config.Binding) ([]hotkey.Modifier, hotkey.Key, error) {
	if !b.Modifiers.Valid() {
		return nil, 0, fmt.Errorf("%w: маска %#x", ErrUnsupported, uint32(b.Modifiers))
	}
	mods := make([]hotkey.Modifier, 0, len(modifierOrder))
	for _, m := range modifierOrder {
		if !b.Modifiers.Has(m) {
			continue
		}
		mod, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("%w: модификатор %#x", ErrUnsupported, uint32(m))
		}
		mods = append(mods, mod)
	}

	key, ok := keyMap[b.Code]
	if !ok {
		return nil, 0, fmt.Errorf("%w: клавиша %q", ErrUnsupported, b.Code)
	}
	return mods, key, nil
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг config.Code -> hotkey.Key
var keyMap = map[config.Code]hotkey.Key{
	"Space":     hotkey.KeySpace,
	"Enter":     hotkey.KeyReturn,
	"Tab":       hotkey.KeyTab,
	"Escape":    hotkey.KeyEscape,
	"Backspace": hotkey.KeyDelete,
	"KeyA":      hotkey.KeyA,
	"KeyB":      hotkey.KeyB,
	"KeyC":      hotkey.KeyC,
	"KeyD":      hotkey.KeyD,
	"KeyE":      hotkey.KeyE,
	"KeyF":      hotkey.KeyF,
	"KeyG":      hotkey.KeyG,
	"KeyH":      hotkey.KeyH,
	"KeyI":      hotkey.KeyI,
	"KeyJ":      hotkey.KeyJ,
	"KeyK":      hotkey.KeyK,
	"KeyL":      hotkey.KeyL,
	"KeyM":      hotkey.KeyM,
	"KeyN":      hotkey.KeyN,
	"KeyO":      hotkey.KeyO,
	"KeyP":      hotkey.KeyP,
	"KeyQ":      hotkey.KeyQ,
	"KeyR":      hotkey.KeyR,
	"KeyS":      hotkey.KeyS,
	"KeyT":      hotkey.KeyT,
	"KeyU":      hotkey.KeyU,
	"KeyV":      hotkey.KeyV,
	"KeyW":      hotkey.KeyW,
	"KeyX":      hotkey.KeyX,
	"KeyY":      hotkey.KeyY,
	"KeyZ":      hotkey.KeyZ,
	"Digit0":    hotkey.Key0,
	"Digit1":    hotkey.Key1,
	"Digit2":    hotkey.Key2,
	"Digit3":    hotkey.Key3,
	"Digit4":    hotkey.Key4,
	"Digit5":    hotkey.Key5,
	"Digit6":    hotkey.Key6,
	"Digit7":    hotkey.Key7,
	"Digit8":    hotkey.Key8,
	"Digit9":    hotkey.Key9,
	"F1":        hotkey.KeyF1,
	"F2":        hotkey.KeyF2,
	"F3":        hotkey.KeyF3,
	"F4":        hotkey.KeyF4,
	"F5":        hotkey.KeyF5,
	"F6":        hotkey.KeyF6,
	"F7":        hotkey.KeyF7,
	"F8":        hotkey.KeyF8,
	"F9":        hotkey.KeyF9,
	"F10":       hotkey.KeyF10,
	"F11":       hotkey.KeyF11,
	"F12":       hotkey.KeyF12,
}
