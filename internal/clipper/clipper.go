// Package clipper держит текущую горячую клавишу и выполняет
// копирование UUID в буфер обмена по её нажатию.
package clipper

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"keyclip/internal/config"
	"keyclip/internal/hotkey"
	"keyclip/internal/i18n"
)

// Registrar регистрирует глобальные комбинации.
type Registrar interface {
	Register(b config.Binding) error
	Unregister(b config.Binding) error
}

// Store сохраняет настройки.
type Store interface {
	Set(key string, value any) error
}

// Clipboard записывает текст в буфер обмена.
type Clipboard interface {
	WriteText(s string) error
}

// Sound проигрывает звук копирования.
type Sound interface {
	Play() error
}

// Options - зависимости Clipper.
type Options struct {
	Registrar Registrar
	Store     Store
	Clipboard Clipboard
	Sound     Sound

	// NewID генерирует значение для буфера обмена. По умолчанию uuid.NewString.
	NewID func() string
	// OnLabel получает новую подпись пункта меню с горячей клавишей.
	OnLabel func(label string)

	Binding   config.Binding
	PlaySound bool

	Log *zap.SugaredLogger
}

// Clipper - состояние горячей клавиши и обработчик её событий.
type Clipper struct {
	registrar Registrar
	store     Store
	clipboard Clipboard
	sound     Sound
	newID     func() string
	onLabel   func(string)
	log       *zap.SugaredLogger

	mu         sync.Mutex
	binding    config.Binding
	registered bool // binding сейчас зарегистрирована в системе
	recording  bool
	playSound  bool
}

// New создаёт Clipper. Горячая клавиша не регистрируется до Start.
func New(opts Options) *Clipper {
	c := &Clipper{
		registrar: opts.Registrar,
		store:     opts.Store,
		clipboard: opts.Clipboard,
		sound:     opts.Sound,
		newID:     opts.NewID,
		onLabel:   opts.OnLabel,
		log:       opts.Log,
		binding:   opts.Binding,
		playSound: opts.PlaySound,
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.onLabel == nil {
		c.onLabel = func(string) {}
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	return c
}

// Label возвращает подпись пункта меню для комбинации.
func Label(b config.Binding) string {
	return i18n.Tf("tray_hotkey", b.String())
}

// Start регистрирует начальную комбинацию. Подпись меню выставляется
// и при ошибке регистрации.
func (c *Clipper) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onLabel(Label(c.binding))
	if err := c.registrar.Register(c.binding); err != nil {
		return fmt.Errorf("регистрация %s: %w", c.binding, err)
	}
	c.registered = true
	return nil
}

// Binding возвращает текущую комбинацию.
func (c *Clipper) Binding() config.Binding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binding
}

// Recording сообщает, идёт ли сейчас смена комбинации.
func (c *Clipper) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

// BeginChange приостанавливает копирование на время выбора новой комбинации.
// Возвращает false, если смена уже идёт.
func (c *Clipper) BeginChange() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recording {
		return false
	}
	c.recording = true
	c.log.Debugw("Начата смена горячей клавиши", "hotkey", c.binding.String())
	return true
}

// CancelChange завершает смену без изменения комбинации.
func (c *Clipper) CancelChange() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recording = false
	c.log.Debugw("Смена горячей клавиши отменена", "hotkey", c.binding.String())
}

// Commit заменяет текущую комбинацию на b.
//
// Порядок: снять старую, зарегистрировать новую, обновить состояние,
// сохранить, обновить подпись. При ошибке регистрации старая комбинация
// регистрируется обратно. Ошибка сохранения только логируется.
// Если старая комбинация не была зарегистрирована (например, Start
// завершился ошибкой), снимать нечего.
// После возврата копирование снова активно.
func (c *Clipper) Commit(b config.Binding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commitLocked(b)
}

// CommitIfIdle применяет b, только если смена комбинации из меню не идёт.
// Проверка и замена выполняются под одной блокировкой. Возвращает false,
// если комбинация не применялась.
func (c *Clipper) CommitIfIdle(b config.Binding) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recording {
		return false, nil
	}
	return true, c.commitLocked(b)
}

func (c *Clipper) commitLocked(b config.Binding) error {
	c.recording = true
	defer func() { c.recording = false }()

	old := c.binding
	if b == old && c.registered {
		return nil
	}

	wasRegistered := c.registered
	if wasRegistered && b != old {
		err := c.registrar.Unregister(old)
		switch {
		case errors.Is(err, hotkey.ErrNotRegistered):
			c.log.Debugw("Горячая клавиша уже снята", "hotkey", old.String())
			wasRegistered = false
		case err != nil:
			c.log.Warnw("Не удалось снять горячую клавишу", "hotkey", old.String(), "error", err)
			return fmt.Errorf("снятие %s: %w", old, err)
		}
		c.registered = false
	}

	if err := c.registrar.Register(b); err != nil {
		c.log.Warnw("Не удалось зарегистрировать горячую клавишу", "hotkey", b.String(), "error", err)
		if wasRegistered && b != old {
			if rerr := c.registrar.Register(old); rerr != nil {
				c.log.Errorw("Не удалось вернуть прежнюю горячую клавишу",
					"hotkey", old.String(), "error", rerr)
			} else {
				c.registered = true
			}
		}
		return fmt.Errorf("регистрация %s: %w", b, err)
	}

	c.binding = b
	c.registered = true
	c.log.Infow("Горячая клавиша изменена", "from", old.String(), "to", b.String())

	if err := c.persist(b); err != nil {
		c.log.Warnw("Не удалось сохранить горячую клавишу", "hotkey", b.String(), "error", err)
	}

	c.onLabel(Label(b))
	return nil
}

func (c *Clipper) persist(b config.Binding) error {
	if err := c.store.Set(config.KeyHotkeyModifiers, int64(b.Modifiers)); err != nil {
		return err
	}
	return c.store.Set(config.KeyHotkeyCode, string(b.Code))
}

// SetHotkey применяет комбинацию из внешнего ввода. Неизвестная клавиша
// заменяется на KeyK.
func (c *Clipper) SetHotkey(in config.ModifiersInput, code string) error {
	parsed, err := config.ParseCode(code)
	if err != nil {
		c.log.Warnw("Неизвестная клавиша, используется значение по умолчанию",
			"code", code, "default", string(config.DefaultCode))
		parsed = config.DefaultCode
	}
	return c.Commit(config.Binding{Modifiers: in.Mask(), Code: parsed})
}

// PlaySound сообщает, включён ли звук копирования.
func (c *Clipper) PlaySound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playSound
}

// SetPlaySound включает или выключает звук и сохраняет значение.
// Флаг меняется даже при ошибке сохранения.
func (c *Clipper) SetPlaySound(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPlaySound(enabled)
}

// TogglePlaySound инвертирует флаг звука и возвращает новое значение.
func (c *Clipper) TogglePlaySound() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	enabled := !c.playSound
	return enabled, c.setPlaySound(enabled)
}

func (c *Clipper) setPlaySound(enabled bool) error {
	c.playSound = enabled
	if err := c.store.Set(config.KeyPlaySound, enabled); err != nil {
		c.log.Warnw("Не удалось сохранить настройку звука", "error", err)
		return fmt.Errorf("сохранение %s: %w", config.KeyPlaySound, err)
	}
	return nil
}

// HandleEvent обрабатывает событие горячей клавиши. Копирование
// выполняется только на нажатие текущей комбинации и только когда
// смена комбинации не идёт. Возвращает true, если значение скопировано.
func (c *Clipper) HandleEvent(ev hotkey.Event) bool {
	c.mu.Lock()
	if c.recording || ev.Binding != c.binding || ev.Phase != hotkey.PhasePressed {
		c.mu.Unlock()
		return false
	}
	playSound := c.playSound
	c.mu.Unlock()

	return c.clip(playSound)
}

func (c *Clipper) clip(playSound bool) bool {
	id := c.newID()
	if err := c.clipboard.WriteText(id); err != nil {
		c.log.Errorw("Ошибка записи в буфер обмена", "error", err)
		return false
	}
	c.log.Debugw("Скопировано в буфер обмена", "value", id)

	if playSound && c.sound != nil {
		go func() {
			if err := c.sound.Play(); err != nil {
				c.log.Debugw("Ошибка воспроизведения звука", "error", err)
			}
		}()
	}
	return true
}
