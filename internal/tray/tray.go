// Package tray предоставляет системный трей с меню.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"keyclip/embedded"
	"keyclip/internal/i18n"
)

// Options - параметры трея.
type Options struct {
	Version   string
	Handlers  Handlers
	Log       *zap.SugaredLogger
	Autostart bool
	PlaySound bool
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	version  string
	handlers Handlers
	log      *zap.SugaredLogger

	mu          sync.Mutex
	hotkeyLabel string
	autostartOn bool
	playSoundOn bool

	info         *systray.MenuItem
	hotkey       *systray.MenuItem
	changeBtn    *systray.MenuItem
	autostartBtn *systray.MenuItem
	playSoundBtn *systray.MenuItem
	quitBtn      *systray.MenuItem

	// events - идентификаторы нажатых пунктов меню
	events chan string
}

// New создаёт новый Tray.
func New(opts Options) *Tray {
	return &Tray{
		version:     opts.Version,
		handlers:    opts.Handlers,
		log:         opts.Log,
		autostartOn: opts.Autostart,
		playSoundOn: opts.PlaySound,
		events:      make(chan string, 4),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.Icon)
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.mu.Lock()
	defer t.mu.Unlock()

	// Версия и текущая комбинация
	t.info = systray.AddMenuItem(i18n.Tf("tray_version", t.version), "")
	t.info.Disable()
	t.hotkey = systray.AddMenuItem(t.hotkeyLabel, "")
	t.hotkey.Disable()

	systray.AddSeparator()

	t.changeBtn = systray.AddMenuItem(i18n.T("tray_change_hotkey"), i18n.T("tray_change_hint"))
	t.autostartBtn = systray.AddMenuItemCheckbox(i18n.T("tray_autostart"), "", t.autostartOn)
	t.playSoundBtn = systray.AddMenuItemCheckbox(i18n.T("tray_play_sound"), "", t.playSoundOn)

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	go t.forward(t.changeBtn, ActionChangeHotkey)
	go t.forward(t.autostartBtn, ActionToggleAutostart)
	go t.forward(t.playSoundBtn, ActionTogglePlaySound)
	go t.forward(t.quitBtn, ActionQuit)
	go t.handleMenuEvents()
}

// forward пересылает нажатия пункта в общий канал.
func (t *Tray) forward(item *systray.MenuItem, a Action) {
	for range item.ClickedCh {
		t.events <- a.String()
	}
}

func (t *Tray) handleMenuEvents() {
	for id := range t.events {
		a, err := ParseAction(id)
		if err != nil {
			t.log.Warnw("Пропущено событие меню", "error", err)
			continue
		}

		checked, err := t.handlers.Dispatch(a)
		if err != nil {
			t.log.Warnw("Ошибка обработки меню", "action", a.String(), "error", err)
			continue
		}

		switch a {
		case ActionToggleAutostart:
			t.SetAutostartChecked(checked)
		case ActionTogglePlaySound:
			t.SetPlaySoundChecked(checked)
		case ActionQuit:
			t.Quit()
			return
		}
	}
}

// SetHotkeyLabel обновляет строку с текущей комбинацией.
func (t *Tray) SetHotkeyLabel(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hotkeyLabel = label
	if t.hotkey != nil {
		t.hotkey.SetTitle(label)
	}
}

// SetAutostartChecked обновляет флажок автозапуска.
func (t *Tray) SetAutostartChecked(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autostartOn = on
	setChecked(t.autostartBtn, on)
}

// SetPlaySoundChecked обновляет флажок звука.
func (t *Tray) SetPlaySoundChecked(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playSoundOn = on
	setChecked(t.playSoundBtn, on)
}

func setChecked(item *systray.MenuItem, on bool) {
	if item == nil {
		return
	}
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
