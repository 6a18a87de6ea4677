package tray

import (
	"errors"
	"fmt"
)

// ErrUnknownAction - идентификатор пункта меню не распознан.
var ErrUnknownAction = errors.New("неизвестное действие меню")

// Action - действие пункта меню.
type Action int

const (
	ActionChangeHotkey Action = iota
	ActionToggleAutostart
	ActionTogglePlaySound
	ActionQuit
)

var actionIDs = [...]string{
	ActionChangeHotkey:    "change_hotkey",
	ActionToggleAutostart: "toggle_autostart",
	ActionTogglePlaySound: "toggle_play_sound",
	ActionQuit:            "quit",
}

// String возвращает идентификатор действия.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionIDs) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionIDs[a]
}

// ParseAction разбирает идентификатор пункта меню.
func ParseAction(id string) (Action, error) {
	for a, s := range actionIDs {
		if s == id {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, id)
}

// Handlers содержит обработчики пунктов меню.
// Переключатели возвращают новое состояние флажка.
type Handlers struct {
	OnChangeHotkey    func()
	OnToggleAutostart func() bool
	OnTogglePlaySound func() bool
	OnQuit            func()
}

// Dispatch вызывает обработчик действия. Для переключателей возвращает
// новое состояние флажка, для остальных false.
func (h Handlers) Dispatch(a Action) (bool, error) {
	switch a {
	case ActionChangeHotkey:
		if h.OnChangeHotkey != nil {
			h.OnChangeHotkey()
		}
		return false, nil
	case ActionToggleAutostart:
		if h.OnToggleAutostart != nil {
			return h.OnToggleAutostart(), nil
		}
		return false, nil
	case ActionTogglePlaySound:
		if h.OnTogglePlaySound != nil {
			return h.OnTogglePlaySound(), nil
		}
		return false, nil
	case ActionQuit:
		if h.OnQuit != nil {
			h.OnQuit()
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrUnknownAction, a)
	}
}
