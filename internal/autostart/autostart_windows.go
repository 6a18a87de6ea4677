//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// runKeyPath - ключ автозапуска текущего пользователя.
const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// Manager управляет значением в ключе Run.
type Manager struct {
	execPath string
}

// New возвращает Manager для HKCU Run.
func New(execPath string) (*Manager, error) {
	return &Manager{execPath: execPath}, nil
}

// Enable записывает значение автозапуска.
func (m *Manager) Enable() error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("autostart: открытие ключа Run: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(appID, `"`+m.execPath+`"`); err != nil {
		return fmt.Errorf("autostart: запись значения: %w", err)
	}
	return nil
}

// Disable удаляет значение автозапуска. Отсутствие значения не ошибка.
func (m *Manager) Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("autostart: открытие ключа Run: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(appID); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("autostart: удаление значения: %w", err)
	}
	return nil
}

// IsEnabled сообщает, есть ли значение автозапуска.
func (m *Manager) IsEnabled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(appID)
	return err == nil
}
