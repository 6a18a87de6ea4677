//go:build !darwin && !linux && !windows

package autostart

// Manager - заглушка для неподдерживаемых ОС.
type Manager struct{}

// New возвращает заглушку.
func New(string) (*Manager, error) {
	return &Manager{}, nil
}

func (m *Manager) Enable() error    { return ErrUnsupported }
func (m *Manager) Disable() error   { return nil }
func (m *Manager) IsEnabled() bool { return false }
