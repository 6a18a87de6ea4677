//go:build darwin

package autostart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
)

const (
	plistLabel    = "dev." + appID
	plistFilename = plistLabel + ".plist"
)

// plistTemplate - launchd property list.
// RunAtLoad=true - запуск при входе; KeepAlive=false - без перезапуска.
var plistTemplate = template.Must(template.New("plist").Funcs(template.FuncMap{"xml": xmlEscape}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN"
  "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .ExecPath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`))

// Manager управляет LaunchAgent plist.
type Manager struct {
	dir      string
	execPath string
}

// New возвращает Manager для ~/Library/LaunchAgents.
func New(execPath string) (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("autostart: домашний каталог: %w", err)
	}
	return &Manager{
		dir:      filepath.Join(home, "Library", "LaunchAgents"),
		execPath: execPath,
	}, nil
}

// Enable записывает plist.
func (m *Manager) Enable() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("autostart: каталог LaunchAgents: %w", err)
	}

	if err := writeFile(m.path(), m.render); err != nil {
		return fmt.Errorf("autostart: запись plist: %w", err)
	}
	return nil
}

func (m *Manager) render(w io.Writer) error {
	data := struct {
		Label    string
		ExecPath string
	}{
		Label:    plistLabel,
		ExecPath: m.execPath,
	}
	return plistTemplate.Execute(w, data)
}

// Disable удаляет plist. Отсутствие файла не ошибка.
func (m *Manager) Disable() error {
	err := os.Remove(m.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: удаление plist: %w", err)
	}
	return nil
}

// IsEnabled сообщает, существует ли plist.
func (m *Manager) IsEnabled() bool {
	_, err := os.Stat(m.path())
	return err == nil
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, plistFilename)
}
