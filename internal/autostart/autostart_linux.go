//go:build linux

package autostart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const desktopFilename = appID + ".desktop"

var desktopTemplate = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=UUID to clipboard on a global hotkey
Exec={{.Exec}}
Terminal=false
X-GNOME-Autostart-enabled=true
`))

// Manager управляет XDG autostart файлом.
type Manager struct {
	dir      string
	execPath string
}

// New возвращает Manager для $XDG_CONFIG_HOME/autostart.
func New(execPath string) (*Manager, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("autostart: каталог конфигурации: %w", err)
	}
	return &Manager{
		dir:      filepath.Join(cfg, "autostart"),
		execPath: execPath,
	}, nil
}

// Enable записывает .desktop файл.
func (m *Manager) Enable() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("autostart: каталог autostart: %w", err)
	}

	err := writeFile(m.path(), func(w io.Writer) error {
		data := struct {
			Name string
			Exec string
		}{
			Name: appID,
			Exec: quoteExec(m.execPath),
		}
		return desktopTemplate.Execute(w, data)
	})
	if err != nil {
		return fmt.Errorf("autostart: запись .desktop: %w", err)
	}
	return nil
}

// Disable удаляет .desktop файл. Отсутствие файла не ошибка.
func (m *Manager) Disable() error {
	err := os.Remove(m.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: удаление .desktop: %w", err)
	}
	return nil
}

// IsEnabled сообщает, существует ли .desktop файл.
func (m *Manager) IsEnabled() bool {
	_, err := os.Stat(m.path())
	return err == nil
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, desktopFilename)
}

// quoteExec экранирует путь по правилам ключа Exec.
func quoteExec(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\$`") {
		return path
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(path) + `"`
}
