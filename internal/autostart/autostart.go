// Package autostart управляет запуском приложения при входе в систему.
//
// Реализации:
//   - macOS: LaunchAgent plist в ~/Library/LaunchAgents
//   - Windows: значение в HKCU\Software\Microsoft\Windows\CurrentVersion\Run
//   - Linux: XDG autostart .desktop файл
package autostart

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// appID - идентификатор записи автозапуска.
const appID = "keyclip"

// ErrUnsupported - автозапуск не реализован для этой ОС.
var ErrUnsupported = errors.New("автозапуск не поддерживается на этой платформе")

// Executable возвращает абсолютный путь к текущему исполняемому файлу.
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("autostart: путь к исполняемому файлу: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// xmlEscape экранирует строку для вставки в XML (plist).
func xmlEscape(s string) string {
	var b strings.Builder
	// strings.Builder не возвращает ошибок записи
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// writeFile создаёт файл и записывает его содержимое через write.
// Ошибка закрытия возвращается, если запись прошла успешно.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
