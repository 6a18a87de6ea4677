// Package clipboard записывает текст в системный буфер обмена.
package clipboard

import (
	"fmt"
	"sync"

	atotto "github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// Writer пишет текст в буфер обмена. Основной путь - golang.design/x/clipboard;
// если его инициализация не удалась (нет X11, нет cgo), используется
// atotto/clipboard через xclip/xsel/wl-copy/pbcopy.
type Writer struct {
	log *zap.SugaredLogger

	initOnce sync.Once
	native   bool

	// подменяются в тестах
	initNative  func() error
	writeNative func(b []byte)
	writeExec   func(s string) error
}

// New создаёт Writer. Инициализация откладывается до первой записи.
func New(log *zap.SugaredLogger) *Writer {
	return &Writer{
		log:        log,
		initNative: clipboard.Init,
		writeNative: func(b []byte) {
			clipboard.Write(clipboard.FmtText, b)
		},
		writeExec: atotto.WriteAll,
	}
}

// WriteText записывает строку в буфер обмена.
func (w *Writer) WriteText(s string) error {
	w.initOnce.Do(func() {
		if err := w.initNative(); err != nil {
			w.log.Warnw("Системный буфер обмена недоступен, используется внешняя утилита", "error", err)
			return
		}
		w.native = true
	})

	if w.native {
		w.writeNative([]byte(s))
		return nil
	}
	if atotto.Unsupported {
		return fmt.Errorf("буфер обмена не поддерживается: нет xclip, xsel или wl-copy")
	}
	if err := w.writeExec(s); err != nil {
		return fmt.Errorf("запись в буфер обмена: %w", err)
	}
	return nil
}
