package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch следит за файлом хранилища и вызывает onChange после того, как
// внешнее изменение перечитано. Собственные записи Store не вызывают
// onChange: содержимое файла совпадает с уже известным.
func (s *Store) Watch(ctx context.Context, log *zap.SugaredLogger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("не удалось создать наблюдатель: %w", err)
	}
	// Следим за каталогом: атомарная запись заменяет файл через rename.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("не удалось начать наблюдение за %s: %w", s.path, err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				changed, err := s.reload()
				if err != nil {
					log.Warnw("Не удалось перечитать настройки", "path", s.path, "error", err)
					continue
				}
				if changed && onChange != nil {
					log.Debugw("Настройки изменены извне", "path", s.path)
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnw("Ошибка наблюдателя настроек", "error", err)
			}
		}
	}()
	return nil
}
