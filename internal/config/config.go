// Package config предоставляет настройки приложения: модель горячей
// клавиши, хранилище ключ/значение с сохранением в JSON-файл и параметры
// окружения.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// StoreFile - имя файла хранилища.
const StoreFile = "store.json"

// Store - JSON-документ ключ/значение, один файл на установку.
// Каждая запись перезаписывает один ключ и сохраняет документ целиком.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
	raw  []byte // содержимое файла на момент последнего чтения или записи
}

// DefaultStorePath возвращает путь к store.json в пользовательском
// каталоге настроек.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить каталог настроек: %w", err)
	}
	return filepath.Join(dir, "keyclip", StoreFile), nil
}

// Open открывает хранилище. Отсутствующий файл - пустой документ,
// нечитаемый или повреждённый - ошибка.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог настроек: %w", err)
	}

	s := &Store{path: path, data: make(map[string]json.RawMessage)}
	if _, err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string {
	return s.path
}

// Reload перечитывает документ с диска.
func (s *Store) Reload() error {
	_, err := s.reload()
	return err
}

// reload перечитывает файл и сообщает, изменилось ли содержимое.
// При ошибке разбора текущий документ сохраняется.
func (s *Store) reload() (bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		data = nil
	} else if err != nil {
		return false, fmt.Errorf("чтение %s: %w", s.path, err)
	}

	s.mu.RLock()
	same := s.raw != nil && bytes.Equal(s.raw, data)
	s.mu.RUnlock()
	if same {
		return false, nil
	}

	doc := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return false, fmt.Errorf("разбор %s: %w", s.path, err)
		}
		if doc == nil {
			doc = make(map[string]json.RawMessage)
		}
	}

	s.mu.Lock()
	s.data = doc
	s.raw = data
	if s.raw == nil {
		s.raw = []byte{}
	}
	s.mu.Unlock()
	return true, nil
}

// Has возвращает true если ключ присутствует в документе.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Keys возвращает отсортированный список ключей.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bool возвращает булево значение. ok=false если ключа нет
// или значение другого типа.
func (s *Store) Bool(key string) (bool, bool) {
	var v bool
	ok := s.decode(key, &v)
	return v, ok
}

// Int возвращает целое значение.
func (s *Store) Int(key string) (int64, bool) {
	var v int64
	ok := s.decode(key, &v)
	return v, ok
}

// String возвращает строковое значение.
func (s *Store) String(key string) (string, bool) {
	var v string
	ok := s.decode(key, &v)
	return v, ok
}

func (s *Store) decode(key string, dst any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Set записывает значение ключа и сохраняет документ.
// При ошибке сохранения документ в памяти не меняется.
func (s *Store) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = encoded
	return s.commit(next)
}

// commit сохраняет документ атомарно (временный файл и rename).
// Вызывается под s.mu.
func (s *Store) commit(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("запись %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("запись %s: %w", s.path, err)
	}

	s.data = doc
	s.raw = data
	return nil
}
