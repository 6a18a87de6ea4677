package config

import (
	"fmt"

	"go.uber.org/zap"
)

// Ключи хранилища.
const (
	KeyAutostart       = "autostart_enabled"
	KeyHotkeyModifiers = "hotkey_modifiers"
	KeyHotkeyCode      = "hotkey_code"
	KeyPlaySound       = "play_sound"
)

// Значения по умолчанию.
const (
	DefaultAutostart = false
	DefaultPlaySound = true
)

// Settings - снимок настроек на момент запуска.
type Settings struct {
	AutostartEnabled bool
	PlaySound        bool
	Binding          Binding
}

// LoadSettings читает все четыре ключа и дописывает отсутствующие
// значениями по умолчанию. Ошибка записи при дописывании фатальна:
// без неё приложение не может зафиксировать исходную конфигурацию.
func LoadSettings(s *Store, log *zap.SugaredLogger) (Settings, error) {
	autostart, err := loadBool(s, KeyAutostart, DefaultAutostart, log)
	if err != nil {
		return Settings{}, err
	}
	playSound, err := loadBool(s, KeyPlaySound, DefaultPlaySound, log)
	if err != nil {
		return Settings{}, err
	}

	// LoadBinding работает и без этих ключей, но на первом запуске
	// они должны появиться в файле.
	if err := backfill(s, KeyHotkeyModifiers, int64(DefaultModifiers)); err != nil {
		return Settings{}, err
	}
	if err := backfill(s, KeyHotkeyCode, string(DefaultCode)); err != nil {
		return Settings{}, err
	}

	return Settings{
		AutostartEnabled: autostart,
		PlaySound:        playSound,
		Binding:          LoadBinding(s, log),
	}, nil
}

func loadBool(s *Store, key string, def bool, log *zap.SugaredLogger) (bool, error) {
	if !s.Has(key) {
		if err := s.Set(key, def); err != nil {
			return def, fmt.Errorf("не удалось записать значение по умолчанию %s: %w", key, err)
		}
		return def, nil
	}
	v, ok := s.Bool(key)
	if !ok {
		log.Warnw("Некорректное значение в настройках, используется значение по умолчанию",
			"key", key, "default", def)
		return def, nil
	}
	return v, nil
}

func backfill(s *Store, key string, def any) error {
	if s.Has(key) {
		return nil
	}
	if err := s.Set(key, def); err != nil {
		return fmt.Errorf("не удалось записать значение по умолчанию %s: %w", key, err)
	}
	return nil
}

// LoadBinding читает сохранённую горячую клавишу. Если какого-то ключа
// нет или значение не разбирается, возвращается встроенная комбинация
// целиком. Ошибкой это не считается.
func LoadBinding(s *Store, log *zap.SugaredLogger) Binding {
	def := DefaultBinding()

	if !s.Has(KeyHotkeyModifiers) || !s.Has(KeyHotkeyCode) {
		log.Infow("Сохранённая горячая клавиша не найдена, используется комбинация по умолчанию",
			"hotkey", def.String())
		return def
	}

	bits, ok := s.Int(KeyHotkeyModifiers)
	if !ok {
		log.Warnw("Модификаторы горячей клавиши не являются числом, используется комбинация по умолчанию",
			"hotkey", def.String())
		return def
	}
	mods, err := ModifiersFromBits(bits)
	if err != nil {
		log.Warnw("Не удалось разобрать модификаторы, используется комбинация по умолчанию",
			"error", err, "hotkey", def.String())
		return def
	}

	raw, ok := s.String(KeyHotkeyCode)
	if !ok {
		log.Warnw("Код клавиши не является строкой, используется комбинация по умолчанию",
			"hotkey", def.String())
		return def
	}
	code, err := ParseCode(raw)
	if err != nil {
		log.Warnw("Не удалось разобрать код клавиши, используется комбинация по умолчанию",
			"error", err, "hotkey", def.String())
		return def
	}

	return Binding{Modifiers: mods, Code: code}
}

// ResetSettings записывает значения по умолчанию во все четыре ключа.
func ResetSettings(s *Store) error {
	def := DefaultBinding()
	values := []struct {
		key   string
		value any
	}{
		{KeyAutostart, DefaultAutostart},
		{KeyHotkeyModifiers, int64(def.Modifiers)},
		{KeyHotkeyCode, string(def.Code)},
		{KeyPlaySound, DefaultPlaySound},
	}
	for _, v := range values {
		if err := s.Set(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}
