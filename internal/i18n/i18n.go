// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "keyclip",
		"app_tooltip": "keyclip - UUID to clipboard",

		// Tray menu
		"tray_version":       "keyclip - Version %s",
		"tray_hotkey":        "Hotkey: %s",
		"tray_change_hotkey": "Change hotkey...",
		"tray_change_hint":   "Pick a new global hotkey",
		"tray_autostart":     "Start on Login",
		"tray_play_sound":    "Play sound on clip",
		"tray_quit":          "Quit",
		"tray_quit_hint":     "Close application",

		// Hotkey dialog
		"dialog_mods_title":  "Change hotkey - Modifiers",
		"dialog_mods_prompt": "Select modifiers:",
		"dialog_key_title":   "Change hotkey - Key",
		"dialog_key_prompt":  "Select key:",

		// Notifications
		"notify_error": "Error",
		"notify_ready": "keyclip is ready",

		// Errors
		"error_no_modifier":     "Select at least one modifier",
		"error_hotkey_register": "Could not register hotkey",
		"error_hotkey_change":   "Could not change hotkey",
		"error_clipboard":       "Clipboard copy error",
		"error_autostart":       "Could not change Start on Login",
	},

	RU: {
		// App
		"app_name":    "keyclip",
		"app_tooltip": "keyclip - UUID в буфер обмена",

		// Tray menu
		"tray_version":       "keyclip - Версия %s",
		"tray_hotkey":        "Горячая клавиша: %s",
		"tray_change_hotkey": "Изменить горячую клавишу...",
		"tray_change_hint":   "Выбрать новую глобальную комбинацию",
		"tray_autostart":     "Запускать при входе",
		"tray_play_sound":    "Звук при копировании",
		"tray_quit":          "Выход",
		"tray_quit_hint":     "Закрыть приложение",

		// Hotkey dialog
		"dialog_mods_title":  "Горячая клавиша - Модификаторы",
		"dialog_mods_prompt": "Выберите модификаторы:",
		"dialog_key_title":   "Горячая клавиша - Клавиша",
		"dialog_key_prompt":  "Выберите клавишу:",

		// Notifications
		"notify_error": "Ошибка",
		"notify_ready": "keyclip готов к работе",

		// Errors
		"error_no_modifier":     "Необходимо выбрать хотя бы один модификатор",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_hotkey_change":   "Не удалось изменить горячую клавишу",
		"error_clipboard":       "Ошибка копирования в буфер обмена",
		"error_autostart":       "Не удалось изменить автозапуск",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to English, then to key itself
	if s, ok := translations[EN][key]; ok {
		return s
	}
	return key
}

// Tf formats the translation for the given key.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// ParseLanguage resolves a language tag like "ru" or "en_US.UTF-8".
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "_-."); i >= 0 {
		s = s[:i]
	}
	for _, lang := range AvailableLanguages() {
		if Language(s) == lang {
			return lang, true
		}
	}
	return EN, false
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
