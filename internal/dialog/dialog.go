// Package dialog предоставляет GUI диалоги выбора горячей клавиши.
package dialog

import (
	"errors"

	"github.com/ncruces/zenity"

	"keyclip/internal/config"
	"keyclip/internal/i18n"
)

// ErrNoModifier - не выбран ни один модификатор.
var ErrNoModifier = errors.New("необходимо выбрать хотя бы один модификатор")

// modifierOption - пункт списка модификаторов.
type modifierOption struct {
	label string
	mod   config.Modifiers
}

var modifierOptions = []modifierOption{
	{"Cmd / Win / Super", config.ModMeta},
	{"Shift", config.ModShift},
	{"Opt / Alt", config.ModAlt},
	{"Ctrl", config.ModControl},
}

// SelectHotkey открывает диалоги выбора модификаторов и клавиши.
// При отмене возвращается zenity.ErrCanceled.
func SelectHotkey(current config.Binding) (config.ModifiersInput, string, error) {
	// Шаг 1: Выбор модификаторов
	selectedMods, err := zenity.ListMultiple(
		i18n.T("dialog_mods_prompt"),
		modifierLabels(),
		zenity.Title(i18n.T("dialog_mods_title")),
		zenity.DefaultItems(currentModifierLabels(current.Modifiers)...),
	)
	if err != nil {
		return config.ModifiersInput{}, "", err
	}

	in := parseModifiers(selectedMods)
	if in.Mask() == 0 {
		return config.ModifiersInput{}, "", ErrNoModifier
	}

	// Шаг 2: Выбор клавиши
	labels, codes := keyOptions()
	selectedKey, err := zenity.List(
		i18n.T("dialog_key_prompt"),
		labels,
		zenity.Title(i18n.T("dialog_key_title")),
		zenity.DefaultItems(config.KeyLabel(current.Code)),
	)
	if err != nil {
		return config.ModifiersInput{}, "", err
	}

	// Неизвестная подпись уходит как есть, вызывающий подставит KeyK
	code := selectedKey
	for i, l := range labels {
		if l == selectedKey {
			code = string(codes[i])
			break
		}
	}
	return in, code, nil
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}

func modifierLabels() []string {
	out := make([]string, len(modifierOptions))
	for i, o := range modifierOptions {
		out[i] = o.label
	}
	return out
}

func currentModifierLabels(mods config.Modifiers) []string {
	out := make([]string, 0, len(modifierOptions))
	for _, o := range modifierOptions {
		if mods.Has(o.mod) {
			out = append(out, o.label)
		}
	}
	return out
}

func parseModifiers(selected []string) config.ModifiersInput {
	var in config.ModifiersInput
	for _, s := range selected {
		for _, o := range modifierOptions {
			if s != o.label {
				continue
			}
			switch o.mod {
			case config.ModMeta:
				in.Meta = true
			case config.ModShift:
				in.Shift = true
			case config.ModAlt:
				in.Alt = true
			case config.ModControl:
				in.Control = true
			}
		}
	}
	return in
}

// keyOptions возвращает подписи клавиш и соответствующие коды.
func keyOptions() ([]string, []config.Code) {
	codes := config.AvailableCodes()
	labels := make([]string, len(codes))
	for i, c := range codes {
		labels[i] = config.KeyLabel(c)
	}
	return labels, codes
}
