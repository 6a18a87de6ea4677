//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"keyclip/internal/config"
)

// modifierMap маппинг config.Modifiers -> hotkey.Modifier для macOS
var modifierMap = map[config.Modifiers]hotkey.Modifier{
	config.ModControl: hotkey.ModCtrl,
	config.ModShift:   hotkey.ModShift,
	config.ModAlt:     hotkey.ModOption,
	config.ModMeta:    hotkey.ModCmd,
}
