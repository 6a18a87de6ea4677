//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"keyclip/internal/config"
)

// modifierMap маппинг config.Modifiers -> hotkey.Modifier для Windows
var modifierMap = map[config.Modifiers]hotkey.Modifier{
	config.ModControl: hotkey.ModCtrl,
	config.ModShift:   hotkey.ModShift,
	config.ModAlt:     hotkey.ModAlt,
	config.ModMeta:    hotkey.ModWin,
}
