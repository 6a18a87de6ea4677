//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"keyclip/internal/config"
)

// modifierMap маппинг config.Modifiers -> hotkey.Modifier для Linux
var modifierMap = map[config.Modifiers]hotkey.Modifier{
	config.ModControl: hotkey.ModCtrl,
	config.ModShift:   hotkey.ModShift,
	config.ModAlt:     hotkey.Mod1, // Alt = Mod1 на X11
	config.ModMeta:    hotkey.Mod4, // Super/Win = Mod4 на X11
}
