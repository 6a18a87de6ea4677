// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// Icon - иконка трея.
//
//go:embed icon.png
var Icon []byte

// ClipSound - звук копирования (WAV, 16-bit PCM).
//
//go:embed clip.wav
var ClipSound []byte
