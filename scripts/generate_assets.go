//go:build ignore

// Скрипт для генерации иконки трея и звука копирования.
// Запуск: go run scripts/generate_assets.go
package main

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
)

const (
	sampleRate = 44100
	clipLength = 0.08 // секунды
	clipFreq   = 1320.0
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icon := filepath.Join(dir, "icon.png")
	if err := generateIcon(icon, color.RGBA{70, 70, 70, 255}); err != nil {
		log.Fatalf("Ошибка генерации %s: %v", icon, err)
	}
	log.Printf("Создан: %s", icon)

	sound := filepath.Join(dir, "clip.wav")
	if err := generateClip(sound); err != nil {
		log.Fatalf("Ошибка генерации %s: %v", sound, err)
	}
	log.Printf("Создан: %s", sound)
}

// generateIcon рисует упрощённый планшет буфера обмена.
func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Корпус с рамкой толщиной 4px
	for y := 10; y < 60; y++ {
		for x := 12; x < 52; x++ {
			if x < 16 || x >= 48 || y < 14 || y >= 56 {
				img.Set(x, y, c)
			}
		}
	}
	// Зажим
	for y := 4; y < 16; y++ {
		for x := 22; x < 42; x++ {
			img.Set(x, y, c)
		}
	}
	// Строки текста
	for _, y := range []int{24, 32, 40} {
		for dy := 0; dy < 3; dy++ {
			for x := 22; x < 42; x++ {
				img.Set(x, y+dy, c)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

// generateClip пишет короткий затухающий щелчок: 16-bit PCM, моно.
func generateClip(path string) error {
	n := int(sampleRate * clipLength)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / sampleRate
		env := math.Exp(-t * 60)
		samples[i] = int16(math.Sin(2*math.Pi*clipFreq*t) * env * 0.6 * math.MaxInt16)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dataSize := uint32(n * 2)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		36 + dataSize,
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(1), // моно
		uint32(sampleRate),
		uint32(sampleRate * 2),
		uint16(2),
		uint16(16),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, v := range header {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return binary.Write(f, binary.LittleEndian, samples)
}
