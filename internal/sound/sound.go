// Package sound проигрывает короткий звук при копировании.
package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"keyclip/embedded"
)

// sampleRate - частота, с которой инициализируется динамик.
// Все источники ресемплируются к ней.
const sampleRate = beep.SampleRate(44100)

var errUnsupportedFormat = errors.New("неподдерживаемый формат звука, используйте wav или mp3")

// Player проигрывает звук копирования. Play блокирует до конца
// воспроизведения; одновременные вызовы смешиваются динамиком.
type Player struct {
	log      *zap.SugaredLogger
	path     string
	volumeDB float64

	initOnce sync.Once
	buf      *beep.Buffer
	initErr  error

	// подменяются в тестах
	initSpeaker func() error
	fallback    func() error
}

// New создаёт плеер. Пустой path - встроенный звук.
// volumeDB - громкость в dB (отрицательные тише).
func New(log *zap.SugaredLogger, path string, volumeDB float64) *Player {
	return &Player{
		log:      log,
		path:     path,
		volumeDB: volumeDB,
		initSpeaker: func() error {
			return speaker.Init(sampleRate, sampleRate.N(time.Second/10))
		},
		fallback: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Play проигрывает звук. Если звук не удалось загрузить или динамик
// недоступен, используется системный сигнал.
func (p *Player) Play() error {
	p.initOnce.Do(p.init)
	if p.initErr != nil {
		if err := p.fallback(); err != nil {
			return fmt.Errorf("%v; системный сигнал: %w", p.initErr, err)
		}
		return nil
	}

	vol := &effects.Volume{
		Streamer: p.buf.Streamer(0, p.buf.Len()),
		Base:     2,
		Volume:   p.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}

func (p *Player) init() {
	r, format, err := p.open()
	if err != nil {
		p.initErr = err
		p.log.Warnw("Не удалось открыть звук", "path", p.path, "error", err)
		return
	}
	buf, err := decode(r, format)
	if err != nil {
		p.initErr = err
		p.log.Warnw("Не удалось декодировать звук", "path", p.path, "error", err)
		return
	}
	if err := p.initSpeaker(); err != nil {
		p.initErr = fmt.Errorf("инициализация динамика: %w", err)
		p.log.Warnw("Аудиовыход недоступен, будет использован системный сигнал", "error", err)
		return
	}
	p.buf = buf
	p.log.Debugw("Звук загружен", "samples", buf.Len())
}

func (p *Player) open() (io.ReadCloser, string, error) {
	if p.path == "" {
		return io.NopCloser(bytes.NewReader(embedded.ClipSound)), "wav", nil
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, "", err
	}
	return f, strings.TrimPrefix(strings.ToLower(filepath.Ext(p.path)), "."), nil
}

// decode читает звук целиком в буфер с частотой sampleRate.
func decode(r io.ReadCloser, format string) (*beep.Buffer, error) {
	var (
		streamer beep.StreamSeekCloser
		f        beep.Format
		err      error
	)
	switch format {
	case "wav":
		streamer, f, err = wav.Decode(r)
	case "mp3":
		streamer, f, err = mp3.Decode(r)
	default:
		r.Close()
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
	if err != nil {
		r.Close()
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if f.SampleRate != sampleRate {
		src = beep.Resample(4, f.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}
