package sound

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"keyclip/embedded"
)

func TestDecodeEmbedded(t *testing.T) {
	buf, err := decode(io.NopCloser(bytes.NewReader(embedded.ClipSound)), "wav")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 80 мс при 44.1 кГц
	if buf.Len() < 3000 || buf.Len() > 4000 {
		t.Errorf("Len = %d", buf.Len())
	}
	if buf.Format().SampleRate != sampleRate {
		t.Errorf("SampleRate = %d", buf.Format().SampleRate)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := decode(io.NopCloser(bytes.NewReader(nil)), "ogg")
	if !errors.Is(err, errUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := decode(io.NopCloser(bytes.NewReader([]byte("not a wav"))), "wav"); err == nil {
		t.Error("decode succeeded")
	}
}

func TestPlayFallsBackWithoutSpeaker(t *testing.T) {
	p := New(zap.NewNop().Sugar(), "", 0)
	p.initSpeaker = func() error { return errors.New("no audio device") }
	beeps := 0
	p.fallback = func() error {
		beeps++
		return nil
	}

	for i := 0; i < 2; i++ {
		if err := p.Play(); err != nil {
			t.Fatalf("Play: %v", err)
		}
	}
	if beeps != 2 {
		t.Errorf("fallback calls = %d", beeps)
	}
}

func TestPlayFallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.flac")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	p := New(zap.NewNop().Sugar(), path, 0)
	p.initSpeaker = func() error {
		t.Error("speaker initialized for undecodable file")
		return nil
	}
	p.fallback = func() error { return errors.New("no beeper") }

	if err := p.Play(); err == nil {
		t.Error("Play succeeded")
	}
}

func TestPlayMissingFile(t *testing.T) {
	p := New(zap.NewNop().Sugar(), filepath.Join(t.TempDir(), "missing.wav"), 0)
	called := false
	p.fallback = func() error {
		called = true
		return nil
	}
	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("fallback not called")
	}
}
