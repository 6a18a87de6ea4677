package config

import (
	"os"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestLoadSettingsFreshInstall(t *testing.T) {
	s := openTemp(t)
	log := zaptest.NewLogger(t).Sugar()

	got, err := LoadSettings(s, log)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := Settings{AutostartEnabled: false, PlaySound: true, Binding: DefaultBinding()}
	if got != want {
		t.Errorf("LoadSettings() = %+v; want %+v", got, want)
	}
	if got.Binding.String() != "Cmd+Shift+K" {
		t.Errorf("binding = %q; want Cmd+Shift+K", got.Binding.String())
	}

	// Все четыре ключа должны появиться на диске.
	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := reopened.Bool(KeyAutostart); !ok || v {
		t.Errorf("autostart_enabled = %v, %v; want false, true", v, ok)
	}
	if v, ok := reopened.Bool(KeyPlaySound); !ok || !v {
		t.Errorf("play_sound = %v, %v; want true, true", v, ok)
	}
	if v, ok := reopened.Int(KeyHotkeyModifiers); !ok || v != int64(ModMeta|ModShift) {
		t.Errorf("hotkey_modifiers = %v, %v; want %d", v, ok, ModMeta|ModShift)
	}
	if v, ok := reopened.String(KeyHotkeyCode); !ok || v != "KeyK" {
		t.Errorf("hotkey_code = %q, %v; want KeyK", v, ok)
	}
}

func TestLoadSettingsKeepsStoredValues(t *testing.T) {
	s := openTemp(t)
	log := zaptest.NewLogger(t).Sugar()
	_ = s.Set(KeyAutostart, true)
	_ = s.Set(KeyPlaySound, false)
	_ = s.Set(KeyHotkeyModifiers, int64(ModControl|ModAlt))
	_ = s.Set(KeyHotkeyCode, "KeyU")

	got, err := LoadSettings(s, log)
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{
		AutostartEnabled: true,
		PlaySound:        false,
		Binding:          Binding{Modifiers: ModControl | ModAlt, Code: "KeyU"},
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v; want %+v", got, want)
	}
}

func TestLoadSettingsBackfillFailureIsFatal(t *testing.T) {
	s := openTemp(t)
	if err := os.Mkdir(s.Path()+".tmp", 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(s, zaptest.NewLogger(t).Sugar()); err == nil {
		t.Fatal("LoadSettings on unwritable store: expected error")
	}
}

func TestLoadSettingsMalformedBoolUsesDefault(t *testing.T) {
	s := openTemp(t)
	_ = s.Set(KeyPlaySound, "loud")

	got, err := LoadSettings(s, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatal(err)
	}
	if !got.PlaySound {
		t.Error("malformed play_sound should fall back to true")
	}
	if v, ok := s.String(KeyPlaySound); !ok || v != "loud" {
		t.Errorf("malformed value rewritten: %q", v)
	}
}

func TestLoadBindingUnknownCodeFallsBack(t *testing.T) {
	s := openTemp(t)
	_ = s.Set(KeyHotkeyModifiers, int64(ModControl|ModAlt))
	_ = s.Set(KeyHotkeyCode, "NotAKey")

	if got := LoadBinding(s, zaptest.NewLogger(t).Sugar()); got != DefaultBinding() {
		t.Errorf("LoadBinding() = %+v; want default", got)
	}
}

func TestLoadBindingFallbacks(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
	}{
		{"empty", nil},
		{"only code", map[string]any{KeyHotkeyCode: "KeyU"}},
		{"only modifiers", map[string]any{KeyHotkeyModifiers: 9}},
		{"unknown bits", map[string]any{KeyHotkeyModifiers: 2, KeyHotkeyCode: "KeyU"}},
		{"modifiers not a number", map[string]any{KeyHotkeyModifiers: "ctrl", KeyHotkeyCode: "KeyU"}},
		{"code not a string", map[string]any{KeyHotkeyModifiers: 9, KeyHotkeyCode: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t)
			for k, v := range tt.set {
				if err := s.Set(k, v); err != nil {
					t.Fatal(err)
				}
			}
			if got := LoadBinding(s, zaptest.NewLogger(t).Sugar()); got != DefaultBinding() {
				t.Errorf("LoadBinding() = %+v; want default", got)
			}
		})
	}
}

func TestLoadBindingIdempotent(t *testing.T) {
	s := openTemp(t)
	log := zaptest.NewLogger(t).Sugar()
	_ = s.Set(KeyHotkeyModifiers, int64(ModControl|ModShift))
	_ = s.Set(KeyHotkeyCode, "Digit3")

	first := LoadBinding(s, log).String()
	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	second := LoadBinding(reopened, log).String()
	if first != second || first != "Shift+Ctrl+3" {
		t.Errorf("formatted bindings %q and %q; want Shift+Ctrl+3 twice", first, second)
	}
}

func TestResetSettings(t *testing.T) {
	s := openTemp(t)
	_ = s.Set(KeyPlaySound, false)
	_ = s.Set(KeyHotkeyCode, "KeyU")

	if err := ResetSettings(s); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(s, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatal(err)
	}
	if got != (Settings{PlaySound: true, Binding: DefaultBinding()}) {
		t.Errorf("after reset: %+v", got)
	}
}
