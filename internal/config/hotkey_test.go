package config

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatFixedOrder(t *testing.T) {
	tests := []struct {
		mods Modifiers
		code Code
		want string
	}{
		{ModMeta | ModShift, "KeyK", "Cmd+Shift+K"},
		{ModControl | ModAlt, "KeyU", "Opt+Ctrl+U"},
		{ModControl | ModShift | ModMeta | ModAlt, "Digit7", "Cmd+Shift+Opt+Ctrl+7"},
		{ModShift, "F5", "Shift+F5"},
		{0, "Space", "Space"},
		{ModAlt, "Backspace", "Opt+Backspace"},
	}
	for _, tt := range tests {
		if got := Format(tt.mods, tt.code); got != tt.want {
			t.Errorf("Format(%#x, %q) = %q; want %q", tt.mods, tt.code, got, tt.want)
		}
	}
}

func TestFormatAllSubsets(t *testing.T) {
	order := []struct {
		mod   Modifiers
		label string
	}{
		{ModMeta, "Cmd"}, {ModShift, "Shift"}, {ModAlt, "Opt"}, {ModControl, "Ctrl"},
	}
	for mask := 0; mask < 1<<len(order); mask++ {
		var mods Modifiers
		var want []string
		for i, o := range order {
			if mask&(1<<i) != 0 {
				mods |= o.mod
				want = append(want, o.label)
			}
		}
		for _, code := range []Code{"KeyK", "Digit0", "F12", "Enter"} {
			got := Format(mods, code)
			exp := strings.Join(append(append([]string{}, want...), KeyLabel(code)), "+")
			if got != exp {
				t.Errorf("Format(%#x, %q) = %q; want %q", mods, code, got, exp)
			}
			if again := Format(mods, code); again != got {
				t.Errorf("Format is not deterministic: %q vs %q", got, again)
			}
		}
	}
}

func TestKeyLabel(t *testing.T) {
	tests := map[Code]string{
		"KeyA":   "A",
		"Digit1": "1",
		"F10":    "F10",
		"Escape": "Escape",
	}
	for code, want := range tests {
		if got := KeyLabel(code); got != want {
			t.Errorf("KeyLabel(%q) = %q; want %q", code, got, want)
		}
	}
}

func TestParseCode(t *testing.T) {
	for _, ok := range []string{"KeyK", "KeyZ", "Digit0", "F1", "F12", "Space", "Enter", "Tab", "Escape", "Backspace"} {
		if _, err := ParseCode(ok); err != nil {
			t.Errorf("ParseCode(%q) error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "NotAKey", "keyk", "K", "F13", "Digit10"} {
		_, err := ParseCode(bad)
		if !errors.Is(err, ErrUnknownCode) {
			t.Errorf("ParseCode(%q) error = %v; want ErrUnknownCode", bad, err)
		}
	}
}

func TestAvailableCodesAreParseable(t *testing.T) {
	codes := AvailableCodes()
	if len(codes) != 26+10+12+5 {
		t.Fatalf("len(AvailableCodes()) = %d", len(codes))
	}
	for _, c := range codes {
		if _, err := ParseCode(string(c)); err != nil {
			t.Errorf("ParseCode(%q): %v", c, err)
		}
	}
	codes[0] = "changed"
	if AvailableCodes()[0] != "KeyA" {
		t.Error("AvailableCodes returned shared slice")
	}
}

func TestModifiersFromBits(t *testing.T) {
	m, err := ModifiersFromBits(576)
	if err != nil {
		t.Fatalf("ModifiersFromBits(576): %v", err)
	}
	if m != ModMeta|ModShift {
		t.Errorf("ModifiersFromBits(576) = %#x; want Meta|Shift", m)
	}
	for _, bad := range []int64{-1, 1 << 1, 1 << 40, int64(ModShift) | 1<<12} {
		if _, err := ModifiersFromBits(bad); !errors.Is(err, ErrBadModifiers) {
			t.Errorf("ModifiersFromBits(%d) error = %v; want ErrBadModifiers", bad, err)
		}
	}
}

func TestModifiersInputMask(t *testing.T) {
	in := ModifiersInput{Control: true, Alt: true}
	if got := in.Mask(); got != ModControl|ModAlt {
		t.Errorf("Mask() = %#x; want Control|Alt", got)
	}
	all := ModifiersInput{Meta: true, Shift: true, Alt: true, Control: true}
	if !all.Mask().Valid() || all.Mask() != allModifiers {
		t.Errorf("Mask() = %#x; want all modifiers", all.Mask())
	}
}

func TestDefaultBinding(t *testing.T) {
	b := DefaultBinding()
	if b.String() != "Cmd+Shift+K" {
		t.Errorf("DefaultBinding().String() = %q", b.String())
	}
	if b != (Binding{Modifiers: ModMeta | ModShift, Code: "KeyK"}) {
		t.Errorf("DefaultBinding() = %+v", b)
	}
}
