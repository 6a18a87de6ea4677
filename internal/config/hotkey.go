package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownCode возвращается, когда идентификатор клавиши не входит
// в список поддерживаемых.
var ErrUnknownCode = errors.New("неизвестный код клавиши")

// ErrBadModifiers возвращается, когда битовая маска содержит
// неизвестные модификаторы.
var ErrBadModifiers = errors.New("некорректная маска модификаторов")

// Modifiers - битовая маска модификаторов.
// Значения битов совпадают с раскладкой W3C, в которой уже сохранены
// существующие store.json.
type Modifiers uint32

const (
	ModAlt     Modifiers = 1 << 0 // Option на macOS
	ModControl Modifiers = 1 << 3
	ModMeta    Modifiers = 1 << 6 // Cmd на macOS, Win/Super на остальных
	ModShift   Modifiers = 1 << 9

	allModifiers = ModAlt | ModControl | ModMeta | ModShift
)

// DefaultModifiers - модификаторы горячей клавиши по умолчанию (Cmd+Shift).
const DefaultModifiers = ModMeta | ModShift

// Has возвращает true если в маске есть все биты other.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Valid возвращает true если маска содержит только известные модификаторы.
func (m Modifiers) Valid() bool {
	return m&^allModifiers == 0
}

// ModifiersFromBits декодирует сохранённую маску.
func ModifiersFromBits(bits int64) (Modifiers, error) {
	if bits < 0 || bits > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrBadModifiers, bits)
	}
	m := Modifiers(bits)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %#x", ErrBadModifiers, bits)
	}
	return m, nil
}

// Code - идентификатор физической клавиши в форме KeyboardEvent.code ("KeyK").
type Code string

// DefaultCode - клавиша по умолчанию.
const DefaultCode Code = "KeyK"

var availableCodes = func() []Code {
	codes := make([]Code, 0, 48)
	for c := 'A'; c <= 'Z'; c++ {
		codes = append(codes, Code("Key"+string(c)))
	}
	for d := '0'; d <= '9'; d++ {
		codes = append(codes, Code("Digit"+string(d)))
	}
	for i := 1; i <= 12; i++ {
		codes = append(codes, Code(fmt.Sprintf("F%d", i)))
	}
	return append(codes, "Space", "Enter", "Tab", "Escape", "Backspace")
}()

var knownCodes = func() map[Code]struct{} {
	m := make(map[Code]struct{}, len(availableCodes))
	for _, c := range availableCodes {
		m[c] = struct{}{}
	}
	return m
}()

// AvailableCodes возвращает список поддерживаемых клавиш.
func AvailableCodes() []Code {
	out := make([]Code, len(availableCodes))
	copy(out, availableCodes)
	return out
}

// ParseCode проверяет идентификатор клавиши.
func ParseCode(s string) (Code, error) {
	c := Code(strings.TrimSpace(s))
	if _, ok := knownCodes[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	return c, nil
}

// Binding - комбинация, по которой копируется новый UUID.
// Заменяется только целиком.
type Binding struct {
	Modifiers Modifiers
	Code      Code
}

// DefaultBinding возвращает встроенную комбинацию Cmd+Shift+K.
func DefaultBinding() Binding {
	return Binding{Modifiers: DefaultModifiers, Code: DefaultCode}
}

// String возвращает комбинацию в виде "Cmd+Shift+K".
func (b Binding) String() string {
	return Format(b.Modifiers, b.Code)
}

// ModifiersInput - модификаторы в том виде, в каком их присылает окно выбора.
type ModifiersInput struct {
	Meta    bool `json:"meta"`
	Shift   bool `json:"shift"`
	Alt     bool `json:"alt"`
	Control bool `json:"control"`
}

// Mask собирает битовую маску.
func (in ModifiersInput) Mask() Modifiers {
	var m Modifiers
	if in.Meta {
		m |= ModMeta
	}
	if in.Shift {
		m |= ModShift
	}
	if in.Alt {
		m |= ModAlt
	}
	if in.Control {
		m |= ModControl
	}
	return m
}

// Порядок фиксированный, тесты на него опираются.
var modifierLabels = []struct {
	mod   Modifiers
	label string
}{
	{ModMeta, "Cmd"},
	{ModShift, "Shift"},
	{ModAlt, "Opt"},
	{ModControl, "Ctrl"},
}

// Format возвращает подпись комбинации: модификаторы в порядке
// Cmd, Shift, Opt, Ctrl и затем клавиша, через "+".
func Format(mods Modifiers, code Code) string {
	parts := make([]string, 0, len(modifierLabels)+1)
	for _, ml := range modifierLabels {
		if mods.Has(ml.mod) {
			parts = append(parts, ml.label)
		}
	}
	parts = append(parts, KeyLabel(code))
	return strings.Join(parts, "+")
}

// KeyLabel возвращает подпись клавиши без префиксов "Key" и "Digit".
func KeyLabel(code Code) string {
	s := string(code)
	if rest, ok := strings.CutPrefix(s, "Key"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(s, "Digit"); ok {
		return rest
	}
	return s
}
