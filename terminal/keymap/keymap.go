// Package keymap loads the declarative table that the input decoder
// consults to recognize escape-encoded key sequences.
//
// A table is just an ordered list of (byte sequence, key, modifiers)
// records, sorted so the longest sequence is tried first: since no
// sequence in the default or a loaded table is a prefix of a shorter one
// that binds a different key, first-prefix-match is unambiguous.
package keymap

import (
	"encoding/json"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Key identifies a named (non-printable or control) key.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // printable character; see KeyEvent.Rune in the core package

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyNumpad5

	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketLeft
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore

	// KeyA..KeyZ name a bare letter in a keymap record (e.g. binding a
	// raw control byte to the symbolic key "A" with CTRL set), distinct
	// from the KeyRune fast path the decoder takes for ordinary text.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Modifier is a bitmask of Shift/Alt/Ctrl attached to a key or mouse event.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// Sequence is one (bytes, modifiers, key) record in the table.
type Sequence struct {
	Bytes []byte
	Mods  Modifier
	Key   Key
}

// configNames maps the external, uppercase key-name vocabulary used by
// keys.json (spec §6) to Key constants.
var configNames = map[string]Key{
	"BACKSPACE": KeyBackspace,
	"TAB":       KeyTab,
	"ENTER":     KeyEnter,
	"UP":        KeyUp,
	"DOWN":      KeyDown,
	"LEFT":      KeyLeft,
	"RIGHT":     KeyRight,
	"HOME":      KeyHome,
	"INSERT":    KeyInsert,
	"DELETE":    KeyDelete,
	"END":       KeyEnd,
	"PAGE_UP":   KeyPageUp,
	"PAGE_DOWN": KeyPageDown,
	"ESCAPE":    KeyEscape,
	"NUMPAD_5":  KeyNumpad5,
	"F1":        KeyF1,
	"F2":        KeyF2,
	"F3":        KeyF3,
	"F4":        KeyF4,
	"F5":        KeyF5,
	"F6":        KeyF6,
	"F7":        KeyF7,
	"F8":        KeyF8,
	"F9":        KeyF9,
	"F10":       KeyF10,
	"F11":       KeyF11,
	"F12":       KeyF12,
	"A":         KeyA,
	"B":         KeyB,
	"C":         KeyC,
	"D":         KeyD,
	"E":         KeyE,
	"F":         KeyF,
	"G":         KeyG,
	"H":         KeyH,
	"I":         KeyI,
	"J":         KeyJ,
	"K":         KeyK,
	"L":         KeyL,
	"M":         KeyM,
	"N":         KeyN,
	"O":         KeyO,
	"P":         KeyP,
	"Q":         KeyQ,
	"R":         KeyR,
	"S":         KeyS,
	"T":         KeyT,
	"U":         KeyU,
	"V":         KeyV,
	"W":         KeyW,
	"X":         KeyX,
	"Y":         KeyY,
	"Z":         KeyZ,
}

var modifierNames = map[string]Modifier{
	"SHIFT": ModShift,
	"ALT":   ModAlt,
	"CTRL":  ModCtrl,
}

// KeyByConfigName resolves a keys.json key name to a Key constant.
func KeyByConfigName(name string) (Key, bool) {
	k, ok := configNames[name]
	return k, ok
}

// record is the on-disk shape of one keys.json element.
type record struct {
	Seq  string   `json:"seq"`
	Key  string   `json:"key"`
	Mods []string `json:"mods"`
}

// Load parses a keys.json document into a sequence table sorted longest
// first. Malformed records (missing seq or key, unresolvable key or
// modifier name) are skipped; duplicate sequences are logged and the
// first binding wins.
func Load(r io.Reader, logger *log.Logger) ([]Sequence, error) {
	if logger == nil {
		logger = log.Default()
	}

	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "keymap: decode keys.json")
	}

	seen := make(map[string]bool, len(records))
	table := make([]Sequence, 0, len(records))

	for i, rec := range records {
		if rec.Seq == "" || rec.Key == "" {
			logger.Printf("keymap: record %d missing seq or key, skipped", i)
			continue
		}

		key, ok := KeyByConfigName(rec.Key)
		if !ok {
			logger.Printf("keymap: record %d has unknown key %q, skipped", i, rec.Key)
			continue
		}

		bytes, err := decodeEscapes(rec.Seq)
		if err != nil {
			logger.Printf("keymap: record %d: %v, skipped", i, err)
			continue
		}

		var mods Modifier
		malformed := false
		for _, name := range rec.Mods {
			m, ok := modifierNames[name]
			if !ok {
				logger.Printf("keymap: record %d has unknown modifier %q, skipped", i, name)
				malformed = true
				break
			}
			mods |= m
		}
		if malformed {
			continue
		}

		sk := string(bytes)
		if seen[sk] {
			logger.Printf("keymap: duplicate sequence %q, keeping first binding", rec.Seq)
			continue
		}
		seen[sk] = true

		table = append(table, Sequence{Bytes: bytes, Mods: mods, Key: key})
	}

	sortLongestFirst(table)
	return table, nil
}

// decodeEscapes replaces every "|xNN" (two hex digits) with the single
// byte of that value; all other characters are taken literally.
func decodeEscapes(seq string) ([]byte, error) {
	out := make([]byte, 0, len(seq))
	for i := 0; i < len(seq); {
		if seq[i] == '|' && i+3 < len(seq) && seq[i+1] == 'x' {
			v, err := strconv.ParseUint(seq[i+2:i+4], 16, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid |xNN escape at offset %d", i)
			}
			out = append(out, byte(v))
			i += 4
			continue
		}
		out = append(out, seq[i])
		i++
	}
	return out, nil
}

func sortLongestFirst(table []Sequence) {
	sort.SliceStable(table, func(i, j int) bool {
		return len(table[i].Bytes) > len(table[j].Bytes)
	})
}

// Lookup returns the first record in table whose Bytes is a prefix of b,
// along with how many bytes it consumed. Because table is sorted longest
// first, this is the longest-match lookup the decoder relies on.
func Lookup(table []Sequence, b []byte) (Sequence, int, bool) {
	for _, s := range table {
		if len(s.Bytes) == 0 || len(s.Bytes) > len(b) {
			continue
		}
		if strings.HasPrefix(string(b), string(s.Bytes)) {
			return s, len(s.Bytes), true
		}
	}
	return Sequence{}, 0, false
}
