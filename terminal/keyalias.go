package terminal

import "github.com/lixenwraith/termengine/terminal/keymap"

// Key and Modifier live in terminal/keymap, which has no dependency on
// the rest of this package; these aliases let callers write terminal.Key
// and terminal.KeyUp without importing the keymap package directly.
type (
	Key      = keymap.Key
	Modifier = keymap.Modifier
)

const (
	KeyNone = keymap.KeyNone
	KeyRune = keymap.KeyRune

	KeyEscape    = keymap.KeyEscape
	KeyEnter     = keymap.KeyEnter
	KeyTab       = keymap.KeyTab
	KeyBacktab   = keymap.KeyBacktab
	KeyBackspace = keymap.KeyBackspace
	KeyDelete    = keymap.KeyDelete
	KeySpace     = keymap.KeySpace

	KeyUp       = keymap.KeyUp
	KeyDown     = keymap.KeyDown
	KeyLeft     = keymap.KeyLeft
	KeyRight    = keymap.KeyRight
	KeyHome     = keymap.KeyHome
	KeyEnd      = keymap.KeyEnd
	KeyPageUp   = keymap.KeyPageUp
	KeyPageDown = keymap.KeyPageDown
	KeyInsert   = keymap.KeyInsert

	KeyF1  = keymap.KeyF1
	KeyF2  = keymap.KeyF2
	KeyF3  = keymap.KeyF3
	KeyF4  = keymap.KeyF4
	KeyF5  = keymap.KeyF5
	KeyF6  = keymap.KeyF6
	KeyF7  = keymap.KeyF7
	KeyF8  = keymap.KeyF8
	KeyF9  = keymap.KeyF9
	KeyF10 = keymap.KeyF10
	KeyF11 = keymap.KeyF11
	KeyF12 = keymap.KeyF12

	KeyNumpad5 = keymap.KeyNumpad5

	KeyCtrlA = keymap.KeyCtrlA
	KeyCtrlB = keymap.KeyCtrlB
	KeyCtrlC = keymap.KeyCtrlC
	KeyCtrlD = keymap.KeyCtrlD
	KeyCtrlE = keymap.KeyCtrlE
	KeyCtrlF = keymap.KeyCtrlF
	KeyCtrlG = keymap.KeyCtrlG
	KeyCtrlH = keymap.KeyCtrlH
	KeyCtrlI = keymap.KeyCtrlI
	KeyCtrlJ = keymap.KeyCtrlJ
	KeyCtrlK = keymap.KeyCtrlK
	KeyCtrlL = keymap.KeyCtrlL
	KeyCtrlM = keymap.KeyCtrlM
	KeyCtrlN = keymap.KeyCtrlN
	KeyCtrlO = keymap.KeyCtrlO
	KeyCtrlP = keymap.KeyCtrlP
	KeyCtrlQ = keymap.KeyCtrlQ
	KeyCtrlR = keymap.KeyCtrlR
	KeyCtrlS = keymap.KeyCtrlS
	KeyCtrlT = keymap.KeyCtrlT
	KeyCtrlU = keymap.KeyCtrlU
	KeyCtrlV = keymap.KeyCtrlV
	KeyCtrlW = keymap.KeyCtrlW
	KeyCtrlX = keymap.KeyCtrlX
	KeyCtrlY = keymap.KeyCtrlY
	KeyCtrlZ = keymap.KeyCtrlZ

	KeyCtrlSpace        = keymap.KeyCtrlSpace
	KeyCtrlBackslash    = keymap.KeyCtrlBackslash
	KeyCtrlBracketLeft  = keymap.KeyCtrlBracketLeft
	KeyCtrlBracketRight = keymap.KeyCtrlBracketRight
	KeyCtrlCaret        = keymap.KeyCtrlCaret
	KeyCtrlUnderscore   = keymap.KeyCtrlUnderscore

	ModNone  = keymap.ModNone
	ModShift = keymap.ModShift
	ModAlt   = keymap.ModAlt
	ModCtrl  = keymap.ModCtrl
)
