//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Control characters delivered for Ctrl+letter chords.
const (
	ctrlG = 0x07
	ctrlL = 0x0c
	ctrlM = 0x0d
	ctrlR = 0x12
	ctrlS = 0x13
	ctrlT = 0x14
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

var hostNavKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
}

func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		select {
		case k.ch <- ev:
		default:
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) ||
		ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if ctrl {
		emitCtrl := func(key ebiten.Key, r rune) {
			if inpututil.IsKeyJustPressed(key) {
				emit(KeyEvent{Press: true, Rune: r})
			}
		}
		if shift {
			// Ctrl+Shift+M is memory-add, the same as a plain Shift+M.
			emitCtrl(ebiten.KeyM, 'M')
		} else {
			emitCtrl(ebiten.KeyM, ctrlM)
		}
		emitCtrl(ebiten.KeyG, ctrlG)
		emitCtrl(ebiten.KeyL, ctrlL)
		emitCtrl(ebiten.KeyR, ctrlR)
		emitCtrl(ebiten.KeyS, ctrlS)
		emitCtrl(ebiten.KeyT, ctrlT)
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			emit(KeyEvent{Press: true, Rune: r})
		}
	}

	for _, nk := range hostNavKeys {
		if inpututil.IsKeyJustPressed(nk.key) {
			emit(KeyEvent{Code: nk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(nk.key) {
			emit(KeyEvent{Code: nk.code, Press: false})
		}
	}
}
