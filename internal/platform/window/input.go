package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/slimekoban/internal/core"
)

// keyBinding maps physical keys to one game action.
type keyBinding struct {
	keys   []ebiten.Key
	action core.Action
}

// bindings mirrors the terminal key map.
var bindings = []keyBinding{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyK}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyJ}, core.ActionDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart},
	{[]ebiten.Key{ebiten.KeyN, ebiten.KeyE}, core.ActionNextLevel},
	{[]ebiten.Key{ebiten.KeyP}, core.ActionPrevLevel},
	{[]ebiten.Key{ebiten.KeyU, ebiten.KeyZ}, core.ActionUndo},
	{[]ebiten.Key{ebiten.KeyM}, core.ActionToggleMusic},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, core.ActionQuit},
}

// copyKey copies the board snapshot to the clipboard.
const copyKey = ebiten.KeyC

// actionForKey returns the action bound to k, or ActionNone.
func actionForKey(k ebiten.Key) core.Action {
	for _, b := range bindings {
		for _, bk := range b.keys {
			if bk == k {
				return b.action
			}
		}
	}
	return core.ActionNone
}

// pollInput queues an action for every key pressed since the last frame,
// in the order ebiten reports them. Held keys do not repeat.
func pollInput(frame *core.InputFrame) (copyRequested bool) {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if k == copyKey {
			copyRequested = true
			continue
		}
		if a := actionForKey(k); a != core.ActionNone {
			frame.Set(a)
		}
	}
	return copyRequested
}
