package render

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/object"
	"github.com/siana-blue/poufalouf/parameter"
)

// Action is a keyboard command handled outside the controlled character
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionQuit
)

// DefaultBindings maps key names to actions
var DefaultBindings = map[string]string{
	"up": "up", "w": "up", "k": "up",
	"down": "down", "s": "down", "j": "down",
	"left": "left", "a": "left", "h": "left",
	"right": "right", "d": "right", "l": "right",
	"space": "jump",
	"f": "fire", "enter": "fire",
	"p": "pause",
	"q": "quit", "esc": "quit", "ctrl-c": "quit",
}

var specialKeyNames = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyEnter:  "enter",
	tcell.KeyEscape: "esc",
	tcell.KeyCtrlC:  "ctrl-c",
	tcell.KeyTab:    "tab",
}

type heldKey struct {
	dir core.Direction
	at  time.Time
}

// Keyboard turns key presses into intents for a character
// Terminals report presses but no releases, so a direction stays held for
// parameter.KeyHoldWindowMs after its last press (key repeat refreshes it). Jump and fire
// are latched until the next Intent call.
// Key presses arrive on the input goroutine while Intent is called on the tick goroutine
type Keyboard struct {
	mu       sync.Mutex
	bindings map[string]string
	window   time.Duration
	now      func() time.Time

	vertical   heldKey
	horizontal heldKey
	jump       bool
	fire       bool
}

// NewKeyboard creates a keyboard with DefaultBindings overridden by overrides
func NewKeyboard(overrides map[string]string) *Keyboard {
	bindings := make(map[string]string, len(DefaultBindings)+len(overrides))
	for k, v := range DefaultBindings {
		bindings[k] = v
	}
	for k, v := range overrides {
		bindings[strings.ToLower(k)] = v
	}
	return &Keyboard{
		bindings: bindings,
		window:   parameter.KeyHoldWindowMs * time.Millisecond,
		now:      time.Now,
	}
}

// HandleKey records a tcell key event
func (k *Keyboard) HandleKey(ev *tcell.EventKey) Action {
	return k.Press(ev.Key(), ev.Rune())
}

// Press records a key press and returns the command it maps to, if any
func (k *Keyboard) Press(key tcell.Key, r rune) Action {
	name, ok := specialKeyNames[key]
	if !ok {
		if key != tcell.KeyRune {
			return ActionNone
		}
		name = strings.ToLower(string(r))
		if r == ' ' {
			name = "space"
		}
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	switch k.bindings[name] {
	case "up":
		k.vertical = heldKey{core.North, now}
	case "down":
		k.vertical = heldKey{core.South, now}
	case "left":
		k.horizontal = heldKey{core.West, now}
	case "right":
		k.horizontal = heldKey{core.East, now}
	case "jump":
		k.jump = true
	case "fire":
		k.fire = true
	case "pause":
		return ActionPause
	case "quit":
		return ActionQuit
	}
	return ActionNone
}

// Intent implements object.Controller
func (k *Keyboard) Intent() object.Intent {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	var dx, dy float64
	if k.live(k.vertical, now) {
		_, y := k.vertical.dir.Delta()
		dy = float64(y)
	}
	if k.live(k.horizontal, now) {
		x, _ := k.horizontal.dir.Delta()
		dx = float64(x)
	}

	in := object.Intent{
		Direction: core.DirectionTo(dx, dy),
		Jump:      k.jump,
		Fire:      k.fire,
	}
	k.jump, k.fire = false, false
	return in
}

func (k *Keyboard) live(h heldKey, now time.Time) bool {
	return h.dir.Valid() && now.Sub(h.at) <= k.window
}
