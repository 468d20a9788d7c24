package terminal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wricardo/termsnake/game/engine"
)

// Intent is what a key press asks the driver to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentSteer
	IntentQuit
	IntentRestart
)

// KeyAction is a decoded key press. Heading is set for IntentSteer only.
type KeyAction struct {
	Intent  Intent
	Heading engine.Heading
}

// KeyIntent maps a key press to an action. Arrows, WASD and hjkl steer;
// q, esc and ctrl+c quit; r restarts.
func KeyIntent(msg tea.KeyMsg) KeyAction {
	switch msg.String() {
	case "up", "w", "k":
		return KeyAction{Intent: IntentSteer, Heading: engine.Up}
	case "down", "s", "j":
		return KeyAction{Intent: IntentSteer, Heading: engine.Down}
	case "left", "a", "h":
		return KeyAction{Intent: IntentSteer, Heading: engine.Left}
	case "right", "d", "l":
		return KeyAction{Intent: IntentSteer, Heading: engine.Right}
	case "q", "esc", "ctrl+c":
		return KeyAction{Intent: IntentQuit}
	case "r":
		return KeyAction{Intent: IntentRestart}
	default:
		return KeyAction{Intent: IntentNone}
	}
}
