package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ikbal01/tanks-game/internal/core"
)

// PlayerKeys holds the driving controls of one tank.
type PlayerKeys struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Fire  key.Binding
}

func wasdKeys() PlayerKeys {
	return PlayerKeys{
		Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "up")),
		Down:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "down")),
		Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "left")),
		Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "right")),
		Fire:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fire")),
	}
}

func arrowKeys() PlayerKeys {
	return PlayerKeys{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Fire:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fire")),
	}
}

// action returns the action a key drives, or ActionNone.
func (k PlayerKeys) action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	}
	return core.ActionNone
}

// KeyMapper translates Bubble Tea key messages to game actions.
// With one player both layouts drive Player1; in local co-op WASD and space
// drive Player1 while the arrows and enter drive Player2.
type KeyMapper struct {
	coop    bool
	Player1 PlayerKeys
	Player2 PlayerKeys

	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// NewKeyMapper creates a key mapper for one player or two at one keyboard.
func NewKeyMapper(coop bool) *KeyMapper {
	return &KeyMapper{
		coop:       coop,
		Player1:    wasdKeys(),
		Player2:    arrowKeys(),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// MapKey translates a key message to a player's action.
// Returns the player, the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.Player1, core.ActionQuit, true
	case key.Matches(msg, km.Pause):
		return core.Player1, core.ActionPause, false
	case key.Matches(msg, km.Restart):
		return core.Player1, core.ActionRestart, false
	case key.Matches(msg, km.Back):
		return core.Player1, core.ActionBack, false
	}

	if a := km.Player1.action(msg); a != core.ActionNone {
		return core.Player1, a, false
	}
	if a := km.Player2.action(msg); a != core.ActionNone {
		if km.coop {
			return core.Player2, a, false
		}
		return core.Player1, a, false
	}
	return core.Player1, core.ActionNone, false
}

// MapKeyToFrame returns the input frame of a key press and the player it
// belongs to. Returns quit true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg) (player core.PlayerID, frame core.InputFrame, quit bool) {
	var action core.Action
	player, action, quit = km.MapKey(msg)
	frame = core.NewInputFrame()
	if action != core.ActionNone && !quit {
		frame.Set(action)
	}
	return player, frame, quit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
