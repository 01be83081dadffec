package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

// Action is what a key press asks the client to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSkip
	ActionCommand
)

// MapKey translates a key press for the current page phase and game
// state. Space is context sensitive: it starts from the menu, pauses a
// running game and resumes a paused one.
func MapKey(ev *tcell.EventKey, phase lifecycle.Phase, state game.State) (Action, game.Command) {
	if isCtrlC(ev) {
		return ActionQuit, ""
	}
	if ev.Key() == tcell.KeyEscape {
		if phase == lifecycle.PhaseContent && state == game.StatePlaying {
			return ActionCommand, game.CommandPause
		}
		return ActionQuit, ""
	}

	if phase == lifecycle.PhaseIntro {
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && (ev.Rune() == ' ' || ev.Rune() == 's')) {
			return ActionSkip, ""
		}
		return ActionNone, ""
	}
	if phase != lifecycle.PhaseContent {
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return ActionQuit, ""
		}
		return ActionNone, ""
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionCommand, game.CommandLeft
	case tcell.KeyRight:
		return ActionCommand, game.CommandRight
	case tcell.KeyEnter:
		switch state {
		case game.StateMenu:
			return ActionCommand, game.CommandStart
		case game.StateGameOver:
			return ActionCommand, game.CommandPlayAgain
		}
		return ActionNone, ""
	case tcell.KeyRune:
	default:
		return ActionNone, ""
	}

	switch ev.Rune() {
	case 'q':
		return ActionQuit, ""
	case 'a', 'h':
		return ActionCommand, game.CommandLeft
	case 'd', 'l':
		return ActionCommand, game.CommandRight
	case 'p':
		return ActionCommand, game.CommandPause
	case 'r':
		return ActionCommand, game.CommandRestart
	case ' ':
		switch state {
		case game.StateMenu:
			return ActionCommand, game.CommandStart
		case game.StatePlaying:
			return ActionCommand, game.CommandPause
		case game.StatePaused:
			return ActionCommand, game.CommandResume
		case game.StateGameOver:
			return ActionCommand, game.CommandPlayAgain
		}
	}
	return ActionNone, ""
}

// isCtrlC accepts both encodings terminals report Ctrl-C with.
func isCtrlC(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C')
}
