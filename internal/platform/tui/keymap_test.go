package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotpop/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"vim right", runeKey('l'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("MapKey(%q) action = %v, want %v", tc.msg.String(), action, tc.action)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, want %v", tc.msg.String(), quit, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('d'), &frame) {
		t.Error("d should not quit")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("frame should have ActionRight")
	}

	km.MapKeyToFrame(runeKey('z'), &frame)
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys should not be recorded")
	}
}

func TestMapMouseClick(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 11, Y: 5, Action: tea.MouseActionRelease}

	if km.MapMouseToFrame(press, &frame) {
		t.Error("a press alone is not a click")
	}
	if frame.Click != nil {
		t.Fatal("press should not fill the frame")
	}

	if !km.MapMouseToFrame(release, &frame) {
		t.Fatal("release after press should be a click")
	}
	want := core.Pointer{PressX: 10, PressY: 5, X: 11, Y: 5}
	if *frame.Click != want {
		t.Errorf("click = %+v, want %+v", *frame.Click, want)
	}

	// A second release without a press is ignored.
	frame.Clear()
	if km.MapMouseToFrame(release, &frame) || frame.Click != nil {
		t.Error("release without press should be ignored")
	}
}

func TestMapMouseIgnoresOtherButtons(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease}, &frame) {
		t.Error("right button should not click")
	}

	km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, &frame)
	if frame.Click != nil {
		t.Error("motion should not click")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
