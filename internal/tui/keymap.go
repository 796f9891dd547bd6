package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/studypick/internal/model"
)

type keyMap struct {
	Start  key.Binding
	Add    key.Binding
	Remove key.Binding
	Up     key.Binding
	Down   key.Binding
	Pause  key.Binding
	Done   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Start:  key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start session")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add class")),
	Remove: key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "remove")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
	Done:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "back to classes")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Start, k.Add, k.Remove, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel}
}

func (k keyMap) sessionHelp(phase model.Phase) []key.Binding {
	pause := k.Pause
	if phase == model.Paused {
		pause.SetHelp("space", "resume")
	}
	return []key.Binding{pause, k.Quit}
}

func (k keyMap) completedHelp() []key.Binding {
	return []key.Binding{k.Done, k.Quit}
}
