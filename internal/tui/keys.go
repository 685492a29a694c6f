package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	cancel key.Binding
	quit   key.Binding
}

var keys = keyMap{
	cancel: key.NewBinding(key.WithKeys("c", "esc")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
