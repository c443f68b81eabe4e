package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding

	Keyword  key.Binding
	City     key.Binding
	District key.Binding
	Grade    key.Binding
	Subject  key.Binding
	Salary   key.Binding
	Sort     key.Binding

	Confirm key.Binding // Leave keyword editing.
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "上移"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "下移"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "查看"),
	),
	Keyword: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "关键词"),
	),
	City: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "城市"),
	),
	District: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "区域"),
	),
	Grade: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "年级"),
	),
	Subject: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "科目"),
	),
	Salary: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "课时费"),
	),
	Sort: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "排序"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", "esc"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "退出"),
	),
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Keyword, k.City, k.District, k.Grade, k.Subject, k.Salary, k.Sort, k.Quit}
}
