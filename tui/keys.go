package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is every binding the dashboard reacts to.
type KeyMap struct {
	Quit     key.Binding
	Page     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	SubList  key.Binding

	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Search key.Binding

	Facet    key.Binding
	OptLeft  key.Binding
	OptRight key.Binding
	Toggle   key.Binding
	Sort     key.Binding
	Column   key.Binding
	FloorUp  key.Binding
	FloorDn  key.Binding
	Clear    key.Binding

	Report   key.Binding
	AddTask  key.Binding
	Complete key.Binding
	Draft    key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Page:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "page")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		SubList:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "quotes/inventory")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next")),
		Prev:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),

		Facet:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "facet")),
		OptLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "option")),
		OptRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "option")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Column:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort column")),
		FloorUp:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "raise min")),
		FloorDn:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "lower min")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),

		Report:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate report")),
		AddTask:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		Draft:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add to quote")),
	}
}

func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Search, k.Facet, k.Toggle, k.Sort, k.Column, k.Clear, k.Quit}
}

func (k KeyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Back, k.Quit}
}

func (k KeyMap) overviewHelp() []key.Binding {
	return []key.Binding{k.Page, k.Report, k.AddTask, k.Quit}
}
