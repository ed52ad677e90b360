package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/mattn/go-runewidth"

	"linestore/internal/editor"
)

// View identifies which screen the model renders.
type View int

const (
	ViewLines View = iota
	ViewInput
	ViewConfirmQuit
	ViewQuitting
)

// inputMode is the action a submitted text input performs.
type inputMode int

const (
	inputAppend inputMode = iota
	inputInsert
	inputEdit
	inputSearch
	inputSaveAs
)

func (im inputMode) label() string {
	switch im {
	case inputAppend:
		return "Append line"
	case inputInsert:
		return "Insert line"
	case inputEdit:
		return "Edit line"
	case inputSearch:
		return "Search"
	case inputSaveAs:
		return "Save as"
	default:
		return ""
	}
}

const defaultWidth = 80

// LineItem is one numbered line in the list.
type LineItem struct {
	Index int
	Text  string
	Width int
}

func (li LineItem) Title() string {
	prefix := fmt.Sprintf("%4d  ", li.Index+1)
	if li.Width <= len(prefix) {
		return prefix + li.Text
	}
	return prefix + runewidth.Truncate(li.Text, li.Width-len(prefix), "…")
}
func (li LineItem) Description() string { return "" }
func (li LineItem) FilterValue() string { return li.Text }

// model is the Bubbletea model for the TUI.
type model struct {
	list       list.Model
	input      textinput.Model
	ActiveView View
	mode       inputMode
	target     int // line the pending input applies to
	status     string
	sess       *editor.Session
	height     int
	width      int
}

// InitialModel creates the TUI model over sess.
func InitialModel(sess *editor.Session, height int) model {
	listDelegate := list.NewDefaultDelegate()
	listDelegate.ShowDescription = false
	listDelegate.SetSpacing(0)

	l := list.New(nil, listDelegate, defaultWidth, max(height-8, 5))
	l.Title = sess.Filename
	if l.Title == "" {
		l.Title = "<unnamed>"
	}
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	// q and ctrl+c are handled by HandleKeyMsg so unsaved changes can be confirmed.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	m := model{
		list:   l,
		input:  ti,
		sess:   sess,
		height: height,
		width:  defaultWidth,
	}
	m.refreshItems()
	return m
}

// refreshItems rebuilds the list from the store, keeping the selection in range.
func (m *model) refreshItems() {
	items := make([]list.Item, 0, m.sess.Store.Len())
	for i, text := range m.sess.Store.All() {
		items = append(items, LineItem{Index: i, Text: text, Width: m.width - 4})
	}
	sel := m.list.Index()
	m.list.SetItems(items)
	if sel >= len(items) {
		sel = len(items) - 1
	}
	if sel >= 0 {
		m.list.Select(sel)
	}
}

// selected returns the index of the highlighted line, or -1 for an empty store.
func (m model) selected() int {
	if m.sess.Store.Len() == 0 {
		return -1
	}
	return m.list.Index()
}
