package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		switch m.ActiveView {
		case ViewLines:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		case ViewInput:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewQuitting:
		// If quitting, ignore further input
		return m, nil

	case ViewConfirmQuit:
		switch k {
		case "y", "Y":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "n", "N", "esc":
			m.ActiveView = ViewLines
			m.status = "Quit cancelled."
		}
		return m, nil

	case ViewInput:
		switch k {
		case "enter":
			return submitInput(m)
		case "esc":
			m.input.Blur()
			m.ActiveView = ViewLines
			m.status = m.mode.label() + " cancelled."
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case ViewLines:
		switch k {
		case "ctrl+c", "q":
			if m.sess.Modified {
				m.ActiveView = ViewConfirmQuit
				return m, nil
			}
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "esc":
			return m, nil
		case "a":
			return startInput(m, inputAppend, m.sess.Store.Len(), "")
		case "i":
			return startInput(m, inputInsert, max(m.selected(), 0), "")
		case "e":
			idx := m.selected()
			if idx < 0 {
				m.status = "Buffer is empty. Nothing to edit."
				return m, nil
			}
			text, _ := m.sess.Store.Get(idx)
			return startInput(m, inputEdit, idx, text)
		case "d":
			return deleteSelected(m)
		case "/":
			return startInput(m, inputSearch, 0, "")
		case "s":
			if m.sess.Filename == "" {
				return startInput(m, inputSaveAs, 0, "")
			}
			return saveTo(m, m.sess.Filename)
		case "w":
			return startInput(m, inputSaveAs, 0, m.sess.Filename)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func startInput(m model, mode inputMode, target int, value string) (model, tea.Cmd) {
	m.mode = mode
	m.target = target
	m.status = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.ActiveView = ViewInput
	return m, m.input.Focus()
}

func submitInput(m model) (model, tea.Cmd) {
	value := m.input.Value()
	m.input.Blur()
	m.input.Reset()
	m.ActiveView = ViewLines

	var err error
	switch m.mode {
	case inputAppend:
		if err = m.sess.Append(value); err == nil {
			m.refreshItems()
			m.list.Select(m.sess.Store.Len() - 1)
			m.status = fmt.Sprintf("Appended line %d.", m.sess.Store.Len())
		}
	case inputInsert:
		if err = m.sess.Insert(m.target, value); err == nil {
			m.refreshItems()
			m.list.Select(m.target)
			m.status = fmt.Sprintf("Inserted line %d.", m.target+1)
		}
	case inputEdit:
		if err = m.sess.Replace(m.target, value); err == nil {
			m.refreshItems()
			m.status = fmt.Sprintf("Updated line %d.", m.target+1)
		}
	case inputSearch:
		if value == "" {
			m.status = "Empty search string."
			return m, nil
		}
		idx, ok := m.sess.Store.Find(value)
		if !ok {
			m.status = fmt.Sprintf("No match found for '%s'.", value)
			return m, nil
		}
		m.list.Select(idx)
		m.status = fmt.Sprintf("First match at line %d.", idx+1)
	case inputSaveAs:
		if value == "" {
			m.status = "Save As cancelled."
			return m, nil
		}
		return saveTo(m, value)
	}
	if err != nil {
		m.status = fmt.Sprintf("%s failed: %v", m.mode.label(), err)
	}
	return m, nil
}

func deleteSelected(m model) (model, tea.Cmd) {
	idx := m.selected()
	if idx < 0 {
		m.status = "Buffer is empty. Nothing to delete."
		return m, nil
	}
	if err := m.sess.Delete(idx); err != nil {
		m.status = fmt.Sprintf("Delete failed: %v", err)
		return m, nil
	}
	m.refreshItems()
	m.status = fmt.Sprintf("Deleted line %d.", idx+1)
	return m, nil
}

func saveTo(m model, path string) (model, tea.Cmd) {
	if err := m.sess.SaveAs(path); err != nil {
		m.status = fmt.Sprintf("Failed to save file '%s': %v", path, err)
		return m, nil
	}
	m.list.Title = m.sess.Filename
	m.status = fmt.Sprintf("Saved to '%s'.", m.sess.Filename)
	return m, nil
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width
	m.list.SetHeight(max(msg.Height-8, 5))
	m.list.SetWidth(msg.Width)
	m.input.Width = max(msg.Width-4, 10)

	// Refresh list items with updated width for truncation
	m.refreshItems()
	return m, nil
}
