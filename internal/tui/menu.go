package tui

import (
	"fmt"
	"strings"
)

// renderMenu renders the main menu screen
func (m Model) renderMenu() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("volt-gui — Main Menu"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Muted.Render("Active profile: " + m.active))
	b.WriteString("\n\n")

	for i, item := range DefaultMenuItems() {
		text := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == m.selection {
			b.WriteString(m.theme.Selected.Render(text))
		} else {
			b.WriteString(m.theme.Value.Render(text))
		}
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.PaddingLeft(2).Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render("Navigate: ↑/↓ or numbers | Select: Enter/Space | Back: Esc | Quit: q"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// navigateUp moves selection up in the menu
func (m Model) navigateUp() Model {
	m.selection = wrap(m.selection-1, len(DefaultMenuItems()))
	return m
}

// navigateDown moves selection down in the menu
func (m Model) navigateDown() Model {
	m.selection = wrap(m.selection+1, len(DefaultMenuItems()))
	return m
}

// selectMenuItem opens the highlighted screen
func (m Model) selectMenuItem() Model {
	menuItems := DefaultMenuItems()
	if m.selection >= 0 && m.selection < len(menuItems) {
		m = m.openScreen(menuItems[m.selection].Screen)
	}
	return m
}

// selectMenuByKey handles direct menu selection by key press
func (m Model) selectMenuByKey(key string) Model {
	for i, item := range DefaultMenuItems() {
		if item.Key == key {
			m.selection = i
			m = m.openScreen(item.Screen)
			break
		}
	}
	return m
}

func (m Model) openScreen(s Screen) Model {
	if s != m.currentScreen {
		m.cursor = 0
	}
	m.currentScreen = s
	m.lastError = ""
	m.statusMessage = ""
	m.diffLines = nil
	m.showPreview = false
	m.refresh()
	return m
}

// returnToMenu returns to the main menu
func (m Model) returnToMenu() Model {
	m.currentScreen = ScreenMenu
	m.lastError = ""
	m.pendingDelete = ""
	m.diffLines = nil
	m.showPreview = false
	m.rows = nil
	return m
}
