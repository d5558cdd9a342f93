package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// Styles for TUI rendering.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(0, 1)

	blurredPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	ruleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("70")).
			Foreground(lipgloss.Color("114")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1)
)

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := "Rule Builder"
	if db, ok := m.store.CurrentDatabase(); ok {
		header += "  " + dimStyle.Render("database: "+db.Name)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(m.renderOperations())
	b.WriteString("\n\n")

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCollections(),
		" ",
		m.renderConfig(),
		" ",
		m.renderPresets(),
	)
	b.WriteString(columns)
	b.WriteString("\n")

	b.WriteString(ruleStyle.Render(m.store.Rule()))
	b.WriteString("\n")

	if m.prompt != promptNone {
		b.WriteString(promptStyle.Render(m.input.View()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	help := "tab panes • ↑/↓ move • enter select/edit • a group • c condition • d delete • l/L logic • s save preset • i import • [/] database • r reset • q quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// renderOperations draws the rule-slot tab row.
func (m Model) renderOperations() string {
	ops := types.Operations()
	tabs := make([]string, 0, len(ops))
	for i, op := range ops {
		label := string(op)
		if m.focus == paneOperations && i == m.opIndex {
			label = "› " + label
		}
		if op == m.store.Operation() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderCollections draws the collection list of the active database.
func (m Model) renderCollections() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Collections"))
	b.WriteString("\n")

	names := m.store.Graph().CollectionNames()
	if len(names) == 0 {
		b.WriteString(dimStyle.Render("none (press i to import)"))
	}
	for i, name := range names {
		line := "  " + name
		if name == m.store.Collection() {
			line = "* " + name
		}
		if m.focus == paneCollections && i == m.collIndex {
			line = cursorStyle.Render("› " + strings.TrimLeft(line, " *"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.paneStyle(paneCollections).Render(b.String())
}

// renderConfig draws the fixed slots and both condition families.
func (m Model) renderConfig() string {
	cfg := m.store.Config()
	rows := buildConfigRows(cfg)

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Configuration"))
	b.WriteString("\n")

	for i, row := range rows {
		line := m.renderConfigRow(row, cfg)
		if m.focus == paneConfig && i == m.configIndex {
			line = cursorStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.paneStyle(paneConfig).Render(b.String())
}

// renderConfigRow draws one configuration line.
func (m Model) renderConfigRow(row configRow, cfg types.RuleConfig) string {
	switch row.kind {
	case rowAuthenticated:
		mark := "[ ]"
		if cfg.Authenticated {
			mark = "[x]"
		}
		return mark + " require authentication"
	case rowOwnerField:
		return "owner field: " + orDash(cfg.OwnerField)
	case rowAuthMatchField:
		return "auth match field: " + orDash(cfg.AuthMatchField)
	case rowLockFields:
		return "lock fields: " + orDash(strings.Join(cfg.LockFields, ", "))
	case rowFamilyHeader:
		if row.abac {
			return paneTitleStyle.Render("Attribute conditions")
		}
		return paneTitleStyle.Render("Custom conditions")
	case rowGroup:
		if g, ok := m.findGroup(row); ok {
			return fmt.Sprintf("%s  %s", g.Name,
				dimStyle.Render(fmt.Sprintf("(%s inside, %s after)", g.InternalLogic.Token(), g.Logic.Token())))
		}
	case rowCondition:
		if c, ok := m.findCondition(row); ok {
			if row.abac {
				return fmt.Sprintf("  %s · %s = %s", orDash(c.Operand1), orDash(c.Operand2), orDash(c.Operand3))
			}
			return fmt.Sprintf("  %s %s %s", orDash(c.Operand1), c.Operator, orDash(c.Operand2))
		}
	}
	return ""
}

// renderPresets draws the preset list of the active database.
func (m Model) renderPresets() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Presets"))
	b.WriteString("\n")

	presets := m.store.Presets()
	if len(presets) == 0 {
		b.WriteString(dimStyle.Render("none (press s to save)"))
	}
	for i, p := range presets {
		line := "  " + p.Name
		if p.Name == m.store.CurrentPreset() {
			line = "* " + p.Name
		}
		if m.focus == panePresets && i == m.presetIndex {
			line = cursorStyle.Render("› " + p.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.paneStyle(panePresets).Render(b.String())
}

// paneStyle returns the bordered style matching focus state.
func (m Model) paneStyle(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedPaneStyle
	}
	return blurredPaneStyle
}

func orDash(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
