package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/rule"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// promptKind identifies the active text prompt, promptNone when navigating.
type promptKind int

const (
	promptNone promptKind = iota
	promptOwnerField
	promptAuthMatchField
	promptLockFields
	promptGroupName
	promptOperand1
	promptOperator
	promptOperand2
	promptOperand3
	promptPresetName
	promptDatabaseName
	promptDatabasePath
)

// rowKind identifies one line of the configuration pane.
type rowKind int

const (
	rowAuthenticated rowKind = iota
	rowOwnerField
	rowAuthMatchField
	rowLockFields
	rowFamilyHeader
	rowGroup
	rowCondition
)

// configRow is one navigable line of the configuration pane. Group and
// condition rows carry the ids needed to dispatch store mutations; abac
// distinguishes the attribute family from the custom one.
type configRow struct {
	kind  rowKind
	abac  bool
	group types.GroupID
	cond  types.ConditionID
}

// buildConfigRows flattens the active configuration into navigable rows.
// Fixed-slot rows come first, then the custom family, then the attribute
// family, each with a header row.
func buildConfigRows(cfg types.RuleConfig) []configRow {
	rows := []configRow{
		{kind: rowAuthenticated},
		{kind: rowOwnerField},
		{kind: rowAuthMatchField},
		{kind: rowLockFields},
	}
	for _, abac := range []bool{false, true} {
		rows = append(rows, configRow{kind: rowFamilyHeader, abac: abac})
		family := cfg.CustomConditions
		if abac {
			family = cfg.AbacConditions
		}
		for _, g := range family.Groups {
			rows = append(rows, configRow{kind: rowGroup, abac: abac, group: g.ID})
			for _, c := range g.Conditions {
				rows = append(rows, configRow{kind: rowCondition, abac: abac, group: g.ID, cond: c.ID})
			}
		}
	}
	return rows
}

// updateConfig handles key presses while the configuration pane has focus.
func (m Model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := buildConfigRows(m.store.Config())
	if m.configIndex >= len(rows) {
		m.configIndex = len(rows) - 1
	}
	row := rows[m.configIndex]

	switch {
	case key.Matches(msg, keys.Up):
		if m.configIndex > 0 {
			m.configIndex--
		}

	case key.Matches(msg, keys.Down):
		if m.configIndex < len(rows)-1 {
			m.configIndex++
		}

	case key.Matches(msg, keys.Select):
		return m.selectConfigRow(row)

	case key.Matches(msg, keys.AddGroup):
		if row.kind == rowFamilyHeader || row.kind == rowGroup || row.kind == rowCondition {
			if row.abac {
				m.store.AddAbacGroup("")
			} else {
				m.store.AddCustomGroup("")
			}
			m.status = "added group"
		}

	case key.Matches(msg, keys.AddCond):
		if row.group != "" {
			if row.abac {
				m.store.AddAbacCondition(row.group)
			} else {
				m.store.AddCustomCondition(row.group)
			}
			m.status = "added condition"
		}

	case key.Matches(msg, keys.Delete):
		return m.deleteConfigRow(row)

	case key.Matches(msg, keys.Logic):
		if row.kind == rowGroup {
			m.toggleGroupLogic(row, false)
		}

	case key.Matches(msg, keys.JoinLogic):
		if row.kind == rowGroup {
			m.toggleGroupLogic(row, true)
		}

	case msg.String() == "1" && row.kind == rowCondition:
		return m.openConditionPrompt(promptOperand1, row)

	case msg.String() == "2" && row.kind == rowCondition:
		return m.openConditionPrompt(promptOperand2, row)

	case msg.String() == "3" && row.kind == rowCondition && row.abac:
		return m.openConditionPrompt(promptOperand3, row)

	case msg.String() == "o" && row.kind == rowCondition && !row.abac:
		return m.openConditionPrompt(promptOperator, row)
	}
	return m, nil
}

// selectConfigRow activates the row under the cursor: toggles the boolean
// slot, opens the matching prompt for text slots, renames groups, and edits
// the first operand of conditions.
func (m Model) selectConfigRow(row configRow) (tea.Model, tea.Cmd) {
	switch row.kind {
	case rowAuthenticated:
		m.store.SetAuthenticated(!m.store.Config().Authenticated)
		return m, nil
	case rowOwnerField:
		return m.openPrompt(promptOwnerField, "owner field")
	case rowAuthMatchField:
		return m.openPrompt(promptAuthMatchField, "auth match field")
	case rowLockFields:
		return m.openPrompt(promptLockFields, "lock fields (comma separated)")
	case rowGroup:
		m.promptGroup = row.group
		m.promptAbac = row.abac
		return m.openPrompt(promptGroupName, "group name")
	case rowCondition:
		return m.openConditionPrompt(promptOperand1, row)
	}
	return m, nil
}

// deleteConfigRow removes the group or condition under the cursor.
func (m Model) deleteConfigRow(row configRow) (tea.Model, tea.Cmd) {
	switch row.kind {
	case rowGroup:
		if row.abac {
			m.store.RemoveAbacGroup(row.group)
		} else {
			m.store.RemoveCustomGroup(row.group)
		}
		m.status = "removed group"
	case rowCondition:
		if row.abac {
			m.store.RemoveAbacCondition(row.group, row.cond)
		} else {
			m.store.RemoveCustomCondition(row.group, row.cond)
		}
		m.status = "removed condition"
	default:
		return m, nil
	}
	if m.configIndex > 0 {
		m.configIndex--
	}
	return m, nil
}

// toggleGroupLogic flips a group's internal logic, or its join logic when
// join is true.
func (m *Model) toggleGroupLogic(row configRow, join bool) {
	g, ok := m.findGroup(row)
	if !ok {
		return
	}
	patch := rule.GroupPatch{}
	if join {
		next := flip(g.Logic)
		patch.Logic = &next
	} else {
		next := flip(g.InternalLogic)
		patch.InternalLogic = &next
	}
	if row.abac {
		m.store.UpdateAbacGroup(row.group, patch)
	} else {
		m.store.UpdateCustomGroup(row.group, patch)
	}
}

func flip(l types.Logic) types.Logic {
	if l.OrDefault() == types.LogicAnd {
		return types.LogicOr
	}
	return types.LogicAnd
}

// findGroup resolves a row's group in the active configuration.
func (m *Model) findGroup(row configRow) (types.ConditionGroup, bool) {
	family := m.store.Config().CustomConditions
	if row.abac {
		family = m.store.Config().AbacConditions
	}
	for _, g := range family.Groups {
		if g.ID == row.group {
			return g, true
		}
	}
	return types.ConditionGroup{}, false
}

// findCondition resolves a row's condition in the active configuration.
func (m *Model) findCondition(row configRow) (types.Condition, bool) {
	g, ok := m.findGroup(row)
	if !ok {
		return types.Condition{}, false
	}
	for _, c := range g.Conditions {
		if c.ID == row.cond {
			return c, true
		}
	}
	return types.Condition{}, false
}

// openPrompt enters prompt mode with a fresh text input.
func (m Model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(m.promptInitialValue(kind))
	input.CursorEnd()
	input.Focus()

	m.prompt = kind
	m.input = input
	m.status = ""
	return m, textinput.Blink
}

// openConditionPrompt enters prompt mode targeting one condition field.
func (m Model) openConditionPrompt(kind promptKind, row configRow) (tea.Model, tea.Cmd) {
	m.promptGroup = row.group
	m.promptCond = row.cond
	m.promptAbac = row.abac
	placeholder := map[promptKind]string{
		promptOperand1: "operand 1",
		promptOperator: "operator",
		promptOperand2: "operand 2",
		promptOperand3: "operand 3",
	}[kind]
	return m.openPrompt(kind, placeholder)
}

// promptInitialValue pre-fills the prompt with the current slot value.
func (m Model) promptInitialValue(kind promptKind) string {
	cfg := m.store.Config()
	switch kind {
	case promptOwnerField:
		return cfg.OwnerField
	case promptAuthMatchField:
		return cfg.AuthMatchField
	case promptLockFields:
		return strings.Join(cfg.LockFields, ", ")
	case promptGroupName:
		if g, ok := m.findGroup(configRow{abac: m.promptAbac, group: m.promptGroup}); ok {
			return g.Name
		}
	case promptOperand1, promptOperator, promptOperand2, promptOperand3:
		c, ok := m.findCondition(configRow{abac: m.promptAbac, group: m.promptGroup, cond: m.promptCond})
		if !ok {
			return ""
		}
		switch kind {
		case promptOperand1:
			return c.Operand1
		case promptOperator:
			return c.Operator
		case promptOperand2:
			return c.Operand2
		case promptOperand3:
			return c.Operand3
		}
	}
	return ""
}

// updatePrompt routes key presses to the active text input. Enter commits,
// escape cancels.
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.applyPrompt(strings.TrimSpace(m.input.Value()))
	case "esc":
		m.prompt = promptNone
		m.pendingName = ""
		m.status = "cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyPrompt commits the prompt value through the matching store mutation.
func (m Model) applyPrompt(value string) (tea.Model, tea.Cmd) {
	kind := m.prompt
	m.prompt = promptNone

	switch kind {
	case promptOwnerField:
		m.store.SetOwnerField(value)
	case promptAuthMatchField:
		m.store.SetAuthMatchField(value)
	case promptLockFields:
		m.store.SetLockFields(splitFields(value))
	case promptGroupName:
		patch := rule.GroupPatch{Name: &value}
		if m.promptAbac {
			m.store.UpdateAbacGroup(m.promptGroup, patch)
		} else {
			m.store.UpdateCustomGroup(m.promptGroup, patch)
		}
	case promptOperand1, promptOperator, promptOperand2, promptOperand3:
		patch := rule.ConditionPatch{}
		switch kind {
		case promptOperand1:
			patch.Operand1 = &value
		case promptOperator:
			patch.Operator = &value
		case promptOperand2:
			patch.Operand2 = &value
		case promptOperand3:
			patch.Operand3 = &value
		}
		if m.promptAbac {
			m.store.UpdateAbacCondition(m.promptGroup, m.promptCond, patch)
		} else {
			m.store.UpdateCustomCondition(m.promptGroup, m.promptCond, patch)
		}
	case promptPresetName:
		if err := m.store.SavePreset(value); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "saved preset " + value
		return m, nil
	case promptDatabaseName:
		if value == "" {
			m.status = "cancelled"
			return m, nil
		}
		m.pendingName = value
		return m.openPrompt(promptDatabasePath, "schema export path")
	case promptDatabasePath:
		return m.importDatabase(value)
	}
	return m, nil
}

// importDatabase reads a schema export file and installs it as a new
// database under the name captured by the previous prompt.
func (m Model) importDatabase(path string) (tea.Model, tea.Cmd) {
	name := m.pendingName
	m.pendingName = ""

	data, err := os.ReadFile(path)
	if err != nil {
		m.status = "failed to read schema export: " + err.Error()
		return m, nil
	}
	if err := m.store.AddDatabase(name, data); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.collIndex = 0
	m.configIndex = 0
	m.status = "imported database " + name
	return m, nil
}

// splitFields parses a comma-separated field list, dropping blanks.
func splitFields(value string) []string {
	var out []string
	for _, f := range strings.Split(value, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
