// Package tui provides the interactive terminal editor for access rules.
//
// The model is a thin view over internal/store: every edit key dispatches a
// store mutation and re-reads derived state. The model itself holds only
// navigation state (focused pane, cursor positions, active prompt).
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/store"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// pane identifies the focused editor region.
type pane int

const (
	paneOperations pane = iota
	paneCollections
	paneConfig
	panePresets
	paneCount
)

// Model is the main TUI model.
type Model struct {
	store *store.Store

	focus       pane
	opIndex     int
	collIndex   int
	configIndex int
	presetIndex int

	prompt      promptKind
	promptGroup types.GroupID
	promptCond  types.ConditionID
	promptAbac  bool
	pendingName string // database name captured between the two import prompts
	input       textinput.Model

	status   string
	width    int
	height   int
	quitting bool
}

// KeyMap defines key bindings.
type KeyMap struct {
	NextPane    key.Binding
	PrevPane    key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	AddGroup    key.Binding
	AddCond     key.Binding
	Delete      key.Binding
	Logic       key.Binding
	JoinLogic   key.Binding
	Import      key.Binding
	NextDB      key.Binding
	PrevDB      key.Binding
	DeleteDB    key.Binding
	SavePreset  key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/edit"),
		),
		AddGroup: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add group"),
		),
		AddCond: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add condition"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Logic: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle group logic"),
		),
		JoinLogic: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle join logic"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import database"),
		),
		NextDB: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next database"),
		),
		PrevDB: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous database"),
		),
		DeleteDB: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete database"),
		),
		SavePreset: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save preset"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset configuration"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var keys = DefaultKeyMap()

// NewModel creates a TUI model bound to a store.
func NewModel(st *store.Store) Model {
	return Model{
		store: st,
		focus: paneOperations,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateKeys handles navigation-mode key presses.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextPane):
		m.focus = (m.focus + 1) % paneCount
		m.status = ""

	case key.Matches(msg, keys.PrevPane):
		m.focus = (m.focus + paneCount - 1) % paneCount
		m.status = ""

	case key.Matches(msg, keys.Reset):
		m.store.ResetConfiguration()
		m.configIndex = 0
		m.status = "configuration reset"

	case key.Matches(msg, keys.Import):
		return m.openPrompt(promptDatabaseName, "database name")

	case key.Matches(msg, keys.NextDB):
		m.cycleDatabase(1)

	case key.Matches(msg, keys.PrevDB):
		m.cycleDatabase(-1)

	case key.Matches(msg, keys.DeleteDB):
		if db, ok := m.store.CurrentDatabase(); ok {
			m.store.DeleteDatabase(db.ID)
			m.collIndex = 0
			m.status = "deleted database " + db.Name
		}

	case key.Matches(msg, keys.SavePreset):
		return m.openPrompt(promptPresetName, "preset name")

	default:
		switch m.focus {
		case paneOperations:
			return m.updateOperations(msg)
		case paneCollections:
			return m.updateCollections(msg)
		case paneConfig:
			return m.updateConfig(msg)
		case panePresets:
			return m.updatePresets(msg)
		}
	}
	return m, nil
}

// updateOperations switches the active rule slot.
func (m Model) updateOperations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ops := types.Operations()
	switch {
	case key.Matches(msg, keys.Up):
		if m.opIndex > 0 {
			m.opIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.opIndex < len(ops)-1 {
			m.opIndex++
		}
	case key.Matches(msg, keys.Select):
		if err := m.store.SetOperation(ops[m.opIndex]); err != nil {
			m.status = err.Error()
		} else {
			m.configIndex = 0
			m.status = "editing " + string(ops[m.opIndex])
		}
	}
	return m, nil
}

// updateCollections navigates and selects collections of the active database.
func (m Model) updateCollections(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.store.Graph().CollectionNames()
	switch {
	case key.Matches(msg, keys.Up):
		if m.collIndex > 0 {
			m.collIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.collIndex < len(names)-1 {
			m.collIndex++
		}
	case key.Matches(msg, keys.Select):
		if m.collIndex < len(names) {
			m.store.SetCollection(names[m.collIndex])
			m.configIndex = 0
			m.status = "editing collection " + names[m.collIndex]
		}
	}
	return m, nil
}

// updatePresets navigates, loads, and deletes presets for the active slot.
func (m Model) updatePresets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := m.store.Presets()
	switch {
	case key.Matches(msg, keys.Up):
		if m.presetIndex > 0 {
			m.presetIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.presetIndex < len(presets)-1 {
			m.presetIndex++
		}
	case key.Matches(msg, keys.Select):
		if m.presetIndex < len(presets) {
			name := presets[m.presetIndex].Name
			if err := m.store.LoadPreset(name); err != nil {
				m.status = err.Error()
			} else {
				m.status = "loaded preset " + name
			}
		}
	case key.Matches(msg, keys.Delete):
		if m.presetIndex < len(presets) {
			name := presets[m.presetIndex].Name
			if err := m.store.DeletePreset(name); err != nil {
				m.status = err.Error()
			} else {
				if m.presetIndex > 0 {
					m.presetIndex--
				}
				m.status = "deleted preset " + name
			}
		}
	}
	return m, nil
}

// cycleDatabase moves the active database forward or backward.
func (m *Model) cycleDatabase(step int) {
	dbs := m.store.Databases()
	if len(dbs) == 0 {
		return
	}
	cur := 0
	if db, ok := m.store.CurrentDatabase(); ok {
		for i := range dbs {
			if dbs[i].ID == db.ID {
				cur = i
				break
			}
		}
	}
	next := (cur + step + len(dbs)) % len(dbs)
	if err := m.store.SetCurrentDatabase(dbs[next].ID); err == nil {
		m.collIndex = 0
		m.configIndex = 0
		m.status = "switched to database " + dbs[next].Name
	}
}

// Run starts the interactive editor.
func Run(st *store.Store) error {
	p := tea.NewProgram(NewModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
