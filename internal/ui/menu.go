package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is one named action in the application's command menu.
type Command struct {
	ID    string
	Title string
	// Group separates related commands in the menu; a divider is drawn
	// wherever the group changes.
	Group string
	Key   key.Binding
	// Enabled reports whether the command can run. Nil means always.
	Enabled func(*App) bool
	Run     func(*App) tea.Cmd
}

// IsEnabled reports whether the command can run against app.
func (c Command) IsEnabled(app *App) bool {
	return c.Enabled == nil || c.Enabled(app)
}

// Menu is the ordered list of commands.
type Menu struct {
	commands []Command
	index    map[string]int
}

// NewMenu returns an empty menu.
func NewMenu() *Menu {
	return &Menu{index: make(map[string]int)}
}

// Register appends cmd to the menu.
func (m *Menu) Register(cmd Command) error {
	if strings.TrimSpace(cmd.ID) == "" {
		return fmt.Errorf("command %q has no id", cmd.Title)
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return fmt.Errorf("command %s has no title", cmd.ID)
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no handler", cmd.ID)
	}
	if _, dup := m.index[cmd.ID]; dup {
		return fmt.Errorf("command %s already registered", cmd.ID)
	}
	for _, k := range cmd.Key.Keys() {
		if other, ok := m.lookupKey(k); ok {
			return fmt.Errorf("command %s: key %q already bound to %s", cmd.ID, k, other.ID)
		}
	}
	m.index[cmd.ID] = len(m.commands)
	m.commands = append(m.commands, cmd)
	return nil
}

// MustRegister is Register for the built-in commands, which are known good.
func (m *Menu) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := m.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Commands returns the registered commands in menu order.
func (m *Menu) Commands() []Command {
	out := make([]Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// Len returns the number of registered commands.
func (m *Menu) Len() int {
	return len(m.commands)
}

// At returns the command at position i.
func (m *Menu) At(i int) (Command, bool) {
	if i < 0 || i >= len(m.commands) {
		return Command{}, false
	}
	return m.commands[i], true
}

// Lookup finds a command by id.
func (m *Menu) Lookup(id string) (Command, bool) {
	i, ok := m.index[id]
	if !ok {
		return Command{}, false
	}
	return m.commands[i], true
}

// Match finds the command whose shortcut matches msg.
func (m *Menu) Match(msg tea.KeyMsg) (Command, bool) {
	for _, cmd := range m.commands {
		if key.Matches(msg, cmd.Key) {
			return cmd, true
		}
	}
	return Command{}, false
}

func (m *Menu) lookupKey(k string) (Command, bool) {
	for _, cmd := range m.commands {
		for _, bound := range cmd.Key.Keys() {
			if bound == k {
				return cmd, true
			}
		}
	}
	return Command{}, false
}
