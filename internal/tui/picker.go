package tui

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/templates"
)

// Action represents the action to take after the picker exits
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action

	// Templates in the order they were selected.
	Templates []string
	Name      string
}

type pickerStep int

const (
	stepTemplates pickerStep = iota
	stepName
)

// templateItem implements list.Item for template display
type templateItem struct {
	tmpl *templates.Template
	// order is the 1-based selection position, 0 when not selected.
	order int
}

func (i templateItem) Title() string {
	if i.order == 0 {
		return "[ ] " + i.tmpl.Name
	}
	return fmt.Sprintf("[%d] %s", i.order, i.tmpl.Name)
}

func (i templateItem) Description() string {
	return describe(i.tmpl)
}

func (i templateItem) FilterValue() string {
	return i.tmpl.Name
}

func describe(t *templates.Template) string {
	if !t.HasConfig() {
		return "no config"
	}
	c := t.Config
	desc := fmt.Sprintf("%d packages, %d files", len(c.Packages()), len(c.Files()))
	if n := len(c.DisabledServices()); n > 0 {
		desc += fmt.Sprintf(", %d disabled services", n)
	}
	return desc
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for the template picker
type Model struct {
	step      pickerStep
	list      list.Model
	nameInput textinput.Model
	selected  []string
	err       string
	result    PickerResult
	quitting  bool
	width     int
	height    int
}

// NewPicker creates a new template picker. With no templates it starts at
// the name step.
func NewPicker(tmpls []*templates.Template) Model {
	items := make([]list.Item, len(tmpls))
	for i, t := range tmpls {
		items[i] = templateItem{tmpl: t}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "OpenWrt Builder - Select Templates"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "router"
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		list:      l,
		nameInput: ti,
	}
	if len(tmpls) == 0 {
		m.enterNameStep()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
	}

	if m.step == stepName {
		return m.updateName(msg)
	}
	return m.updateTemplates(msg)
}

func (m Model) updateTemplates(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case " ":
			if item, ok := m.list.SelectedItem().(templateItem); ok {
				m.toggle(item.tmpl.Name)
			}
			return m, nil

		case "enter":
			m.enterNameStep()
			return m, textinput.Blink

		case "q", "esc":
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(m.nameInput.Value())
			if err := config.ValidateName(name); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.result = PickerResult{
				Action:    ActionCreate,
				Templates: slices.Clone(m.selected),
				Name:      name,
			}
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEsc:
			if len(m.list.Items()) == 0 {
				return m.quit()
			}
			m.step = stepTemplates
			m.err = ""
			m.nameInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.result = PickerResult{Action: ActionQuit}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) enterNameStep() {
	m.step = stepName
	m.err = ""
	m.nameInput.SetValue(suggestName(m.selected))
	m.nameInput.CursorEnd()
	m.nameInput.Focus()
}

// toggle adds name to the selection, or removes it and renumbers the rest.
func (m *Model) toggle(name string) {
	if i := slices.Index(m.selected, name); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
	} else {
		m.selected = append(m.selected, name)
	}

	items := m.list.Items()
	for i, it := range items {
		item := it.(templateItem)
		item.order = slices.Index(m.selected, item.tmpl.Name) + 1
		items[i] = item
	}
	m.list.SetItems(items)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.step == stepName {
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("OpenWrt Builder - Image Name"))
		sb.WriteString("\n")
		if len(m.selected) > 0 {
			sb.WriteString("Templates: " + strings.Join(m.selected, ", ") + "\n\n")
		}
		sb.WriteString(m.nameInput.View())
		sb.WriteString("\n")
		if m.err != "" {
			sb.WriteString(errorStyle.Render(m.err) + "\n")
		}
		sb.WriteString(helpStyle.Render("[enter] Create  [esc] Back"))
		return sb.String()
	}

	help := helpStyle.Render("[space] Toggle  [enter] Next  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// Selected returns the selected template names in selection order.
func (m Model) Selected() []string {
	return slices.Clone(m.selected)
}

// RunPicker runs the interactive template picker
func RunPicker(tmpls []*templates.Template) (PickerResult, error) {
	m := NewPicker(tmpls)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists templates
func SimplePicker(tmpls []*templates.Template) string {
	var sb strings.Builder

	sb.WriteString("OpenWrt Builder - Templates\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(tmpls) == 0 {
		sb.WriteString("No templates found.\n")
		return sb.String()
	}

	for i, t := range tmpls {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, t.Name, describe(t)))
	}
	sb.WriteString("\nSelect templates with: openwrt-builder init <name> --include <template>\n")

	return sb.String()
}

// sanitizeNameRegex matches characters not valid in image names.
var sanitizeNameRegex = regexp.MustCompile(`[^a-z0-9_.-]`)

// suggestName generates an image name from the selected templates.
func suggestName(selected []string) string {
	name := strings.ToLower(strings.Join(selected, "-"))
	name = sanitizeNameRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-._")

	if name == "" {
		return "router"
	}
	if len(name) > 63 {
		name = strings.TrimRight(name[:63], "-._")
	}
	return name
}
