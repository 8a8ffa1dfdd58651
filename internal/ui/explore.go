// Package ui hosts the interactive rule-table browser: a Bubble Tea
// model listing every capability family and composite group, with a
// detail pane showing the requirement and provision sides of the
// selected entry.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"opforge/internal/family"
	"opforge/internal/group"
	"opforge/internal/overload"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	paneStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

var titler = cases.Title(language.English)

// entry is one browsable row: a family or a group.
type entry struct {
	name    string
	isGroup bool
}

func (e entry) FilterValue() string { return e.name }
func (e entry) Title() string       { return e.name }

func (e entry) Description() string {
	if e.isGroup {
		members, _ := group.Members(e.name)
		return "group: " + strings.Join(members, " + ")
	}
	spec, err := displaySpec(e.name)
	if err != nil {
		return ""
	}
	provided := make([]string, 0, 3)
	for _, prov := range spec.Provides() {
		provided = append(provided, prov.Sig.String())
	}
	return "provides " + strings.Join(provided, ", ")
}

// displaySpec instantiates a family against placeholder operand types
// for display. Families that demand a foreign type get T and U.
func displaySpec(name string) (family.Spec, error) {
	spec, err := family.Instantiate(name, "T", "")
	if err == nil {
		return spec, nil
	}
	return family.Instantiate(name, "T", "U")
}

// Model is the explore browser.
type Model struct {
	entries list.Model
	width   int
	height  int
}

// NewModel builds the browser over the built-in family and group
// tables.
func NewModel() Model {
	items := make([]list.Item, 0, 48)
	for _, name := range group.Names() {
		items = append(items, entry{name: name, isGroup: true})
	}
	for _, name := range family.Names() {
		items = append(items, entry{name: name})
	}
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 48, 24)
	l.Title = "opforge rule tables"
	l.SetShowStatusBar(false)
	return Model{entries: l}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetSize(msg.Width/2, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	detailWidth := m.width - m.width/2 - 4
	if detailWidth < 24 {
		detailWidth = 24
	}
	detail := paneStyle.Render(m.detail(detailWidth))
	return lipgloss.JoinHorizontal(lipgloss.Top, m.entries.View(), detail)
}

func (m Model) detail(width int) string {
	item, ok := m.entries.SelectedItem().(entry)
	if !ok {
		return dimStyle.Render("nothing selected")
	}
	var b strings.Builder
	title := titler.String(strings.ReplaceAll(item.name, "_", " "))
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if item.isGroup {
		renderGroup(&b, item.name, width)
	} else {
		renderFamily(&b, item.name, width)
	}
	return b.String()
}

func renderGroup(b *strings.Builder, name string, width int) {
	members, _ := group.Members(name)
	b.WriteString(headerStyle.Render("Members") + "\n")
	for _, member := range members {
		b.WriteString("  " + member + "\n")
	}
	specs, err := group.Resolve(name, "T", "")
	if err != nil {
		b.WriteString("\n" + dimStyle.Render(truncate(err.Error(), width)) + "\n")
		return
	}
	b.WriteString("\n" + headerStyle.Render("Union of provisions") + "\n")
	for _, spec := range specs {
		for _, prov := range spec.Provides() {
			line := fmt.Sprintf("  %-12s %s", prov.Sig.String(), dimStyle.Render("from "+spec.Name))
			b.WriteString(truncate(line, width) + "\n")
		}
	}
}

func renderFamily(b *strings.Builder, name string, width int) {
	spec, err := displaySpec(name)
	if err != nil {
		b.WriteString(dimStyle.Render(truncate(err.Error(), width)) + "\n")
		return
	}
	b.WriteString(headerStyle.Render("Requires") + "\n")
	for _, prim := range spec.Requires() {
		b.WriteString("  " + prim.Key() + "\n")
	}
	b.WriteString("\n" + headerStyle.Render("Provides") + "\n")
	for _, prov := range spec.Provides() {
		b.WriteString("  " + prov.Sig.String() + "\n")
		for _, v := range overload.Expand(prov) {
			line := fmt.Sprintf("    %-28s %s -> %s", v.Modes.String(), v.Strategy, v.Result())
			b.WriteString(dimStyle.Render(truncate(line, width)) + "\n")
		}
	}
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
