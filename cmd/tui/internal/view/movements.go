package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/period"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

type mvState int

const (
	mvStateTimeframe mvState = iota
	mvStateList
)

// mvItem wraps a movement to implement list.Item.
type mvItem struct {
	mv *stock.Movement
}

func (i mvItem) Title() string {
	sign := "+"
	if i.mv.Type.Exit() {
		sign = "-"
	}

	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.mv.Type))

	return fmt.Sprintf("%s  %s%d  %s  %s  (%d -> %d)",
		FormatDate(i.mv.Date), sign, i.mv.Quantity, kind, i.mv.ProductName,
		i.mv.PreviousQuantity, i.mv.NewQuantity)
}

func (i mvItem) Description() string {
	var parts []string

	if i.mv.EmployeeName != "" {
		parts = append(parts, "By: "+i.mv.EmployeeName)
	}

	if i.mv.Reference != nil {
		parts = append(parts, fmt.Sprintf("Ref: %s %s", i.mv.Reference.Type, i.mv.Reference.ID.String()[:8]))
	}

	if i.mv.Notes != "" {
		parts = append(parts, i.mv.Notes)
	}

	return strings.Join(parts, "  |  ")
}

func (i mvItem) FilterValue() string {
	return i.mv.ProductName
}

type MovementsModel struct {
	CommonModel
	actor        auth.Actor
	stockService *stock.Service

	state           mvState
	timeframePicker TimeframePicker
	list            list.Model
	movements       []*stock.Movement

	rng     period.Range
	loading bool
	status  string
}

func NewMovementsModel(actor auth.Actor, stockSvc *stock.Service) MovementsModel {
	l := list.New([]list.Item{}, mvItemDelegate{}, 0, 0)
	l.Title = "Stock movements"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return MovementsModel{
		actor:           actor,
		stockService:    stockSvc,
		timeframePicker: NewTimeframePicker(TimeframeToday),
		list:            l,
	}
}

func (m MovementsModel) Title() string { return "Stock Movements" }

func (m MovementsModel) ShortHelp() string {
	if m.state == mvStateTimeframe {
		return "Esc: back | Enter: select"
	}

	return "Esc: back | /: filter | r: refresh"
}

func (m MovementsModel) Init() tea.Cmd {
	return nil
}

func (m MovementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = msg.Range
		m.loading = true
		m.state = mvStateList
		m.list.Title = fmt.Sprintf("Stock movements (%s)", msg.Range)

		return m, m.loadMovementsCmd()

	case loadMovementsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""
		m.movements = msg.movements
		m.refreshListItems()

		if len(msg.movements) == 0 {
			m.status = "No movements found."
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case mvStateTimeframe:
		return m.updateTimeframe(msg)
	case mvStateList:
		return m.updateList(msg)
	}

	return m, nil
}

func (m MovementsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m MovementsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			m.state = mvStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadMovementsCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m MovementsModel) View() string {
	if m.state == mvStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading movements...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *MovementsModel) refreshListItems() {
	items := make([]list.Item, len(m.movements))
	for i, mv := range m.movements {
		items[i] = mvItem{mv: mv}
	}

	m.list.SetItems(items)
}

type loadMovementsMsg struct {
	movements []*stock.Movement
	err       error
}

func (m MovementsModel) loadMovementsCmd() tea.Cmd {
	rng := m.rng

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		movements, err := m.stockService.List(ctx, stock.ListFilter{Range: rng})

		return loadMovementsMsg{movements: movements, err: err}
	}
}

// mvItemDelegate renders items in the list.
type mvItemDelegate struct{}

func (d mvItemDelegate) Height() int                             { return 2 }
func (d mvItemDelegate) Spacing() int                            { return 0 }
func (d mvItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d mvItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(mvItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
