package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateMove
)

var stockFilters = []struct {
	label  string
	status product.StockStatus
}{
	{"All", ""},
	{"OK", product.StockOK},
	{"Low", product.StockLow},
	{"Out of stock", product.StockOut},
	{"Untracked", product.StockUntracked},
}

type StockModel struct {
	CommonModel
	actor           auth.Actor
	productService  *product.Service
	workflowService *workflow.Service

	state    stockState
	table    table.Model
	products []*product.Product
	form     *huh.Form
	moving   *product.Product

	filterIdx       int
	includeInactive bool

	loading bool
	err     error
	status  string
}

func NewStockModel(actor auth.Actor, productSvc *product.Service, wf *workflow.Service) StockModel {
	columns := []table.Column{
		{Title: "Product", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 12},
		{Title: "Stock", Width: 7},
		{Title: "Min", Width: 5},
		{Title: "Status", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return StockModel{
		actor:           actor,
		productService:  productSvc,
		workflowService: wf,
		table:           t,
		loading:         true,
	}
}

func (m StockModel) Title() string { return "Stock" }

func (m StockModel) ShortHelp() string {
	if m.state == stockStateMove {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | m: record movement | s: status filter | i: inactive | r: refresh"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadProductsCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.products = msg.products
		m.refreshTable()

		return m, nil

	case movementSavedMsg:
		m.state = stockStateBrowse
		m.form = nil
		m.moving = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("%s %s %d: %d -> %d",
			msg.movement.ProductName, msg.movement.Type, msg.movement.Quantity,
			msg.movement.PreviousQuantity, msg.movement.NewQuantity)

		return m, m.loadProductsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateMove:
		return m.updateMove(msg)
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProductsCmd()
		case "m":
			return m.enterMoveMode()
		case "s":
			m.filterIdx = (m.filterIdx + 1) % len(stockFilters)
			return m, m.loadProductsCmd()
		case "i":
			m.includeInactive = !m.includeInactive
			return m, m.loadProductsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) enterMoveMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return m, nil
	}

	if !m.actor.Can(auth.CapStock) {
		m.status = "You are not allowed to record stock movements."
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(stock.MovementTypes()))
	for _, t := range stock.MovementTypes() {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	m.moving = m.products[idx]
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Movement type").
				Options(options...),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Validate(func(s string) error {
					_, err := parseQuantity(s)
					return err
				}),

			huh.NewInput().
				Key("notes").
				Title("Notes (optional)"),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = stockStateMove
	m.table.Blur()

	return m, m.form.Init()
}

func parseQuantity(s string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || q <= 0 {
		return 0, fmt.Errorf("quantity must be a positive whole number")
	}

	return q, nil
}

func (m StockModel) updateMove(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = stockStateBrowse
			m.form = nil
			m.moving = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.recordCmd()
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	inactive := "hidden"
	if m.includeInactive {
		inactive = "shown"
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [i] Inactive: %s",
		activeStyle(stockFilters[m.filterIdx].label),
		activeStyle(inactive),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == stockStateMove && m.form != nil && m.moving != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Stock movement\n\n%s (stock %s)\n\n%s",
					m.moving.Name, FormatQuantity(m.moving.StockQuantity), m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func statusStyle(s product.StockStatus) string {
	switch s {
	case product.StockOut:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(string(s))
	case product.StockLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(string(s))
	}

	return string(s)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Name,
			p.Category,
			FormatAmount(p.Price),
			FormatQuantity(p.StockQuantity),
			strconv.FormatInt(p.MinStockQuantity, 10),
			statusStyle(p.StockStatus()),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadProductsMsg struct {
	products []*product.Product
	err      error
}

func (m StockModel) loadProductsCmd() tea.Cmd {
	filter := product.ListFilter{Status: stockFilters[m.filterIdx].status}
	if !m.includeInactive {
		filter.Active = new(true)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		products, err := m.productService.List(ctx, filter)

		return loadProductsMsg{products: products, err: err}
	}
}

type movementSavedMsg struct {
	movement *stock.Movement
	err      error
}

func (m StockModel) recordCmd() tea.Cmd {
	p := m.moving
	t := stock.MovementType(m.form.GetString("type"))
	notes := strings.TrimSpace(m.form.GetString("notes"))

	qty, err := parseQuantity(m.form.GetString("quantity"))
	if err != nil {
		return func() tea.Msg { return movementSavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		mv, err := m.workflowService.RecordStockMovement(ctx, workflow.MovementParams{
			ProductID: p.ID,
			Quantity:  qty,
			Type:      t,
			Notes:     notes,
		})

		return movementSavedMsg{movement: mv, err: err}
	}
}
