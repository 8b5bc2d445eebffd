package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/balcao/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	authStore "github.com/MrJamesThe3rd/balcao/internal/auth/store"
	"github.com/MrJamesThe3rd/balcao/internal/config"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/importer"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/balcao/internal/ledger/store"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/balcao/internal/matching/store"
	"github.com/MrJamesThe3rd/balcao/internal/metrics"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	productStore "github.com/MrJamesThe3rd/balcao/internal/product/store"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	purchaseStore "github.com/MrJamesThe3rd/balcao/internal/purchase/store"
	"github.com/MrJamesThe3rd/balcao/internal/report"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	stockStore "github.com/MrJamesThe3rd/balcao/internal/stock/store"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
	workflowStore "github.com/MrJamesThe3rd/balcao/internal/workflow/store"
)

type services struct {
	auth     *auth.Service
	product  *product.Service
	stock    *stock.Service
	purchase *purchase.Service
	ledger   *ledger.Service
	importer *importer.Service
	report   *report.Service
	workflow *workflow.Service
}

// menuEntry is a screen reachable from the menu. Entries whose capability
// the employee lacks are not listed.
type menuEntry struct {
	key   string
	label string
	need  auth.Capability
	open  func(auth.Actor, services) view.View
}

var menu = []menuEntry{
	{"1", "Stock", auth.CapStock, func(a auth.Actor, s services) view.View {
		return view.NewStockModel(a, s.product, s.workflow)
	}},
	{"2", "Stock Movements", auth.CapStock, func(a auth.Actor, s services) view.View {
		return view.NewMovementsModel(a, s.stock)
	}},
	{"3", "Financial Summary", auth.CapFinancial, func(a auth.Actor, s services) view.View {
		return view.NewSummaryModel(a, s.ledger)
	}},
	{"4", "Export Ledger", auth.CapFinancial, func(a auth.Actor, s services) view.View {
		return view.NewExportModel(a, s.report, s.ledger)
	}},
	{"5", "Pending Deliveries", auth.CapPurchases, func(a auth.Actor, s services) view.View {
		return view.NewPurchasesModel(a, s.purchase, s.workflow)
	}},
	{"6", "Import Supplier Invoice", auth.CapPurchases, func(a auth.Actor, s services) view.View {
		return view.NewImportModel(a, s.importer)
	}},
}

type model struct {
	services services

	actor  *auth.Actor
	active view.View // nil while the menu is shown
	width  int
	height int
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// stdout belongs to the terminal UI.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry(), cfg.Metrics.Prefix)

	purchaseSvc := purchase.NewService(purchaseStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db))

	svc := services{
		auth:     auth.NewService(authStore.New(db), auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)),
		product:  product.NewService(productStore.New(db)),
		stock:    stock.NewService(stockStore.New(db)),
		purchase: purchaseSvc,
		ledger:   ledgerSvc,
		importer: importer.NewService(matching.NewService(matchingStore.New(db)), purchaseSvc),
		report:   report.NewService(ledgerSvc),
		workflow: workflow.NewService(workflowStore.New(db), m, logger),
	}

	return model{
		services: svc,
		active:   view.NewLoginModel(svc.auth),
	}
}

func (m model) Init() tea.Cmd {
	return m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			return m.updateMenu(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case view.LoggedInMsg:
		m.actor = &msg.Actor
		m.active = nil

		return m, nil

	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	newModel, cmd := m.active.Update(msg)
	m.active = newModel.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		m.actor = nil
		m.active = view.NewLoginModel(m.services.auth)

		return m, m.active.Init()
	}

	for _, e := range m.entries() {
		if e.key != msg.String() {
			continue
		}

		m.active = e.open(*m.actor, m.services)

		cmd := m.active.Init()
		if m.width == 0 {
			return m, cmd
		}

		size := func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} }

		return m, tea.Batch(cmd, size)
	}

	return m, nil
}

func (m model) entries() []menuEntry {
	if m.actor == nil {
		return nil
	}

	var out []menuEntry

	for _, e := range menu {
		if m.actor.Can(e.need) {
			out = append(out, e)
		}
	}

	return out
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.active != nil {
		header := titleStyle.Render("Balcão | " + m.active.Title())

		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Padding(1, 2, 0).Render(header),
			m.active.View(),
			lipgloss.NewStyle().PaddingLeft(2).Render(helpStyle.Render(m.active.ShortHelp())),
		)
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Balcão") + "\n")
	fmt.Fprintf(&sb, "Logged in as %s (%s)\n\n", m.actor.Name, m.actor.Role)

	entries := m.entries()
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s. %s\n", e.key, e.label)
	}

	if len(entries) == 0 {
		sb.WriteString("Nothing available for your role here.\n")
	}

	sb.WriteString("\nl. Log out\nq. Quit")

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
