package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

// PurchasesModel walks through purchases still waiting for delivery this
// month, one at a time.
type PurchasesModel struct {
	CommonModel
	actor           auth.Actor
	purchaseService *purchase.Service
	workflowService *workflow.Service

	queue   []*purchase.Purchase
	current *purchase.Purchase

	loading    bool
	status     string
	totalCount int
}

func NewPurchasesModel(actor auth.Actor, purchaseSvc *purchase.Service, wf *workflow.Service) PurchasesModel {
	return PurchasesModel{
		actor:           actor,
		purchaseService: purchaseSvc,
		workflowService: wf,
		loading:         true,
	}
}

func (m PurchasesModel) Title() string { return "Pending Deliveries" }

func (m PurchasesModel) ShortHelp() string {
	return "Esc: back | Enter: receive all | p: pay (cash) | c: cancel | s: skip"
}

func (m PurchasesModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m PurchasesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.receiveCmd()
			}
		case "p":
			if m.current != nil {
				return m, m.payCmd()
			}
		case "c":
			if m.current != nil {
				return m, m.cancelCmd()
			}
		case "s":
			return m, m.nextCmd()
		}

	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.purchases
		m.totalCount = len(m.queue)

		return m, m.nextCmd()

	case purchaseDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.current = msg.purchase
		if len(m.queue) > 0 {
			m.queue = m.queue[1:]
		}

	case purchaseActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.done

		if msg.purchase != nil && awaitingDelivery(msg.purchase) {
			m.current = msg.purchase
			return m, nil
		}

		return m, m.nextCmd()
	}

	return m, nil
}

func (m PurchasesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending purchases...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No pending purchases found.\n\n(Esc to back)")
		}

		status := m.status
		if status == "" {
			status = "All done!"
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n(Esc to back)")
	}

	p := m.current

	var lines strings.Builder

	for _, it := range p.Items {
		fmt.Fprintf(&lines, "  %-28s %d/%d  %s\n",
			it.ProductName, it.ReceivedQuantity, it.Quantity, FormatAmount(it.TotalCost))
	}

	info := fmt.Sprintf(
		"Supplier: %s\nDate: %s\nInvoice: %s\nStatus: %s | Payment: %s\nTotal: %s\n\n%s",
		p.SupplierName, FormatDate(p.Date), p.InvoiceNumber,
		p.Status, p.PaymentStatus, FormatAmount(p.Total), lines.String(),
	)

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("Pending Purchase (%d remaining)\n\n%s%s",
			len(m.queue)+1, info, statusLine),
	)
}

func awaitingDelivery(p *purchase.Purchase) bool {
	return p.Status == purchase.StatusPending || p.Status == purchase.StatusPartial
}

// Messages

type loadPendingMsg struct {
	purchases []*purchase.Purchase
	err       error
}

func (m PurchasesModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		var pending []*purchase.Purchase

		for _, status := range []purchase.Status{purchase.StatusPending, purchase.StatusPartial} {
			ps, err := m.purchaseService.List(ctx, purchase.ListFilter{Status: status})
			if err != nil {
				return loadPendingMsg{err: err}
			}

			pending = append(pending, ps...)
		}

		return loadPendingMsg{purchases: pending}
	}
}

type purchaseDetailMsg struct {
	purchase *purchase.Purchase
	err      error
}

// nextCmd loads the head of the queue with its items.
func (m PurchasesModel) nextCmd() tea.Cmd {
	if len(m.queue) == 0 {
		return func() tea.Msg { return purchaseDetailMsg{} }
	}

	id := m.queue[0].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		p, err := m.purchaseService.Get(ctx, id)

		return purchaseDetailMsg{purchase: p, err: err}
	}
}

type purchaseActionMsg struct {
	purchase *purchase.Purchase
	done     string
	err      error
}

func (m PurchasesModel) receiveCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		receipt, err := m.workflowService.ReceivePurchase(ctx, workflow.ReceiveParams{PurchaseID: id})
		if err != nil {
			return purchaseActionMsg{err: err}
		}

		return purchaseActionMsg{
			purchase: receipt.Purchase,
			done:     fmt.Sprintf("Received %d line(s).", len(receipt.Movements)),
		}
	}
}

func (m PurchasesModel) payCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		payment, err := m.workflowService.PayPurchase(ctx, workflow.PayParams{
			PurchaseID:    id,
			PaymentMethod: ledger.PaymentCash,
		})
		if err != nil {
			return purchaseActionMsg{err: err}
		}

		return purchaseActionMsg{purchase: payment.Purchase, done: "Paid."}
	}
}

func (m PurchasesModel) cancelCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		p, err := m.workflowService.CancelPurchase(ctx, id)
		if err != nil {
			return purchaseActionMsg{err: err}
		}

		return purchaseActionMsg{purchase: p, done: "Cancelled."}
	}
}
