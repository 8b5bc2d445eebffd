package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

type summaryState int

const (
	summaryStateTimeframe summaryState = iota
	summaryStateResult
)

// SummaryModel shows income, expense and balance for a period, broken down
// by category.
type SummaryModel struct {
	CommonModel
	actor         auth.Actor
	ledgerService *ledger.Service

	state           summaryState
	timeframePicker TimeframePicker

	rng     period.Range
	summary ledger.Summary
	totals  []ledger.CategoryTotal
	loading bool
	err     error
}

func NewSummaryModel(actor auth.Actor, ledgerSvc *ledger.Service) SummaryModel {
	return SummaryModel{
		actor:           actor,
		ledgerService:   ledgerSvc,
		timeframePicker: NewTimeframePicker(TimeframeToday),
	}
}

func (m SummaryModel) Title() string { return "Financial Summary" }

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStateTimeframe {
		return "Esc: back | Enter: select"
	}

	return "Esc: change period | r: refresh"
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = msg.Range
		m.state = summaryStateResult
		m.loading = true

		return m, m.loadSummaryCmd()

	case loadSummaryMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.totals = msg.totals

		return m, nil
	}

	if m.state == summaryStateTimeframe {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = summaryStateTimeframe
			m.timeframePicker.Reset()
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		}
	}

	return m, nil
}

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle   = lipgloss.NewStyle().Width(16)
)

func (m SummaryModel) View() string {
	if m.state == summaryStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	balance := incomeStyle
	if m.summary.Balance < 0 {
		balance = expenseStyle
	}

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(m.rng.String()) + "\n\n")
	sb.WriteString(labelStyle.Render("Income") + incomeStyle.Render(FormatAmount(m.summary.Income)) + "\n")
	sb.WriteString(labelStyle.Render("Expense") + expenseStyle.Render(FormatAmount(m.summary.Expense)) + "\n")
	sb.WriteString(labelStyle.Render("Balance") + balance.Render(FormatAmount(m.summary.Balance)) + "\n")
	sb.WriteString(labelStyle.Render("Transactions") + fmt.Sprintf("%d", m.summary.Count) + "\n")

	if len(m.totals) > 0 {
		sb.WriteString("\nBy category\n\n")

		for _, t := range m.totals {
			style := incomeStyle
			if t.Type == ledger.TypeExpense {
				style = expenseStyle
			}

			fmt.Fprintf(&sb, "%s %s  (%d)\n",
				labelStyle.Render(t.Category), style.Render(FormatAmount(t.Total)), t.Count)
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

type loadSummaryMsg struct {
	summary ledger.Summary
	totals  []ledger.CategoryTotal
	err     error
}

func (m SummaryModel) loadSummaryCmd() tea.Cmd {
	rng := m.rng

	return func() tea.Msg {
		ctx, cancel := DbCtx(m.actor)
		defer cancel()

		sum, err := m.ledgerService.Summarize(ctx, rng)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		totals, err := m.ledgerService.CategoryTotals(ctx, rng)

		return loadSummaryMsg{summary: sum, totals: totals, err: err}
	}
}
