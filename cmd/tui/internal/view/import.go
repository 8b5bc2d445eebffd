package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/importer"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateSupplier
	importStateResult
)

// ImportModel reads a supplier invoice, lets the user pick the lines whose
// product was recognised and turns them into a pending purchase.
type ImportModel struct {
	CommonModel
	actor         auth.Actor
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	preview  *importer.Preview
	lineList list.Model
	selected map[int]bool
	form     *huh.Form

	status string
	err    error
}

func NewImportModel(actor auth.Actor, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		actor:         actor,
		importService: impSvc,
		filePicker:    fp,
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Supplier Invoice" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "Space: toggle | a: all matched | n: none | Enter: confirm | Esc: cancel"
	case importStateSupplier:
		return "Enter: create purchase | Esc: back to lines"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateReview:
			return m.updateReview(msg)
		case importStateSupplier:
			return m.updateSupplier(msg)
		}

	case previewResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.preview = msg.preview
		m.selected = make(map[int]bool)
		m.state = importStateReview

		items := make([]list.Item, len(msg.preview.Lines))
		for i, l := range msg.preview.Lines {
			items[i] = lineItem{line: l, index: i}
			m.selected[i] = l.Suggestion != nil
		}

		delegate := lineDelegate{selected: &m.selected}
		m.lineList = list.New(items, delegate, 90, 20)
		m.lineList.Title = fmt.Sprintf("Invoice %s (%s)", msg.preview.Invoice.Number, msg.preview.Invoice.Profile)
		m.lineList.SetShowStatusBar(false)
		m.lineList.SetFilteringEnabled(false)
		m.lineList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Created purchase %s with %d line(s), total %s.",
			msg.purchaseID.String()[:8], msg.lines, FormatAmount(msg.total))

		return m, nil
	}

	if m.state == importStateSupplier {
		return m.updateSupplier(msg)
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateReview, importStateResult:
		m.state = importStateFilePick
		m.preview = nil
		m.err = nil
		m.status = ""

		return m, nil
	case importStateSupplier:
		m.state = importStateReview
		m.form = nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.lineList.Index()
		if m.preview.Lines[idx].Suggestion != nil {
			m.selected[idx] = !m.selected[idx]
		}

		return m, nil
	case "a":
		for i, l := range m.preview.Lines {
			m.selected[i] = l.Suggestion != nil
		}

		return m, nil
	case "n":
		for i := range m.preview.Lines {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		if m.selectedCount() == 0 {
			return m, nil
		}

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("supplier").
					Title("Supplier ID").
					Validate(func(s string) error {
						if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
							return fmt.Errorf("not a valid supplier id")
						}
						return nil
					}),

				huh.NewConfirm().
					Key("remember").
					Title("Remember name matches for next time?").
					Affirmative("Yes").
					Negative("No"),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = importStateSupplier

		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.lineList, cmd = m.lineList.Update(msg)

	return m, cmd
}

func (m ImportModel) updateSupplier(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	supplierID, err := uuid.Parse(strings.TrimSpace(m.form.GetString("supplier")))
	if err != nil {
		m.state = importStateResult
		m.err = err
		m.status = fmt.Sprintf("Error: %v", err)

		return m, nil
	}

	m.state = importStateParsing
	m.status = "Creating purchase..."

	return m, m.confirmCmd(supplierID, m.form.GetBool("remember"))
}

func (m ImportModel) selectedCount() int {
	n := 0

	for _, ok := range m.selected {
		if ok {
			n++
		}
	}

	return n
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select invoice file:\n\n%s", m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		footer := fmt.Sprintf("\n%d of %d line(s) selected, invoice total %s",
			m.selectedCount(), len(m.preview.Lines), FormatAmount(m.preview.Invoice.Total()))

		return lipgloss.NewStyle().Padding(1).Render(m.lineList.View() + footer)
	case importStateSupplier:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type previewResultMsg struct {
	preview *importer.Preview
	err     error
}

type confirmResultMsg struct {
	purchaseID uuid.UUID
	lines      int
	total      int64
	err        error
}

func (m ImportModel) importCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(auth.WithActor(context.Background(), m.actor), importTimeout)
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := m.importCtx()
		defer cancel()

		preview, err := m.importService.Preview(ctx, importer.FormatSupplierCSV, f)

		return previewResultMsg{preview: preview, err: err}
	}
}

func (m ImportModel) confirmCmd(supplierID uuid.UUID, remember bool) tea.Cmd {
	preview := m.preview
	selected := m.selected

	return func() tea.Msg {
		params := importer.ConfirmParams{
			SupplierID:    supplierID,
			InvoiceNumber: preview.Invoice.Number,
		}

		if preview.Invoice.Date != nil {
			params.Date = *preview.Invoice.Date
		}

		for i, l := range preview.Lines {
			if !selected[i] || l.Suggestion == nil {
				continue
			}

			params.Lines = append(params.Lines, importer.ConfirmLine{
				Description: l.Description,
				ProductID:   l.Suggestion.ProductID,
				Quantity:    l.Quantity,
				UnitCost:    l.UnitCost,
				Remember:    remember && l.Suggestion.Source == matching.SourceName,
			})
		}

		ctx, cancel := m.importCtx()
		defer cancel()

		p, err := m.importService.Confirm(ctx, params)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{purchaseID: p.ID, lines: len(params.Lines), total: p.Total}
	}
}

// Invoice line list item

type lineItem struct {
	line  importer.PreviewLine
	index int
}

func (i lineItem) Title() string       { return "" }
func (i lineItem) Description() string { return "" }
func (i lineItem) FilterValue() string { return i.line.Description }

// Invoice line list delegate

type lineDelegate struct {
	selected *map[int]bool
}

func (d lineDelegate) Height() int                             { return 2 }
func (d lineDelegate) Spacing() int                            { return 0 }
func (d lineDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d lineDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(lineItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	l := item.line

	line1 := fmt.Sprintf("%s%s %3d  %-30s %4d x %s = %s",
		cursor, checkbox, l.Row, l.Description, l.Quantity,
		FormatAmount(l.UnitCost), FormatAmount(l.TotalCost))

	match := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("no matching product")
	if l.Suggestion != nil {
		match = fmt.Sprintf("-> %s (%s)", l.Suggestion.ProductName, l.Suggestion.Source)
	}

	fmt.Fprintf(w, "%s\n        %s\n", line1, lipgloss.NewStyle().Faint(true).Render(match))
}
