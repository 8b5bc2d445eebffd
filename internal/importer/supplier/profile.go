package supplier

// costMode determines how a line's cost is read.
type costMode int

const (
	// costUnit means a unit cost column; the line total is quantity times it.
	costUnit costMode = iota
	// costTotal means only the line total is printed; the unit cost is
	// derived from it.
	costTotal
)

// Profile describes the column layout of one supplier export format.
// Adding a format is adding a Profile to profiles.
type Profile struct {
	Name     string
	CodeCol  string
	DescCol  string
	QtyCol   string
	CostMode costMode
	CostCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DescCol, p.QtyCol, p.CostCol}
	if p.CodeCol != "" {
		cols = append(cols, p.CodeCol)
	}

	return cols
}

// profiles are tried in order, so more specific layouts come first.
var profiles = []Profile{
	{
		Name:     "nfe",
		CodeCol:  "Código",
		DescCol:  "Descrição",
		QtyCol:   "Quantidade",
		CostMode: costUnit,
		CostCol:  "Valor unitário",
	},
	{
		Name:     "pedido",
		DescCol:  "Produto",
		QtyCol:   "Qtd",
		CostMode: costUnit,
		CostCol:  "Preço unit.",
	},
	{
		Name:     "resumo",
		DescCol:  "Descrição",
		QtyCol:   "Qtde",
		CostMode: costTotal,
		CostCol:  "Total",
	},
}
