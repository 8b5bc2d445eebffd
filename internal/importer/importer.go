// Package importer turns supplier invoice files into purchases.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/balcao/internal/importer/supplier"
)

type Format string

const (
	FormatSupplierCSV Format = "supplier_csv"
)

type Parser interface {
	Parse(r io.Reader) (*supplier.Invoice, error)
}
