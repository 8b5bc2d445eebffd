package purchase

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerhttp "github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	stockhttp "github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/importer"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc      *purchase.Service
	workflow *workflow.Service
	importer *importer.Service
}

func NewHandler(svc *purchase.Service, wf *workflow.Service, imp *importer.Service) *Handler {
	return &Handler{svc: svc, workflow: wf, importer: imp}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Post("/import", h.preview)
	r.Post("/import/confirm", h.confirm)
	r.Get("/{id}", h.get)
	r.Post("/{id}/receive", h.receive)
	r.Post("/{id}/pay", h.pay)
	r.Post("/{id}/cancel", h.cancel)
}

type itemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitCost  int64     `json:"unit_cost"`
}

type createPurchaseRequest struct {
	SupplierID    uuid.UUID     `json:"supplier_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Notes         string        `json:"notes"`
	Date          time.Time     `json:"purchase_date"`
	Items         []itemRequest `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	items := make([]purchase.ItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = purchase.ItemParams{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost}
	}

	p, err := h.svc.Create(r.Context(), purchase.CreateParams{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
		Notes:         req.Notes,
		Date:          req.Date,
		Items:         items,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	supplierID, err := respond.OptionalID(r, "supplier_id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	purchases, err := h.svc.List(r.Context(), purchase.ListFilter{
		Range:      rng,
		Status:     purchase.Status(r.URL.Query().Get("status")),
		SupplierID: supplierID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(purchases))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	sum, err := h.svc.Summary(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		Count:       sum.Count,
		Pending:     sum.Pending,
		Partial:     sum.Partial,
		Delivered:   sum.Delivered,
		Cancelled:   sum.Cancelled,
		TotalAmount: sum.TotalAmount,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type receiveLineRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int64     `json:"quantity"`
}

// An empty or absent lines list receives everything outstanding.
type receiveRequest struct {
	Lines []receiveLineRequest `json:"lines"`
}

type receiptResponse struct {
	Purchase  purchaseResponse             `json:"purchase"`
	Movements []stockhttp.MovementResponse `json:"stock_movements"`
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req receiveRequest
	if err := respond.Decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(w, err.Error())
		return
	}

	lines := make([]workflow.ReceiveLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = workflow.ReceiveLine{ItemID: l.ItemID, Quantity: l.Quantity}
	}

	receipt, err := h.workflow.ReceivePurchase(r.Context(), workflow.ReceiveParams{PurchaseID: id, Lines: lines})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, receiptResponse{
		Purchase:  toResponse(receipt.Purchase),
		Movements: stockhttp.ToResponseList(receipt.Movements),
	})
}

type payRequest struct {
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
}

type paymentResponse struct {
	Purchase purchaseResponse          `json:"purchase"`
	Entry    *ledgerhttp.EntryResponse `json:"financial_transaction"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req payRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	payment, err := h.workflow.PayPurchase(r.Context(), workflow.PayParams{
		PurchaseID:    id,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, paymentResponse{
		Purchase: toResponse(payment.Purchase),
		Entry:    ledgerhttp.ToResponse(payment.Entry),
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.workflow.CancelPurchase(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

// preview parses an uploaded supplier file and suggests a product for each
// line. Nothing is stored.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "missing file")
		return
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatSupplierCSV
	}

	p, err := h.importer.Preview(r.Context(), format, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPreviewResponse(p))
}

type confirmLineRequest struct {
	Description string    `json:"description"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	UnitCost    int64     `json:"unit_cost"`
	Remember    bool      `json:"remember"`
}

type confirmRequest struct {
	SupplierID    uuid.UUID            `json:"supplier_id"`
	InvoiceNumber string               `json:"invoice_number"`
	Date          time.Time            `json:"purchase_date"`
	Notes         string               `json:"notes"`
	Lines         []confirmLineRequest `json:"lines"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	lines := make([]importer.ConfirmLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = importer.ConfirmLine{
			Description: l.Description,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			Remember:    l.Remember,
		}
	}

	p, err := h.importer.Confirm(r.Context(), importer.ConfirmParams{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		Notes:         req.Notes,
		Lines:         lines,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}
