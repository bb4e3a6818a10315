package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chainvoice/internal/chain"
	"chainvoice/internal/domain"
	"chainvoice/internal/middleware"
	"chainvoice/internal/service"
	"chainvoice/pkg/pagination"
	"chainvoice/pkg/response"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	documents      *service.DocumentService
	reader         chain.Reader
	secret         []byte
}

func NewInvoiceHandler(invoiceService service.InvoiceService, documents *service.DocumentService, reader chain.Reader, secret []byte) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		documents:      documents,
		reader:         reader,
		secret:         secret,
	}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("", middleware.RequireWallet(h.secret), h.CreateInvoice)
		invoices.POST("/validate", middleware.RequireWallet(h.secret), h.ValidateDraft)
		invoices.GET("", middleware.RequireWallet(h.secret), h.ListInvoices)
		// Payment-link targets are public: the payer follows a shared
		// URL before any session exists.
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/pdf", h.GetInvoicePDF)
	}
}

// CreateInvoice creates a new invoice owned by the connected wallet
// @Summary      Create invoice
// @Description  Validates the draft, submits the creation to the ledger and returns the stored invoice
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Invoice draft"
// @Success      201      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), middleware.Wallet(c), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, response.ValidationError(http.StatusUnprocessableEntity, vErr.Result.Errors))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// ValidateDraft dry-runs draft validation for live form feedback
// @Summary      Validate invoice draft
// @Description  Returns the field-level validation result without submitting anything
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Invoice draft"
// @Success      200      {object}  response.Response{data=domain.ValidationResult}
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/validate [post]
func (h *InvoiceHandler) ValidateDraft(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.invoiceService.ValidateDraft(req)))
}

// ListInvoices returns the connected wallet's invoices, newest first
// @Summary      List invoices
// @Description  Paginated list of the connected wallet's invoices with derived status
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := pagination.Parse(c)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), middleware.Wallet(c), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetInvoice returns a single invoice by id
// @Summary      Get invoice
// @Description  Returns the invoice behind a payment link, with status derived at read time
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// GetInvoicePDF renders an invoice as a PDF document
// @Summary      Download invoice PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetInvoicePDF(c *gin.Context) {
	id := c.Param("id")
	invoice, err := h.reader.ReadInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	pdf, err := h.documents.GenerateInvoicePDF(invoice, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", invoice.ID[:10]))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
