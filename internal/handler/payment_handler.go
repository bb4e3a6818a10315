package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chainvoice/internal/domain"
	"chainvoice/internal/middleware"
	"chainvoice/internal/service"
	"chainvoice/pkg/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	secret         []byte
}

func NewPaymentHandler(paymentService service.PaymentService, secret []byte) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		secret:         secret,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("/:id/readiness", middleware.RequireWallet(h.secret), h.GetReadiness)
		invoices.POST("/:id/approve", middleware.RequireWallet(h.secret), h.Approve)
		invoices.POST("/:id/pay", middleware.RequireWallet(h.secret), h.Pay)
	}

	transactions := router.Group("/api/transactions")
	{
		transactions.GET("/:hash", h.GetTransaction)
	}
}

// GetReadiness computes whether the connected wallet can pay an invoice
// @Summary      Get payment readiness
// @Description  Evaluates balance and allowance against the invoice amount and returns the initial flow step
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.ReadinessResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/readiness [get]
func (h *PaymentHandler) GetReadiness(c *gin.Context) {
	readiness, err := h.paymentService.GetReadiness(c.Request.Context(), middleware.Wallet(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, readiness))
}

// Approve submits a spending approval for the invoice amount
// @Summary      Approve spending
// @Description  Approves the settlement contract to spend the invoice amount on behalf of the connected wallet
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.TransactionResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/approve [post]
func (h *PaymentHandler) Approve(c *gin.Context) {
	result, err := h.paymentService.Approve(c.Request.Context(), middleware.Wallet(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Pay settles an invoice from the connected wallet
// @Summary      Pay invoice
// @Description  Re-checks readiness, submits the payment and returns the settled invoice
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.PaymentResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/invoices/{id}/pay [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	result, err := h.paymentService.Pay(c.Request.Context(), middleware.Wallet(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetTransaction returns the receipt of a submitted transaction
// @Summary      Get transaction receipt
// @Tags         payments
// @Produce      json
// @Param        hash  path      string  true  "Transaction hash"
// @Success      200   {object}  response.Response{data=chain.Receipt}
// @Failure      404   {object}  response.Response
// @Router       /api/transactions/{hash} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	receipt, err := h.paymentService.GetTransaction(c.Request.Context(), c.Param("hash"))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Transaction not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}

func (h *PaymentHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
	case errors.Is(err, domain.ErrInvoiceAlreadyPaid):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "Invoice is already paid"))
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Insufficient balance"))
	case errors.Is(err, domain.ErrInsufficientAllowance):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Insufficient allowance; approval required"))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	}
}
