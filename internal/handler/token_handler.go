package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chainvoice/internal/middleware"
	"chainvoice/internal/service"
	"chainvoice/pkg/response"
)

type TokenHandler struct {
	tokenService service.TokenService
	secret       []byte
}

func NewTokenHandler(tokenService service.TokenService, secret []byte) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		secret:       secret,
	}
}

func (h *TokenHandler) RegisterRoutes(router *gin.RouterGroup) {
	tokens := router.Group("/api/token")
	{
		tokens.GET("", h.GetInfo)
		tokens.GET("/balance", middleware.RequireWallet(h.secret), h.GetBalance)
		tokens.GET("/allowance", middleware.RequireWallet(h.secret), h.GetAllowance)
		tokens.POST("/faucet", middleware.RequireWallet(h.secret), h.Faucet)
	}
}

// GetInfo returns settlement token metadata
// @Summary      Token info
// @Tags         token
// @Produce      json
// @Success      200  {object}  response.Response{data=service.TokenInfoResponse}
// @Router       /api/token [get]
func (h *TokenHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.tokenService.Info()))
}

// GetBalance returns the connected wallet's token balance
// @Summary      Token balance
// @Tags         token
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BalanceResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/token/balance [get]
func (h *TokenHandler) GetBalance(c *gin.Context) {
	balance, err := h.tokenService.Balance(c.Request.Context(), middleware.Wallet(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, balance))
}

// GetAllowance returns the connected wallet's allowance toward the settlement contract
// @Summary      Token allowance
// @Tags         token
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.AllowanceResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/token/allowance [get]
func (h *TokenHandler) GetAllowance(c *gin.Context) {
	allowance, err := h.tokenService.Allowance(c.Request.Context(), middleware.Wallet(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, allowance))
}

// Faucet mints dev tokens to the connected wallet
// @Summary      Dev faucet
// @Description  Mints the configured faucet amount to the connected wallet on the simulated ledger
// @Tags         token
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.FaucetResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/token/faucet [post]
func (h *TokenHandler) Faucet(c *gin.Context) {
	result, err := h.tokenService.Faucet(c.Request.Context(), middleware.Wallet(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
