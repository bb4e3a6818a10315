package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"chainvoice/internal/chain"
	"chainvoice/pkg/response"
)

// AuthHandler issues wallet sessions. A session binds an API token to
// one account address; the connected wallet is the identity provider,
// so there is no password step.
type AuthHandler struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthHandler(secret []byte) *AuthHandler {
	return &AuthHandler{secret: secret, ttl: 24 * time.Hour}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/session", h.CreateSession)
	}
}

type sessionRequest struct {
	Address string `json:"address" binding:"required"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt string `json:"expires_at"`
}

// CreateSession issues a session token for a wallet address
// @Summary      Create wallet session
// @Description  Issues a bearer token bound to the given account address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      sessionRequest  true  "Wallet address"
// @Success      201      {object}  response.Response{data=sessionResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if !chain.IsAddress(req.Address) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid account address"))
		return
	}
	address := chain.NormalizeAddress(req.Address)

	now := time.Now()
	expiresAt := now.Add(h.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": address,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to issue session token"))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sessionResponse{
		Token:     signed,
		Address:   address,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}))
}
