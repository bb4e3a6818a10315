package main

import (
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "chainvoice/api/swagger" // swagger docs
	"chainvoice/internal/chain"
	"chainvoice/internal/config"
	"chainvoice/internal/database"
	"chainvoice/internal/handler"
	"chainvoice/internal/logger"
	"chainvoice/internal/middleware"
	"chainvoice/internal/repository"
	"chainvoice/internal/service"
	"chainvoice/internal/websocket"
)

// @title           Chainvoice API
// @version         1.0
// @description     Invoice creation and stablecoin payment API over a simulated on-chain ledger.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	// Transaction event hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Ledger (the contract boundary) over repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	txManager := repository.NewTransactionManager(db)
	ledger := chain.NewLedger(invoiceRepo, tokenRepo, txRepo, txManager, wsHub, cfg.ContractAddress)

	// Services
	invoiceService := service.NewInvoiceService(ledger, ledger, cfg.BaseURL)
	paymentService := service.NewPaymentService(ledger, ledger, invoiceService, ledger.ContractAddress())
	tokenService, err := service.NewTokenService(ledger, ledger, ledger.ContractAddress(), cfg.FaucetAmount)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}
	documents := service.NewDocumentService()

	// Handlers
	secret := []byte(cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(secret)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, documents, ledger, secret)
	paymentHandler := handler.NewPaymentHandler(paymentService, secret)
	tokenHandler := handler.NewTokenHandler(tokenService, secret)

	// Router
	router := gin.New()
	router.Use(middleware.RequestLogger(logger.WithComponent("http")))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Transaction event stream
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	// API routing
	authHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	tokenHandler.RegisterRoutes(router.Group(""))

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
