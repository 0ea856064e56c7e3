package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/samuelboada21/PruebaCVisual/internal/auth"
	"github.com/samuelboada21/PruebaCVisual/internal/config"
	"github.com/samuelboada21/PruebaCVisual/internal/http/handlers"
	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/payments"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/users"
)

// NewRouter is the composition root: every service gets its dependencies here
// and nothing reads configuration after this point.
func NewRouter(logger *slog.Logger, cfg *config.Config, db *gorm.DB) *gin.Engine {
	tokenCfg := auth.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	}

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	txlog := payments.NewTxLog(cfg.TxLogDir)

	userSvc := users.NewService(users.NewRepo(db), tokenCfg, logger)

	paymentRepo := payments.NewRepo(db)
	checkoutSvc := payments.NewCheckoutService(gateway, logger)
	webhookSvc := payments.NewWebhookService(gateway, paymentRepo, txlog, logger)
	querySvc := payments.NewQueryService(paymentRepo)

	register := handlers.NewRegisterHandler(userSvc)
	login := handlers.NewLoginHandler(userSvc)
	checkout := handlers.NewCheckoutHandler(checkoutSvc)
	webhook := handlers.NewWebhookHandler(logger, webhookSvc)
	paymentsH := handlers.NewPaymentsHandler(querySvc)

	r := gin.New()
	// ErrorHandler must run outside Recovery: a panic unwinds past the
	// handler chain, so the middleware converting recorded errors into
	// responses has to regain control after the recover.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
	)

	r.POST("/registro", register.Post)
	r.POST("/login", login.Post)

	// gateway-signed, no bearer token
	r.POST("/webhook/payments", webhook.Handle)

	authed := r.Group("", middleware.RequireAuth(tokenCfg))
	authed.POST("/create-checkout-session", checkout.Post)
	authed.GET("/webhook/payments", paymentsH.List)
	authed.GET("/webhook/payments/:id", paymentsH.GetByID)

	return r
}
