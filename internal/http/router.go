package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig mirrors the http section of the application config.
type RouterConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	// AllowRemote disables the loopback guard, for deployments behind a reverse proxy.
	AllowRemote bool `mapstructure:"allowRemote"`
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	origins := uniqueOrigins(cfg.AllowedOrigins)
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}))

	if !cfg.AllowRemote {
		r.Use(loopbackOnly())
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/session", h.SessionStatus)
		api.POST("/session/connect", h.Connect)
		api.POST("/session/disconnect", h.Disconnect)

		api.GET("/wallet/accounts", h.WalletAccounts)
		api.POST("/wallet/accounts", h.AddWalletAccount)
		api.POST("/wallet/select", h.SelectWalletAccount)
		api.POST("/wallet/revoke", h.RevokeWallet)

		api.GET("/networks", h.Networks)
		api.POST("/networks/switch", h.SwitchNetwork)

		api.POST("/documents", h.UploadDocument)
		api.GET("/documents/:hash", h.DownloadDocument)

		api.POST("/credentials", h.MintCredential)
		api.GET("/credentials/:id", h.GetCredential)
		api.POST("/credentials/:id/revoke", h.RevokeCredential)
		api.GET("/owners/:address/credentials", h.CredentialsByOwner)

		api.GET("/transactions", h.Transactions)
		api.GET("/transactions/:hash", h.Transaction)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
