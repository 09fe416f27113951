package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"domain-agent.backend/internal/interfaces/http/handlers"
	"domain-agent.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	domainHandler  *handlers.DomainHandler
	paymentHandler *handlers.PaymentHandler
	aiHandler      *handlers.AIHandler
	userHandler    *handlers.UserHandler
	authMiddleware gin.HandlerFunc
	rateLimit      gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "domain-agent-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", middleware.MetricsHandler())
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	api.Use(d.rateLimit)
	{
		// Auth routes (public, except profile)
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.PUT("/profile", d.authMiddleware, d.authHandler.UpdateProfile)
		}

		// Domain routes (search and availability are public)
		domains := api.Group("/domains")
		{
			domains.GET("/search", d.domainHandler.Search)
			domains.GET("/check/:domain", d.domainHandler.Check)
			domains.GET("/:domain/details", d.domainHandler.Details)

			domains.GET("", d.authMiddleware, d.domainHandler.List)
			domains.POST("/purchase", d.authMiddleware, d.domainHandler.Purchase)
			domains.POST("/renew/:domainId", d.authMiddleware, d.domainHandler.Renew)
			domains.POST("/transfer", d.authMiddleware, d.domainHandler.Transfer)
			domains.GET("/dns/:domainId", d.authMiddleware, d.domainHandler.GetDNS)
			domains.PUT("/dns/:domainId", d.authMiddleware, d.domainHandler.UpdateDNS)
		}

		// Payment routes (webhook carries its own signature check)
		payments := api.Group("/payments")
		{
			payments.POST("/webhook", d.paymentHandler.Webhook)

			payments.POST("/create-intent", d.authMiddleware, d.paymentHandler.CreateIntent)
			payments.POST("/confirm-payment", d.authMiddleware, d.paymentHandler.ConfirmPayment)
			payments.POST("/refund/:transactionId", d.authMiddleware, d.paymentHandler.Refund)
			payments.GET("/history", d.authMiddleware, d.paymentHandler.History)
			payments.GET("/methods", d.authMiddleware, d.paymentHandler.PaymentMethods)
		}

		// AI routes (suggestions and analysis are public)
		ai := api.Group("/ai")
		{
			ai.POST("/suggest-domains", d.aiHandler.SuggestDomains)
			ai.POST("/analyze-domain", d.aiHandler.AnalyzeDomain)

			ai.POST("/chat", d.authMiddleware, d.aiHandler.Chat)
			ai.GET("/conversations", d.authMiddleware, d.aiHandler.Conversations)
			ai.POST("/business-names", d.authMiddleware, d.aiHandler.BusinessNames)
		}

		// User routes (all protected)
		users := api.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/profile", d.userHandler.Profile)
			users.PUT("/preferences", d.userHandler.UpdatePreferences)
			users.DELETE("/account", d.userHandler.DeleteAccount)
			users.GET("/stats", d.userHandler.Stats)
		}
	}
}
