package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetup-backend/internal/auth/delivery"
	authUsecase "meetup-backend/internal/auth/usecase"
	reservationDelivery "meetup-backend/internal/reservation/delivery"
	resultDelivery "meetup-backend/internal/result/delivery"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, reservationHandler *reservationDelivery.ReservationHandler, resultHandler *resultDelivery.ResultHandler) {
	authHandler := delivery.NewAuthHandler(authUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/device", authHandler.DeviceSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.PUT("/me", delivery.AuthMiddleware(authUc), authHandler.UpdateProfile)
		}

		// Push token routes (protected)
		push := api.Group("/push")
		push.Use(delivery.AuthMiddleware(authUc))
		{
			push.POST("/register", authHandler.RegisterPushToken)
			push.DELETE("/:token", authHandler.UnregisterPushToken)
		}

		// Reservation routes (protected)
		reservations := api.Group("/reservations")
		reservations.Use(delivery.AuthMiddleware(authUc))
		{
			reservations.GET("", reservationHandler.List)
			reservations.POST("", reservationHandler.Create)
			reservations.GET("/joined", reservationHandler.ListJoined)
			reservations.GET("/:id", reservationHandler.GetByID)
			reservations.PUT("/:id", reservationHandler.Update)
			reservations.DELETE("/:id", reservationHandler.Cancel)
			reservations.POST("/:id/join", reservationHandler.Join)
			reservations.POST("/:id/leave", reservationHandler.Leave)
			reservations.GET("/:id/participants", reservationHandler.Participants)
			reservations.POST("/:id/results", resultHandler.Submit)
			reservations.GET("/:id/results", resultHandler.List)
		}
	}
}
