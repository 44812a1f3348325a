package api

import (
	"github.com/gin-gonic/gin"

	authUsecase "meetup-backend/internal/auth/usecase"
	reservationDelivery "meetup-backend/internal/reservation/delivery"
	reservationUsecase "meetup-backend/internal/reservation/usecase"
	resultDelivery "meetup-backend/internal/result/delivery"
	resultUsecase "meetup-backend/internal/result/usecase"
)

type Handler struct {
	authUsecase        authUsecase.AuthUsecase
	reservationHandler *reservationDelivery.ReservationHandler
	resultHandler      *resultDelivery.ResultHandler
}

func NewHandler(authUc authUsecase.AuthUsecase, reservationUc reservationUsecase.ReservationUsecase, resultUc resultUsecase.ResultUsecase) *Handler {
	return &Handler{
		authUsecase:        authUc,
		reservationHandler: reservationDelivery.NewReservationHandler(reservationUc),
		resultHandler:      resultDelivery.NewResultHandler(resultUc),
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.reservationHandler, h.resultHandler)

	return r.Run(addr)
}
