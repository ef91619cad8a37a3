package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"

	_ "github.com/RusoMDK/Tienda-Virtual-sub002/docs"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/rate/handler"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Post("/api/v1/rates/refresh", rateHandler.Refresh)
	router.Post("/api/v1/rates/override", rateHandler.Override)
	router.Get("/api/v1/rates", rateHandler.GetPublicRates)
	router.Get("/api/v1/rates/all", rateHandler.GetAllRates)
	router.Get("/api/v1/rates/supported", rateHandler.GetSupportedCodes)
	router.Get("/api/v1/rates/convert", rateHandler.Convert)
	return router
}
