package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/admin/travel-options", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(log))

		r.Get("/", adminHandler.ListTravelOptions)
		r.Post("/", adminHandler.CreateTravelOption)
		r.Put("/{travel_id}/", adminHandler.UpdateTravelOption)
		r.Put("/{travel_id}/detail/", adminHandler.UpsertDetail)
		r.Post("/{travel_id}/images/", adminHandler.AddImage)
		r.Put("/{travel_id}/images/{image_id}/", adminHandler.UpdateImage)
		r.Delete("/{travel_id}/images/{image_id}/", adminHandler.DeleteImage)
	})
}
