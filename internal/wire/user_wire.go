package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/profile/", userHandler.GetProfile)
		r.Post("/profile/", userHandler.UpdateProfile)
		r.Get("/profile/edit/", userHandler.GetProfile)
		r.Post("/profile/edit/", userHandler.UpdateProfile)
	})
}
