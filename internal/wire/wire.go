package wire

import (
	"net/http"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/event"
	"travel-booking/internal/seathold"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(
	repo *repository.Repository,
	gw usecase.PaymentGateway,
	holder seathold.Holder,
	publisher event.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, gw, holder, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	wireCatalog(r, handler.Catalog)
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)
	wireAdmin(r, handler.Admin, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
