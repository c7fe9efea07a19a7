package adaptor

import (
	"net/http"
	"net/url"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// Home handles GET /
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.service.FeaturedDestinations(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list featured destinations")
		return
	}

	utils.ResponseSuccess(w, "success", destinations)
}

// Destinations handles GET /destinations/
func (h *CatalogHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.service.Destinations(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list destinations")
		return
	}

	utils.ResponseSuccess(w, "success", destinations)
}

// DestinationDetail handles GET /destination/{name}/?date=&type=
func (h *CatalogHandler) DestinationDetail(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid destination", nil)
		return
	}

	query := r.URL.Query()
	filter := request.DestinationFilter{
		Date: query.Get("date"),
		Type: query.Get("type"),
	}

	detail, err := h.service.DestinationDetail(r.Context(), name, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get destination")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// TravelOption handles GET /travel/{travel_id}/
func (h *CatalogHandler) TravelOption(w http.ResponseWriter, r *http.Request) {
	option, err := h.service.GetTravelOption(r.Context(), chi.URLParam(r, "travel_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get travel option")
		return
	}

	utils.ResponseSuccess(w, "success", option)
}
