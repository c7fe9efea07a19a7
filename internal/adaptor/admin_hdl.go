package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves catalog administration. Routes sit behind the
// session and admin middleware.
type AdminHandler struct {
	service usecase.CatalogAdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.CatalogAdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListTravelOptions handles GET /admin/travel-options/
func (h *AdminHandler) ListTravelOptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := utils.QueryInt(query, "page", 1)
	perPage := utils.QueryInt(query, "per_page", 20)

	options, err := h.service.ListTravelOptions(r.Context(), page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list travel options")
		return
	}

	utils.ResponseSuccess(w, "success", options)
}

// CreateTravelOption handles POST /admin/travel-options/
func (h *AdminHandler) CreateTravelOption(w http.ResponseWriter, r *http.Request) {
	var req request.TravelOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	option, err := h.service.CreateTravelOption(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create travel option")
		return
	}

	utils.ResponseCreated(w, "Travel option created", option)
}

// UpdateTravelOption handles PUT /admin/travel-options/{travel_id}/
func (h *AdminHandler) UpdateTravelOption(w http.ResponseWriter, r *http.Request) {
	var req request.TravelOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	option, err := h.service.UpdateTravelOption(r.Context(), chi.URLParam(r, "travel_id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update travel option")
		return
	}

	utils.ResponseSuccess(w, "Travel option updated", option)
}

// AddImage handles POST /admin/travel-options/{travel_id}/images/
func (h *AdminHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	var req request.TravelImageRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	image, err := h.service.SaveImage(r.Context(), chi.URLParam(r, "travel_id"), nil, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add image")
		return
	}

	utils.ResponseCreated(w, "Image added", image)
}

// UpdateImage handles PUT /admin/travel-options/{travel_id}/images/{image_id}/
func (h *AdminHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(chi.URLParam(r, "image_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image ID", nil)
		return
	}

	var req request.TravelImageRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	image, err := h.service.SaveImage(r.Context(), chi.URLParam(r, "travel_id"), &imageID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update image")
		return
	}

	utils.ResponseSuccess(w, "Image updated", image)
}

// DeleteImage handles DELETE /admin/travel-options/{travel_id}/images/{image_id}/
func (h *AdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(chi.URLParam(r, "image_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.service.DeleteImage(r.Context(), chi.URLParam(r, "travel_id"), imageID); err != nil {
		handleServiceError(w, h.log, err, "delete image")
		return
	}

	utils.ResponseSuccess(w, "Image deleted", nil)
}

// UpsertDetail handles PUT /admin/travel-options/{travel_id}/detail/
func (h *AdminHandler) UpsertDetail(w http.ResponseWriter, r *http.Request) {
	var req request.TravelDetailRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpsertDetail(r.Context(), chi.URLParam(r, "travel_id"), &req); err != nil {
		handleServiceError(w, h.log, err, "save description")
		return
	}

	utils.ResponseSuccess(w, "Description saved", nil)
}
