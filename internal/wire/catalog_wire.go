package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCatalog mounts the public browsing routes.
func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/", catalogHandler.Home)
	r.Get("/destinations/", catalogHandler.Destinations)
	r.Get("/destination/{name}/", catalogHandler.DestinationDetail)
	r.Get("/travel/{travel_id}/", catalogHandler.TravelOption)
}
