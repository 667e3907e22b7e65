package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/logging"
)

// handleSubcategoryLookup returns the subcategories of a category as
// [{id, name, status}]. An unknown or malformed category yields [].
func (s *Server) handleSubcategoryLookup(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	items, err := s.service.Lookup(r.Context(), "subcategories", "category_id", categoryID)
	if err != nil {
		logging.WithFields(r.Context(), "category_id", categoryID).Error("subcategory lookup failed",
			"error", err, "detail", core.ErrorDetail(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch subcategories")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
