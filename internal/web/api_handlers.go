package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/satish051/RealEstateApp/internal/catalog"
	"github.com/satish051/RealEstateApp/internal/property"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// handleAPIProperties handles GET /api/properties with optional
// search, min_price, max_price, and type filter parameters.
func (s *Server) handleAPIProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	all, err := s.propRepo.List()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load properties")
		return
	}

	q, err := queryFromForm(searchForm{
		Search:      r.URL.Query().Get("search"),
		MinPrice:    r.URL.Query().Get("min_price"),
		MaxPrice:    r.URL.Query().Get("max_price"),
		ListingType: r.URL.Query().Get("type"),
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	matched := catalog.Filter(all, q)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"properties": matched,
		"count":      len(matched),
	})
}

// propertyResponse is the detail payload: the property plus similar
// listings.
type propertyResponse struct {
	Property *property.Property   `json:"property"`
	Similar  []*property.Property `json:"similar"`
}

// handleAPIPropertyRoute handles GET /api/properties/{id}.
//
// Optional parameters tune the similar list: max caps it, band widens
// or narrows the price interval, by_price=1 orders by price distance
// instead of shuffling, and seed pins the shuffle for repeatable
// responses.
func (s *Server) handleAPIPropertyRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/properties/"), "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	prop, err := s.propRepo.GetByID(id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "property not found")
		return
	}

	all, err := s.propRepo.List()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load properties")
		return
	}

	opts, err := recommendOptsFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	similar, err := catalog.Recommend(all, id, opts)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "failed to compute similar properties")
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{Property: prop, Similar: similar})
}

func recommendOptsFromQuery(r *http.Request) (catalog.RecommendOptions, error) {
	var opts catalog.RecommendOptions

	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errors.New("invalid max")
		}
		opts.MaxResults = n
	}
	if v := r.URL.Query().Get("band"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, errors.New("invalid band")
		}
		opts.PriceBand = f
	}

	if r.URL.Query().Get("by_price") == "1" {
		opts.Policy = catalog.PriceDistanceSelection{}
		return opts, nil
	}

	seed := time.Now().UnixNano()
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, errors.New("invalid seed")
		}
		seed = n
	}
	opts.Policy = catalog.ShuffleSelection(seed)

	return opts, nil
}
