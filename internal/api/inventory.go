package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"logitrack/internal/model"
	"logitrack/internal/service"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	Service *service.Service
	Logger  *zap.Logger
}

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// parsePagination reads page and pageSize query parameters. Values that are
// missing, unparseable or below 1 fall back to the defaults downstream;
// pagination input never fails a request.
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	return page, pageSize
}

// List handles GET /api/inventory. The cache-hit flag and elapsed time are
// surfaced as response headers.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.Service.GetInventoryPage(r.Context(), page, pageSize)
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	w.Header().Set("X-Cache-Hit", strconv.FormatBool(result.CacheHit))
	w.Header().Set("X-Elapsed-Milliseconds", strconv.FormatInt(result.Elapsed.Milliseconds(), 10))
	jsonResponse(h.Logger, w, http.StatusOK, result.Items)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.AddInventoryItem(r.Context(), GetClaims(r.Context()), model.InventoryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	jsonResponse(h.Logger, w, http.StatusCreated, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.DeleteInventoryItem(r.Context(), GetClaims(r.Context()), id); err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto handles PUT /api/inventory/{id}/photo.
func (h *InventoryHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	if err := h.Service.SetInventoryItemPhoto(r.Context(), GetClaims(r.Context()), id, file); err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	jsonResponse(h.Logger, w, http.StatusOK, map[string]string{"message": "photo updated"})
}

// GetPhoto handles GET /api/inventory/{id}/photo.
func (h *InventoryHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(h.Logger, w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := h.Service.GetInventoryItemPhoto(r.Context(), id)
	if err != nil {
		serviceError(h.Logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
