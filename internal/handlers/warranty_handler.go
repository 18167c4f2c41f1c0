package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "continuum/internal/errors"
	"continuum/internal/filter"
	"continuum/internal/models"
	"continuum/internal/services"
)

// WarrantyHandler handles warranty requests.
type WarrantyHandler struct {
	warrantyService services.WarrantyServicer
	windowDays      int
}

// NewWarrantyHandler creates a new WarrantyHandler. windowDays is the
// horizon of the expiring status.
func NewWarrantyHandler(warrantyService services.WarrantyServicer, windowDays int) *WarrantyHandler {
	return &WarrantyHandler{warrantyService: warrantyService, windowDays: windowDays}
}

// CreateWarrantyRequest represents the request payload for creating a warranty.
// The purchase date defaults to now and the expiry date to one calendar year
// after the purchase date.
type CreateWarrantyRequest struct {
	ProductName  string     `json:"product_name" binding:"required,max=200"`
	PurchaseDate *time.Time `json:"purchase_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Vendor       string     `json:"vendor" binding:"max=200"`
	Notes        string     `json:"notes"`
}

// UpdateWarrantyRequest represents the request payload for updating a warranty.
type UpdateWarrantyRequest struct {
	ProductName  *string    `json:"product_name" binding:"omitempty,max=200"`
	PurchaseDate *time.Time `json:"purchase_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Vendor       *string    `json:"vendor" binding:"omitempty,max=200"`
	Notes        *string    `json:"notes"`
}

// WarrantyResponse is a stored warranty plus its derived fields.
type WarrantyResponse struct {
	models.Warranty
	IsExpired       bool   `json:"is_expired"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	IsExpiringSoon  bool   `json:"is_expiring_soon"`
	Status          string `json:"status"`
}

func (h *WarrantyHandler) response(w models.Warranty, at time.Time) WarrantyResponse {
	return WarrantyResponse{
		Warranty:        w,
		IsExpired:       w.IsExpired(at),
		DaysUntilExpiry: w.DaysUntilExpiry(at),
		IsExpiringSoon:  w.IsExpiringWithin(at, h.windowDays),
		Status:          filter.WarrantyStatus(w, at, h.windowDays),
	}
}

func (h *WarrantyHandler) responses(list []models.Warranty, at time.Time) []WarrantyResponse {
	out := make([]WarrantyResponse, 0, len(list))
	for _, w := range list {
		out = append(out, h.response(w, at))
	}
	return out
}

// CreateWarranty handles the creation of a new warranty.
// @Summary     Create a warranty
// @Tags        warranties
// @Accept      json
// @Produce     json
// @Param       request body CreateWarrantyRequest true "Warranty details"
// @Success     201 {object} WarrantyResponse "Warranty created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /warranties [post]
func (h *WarrantyHandler) CreateWarranty(c *gin.Context) {
	var req CreateWarrantyRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	at := now()
	w := models.NewWarranty(strings.TrimSpace(req.ProductName), at)
	if req.PurchaseDate != nil {
		w.PurchaseDate = *req.PurchaseDate
		w.ExpiryDate = models.AddYears(req.PurchaseDate.In(at.Location()), 1)
	}
	if req.ExpiryDate != nil {
		w.ExpiryDate = *req.ExpiryDate
	}
	w.Vendor = strings.TrimSpace(req.Vendor)
	w.Notes = req.Notes
	if err := w.Validate(); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	created, err := h.warrantyService.CreateWarranty(w)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"warranty": h.response(*created, at)})
}

// GetWarranties handles listing warranties.
// @Summary     List warranties
// @Description List warranties ordered by expiry date, optionally filtered
// @Tags        warranties
// @Produce     json
// @Param       q      query string false "Case-insensitive text in product name or vendor"
// @Param       status query string false "expired, expiring or active"
// @Success     200 {object} map[string][]WarrantyResponse "Warranties"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /warranties [get]
func (h *WarrantyHandler) GetWarranties(c *gin.Context) {
	query := filter.WarrantyQuery{Text: c.Query("q"), Status: c.Query("status")}
	if !filter.ValidWarrantyStatus(query.Status) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status"))
		return
	}

	list, err := h.warrantyService.ListWarranties()
	if err != nil {
		respondWithError(c, err)
		return
	}

	at := now()
	c.JSON(http.StatusOK, gin.H{"warranties": h.responses(filter.Warranties(list, query, at, h.windowDays), at)})
}

// GetWarrantyByID handles fetching a single warranty.
// @Summary     Get a warranty
// @Tags        warranties
// @Produce     json
// @Param       id path string true "Warranty ID"
// @Success     200 {object} WarrantyResponse "Warranty"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Warranty not found"
// @Router      /warranties/{id} [get]
func (h *WarrantyHandler) GetWarrantyByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	w, err := h.warrantyService.GetWarrantyByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"warranty": h.response(*w, now())})
}

// UpdateWarranty handles partial updates of a warranty.
// @Summary     Update a warranty
// @Tags        warranties
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Warranty ID"
// @Param       request body UpdateWarrantyRequest true "Fields to change"
// @Success     200 {object} WarrantyResponse "Warranty updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Warranty not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /warranties/{id} [put]
func (h *WarrantyHandler) UpdateWarranty(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateWarrantyRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	trimPtr(req.ProductName)
	trimPtr(req.Vendor)
	if req.ProductName != nil && *req.ProductName == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "warranty product name cannot be empty"))
		return
	}

	w, err := h.warrantyService.UpdateWarranty(id, services.WarrantyUpdate{
		ProductName:  req.ProductName,
		PurchaseDate: req.PurchaseDate,
		ExpiryDate:   req.ExpiryDate,
		Vendor:       req.Vendor,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"warranty": h.response(*w, now())})
}

// DeleteWarranty handles deleting a warranty.
// @Summary     Delete a warranty
// @Tags        warranties
// @Produce     json
// @Param       id path string true "Warranty ID"
// @Success     200 {object} MessageResponse "Warranty deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Warranty not found"
// @Router      /warranties/{id} [delete]
func (h *WarrantyHandler) DeleteWarranty(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.warrantyService.DeleteWarranty(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Warranty deleted successfully"})
}

// WatchWarranties streams the ordered warranty list as server-sent events.
// @Summary     Watch warranties
// @Tags        warranties
// @Produce     text/event-stream
// @Success     200 {array} WarrantyResponse "warranties events"
// @Router      /warranties/watch [get]
func (h *WarrantyHandler) WatchWarranties(c *gin.Context) {
	streamWatch(c, "warranties", h.warrantyService.WatchWarranties, func(list []models.Warranty) []WarrantyResponse {
		return h.responses(list, now())
	})
}
