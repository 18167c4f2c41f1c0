package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "continuum/internal/errors"
	"continuum/internal/filter"
	"continuum/internal/models"
	"continuum/internal/services"
)

// AssetHandler handles personal asset and value history requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name         string               `json:"name" binding:"required,max=200"`
	CurrentValue *decimal.Decimal     `json:"current_value" binding:"required"`
	PurchaseDate *time.Time           `json:"purchase_date"`
	Category     models.AssetCategory `json:"category" binding:"omitempty,asset_category"`
	Notes        string               `json:"notes"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
// A current_value different from the stored one appends a value change
// annotated with value_note.
type UpdateAssetRequest struct {
	Name              *string               `json:"name" binding:"omitempty,max=200"`
	CurrentValue      *decimal.Decimal      `json:"current_value"`
	PurchaseDate      *time.Time            `json:"purchase_date"`
	ClearPurchaseDate bool                  `json:"clear_purchase_date"`
	Category          *models.AssetCategory `json:"category" binding:"omitempty,asset_category"`
	Notes             *string               `json:"notes"`
	ValueNote         *string               `json:"value_note"`
}

// ValueChangeResponse is a value change plus its derived fields.
// ChangePercent is a fraction and is omitted when the previous value is zero.
type ValueChangeResponse struct {
	models.AssetValueChange
	ChangeAmount  decimal.Decimal  `json:"change_amount"`
	ChangePercent *decimal.Decimal `json:"change_percent"`
}

// AssetResponse is a stored asset with its history in insertion order.
type AssetResponse struct {
	models.PersonalAsset
	ValueChanges []ValueChangeResponse `json:"value_changes"`
}

func newValueChangeResponse(change models.AssetValueChange) ValueChangeResponse {
	resp := ValueChangeResponse{AssetValueChange: change, ChangeAmount: change.ChangeAmount()}
	if pct, ok := change.ChangePercent(); ok {
		pct = pct.Round(4)
		resp.ChangePercent = &pct
	}
	return resp
}

func newValueChangeResponses(changes []models.AssetValueChange) []ValueChangeResponse {
	out := make([]ValueChangeResponse, 0, len(changes))
	for _, change := range changes {
		out = append(out, newValueChangeResponse(change))
	}
	return out
}

func newAssetResponse(asset models.PersonalAsset) AssetResponse {
	return AssetResponse{PersonalAsset: asset, ValueChanges: newValueChangeResponses(asset.ValueChanges)}
}

func newAssetResponses(assets []models.PersonalAsset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, newAssetResponse(asset))
	}
	return out
}

// CreateAsset handles the creation of a new asset.
// @Summary     Create an asset
// @Description Create a personal asset. The initial value records no history.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} AssetResponse "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	asset := models.NewPersonalAsset(strings.TrimSpace(req.Name))
	asset.CurrentValue = *req.CurrentValue
	asset.PurchaseDate = req.PurchaseDate
	asset.Notes = req.Notes
	if req.Category != "" {
		asset.Category = req.Category
	}
	if err := asset.Validate(); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	created, err := h.assetService.CreateAsset(asset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": newAssetResponse(*created)})
}

// GetAssets handles listing assets.
// @Summary     List assets
// @Description List assets ordered by name, optionally filtered
// @Tags        assets
// @Produce     json
// @Param       category query string false "Exact category label"
// @Param       q        query string false "Case-insensitive text in name or category"
// @Success     200 {object} map[string][]AssetResponse "Assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	query := filter.AssetQuery{Text: c.Query("q")}
	if raw := c.Query("category"); raw != "" {
		category, ok := models.ParseAssetCategory(raw)
		if !ok {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category"))
			return
		}
		query.Category = category
	}

	assets, err := h.assetService.ListAssets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": newAssetResponses(filter.Assets(assets, query))})
}

// GetAssetByID handles fetching a single asset.
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} AssetResponse "Asset"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": newAssetResponse(*asset)})
}

// UpdateAsset handles partial updates of an asset.
// @Summary     Update an asset
// @Description Change any subset of an asset's fields. A new current value appends one value change.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to change"
// @Success     200 {object} AssetResponse "Asset updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	trimPtr(req.Name)
	if req.Name != nil && *req.Name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "asset name cannot be empty"))
		return
	}
	if req.ClearPurchaseDate && req.PurchaseDate != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation,
			"purchase_date and clear_purchase_date cannot be combined"))
		return
	}

	asset, err := h.assetService.UpdateAsset(id, services.AssetUpdate{
		Name:              req.Name,
		CurrentValue:      req.CurrentValue,
		PurchaseDate:      req.PurchaseDate,
		ClearPurchaseDate: req.ClearPurchaseDate,
		Category:          req.Category,
		Notes:             req.Notes,
		ValueNote:         req.ValueNote,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": newAssetResponse(*asset)})
}

// DeleteAsset handles deleting an asset and its value history.
// @Summary     Delete an asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} MessageResponse "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Asset deleted successfully"})
}

// GetAssetHistory handles listing an asset's value changes, newest first.
// @Summary     Get asset value history
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string][]ValueChangeResponse "Value changes"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/history [get]
func (h *AssetHandler) GetAssetHistory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes, err := h.assetService.ListValueChanges(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"value_changes": newValueChangeResponses(changes)})
}

// WatchAssets streams the ordered asset list as server-sent events.
// @Summary     Watch assets
// @Tags        assets
// @Produce     text/event-stream
// @Success     200 {array} AssetResponse "assets events"
// @Router      /assets/watch [get]
func (h *AssetHandler) WatchAssets(c *gin.Context) {
	streamWatch(c, "assets", h.assetService.WatchAssets, newAssetResponses)
}
