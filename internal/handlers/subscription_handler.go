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

// SubscriptionHandler handles subscription and recurring payment requests.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionServicer
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService services.SubscriptionServicer) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// CreateSubscriptionRequest represents the request payload for creating a subscription.
// Omitted fields take the edit form defaults: monthly, category Other,
// flagged as a subscription, due now.
type CreateSubscriptionRequest struct {
	Name           string                      `json:"name" binding:"required,max=200"`
	Amount         *decimal.Decimal            `json:"amount" binding:"required"`
	BillingCycle   models.BillingCycle         `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	NextDueDate    *time.Time                  `json:"next_due_date"`
	Category       models.SubscriptionCategory `json:"category" binding:"omitempty,subscription_category"`
	Notes          string                      `json:"notes"`
	IsSubscription *bool                       `json:"is_subscription"`
}

// UpdateSubscriptionRequest represents the request payload for updating a subscription.
type UpdateSubscriptionRequest struct {
	Name           *string                      `json:"name" binding:"omitempty,max=200"`
	Amount         *decimal.Decimal             `json:"amount"`
	BillingCycle   *models.BillingCycle         `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	NextDueDate    *time.Time                   `json:"next_due_date"`
	Category       *models.SubscriptionCategory `json:"category" binding:"omitempty,subscription_category"`
	Notes          *string                      `json:"notes"`
	IsSubscription *bool                        `json:"is_subscription"`
}

// SubscriptionResponse is a stored subscription plus its derived fields.
type SubscriptionResponse struct {
	models.Subscription
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
	IsPastDue         bool            `json:"is_past_due"`
	NextRenewalDate   time.Time       `json:"next_renewal_date"`
}

func newSubscriptionResponse(sub models.Subscription, at time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		Subscription:      sub,
		MonthlyEquivalent: sub.MonthlyEquivalent().Round(2),
		IsPastDue:         sub.IsPastDue(at),
		NextRenewalDate:   sub.NextRenewalDateIn(at.Location()),
	}
}

func newSubscriptionResponses(subs []models.Subscription, at time.Time) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, newSubscriptionResponse(sub, at))
	}
	return out
}

// CreateSubscription handles the creation of a new subscription.
// @Summary     Create a subscription
// @Description Create a subscription or recurring payment
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Param       request body CreateSubscriptionRequest true "Subscription details"
// @Success     201 {object} SubscriptionResponse "Subscription created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	at := now()
	sub := models.NewSubscription(strings.TrimSpace(req.Name), at)
	sub.Amount = *req.Amount
	sub.Notes = req.Notes
	if req.BillingCycle != "" {
		sub.BillingCycle = req.BillingCycle
	}
	if req.Category != "" {
		sub.Category = req.Category
	}
	if req.NextDueDate != nil {
		sub.NextDueDate = *req.NextDueDate
	}
	if req.IsSubscription != nil {
		sub.IsSubscription = *req.IsSubscription
	}
	if err := sub.Validate(); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	created, err := h.subscriptionService.CreateSubscription(sub)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscription": newSubscriptionResponse(*created, at)})
}

// GetSubscriptions handles listing subscriptions.
// @Summary     List subscriptions
// @Description List subscriptions ordered by next due date, optionally filtered
// @Tags        subscriptions
// @Produce     json
// @Param       category query string false "Exact category label"
// @Param       q        query string false "Case-insensitive text in name or category"
// @Param       kind     query string false "subscription or payment"
// @Param       status   query string false "past_due or upcoming"
// @Success     200 {object} map[string][]SubscriptionResponse "Subscriptions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions [get]
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
	query := filter.SubscriptionQuery{
		Text:   c.Query("q"),
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := models.ParseSubscriptionCategory(raw)
		if !ok {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category"))
			return
		}
		query.Category = category
	}
	if !filter.ValidKind(query.Kind) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid kind"))
		return
	}
	if !filter.ValidSubscriptionStatus(query.Status) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status"))
		return
	}

	subs, err := h.subscriptionService.ListSubscriptions()
	if err != nil {
		respondWithError(c, err)
		return
	}

	at := now()
	c.JSON(http.StatusOK, gin.H{"subscriptions": newSubscriptionResponses(filter.Subscriptions(subs, query, at), at)})
}

// GetSubscriptionByID handles fetching a single subscription.
// @Summary     Get a subscription
// @Tags        subscriptions
// @Produce     json
// @Param       id path string true "Subscription ID"
// @Success     200 {object} SubscriptionResponse "Subscription"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Router      /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscriptionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := h.subscriptionService.GetSubscriptionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": newSubscriptionResponse(*sub, now())})
}

// UpdateSubscription handles partial updates of a subscription.
// @Summary     Update a subscription
// @Description Change any subset of a subscription's fields
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Param       id      path string                    true "Subscription ID"
// @Param       request body UpdateSubscriptionRequest true "Fields to change"
// @Success     200 {object} SubscriptionResponse "Subscription updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/{id} [put]
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	trimPtr(req.Name)
	if req.Name != nil && *req.Name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "subscription name cannot be empty"))
		return
	}

	sub, err := h.subscriptionService.UpdateSubscription(id, services.SubscriptionUpdate{
		Name:           req.Name,
		Amount:         req.Amount,
		BillingCycle:   req.BillingCycle,
		NextDueDate:    req.NextDueDate,
		Category:       req.Category,
		Notes:          req.Notes,
		IsSubscription: req.IsSubscription,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": newSubscriptionResponse(*sub, now())})
}

// RenewSubscription advances the next due date by one billing cycle.
// @Summary     Renew a subscription
// @Tags        subscriptions
// @Produce     json
// @Param       id path string true "Subscription ID"
// @Success     200 {object} SubscriptionResponse "Subscription renewed"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Router      /subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := h.subscriptionService.RenewSubscription(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": newSubscriptionResponse(*sub, now())})
}

// DeleteSubscription handles deleting a subscription.
// @Summary     Delete a subscription
// @Tags        subscriptions
// @Produce     json
// @Param       id path string true "Subscription ID"
// @Success     200 {object} MessageResponse "Subscription deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Router      /subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.subscriptionService.DeleteSubscription(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Subscription deleted successfully"})
}

// WatchSubscriptions streams the ordered subscription list as server-sent
// events, once on connect and again after every change.
// @Summary     Watch subscriptions
// @Tags        subscriptions
// @Produce     text/event-stream
// @Success     200 {array} SubscriptionResponse "subscriptions events"
// @Router      /subscriptions/watch [get]
func (h *SubscriptionHandler) WatchSubscriptions(c *gin.Context) {
	streamWatch(c, "subscriptions", h.subscriptionService.WatchSubscriptions, func(subs []models.Subscription) []SubscriptionResponse {
		return newSubscriptionResponses(subs, now())
	})
}
