package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "continuum/internal/errors"
	"continuum/internal/live"
	"continuum/internal/models"
)

// subscriptionService stores subscriptions and recurring payments.
type subscriptionService struct {
	db       *gorm.DB
	feed     *live.Feed
	activity ActivityServicer
	loc      *time.Location
}

// NewSubscriptionService creates a new SubscriptionServicer. Renewals step
// billing cycles on the calendar of loc; dates are stored in UTC.
func NewSubscriptionService(db *gorm.DB, feed *live.Feed, activity ActivityServicer, loc *time.Location) SubscriptionServicer {
	if loc == nil {
		loc = time.Local
	}
	return &subscriptionService{db: db, feed: feed, activity: activity, loc: loc}
}

// CreateSubscription inserts sub. A zero CreatedAt is set to now.
func (s *subscriptionService) CreateSubscription(sub *models.Subscription) (*models.Subscription, error) {
	sub.NextDueDate = sub.NextDueDate.UTC()
	if err := s.db.Create(sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionCreateSubscription, models.ResourceSubscription, sub.ID, map[string]any{
		"name":          sub.Name,
		"amount":        sub.Amount.String(),
		"billing_cycle": sub.BillingCycle,
	})
	s.feed.Publish(live.Subscriptions)
	return sub, nil
}

// GetSubscriptionByID returns a subscription by ID.
func (s *subscriptionService) GetSubscriptionByID(id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrSubscriptionNotFound)
	}
	return &sub, nil
}

// ListSubscriptions returns every subscription, soonest due first.
func (s *subscriptionService) ListSubscriptions() ([]models.Subscription, error) {
	subs := []models.Subscription{}
	if err := s.db.Order("next_due_date ASC, id ASC").Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return subs, nil
}

// UpdateSubscription changes the given fields in place.
func (s *subscriptionService) UpdateSubscription(id string, update SubscriptionUpdate) (*models.Subscription, error) {
	sub, err := s.GetSubscriptionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.BillingCycle != nil {
		updates["billing_cycle"] = *update.BillingCycle
	}
	if update.NextDueDate != nil {
		updates["next_due_date"] = update.NextDueDate.UTC()
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.IsSubscription != nil {
		updates["is_subscription"] = *update.IsSubscription
	}

	if len(updates) == 0 {
		return sub, nil
	}
	if err := s.db.Model(sub).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionUpdateSubscription, models.ResourceSubscription, sub.ID, updates)
	s.feed.Publish(live.Subscriptions)
	return sub, nil
}

// RenewSubscription advances the next due date by one billing cycle.
func (s *subscriptionService) RenewSubscription(id string) (*models.Subscription, error) {
	sub, err := s.GetSubscriptionByID(id)
	if err != nil {
		return nil, err
	}

	previous := sub.NextDueDate
	next := sub.NextRenewalDateIn(s.loc).UTC()
	if err := s.db.Model(sub).Update("next_due_date", next).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionRenewSubscription, models.ResourceSubscription, sub.ID, map[string]any{
		"previous_due_date": previous,
		"next_due_date":     next,
	})
	s.feed.Publish(live.Subscriptions)
	return sub, nil
}

// DeleteSubscription permanently removes a subscription.
func (s *subscriptionService) DeleteSubscription(id string) error {
	sub, err := s.GetSubscriptionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(sub).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.activity.Log(models.ActionDeleteSubscription, models.ResourceSubscription, sub.ID, map[string]any{"name": sub.Name})
	s.feed.Publish(live.Subscriptions)
	return nil
}

// WatchSubscriptions delivers the ordered list now and after every change.
func (s *subscriptionService) WatchSubscriptions(fn func([]models.Subscription, error)) func() {
	return watch(s.feed, live.Subscriptions, s.ListSubscriptions, fn)
}
