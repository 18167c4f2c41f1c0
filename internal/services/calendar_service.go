package services

import (
	"sort"
	"time"

	"continuum/internal/filter"
	"continuum/internal/models"
)

// calendarService places due dates and expiries on a calendar.
type calendarService struct {
	subscriptions SubscriptionServicer
	warranties    WarrantyServicer
	windowDays    int
}

// NewCalendarService creates a new CalendarServicer.
func NewCalendarService(subs SubscriptionServicer, warranties WarrantyServicer, windowDays int) CalendarServicer {
	return &calendarService{subscriptions: subs, warranties: warranties, windowDays: windowDays}
}

// GetDay returns the subscriptions due and warranties expiring on the civil
// day of day, read in day's location.
func (s *calendarService) GetDay(day time.Time) (*CalendarDay, error) {
	subs, err := s.subscriptions.ListSubscriptions()
	if err != nil {
		return nil, err
	}
	warranties, err := s.warranties.ListWarranties()
	if err != nil {
		return nil, err
	}

	result := &CalendarDay{
		Date:          models.StartOfDay(day),
		Subscriptions: []models.Subscription{},
		Warranties:    []models.Warranty{},
	}
	for _, sub := range subs {
		if models.SameDay(day, sub.NextDueDate) {
			result.Subscriptions = append(result.Subscriptions, sub)
		}
	}
	for _, w := range warranties {
		if models.SameDay(day, w.ExpiryDate) {
			result.Warranties = append(result.Warranties, w)
		}
	}
	return result, nil
}

// GetEvents returns every due date and expiry in [from, to), ordered by
// date. Statuses are evaluated at now.
func (s *calendarService) GetEvents(from, to, now time.Time) ([]CalendarEvent, error) {
	subs, err := s.subscriptions.ListSubscriptions()
	if err != nil {
		return nil, err
	}
	warranties, err := s.warranties.ListWarranties()
	if err != nil {
		return nil, err
	}

	inRange := func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}

	events := []CalendarEvent{}
	for _, sub := range subs {
		if !inRange(sub.NextDueDate) {
			continue
		}
		amount := sub.Amount
		status := EventStatusDue
		if sub.IsPastDue(now) {
			status = EventStatusPastDue
		}
		events = append(events, CalendarEvent{
			Kind:       EventSubscriptionDue,
			ResourceID: sub.ID,
			Title:      sub.Name,
			Date:       sub.NextDueDate,
			Amount:     &amount,
			Status:     status,
		})
	}
	for _, w := range warranties {
		if !inRange(w.ExpiryDate) {
			continue
		}
		events = append(events, CalendarEvent{
			Kind:       EventWarrantyExpiry,
			ResourceID: w.ID,
			Title:      w.ProductName,
			Date:       w.ExpiryDate,
			Status:     filter.WarrantyStatus(w, now, s.windowDays),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}
