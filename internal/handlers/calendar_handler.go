package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "continuum/internal/errors"
	"continuum/internal/models"
	"continuum/internal/services"
)

// maxCalendarDays bounds the range of a single events request.
const maxCalendarDays = 366

// CalendarHandler serves due dates and expiries by day.
type CalendarHandler struct {
	calendarService services.CalendarServicer
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService services.CalendarServicer) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// GetEvents handles listing calendar events in a date range.
// @Summary     List calendar events
// @Description Subscription due dates and warranty expiries in [from, to). Defaults to the current month.
// @Tags        calendar
// @Produce     json
// @Param       from query string false "First day, YYYY-MM-DD"
// @Param       to   query string false "Day after the last day, YYYY-MM-DD"
// @Success     200 {object} map[string][]services.CalendarEvent "Events"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calendar [get]
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	at := now()

	from, ok, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !ok {
		from = models.StartOfDay(at).AddDate(0, 0, 1-at.Day())
	}

	to, ok, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !ok {
		to = models.AddMonths(from, 1)
	}

	if !from.Before(to) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be before to"))
		return
	}
	if models.CalendarDaysBetween(from, to) > maxCalendarDays {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date range is longer than a year"))
		return
	}

	events, err := h.calendarService.GetEvents(from, to, at)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "events": events})
}

// GetDay handles listing what falls due on one day.
// @Summary     Get one calendar day
// @Tags        calendar
// @Produce     json
// @Param       date query string false "Day, YYYY-MM-DD (default today)"
// @Success     200 {object} services.CalendarDay "Day"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calendar/day [get]
func (h *CalendarHandler) GetDay(c *gin.Context) {
	day, ok, err := parseDateQuery(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !ok {
		day = models.StartOfDay(now())
	}

	result, err := h.calendarService.GetDay(day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": result})
}
