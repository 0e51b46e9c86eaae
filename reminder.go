package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// reminderMeals is the set of meals a reminder can be set for.
var reminderMeals = []string{"Breakfast", "Lunch", "Dinner"}

var defaultReminderTime = timeOfDay{Hour: 8}

// nextReminder returns the next instant at the given time of day in now's
// location: today if that has not passed yet, otherwise tomorrow.
func nextReminder(now time.Time, at timeOfDay) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, now.Location())
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// newReminderStatus computes the display-only reminder. Nothing is scheduled.
func newReminderStatus(now time.Time, req reminderRequest) reminderStatus {
	at := defaultReminderTime
	if req.Time != nil {
		at = *req.Time
	}
	remindAt := nextReminder(now, at)
	display := remindAt.Format("15:04")
	return reminderStatus{
		Meal:     req.Meal,
		RemindAt: remindAt,
		Display:  display,
		Message:  fmt.Sprintf("Reminder set for %s at %s", req.Meal, display),
	}
}

func triggerMessage(meal string) string {
	return fmt.Sprintf("Time to have your %s!", meal)
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// setReminder computes when the next reminder would fire.
// POST /api/reminders. Body: { "meal": "Lunch", "time": "13:30" }.
func (h *Handler) setReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	c.JSON(http.StatusOK, newReminderStatus(h.now(), req))
}

// triggerReminder stands in for the notification firing: it answers right away.
// POST /api/reminders/trigger. Body: { "meal": "Dinner" }.
func (h *Handler) triggerReminder(c *gin.Context) {
	var req triggerReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": req.Meal, "message": triggerMessage(req.Meal)})
}
