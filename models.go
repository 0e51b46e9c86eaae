package main

import (
	"fmt"
	"time"
)

// timeOfDay wraps a wall-clock time to serialize as "HH:MM" in JSON.
type timeOfDay struct {
	Hour   int
	Minute int
}

func (t timeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t timeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *timeOfDay) UnmarshalJSON(b []byte) error {
	parsed, err := time.Parse(`"15:04"`, string(b))
	if err != nil {
		return fmt.Errorf("time must be HH:MM: %w", err)
	}
	t.Hour, t.Minute = parsed.Hour(), parsed.Minute()
	return nil
}

/* ─── Request structs ────────────────────────────────────────────────── */

// userProfile is one form submission. Bounds mirror the input form's
// controls; BMI is derived from weight and height unless the caller sends it.
type userProfile struct {
	Age      int      `json:"age"           binding:"required,min=18,max=90"`
	Gender   string   `json:"gender"        binding:"required"`
	WeightKG float64  `json:"weight_kg"     binding:"required,min=30,max=150"`
	HeightCM float64  `json:"height_cm"     binding:"required,min=100,max=220"`
	BMI      *float64 `json:"bmi,omitempty" binding:"omitempty,gt=0"`
	Disease  string   `json:"disease"       binding:"required"`
}

// reminderRequest is the meal reminder form. Time defaults to 08:00.
type reminderRequest struct {
	Meal string     `json:"meal" binding:"required,oneof=Breakfast Lunch Dinner"`
	Time *timeOfDay `json:"time"`
}

// recommendationRequest is the request body for POST /api/recommendations.
type recommendationRequest struct {
	userProfile
	Reminder *reminderRequest `json:"reminder,omitempty"`
}

// triggerReminderRequest is the request body for POST /api/reminders/trigger.
type triggerReminderRequest struct {
	Meal string `json:"meal" binding:"required,oneof=Breakfast Lunch Dinner"`
}

/* ─── Response structs ───────────────────────────────────────────────── */

// reminderStatus echoes a computed reminder. Nothing is scheduled.
type reminderStatus struct {
	Meal     string    `json:"meal"`
	RemindAt time.Time `json:"remind_at"`
	Display  string    `json:"display"`
	Message  string    `json:"message"`
}

// recommendationResponse is the response shape for POST /api/recommendations.
// Report fields are empty when rendering or storage failed; ReportError then
// explains why while the plan itself is still returned.
type recommendationResponse struct {
	BMI float64 `json:"bmi"`
	recommendation
	ReportID    string          `json:"report_id,omitempty"`
	ReportURL   string          `json:"report_url,omitempty"`
	ReportError string          `json:"report_error,omitempty"`
	Reminder    *reminderStatus `json:"reminder,omitempty"`
}

type bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// optionsResponse lists the vocabularies a form needs to render its selects.
type optionsResponse struct {
	Genders       []string          `json:"genders"`
	Diseases      []string          `json:"diseases"`
	DietTypes     []string          `json:"diet_types"`
	ReminderMeals []string          `json:"reminder_meals"`
	Bounds        map[string]bounds `json:"bounds"`
}
