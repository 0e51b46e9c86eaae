package main

import (
	"encoding/json"
	"testing"
	"time"
)

// TestNextReminder covers the today/tomorrow rollover rule.
func TestNextReminder(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		at   timeOfDay
		want time.Time
	}{
		{"later today", timeOfDay{Hour: 13, Minute: 30}, time.Date(2026, 10, 19, 13, 30, 0, 0, time.UTC)},
		{"already passed", timeOfDay{Hour: 8}, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)},
		{"exactly now", timeOfDay{Hour: 9}, now},
		{"midnight", timeOfDay{}, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextReminder(now, tc.at); !got.Equal(tc.want) {
				t.Errorf("nextReminder = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNextReminder_MonthRollover(t *testing.T) {
	now := time.Date(2026, 10, 31, 22, 0, 0, 0, time.UTC)
	got := nextReminder(now, timeOfDay{Hour: 7, Minute: 15})
	if want := time.Date(2026, 11, 1, 7, 15, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("nextReminder = %v, want %v", got, want)
	}
}

// TestNextReminder_KeepsLocation verifies the reminder is computed on the
// caller's wall clock, not UTC.
func TestNextReminder_KeepsLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, ist)
	got := nextReminder(now, timeOfDay{Hour: 12})
	if got.Location() != ist || got.Hour() != 12 || got.Day() != 19 {
		t.Errorf("nextReminder = %v, want 12:00 IST on the 19th", got)
	}
}

func TestNewReminderStatus(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	s := newReminderStatus(now, reminderRequest{Meal: "Lunch", Time: &timeOfDay{Hour: 13, Minute: 5}})
	if s.Message != "Reminder set for Lunch at 13:05" || s.Display != "13:05" {
		t.Errorf("status = %+v", s)
	}

	// No time means 08:00, which has passed at 09:00.
	s = newReminderStatus(now, reminderRequest{Meal: "Breakfast"})
	if s.Display != "08:00" || s.RemindAt.Day() != 20 {
		t.Errorf("default status = %+v, want 08:00 tomorrow", s)
	}
	if s.Message != "Reminder set for Breakfast at 08:00" {
		t.Errorf("message = %q", s.Message)
	}
}

func TestTriggerMessage(t *testing.T) {
	if got := triggerMessage("Dinner"); got != "Time to have your Dinner!" {
		t.Errorf("triggerMessage = %q", got)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	var tod timeOfDay
	if err := json.Unmarshal([]byte(`"07:45"`), &tod); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tod.Hour != 7 || tod.Minute != 45 {
		t.Errorf("parsed %+v, want 07:45", tod)
	}
	b, err := json.Marshal(tod)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"07:45"` {
		t.Errorf("marshal = %s", b)
	}
	for _, bad := range []string{`"7:45pm"`, `"25:00"`, `745`} {
		if err := json.Unmarshal([]byte(bad), &tod); err == nil {
			t.Errorf("expected an error for %s", bad)
		}
	}
}
