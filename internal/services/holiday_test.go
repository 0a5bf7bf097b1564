package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsWorkday_Weekend(t *testing.T) {
	s := NewHolidayService()

	saturday := date(2026, time.August, 29)
	sunday := date(2026, time.August, 30)

	for _, country := range []string{"US", "GB", "DE", "NONE"} {
		if s.IsWorkday(saturday, country) {
			t.Errorf("%s: Saturday should not be a workday", country)
		}
		if s.IsWorkday(sunday, country) {
			t.Errorf("%s: Sunday should not be a workday", country)
		}
	}
}

func TestIsWorkday_RegularWeekday(t *testing.T) {
	s := NewHolidayService()

	wednesday := date(2026, time.August, 26)
	for _, country := range []string{"US", "GB", "DE", "JP", "NONE"} {
		if !s.IsWorkday(wednesday, country) {
			t.Errorf("%s: a plain Wednesday should be a workday", country)
		}
	}
}

func TestIsWorkday_Christmas(t *testing.T) {
	s := NewHolidayService()

	// 2026-12-25 falls on a Friday.
	christmas := date(2026, time.December, 25)
	if s.IsWorkday(christmas, "US") {
		t.Error("US: Christmas should not be a workday")
	}
	if s.IsWorkday(christmas, "GB") {
		t.Error("GB: Christmas should not be a workday")
	}

	// The NONE calendar only knows weekends.
	if !s.IsWorkday(christmas, "NONE") {
		t.Error("NONE: a Friday should be a workday regardless of holidays")
	}
}

func TestIsWorkday_UnknownCountryFallsBack(t *testing.T) {
	s := NewHolidayService()

	// Unknown codes degrade to a weekend-only check.
	if !s.IsWorkday(date(2026, time.August, 26), "XX") {
		t.Error("unknown country: weekday should be a workday")
	}
	if s.IsWorkday(date(2026, time.August, 29), "XX") {
		t.Error("unknown country: Saturday should not be a workday")
	}
}

func TestIsHoliday_IsInverseOfWorkday(t *testing.T) {
	s := NewHolidayService()

	day := date(2026, time.August, 26)
	if s.IsHoliday(day, "US") == s.IsWorkday(day, "US") {
		t.Error("IsHoliday and IsWorkday should disagree for the same day")
	}
}

func TestGetSupportedCountries(t *testing.T) {
	s := NewHolidayService()

	countries := s.GetSupportedCountries()
	if len(countries) == 0 {
		t.Fatal("expected a non-empty country list")
	}

	found := map[string]bool{}
	for _, c := range countries {
		found[c.Code] = true
	}
	for _, code := range []string{"US", "CN", "NONE"} {
		if !found[code] {
			t.Errorf("country list should include %s", code)
		}
	}
}
