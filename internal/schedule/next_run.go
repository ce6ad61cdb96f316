// Package schedule computes when a user's daily outreach job should
// fire next, in the user's own timezone.
package schedule

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/leadloop/leadloop/internal/models"
)

// candidateWindow covers a full week plus a buffer for the case where
// today's schedule time has already passed.
const candidateWindow = 8

var weekdayTokens = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseDays maps weekday tokens to a weekday set.
func ParseDays(tokens []string) (map[time.Weekday]bool, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("schedule days must not be empty")
	}
	days := make(map[time.Weekday]bool, len(tokens))
	for _, t := range tokens {
		wd, ok := weekdayTokens[strings.ToLower(t)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday token %q", t)
		}
		days[wd] = true
	}
	return days, nil
}

// ParseTimeOfDay parses a local "HH:MM" time.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("schedule time %q is not HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("schedule time %q has invalid hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("schedule time %q has invalid minute", s)
	}
	return hour, minute, nil
}

// NextRun returns the next UTC instant the job should fire, strictly
// after now. It walks the next eight local calendar days (today
// included), builds the candidate at the preferred local time of day,
// and accepts the first whose local weekday is scheduled. The weekday
// check is against the user's local calendar, never the UTC one.
//
// Deterministic for a given (preferences, now) pair.
func NextRun(prefs *models.OutreachPreferences, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", prefs.Timezone, err)
	}

	tokens, err := prefs.DayTokens()
	if err != nil {
		return time.Time{}, fmt.Errorf("decode schedule days: %w", err)
	}
	days, err := ParseDays(tokens)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, err := ParseTimeOfDay(prefs.ScheduleTime)
	if err != nil {
		return time.Time{}, err
	}

	local := now.In(loc)
	for i := 0; i < candidateWindow; i++ {
		day := local.AddDate(0, 0, i)
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

		if !days[candidate.Weekday()] {
			continue
		}
		// Today's slot may already have elapsed locally.
		if !candidate.After(now) {
			continue
		}
		if onVacation(prefs, candidate) {
			continue
		}
		return candidate.UTC(), nil
	}

	// Unreachable with a non-empty weekday set unless vacation covers
	// the whole window.
	log.Printf("[schedule][WARN] no candidate within %d days for user %d, falling back to +24h",
		candidateWindow, prefs.UserID)
	return now.Add(24 * time.Hour).UTC(), nil
}

func onVacation(prefs *models.OutreachPreferences, t time.Time) bool {
	if !prefs.VacationMode {
		return false
	}
	if prefs.VacationFrom != nil && t.Before(*prefs.VacationFrom) {
		return false
	}
	if prefs.VacationUntil != nil && t.After(*prefs.VacationUntil) {
		return false
	}
	return true
}
