package automation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"

	defaultEventDuration = time.Hour
)

// EventParams describes a calendar event to create.
type EventParams struct {
	Title        string
	StartDate    string
	EndDate      string
	Location     string
	Notes        string
	CalendarName string
	AllDay       bool
}

// Event is the resolved schedule of a created event.
type Event struct {
	Start    time.Time
	End      time.Time
	AllDay   bool
	Calendar string
}

// Calendar creates events in Apple Calendar.
type Calendar struct {
	runner  ScriptRunner
	logger  *slog.Logger
	timeout time.Duration
}

// CalendarOption customizes a Calendar client.
type CalendarOption func(*Calendar)

// WithCalendarTimeout bounds each osascript invocation.
func WithCalendarTimeout(d time.Duration) CalendarOption {
	return func(c *Calendar) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCalendar creates a Calendar client backed by the real osascript binary.
func NewCalendar(logger *slog.Logger, opts ...CalendarOption) *Calendar {
	return NewCalendarWithRunner(osascriptRunner{}, logger, opts...)
}

// NewCalendarWithRunner creates a Calendar client with a custom runner.
// Tests use this to avoid invoking osascript.
func NewCalendarWithRunner(runner ScriptRunner, logger *slog.Logger, opts ...CalendarOption) *Calendar {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Calendar{
		runner:  runner,
		logger:  logger,
		timeout: defaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add creates an event and returns its resolved schedule. The event lands
// in the named calendar, or the first calendar when none is given.
func (c *Calendar) Add(ctx context.Context, params EventParams) (Event, error) {
	if !c.runner.Available() {
		return Event{}, ErrUnavailable
	}

	start, end, allDay, err := resolveSchedule(params.StartDate, params.EndDate, params.AllDay)
	if err != nil {
		return Event{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.runner.Run(ctx, eventScript(params, start, end, allDay)); err != nil {
		return Event{}, fmt.Errorf("create calendar event: %w", err)
	}

	calendar := params.CalendarName
	if calendar == "" {
		calendar = "default"
	}

	c.logger.Info("calendar event created",
		slog.String("title", params.Title),
		slog.String("calendar", calendar),
		slog.Bool("all_day", allDay),
	)

	return Event{Start: start, End: end, AllDay: allDay, Calendar: calendar}, nil
}

// resolveSchedule turns raw date strings into concrete start and end times.
// A date-only start or the allDay flag yields an all-day event, ending on
// the end date's day or the start day when none is given. Timed events
// default to one hour; a date-only end stretches the event to the end of
// that day.
func resolveSchedule(startDate, endDate string, allDay bool) (time.Time, time.Time, bool, error) {
	dateOnly := len(startDate) <= len(dateLayout)

	layout := dateTimeLayout
	if dateOnly {
		layout = dateLayout
	}
	start, err := time.Parse(layout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	if dateOnly || allDay {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		end := day
		if endDate != "" {
			endLayout := dateTimeLayout
			if len(endDate) <= len(dateLayout) {
				endLayout = dateLayout
			}
			e, err := time.Parse(endLayout, endDate)
			if err != nil {
				return time.Time{}, time.Time{}, false, fmt.Errorf("invalid end date %q: %w", endDate, err)
			}
			end = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, e.Location())
		}
		return day, end, true, nil
	}

	end := start.Add(defaultEventDuration)
	if endDate != "" {
		if len(endDate) <= len(dateLayout) {
			endDay, err := time.Parse(dateLayout, endDate)
			if err != nil {
				return time.Time{}, time.Time{}, false, fmt.Errorf("invalid end date %q: %w", endDate, err)
			}
			end = endDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		} else {
			end, err = time.Parse(dateTimeLayout, endDate)
			if err != nil {
				return time.Time{}, time.Time{}, false, fmt.Errorf("invalid end date %q: %w", endDate, err)
			}
		}
	}

	return start, end, false, nil
}

func eventScript(params EventParams, start, end time.Time, allDay bool) string {
	var b strings.Builder
	b.WriteString(dateAssignment("eventStart", start))
	b.WriteString(dateAssignment("eventEnd", end))

	props := []string{
		"summary:" + quote(params.Title),
		"start date:eventStart",
		"end date:eventEnd",
	}
	if allDay {
		props = append(props, "allday event:true")
	}
	if params.Location != "" {
		props = append(props, "location:"+quote(params.Location))
	}
	if params.Notes != "" {
		props = append(props, "description:"+quote(params.Notes))
	}

	target := "first calendar"
	if params.CalendarName != "" {
		target = "calendar " + quote(params.CalendarName)
	}

	fmt.Fprintf(&b, `tell application "Calendar"
	tell %s
		make new event with properties {%s}
	end tell
end tell`, target, strings.Join(props, ", "))

	return b.String()
}

// dateAssignment emits AppleScript that builds a date value field by field,
// avoiding locale-dependent date string parsing. Day is reset to 1 first so
// the month assignment cannot overflow.
func dateAssignment(name string, t time.Time) string {
	return fmt.Sprintf(
		"set %[1]s to (current date)\n"+
			"set day of %[1]s to 1\n"+
			"set year of %[1]s to %[2]d\n"+
			"set month of %[1]s to %[3]d\n"+
			"set day of %[1]s to %[4]d\n"+
			"set time of %[1]s to %[5]d\n",
		name, t.Year(), int(t.Month()), t.Day(),
		t.Hour()*3600+t.Minute()*60+t.Second(),
	)
}
