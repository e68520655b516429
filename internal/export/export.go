// Package export renders finished trip plans into downloadable artifacts.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/route66/trip-service/internal/itinerary"
)

// Format identifies an export artifact type.
type Format string

const (
	FormatICS  Format = "ics"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatICS, FormatXLSX, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatICS:
		return "text/calendar; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Options controls artifact rendering.
type Options struct {
	// StartDate is the calendar date of day 1. Zero means tomorrow.
	StartDate time.Time
	// Now is the generation timestamp. Zero means time.Now.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	if o.StartDate.IsZero() {
		o.StartDate = o.Now.AddDate(0, 0, 1)
	}
	y, m, d := o.StartDate.Date()
	o.StartDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return o
}

// Write renders plan in the requested format.
func Write(w io.Writer, plan *itinerary.TripPlan, format Format, opts Options) error {
	if plan == nil {
		return fmt.Errorf("nil trip plan")
	}
	switch format {
	case FormatICS:
		return WriteICS(w, plan, opts)
	case FormatXLSX:
		return WriteXLSX(w, plan, opts)
	case FormatJSON:
		return WriteJSON(w, plan)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// Filename builds a file name like "chicago-il-to-santa-monica-ca-7d.ics".
func Filename(plan *itinerary.TripPlan, format Format) string {
	return fmt.Sprintf("%s-to-%s-%dd.%s", slug(plan.StartCity), slug(plan.EndCity), plan.TotalDays, format)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
