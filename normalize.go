package md2json

import (
	"time"

	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/meta"
)

// Metadata keys read or written during date normalization.
const (
	KeyDate       = "date"
	KeyDateEpoch  = "dateEpoch"
	KeyDateRFC822 = "dateRFC822"
	KeyDateW3C    = "dateW3C"
)

// normalizeDates derives the date fields from m["date"] when it is a
// timestamp, then replaces every top-level timestamp with its formatted
// string. Nested timestamps are left as they are.
func normalizeDates(m *meta.Map, format string) {
	if v, ok := m.Get(KeyDate); ok {
		if t, ok := v.Time(); ok {
			m.Set(KeyDateEpoch, meta.FloatValue(epochSeconds(t)))
			m.Set(KeyDateRFC822, meta.StringValue(dateutil.Strftime(t, dateutil.RFC822Format)))
			m.Set(KeyDateW3C, meta.StringValue(dateutil.Strftime(t, dateutil.W3CFormat)))
		}
	}

	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if t, ok := v.Time(); ok {
			m.Set(k, meta.StringValue(dateutil.Strftime(t, format)))
		}
	}
}

// epochSeconds returns t as seconds since the Unix epoch, keeping the
// fractional part.
func epochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
