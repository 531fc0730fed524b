// Package dateutil formats dates with C strftime directives.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2json/internal/config"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Fixed formats for the derived date fields.
const (
	RFC822Format = "%a, %d %b %Y %H:%M:%S %z"
	W3CFormat    = "%Y-%m-%d"
	ISOFormat    = "%Y-%m-%dT%H:%M:%S%z"
)

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":    ISOFormat,
	"rfc822": RFC822Format,
	"w3c":    W3CFormat,
	"long":   "%B %-d, %Y",
}

// ResolveFormat returns the strftime pattern for a preset name
// (case-insensitive) or the format itself when it is not a preset.
// Returns ErrInvalidDateFormat if the format is empty or too long.
func ResolveFormat(format string) (string, error) {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		return preset, nil
	}
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// ValidateFormat checks the bounds of a strftime pattern.
func ValidateFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > config.MaxDateFormatLength {
		return fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, config.MaxDateFormatLength)
	}
	return nil
}

// Strftime renders t using C strftime directives in the C locale.
//
// Supported: %a %A %b %B %c %C %d %D %e %f %F %G %h %H %I %j %k %l %m %M %n
// %p %R %s %S %t %T %u %U %V %w %W %x %X %y %Y %z %Z %%. A "-" flag after
// "%" drops padding from numeric fields (glibc style, e.g. "%-d").
// Unknown directives and a trailing "%" are copied literally.
func Strftime(t time.Time, format string) string {
	var b strings.Builder
	b.Grow(len(format) + 16)

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		noPad := false
		if format[j] == '-' && j+1 < len(format) {
			noPad = true
			j++
		}

		if !writeDirective(&b, t, format[j], noPad) {
			// Unknown directive: keep the source text.
			b.WriteString(format[i : j+1])
		}
		i = j + 1
	}

	return b.String()
}

func writeDirective(b *strings.Builder, t time.Time, verb byte, noPad bool) bool {
	num := func(v, width int, pad byte) {
		writeNum(b, v, width, pad, noPad)
	}

	switch verb {
	case 'a':
		b.WriteString(t.Weekday().String()[:3])
	case 'A':
		b.WriteString(t.Weekday().String())
	case 'b', 'h':
		b.WriteString(t.Month().String()[:3])
	case 'B':
		b.WriteString(t.Month().String())
	case 'c':
		b.WriteString(Strftime(t, "%a %b %e %H:%M:%S %Y"))
	case 'C':
		num(t.Year()/100, 2, '0')
	case 'd':
		num(t.Day(), 2, '0')
	case 'D':
		b.WriteString(Strftime(t, "%m/%d/%y"))
	case 'e':
		num(t.Day(), 2, ' ')
	case 'f':
		num(t.Nanosecond()/1000, 6, '0')
	case 'F':
		b.WriteString(Strftime(t, "%Y-%m-%d"))
	case 'G':
		year, _ := t.ISOWeek()
		b.WriteString(strconv.Itoa(year))
	case 'H':
		num(t.Hour(), 2, '0')
	case 'I':
		num(hour12(t), 2, '0')
	case 'j':
		num(t.YearDay(), 3, '0')
	case 'k':
		num(t.Hour(), 2, ' ')
	case 'l':
		num(hour12(t), 2, ' ')
	case 'm':
		num(int(t.Month()), 2, '0')
	case 'M':
		num(t.Minute(), 2, '0')
	case 'n':
		b.WriteByte('\n')
	case 'p':
		if t.Hour() < 12 {
			b.WriteString("AM")
		} else {
			b.WriteString("PM")
		}
	case 'R':
		b.WriteString(Strftime(t, "%H:%M"))
	case 's':
		b.WriteString(strconv.FormatInt(t.Unix(), 10))
	case 'S':
		num(t.Second(), 2, '0')
	case 't':
		b.WriteByte('\t')
	case 'T', 'X':
		b.WriteString(Strftime(t, "%H:%M:%S"))
	case 'u':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		num(wd, 1, '0')
	case 'U':
		num((t.YearDay()+6-int(t.Weekday()))/7, 2, '0')
	case 'V':
		_, week := t.ISOWeek()
		num(week, 2, '0')
	case 'w':
		num(int(t.Weekday()), 1, '0')
	case 'W':
		num((t.YearDay()+6-(int(t.Weekday())+6)%7)/7, 2, '0')
	case 'x':
		b.WriteString(Strftime(t, "%m/%d/%y"))
	case 'y':
		num(t.Year()%100, 2, '0')
	case 'Y':
		b.WriteString(strconv.Itoa(t.Year()))
	case 'z':
		b.WriteString(zoneOffset(t, false))
	case 'Z':
		b.WriteString(zoneName(t))
	case '%':
		b.WriteByte('%')
	default:
		return false
	}
	return true
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

func writeNum(b *strings.Builder, v, width int, pad byte, noPad bool) {
	s := strconv.Itoa(v)
	if !noPad {
		for n := len(s); n < width; n++ {
			b.WriteByte(pad)
		}
	}
	b.WriteString(s)
}

// zoneOffset formats the UTC offset as +hhmm, or +hh:mm when colon is set.
func zoneOffset(t time.Time, colon bool) string {
	_, offset := t.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	var b strings.Builder
	b.WriteByte(sign)
	writeNum(&b, offset/3600, 2, '0', false)
	if colon {
		b.WriteByte(':')
	}
	writeNum(&b, offset%3600/60, 2, '0', false)
	return b.String()
}

// zoneName returns the zone abbreviation, falling back to UTC±hh:mm for
// anonymous fixed offsets.
func zoneName(t time.Time) string {
	name, offset := t.Zone()
	if name != "" {
		return name
	}
	if offset == 0 {
		return "UTC"
	}
	return "UTC" + zoneOffset(t, true)
}
