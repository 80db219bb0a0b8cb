package owtypes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type StatKind int

const (
	STAT_NUMBER StatKind = iota
	STAT_DURATION
	STAT_PERCENTAGE
)

func (k StatKind) String() string {
	switch k {
	case STAT_NUMBER:
		return "number"
	case STAT_DURATION:
		return "duration"
	case STAT_PERCENTAGE:
		return "percentage"
	}
	return fmt.Sprintf("StatKind(%d)", int(k))
}

// Stat is one value in a hero's stat table. It is a closed variant, construct it
// with NumberStat, DurationStat or PercentageStat.
//
// For STAT_DURATION the value holds whole seconds.
type Stat struct {
	kind  StatKind
	value float64
}

func NumberStat(n float64) Stat {
	return Stat{kind: STAT_NUMBER, value: n}
}

// DurationStat truncates d to whole seconds, the precision upstream displays.
func DurationStat(d time.Duration) Stat {
	return Stat{kind: STAT_DURATION, value: float64(int64(d / time.Second))}
}

func PercentageStat(p float64) Stat {
	return Stat{kind: STAT_PERCENTAGE, value: p}
}

func (s Stat) Kind() StatKind {
	return s.kind
}

// Float returns the numeric value of a number or percentage stat, and the number of
// seconds for a duration.
func (s Stat) Float() float64 {
	return s.value
}

func (s Stat) Duration() (time.Duration, bool) {
	if s.kind != STAT_DURATION {
		return 0, false
	}
	return time.Duration(s.value) * time.Second, true
}

func (s Stat) Equal(other Stat) bool {
	return s.kind == other.kind && s.value == other.value
}

// Add sums two stats of the same kind, ok is false when the kinds differ.
func (s Stat) Add(other Stat) (sum Stat, ok bool) {
	if s.kind != other.kind {
		return Stat{}, false
	}
	return Stat{kind: s.kind, value: s.value + other.value}, true
}

// ParseStat checks for a trailing '%' first, then for ':' separated durations, and
// falls back to a plain number. This order must be kept, a duration never ends in '%'.
func ParseStat(text string) (Stat, error) {
	text = strings.TrimSpace(text)

	if strings.HasSuffix(text, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		if err != nil {
			return Stat{}, fmt.Errorf("parse percentage '%s': %w", text, err)
		}
		return PercentageStat(p), nil
	}

	if strings.Contains(text, ":") {
		fields := strings.Split(text, ":")
		var h, m, s uint64
		var err error
		switch len(fields) {
		case 2:
			m, err = strconv.ParseUint(fields[0], 10, 64)
			if err == nil {
				s, err = strconv.ParseUint(fields[1], 10, 64)
			}
		case 3:
			h, err = strconv.ParseUint(fields[0], 10, 64)
			if err == nil {
				m, err = strconv.ParseUint(fields[1], 10, 64)
			}
			if err == nil {
				s, err = strconv.ParseUint(fields[2], 10, 64)
			}
		default:
			return Stat{}, fmt.Errorf("parse duration '%s': expected 2 or 3 fields, got %d", text, len(fields))
		}
		if err != nil {
			return Stat{}, fmt.Errorf("parse duration '%s': %w", text, err)
		}
		return Stat{kind: STAT_DURATION, value: float64(h*3600 + m*60 + s)}, nil
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Stat{}, fmt.Errorf("parse number '%s': %w", text, err)
	}
	return NumberStat(n), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s Stat) String() string {
	switch s.kind {
	case STAT_DURATION:
		total := uint64(s.value)
		h := total / 3600
		m := total / 60 % 60
		sec := total % 60
		if h > 0 {
			return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
		}
		return fmt.Sprintf("%d:%02d", m, sec)
	case STAT_PERCENTAGE:
		return formatFloat(s.value) + "%"
	default:
		return formatFloat(s.value)
	}
}

func (s Stat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the canonical string form and bare JSON numbers.
func (s *Stat) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := ParseStat(text)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("stat must be a string or a number: %w", err)
	}
	*s = NumberStat(n)
	return nil
}

// HeroStats maps a stat's display name ("Time Played", "Eliminations", ...) to its value.
type HeroStats map[string]Stat

func (h HeroStats) Clone() HeroStats {
	if h == nil {
		return nil
	}
	out := make(HeroStats, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
