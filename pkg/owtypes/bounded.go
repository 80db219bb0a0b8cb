package owtypes

import (
	"encoding/json"
	"fmt"
)

const (
	boundedMin = 1
	boundedMax = 5
)

// parseDigit reads the single ascii digit at pos and rejects anything outside of 1..5.
func parseDigit(text string, pos int) (uint8, error) {
	if pos < 0 || pos >= len(text) {
		return 0, fmt.Errorf("no digit at position %d of '%s'", pos, text)
	}
	c := text[pos]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("'%c' at position %d of '%s' is not a digit", c, pos, text)
	}
	n := c - '0'
	if n < boundedMin || n > boundedMax {
		return 0, fmt.Errorf("%d is out of range %d..%d", n, boundedMin, boundedMax)
	}
	return n, nil
}

func checkBounded(n uint8) error {
	if n < boundedMin || n > boundedMax {
		return fmt.Errorf("%d is out of range %d..%d", n, boundedMin, boundedMax)
	}
	return nil
}

// Tier is the sub-division of a rank group, 1 being the highest.
type Tier uint8

// TierAt parses the tier digit found at pos in text.
func TierAt(text string, pos int) (Tier, error) {
	n, err := parseDigit(text, pos)
	return Tier(n), err
}

// ParseTier parses text that consists of exactly one tier digit.
func ParseTier(text string) (Tier, error) {
	if len(text) != 1 {
		return 0, fmt.Errorf("expected a single digit tier, got '%s'", text)
	}
	return TierAt(text, 0)
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if err := checkBounded(n); err != nil {
		return fmt.Errorf("tier: %w", err)
	}
	*t = Tier(n)
	return nil
}

// Endorsement is a 1..5 community reputation level.
type Endorsement uint8

func EndorsementAt(text string, pos int) (Endorsement, error) {
	n, err := parseDigit(text, pos)
	return Endorsement(n), err
}

func (e *Endorsement) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if err := checkBounded(n); err != nil {
		return fmt.Errorf("endorsement: %w", err)
	}
	*e = Endorsement(n)
	return nil
}
