package owtypes

import (
	"fmt"
	"strconv"
	"strings"
)

// Battletag is a player's handle, a free-form name plus a numeric discriminator.
type Battletag struct {
	Name   string
	Number uint64
}

func NewBattletag(name string, number uint64) Battletag {
	return Battletag{Name: name, Number: number}
}

// ParseBattletag accepts both the canonical `name#number` form and the
// `name-number` form used in URL paths.
func ParseBattletag(text string) (Battletag, error) {
	name, number, found := strings.Cut(text, "#")
	if !found {
		name, number, found = strings.Cut(text, "-")
	}
	if !found {
		return Battletag{}, &InvalidBattletagError{Value: text}
	}
	n, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return Battletag{}, &InvalidBattletagError{Value: text}
	}
	return Battletag{Name: name, Number: n}, nil
}

// Format renders the battletag, urlStyle selects the `name-number` form.
func (b Battletag) Format(urlStyle bool) string {
	if urlStyle {
		return fmt.Sprintf("%s-%d", b.Name, b.Number)
	}
	return fmt.Sprintf("%s#%d", b.Name, b.Number)
}

func (b Battletag) String() string {
	return b.Format(false)
}

// URLPath is the form upstream sites expect as a path segment.
func (b Battletag) URLPath() string {
	return b.Format(true)
}

func (b Battletag) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Battletag) UnmarshalText(text []byte) error {
	parsed, err := ParseBattletag(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
