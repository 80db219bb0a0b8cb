package owtypes

import (
	"fmt"
	"time"
)

type Mode int

const (
	MODE_QUICKPLAY Mode = iota
	MODE_COMPETITIVE
)

func (m Mode) String() string {
	switch m {
	case MODE_QUICKPLAY:
		return "quickplay"
	case MODE_COMPETITIVE:
		return "competitive"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type Platform int

const (
	PLATFORM_CONSOLE Platform = iota
	PLATFORM_PC
)

func (p Platform) String() string {
	switch p {
	case PLATFORM_CONSOLE:
		return "console"
	case PLATFORM_PC:
		return "pc"
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

var (
	Modes     = []Mode{MODE_QUICKPLAY, MODE_COMPETITIVE}
	Platforms = []Platform{PLATFORM_CONSOLE, PLATFORM_PC}
)

// PlayerProfile is everything the career page exposes for one player.
// The four stat maps are keyed by hero name, "ALL HEROES" included.
type PlayerProfile struct {
	Battletag   Battletag   `json:"battletag"`
	Title       string      `json:"title,omitempty"`
	Endorsement Endorsement `json:"endorsement"`
	Portrait    string      `json:"portrait,omitempty"`
	Ranks       []Rank      `json:"ranks"`
	Private     bool        `json:"private"`
	LastUpdated time.Time   `json:"lastUpdated"`

	QuickplayConsole   map[string]HeroStats `json:"quickplayConsole"`
	CompetitiveConsole map[string]HeroStats `json:"competitiveConsole"`
	QuickplayPc        map[string]HeroStats `json:"quickplayPc"`
	CompetitivePc      map[string]HeroStats `json:"competitivePc"`
}

// PlayerProfileReduced is a PlayerProfile without the per hero stat maps.
type PlayerProfileReduced struct {
	Battletag   Battletag   `json:"battletag"`
	Title       string      `json:"title,omitempty"`
	Endorsement Endorsement `json:"endorsement"`
	Portrait    string      `json:"portrait,omitempty"`
	Ranks       []Rank      `json:"ranks"`
	Private     bool        `json:"private"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

func (p *PlayerProfile) statsField(mode Mode, platform Platform) *map[string]HeroStats {
	switch {
	case mode == MODE_QUICKPLAY && platform == PLATFORM_CONSOLE:
		return &p.QuickplayConsole
	case mode == MODE_COMPETITIVE && platform == PLATFORM_CONSOLE:
		return &p.CompetitiveConsole
	case mode == MODE_QUICKPLAY && platform == PLATFORM_PC:
		return &p.QuickplayPc
	case mode == MODE_COMPETITIVE && platform == PLATFORM_PC:
		return &p.CompetitivePc
	}
	panic(fmt.Sprintf("unknown stats combination %s/%s", mode, platform))
}

// Stats returns the hero stat map for one mode and platform.
func (p *PlayerProfile) Stats(mode Mode, platform Platform) map[string]HeroStats {
	return *p.statsField(mode, platform)
}

func (p *PlayerProfile) SetStats(mode Mode, platform Platform, stats map[string]HeroStats) {
	*p.statsField(mode, platform) = stats
}

func cloneStatMap(m map[string]HeroStats) map[string]HeroStats {
	if m == nil {
		return nil
	}
	out := make(map[string]HeroStats, len(m))
	for hero, stats := range m {
		out[hero] = stats.Clone()
	}
	return out
}

func (p PlayerProfile) Clone() PlayerProfile {
	p.Ranks = cloneRanks(p.Ranks)
	p.QuickplayConsole = cloneStatMap(p.QuickplayConsole)
	p.CompetitiveConsole = cloneStatMap(p.CompetitiveConsole)
	p.QuickplayPc = cloneStatMap(p.QuickplayPc)
	p.CompetitivePc = cloneStatMap(p.CompetitivePc)
	return p
}

func (p PlayerProfile) Reduced() PlayerProfileReduced {
	return PlayerProfileReduced{
		Battletag:   p.Battletag,
		Title:       p.Title,
		Endorsement: p.Endorsement,
		Portrait:    p.Portrait,
		Ranks:       cloneRanks(p.Ranks),
		Private:     p.Private,
		LastUpdated: p.LastUpdated,
	}
}

// Overbuff is the ranking scraped from the secondary ranking site.
type Overbuff struct {
	Ranks []Rank `json:"ranks"`
}

func (o Overbuff) Clone() Overbuff {
	return Overbuff{Ranks: cloneRanks(o.Ranks)}
}
