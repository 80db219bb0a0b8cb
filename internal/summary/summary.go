// Package summary condenses a search hit, a career profile and overbuff ranks
// into the single view shown by a player lookup.
package summary

import (
	"owprofile-backend/pkg/owtypes"
	"sort"
	"time"
)

const (
	STAT_TIME_PLAYED     = "Time Played"
	STAT_GAMES_WON       = "Games Won"
	STAT_GAMES_TIED      = "Games Tied"
	STAT_GAMES_LOST      = "Games Lost"
	STAT_WIN_PERCENTAGE  = "Win Percentage"
	STAT_WEAPON_ACCURACY = "Weapon Accuracy"

	ALL_HEROES = "ALL HEROES"

	DEFAULT_LOCALE = "en_US"
)

// VisibleHeroStats are the per hero stats a summary keeps.
var VisibleHeroStats = []string{STAT_TIME_PLAYED, STAT_WIN_PERCENTAGE, STAT_WEAPON_ACCURACY}

// Input is everything fetched for one player, Profile and Overbuff are nil
// when they could not be fetched or were not needed.
type Input struct {
	Found    owtypes.FoundPlayer
	Profile  *owtypes.PlayerProfile
	Overbuff *owtypes.Overbuff
	Heroes   []owtypes.Hero
}

// Record is a competitive pc record, WinRate is a percentage of all games.
type Record struct {
	TimePlayed owtypes.Stat `json:"timePlayed"`
	Won        int          `json:"won"`
	Tied       int          `json:"tied"`
	Lost       int          `json:"lost"`
	WinRate    float64      `json:"winRate"`
}

type RoleRecord struct {
	Role   owtypes.Role `json:"role"`
	Record Record       `json:"record"`
}

type HeroSummary struct {
	Hero  owtypes.Hero      `json:"hero"`
	Stats owtypes.HeroStats `json:"stats"`
}

type Summary struct {
	Battletag   owtypes.Battletag `json:"battletag"`
	Title       string            `json:"title,omitempty"`
	Namecard    string            `json:"namecard,omitempty"`
	Portrait    string            `json:"portrait,omitempty"`
	Frame       string            `json:"frame,omitempty"`
	IsPublic    bool              `json:"isPublic"`
	LastUpdated time.Time         `json:"lastUpdated"`
	HasProfile  bool              `json:"hasProfile"`

	// Ranks are ordered support, damage, tank.
	Ranks   []owtypes.Rank `json:"ranks"`
	Overall *Record        `json:"overall,omitempty"`
	Roles   []RoleRecord   `json:"roles"`
	// Heroes are ordered by time played, most played first.
	Heroes []HeroSummary `json:"heroes"`
}

func Build(input Input) Summary {
	s := Summary{
		Battletag:   input.Found.Battletag,
		Title:       input.Found.Title[DEFAULT_LOCALE],
		Namecard:    input.Found.Namecard,
		Portrait:    input.Found.Portrait,
		Frame:       input.Found.Frame,
		IsPublic:    input.Found.IsPublic,
		LastUpdated: input.Found.LastUpdated,
		HasProfile:  input.Profile != nil,
		Ranks:       Ranks(input.Profile, input.Overbuff),
		Roles:       []RoleRecord{},
		Heroes:      []HeroSummary{},
	}
	if input.Profile == nil {
		return s
	}

	stats := input.Profile.CompetitivePc
	if overall, ok := stats[ALL_HEROES]; ok {
		if record, ok := recordOf([]owtypes.HeroStats{overall}); ok {
			s.Overall = &record
		}
	}

	for _, role := range owtypes.Roles {
		var played []owtypes.HeroStats
		for _, hero := range input.Heroes {
			if hero.Role != role {
				continue
			}
			if heroStats, ok := stats[hero.Name]; ok {
				played = append(played, heroStats)
			}
		}
		record, ok := recordOf(played)
		if !ok {
			continue
		}
		s.Roles = append(s.Roles, RoleRecord{Role: role, Record: record})
	}

	s.Heroes = heroSummaries(stats, input.Heroes)
	return s
}

// Ranks prefers overbuff's rank for each role and platform, keeping the
// profile's ranks overbuff has nothing for.
func Ranks(profile *owtypes.PlayerProfile, overbuff *owtypes.Overbuff) []owtypes.Rank {
	var primary, secondary []owtypes.Rank
	if profile != nil {
		primary = profile.Ranks
	}
	if overbuff != nil {
		secondary = overbuff.Ranks
	}
	ranks := owtypes.MergeRanks(primary, secondary)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Role > ranks[j].Role
	})
	return ranks
}

// sum adds one stat across heroes, missing entries count as zero. It fails
// when the heroes disagree on the kind of the stat.
func sum(heroes []owtypes.HeroStats, name string, zero owtypes.Stat) (owtypes.Stat, bool) {
	total := zero
	for _, h := range heroes {
		stat, ok := h[name]
		if !ok {
			continue
		}
		total, ok = total.Add(stat)
		if !ok {
			return owtypes.Stat{}, false
		}
	}
	return total, true
}

func recordOf(heroes []owtypes.HeroStats) (Record, bool) {
	timePlayed, ok := sum(heroes, STAT_TIME_PLAYED, owtypes.DurationStat(0))
	if !ok {
		return Record{}, false
	}
	counts := [3]int{}
	for i, name := range []string{STAT_GAMES_WON, STAT_GAMES_TIED, STAT_GAMES_LOST} {
		total, ok := sum(heroes, name, owtypes.NumberStat(0))
		if !ok {
			return Record{}, false
		}
		counts[i] = int(total.Float())
	}

	record := Record{
		TimePlayed: timePlayed,
		Won:        counts[0],
		Tied:       counts[1],
		Lost:       counts[2],
	}
	games := record.Won + record.Tied + record.Lost
	if games > 0 {
		record.WinRate = float64(record.Won) / float64(games) * 100
	}
	return record, true
}

func heroSummaries(stats map[string]owtypes.HeroStats, heroes []owtypes.Hero) []HeroSummary {
	out := []HeroSummary{}
	for _, hero := range heroes {
		heroStats, ok := stats[hero.Name]
		if !ok {
			continue
		}
		visible := owtypes.HeroStats{}
		for _, name := range VisibleHeroStats {
			if stat, ok := heroStats[name]; ok {
				visible[name] = stat
			}
		}
		out = append(out, HeroSummary{Hero: hero, Stats: visible})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return timePlayed(out[i].Stats) > timePlayed(out[j].Stats)
	})
	return out
}

func timePlayed(stats owtypes.HeroStats) time.Duration {
	d, ok := stats[STAT_TIME_PLAYED].Duration()
	if !ok {
		return -1
	}
	return d
}
