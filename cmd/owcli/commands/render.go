package commands

import (
	"fmt"
	"io"
	"owprofile-backend/internal/summary"
	"owprofile-backend/pkg/owtypes"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

const locale = "en_US"

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(header)
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateTime)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderSearch(w io.Writer, found []owtypes.FoundPlayer) {
	t := newTable(w, "", table.Row{"Battletag", "Public", "Title", "Last Updated"})
	for _, p := range found {
		t.AppendRow(table.Row{p.Battletag.String(), p.IsPublic, orDash(p.Title[locale]), formatTime(p.LastUpdated)})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d players", len(found))})
	t.Render()
}

func renderRanks(w io.Writer, ranks []owtypes.Rank) {
	t := newTable(w, "Ranks", table.Row{"Role", "Rank", "Platform"})
	for _, r := range ranks {
		platform := owtypes.PLATFORM_PC
		if r.Console {
			platform = owtypes.PLATFORM_CONSOLE
		}
		t.AppendRow(table.Row{r.Role.String(), r.String(), platform.String()})
	}
	t.Render()
}

func renderProfile(w io.Writer, p owtypes.PlayerProfileReduced) {
	t := newTable(w, p.Battletag.String(), table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Title", orDash(p.Title)},
		{"Endorsement", int(p.Endorsement)},
		{"Private", p.Private},
		{"Last Updated", formatTime(p.LastUpdated)},
	})
	t.Render()
	renderRanks(w, p.Ranks)
}

func renderHeroStats(w io.Writer, title string, stats map[string]owtypes.HeroStats) {
	if len(stats) == 0 {
		return
	}
	t := newTable(w, title, table.Row{"Hero", "Stat", "Value"})
	heroes := make([]string, 0, len(stats))
	for hero := range stats {
		heroes = append(heroes, hero)
	}
	sort.Strings(heroes)
	for _, hero := range heroes {
		names := make([]string, 0, len(stats[hero]))
		for name := range stats[hero] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			t.AppendRow(table.Row{hero, name, stats[hero][name].String()})
		}
		t.AppendSeparator()
	}
	t.Render()
}

func renderProfileFull(w io.Writer, p owtypes.PlayerProfile) {
	renderProfile(w, p.Reduced())
	for _, mode := range owtypes.Modes {
		for _, platform := range owtypes.Platforms {
			renderHeroStats(w, fmt.Sprintf("%s (%s)", mode, platform), p.Stats(mode, platform))
		}
	}
}

func recordRow(label string, r summary.Record) table.Row {
	return table.Row{label, r.TimePlayed.String(), fmt.Sprintf("%d - %d - %d", r.Won, r.Tied, r.Lost), fmt.Sprintf("%.1f%%", r.WinRate)}
}

func renderSummary(w io.Writer, s summary.Summary) {
	title := s.Battletag.String()
	if s.Title != "" {
		title = fmt.Sprintf("%s (%s)", title, s.Title)
	}
	renderRanks(w, s.Ranks)

	t := newTable(w, title, table.Row{"", "Time Played", "Record", "Win Rate"})
	if s.Overall != nil {
		t.AppendRow(recordRow("Overall", *s.Overall))
	}
	for _, role := range s.Roles {
		t.AppendRow(recordRow(role.Role.String(), role.Record))
	}
	t.Render()

	if len(s.Heroes) == 0 {
		return
	}
	heroes := newTable(w, "Heroes", table.Row{"Hero", "Time Played", "Win Percentage", "Weapon Accuracy"})
	for _, h := range s.Heroes {
		row := table.Row{h.Hero.Name}
		for _, name := range summary.VisibleHeroStats {
			stat, ok := h.Stats[name]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, stat.String())
		}
		heroes.AppendRow(row)
	}
	heroes.Render()
}

func renderHeroes(w io.Writer, heroes []owtypes.Hero) {
	t := newTable(w, "", table.Row{"Hero", "Role", "Color"})
	for _, h := range heroes {
		t.AppendRow(table.Row{h.Name, h.Role.String(), orDash(h.Color)})
	}
	t.Render()
}

func renderAssets(w io.Writer, assets []owtypes.Asset) {
	t := newTable(w, "", table.Row{"Id", "Kind", "Name", "Rarity"})
	for _, a := range assets {
		t.AppendRow(table.Row{a.Id.String(), a.Kind.String(), orDash(a.Name[locale]), orDash(string(a.Rarity))})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d assets", len(assets))})
	t.Render()
}
