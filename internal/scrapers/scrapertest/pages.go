// Package scrapertest renders minimal versions of the upstream pages, shaped
// like the real markup, for use in tests.

package scrapertest

import (
	"encoding/json"
	"fmt"
	"owprofile-backend/pkg/owtypes"
	"sort"
	"strings"
)

const staticHost = "https://static.example.com"

// HeroStatsText is hero name -> stat name -> displayed value.
type HeroStatsText map[string]map[string]string

type StatsKey struct {
	Mode     owtypes.Mode
	Platform owtypes.Platform
}

type ProfilePage struct {
	Private     bool
	Title       string
	Portrait    string
	Endorsement int
	LastUpdated int64
	Ranks       []owtypes.Rank
	Stats       map[StatsKey]HeroStatsText
}

func rankIconUrl(rank owtypes.Rank) string {
	return fmt.Sprintf("%s/rank/%sTier-%d-8f1a2c.png", staticHost, rank.Group, rank.Tier)
}

func roleIconFile(role owtypes.Role) string {
	switch role {
	case owtypes.ROLE_TANK:
		return "tank-f64e2a.svg"
	case owtypes.ROLE_DAMAGE:
		return "offense-ab34c1.svg"
	default:
		return "support-0c91d7.svg"
	}
}

func renderRoleWrapper(out *strings.Builder, rank owtypes.Rank) {
	out.WriteString(`<div class="Profile-playerSummary--roleWrapper">`)
	if rank.Console {
		fmt.Fprintf(
			out,
			`<div class="Profile-playerSummary--role"><svg role="img"><use xlink:href="%s/role/%s#icon"></use></svg></div>`,
			staticHost, roleIconFile(rank.Role),
		)
	} else {
		fmt.Fprintf(
			out,
			`<div class="Profile-playerSummary--role"><img src="%s/role/%s"></div>`,
			staticHost, roleIconFile(rank.Role),
		)
	}
	fmt.Fprintf(out, `<img class="Profile-playerSummary--rank" src="%s">`, rankIconUrl(rank))
	out.WriteString(`</div>`)
}

func renderRanks(out *strings.Builder, ranks []owtypes.Rank) {
	for _, console := range []bool{false, true} {
		var matching []owtypes.Rank
		for _, r := range ranks {
			if r.Console == console {
				matching = append(matching, r)
			}
		}
		if len(matching) == 0 {
			continue
		}
		class := "mouseKeyboard-view"
		if console {
			class = "controller-view"
		}
		fmt.Fprintf(out, `<div class="Profile-playerSummary--rankWrapper is-active %s">`, class)
		for _, r := range matching {
			renderRoleWrapper(out, r)
		}
		out.WriteString(`</div>`)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderStatsContainer(out *strings.Builder, mode owtypes.Mode, heroes HeroStatsText) {
	class := "quickPlay-view"
	if mode == owtypes.MODE_COMPETITIVE {
		class = "competitive-view"
	}
	fmt.Fprintf(out, `<div class="stats %s is-active">`, class)

	names := sortedKeys(heroes)
	out.WriteString(`<select class="Profile-dropdown">`)
	for i, hero := range names {
		fmt.Fprintf(out, `<option value="%d">%s</option>`, i, hero)
	}
	out.WriteString(`</select>`)

	for i, hero := range names {
		fmt.Fprintf(out, `<div class="stats-container option-%d">`, i)
		for _, stat := range sortedKeys(heroes[hero]) {
			fmt.Fprintf(
				out,
				`<div class="stat-item"><p class="name">%s</p><p class="value">%s</p></div>`,
				stat, heroes[hero][stat],
			)
		}
		out.WriteString(`</div>`)
	}
	out.WriteString(`</div>`)
}

func (p ProfilePage) Render() string {
	var out strings.Builder
	out.WriteString(`<!DOCTYPE html><html><head><title>Career</title></head><body>`)
	fmt.Fprintf(&out, `<div class="Profile-masthead" data-lastUpdate="%d">`, p.LastUpdated)
	out.WriteString(`<div class="Profile-player--summaryWrapper">`)
	if p.Portrait != "" {
		fmt.Fprintf(&out, `<img class="Profile-player--portrait" src="%s">`, p.Portrait)
	}
	if p.Title != "" {
		fmt.Fprintf(&out, `<h2 class="Profile-player--title">%s</h2>`, p.Title)
	}
	if p.Private {
		out.WriteString(`<p class="Profile-player--privateText">This profile is currently private</p>`)
	}
	out.WriteString(`<div class="Profile-playerSummary">`)
	fmt.Fprintf(&out, `<img class="Profile-playerSummary--endorsement" src="%s/endorsement/%d-9be3b3.svg">`, staticHost, p.Endorsement)
	renderRanks(&out, p.Ranks)
	out.WriteString(`</div></div></div>`)

	for _, platform := range owtypes.Platforms {
		class := "mouseKeyboard-view"
		if platform == owtypes.PLATFORM_CONSOLE {
			class = "controller-view"
		}
		var modes []owtypes.Mode
		for _, mode := range owtypes.Modes {
			if _, ok := p.Stats[StatsKey{Mode: mode, Platform: platform}]; ok {
				modes = append(modes, mode)
			}
		}
		if len(modes) == 0 {
			continue
		}
		fmt.Fprintf(&out, `<blz-section class="Profile-view %s">`, class)
		for _, mode := range modes {
			renderStatsContainer(&out, mode, p.Stats[StatsKey{Mode: mode, Platform: platform}])
		}
		out.WriteString(`</blz-section>`)
	}

	out.WriteString(`</body></html>`)
	return out.String()
}

// Overbuff role icons are told apart by the length of their svg markup.
var overbuffRoleLengths = map[owtypes.Role]int{
	owtypes.ROLE_TANK:    761,
	owtypes.ROLE_DAMAGE:  1690,
	owtypes.ROLE_SUPPORT: 1535,
}

// OverbuffRow is one row of the ranking table. Svg replaces the role icon's
// markup entirely, otherwise SvgLength overrides the length the role would
// normally have.
type OverbuffRow struct {
	Role      owtypes.Role
	SvgLength int
	Svg       string
	RankText  string
}

// OverbuffIconMarkup builds icon markup the way the site serves it, single
// quoted and self-closing, padded to exactly the role's length.
func OverbuffIconMarkup(role owtypes.Role) string {
	head := `<path fill='currentColor' fill-rule='evenodd' d='M12 2`
	tail := `Z'/><circle cx='12' cy='12' r='3'/>`
	return head + strings.Repeat(" L12 2", (overbuffRoleLengths[role]-len(head)-len(tail))/6) +
		strings.Repeat("0", (overbuffRoleLengths[role]-len(head)-len(tail))%6) + tail
}

func OverbuffRowFor(rank owtypes.Rank) OverbuffRow {
	return OverbuffRow{Role: rank.Role, RankText: rank.String()}
}

func OverbuffPage(rows []OverbuffRow) string {
	var out strings.Builder
	out.WriteString(`<!DOCTYPE html><html><body>`)
	out.WriteString(`<div class="flex flex-row justify-end gap-x-4"><div class="flex">Season 10</div></div>`)
	out.WriteString(`<div class="flex flex-row justify-end gap-x-4">`)
	for _, row := range rows {
		icon := row.Svg
		if icon == "" {
			length := row.SvgLength
			if length == 0 {
				length = overbuffRoleLengths[row.Role]
			}
			icon = strings.Repeat("x", length)
		}
		fmt.Fprintf(
			&out,
			`<div class="flex items-center gap-x-1"><svg viewBox="0 0 24 24">%s</svg><img alt="%s" src="%s/overbuff/rank.png"></div>`,
			icon, row.RankText, staticHost,
		)
	}
	out.WriteString(`</div></body></html>`)
	return out.String()
}

func HeroesPage(heroes []owtypes.Hero) string {
	var out strings.Builder
	out.WriteString(`<!DOCTYPE html><html><body><div class="heroIndexWrapper">`)
	for _, h := range heroes {
		fmt.Fprintf(
			&out,
			`<blz-hero-card class="heroCard" data-role="%s" hero-name="%s"><blz-image class="heroCardPortrait" src="%s"></blz-image><div class="heroCardName">%s</div></blz-hero-card>`,
			strings.ToLower(h.Role.String()), h.Name, h.Portrait, h.Name,
		)
	}
	out.WriteString(`</div></body></html>`)
	return out.String()
}

type catalogAsset struct {
	Id       string            `json:"id"`
	Name     map[string]string `json:"name"`
	Rarity   string            `json:"rarity"`
	IsNew    bool              `json:"isNew"`
	IsMarked bool              `json:"isMarked"`
	Icon     any               `json:"icon"`
	Data     struct {
		Category string `json:"category"`
	} `json:"data"`
}

func catalogJSON(assets []owtypes.Asset, kind owtypes.AssetKind) string {
	out := map[string]catalogAsset{}
	for _, a := range assets {
		if a.Kind != kind {
			continue
		}
		entry := catalogAsset{
			Id:       a.Id.String(),
			Name:     a.Name,
			Rarity:   string(a.Rarity),
			IsNew:    a.IsNew,
			IsMarked: a.IsMarked,
			Icon:     false,
		}
		if a.Icon != "" {
			entry.Icon = a.Icon
		}
		entry.Data.Category = kind.String()
		out[a.Id.String()] = entry
	}
	data, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// AssetsPage renders the search page with its embedded asset catalogs.
func AssetsPage(assets []owtypes.Asset) string {
	var out strings.Builder
	out.WriteString(`<!DOCTYPE html><html><body>`)
	out.WriteString(`<script>const locale = "en-us";</script>`)
	out.WriteString(`<script>const searchUrl = "/search/account-by-name/";</script>`)
	fmt.Fprintf(&out, `<script>const avatars = %s;</script>`, catalogJSON(assets, owtypes.ASSET_AVATAR))
	fmt.Fprintf(&out, `<script>const namecards = %s;</script>`, catalogJSON(assets, owtypes.ASSET_NAMECARD))
	fmt.Fprintf(&out, `<script>const titles = %s;</script>`, catalogJSON(assets, owtypes.ASSET_TITLE))
	out.WriteString(`<blz-search-box></blz-search-box></body></html>`)
	return out.String()
}

type SearchHit struct {
	Battletag   string
	LastUpdated int64
	IsPublic    bool
	Frame       *owtypes.AssetId
	Namecard    *owtypes.AssetId
	Portrait    *owtypes.AssetId
	Title       *owtypes.AssetId
}

func SearchResults(hits []SearchHit) string {
	type hitJSON struct {
		BattleTag   string           `json:"battleTag"`
		Frame       *owtypes.AssetId `json:"frame"`
		IsPublic    bool             `json:"isPublic"`
		LastUpdated int64            `json:"lastUpdated"`
		Namecard    *owtypes.AssetId `json:"namecard"`
		Portrait    *owtypes.AssetId `json:"portrait"`
		Title       *owtypes.AssetId `json:"title"`
	}
	out := make([]hitJSON, len(hits))
	for i, h := range hits {
		out[i] = hitJSON{
			BattleTag:   h.Battletag,
			Frame:       h.Frame,
			IsPublic:    h.IsPublic,
			LastUpdated: h.LastUpdated,
			Namecard:    h.Namecard,
			Portrait:    h.Portrait,
			Title:       h.Title,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func Id(id owtypes.AssetId) *owtypes.AssetId {
	return &id
}
