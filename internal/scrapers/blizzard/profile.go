package blizzard

import (
	"fmt"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/pkg/htmlutil"
	"owprofile-backend/pkg/owtypes"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_profile_hero_stats = "profile.hero-stats"
)

// ParseProfile extracts a career page. Title, portrait and the stat maps are
// optional and degrade to empty values, everything else must be present.
func ParseProfile(page string, btag owtypes.Battletag, tel telemetry.API) (owtypes.PlayerProfile, error) {
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return owtypes.PlayerProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	root := doc.Selection

	_, private := htmlutil.Find(root, ".Profile-player--privateText")

	endorsement, err := parseEndorsement(root)
	if err != nil {
		return owtypes.PlayerProfile{}, err
	}
	ranks, err := parseRanks(root)
	if err != nil {
		return owtypes.PlayerProfile{}, err
	}
	lastUpdated, err := parseLastUpdated(root)
	if err != nil {
		return owtypes.PlayerProfile{}, err
	}

	title, _ := htmlutil.FindInnerText(root, ".Profile-player--title")
	portrait, _ := htmlutil.FindAttr(root, ".Profile-player--portrait", "src")

	profile := owtypes.PlayerProfile{
		Battletag:   btag,
		Title:       title,
		Endorsement: endorsement,
		Portrait:    portrait,
		Ranks:       ranks,
		Private:     private,
		LastUpdated: lastUpdated,
	}

	for _, mode := range owtypes.Modes {
		for _, platform := range owtypes.Platforms {
			stats := map[string]owtypes.HeroStats{}
			if !private {
				parsed, err := parseHeroStats(root, mode, platform)
				if err != nil {
					tel.ReportBroken(report_profile_hero_stats, err, btag.String(), mode.String(), platform.String())
				} else {
					stats = parsed
				}
			}
			profile.SetStats(mode, platform, stats)
		}
	}

	return profile, nil
}

func parseEndorsement(root *goquery.Selection) (owtypes.Endorsement, error) {
	src, ok := htmlutil.FindAttr(root, ".Profile-playerSummary--endorsement", "src")
	if !ok {
		return 0, owtypes.NewParseError("endorsement", "missing endorsement icon")
	}
	endorsement, err := owtypes.EndorsementAt(htmlutil.UrlFile(src), 0)
	if err != nil {
		return 0, owtypes.NewParseError("endorsement", err.Error())
	}
	return endorsement, nil
}

func parseLastUpdated(root *goquery.Selection) (time.Time, error) {
	// attribute names are lowercased by the html parser
	value, ok := htmlutil.FindAttr(root, ".Profile-masthead", "data-lastupdate")
	if !ok {
		return time.Time{}, owtypes.NewParseError("last-updated", "missing masthead timestamp")
	}
	seconds, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return time.Time{}, owtypes.NewParseError("last-updated", "invalid timestamp '%s'", value)
	}
	return time.Unix(seconds, 0).UTC(), nil
}

func viewSelector(platform owtypes.Platform) string {
	if platform == owtypes.PLATFORM_CONSOLE {
		return ".Profile-view.controller-view"
	}
	return ".Profile-view.mouseKeyboard-view"
}

func containerSelector(mode owtypes.Mode) string {
	if mode == owtypes.MODE_QUICKPLAY {
		return ".stats.quickPlay-view"
	}
	return ".stats.competitive-view"
}

// parseHeroStats reads one mode and platform combination. A missing view,
// container or dropdown means there is no data for it, not that the page is broken.
func parseHeroStats(root *goquery.Selection, mode owtypes.Mode, platform owtypes.Platform) (map[string]owtypes.HeroStats, error) {
	heroes := map[string]owtypes.HeroStats{}

	view, ok := htmlutil.Find(root, viewSelector(platform))
	if !ok {
		return heroes, nil
	}
	container, ok := htmlutil.Find(view, containerSelector(mode))
	if !ok {
		return heroes, nil
	}
	dropdown, ok := htmlutil.Find(container, ".Profile-dropdown")
	if !ok {
		return heroes, nil
	}

	for _, option := range htmlutil.FindAll(dropdown, "option") {
		id, ok := htmlutil.Attr(option, "value")
		if !ok {
			return nil, owtypes.NewParseError("hero-stats", "dropdown option without value")
		}
		hero := htmlutil.InnerText(option)

		statsContainer, ok := htmlutil.Find(container, fmt.Sprintf(".stats-container.option-%s", id))
		if !ok {
			return nil, owtypes.NewParseError("hero-stats", "missing stats for '%s' (option %s)", hero, id)
		}

		stats := owtypes.HeroStats{}
		for _, item := range htmlutil.FindAll(statsContainer, ".stat-item") {
			name, ok := htmlutil.FindInnerText(item, ".name")
			if !ok {
				return nil, owtypes.NewParseError("hero-stats", "stat of '%s' without name", hero)
			}
			value, ok := htmlutil.FindInnerText(item, ".value")
			if !ok {
				return nil, owtypes.NewParseError("hero-stats", "stat '%s' of '%s' without value", name, hero)
			}
			stat, err := owtypes.ParseStat(value)
			if err != nil {
				return nil, owtypes.NewParseError("hero-stats", "stat '%s' of '%s': %s", name, hero, err.Error())
			}
			stats[name] = stat
		}
		heroes[hero] = stats
	}

	return heroes, nil
}
