package blizzard

import (
	"context"
	"errors"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/internal/scrapers/scrapertest"
	"owprofile-backend/pkg/owtypes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testBtag = owtypes.NewBattletag("Player", 1234)

func TestPublicProfile(t *testing.T) {
	page := scrapertest.ProfilePage{
		Title:       "Cyber Demon",
		Portrait:    "https://static.example.com/portrait.png",
		Endorsement: 3,
		LastUpdated: 1700000000,
		Ranks: []owtypes.Rank{
			{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK},
		},
		Stats: map[scrapertest.StatsKey]scrapertest.HeroStatsText{
			{Mode: owtypes.MODE_QUICKPLAY, Platform: owtypes.PLATFORM_PC}: {
				"HeroX": {"Time Played": "1:30:00", "Eliminations": "42"},
			},
		},
	}.Render()

	rec := telemetry.NewRecorder()
	profile, err := ParseProfile(page, testBtag, rec)
	require.NoError(t, err)

	require.False(t, profile.Private)
	require.Equal(t, testBtag, profile.Battletag)
	require.Equal(t, "Cyber Demon", profile.Title)
	require.Equal(t, "https://static.example.com/portrait.png", profile.Portrait)
	require.Equal(t, owtypes.Endorsement(3), profile.Endorsement)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), profile.LastUpdated)
	require.Equal(t, []owtypes.Rank{
		{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK, Console: false},
	}, profile.Ranks)

	expected := map[string]owtypes.HeroStats{
		"HeroX": {
			"Time Played":  owtypes.DurationStat(5400 * time.Second),
			"Eliminations": owtypes.NumberStat(42),
		},
	}
	if diff := cmp.Diff(expected, profile.QuickplayPc); diff != "" {
		t.Fatal(diff)
	}
	require.Empty(t, profile.CompetitivePc)
	require.Empty(t, profile.QuickplayConsole)
	require.Empty(t, profile.CompetitiveConsole)
	require.Empty(t, rec.Find(telemetry.REPORT_BROKEN, report_profile_hero_stats))
}

func TestPrivateProfile(t *testing.T) {
	page := scrapertest.ProfilePage{
		Private:     true,
		Endorsement: 1,
		LastUpdated: 1700000000,
		// private pages can still carry stat markup, it must be ignored
		Stats: map[scrapertest.StatsKey]scrapertest.HeroStatsText{
			{Mode: owtypes.MODE_COMPETITIVE, Platform: owtypes.PLATFORM_PC}: {
				"Ana": {"Time Played": "10:00"},
			},
		},
	}.Render()

	profile, err := ParseProfile(page, testBtag, telemetry.NewRecorder())
	require.NoError(t, err)

	require.True(t, profile.Private)
	require.Empty(t, profile.Ranks)
	require.NotNil(t, profile.Ranks)
	require.Equal(t, "", profile.Title)
	require.Equal(t, "", profile.Portrait)
	for _, mode := range owtypes.Modes {
		for _, platform := range owtypes.Platforms {
			stats := profile.Stats(mode, platform)
			require.NotNil(t, stats)
			require.Empty(t, stats)
		}
	}
}

func TestConsoleAndPcRanks(t *testing.T) {
	ranks := []owtypes.Rank{
		{Group: owtypes.GROUP_GRANDMASTER, Tier: 1, Role: owtypes.ROLE_DAMAGE},
		{Group: owtypes.GROUP_BRONZE, Tier: 5, Role: owtypes.ROLE_SUPPORT},
		{Group: owtypes.GROUP_PLATINUM, Tier: 2, Role: owtypes.ROLE_TANK, Console: true},
		{Group: owtypes.GROUP_MASTER, Tier: 4, Role: owtypes.ROLE_SUPPORT, Console: true},
	}
	page := scrapertest.ProfilePage{
		Endorsement: 5,
		LastUpdated: 1,
		Ranks:       ranks,
	}.Render()

	profile, err := ParseProfile(page, testBtag, telemetry.NewRecorder())
	require.NoError(t, err)
	require.Equal(t, ranks, profile.Ranks)
}

func TestAllStatMaps(t *testing.T) {
	stats := map[scrapertest.StatsKey]scrapertest.HeroStatsText{}
	for _, mode := range owtypes.Modes {
		for _, platform := range owtypes.Platforms {
			stats[scrapertest.StatsKey{Mode: mode, Platform: platform}] = scrapertest.HeroStatsText{
				"ALL HEROES": {"Games Won": "7", "Win Percentage": "50%"},
				"Lúcio":      {"Time Played": "12:34"},
			}
		}
	}
	page := scrapertest.ProfilePage{Endorsement: 2, LastUpdated: 1, Stats: stats}.Render()

	profile, err := ParseProfile(page, testBtag, telemetry.NewRecorder())
	require.NoError(t, err)

	for _, mode := range owtypes.Modes {
		for _, platform := range owtypes.Platforms {
			heroes := profile.Stats(mode, platform)
			require.Len(t, heroes, 2, "%s/%s", mode, platform)
			require.True(t, heroes["ALL HEROES"]["Win Percentage"].Equal(owtypes.PercentageStat(50)))
			require.True(t, heroes["Lúcio"]["Time Played"].Equal(owtypes.DurationStat(754*time.Second)))
		}
	}
}

func TestProfileParseFailures(t *testing.T) {
	valid := scrapertest.ProfilePage{
		Endorsement: 2,
		LastUpdated: 1,
		Ranks:       []owtypes.Rank{{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK}},
	}

	testCases := []struct {
		name string
		page string
	}{
		{
			name: "endorsement out of range",
			page: scrapertest.ProfilePage{Endorsement: 6, LastUpdated: 1}.Render(),
		},
		{
			name: "endorsement zero",
			page: scrapertest.ProfilePage{Endorsement: 0, LastUpdated: 1}.Render(),
		},
		{
			name: "missing endorsement",
			page: `<div class="Profile-masthead" data-lastUpdate="1"></div>`,
		},
		{
			name: "missing last updated",
			page: `<img class="Profile-playerSummary--endorsement" src="/e/2-a.svg">`,
		},
		{
			name: "unknown group",
			page: replace(valid.Render(), "GoldTier", "CopperTier"),
		},
		{
			name: "tier out of range",
			page: replace(valid.Render(), "GoldTier-3", "GoldTier-6"),
		},
		{
			name: "unknown role",
			page: replace(valid.Render(), "tank-f64e2a.svg", "flex-f64e2a.svg"),
		},
		{
			name: "duplicate role",
			page: scrapertest.ProfilePage{
				Endorsement: 2,
				LastUpdated: 1,
				Ranks: []owtypes.Rank{
					{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK},
					{Group: owtypes.GROUP_SILVER, Tier: 1, Role: owtypes.ROLE_TANK},
				},
			}.Render(),
		},
	}

	for _, test := range testCases {
		_, err := ParseProfile(test.page, testBtag, telemetry.NewRecorder())
		require.ErrorIs(t, err, owtypes.ErrParse, test.name)
	}
}

func TestMalformedStatsDegrade(t *testing.T) {
	page := scrapertest.ProfilePage{
		Endorsement: 2,
		LastUpdated: 1,
		Stats: map[scrapertest.StatsKey]scrapertest.HeroStatsText{
			{Mode: owtypes.MODE_QUICKPLAY, Platform: owtypes.PLATFORM_PC}: {
				"Ana": {"Time Played": "1:2:3:4"},
			},
			{Mode: owtypes.MODE_COMPETITIVE, Platform: owtypes.PLATFORM_PC}: {
				"Ana": {"Time Played": "1:00"},
			},
		},
	}.Render()

	rec := telemetry.NewRecorder()
	profile, err := ParseProfile(page, testBtag, rec)
	require.NoError(t, err)

	require.Empty(t, profile.QuickplayPc)
	require.Len(t, profile.CompetitivePc, 1)
	require.Len(t, rec.Find(telemetry.REPORT_BROKEN, report_profile_hero_stats), 1)
}

func TestParseHeroes(t *testing.T) {
	heroes := []owtypes.Hero{
		{Name: "D.Va", Role: owtypes.ROLE_TANK, Portrait: "https://static.example.com/dva.png"},
		{Name: "Lúcio", Role: owtypes.ROLE_SUPPORT, Portrait: "https://static.example.com/lucio.png"},
		{Name: "Venture", Role: owtypes.ROLE_DAMAGE, Portrait: "https://static.example.com/venture.png"},
	}

	parsed, err := ParseHeroes(scrapertest.HeroesPage(heroes))
	require.NoError(t, err)

	heroes[0].Color = "#fc79bdff"
	heroes[1].Color = "#67c519ff"
	require.Equal(t, heroes, parsed)

	_, err = ParseHeroes(`<html><body></body></html>`)
	require.ErrorIs(t, err, owtypes.ErrParse)

	_, err = ParseHeroes(`<div class="heroCard" data-role="healer" hero-name="X"><img class="heroCardPortrait" src="x"></div>`)
	require.ErrorIs(t, err, owtypes.ErrParse)
}

func TestParseAssets(t *testing.T) {
	assets := []owtypes.Asset{
		{Id: 0x10, Kind: owtypes.ASSET_AVATAR, Name: map[string]string{"en_US": "Avatar"}, Rarity: owtypes.RARITY_COMMON, Icon: "https://static.example.com/avatar.png"},
		{Id: 0x20, Kind: owtypes.ASSET_NAMECARD, Name: map[string]string{"en_US": "Card"}, Rarity: owtypes.RARITY_RARE, Icon: "https://static.example.com/card.png"},
		{Id: 0x1a, Kind: owtypes.ASSET_TITLE, Name: map[string]string{"en_US": "Cyber Demon"}, Rarity: owtypes.RARITY_EPIC},
	}

	parsed, err := ParseAssets(scrapertest.AssetsPage(assets))
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	for _, a := range assets {
		got, ok := parsed[a.Id]
		require.True(t, ok, a.Id.String())
		require.Equal(t, a.Kind, got.Kind)
		require.Equal(t, a.Name, got.Name)
		require.Equal(t, a.Icon, got.Icon)
		require.Equal(t, a.Rarity, got.Rarity)
	}

	_, err = ParseAssets(`<script>const a = 1;</script>`)
	require.ErrorIs(t, err, owtypes.ErrParse)

	_, err = ParseAssets(`const a = 1; const b = 2; const avatars = {oops; const namecards = {}; const titles = {};`)
	var deserialize *owtypes.DeserializeError
	require.True(t, errors.As(err, &deserialize))
}

func TestScraper(t *testing.T) {
	static := fetch.NewStatic(map[string]string{
		ProfileUrl(testBtag): scrapertest.ProfilePage{Endorsement: 4, LastUpdated: 1}.Render(),
		SearchUrl("Player"): scrapertest.SearchResults([]scrapertest.SearchHit{
			{Battletag: "Player#1234", LastUpdated: 1, IsPublic: true, Title: scrapertest.Id(0x1a)},
		}),
	})
	scraper := NewScraper(static, telemetry.NewRecorder())

	require.Equal(t, "https://overwatch.blizzard.com/en-us/career/Player-1234/", ProfileUrl(testBtag))

	profile, err := scraper.Profile(context.Background(), testBtag)
	require.NoError(t, err)
	require.Equal(t, owtypes.Endorsement(4), profile.Endorsement)

	hits, err := scraper.Search(context.Background(), "Player")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, owtypes.AssetId(0x1a), *hits[0].Title)

	_, err = scraper.Profile(context.Background(), owtypes.NewBattletag("Nobody", 1))
	var httpErr *fetch.HttpError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, 404, httpErr.StatusCode)
}

func replace(page, from, to string) string {
	return strings.ReplaceAll(page, from, to)
}
