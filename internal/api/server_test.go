package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/chrono"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/internal/scrapers/blizzard"
	"owprofile-backend/internal/scrapers/overbuff"
	"owprofile-backend/internal/scrapers/scrapertest"
	"owprofile-backend/pkg/owtypes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var playerBtag = owtypes.NewBattletag("Player", 1234)

func testPages() map[string]string {
	return map[string]string{
		blizzard.HeroesPage: scrapertest.HeroesPage([]owtypes.Hero{
			{Name: "Lúcio", Role: owtypes.ROLE_SUPPORT, Portrait: "https://static.example.com/lucio.png"},
			{Name: "Reinhardt", Role: owtypes.ROLE_TANK, Portrait: "https://static.example.com/reinhardt.png"},
		}),
		blizzard.SearchPage: scrapertest.AssetsPage([]owtypes.Asset{
			{Id: 0x1a, Kind: owtypes.ASSET_TITLE, Name: map[string]string{"en_US": "Cyber Demon"}},
			{Id: 0x2b, Kind: owtypes.ASSET_NAMECARD, Name: map[string]string{"en_US": "Ruins"}, Icon: "https://static.example.com/ruins.png"},
		}),
		blizzard.SearchUrl("Player"): scrapertest.SearchResults([]scrapertest.SearchHit{
			{Battletag: "Player#1234", LastUpdated: 1700000000, IsPublic: true, Title: scrapertest.Id(0x1a)},
		}),
		blizzard.ProfileUrl(playerBtag): scrapertest.ProfilePage{
			Endorsement: 2,
			LastUpdated: 1700000000,
			Ranks: []owtypes.Rank{
				{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK},
			},
			Stats: map[scrapertest.StatsKey]scrapertest.HeroStatsText{
				{Mode: owtypes.MODE_QUICKPLAY, Platform: owtypes.PLATFORM_PC}: {
					"Reinhardt": {"Time Played": "1:30:00"},
				},
			},
		}.Render(),
		overbuff.PlayerUrl(playerBtag): scrapertest.OverbuffPage([]scrapertest.OverbuffRow{
			scrapertest.OverbuffRowFor(owtypes.Rank{Group: owtypes.GROUP_SILVER, Tier: 2, Role: owtypes.ROLE_DAMAGE}),
		}),
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *fetch.Static) {
	static := fetch.NewStatic(testPages())
	c, err := client.New(context.Background(), static, chrono.NewFakeTime(time.Now()), telemetry.NewRecorder(), client.DefaultOptions())
	require.NoError(t, err)

	server := httptest.NewServer(NewServer(c, telemetry.NewRecorder(), Options{}).Handler())
	t.Cleanup(server.Close)
	return server, static
}

func get(t *testing.T, server *httptest.Server, path string, out any) *http.Response {
	res, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func TestSearch(t *testing.T) {
	server, _ := newTestServer(t)

	var found []owtypes.FoundPlayer
	res := get(t, server, "/api/v1/search?name=Player", &found)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.NotEmpty(t, res.Header.Get(RequestIdHeader))
	require.Len(t, found, 1)
	require.Equal(t, playerBtag, found[0].Battletag)
	require.Equal(t, map[string]string{"en_US": "Cyber Demon"}, found[0].Title)
}

func TestProfileEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	var reduced owtypes.PlayerProfileReduced
	res := get(t, server, "/api/v1/profile?name=Player&number=1234", &reduced)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, owtypes.Endorsement(2), reduced.Endorsement)
	require.Equal(t, []owtypes.Rank{{Group: owtypes.GROUP_GOLD, Tier: 3, Role: owtypes.ROLE_TANK}}, reduced.Ranks)

	var full owtypes.PlayerProfile
	res = get(t, server, "/api/v1/profile_full?battletag=Player-1234", &full)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, owtypes.DurationStat(90*time.Minute), full.QuickplayPc["Reinhardt"]["Time Played"])

	var ranks owtypes.Overbuff
	res = get(t, server, "/api/v1/overbuff?battletag=Player%231234", &ranks)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, []owtypes.Rank{{Group: owtypes.GROUP_SILVER, Tier: 2, Role: owtypes.ROLE_DAMAGE}}, ranks.Ranks)

	var summary map[string]any
	res = get(t, server, "/api/v1/lookup?name=Player&number=1234", &summary)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "Cyber Demon", summary["title"])
}

func TestCatalogEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	var heroes []owtypes.Hero
	res := get(t, server, "/api/v1/heroes", &heroes)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, heroes, 2)

	var hero owtypes.Hero
	res = get(t, server, "/api/v1/heroes/lucio", &hero)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "Lúcio", hero.Name)

	res = get(t, server, "/api/v1/heroes/qqqqqqqq", nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	var assets map[owtypes.AssetId]owtypes.Asset
	res = get(t, server, "/api/v1/assets", &assets)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, assets, 2)

	var titles map[owtypes.AssetId]owtypes.Asset
	res = get(t, server, "/api/v1/assets?kind=titles", &titles)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, titles, 1)
	require.Equal(t, "Cyber Demon", titles[0x1a].Name["en_US"])

	res = get(t, server, "/api/v1/assets?kind=sprays", nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var health map[string]string
	res = get(t, server, "/healthz", &health)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", health["status"])
}

func TestErrorStatuses(t *testing.T) {
	server, static := newTestServer(t)
	static.Fail(blizzard.ProfileUrl(owtypes.NewBattletag("Down", 1)), &fetch.HttpError{StatusCode: 503})
	static.Set(blizzard.ProfileUrl(owtypes.NewBattletag("Broken", 1)), "<html><body></body></html>")

	testCases := []struct {
		path   string
		status int
	}{
		{path: "/api/v1/search", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=Player", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=Player&number=abc", status: http.StatusBadRequest},
		{path: "/api/v1/profile?battletag=nonumber", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=Nobody&number=1", status: http.StatusNotFound},
		{path: "/api/v1/profile?name=Nobody&number=", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=&number=1", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=Nobody&number=-1", status: http.StatusBadRequest},
		{path: "/api/v1/profile?name=Down&number=1", status: http.StatusServiceUnavailable},
		{path: "/api/v1/profile_full?name=Broken&number=1", status: http.StatusInternalServerError},
		{path: "/api/v1/lookup?name=Player&number=1", status: http.StatusNotFound},
	}

	for _, test := range testCases {
		var body errorResponse
		res := get(t, server, test.path, &body)
		require.Equal(t, test.status, res.StatusCode, test.path)
		require.NotEmpty(t, body.Error, test.path)
		require.Equal(t, res.Header.Get(RequestIdHeader), body.RequestId, test.path)
	}
}

func TestBattletagNumberZero(t *testing.T) {
	server, static := newTestServer(t)
	zero := owtypes.NewBattletag("Zero", 0)
	static.Set(blizzard.ProfileUrl(zero), scrapertest.ProfilePage{
		Endorsement: 1,
		LastUpdated: 1700000000,
		Ranks:       []owtypes.Rank{{Group: owtypes.GROUP_BRONZE, Tier: 5, Role: owtypes.ROLE_SUPPORT}},
	}.Render())

	var reduced owtypes.PlayerProfileReduced
	res := get(t, server, "/api/v1/profile?name=Zero&number=0", &reduced)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, zero, reduced.Battletag)
	require.Equal(t, 1, static.Calls(blizzard.ProfileUrl(zero)))
}

func TestRequestIdPassthrough(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIdHeader, "abc-123")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, "abc-123", res.Header.Get(RequestIdHeader))
}

func TestSwap(t *testing.T) {
	static := fetch.NewStatic(testPages())
	first, err := client.New(context.Background(), static, chrono.NewFakeTime(time.Now()), telemetry.NewRecorder(), client.DefaultOptions())
	require.NoError(t, err)
	server := NewServer(first, telemetry.NewRecorder(), Options{})

	static.Set(blizzard.HeroesPage, scrapertest.HeroesPage([]owtypes.Hero{
		{Name: "Mercy", Role: owtypes.ROLE_SUPPORT, Portrait: "https://static.example.com/mercy.png"},
	}))
	second, err := client.New(context.Background(), static, chrono.NewFakeTime(time.Now()), telemetry.NewRecorder(), client.DefaultOptions())
	require.NoError(t, err)
	server.Swap(second)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/heroes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var heroes []owtypes.Hero
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &heroes))
	require.Len(t, heroes, 1)
	require.Equal(t, "Mercy", heroes[0].Name)
}

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{err: &InputError{Reason: "x"}, status: http.StatusBadRequest},
		{err: &owtypes.InvalidBattletagError{Value: "x"}, status: http.StatusBadRequest},
		{err: client.ErrPlayerNotFound, status: http.StatusNotFound},
		{err: &fetch.HttpError{StatusCode: 404}, status: http.StatusNotFound},
		{err: &fetch.HttpError{StatusCode: 429}, status: http.StatusTooManyRequests},
		{err: &fetch.HttpError{StatusCode: 302}, status: http.StatusBadGateway},
		{err: owtypes.NewParseError("profile", "x"), status: http.StatusInternalServerError},
		{err: context.DeadlineExceeded, status: http.StatusInternalServerError},
	}

	for _, test := range testCases {
		require.Equal(t, test.status, statusOf(test.err), test.err.Error())
	}
}
