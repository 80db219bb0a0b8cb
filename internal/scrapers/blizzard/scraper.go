// Package blizzard extracts profiles, search hits, heroes and cosmetic assets
// from the official game website.

package blizzard

import (
	"context"
	"fmt"
	"net/url"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/pkg/owtypes"
)

const (
	BaseUrl    = "https://overwatch.blizzard.com/en-us"
	SearchPage = BaseUrl + "/search/"
	HeroesPage = BaseUrl + "/heroes/"
)

func ProfileUrl(btag owtypes.Battletag) string {
	return fmt.Sprintf("%s/career/%s/", BaseUrl, url.PathEscape(btag.URLPath()))
}

func SearchUrl(name string) string {
	return fmt.Sprintf("%s/search/account-by-name/%s", BaseUrl, url.PathEscape(name))
}

type Scraper struct {
	fetch fetch.API
	tel   telemetry.API
}

func NewScraper(fetcher fetch.API, tel telemetry.API) Scraper {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	return Scraper{
		fetch: fetcher,
		tel:   telemetry.NewScopedAPI("blizzard", tel),
	}
}

func (s Scraper) Profile(ctx context.Context, btag owtypes.Battletag) (owtypes.PlayerProfile, error) {
	page, err := s.fetch.Get(ctx, ProfileUrl(btag))
	if err != nil {
		return owtypes.PlayerProfile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return ParseProfile(page, btag, s.tel)
}

// Search returns the raw hits for name, their asset ids still unresolved.
func (s Scraper) Search(ctx context.Context, name string) ([]owtypes.RawFoundPlayer, error) {
	body, err := s.fetch.Get(ctx, SearchUrl(name))
	if err != nil {
		return nil, fmt.Errorf("fetch search: %w", err)
	}
	return owtypes.DecodeSearchResults([]byte(body))
}

func (s Scraper) Heroes(ctx context.Context) ([]owtypes.Hero, error) {
	page, err := s.fetch.Get(ctx, HeroesPage)
	if err != nil {
		return nil, fmt.Errorf("fetch heroes: %w", err)
	}
	return ParseHeroes(page)
}

func (s Scraper) Assets(ctx context.Context) (map[owtypes.AssetId]owtypes.Asset, error) {
	page, err := s.fetch.Get(ctx, SearchPage)
	if err != nil {
		return nil, fmt.Errorf("fetch assets: %w", err)
	}
	return ParseAssets(page)
}
