// Package client is the entry point for reading player data, it fronts the
// scrapers with per resource caches and joins search hits with the catalog.
package client

import (
	"context"
	"errors"
	"fmt"
	"owprofile-backend/internal/cache"
	"owprofile-backend/internal/catalog"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/chrono"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/internal/scrapers/blizzard"
	"owprofile-backend/internal/scrapers/overbuff"
	"owprofile-backend/internal/summary"
	"owprofile-backend/pkg/owtypes"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	report_profile_fallback = "client.profile-fallback"
	report_lookup_profile   = "client.lookup-profile"
	report_lookup_overbuff  = "client.lookup-overbuff"
	report_catalog_heroes   = "catalog.heroes"
	report_catalog_assets   = "catalog.assets"
)

var ErrPlayerNotFound = errors.New("player not found")

// Options configures how long each kind of response stays cached,
// a window <= 0 keeps entries forever.
type Options struct {
	ProfileWindow  time.Duration
	OverbuffWindow time.Duration
	SearchWindow   time.Duration
}

func DefaultOptions() Options {
	return Options{
		ProfileWindow:  20 * time.Minute,
		OverbuffWindow: 20 * time.Minute,
		SearchWindow:   20 * time.Minute,
	}
}

// MaxOptions never expires anything.
func MaxOptions() Options {
	return Options{}
}

type Client struct {
	blizzard blizzard.Scraper
	overbuff overbuff.Scraper
	catalog  *catalog.Catalog
	tel      telemetry.API

	profiles  *cache.Timed[owtypes.Battletag, owtypes.PlayerProfile]
	overbuffs *cache.Timed[owtypes.Battletag, owtypes.Overbuff]
	searches  *cache.Timed[string, []owtypes.FoundPlayer]
}

// New loads the hero and asset catalogs, failing if either cannot be loaded.
func New(ctx context.Context, fetcher fetch.API, clock chrono.TimeAPI, tel telemetry.API, opts Options) (*Client, error) {
	assert.NotNil(fetcher)
	assert.NotNil(clock)
	assert.NotNil(tel)

	blizzardScraper := blizzard.NewScraper(fetcher, tel)

	var heroes []owtypes.Hero
	var assets map[owtypes.AssetId]owtypes.Asset
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		heroes, err = blizzardScraper.Heroes(groupCtx)
		if err != nil {
			return fmt.Errorf("load heroes: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		assets, err = blizzardScraper.Assets(groupCtx)
		if err != nil {
			return fmt.Errorf("load assets: %w", err)
		}
		return nil
	})
	err := group.Wait()
	if err != nil {
		return nil, err
	}

	scoped := telemetry.NewScopedAPI("client", tel)
	scoped.ReportCount(report_catalog_heroes, int64(len(heroes)))
	scoped.ReportCount(report_catalog_assets, int64(len(assets)))

	return &Client{
		blizzard: blizzardScraper,
		overbuff: overbuff.NewScraper(fetcher, tel),
		catalog:  catalog.New(assets, heroes),
		tel:      scoped,

		profiles:  cache.NewTimed[owtypes.Battletag]("profile", opts.ProfileWindow, owtypes.PlayerProfile.Clone, clock),
		overbuffs: cache.NewTimed[owtypes.Battletag]("overbuff", opts.OverbuffWindow, owtypes.Overbuff.Clone, clock),
		searches:  cache.NewTimed[string]("search", opts.SearchWindow, owtypes.CloneFoundPlayers, clock),
	}, nil
}

func (c *Client) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Client) Heroes() []owtypes.Hero {
	return c.catalog.Heroes()
}

func (c *Client) Assets() map[owtypes.AssetId]owtypes.Asset {
	return c.catalog.Assets()
}

// Search finds players whose name matches name, keyed in the cache by the
// query exactly as given.
func (c *Client) Search(ctx context.Context, name string) ([]owtypes.FoundPlayer, error) {
	if found, ok := c.searches.Get(name); ok {
		return found, nil
	}
	raw, err := c.blizzard.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	found, err := c.catalog.ResolveAll(raw)
	if err != nil {
		return nil, err
	}
	c.searches.Set(name, found)
	return found, nil
}

// ProfileFull returns the complete career profile as the career page shows
// it, without any ranks from overbuff.
func (c *Client) ProfileFull(ctx context.Context, btag owtypes.Battletag) (owtypes.PlayerProfile, error) {
	if profile, ok := c.profiles.Get(btag); ok {
		return profile, nil
	}
	profile, err := c.blizzard.Profile(ctx, btag)
	if err != nil {
		return owtypes.PlayerProfile{}, err
	}
	c.profiles.Set(btag, profile)
	return profile, nil
}

// Profile returns the profile without hero stats. Private profiles and
// profiles without ranks are topped up with overbuff's ranks, which replace
// the career page's rank for the same role and platform. An overbuff failure
// leaves the profile as it was.
func (c *Client) Profile(ctx context.Context, btag owtypes.Battletag) (owtypes.PlayerProfileReduced, error) {
	full, err := c.ProfileFull(ctx, btag)
	if err != nil {
		return owtypes.PlayerProfileReduced{}, err
	}
	reduced := full.Reduced()
	if !reduced.Private && len(reduced.Ranks) > 0 {
		return reduced, nil
	}

	fallback, err := c.Overbuff(ctx, btag)
	if err != nil {
		c.tel.ReportWarning(report_profile_fallback, btag.String(), err)
		return reduced, nil
	}
	reduced.Ranks = owtypes.MergeRanks(reduced.Ranks, fallback.Ranks)
	return reduced, nil
}

func (c *Client) Overbuff(ctx context.Context, btag owtypes.Battletag) (owtypes.Overbuff, error) {
	if ranks, ok := c.overbuffs.Get(btag); ok {
		return ranks, nil
	}
	ranks, err := c.overbuff.Overbuff(ctx, btag)
	if err != nil {
		return owtypes.Overbuff{}, err
	}
	c.overbuffs.Set(btag, ranks)
	return ranks, nil
}

// Lookup gathers everything known about one exact battletag into a summary.
// Only the search is required, a missing profile or overbuff page shrinks
// the summary instead of failing it.
func (c *Client) Lookup(ctx context.Context, btag owtypes.Battletag) (summary.Summary, error) {
	found, err := c.Search(ctx, btag.Name)
	if err != nil {
		return summary.Summary{}, fmt.Errorf("search: %w", err)
	}

	var player *owtypes.FoundPlayer
	for i := range found {
		if found[i].Battletag == btag {
			player = &found[i]
			break
		}
	}
	if player == nil {
		return summary.Summary{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, btag)
	}

	input := summary.Input{
		Found:  *player,
		Heroes: c.catalog.Heroes(),
	}

	profile, err := c.ProfileFull(ctx, btag)
	if err != nil {
		c.tel.ReportWarning(report_lookup_profile, btag.String(), err)
	} else {
		input.Profile = &profile
	}

	if input.Profile == nil || !player.IsPublic || len(profile.Ranks) == 0 {
		ranks, err := c.Overbuff(ctx, btag)
		if err != nil {
			c.tel.ReportWarning(report_lookup_overbuff, btag.String(), err)
		} else {
			input.Overbuff = &ranks
		}
	}

	return summary.Build(input), nil
}
