// Package catalog holds the asset and hero snapshot loaded when a client is
// built, and resolves the asset ids carried by search hits against it.
package catalog

import (
	"owprofile-backend/pkg/owtypes"
	"strings"

	"github.com/antzucaro/matchr"
)

// Catalog is read-only once built and is safe to share between goroutines.
type Catalog struct {
	assets map[owtypes.AssetId]owtypes.Asset
	heroes []owtypes.Hero
}

func New(assets map[owtypes.AssetId]owtypes.Asset, heroes []owtypes.Hero) *Catalog {
	return &Catalog{
		assets: cloneAssets(assets),
		heroes: cloneHeroes(heroes),
	}
}

func cloneAssets(assets map[owtypes.AssetId]owtypes.Asset) map[owtypes.AssetId]owtypes.Asset {
	out := make(map[owtypes.AssetId]owtypes.Asset, len(assets))
	for id, a := range assets {
		out[id] = a.Clone()
	}
	return out
}

func cloneHeroes(heroes []owtypes.Hero) []owtypes.Hero {
	out := make([]owtypes.Hero, len(heroes))
	copy(out, heroes)
	return out
}

func (c *Catalog) Asset(id owtypes.AssetId) (owtypes.Asset, bool) {
	a, ok := c.assets[id]
	if !ok {
		return owtypes.Asset{}, false
	}
	return a.Clone(), true
}

func (c *Catalog) Assets() map[owtypes.AssetId]owtypes.Asset {
	return cloneAssets(c.assets)
}

func (c *Catalog) Heroes() []owtypes.Hero {
	return cloneHeroes(c.heroes)
}

func (c *Catalog) HeroesWithRole(role owtypes.Role) []owtypes.Hero {
	var out []owtypes.Hero
	for _, h := range c.heroes {
		if h.Role == role {
			out = append(out, h)
		}
	}
	return out
}

func (c *Catalog) icon(id *owtypes.AssetId) string {
	if id == nil {
		return ""
	}
	return c.assets[*id].Icon
}

func (c *Catalog) name(id *owtypes.AssetId) map[string]string {
	if id == nil {
		return nil
	}
	a, ok := c.assets[*id]
	if !ok || len(a.Name) == 0 {
		return nil
	}
	out := make(map[string]string, len(a.Name))
	for locale, n := range a.Name {
		out[locale] = n
	}
	return out
}

// Resolve converts a raw search hit, unknown asset ids resolve to empty values.
func (c *Catalog) Resolve(raw owtypes.RawFoundPlayer) (owtypes.FoundPlayer, error) {
	btag, err := owtypes.ParseBattletag(raw.Battletag)
	if err != nil {
		return owtypes.FoundPlayer{}, err
	}
	return owtypes.FoundPlayer{
		Battletag:   btag,
		LastUpdated: raw.LastUpdated,
		IsPublic:    raw.IsPublic,
		Frame:       c.icon(raw.Frame),
		Namecard:    c.icon(raw.Namecard),
		Portrait:    c.icon(raw.Portrait),
		Title:       c.name(raw.Title),
	}, nil
}

// ResolveAll resolves every hit, one malformed battletag fails the whole batch.
func (c *Catalog) ResolveAll(raws []owtypes.RawFoundPlayer) ([]owtypes.FoundPlayer, error) {
	out := make([]owtypes.FoundPlayer, len(raws))
	for i, raw := range raws {
		found, err := c.Resolve(raw)
		if err != nil {
			return nil, err
		}
		out[i] = found
	}
	return out, nil
}

// hero names only ever carry a handful of accented letters
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ï", "i",
	"ó", "o", "ô", "o", "ö", "o",
	"ú", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

func foldName(name string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(name)))
}

const minHeroSimilarity = 0.7

// FindHero returns the hero whose name is closest to query by Jaro-Winkler
// similarity, false when nothing is similar enough.
func (c *Catalog) FindHero(query string) (owtypes.Hero, bool) {
	folded := foldName(query)
	if folded == "" {
		return owtypes.Hero{}, false
	}

	best := -1
	bestScore := 0.0
	for i, h := range c.heroes {
		name := foldName(h.Name)
		if name == folded {
			return h, true
		}
		score := matchr.JaroWinkler(folded, name, false)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < minHeroSimilarity {
		return owtypes.Hero{}, false
	}
	return c.heroes[best], true
}
