// Package overbuff extracts competitive ranks from overbuff, the secondary
// ranking site consulted when a career page has none.

package overbuff

import (
	"context"
	"fmt"
	"net/url"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/pkg/htmlutil"
	"owprofile-backend/pkg/owtypes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const BaseUrl = "https://www.overbuff.com"

func PlayerUrl(btag owtypes.Battletag) string {
	return fmt.Sprintf("%s/players/%s/", BaseUrl, url.PathEscape(btag.URLPath()))
}

// the site has no semantic markup for roles, each role icon is recognized by
// the length of its svg markup as served, not as re-rendered by the parser.
// these must be updated whenever the icons change.
var roleBySvgLength = map[int]owtypes.Role{
	761:  owtypes.ROLE_TANK,
	1690: owtypes.ROLE_DAMAGE,
	1535: owtypes.ROLE_SUPPORT,
}

const rankContainerSelector = "div.flex.flex-row.justify-end.gap-x-4"

type Scraper struct {
	fetch fetch.API
	tel   telemetry.API
}

func NewScraper(fetcher fetch.API, tel telemetry.API) Scraper {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	return Scraper{
		fetch: fetcher,
		tel:   telemetry.NewScopedAPI("overbuff", tel),
	}
}

func (s Scraper) Overbuff(ctx context.Context, btag owtypes.Battletag) (owtypes.Overbuff, error) {
	page, err := s.fetch.Get(ctx, PlayerUrl(btag))
	if err != nil {
		return owtypes.Overbuff{}, fmt.Errorf("fetch overbuff: %w", err)
	}
	overbuff, err := ParseOverbuff(page)
	if err != nil {
		return owtypes.Overbuff{}, err
	}
	s.tel.ReportDebug("parsed ranks", btag.String(), len(overbuff.Ranks))
	return overbuff, nil
}

// ParseOverbuff reads the second rank container on the page, one row per role.
// Overbuff only tracks pc ranks.
func ParseOverbuff(page string) (owtypes.Overbuff, error) {
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return owtypes.Overbuff{}, fmt.Errorf("parse overbuff: %w", err)
	}

	containers := htmlutil.FindAll(doc.Selection, rankContainerSelector)
	if len(containers) < 2 {
		return owtypes.Overbuff{}, owtypes.NewParseError("overbuff", "expected 2 rank containers, found %d", len(containers))
	}
	container := containers[1]

	icons := roleIcons{
		parsed: doc.Find("svg"),
		raw:    htmlutil.RawInnerHTML(page, "svg"),
	}
	if icons.parsed.Length() != len(icons.raw) {
		return owtypes.Overbuff{}, owtypes.NewParseError(
			"overbuff", "found %d svg elements but %d in the source",
			icons.parsed.Length(), len(icons.raw),
		)
	}

	ranks := []owtypes.Rank{}
	var parseErr error
	container.ChildrenFiltered("div.flex").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		rank, err := parseRow(row, icons)
		if err != nil {
			parseErr = err
			return false
		}
		ranks = append(ranks, rank)
		return true
	})
	if parseErr != nil {
		return owtypes.Overbuff{}, parseErr
	}

	return owtypes.Overbuff{Ranks: ranks}, nil
}

// roleIcons pairs every parsed svg element with its source markup, both are
// in document order.
type roleIcons struct {
	parsed *goquery.Selection
	raw    []string
}

func (i roleIcons) sourceLength(svg *goquery.Selection) (int, bool) {
	idx := i.parsed.IndexOfSelection(svg)
	if idx < 0 || idx >= len(i.raw) {
		return 0, false
	}
	return len(i.raw[idx]), true
}

func parseRow(row *goquery.Selection, icons roleIcons) (owtypes.Rank, error) {
	svg, ok := htmlutil.Find(row, "svg")
	if !ok {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "rank row without role icon")
	}
	length, ok := icons.sourceLength(svg)
	if !ok {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "role icon missing from the source")
	}
	role, ok := roleBySvgLength[length]
	if !ok {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "unknown role icon of length %d", length)
	}

	// ex. "Gold 3"
	text, ok := htmlutil.FindAttr(row, "img", "alt")
	if !ok {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "rank row without rank icon")
	}
	groupName, division, found := strings.Cut(text, " ")
	if !found {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "unexpected rank '%s'", text)
	}
	group, err := owtypes.ParseGroup(groupName)
	if err != nil {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", err.Error())
	}
	tier, err := owtypes.ParseTier(division)
	if err != nil {
		return owtypes.Rank{}, owtypes.NewParseError("overbuff", "division of '%s': %s", text, err.Error())
	}

	return owtypes.Rank{
		Group:   group,
		Tier:    tier,
		Role:    role,
		Console: false,
	}, nil
}
