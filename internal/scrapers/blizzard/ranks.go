package blizzard

import (
	"owprofile-backend/pkg/htmlutil"
	"owprofile-backend/pkg/owtypes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type rankKey struct {
	role    owtypes.Role
	console bool
}

// parseRanks reads every role of every rank wrapper, there is one wrapper per
// platform. Unknown groups or roles fail the whole call.
func parseRanks(root *goquery.Selection) ([]owtypes.Rank, error) {
	ranks := []owtypes.Rank{}
	seen := map[rankKey]bool{}

	for _, wrapper := range htmlutil.FindAll(root, ".Profile-playerSummary--rankWrapper") {
		console := htmlutil.HasClass(wrapper, "controller-view")

		for _, roleWrapper := range htmlutil.FindAll(wrapper, ".Profile-playerSummary--roleWrapper") {
			rank, err := parseRank(roleWrapper, console)
			if err != nil {
				return nil, err
			}
			key := rankKey{role: rank.Role, console: console}
			if seen[key] {
				return nil, owtypes.NewParseError("rank", "duplicate %s rank (console: %v)", rank.Role, console)
			}
			seen[key] = true
			ranks = append(ranks, rank)
		}
	}

	return ranks, nil
}

func parseRank(roleWrapper *goquery.Selection, console bool) (owtypes.Rank, error) {
	src, ok := htmlutil.FindAttr(roleWrapper, ".Profile-playerSummary--rank", "src")
	if !ok {
		return owtypes.Rank{}, owtypes.NewParseError("rank", "missing rank icon")
	}

	// ex. GoldTier-3-8f1a2c.png
	file := htmlutil.UrlFile(src)
	prefix, rest, found := strings.Cut(file, "-")
	if !found {
		return owtypes.Rank{}, owtypes.NewParseError("rank", "unexpected rank icon '%s'", file)
	}
	groupName, isTier := strings.CutSuffix(prefix, "Tier")
	if !isTier {
		return owtypes.Rank{}, owtypes.NewParseError("rank", "unknown group '%s'", prefix)
	}
	group, err := owtypes.ParseGroup(groupName)
	if err != nil {
		return owtypes.Rank{}, owtypes.NewParseError("rank", err.Error())
	}
	tier, err := owtypes.TierAt(rest, 0)
	if err != nil {
		return owtypes.Rank{}, owtypes.NewParseError("rank", "tier of '%s': %s", file, err.Error())
	}

	role, err := parseRoleIcon(roleWrapper)
	if err != nil {
		return owtypes.Rank{}, err
	}

	return owtypes.Rank{
		Group:   group,
		Tier:    tier,
		Role:    role,
		Console: console,
	}, nil
}

var roleIconPrefixes = []struct {
	prefix string
	role   owtypes.Role
}{
	{prefix: "tank", role: owtypes.ROLE_TANK},
	{prefix: "offense", role: owtypes.ROLE_DAMAGE},
	{prefix: "support", role: owtypes.ROLE_SUPPORT},
}

// parseRoleIcon reads the role icon, an <img src> on pc markup and an svg
// <use xlink:href> on console markup.
func parseRoleIcon(roleWrapper *goquery.Selection) (owtypes.Role, error) {
	icon, ok := htmlutil.Find(roleWrapper, ".Profile-playerSummary--role")
	if !ok {
		return 0, owtypes.NewParseError("rank", "missing role icon")
	}

	ref, ok := htmlutil.Attr(icon, "src")
	if !ok {
		ref, ok = htmlutil.FindWithAttr(icon, "src", "xlink:href")
	}
	if !ok {
		return 0, owtypes.NewParseError("rank", "role icon without src or xlink:href")
	}

	file := htmlutil.UrlFile(ref)
	for _, p := range roleIconPrefixes {
		if strings.HasPrefix(file, p.prefix) {
			return p.role, nil
		}
	}
	return 0, owtypes.NewParseError("rank", "unknown role icon '%s'", file)
}
