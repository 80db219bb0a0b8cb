package blizzard

import (
	"fmt"
	"owprofile-backend/pkg/htmlutil"
	"owprofile-backend/pkg/owtypes"
)

func ParseHeroes(page string) ([]owtypes.Hero, error) {
	doc, err := htmlutil.ParseDocument(page)
	if err != nil {
		return nil, fmt.Errorf("parse heroes: %w", err)
	}

	cards := htmlutil.FindAll(doc.Selection, ".heroCard")
	if len(cards) == 0 {
		return nil, owtypes.NewParseError("heroes", "no hero cards")
	}

	heroes := make([]owtypes.Hero, 0, len(cards))
	for _, card := range cards {
		name, ok := htmlutil.Attr(card, "hero-name")
		if !ok {
			return nil, owtypes.NewParseError("heroes", "hero card without name")
		}
		roleName, ok := htmlutil.Attr(card, "data-role")
		if !ok {
			return nil, owtypes.NewParseError("heroes", "'%s' has no role", name)
		}
		role, err := owtypes.ParseRole(roleName)
		if err != nil {
			return nil, owtypes.NewParseError("heroes", "'%s': %s", name, err.Error())
		}
		portrait, ok := htmlutil.FindAttr(card, ".heroCardPortrait", "src")
		if !ok {
			return nil, owtypes.NewParseError("heroes", "'%s' has no portrait", name)
		}

		heroes = append(heroes, owtypes.Hero{
			Name:     name,
			Role:     role,
			Portrait: portrait,
			Color:    owtypes.HeroColor(name),
		})
	}
	return heroes, nil
}
