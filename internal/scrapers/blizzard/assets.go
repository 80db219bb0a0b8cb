package blizzard

import (
	"owprofile-backend/pkg/owtypes"
	"strings"
)

// the search page declares its catalogs as `const <name> = {...}` script
// variables, the first two declarations are unrelated
const skippedDeclarations = 2

var catalogOrder = []owtypes.AssetKind{
	owtypes.ASSET_AVATAR,
	owtypes.ASSET_NAMECARD,
	owtypes.ASSET_TITLE,
}

// ParseAssets extracts the avatar, namecard and title catalogs embedded in
// the search page and merges them.
func ParseAssets(page string) (map[owtypes.AssetId]owtypes.Asset, error) {
	declarations := strings.Split(page, "const ")
	if len(declarations) < 1+skippedDeclarations+len(catalogOrder) {
		return nil, owtypes.NewParseError(
			"assets", "expected %d script declarations, found %d",
			skippedDeclarations+len(catalogOrder), len(declarations)-1,
		)
	}
	declarations = declarations[1+skippedDeclarations:]

	assets := map[owtypes.AssetId]owtypes.Asset{}
	for i, kind := range catalogOrder {
		value, err := declarationValue(declarations[i])
		if err != nil {
			return nil, err
		}
		decoded, err := owtypes.DecodeCatalogAssets([]byte(value), kind)
		if err != nil {
			return nil, err
		}
		for id, asset := range decoded {
			assets[id] = asset
		}
	}
	return assets, nil
}

// declarationValue returns the right hand side of `name = value;</script>`.
func declarationValue(declaration string) (string, error) {
	_, value, found := strings.Cut(declaration, "=")
	if !found {
		return "", owtypes.NewParseError("assets", "declaration without assignment")
	}
	value, _, _ = strings.Cut(value, "</script>")
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, ";")
	return strings.TrimSpace(value), nil
}
