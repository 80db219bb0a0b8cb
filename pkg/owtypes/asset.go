package owtypes

import (
	"encoding/json"
	"fmt"
)

type AssetKind int

const (
	ASSET_AVATAR AssetKind = iota
	ASSET_NAMECARD
	ASSET_TITLE
)

// the catalog page names its categories in the plural
var assetKindNames = []string{"avatars", "namecards", "titles"}

func ParseAssetKind(name string) (AssetKind, error) {
	for i, n := range assetKindNames {
		if n == name {
			return AssetKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown asset kind '%s'", name)
}

func (k AssetKind) String() string {
	if k < 0 || int(k) >= len(assetKindNames) {
		return fmt.Sprintf("AssetKind(%d)", int(k))
	}
	return assetKindNames[k]
}

func (k AssetKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(assetKindNames) {
		return nil, fmt.Errorf("invalid asset kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *AssetKind) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type Rarity string

const (
	RARITY_COMMON Rarity = "COMMON"
	RARITY_RARE   Rarity = "RARE"
	RARITY_EPIC   Rarity = "EPIC"
)

// IdName is a loose reference to another catalog entity, either half may be missing.
type IdName struct {
	Id   *AssetId `json:"id"`
	Name *string  `json:"name"`
}

type Release struct {
	Id      AssetId `json:"id"`
	Name    string  `json:"name"`
	Version float64 `json:"version"`
	Title   *string `json:"title"`
}

// Asset is a cosmetic item, Name maps a locale such as "en_US" to its display name.
type Asset struct {
	Id       AssetId           `json:"id"`
	Name     map[string]string `json:"name"`
	Kind     AssetKind         `json:"kind"`
	Type     IdName            `json:"type"`
	Rarity   Rarity            `json:"rarity"`
	Hero     IdName            `json:"hero"`
	Release  Release           `json:"release"`
	Event    IdName            `json:"event"`
	IsNew    bool              `json:"isNew"`
	IsMarked bool              `json:"isMarked"`
	Icon     string            `json:"icon,omitempty"`
}

// rawAsset is the shape embedded in the catalog page, where the kind lives
// under data.category and a missing icon is written as null or false.
type rawAsset struct {
	Id       AssetId           `json:"id"`
	Name     map[string]string `json:"name"`
	Type     IdName            `json:"type"`
	Rarity   Rarity            `json:"rarity"`
	Hero     IdName            `json:"hero"`
	Release  Release           `json:"release"`
	Event    IdName            `json:"event"`
	IsNew    bool              `json:"isNew"`
	IsMarked bool              `json:"isMarked"`
	Icon     json.RawMessage   `json:"icon"`
	Data     struct {
		Category string `json:"category"`
	} `json:"data"`
}

// DecodeCatalogAssets decodes one `id -> asset` object as it appears in the
// catalog page. fallback is used for entries that carry no category.
func DecodeCatalogAssets(data []byte, fallback AssetKind) (map[AssetId]Asset, error) {
	var raw map[AssetId]rawAsset
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, &DeserializeError{Source: fallback.String(), Err: err}
	}

	out := make(map[AssetId]Asset, len(raw))
	for id, r := range raw {
		kind := fallback
		if r.Data.Category != "" {
			kind, err = ParseAssetKind(r.Data.Category)
			if err != nil {
				return nil, &DeserializeError{Source: fallback.String(), Err: err}
			}
		}
		var icon string
		if len(r.Icon) > 0 && r.Icon[0] == '"' {
			err = json.Unmarshal(r.Icon, &icon)
			if err != nil {
				return nil, &DeserializeError{Source: fallback.String(), Err: err}
			}
		}
		if r.Id == 0 {
			r.Id = id
		}
		out[id] = Asset{
			Id:       r.Id,
			Name:     r.Name,
			Kind:     kind,
			Type:     r.Type,
			Rarity:   r.Rarity,
			Hero:     r.Hero,
			Release:  r.Release,
			Event:    r.Event,
			IsNew:    r.IsNew,
			IsMarked: r.IsMarked,
			Icon:     icon,
		}
	}
	return out, nil
}

func cloneLocalized(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (n IdName) Clone() IdName {
	return IdName{Id: clonePtr(n.Id), Name: clonePtr(n.Name)}
}

func (a Asset) Clone() Asset {
	a.Name = cloneLocalized(a.Name)
	a.Type = a.Type.Clone()
	a.Hero = a.Hero.Clone()
	a.Event = a.Event.Clone()
	a.Release.Title = clonePtr(a.Release.Title)
	return a
}
