package owtypes

import (
	"encoding/json"
	"time"
)

// RawFoundPlayer is a search hit as returned by the search endpoint, before
// its asset ids are resolved against the catalog.
type RawFoundPlayer struct {
	Battletag   string
	LastUpdated time.Time
	IsPublic    bool
	Frame       *AssetId
	Namecard    *AssetId
	Portrait    *AssetId
	Title       *AssetId
}

type rawFoundPlayerJSON struct {
	BattleTag   string   `json:"battleTag"`
	LastUpdated int64    `json:"lastUpdated"`
	IsPublic    bool     `json:"isPublic"`
	Frame       *AssetId `json:"frame"`
	Namecard    *AssetId `json:"namecard"`
	Portrait    *AssetId `json:"portrait"`
	Title       *AssetId `json:"title"`
}

func (r *RawFoundPlayer) UnmarshalJSON(data []byte) error {
	var raw rawFoundPlayerJSON
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	*r = RawFoundPlayer{
		Battletag:   raw.BattleTag,
		LastUpdated: time.Unix(raw.LastUpdated, 0).UTC(),
		IsPublic:    raw.IsPublic,
		Frame:       raw.Frame,
		Namecard:    raw.Namecard,
		Portrait:    raw.Portrait,
		Title:       raw.Title,
	}
	return nil
}

// DecodeSearchResults decodes the search endpoint's JSON array.
func DecodeSearchResults(data []byte) ([]RawFoundPlayer, error) {
	var out []RawFoundPlayer
	err := json.Unmarshal(data, &out)
	if err != nil {
		return nil, &DeserializeError{Source: "search", Err: err}
	}
	return out, nil
}

// FoundPlayer is a resolved search hit. Frame, Namecard and Portrait are icon
// urls, Title is a localized name map. Each is empty when the hit had no
// reference or the catalog does not know it.
type FoundPlayer struct {
	Battletag   Battletag         `json:"battleTag"`
	LastUpdated time.Time         `json:"lastUpdated"`
	IsPublic    bool              `json:"isPublic"`
	Frame       string            `json:"frame,omitempty"`
	Namecard    string            `json:"namecard,omitempty"`
	Portrait    string            `json:"portrait,omitempty"`
	Title       map[string]string `json:"title,omitempty"`
}

func (f FoundPlayer) Clone() FoundPlayer {
	f.Title = cloneLocalized(f.Title)
	return f
}

func CloneFoundPlayers(players []FoundPlayer) []FoundPlayer {
	if players == nil {
		return nil
	}
	out := make([]FoundPlayer, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
