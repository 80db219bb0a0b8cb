package owtypes

import (
	"strconv"
	"strings"
)

// AssetId identifies a cosmetic (namecard, portrait, title, ...). Upstream always
// writes it as hex.
type AssetId uint64

func ParseAssetId(text string) (AssetId, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	id, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, err
	}
	return AssetId(id), nil
}

func (id AssetId) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

func (id AssetId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *AssetId) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetId(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
