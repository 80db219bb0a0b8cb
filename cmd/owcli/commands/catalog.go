package commands

import (
	"fmt"
	"owprofile-backend/pkg/owtypes"
	"sort"

	"github.com/spf13/cobra"
)

var assetKind *string

func init() {
	assetKind = assetsCmd.Flags().String("kind", "", "Only list one kind of asset: avatars, namecards or titles.")
	rootCmd.AddCommand(heroesCmd, assetsCmd)
}

var heroesCmd = &cobra.Command{
	Use:   "heroes [name]",
	Short: "Lists every hero, or the hero closest to name.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		heroes := c.Heroes()
		if len(args) == 1 {
			hero, ok := c.Catalog().FindHero(args[0])
			if !ok {
				return fmt.Errorf("no hero named like '%s'", args[0])
			}
			heroes = []owtypes.Hero{hero}
		}
		return output(cmd, heroes, renderHeroes)
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets [--kind <kind>]",
	Short: "Lists the cosmetic assets search results can reference.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *owtypes.AssetKind
		if *assetKind != "" {
			kind, err := owtypes.ParseAssetKind(*assetKind)
			if err != nil {
				return err
			}
			filter = &kind
		}

		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		return output(cmd, sortedAssets(c.Assets(), filter), renderAssets)
	},
}

func sortedAssets(assets map[owtypes.AssetId]owtypes.Asset, filter *owtypes.AssetKind) []owtypes.Asset {
	out := make([]owtypes.Asset, 0, len(assets))
	for _, a := range assets {
		if filter != nil && a.Kind != *filter {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Id < out[j].Id
	})
	return out
}
