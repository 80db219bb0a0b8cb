package commands

import (
	"github.com/spf13/cobra"
)

var profileFull *bool

func init() {
	profileFull = profileCmd.Flags().Bool("full", false, "Include every hero stat table.")
	rootCmd.AddCommand(searchCmd, profileCmd, overbuffCmd, lookupCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Searches players by name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		found, err := c.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return output(cmd, found, renderSearch)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <battletag> [--full]",
	Short: "Prints the career profile of a player.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		btag, err := battletagArgs(args)
		if err != nil {
			return err
		}
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		if *profileFull {
			profile, err := c.ProfileFull(cmd.Context(), btag)
			if err != nil {
				return err
			}
			return output(cmd, profile, renderProfileFull)
		}
		profile, err := c.Profile(cmd.Context(), btag)
		if err != nil {
			return err
		}
		return output(cmd, profile, renderProfile)
	},
}

var overbuffCmd = &cobra.Command{
	Use:   "overbuff <battletag>",
	Short: "Prints the ranks overbuff has for a player.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		btag, err := battletagArgs(args)
		if err != nil {
			return err
		}
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		ranks, err := c.Overbuff(cmd.Context(), btag)
		if err != nil {
			return err
		}
		return output(cmd, ranks.Ranks, renderRanks)
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <battletag>",
	Short: "Summarizes a player's ranks and competitive stats.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		btag, err := battletagArgs(args)
		if err != nil {
			return err
		}
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		s, err := c.Lookup(cmd.Context(), btag)
		if err != nil {
			return err
		}
		return output(cmd, s, renderSummary)
	},
}
