package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isaacvp2/pokerproj/holdem"
)

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "eval <cards>",
		Short:   "Rank the best five-card hand among five or more cards",
		Example: "  pokerproj eval As Ks Qs Js 10s 2d 3c",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := holdem.ParseCards(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := holdem.CheckDistinct(cards...); err != nil {
				return err
			}
			hv, err := holdem.Evaluate(cards)
			if err != nil {
				return err
			}
			a.logger.Debug("evaluated", "cards", holdem.FormatCards(cards), "category", int(hv.Category))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hv)
			return err
		},
	}
}
