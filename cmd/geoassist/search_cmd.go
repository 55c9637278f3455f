package main

import (
	"fmt"
	"strings"

	"github.com/goforj/geoassist"
	"github.com/spf13/cobra"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		limit  int
		bias   string
		filter string
		pick   int
		fuzzy  string
	)
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Autocomplete a place query",
		Long: `Autocomplete a place query. Results are served from the cache when a
valid entry exists. Use --select or --pick to remember one of the results;
searching for the remembered place's address afterwards is answered without
a lookup.`,
		Example: `  geoassist search "Han Market" --limit 8 --bias proximity:108.22,16.06
  geoassist search "han mar" --pick "han market"
  geoassist search "cho han" --select 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			opts := geoassist.Options{
				Limit:  firstPositive(limit, a.cfg.Lookup.Limit),
				Bias:   firstNonEmpty(bias, a.cfg.Lookup.Bias),
				Filter: firstNonEmpty(filter, a.cfg.Lookup.Filter),
			}
			res, err := a.svc.Autocomplete(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			a.logger.Debug("search resolved", "outcome", res.Outcome.String(), "places", len(res.Places))

			switch res.Outcome {
			case geoassist.OutcomeSkipped:
				return fmt.Errorf("query too short, need at least %d characters", geoassist.DefaultMinQueryLength)
			case geoassist.OutcomeSatisfied:
				fmt.Fprintln(cmd.ErrOrStderr(), "query matches the remembered place; nothing to look up")
				return nil
			case geoassist.OutcomeRateLimited:
				fmt.Fprintln(cmd.ErrOrStderr(), "lookup provider is rate limiting requests; try again shortly")
				return nil
			}

			if err := printPlaces(cmd.OutOrStdout(), res.Places); err != nil {
				return err
			}

			var chosen geoassist.Place
			switch {
			case pick > 0:
				if pick > len(res.Places) {
					return fmt.Errorf("--select %d out of range, %d results", pick, len(res.Places))
				}
				chosen = res.Places[pick-1]
			case fuzzy != "":
				p, ok := pickPlace(fuzzy, res.Places)
				if !ok {
					return fmt.Errorf("no result matches %q", fuzzy)
				}
				chosen = p
			default:
				return nil
			}
			a.svc.RememberSelectedPlace(cmd.Context(), chosen)
			fmt.Fprintf(cmd.ErrOrStderr(), "remembered %s\n", chosen.Name)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default 10)")
	cmd.Flags().StringVar(&bias, "bias", "", "result bias, e.g. proximity:lon,lat or countrycode:vn")
	cmd.Flags().StringVar(&filter, "filter", "", "result filter, e.g. countrycode:vn")
	cmd.Flags().IntVar(&pick, "select", 0, "remember the Nth result (1-based)")
	cmd.Flags().StringVar(&fuzzy, "pick", "", "remember the result best matching this text")
	cmd.MarkFlagsMutuallyExclusive("select", "pick")
	return cmd
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
