package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/commands"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
	"github.com/andrescamacho/gunsmith-go/internal/domain/pricing"
)

// NewExploreCommand creates the explore command: sweeps the Pareto frontier
// along two axes while holding the third fixed, printed as a table.
func NewExploreCommand() *cobra.Command {
	var (
		weaponID string
		lang     string
		gameMode string
		ignore   string
		steps    int
		maxPrice int
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Sample the ergonomics/recoil/price Pareto frontier",
		Long: `Re-solves the model repeatedly at different objective weightings to trace
the tradeoff frontier between ergonomics, recoil, and price, holding the
named axis unconstrained while sweeping the other two (§4.6).

Example:
  gunsmith explore --weapon 5447a9cd4bdc2dbd208b4567 --ignore price --steps 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weaponID == "" {
				return fmt.Errorf("--weapon flag is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			c := optimize.DefaultConstraints(weaponID)
			c.TraderLevels = pricing.DefaultTraderLevels()
			c.FleaAvailable = true
			if maxPrice > 0 {
				c.MaxPrice = &maxPrice
			}

			if steps < 2 {
				steps = 10
			}

			ctx := context.Background()
			resp, err := a.med.Send(ctx, &commands.ExploreParetoCommand{
				Lang:        catalog.NormalizeLanguage(lang),
				GameMode:    catalog.NormalizeGameMode(gameMode),
				Constraints: c,
				Ignore:      optimize.Axis(ignore),
				Steps:       steps,
			})
			if err != nil {
				return fmt.Errorf("explore failed: %w", err)
			}

			printFrontier(resp.(*commands.ExploreParetoResponse).Frontier)
			return nil
		},
	}

	cmd.Flags().StringVar(&weaponID, "weapon", "", "Weapon item ID (required)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Catalog language code")
	cmd.Flags().StringVar(&gameMode, "game-mode", "regular", "Game mode: regular or pve")
	cmd.Flags().StringVar(&ignore, "ignore", string(optimize.AxisPrice), "Axis to leave unconstrained: price, recoil, or ergo")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of frontier samples")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum total price in roubles (0 = unconstrained)")

	return cmd
}

func printFrontier(frontier []optimize.FrontierPoint) {
	if len(frontier) == 0 {
		fmt.Println("No frontier points found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tERGO\tRECOIL%\tPRICE\tBASE")
	fmt.Fprintln(w, "------\t----\t-------\t-----\t----")
	for _, p := range frontier {
		base := "(naked)"
		if p.Base.ID != "" {
			base = p.Base.Name
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%d\t%s\n", p.Status, p.Ergonomics, p.RecoilPct, p.Price, base)
	}
	w.Flush()
	fmt.Printf("\n%d frontier points\n\n", len(frontier))
}
