package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/commands"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
	"github.com/andrescamacho/gunsmith-go/internal/domain/pricing"
)

// NewOptimizeCommand creates the optimize command: a single-shot run of the
// solver against the flags given, printed to the console instead of JSON.
func NewOptimizeCommand() *cobra.Command {
	var (
		weaponID         string
		lang             string
		gameMode         string
		maxPrice         int
		minErgonomics    int
		maxRecoilV       int
		maxRecoilSum     int
		minMagCapacity   int
		maxWeight        float64
		includeItems     []string
		excludeItems     []string
		excludeCategories []string
		ergoWeight       float64
		recoilWeight     float64
		priceWeight      float64
		pmcLevel         int
		fleaAvailable    bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Solve an optimal loadout for a weapon",
		Long: `Builds the compatibility graph for a weapon, resolves prices at the given
trader levels, and solves the ILP model for the best attachment set under
the given constraints.

Example:
  gunsmith optimize --weapon 5447a9cd4bdc2dbd208b4567 --max-price 500000 --min-ergo 50`,
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
			c.ErgoWeight = ergoWeight
			c.RecoilWeight = recoilWeight
			c.PriceWeight = priceWeight
			c.FleaAvailable = fleaAvailable
			c.PlayerLevel = pmcLevel
			c.IncludeItems = includeItems
			c.ExcludeItems = excludeItems
			c.ExcludeCategories = excludeCategories
			c.TraderLevels = pricing.DefaultTraderLevels()

			if maxPrice > 0 {
				c.MaxPrice = &maxPrice
			}
			if minErgonomics != 0 {
				c.MinErgonomics = &minErgonomics
			}
			if maxRecoilV > 0 {
				c.MaxRecoilV = &maxRecoilV
			}
			if maxRecoilSum > 0 {
				c.MaxRecoilSum = &maxRecoilSum
			}
			if minMagCapacity > 0 {
				c.MinMagCapacity = &minMagCapacity
			}
			if maxWeight > 0 {
				c.MaxWeight = &maxWeight
			}

			ctx := context.Background()
			resp, err := a.med.Send(ctx, &commands.OptimizeWeaponCommand{
				Lang:        catalog.NormalizeLanguage(lang),
				GameMode:    catalog.NormalizeGameMode(gameMode),
				Constraints: c,
			})
			if err != nil {
				return fmt.Errorf("optimize failed: %w", err)
			}

			printResult(resp.(*commands.OptimizeWeaponResponse).Result)
			return nil
		},
	}

	cmd.Flags().StringVar(&weaponID, "weapon", "", "Weapon item ID (required)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Catalog language code")
	cmd.Flags().StringVar(&gameMode, "game-mode", "regular", "Game mode: regular or pve")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum total price in roubles (0 = unconstrained)")
	cmd.Flags().IntVar(&minErgonomics, "min-ergo", 0, "Minimum final ergonomics")
	cmd.Flags().IntVar(&maxRecoilV, "max-recoil-v", 0, "Maximum final vertical recoil")
	cmd.Flags().IntVar(&maxRecoilSum, "max-recoil-sum", 0, "Maximum vertical+horizontal recoil sum")
	cmd.Flags().IntVar(&minMagCapacity, "min-mag-capacity", 0, "Minimum magazine capacity")
	cmd.Flags().Float64Var(&maxWeight, "max-weight", 0, "Maximum total weight in kg (0 = unconstrained)")
	cmd.Flags().StringSliceVar(&includeItems, "include-item", nil, "Item IDs that must be used, repeatable")
	cmd.Flags().StringSliceVar(&excludeItems, "exclude-item", nil, "Item IDs to forbid, repeatable")
	cmd.Flags().StringSliceVar(&excludeCategories, "exclude-category", nil, "Item categories to forbid, repeatable")
	cmd.Flags().Float64Var(&ergoWeight, "ergo-weight", 1.0, "Objective weight for ergonomics")
	cmd.Flags().Float64Var(&recoilWeight, "recoil-weight", 1.0, "Objective weight for recoil reduction")
	cmd.Flags().Float64Var(&priceWeight, "price-weight", 0.0, "Objective weight for price (negative preference)")
	cmd.Flags().IntVar(&pmcLevel, "pmc-level", 0, "PMC level, gates flea offers by their minimum flea level (0 disables the check)")
	cmd.Flags().BoolVar(&fleaAvailable, "flea", true, "Whether flea market offers are usable")

	return cmd
}

func printResult(res optimize.Result) {
	fmt.Printf("\nStatus: %s\n", strings.ToUpper(res.Status))
	if res.Status == "infeasible" {
		for _, reason := range res.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
		return
	}

	base := "(naked)"
	if res.Base.ID != "" {
		base = res.Base.Name
	}
	fallback := ""
	if res.FallbackBase {
		fallback = " (fallback: no affordable base found)"
	}
	fmt.Printf("Base: %s%s\n", base, fallback)
	fmt.Printf("Ergonomics: %d   Recoil: %.1f%% (V:%d H:%d)   Weight: %.2fkg   Price: %d\n\n",
		res.Stats.Ergonomics, (res.Stats.RecoilMultiplier-1)*100,
		res.Stats.RecoilVertical, res.Stats.RecoilHorizontal, res.Stats.Weight, res.Stats.TotalPrice)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tITEM\tPRICE\tVIA")
	fmt.Fprintln(w, "----\t----\t-----\t---")
	for _, item := range res.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.Slot, item.Name, item.Price, item.Via)
	}
	w.Flush()
	fmt.Printf("\nNodes explored: %d\n\n", res.NodesExplored)
}
