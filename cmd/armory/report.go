package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
)

var (
	reportLanguage = language.English
	printer        = message.NewPrinter(reportLanguage)
	titleCase      = cases.Title(reportLanguage)
)

func newShortfallCmd(flags *globalFlags) *cobra.Command {
	var targets []string
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "shortfall",
		Short: "Report materials and rupees still needed",
		Long: "shortfall compares owned materials and rupees with the upgrade steps between each piece's\n" +
			"current level and its target. Without --target every piece is planned to its maximum level.",
		Example: "  armory shortfall\n  armory shortfall -t barbarian-helm=2 -t barbarian-armor=4",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseTargets(targets)
			if err != nil {
				return err
			}
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				var result domain.Shortfall
				if len(parsed) == 0 {
					result, err = s.bridge.ShortfallToMax(ctx)
				} else {
					result, err = s.bridge.Shortfall(ctx, shortfall.Targets(parsed))
				}
				if err != nil {
					return err
				}
				return printShortfall(cmd.OutOrStdout(), s.catalog, result, missingOnly, flags.jsonOutput)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "Target level as id=level (repeatable)")
	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only list materials that are still missing")
	return cmd
}

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List armor pieces and materials known to the tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				return printCatalog(cmd.OutOrStdout(), s.bridge.Catalog(ctx), flags.jsonOutput)
			})
		},
	}
}

func printState(w io.Writer, cat *catalog.Catalog, s domain.OwnedState, asJSON bool) error {
	if asJSON {
		return writeJSON(w, s)
	}

	printer.Fprintf(w, "Rupees: %d\n\n", s.Rupees)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tOWNED")
	for _, id := range sortedByName(keys(s.Materials), materialName(cat)) {
		printer.Fprintf(tw, "%s\t%d\n", materialName(cat)(id), s.Materials[id])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ARMOR\tSET\tLEVEL")
	for _, id := range sortedByName(keys(s.ArmorLevels), armorName(cat)) {
		set, maxLevel := "", domain.LevelMax
		if piece, ok := cat.Armor(id); ok {
			set, maxLevel = titleCase.String(piece.Set), piece.MaxLevel
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", armorName(cat)(id), set, s.ArmorLevels[id], maxLevel)
	}
	return tw.Flush()
}

func printShortfall(w io.Writer, cat *catalog.Catalog, result domain.Shortfall, missingOnly, asJSON bool) error {
	if asJSON {
		return writeJSON(w, struct {
			domain.Shortfall
			Complete bool `json:"complete"`
		}{result, result.Complete()})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tHAVE\tNEEDED\tMISSING")
	for _, id := range sortedByName(keys(result.ByMaterial), materialName(cat)) {
		a := result.ByMaterial[id]
		if missingOnly && a.Missing == 0 {
			continue
		}
		printer.Fprintf(tw, "%s\t%d\t%d\t%d\n", materialName(cat)(id), a.Have, a.Needed, a.Missing)
	}
	printer.Fprintf(tw, "Rupees\t%d\t%d\t%d\n", result.Rupees.Have, result.Rupees.Needed, result.Rupees.Missing)
	if err := tw.Flush(); err != nil {
		return err
	}

	if result.Complete() {
		fmt.Fprintln(w, "\nEverything needed is on hand.")
	}
	return nil
}

func printCatalog(w io.Writer, snap catalog.Snapshot, asJSON bool) error {
	if asJSON {
		return writeJSON(w, snap)
	}

	pieces := make(map[string]domain.ArmorPiece, len(snap.Armor))
	for _, p := range snap.Armor {
		pieces[p.ID] = p
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ARMOR\tID\tSET\tSLOT\tMAX")
	for _, id := range sortedByName(keys(pieces), func(id string) string { return pieces[id].Name }) {
		p := pieces[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.Name, p.ID, titleCase.String(p.Set), p.Slot, p.MaxLevel)
	}

	materials := make(map[string]domain.Material, len(snap.Materials))
	for _, m := range snap.Materials {
		materials[m.ID] = m
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MATERIAL\tID")
	for _, id := range sortedByName(keys(materials), func(id string) string { return materials[id].Name }) {
		fmt.Fprintf(tw, "%s\t%s\n", materials[id].Name, id)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// sortedByName orders ids by display name using locale-aware collation,
// falling back to the id to keep equal names stable
func sortedByName(ids []string, name func(string) string) []string {
	col := collate.New(reportLanguage, collate.IgnoreCase)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = name(id)
	}
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if c := col.CompareString(names[a], names[b]); c != 0 {
			return c < 0
		}
		return ids[a] < ids[b]
	})

	out := make([]string, len(ids))
	for i, idx := range order {
		out[i] = ids[idx]
	}
	return out
}

func materialName(cat *catalog.Catalog) func(string) string {
	return func(id string) string {
		if m, ok := cat.Material(id); ok {
			return m.Name
		}
		return id
	}
}

func armorName(cat *catalog.Catalog) func(string) string {
	return func(id string) string {
		if p, ok := cat.Armor(id); ok {
			return p.Name
		}
		return id
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
