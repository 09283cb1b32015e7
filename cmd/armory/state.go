package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

func newStateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show owned materials, armor levels and rupees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				current, err := s.bridge.GetState(ctx)
				if err != nil {
					return err
				}
				if err := printState(cmd.OutOrStdout(), s.catalog, current, flags.jsonOutput); err != nil {
					return err
				}
				if flags.jsonOutput {
					return nil
				}
				saved, err := s.tracker.LastSaved(ctx)
				if err != nil {
					return err
				}
				if !saved.IsZero() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nLast saved: %s\n", saved.Local().Format(time.DateTime))
				}
				return nil
			})
		},
	}
}

func newSetCmd(flags *globalFlags) *cobra.Command {
	var materials, armor []string
	var rupeeDelta int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update material counts and armor levels",
		Long: "set merges the given values into the stored state. Keys not named are left unchanged.\n" +
			"--add-rupees adds to the balance; use the rupees command to replace it.",
		Example: "  armory set -m silent-princess=12 -a barbarian-helm=2 --add-rupees 300",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(materials, armor, rupeeDelta)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to set: pass --material, --armor or --add-rupees")
			}
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				next, err := s.bridge.SetState(ctx, patch)
				if err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), s.catalog, next, flags.jsonOutput)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&materials, "material", "m", nil, "Material count as id=quantity (repeatable)")
	cmd.Flags().StringArrayVarP(&armor, "armor", "a", nil, "Armor level as id=level (repeatable)")
	cmd.Flags().IntVar(&rupeeDelta, "add-rupees", 0, "Rupees to add to the balance")
	return cmd
}

func newRupeesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rupees <amount>",
		Short: "Replace the rupee balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("amount must be a whole number: %q", args[0])
			}
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				next, err := s.bridge.SetRupees(ctx, amount)
				if err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), s.catalog, next, flags.jsonOutput)
			})
		},
	}
}

func newResetCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the player state with catalog defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards every saved count; rerun with --yes to confirm")
			}
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				next, err := s.bridge.ResetToDefaults(ctx)
				if err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), s.catalog, next, flags.jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

// buildPatch turns id=value flags into a patch. Values stay strings so the
// state package applies its usual numeric coercion and range checks.
func buildPatch(materials, armor []string, rupeeDelta int) (state.Patch, error) {
	patch := state.NewPatch()

	for _, raw := range materials {
		id, value, err := splitAssignment(raw)
		if err != nil {
			return state.Patch{}, err
		}
		patch.Materials[id] = value
	}
	for _, raw := range armor {
		id, value, err := splitAssignment(raw)
		if err != nil {
			return state.Patch{}, err
		}
		patch.ArmorLevels[id] = value
	}
	if rupeeDelta != 0 {
		patch = patch.WithRupeeDelta(rupeeDelta)
	}
	return patch, nil
}

// parseTargets reads id=level flags into shortfall targets
func parseTargets(raw []string) (map[string]domain.Level, error) {
	targets := make(map[string]domain.Level, len(raw))
	for _, r := range raw {
		id, value, err := splitAssignment(r)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(value)
		if err != nil || !domain.Level(n).Valid() {
			return nil, fmt.Errorf("target level for %s must be between %d and %d, got %q", id, domain.LevelMin, domain.LevelMax, value)
		}
		targets[id] = domain.Level(n)
	}
	return targets, nil
}

func splitAssignment(raw string) (string, string, error) {
	id, value, ok := strings.Cut(raw, "=")
	id, value = strings.TrimSpace(id), strings.TrimSpace(value)
	if !ok || id == "" || value == "" {
		return "", "", fmt.Errorf("expected id=value, got %q", raw)
	}
	return id, value, nil
}
