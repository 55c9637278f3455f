package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goforj/geoassist"
	"github.com/spf13/cobra"
)

func newGeocodeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <address>",
		Short: "Resolve a free-form address to its best match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			place, ok, err := a.client.Geocode(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no match for %q", strings.Join(args, " "))
			}
			return printPlace(cmd.OutOrStdout(), place)
		},
	}
}

func newReverseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <lat> <lng>",
		Short: "Find the place nearest to a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseCoordinates(args[0], args[1])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			place, ok, err := a.svc.Reverse(cmd.Context(), at)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no place near %s", at)
			}
			return printPlace(cmd.OutOrStdout(), place)
		},
	}
}

func newRememberedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remembered",
		Short: "Show the remembered place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			place, ok := a.svc.RememberedPlace(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "no place remembered")
				return nil
			}
			return printPlace(cmd.OutOrStdout(), place)
		},
	}
}

func newForgetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Forget the remembered place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			a.svc.ClearRememberedPlace(cmd.Context())
			return nil
		},
	}
}

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lookup cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop cached results and the remembered place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.svc.ClearAllCaches(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "cache cleared")
			return nil
		},
	})
	return cacheCmd
}

func parseCoordinates(lat, lng string) (geoassist.Coordinates, error) {
	y, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return geoassist.Coordinates{}, fmt.Errorf("invalid latitude %q", lat)
	}
	x, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return geoassist.Coordinates{}, fmt.Errorf("invalid longitude %q", lng)
	}
	at := geoassist.Coordinates{Lat: y, Lng: x}
	if !at.Valid() {
		return geoassist.Coordinates{}, fmt.Errorf("%w: %s", geoassist.ErrInvalidCoordinates, at)
	}
	return at, nil
}
