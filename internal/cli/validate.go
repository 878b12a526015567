package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"invconv/internal/app"
)

type validateOptions struct {
	MapFile string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [flags] input.xlsx...",
		Short: "Check a mapping file against spreadsheet headers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.MapFile, "map-file", "m", "", "AXM mapping file")
	_ = viper.BindPFlag("map_file", cmd.Flags().Lookup("map-file"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions, inputs []string) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		MappingPath: resolveString(cmd, opts.MapFile, "map_file", "map-file"),
		Inputs:      resolveInputs(inputs),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %d sheets, %d sections, %d columns\n", result.Sheets, result.Sections, result.Columns)
	return nil
}

// resolveInputs falls back to the configured input list when no file is
// given on the command line.
func resolveInputs(args []string) []string {
	return resolveStrings(nil, args, "inputs", "")
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
