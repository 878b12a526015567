package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"invconv/internal/app"
	"invconv/internal/types"
)

type convertOptions struct {
	MapFile  string
	DataFile string
	Output   string
	Category string
	Family   string
	Type     string
	Unit     string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [flags] input.xlsx...",
		Short: "Convert spreadsheets to an Axelor import CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.MapFile, "map-file", "m", "", "AXM mapping file")
	cmd.Flags().StringVarP(&opts.DataFile, "data-file", "d", "", "Lookup tables data file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "Output CSV path, - for stdout")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Fallback product category")
	cmd.Flags().StringVar(&opts.Family, "family", "", "Fallback product family")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Fallback product type")
	cmd.Flags().StringVar(&opts.Unit, "unit", "", "Fallback unit")
	_ = viper.BindPFlag("map_file", cmd.Flags().Lookup("map-file"))
	_ = viper.BindPFlag("data_file", cmd.Flags().Lookup("data-file"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fallback.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("fallback.family", cmd.Flags().Lookup("family"))
	_ = viper.BindPFlag("fallback.type", cmd.Flags().Lookup("type"))
	_ = viper.BindPFlag("fallback.unit", cmd.Flags().Lookup("unit"))
	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, opts convertOptions, inputs []string) error {
	service := newAppService()
	_, err := service.Convert(ctx, app.ConvertRequest{
		MappingPath: resolveString(cmd, opts.MapFile, "map_file", "map-file"),
		DataPath:    resolveString(cmd, opts.DataFile, "data_file", "data-file"),
		OutputPath:  resolveString(cmd, opts.Output, "output", "output"),
		Inputs:      resolveInputs(inputs),
		Fallbacks: types.FallbackOverrides{
			Category: resolveString(cmd, opts.Category, "fallback.category", "category"),
			Family:   resolveString(cmd, opts.Family, "fallback.family", "family"),
			Type:     resolveString(cmd, opts.Type, "fallback.type", "type"),
			Unit:     resolveString(cmd, opts.Unit, "fallback.unit", "unit"),
		},
	})
	return err
}
