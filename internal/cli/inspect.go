package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"invconv/internal/app"
)

const (
	formatYAML = "yaml"
	formatDump = "dump"
)

type inspectOptions struct {
	MapFile string
	Format  string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [flags] input.xlsx...",
		Short: "Show the resolved column table of every file section",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.MapFile, "map-file", "m", "", "AXM mapping file")
	cmd.Flags().StringVar(&opts.Format, "format", formatYAML, "Output format (yaml|dump)")
	_ = viper.BindPFlag("map_file", cmd.Flags().Lookup("map-file"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions, inputs []string) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if format != formatYAML && format != formatDump {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown format %q", format))
	}
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		MappingPath: resolveString(cmd, opts.MapFile, "map_file", "map-file"),
		Inputs:      resolveInputs(inputs),
	})
	if err != nil {
		return err
	}
	return writeInspect(cmd.OutOrStdout(), format, result)
}

func writeInspect(out io.Writer, format string, result app.InspectResult) error {
	if format == formatDump {
		spew.Fdump(out, result.Sections)
		return nil
	}
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode inspect output").
			WithCause(err)
	}
	return encoder.Close()
}
