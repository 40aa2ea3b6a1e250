package cmd

import (
	"fmt"

	"github.com/dzjyyds666/tq/parse/keypath"
	"github.com/dzjyyds666/tq/parse/toml"
	"github.com/dzjyyds666/tq/pkg"
	"github.com/dzjyyds666/tq/pkg/render"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find    string `json:"find"`    // 查找的key
	Input   string `json:"input"`   // 输入文件路径
	Output  string `json:"output"`  // 输出文件地址
	Format  string `json:"format"`  // 输出格式
	Color   string `json:"color"`   // 错误信息着色
	Verbose bool   `json:"verbose"` // 调试日志
}

func bindTomlFlags(cmd *cobra.Command, params *TomlParams) {
	cmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path (default stdin)")
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVarP(&params.Format, "format", "f", string(render.FormatTOML), "output format: toml, json or yaml")
	cmd.Flags().StringVar(&params.Color, "color", colorAuto, "colorize diagnostics: auto, always or never")
	cmd.Flags().BoolVarP(&params.Verbose, "verbose", "v", false, "log debug information to stderr")
}

func tomlArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("%w: missing key path", errUsage)
	case len(args) > 2:
		return fmt.Errorf("%w: unused argument %q", errUsage, args[2])
	}
	return nil
}

func tomlRun(cmd *cobra.Command, params *TomlParams, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), params.Verbose)

	params.Find = args[0]
	if len(args) == 2 {
		if params.Input != "" {
			return fmt.Errorf("%w: input given both as --input and as argument", errUsage)
		}
		params.Input = args[1]
	}
	if err := checkColorMode(params.Color); err != nil {
		return err
	}
	format, err := render.ParseFormat(params.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	pattern, err := keypath.Parse(params.Find)
	if err != nil {
		return err
	}
	logger.Debug("parsed key path", "path", pattern.String(), "steps", pattern.Len())

	in, err := pkg.OpenInput(params.Input, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	logger.Debug("reading document", "input", inputName(params.Input))

	root, err := toml.Parse(in)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	node, err := pattern.Find(root)
	if err != nil {
		return err
	}
	logger.Debug("resolved value", "kind", node.Kind(), "format", format)

	out, err := pkg.CreateOutput(params.Output, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render.Render(out, node, format, pattern.LastKey()); err != nil {
		out.Close()
		return fmt.Errorf("render %s: %w", format, err)
	}
	return out.Close()
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
