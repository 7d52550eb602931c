// Command bmc converts between Markdown and structured content blocks.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/mdconverter"
	"github.com/rgonek/block-markdown-converter/metrics"
)

const defaultEnvFile = ".env"

// Globals are the flags shared by every command.
type Globals struct {
	Config      string `short:"c" help:"YAML configuration file with render and parse sections." env:"BMC_CONFIG"`
	EnvFile     string `name:"env-file" help:"Dotenv file loaded before flags are read." default:".env"`
	Preset      string `help:"Configuration preset (balanced|strict|lossy)." default:"balanced" env:"BMC_PRESET"`
	Namespace   string `help:"Block type namespace, overriding preset and config file." env:"BMC_NAMESPACE"`
	Verbose     bool   `short:"v" help:"Enable debug logging." env:"BMC_VERBOSE"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file on exit." env:"BMC_METRICS_FILE"`
}

// CLI is the root command tree.
type CLI struct {
	Globals

	ToMarkdown ToMarkdownCmd `cmd:"" name:"to-markdown" help:"Render blocks as Markdown."`
	ToBlocks   ToBlocksCmd   `cmd:"" name:"to-blocks" help:"Parse Markdown into blocks."`
	Watch      WatchCmd      `cmd:"" help:"Convert Markdown files in a directory whenever they change."`
}

// AfterApply installs the process logger once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// runtime carries resolved configuration into command Run methods.
type runtime struct {
	render      converter.Config
	parse       mdconverter.ReverseConfig
	registry    *prometheus.Registry
	metricsFile string
	stdin       io.Reader
	stdout      io.Writer
}

func newRuntime(g Globals) (*runtime, error) {
	render, parse, err := resolveConfig(g.Preset, g.Config, g.Namespace)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	render.Logger = logger
	parse.Logger = logger

	rt := &runtime{
		render:      render,
		parse:       parse,
		metricsFile: g.MetricsFile,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
	}

	if g.MetricsFile != "" {
		rt.registry = prometheus.NewRegistry()
		recorder := metrics.NewPrometheusRecorder(rt.registry)
		rt.render.Recorder = recorder
		rt.parse.Recorder = recorder
	}

	return rt, nil
}

func (rt *runtime) flushMetrics() error {
	if rt.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(rt.metricsFile, rt.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", rt.metricsFile, err)
	}
	return nil
}

// envFileFromArgs finds --env-file before kong runs, since the file feeds
// env-backed flags.
func envFileFromArgs(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1], true
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return value, true
		}
	}
	return defaultEnvFile, false
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing default file is not an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("bmc"),
		kong.Description("Convert between Markdown and structured content blocks."),
		kong.UsageOnError(),
	)
}

func main() {
	if err := loadEnvFile(envFileFromArgs(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	rt, err := newRuntime(cli.Globals)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	runErr := ctx.Run(rt)
	if err := rt.flushMetrics(); err != nil {
		slog.Error("Failed to write metrics", "error", err)
	}
	if runErr != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", runErr)
		os.Exit(1)
	}
}
