// Package main provides the CLI entry point for gryla-go.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gryla-project/gryla-go/pkg/gryla"
	"github.com/gryla-project/gryla-go/pkg/gryla/output"
	"github.com/gryla-project/gryla-go/pkg/gryla/parser"
	"github.com/gryla-project/gryla-go/pkg/gryla/wikiapi"
)

const version = "0.1.0"

var (
	cfgFile    string
	inputPath  string
	outputPath string
	format     string
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gryla",
		Short: "Mine packet schemas from protocol wiki pages",
		Long: `gryla-go reconstructs the packet tables of a protocol wiki page and
infers the nested field schema each table's merged cells encode.`,
	}

	mineCmd := &cobra.Command{
		Use:   "mine [revision-id]",
		Short: "Mine all packet schemas from one page revision",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMine,
	}
	mineCmd.Flags().StringVar(&cfgFile, "config", "", "Config file path (default: gryla.yaml)")
	mineCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read page wikitext from a file instead of fetching")
	mineCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	mineCmd.Flags().StringVar(&format, "format", "json", "Output format: json, xlsx")
	mineCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	mineCmd.Flags().String("api-url", "", "MediaWiki API endpoint")
	mineCmd.Flags().Int("timeout", 0, "Fetch timeout in seconds")
	mineCmd.Flags().Int("max-depth", 0, "Maximum field nesting depth")
	mineCmd.Flags().Bool("verbose", false, "Enable debug logging")

	shapeCmd := &cobra.Command{
		Use:   "shape [file]",
		Short: "Print the span geometry of the first table in a wikitext file",
		Args:  cobra.ExactArgs(1),
		RunE:  runShape,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the gryla version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gryla " + version)
		},
	}

	rootCmd.AddCommand(mineCmd, shapeCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	var page string
	switch {
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		page = string(data)
	case len(args) == 1:
		revid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid revision id: %s", args[0])
		}
		client := wikiapi.NewClient(cfg.API.BaseURL, &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		})
		page, err = client.FetchRevision(cmd.Context(), revid)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either a revision id or --input is required")
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	res, err := gryla.Mine(page, gryla.Options{
		Dialect:  cfg.Dialect,
		MaxDepth: cfg.MaxDepth,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}

	switch format {
	case "json":
		data, err := output.ToJSON(res, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if outputPath != "" {
			return os.WriteFile(outputPath, data, 0644)
		}
		fmt.Println(string(data))
		return nil
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("xlsx output requires --output")
		}
		return output.WriteWorkbook(res, outputPath)
	default:
		return fmt.Errorf("invalid format: %s (must be json or xlsx)", format)
	}
}

func runShape(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	grid, _, err := parser.ParseTable(string(data))
	if err != nil {
		return err
	}
	fmt.Println(grid.Shape())
	return nil
}
