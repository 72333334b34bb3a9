package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/paintbynum-mcp/internal/config"
	"github.com/ironsheep/paintbynum-mcp/internal/server"
	"github.com/ironsheep/paintbynum-mcp/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("paintbynum-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "--config", "-c":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			configPath = os.Args[2]
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", os.Args[1])
			os.Exit(2)
		}
	}

	if err := run(configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	// Log to stderr; stdout carries the MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	var st *store.Store
	if cfg.StorePath != "" {
		st, err = store.Open(cfg.StorePath, logger)
		if err != nil {
			return fmt.Errorf("open session store %s: %w", cfg.StorePath, err)
		}
		defer st.Close()
	} else {
		logger.Warn("no store path configured, session persistence disabled")
	}

	srv := server.New(cfg, st, logger)
	return srv.Run()
}

func printUsage() {
	fmt.Println("paintbynum-mcp - MCP server for paint-by-number image conversion")
	fmt.Println()
	fmt.Println("Usage: paintbynum-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH    Load settings from a YAML file")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PBN_MCP_LOG_LEVEL=debug       Log verbosity (debug, info, warn, error)")
	fmt.Println("  PBN_MCP_STORE=sessions.db     SQLite file for saved sessions")
	fmt.Println("  PBN_MCP_MAX_IMAGE_BYTES=n     Upload size cap after base64 decoding")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
