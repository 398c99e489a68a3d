package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rvcore/vliw-repack/analysis"
	"github.com/rvcore/vliw-repack/api"
	"github.com/rvcore/vliw-repack/config"
	"github.com/rvcore/vliw-repack/disasm"
	"github.com/rvcore/vliw-repack/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Show version information")
		showHelp     = flag.Bool("help", false, "Show help information")
		tuiMode      = flag.Bool("tui", false, "Browse bundles in the TUI")
		apiServer    = flag.Bool("api-server", false, "Start HTTP API server mode")
		apiPort      = flag.Int("port", 8080, "API server port (used with -api-server)")
		verboseMode  = flag.Bool("verbose", false, "Verbose output (includes category histogram)")
		reportFormat = flag.String("report-format", "text", "Report format: text, json, csv")
		reportFile   = flag.String("report-file", "", "Report output file (default: stdout)")
		exportAsm    = flag.Bool("export-asm", false, "Export repacked bundles as assembly text")
		exportFormat = flag.String("export-format", "aligned", "Export format: aligned, compact")
		exportFile   = flag.String("export-file", "", "Export output file (default: stdout)")
		baseAddress  = flag.Uint("base-address", 0x8000, "Base address for compact export")
		configFile   = flag.String("config", "", "Config file path (default: platform config dir)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("vliw-repack %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *apiServer {
		runAPIServer(cfg, *apiPort)
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	disasmFile := flag.Arg(0)
	if _, err := os.Stat(disasmFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", disasmFile)
		os.Exit(1)
	}

	var onProgress analysis.ProgressFunc
	if *verboseMode {
		onProgress = func(step, total int, message string) {
			fmt.Printf("[%d/%d] %s\n", step, total, message)
		}
	}

	result, err := analysis.Run(disasmFile, onProgress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis error: %v\n", err)
		os.Exit(1)
	}

	if *tuiMode {
		if err := tui.Run(result); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rep := result.Report(*verboseMode)

	format := *reportFormat
	if !flagPassed("report-format") {
		format = cfg.Report.Format
	}

	reportOut := os.Stdout
	if *reportFile != "" {
		f, err := os.Create(*reportFile) // #nosec G304 -- operator-supplied report output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating report file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reportOut = f
	}

	if err := rep.Write(reportOut, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	if *exportAsm || cfg.Export.Enabled {
		exportOut := os.Stdout
		if *exportFile != "" {
			f, err := os.Create(*exportFile) // #nosec G304 -- operator-supplied export output path
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating export file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			exportOut = f
		}

		var exportErr error
		switch *exportFormat {
		case "compact":
			exportErr = disasm.WriteCompact(exportOut, result.Optimized, uint32(*baseAddress))
		default:
			exportErr = disasm.WriteAligned(exportOut, result.Optimized, result.OriginAddresses())
		}
		if exportErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", exportErr)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// flagPassed reports whether a flag was explicitly set on the command line,
// so config-file values only take effect when the operator didn't override
// them at the CLI.
func flagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func runAPIServer(cfg *config.Config, port int) {
	server := api.NewServerWithVersion(port, Version, Commit, Date)
	server.SetBroadcastEvents(cfg.API.BroadcastEvents)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down API server...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("API server stopped")
			os.Exit(0)
		})
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	performShutdown()
}

func printHelp() {
	fmt.Printf(`RISC-V VLIW Bundle Repacker %s

Usage: vliw-repack [options] <disassembly-file>
       vliw-repack -api-server [-port N]

Options:
  -help               Show this help message
  -version            Show version information
  -api-server         Start HTTP API server mode (no file required)
  -port N             API server port (default: 8080, used with -api-server)
  -tui                Browse original and repacked bundles in the TUI
  -verbose            Verbose output (includes category histogram)
  -report-format FMT  Report format: text, json, csv (default: text)
  -report-file FILE   Report output file (default: stdout)
  -export-asm         Export repacked bundles as assembly text
  -export-format FMT  Export format: aligned, compact (default: aligned)
  -export-file FILE   Export output file (default: stdout)
  -base-address ADDR  Base address for compact export (default: 0x8000)
  -config FILE        Config file path (default: platform config dir)

Examples:
  # Analyze a disassembly listing and print a text report
  vliw-repack program.dis

  # Emit a JSON report with the category histogram
  vliw-repack -verbose -report-format json program.dis

  # Export the repacked bundles as compact assembly text
  vliw-repack -export-asm -export-format compact program.dis

  # Browse bundles interactively
  vliw-repack -tui program.dis

  # Start the API server for browser/GUI frontends
  vliw-repack -api-server -port 3000
`, Version)
}
