package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snesdev/zealgo/assembler"
	"github.com/snesdev/zealgo/config"
	"github.com/snesdev/zealgo/diag"
	"github.com/snesdev/zealgo/emitter"
	"github.com/snesdev/zealgo/inspector"
	"github.com/snesdev/zealgo/parser"
	"github.com/snesdev/zealgo/service"
	"github.com/snesdev/zealgo/system"
	"github.com/snesdev/zealgo/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		output      = flag.String("output", "", "Output ROM file path (required unless -list-cpu, -xref, -lint, -browse, or -serve)")
		cpuName     = flag.String("cpu", "snes-cpu", "Target CPU short name")
		patch       = flag.Bool("patch", false, "Patch an existing output file instead of creating it fresh")
		listCPU     = flag.Bool("list-cpu", false, "List available CPU targets and exit")
		configPath  = flag.String("config", "", "Config file path (default: platform config directory)")
		browse      = flag.Bool("browse", false, "Launch the inspector TUI on the completed assembly instead of exiting")
		xref        = flag.Bool("xref", false, "Print a symbol cross-reference report instead of assembling")
		lint        = flag.Bool("lint", false, "Print static lint findings instead of assembling")
		serve       = flag.Int("serve", 0, "Run the assemble HTTP/WebSocket service on this port instead of one-shot assembly")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("zealasm %s (commit %s, built %s)\n", Version, Commit, Date)
		return
	}

	if *listCPU {
		for _, d := range system.Definitions() {
			fmt.Printf("%-12s %s\n", d.ShortName, d.Name)
		}
		return
	}

	if *serve > 0 {
		runService(*serve)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zealasm: %v\n", err)
		os.Exit(1)
	}

	target, ok := system.Lookup(*cpuName)
	if !ok {
		fmt.Fprintf(os.Stderr, "zealasm: unknown CPU %q (see -list-cpu)\n", *cpuName)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "zealasm: exactly one INPUT file is required")
		flag.Usage()
		os.Exit(1)
	}
	input := args[0]

	source := parser.NewFileSourceWithIncludePaths(cfg.Assembler.IncludePaths)
	p := parser.NewParser(source, target)
	nodes, perrs := p.ParseFile(input)

	renderer := diag.NewRenderer(source, cfg.Diagnostics.ColorOutput)
	if err := renderer.RenderAll(os.Stderr, perrs.All()); err != nil {
		fmt.Fprintf(os.Stderr, "zealasm: failed to render diagnostics: %v\n", err)
	}
	if perrs.HasErrors() {
		os.Exit(1)
	}

	if *xref || *lint {
		runAnalysis(nodes, target, *xref, *lint)
		return
	}

	res, aerrs := assembler.Assemble(nodes, target, source)
	if err := renderer.RenderAll(os.Stderr, aerrs.All()); err != nil {
		fmt.Fprintf(os.Stderr, "zealasm: failed to render diagnostics: %v\n", err)
	}

	if *browse {
		tui := inspector.NewTUI(res, aerrs)
		if err := tui.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "zealasm: inspector failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if aerrs.HasErrors() {
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "zealasm: -output is required")
		os.Exit(1)
	}

	mode := emitter.ParseMapMode(res.MapMode)
	if cfg.Output.MapMode != "" && res.MapMode == "identity" {
		mode = emitter.ParseMapMode(cfg.Output.MapMode)
	}

	patchMode := *patch || cfg.Output.Patch
	sink, err := emitter.OpenFile(*output, patchMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zealasm: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	if err := emitter.Emit(res, mode, sink, source); err != nil {
		fmt.Fprintf(os.Stderr, "zealasm: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runAnalysis(nodes []parser.Node, target *system.SystemDefinition, xref, lint bool) {
	symbols := parser.NewSymbolTable()
	pc := uint32(0)
	for _, n := range nodes {
		if ld, ok := n.(parser.LabelDef); ok {
			symbols.Define(ld.Name, pc)
		}
		pc++
	}

	refs := tools.CrossReference(nodes, symbols, target)
	if xref {
		fmt.Print(tools.FormatXref(refs))
	}
	if lint {
		findings := tools.Lint(refs)
		fmt.Print(tools.FormatLint(findings))
		for _, f := range findings {
			if f.Severity == tools.LintError {
				os.Exit(1)
			}
		}
	}
}

func runService(port int) {
	srv := service.NewServer(port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "zealasm: service failed: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "zealasm: shutdown error: %v\n", err)
		}
	}
}

const shutdownTimeout = 5 * time.Second
