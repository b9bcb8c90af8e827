package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/wudi/pdfstamp/appconfig"
	"github.com/wudi/pdfstamp/engine"
	"github.com/wudi/pdfstamp/fonts"
	"github.com/wudi/pdfstamp/observability"
	"github.com/wudi/pdfstamp/preset"
	"github.com/wudi/pdfstamp/subst"
)

type options struct {
	presetName string
	presetsDir string
	configPath string
	fontsDir   string
	substPath  string
	outDir     string
	force      bool
	list       bool
	verbose    bool
	inputs     []string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfstamp: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdfstamp: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdfstamp [flags] <pdf-or-folder>...\n")
		flag.PrintDefaults()
	}
	presetName := flag.String("preset", "", "Preset to apply (default: the preset named in config.ini)")
	presetsDir := flag.String("presets", "presets", "Folder holding preset files")
	configPath := flag.String("config", "config.ini", "Application config file")
	fontsDir := flag.String("fonts", "fonts", "Folder holding font files")
	substPath := flag.String("subst", "substitutions.json", "Filename substitution definitions")
	outDir := flag.String("out", "", "Output folder (required)")
	force := flag.Bool("force", false, "Overwrite existing output files without asking")
	list := flag.Bool("list", false, "List available presets and exit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	opts.presetName = *presetName
	opts.presetsDir = *presetsDir
	opts.configPath = *configPath
	opts.fontsDir = *fontsDir
	opts.substPath = *substPath
	opts.outDir = *outDir
	opts.force = *force
	opts.list = *list
	opts.verbose = *verbose
	opts.inputs = flag.Args()

	if opts.list {
		return opts, nil
	}
	if len(opts.inputs) == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("no input files or folders")
	}
	if opts.outDir == "" {
		return options{}, fmt.Errorf("-out is required")
	}
	return opts, nil
}

func run(opts options) error {
	level := observability.LevelInfo
	if opts.verbose {
		level = observability.LevelDebug
	}
	log := observability.NewConsoleLogger(os.Stderr, level)

	mgr, err := preset.NewManager(opts.presetsDir, log)
	if err != nil {
		return err
	}
	if opts.list {
		return listPresets(mgr)
	}

	name := opts.presetName
	if name == "" {
		name = appconfig.Load(opts.configPath, log).DefaultPreset()
	}
	if name == "" {
		return fmt.Errorf("no preset given and no default preset configured")
	}
	p, err := mgr.Load(name)
	if err != nil {
		return err
	}

	families, err := fonts.Discover(opts.fontsDir)
	if err != nil {
		log.Warn("font folder unavailable, using built-in font",
			observability.Error("err", err))
		families = fonts.Map{}
	}
	substEngine := subst.NewEngine(subst.Load(opts.substPath, log), log)

	files, root, err := collectInputs(opts.inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found")
	}

	job := engine.NewJob(p, files, root, opts.outDir)

	existing, err := engine.ExistingOutputs(job)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !opts.force {
		for _, path := range existing {
			fmt.Fprintf(os.Stderr, "exists: %s\n", path)
		}
		return fmt.Errorf("%d output file(s) already exist; re-run with -force to overwrite", len(existing))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	total := len(files)
	res := engine.New(families, substEngine, log).Run(ctx, job, func(i int, status string) {
		fmt.Printf("[%d/%d] %s\n", i, total, status)
	})

	if res.Cancelled {
		fmt.Printf("Cancelled: %d done, %d failed, %d skipped\n",
			res.Succeeded, res.Failed, total-res.Succeeded-res.Failed)
	} else {
		fmt.Printf("Done: %d succeeded, %d failed\n", res.Succeeded, res.Failed)
	}
	for _, fe := range res.Errors {
		fmt.Fprintf(os.Stderr, "failed: %v\n", fe)
	}
	if res.Succeeded == 0 && res.Failed > 0 {
		return fmt.Errorf("all files failed")
	}
	return nil
}

func listPresets(mgr *preset.Manager) error {
	infos := mgr.List()
	if len(infos) == 0 {
		fmt.Println("no presets")
		return nil
	}
	for _, info := range infos {
		marker := ""
		if !info.Valid {
			marker = " [invalid]"
		}
		fmt.Printf("%s%s\t%s\n", info.Name, marker, info.Description)
	}
	return nil
}

// collectInputs expands folder arguments into their PDF files (recursive)
// and passes file arguments through. When everything lives under a single
// folder argument that folder becomes the input root, so the output mirrors
// its structure.
func collectInputs(args []string) (files []string, root string, err error) {
	var dirs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, "", fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		dirs = append(dirs, arg)
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, "", fmt.Errorf("scan %s: %w", arg, walkErr)
		}
	}
	sort.Strings(files)
	if len(dirs) == 1 && len(args) == 1 {
		root = dirs[0]
	}
	return files, root, nil
}
