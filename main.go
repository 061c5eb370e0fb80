package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"connroute/config"
	"connroute/export"
	"connroute/scene"
	"connroute/validation"

	"github.com/atotto/clipboard"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("connroute: ")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("connroute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		interactive = fs.Bool("i", false, "Interactive viewer")
		validate    = fs.Bool("validate", false, "Validate the scene and exit")
		format      = fs.String("format", cfg.Output.Format, "Export format: ascii, svg, png, json, snapshot")
		outputFile  = fs.String("o", "", "Output file (default: stdout)")
		copyPath    = fs.Bool("copy", false, "Copy the SVG path data of the first connector to the clipboard")
		pin         = fs.Bool("pin", false, "Write chosen ports and generated ids back to the scene file")
		verify      = fs.Bool("verify", false, "Check that text output joins up")
		ascii       = fs.Bool("ascii", cfg.Output.ASCII, "Use ASCII glyphs for text output")

		minStub = fs.Float64("min-stub", cfg.Routing.MinStub, "Minimum length of the first and last step segment")
		radius  = fs.Float64("radius", cfg.Routing.BaseRadius, "Corner radius of step paths")
		noSnap  = fs.Bool("no-snap", cfg.Routing.DisableSnap, "Disable snapping of step paths onto endpoint axes")
		scale   = fs.Float64("scale", cfg.Output.Scale, "PNG pixels per diagram unit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: connroute [options] scene.json\n\n")
		fmt.Fprintf(stderr, "Routes the connectors of a scene and exports the result.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  connroute scene.json                     # Text art to stdout\n")
		fmt.Fprintf(stderr, "  connroute -o scene.svg scene.json        # Format from the extension\n")
		fmt.Fprintf(stderr, "  connroute -format png -scale 2 -o s.png scene.json\n")
		fmt.Fprintf(stderr, "  connroute -i scene.json                  # Interactive viewer\n")
		fmt.Fprintf(stderr, "  connroute -validate scene.json\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one scene file")
	}
	filename := fs.Arg(0)
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	s, fromSnapshot, err := loadScene(filename)
	if err != nil {
		return err
	}
	generated := s.EnsureIDs()

	if err := validation.NewSceneValidator().Validate(s); err != nil {
		var serr *validation.SceneError
		if errors.As(err, &serr) {
			fmt.Fprintln(stderr, issueReport(filename, serr))
		}
		return err
	}
	if *validate {
		fmt.Fprintln(stderr, okStyle.Render(fmt.Sprintf("%s: %d shapes, %d connectors, valid", filename, len(s.Shapes), len(s.Connectors))))
		return nil
	}

	rc := cfg.Routing
	rc.MinStub = *minStub
	rc.BaseRadius = *radius
	rc.DisableSnap = *noSnap
	if err := (&config.Config{Routing: rc, Output: cfg.Output}).Validate(); err != nil {
		return err
	}

	canSave := !fromSnapshot
	if *interactive {
		return runViewer(s, rc, cfg.Output, filename, canSave)
	}

	layout, err := scene.Route(s, rc)
	if err != nil {
		return err
	}

	if *pin {
		if !canSave {
			return errors.New("-pin needs a JSON scene file")
		}
		if err := layout.Scene.SaveFile(filename); err != nil {
			return err
		}
	}

	if *copyPath {
		if err := copyFirstPath(layout); err != nil {
			return err
		}
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	if *outputFile != "" && !explicit["format"] {
		if guessed, ok := export.FormatForPath(*outputFile); ok {
			f = guessed
		}
	}

	opts := export.Options{
		ASCII:  *ascii,
		Verify: *verify,
		Scale:  *scale,
		CellX:  cfg.Output.CellX,
		CellY:  cfg.Output.CellY,
		Margin: cfg.Output.Margin,
	}
	exporter, err := export.NewExporter(f, opts)
	if err != nil {
		return err
	}
	data, err := exporter.Export(layout)
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}

	if *outputFile == "" {
		if f == export.FormatPNG || f == export.FormatSnapshot {
			return fmt.Errorf("%s output is binary, use -o", exporter.GetFormatName())
		}
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*outputFile, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintln(stderr, summary(summaryInfo{
		Output:    *outputFile,
		Format:    exporter.GetFormatName(),
		Bytes:     len(data),
		Layout:    layout,
		Generated: generated,
		Pinned:    *pin,
	}))
	return nil
}

// loadScene reads a JSON scene or the scene inside a snapshot.
func loadScene(filename string) (*scene.Scene, bool, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".snap") {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, false, fmt.Errorf("read snapshot: %w", err)
		}
		snap, err := export.ReadSnapshot(data)
		if err != nil {
			return nil, false, err
		}
		return snap.Scene, true, nil
	}
	s, err := scene.LoadFile(filename)
	return s, false, err
}

func copyFirstPath(l *scene.Layout) error {
	for _, p := range l.Paths {
		if p.Result.IsEmpty() {
			continue
		}
		if err := copyToClipboard(p.Result.Geometry.SVG()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		return nil
	}
	return errors.New("no connector path to copy")
}
