package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/wudi/pdfstamp/fonts"
	"github.com/wudi/pdfstamp/observability"
	"github.com/wudi/pdfstamp/preset"
	"github.com/wudi/pdfstamp/render"
	"github.com/wudi/pdfstamp/stamp"
	"github.com/wudi/pdfstamp/subst"
)

// Progress receives the 1-based index of the file just handled and a short
// status line. It is called after every file, success or failure.
type Progress func(index int, status string)

// FileError records one failed input file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// Result summarizes a finished or cancelled run. A cancelled run still
// carries the counts for files completed before the stop.
type Result struct {
	Cancelled bool
	Succeeded int
	Failed    int
	// Pages counts pages that received at least one overlay.
	Pages  int
	Errors []FileError
}

// Engine executes jobs. Each Run builds its own renderer and caches, so a
// preview renderer in the same process never shares mutable state with a
// batch worker.
type Engine struct {
	families fonts.Map
	subst    *subst.Engine
	log      observability.Logger
	now      func() time.Time
}

// New creates an engine over a font family map and a filename substitution
// engine.
func New(families fonts.Map, substEngine *subst.Engine, log observability.Logger) *Engine {
	if log == nil {
		log = observability.NopLogger{}
	}
	if substEngine == nil {
		substEngine = subst.NewEngine(nil, log)
	}
	return &Engine{
		families: families,
		subst:    substEngine,
		log:      log,
		now:      time.Now,
	}
}

// Run processes the job's files sequentially. Cancellation is checked at
// file boundaries only: a file already being processed finishes before the
// run stops. One bad file is logged and counted, never fatal to the batch.
func (e *Engine) Run(ctx context.Context, job *Job, progress Progress) *Result {
	start := e.now()
	log := e.log.With(observability.String("job", job.ID))
	log.Info("batch started", observability.Int("files", len(job.Files)))

	renderer := render.New(e.families, log)
	var prepared *stamp.Prepared
	if job.Features.Stamp {
		prepared = stamp.NewPrepared(job.Stamp.Path, log)
	}
	timestamp := ""
	if job.Features.Timestamp {
		timestamp = preset.BuildTimestamp(job.Timestamp.Prefix, job.Timestamp.Format, start)
	}

	res := &Result{}
	for i, path := range job.Files {
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		name := filepath.Base(path)
		pages, err := e.processFile(job, renderer, prepared, path, timestamp)
		if err != nil {
			log.Error("file failed",
				observability.String("file", name),
				observability.Error("err", err))
			res.Failed++
			res.Errors = append(res.Errors, FileError{Path: path, Err: err})
			if progress != nil {
				progress(i+1, fmt.Sprintf("Failed: %s", name))
			}
			continue
		}
		res.Succeeded++
		res.Pages += pages
		if progress != nil {
			progress(i+1, fmt.Sprintf("Processed: %s", name))
		}
	}

	log.Info("batch finished",
		observability.Int(observability.MetricFilesProcessed, res.Succeeded),
		observability.Int(observability.MetricFilesFailed, res.Failed),
		observability.Int(observability.MetricPagesStamped, res.Pages),
		observability.Int64(observability.MetricRunDuration, time.Since(start).Milliseconds()))
	if prepared != nil {
		log.Debug("stamp cache",
			observability.Int(observability.MetricStampCacheHits, prepared.CacheHits()))
	}
	return res
}

// pageGeom is one page's physical media size and its /Rotate value.
type pageGeom struct {
	physW float64
	physH float64
	rot   int
}

func pageGeometry(rctx *model.Context, pageNr int) (pageGeom, error) {
	_, _, attrs, err := rctx.PageDict(pageNr, false)
	if err != nil {
		return pageGeom{}, fmt.Errorf("page %d: %w", pageNr, err)
	}
	if attrs == nil || attrs.MediaBox == nil {
		return pageGeom{}, fmt.Errorf("page %d: no media box", pageNr)
	}
	rot := ((attrs.Rotate % 360) + 360) % 360
	return pageGeom{
		physW: attrs.MediaBox.Width(),
		physH: attrs.MediaBox.Height(),
		rot:   rot,
	}, nil
}

// applyPage imports one source page into the output document and applies
// the enabled features in fixed order: text, timestamp, stamp. It reports
// whether any feature drew on the page.
func (e *Engine) applyPage(
	job *Job,
	renderer *render.Renderer,
	canvas *render.Canvas,
	importer *gofpdi.Importer,
	prepared *stamp.Prepared,
	path string,
	pageNr, pageCount int,
	geom pageGeom,
	text, timestamp string,
) bool {
	pdf := canvas.PDF()
	// Orientation "P" keeps the explicit size as given; "L" would make fpdf
	// swap Wd and Ht and transpose landscape pages.
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: geom.physW, Ht: geom.physH})
	tpl := importer.ImportPage(pdf, path, pageNr, "/MediaBox")
	importer.UseImportedTemplate(pdf, tpl, 0, 0, geom.physW, geom.physH)

	// Display dimensions as a viewer reports them; the resolvers correct
	// these back to physical size before classification.
	displayW, displayH := geom.physW, geom.physH
	if geom.rot == 90 || geom.rot == 270 {
		displayW, displayH = geom.physH, geom.physW
	}
	idx := pageNr - 1

	applied := false
	if job.Features.Text && text != "" {
		cfg := job.Text.Resolver.Resolve(displayW, displayH, geom.rot)
		if cfg.Applies(idx, pageCount) {
			renderer.ApplyText(canvas, geom.physW, geom.physH, text, cfg)
			applied = true
		}
	}
	if job.Features.Timestamp && timestamp != "" {
		cfg := job.Timestamp.Resolver.Resolve(displayW, displayH, geom.rot)
		if cfg.Applies(idx, pageCount) {
			renderer.ApplyText(canvas, geom.physW, geom.physH, timestamp, cfg)
			applied = true
		}
	}
	if job.Features.Stamp && prepared != nil {
		cfg := job.Stamp.Resolver.Resolve(displayW, displayH, geom.rot)
		if cfg.Applies(idx, pageCount) {
			renderer.ApplyStamp(canvas, geom.physW, geom.physH, prepared, cfg)
			applied = true
		}
	}
	return applied
}

// processFile writes one stamped output file and returns the number of
// pages a feature drew on.
func (e *Engine) processFile(job *Job, renderer *render.Renderer, prepared *stamp.Prepared, path, timestamp string) (int, error) {
	rctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	pageCount := rctx.PageCount

	text := ""
	if job.Features.Text {
		text, _ = e.subst.Apply(job.Text.Template, path)
	}

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	canvas := render.NewCanvas(pdf)

	// Pages grouped by non-zero rotation, restored after the overlay pass.
	rotated := make(map[int][]string)

	stamped := 0
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		geom, err := pageGeometry(rctx, pageNr)
		if err != nil {
			return 0, err
		}
		if geom.rot != 0 {
			rotated[geom.rot] = append(rotated[geom.rot], strconv.Itoa(pageNr))
		}
		if e.applyPage(job, renderer, canvas, importer, prepared, path, pageNr, pageCount, geom, text, timestamp) {
			stamped++
		}
	}

	outPath, err := OutputPath(job, path)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("create output folder: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return 0, fmt.Errorf("write output: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	for rot, pages := range rotated {
		if err := api.RotateFile(outPath, "", rot, pages, conf); err != nil {
			return 0, fmt.Errorf("restore rotation: %w", err)
		}
	}
	if err := api.OptimizeFile(outPath, "", conf); err != nil {
		return 0, fmt.Errorf("optimize output: %w", err)
	}

	if job.Features.Security {
		enc := model.NewAESConfiguration("", job.Security.MasterPassword, 256)
		enc.Permissions = permissionMask(job.Security)
		if err := api.EncryptFile(outPath, "", enc); err != nil {
			return 0, fmt.Errorf("encrypt output: %w", err)
		}
	}
	return stamped, nil
}

// PreviewPage renders a single page of one file through exactly the same
// per-page pipeline the batch uses and returns the one-page document. What
// this shows is what a run writes to disk.
func (e *Engine) PreviewPage(job *Job, path string, pageIndex int) ([]byte, error) {
	rctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	pageCount := rctx.PageCount
	if pageIndex < 0 || pageIndex >= pageCount {
		return nil, fmt.Errorf("page index %d out of range (%d pages)", pageIndex, pageCount)
	}

	text := ""
	if job.Features.Text {
		text, _ = e.subst.Apply(job.Text.Template, path)
	}
	timestamp := ""
	if job.Features.Timestamp {
		timestamp = preset.BuildTimestamp(job.Timestamp.Prefix, job.Timestamp.Format, e.now())
	}

	renderer := render.New(e.families, e.log)
	var prepared *stamp.Prepared
	if job.Features.Stamp {
		prepared = stamp.NewPrepared(job.Stamp.Path, e.log)
	}

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	canvas := render.NewCanvas(pdf)

	geom, err := pageGeometry(rctx, pageIndex+1)
	if err != nil {
		return nil, err
	}
	e.applyPage(job, renderer, canvas, importer, prepared, path, pageIndex+1, pageCount, geom, text, timestamp)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
