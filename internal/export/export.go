// Package export writes the dashboard as a static site: one page per tab,
// the htmx fragments the pages request, the stylesheet and a YAML snapshot
// of the datasets.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"cansee/internal/core"
	applog "cansee/internal/log"
	"cansee/internal/view"
)

const (
	DatasetsFile = "datasets.yaml"
	IndexFile    = "index.html"

	maxParallel = 4
)

// Dataset is the YAML snapshot of every registry table.
type Dataset struct {
	Revenue    []core.RevenueRow        `yaml:"revenue"`
	Summary    []core.MetricRow         `yaml:"summary"`
	Thematic   []core.ThematicSlice     `yaml:"thematic"`
	Geographic []core.GeographicRow     `yaml:"geographic"`
	Highlights []core.HighlightCard     `yaml:"highlights"`
	Proposals  []core.VolunteerProposal `yaml:"proposals"`
	Citations  []core.Citation          `yaml:"citations"`
	BarColors  core.SeriesColors        `yaml:"bar_colors"`
}

// Snapshot copies the registry into a Dataset.
func Snapshot(reg *core.Registry) Dataset {
	return Dataset{
		Revenue:    reg.Revenue(),
		Summary:    reg.Summary(),
		Thematic:   reg.Thematic(),
		Geographic: reg.Geographic(),
		Highlights: reg.Highlights(),
		Proposals:  reg.Proposals(),
		Citations:  reg.Citations(),
		BarColors:  reg.BarColors(),
	}
}

// WriteDatasets encodes the registry snapshot as YAML.
func WriteDatasets(w io.Writer, reg *core.Registry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot(reg)); err != nil {
		return fmt.Errorf("encode datasets: %w", err)
	}
	return enc.Close()
}

// Exporter renders the site into a directory.
type Exporter struct {
	registry *core.Registry
	renderer *view.Renderer
	static   fs.FS
	logger   *applog.Logger
}

func New(reg *core.Registry, renderer *view.Renderer, static fs.FS, logger *applog.Logger) *Exporter {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Exporter{
		registry: reg,
		renderer: renderer,
		static:   static,
		logger:   logger.WithComponent(applog.ComponentExport),
	}
}

type job struct {
	path   string
	render func(io.Writer) error
}

// PagePath is the exported page for tab. The overview page is the index.
func PagePath(tab core.Tab) string {
	if tab == core.TabOverview {
		return IndexFile
	}
	return tab.String() + ".html"
}

// FragmentPath mirrors the route the tab buttons request.
func FragmentPath(tab core.Tab) string {
	return filepath.Join("ui", "tabs", tab.String())
}

func (e *Exporter) jobs() ([]job, error) {
	var jobs []job
	for _, tab := range core.Tabs() {
		sel := core.NewSelector()
		if _, err := sel.Select(tab); err != nil {
			return nil, err
		}
		jobs = append(jobs,
			job{path: PagePath(tab), render: func(w io.Writer) error { return e.renderer.Page(w, sel) }},
			job{path: FragmentPath(tab), render: func(w io.Writer) error { return e.renderer.Fragment(w, tab) }},
		)
	}
	jobs = append(jobs, job{path: DatasetsFile, render: func(w io.Writer) error { return WriteDatasets(w, e.registry) }})

	if e.static != nil {
		err := fs.WalkDir(e.static, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			jobs = append(jobs, job{path: filepath.Join("static", filepath.FromSlash(path)), render: func(w io.Writer) error {
				f, err := e.static.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				_, err = io.Copy(w, f)
				return err
			}})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk static assets: %w", err)
		}
	}
	return jobs, nil
}

// Write renders every file into dir concurrently and returns the written
// paths relative to dir, sorted. The first failure cancels the rest.
func (e *Exporter) Write(ctx context.Context, dir string) ([]string, error) {
	jobs, err := e.jobs()
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.writeFile(dir, j)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(jobs))
	for _, j := range jobs {
		paths = append(paths, filepath.ToSlash(j.path))
	}
	sort.Strings(paths)
	e.logger.Info("Static export completed", applog.FieldOperation, applog.OpExport, "dir", dir, "files", len(paths))
	return paths, nil
}

func (e *Exporter) writeFile(dir string, j job) error {
	var buf bytes.Buffer
	if err := j.render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", j.path, err)
	}
	target := filepath.Join(dir, j.path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", j.path, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}
	e.logger.Debug("File written", applog.FieldFile, j.path, applog.FieldBytes, buf.Len())
	return nil
}
