// Package pipeline wires the pure dom/css/layout/spatial/jsinfer packages
// into one orchestrated snapshot operation: fetch, parse, cascade, lay out,
// emit. Logging, HTTP, and concurrency live here, deliberately kept out of
// the core packages so they stay side-effect free.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
	"github.com/arturoeanton/gospatial/jsinfer"
	"github.com/arturoeanton/gospatial/layout"
	"github.com/arturoeanton/gospatial/spatial"
)

// Viewport is the caller-supplied window size a page is snapshotted at.
type Viewport struct {
	Width, Height float64
}

// Snapshot is the full output of one Run: the Spatial DOM plus the
// scripted-effect behaviors detected on the same document, tagged with the
// id this run was logged under.
type Snapshot struct {
	ID        string
	Dom       *spatial.SpatialDom
	Behaviors []jsinfer.JsBehavior
	TabGroups []jsinfer.TabGroup
}

// Fetcher fetches a document's raw HTML and any linked stylesheets it
// references. The default implementation is httpFetcher; tests can supply a
// stub.
type Fetcher interface {
	FetchHTML(ctx context.Context, rawURL string) (string, error)
	FetchStylesheet(ctx context.Context, rawURL string) (string, error)
}

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a Fetcher backed by net/http with the given
// per-request timeout.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpFetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	return f.get(ctx, rawURL)
}

func (f *httpFetcher) FetchStylesheet(ctx context.Context, rawURL string) (string, error) {
	return f.get(ctx, rawURL)
}

func (f *httpFetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("pipeline: building request for %s: %w", rawURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pipeline: fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("pipeline: %s responded %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pipeline: reading body of %s: %w", rawURL, err)
	}
	return string(body), nil
}

// Pipeline runs the full fetch-to-spatial-dom orchestration for one or more
// pages, logging each stage via a per-run child logger.
type Pipeline struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// New builds a Pipeline. log is the base logger; each Run call attaches a
// "snapshot_id" field to it.
func New(fetcher Fetcher, log zerolog.Logger) *Pipeline {
	return &Pipeline{fetcher: fetcher, log: log}
}

// Run fetches rawURL, resolves its external stylesheets concurrently,
// computes the style and box trees, and emits the Spatial DOM plus
// scripted-effect behaviors for it.
func (p *Pipeline) Run(ctx context.Context, rawURL string, vp Viewport) (*Snapshot, error) {
	snapshotID := uuid.NewString()
	log := p.log.With().Str("snapshot_id", snapshotID).Str("url", rawURL).Logger()

	log.Info().Msg("fetching document")
	html, err := p.fetcher.FetchHTML(ctx, rawURL)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return nil, err
	}

	root := dom.ParseHTML(html)

	sheets, err := p.fetchStylesheets(ctx, root, rawURL, log)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("stylesheets", len(sheets)).Msg("computing style tree")
	styles := css.ComputeStyleTree(root, sheets, css.Viewport{Width: vp.Width, Height: vp.Height})

	log.Debug().Msg("computing layout")
	box := layout.ComputeLayout(root, styles, vp.Width, vp.Height)

	log.Debug().Msg("emitting spatial dom")
	sdom := spatial.GenerateSpatialDom(box, vp.Width, vp.Height)
	sdom.URL = rawURL
	sdom.SnapshotID = snapshotID
	spatial.ResolveURLs(sdom, rawURL)

	behaviors := jsinfer.DetectBehaviors(root)
	tabGroups := jsinfer.DetectTabGroups(root)

	stats := sdom.Stats()
	log.Info().
		Int("elements", stats.TotalElements).
		Int("interactive", stats.Interactive).
		Str("page_type", sdom.PageType.String()).
		Int("behaviors", len(behaviors)).
		Msg("snapshot complete")

	return &Snapshot{ID: snapshotID, Dom: sdom, Behaviors: behaviors, TabGroups: tabGroups}, nil
}

// fetchStylesheets resolves and fetches every external stylesheet linked
// from root concurrently (one errgroup goroutine per link) and parses each
// into a css.Stylesheet. A failed fetch is logged and skipped; it does not
// cancel the others. <style> blocks and inline style attributes are not
// handled here: ComputeStyleTree discovers them on its own.
func (p *Pipeline) fetchStylesheets(ctx context.Context, root *dom.Node, baseURL string, log zerolog.Logger) ([]*css.Stylesheet, error) {
	links := css.FindStylesheetLinks(root)
	if len(links) == 0 {
		return nil, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("pipeline: parsing base url %s: %w", baseURL, err)
	}

	sheets := make([]*css.Stylesheet, len(links))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			resolved := link
			if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
				if ref, err := url.Parse(link); err == nil {
					resolved = base.ResolveReference(ref).String()
				}
			}
			source, err := p.fetcher.FetchStylesheet(gctx, resolved)
			if err != nil {
				log.Warn().Err(err).Str("stylesheet", resolved).Msg("stylesheet fetch failed, skipping")
				return nil
			}
			sheets[i] = css.ParseStylesheet(source, css.Viewport{})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := sheets[:0]
	for _, s := range sheets {
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}
