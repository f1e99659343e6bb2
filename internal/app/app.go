// Package app is the host side of the editor: it owns the documents,
// builds the engine from configuration and answers the engine's host
// callbacks.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/vimcore/internal/clipboard"
	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/log"
	"github.com/dshills/vimcore/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty skips the file.
	ConfigPath string

	// InitPath is the Lua init script. Empty skips it.
	InitPath string

	// Files are opened at startup; the first becomes active.
	Files []string

	// Text fills the scratch document used when Files is empty.
	Text string

	// Config replaces loading from ConfigPath when set.
	Config *config.Config
}

// Application wires the engine to documents, clipboard, session and
// configuration reloads.
type Application struct {
	mu sync.Mutex

	config    *config.Config
	engine    *input.Engine
	documents *DocumentManager
	clipboard clipboard.Provider
	searcher  *surface.Searcher
	metrics   *input.Metrics

	opts    Options
	watcher *config.Watcher
	reloads chan *config.Config

	// attach is the document to hand the engine after the current key.
	attach *Document

	quit     chan struct{}
	quitOnce sync.Once
	shutdown sync.Once
}

// New loads configuration, runs the init script, opens the files and
// builds the engine.
func New(ctx context.Context, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if opts.InitPath != "" {
		res, err := lua.RunInit(ctx, opts.InitPath, cfg)
		if err != nil {
			return nil, err
		}
		cfg = res.Config
	}
	applyLogLevel(cfg)

	a := &Application{
		config:    cfg,
		clipboard: clipboard.New(cfg.Clipboard.System),
		searcher:  surface.NewSearcher(cfg.Search.RegexCacheTTL()),
		metrics:   input.NewMetrics(),
		opts:      opts,
		reloads:   make(chan *config.Config, 1),
		quit:      make(chan struct{}),
	}
	a.documents = NewDocumentManager(a.newSurface)

	var first *Document
	for _, path := range opts.Files {
		doc, err := a.documents.Open(path)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = doc
		}
	}
	if first == nil {
		first = a.documents.CreateScratch(opts.Text)
	}
	_ = a.documents.SetActive(first.ID)

	a.engine = input.New(first.Surface,
		input.WithConfig(cfg.Input),
		input.WithDocument(first.ID),
		input.WithHost(host{a}),
		input.WithClipboard(a.clipboard),
		input.WithSearcher(a.searcher),
		input.WithMetrics(a.metrics),
	)

	if err := a.restoreSession(); err != nil {
		log.Warn("session restore failed", "error", err)
	}
	log.Info("application started", "documents", a.documents.Count())
	return a, nil
}

func (a *Application) newSurface(text string, readOnly bool) *surface.Memory {
	opts := []surface.Option{
		surface.WithSearcher(a.searcher),
		surface.WithClipboard(a.clipboard),
	}
	if readOnly {
		opts = append(opts, surface.WithReadOnly())
	}
	return surface.NewMemory(text, opts...)
}

func applyLogLevel(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warn("ignoring log level", "error", err)
		return
	}
	log.SetLevel(level)
}

// HandleEvent feeds one key to the engine, applying any configuration
// reload first and any document change the key caused afterwards.
func (a *Application) HandleEvent(ev key.Event) input.Result {
	a.ApplyPendingConfig()
	res := a.engine.HandleEvent(ev)

	a.mu.Lock()
	doc := a.attach
	a.attach = nil
	a.mu.Unlock()
	if doc != nil {
		a.engine.AttachDocument(doc.ID, doc.Surface)
	}
	return res
}

// Engine returns the key engine.
func (a *Application) Engine() *input.Engine {
	return a.engine
}

// Documents returns the document manager.
func (a *Application) Documents() *DocumentManager {
	return a.documents
}

// Config returns the configuration in effect.
func (a *Application) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// Metrics returns the key handling statistics.
func (a *Application) Metrics() *input.Metrics {
	return a.metrics
}

// Done is closed once the last document is closed.
func (a *Application) Done() <-chan struct{} {
	return a.quit
}

func (a *Application) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// scheduleAttach hands doc to the engine once the current key finishes.
func (a *Application) scheduleAttach(doc *Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attach = doc
}
