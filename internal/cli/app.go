package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/internal/config"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/state"
	"github.com/odvcencio/furry-virtual/widgets"
)

func identity(s string) string { return s }

// newRenderer returns the item renderer named by rc.
func newRenderer(rc config.RendererConfig) (widgets.ItemRenderer[string], error) {
	switch rc.Kind {
	case config.RendererText, "":
		return widgets.NewTextRenderer[string](), nil
	case config.RendererMarkdown:
		return widgets.NewMarkdownRenderer(identity), nil
	case config.RendererCode:
		return widgets.NewCodeRenderer(rc.Language, rc.Style, identity), nil
	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrUnknownRenderer, rc.Kind)
	}
}

func scrollConfig(sc config.ScrollbarConfig) widgets.ScrollViewConfig {
	cfg := widgets.DefaultScrollViewConfig()
	cfg.Behavior.Horizontal = scroll.ScrollNever
	if sc.AlwaysShow {
		cfg.Behavior.Vertical = scroll.ScrollAlways
	}
	if sc.MouseWheel > 0 {
		cfg.Behavior.MouseWheel = sc.MouseWheel
	}
	if sc.MinThumbSize > 0 {
		cfg.MinThumbSize = sc.MinThumbSize
	}
	if sc.HideDelay != 0 {
		cfg.HideDelay = sc.HideDelay
	}
	return cfg
}

// listHeight clamps the configured container height to the rows the
// list can occupy. Zero lets the list follow its laid out height.
func listHeight(configured float64, termRows int) float64 {
	if termRows <= 1 {
		return configured
	}
	if configured >= float64(termRows-1) {
		return 0
	}
	return configured
}

// loadItems reads cfg.List.Source, or generates cfg.List.ItemCount items.
func loadItems(cfg *config.Config) ([]string, error) {
	if cfg.List.Source == "" {
		return generateItems(cfg.Renderer.Kind, 0, cfg.List.ItemCount), nil
	}
	f, err := os.Open(cfg.List.Source)
	if err != nil {
		return nil, fmt.Errorf("opening item source: %w", err)
	}
	defer f.Close()
	return readItems(f, cfg.Renderer.Kind)
}

// newApp builds the widget tree and the app that drives it.
func newApp(cfg *config.Config, items []string, be backend.Backend, termRows int, logger *zerolog.Logger) (*runtime.App, *shell, error) {
	renderer, err := newRenderer(cfg.Renderer)
	if err != nil {
		return nil, nil, err
	}
	source := state.NewSignal(items)
	list, err := widgets.NewVirtualList[string](widgets.NewSignalAdapter(source), renderer, widgets.VirtualListConfig{
		Height:              listHeight(cfg.List.Height, termRows),
		EstimatedItemHeight: cfg.List.EstimatedItemHeight,
		Scroll:              scrollConfig(cfg.Scrollbar),
	})
	if err != nil {
		return nil, nil, err
	}
	kind := cfg.Renderer.Kind
	ui := newShell(list, source, func(start, n int) []string {
		return generateItems(kind, start, n)
	})
	app := runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Root:    ui,
		Logger:  logger,
	})
	return app, ui, nil
}
