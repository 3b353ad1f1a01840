package rasterize

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Chrome renders through a headless browser. Each Render call runs in a
// fresh tab so documents cannot leak state into each other.
type Chrome struct {
	logger  *zap.Logger
	timeout time.Duration
	execOpts []chromedp.ExecAllocatorOption
}

// ChromeOption configures the Chrome engine.
type ChromeOption func(*Chrome)

// WithTimeout caps a single render.
func WithTimeout(d time.Duration) ChromeOption {
	return func(c *Chrome) { c.timeout = d }
}

// WithExecPath points at a specific browser binary.
func WithExecPath(path string) ChromeOption {
	return func(c *Chrome) {
		c.execOpts = append(c.execOpts, chromedp.ExecPath(path))
	}
}

// NewChrome creates a headless-browser rasterizer.
func NewChrome(logger *zap.Logger, opts ...ChromeOption) *Chrome {
	c := &Chrome{
		logger:  logger,
		timeout: 60 * time.Second,
		execOpts: append([]chromedp.ExecAllocatorOption{},
			chromedp.DefaultExecAllocatorOptions[:]...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render loads the document into a blank tab and prints it to PDF.
func (c *Chrome) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.execOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("headless render: %w", err)
	}

	c.logger.Debug("rendered pdf",
		zap.Int("bytes", len(pdf)),
		zap.Duration("took", time.Since(start)))
	return pdf, nil
}
