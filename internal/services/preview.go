package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

var previewTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #fff; }
  pre { font-family: "DejaVu Sans Mono", "Courier New", monospace; font-size: 14px; line-height: 1.25; margin: 12px; }
</style>
</head>
<body><pre>{{.Text}}</pre></body>
</html>`))

// PreviewRenderer draws a receipt as it would come out of a 58mm printer,
// using a headless Chrome.
type PreviewRenderer struct {
	chromePath string
	log        *zap.Logger
	Timeout    time.Duration
}

func NewPreviewRenderer(chromePath string, log *zap.Logger) *PreviewRenderer {
	return &PreviewRenderer{
		chromePath: chromePath,
		log:        log.Named("preview"),
		Timeout:    20 * time.Second,
	}
}

func renderPreviewHTML(title, text string) (string, error) {
	var buf bytes.Buffer
	err := previewTemplate.Execute(&buf, struct{ Title, Text string }{title, text})
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (r *PreviewRenderer) RenderPNG(ctx context.Context, title, text string) ([]byte, error) {
	html, err := renderPreviewHTML(title, text)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	cdpCtx, cdpCancel := chromedp.NewContext(allocCtx)
	defer cdpCancel()

	var pngBytes []byte
	err = chromedp.Run(cdpCtx,
		chromedp.EmulateViewport(320, 400),
		chromedp.Navigate("data:text/html,"+urlEncode(html)),
		chromedp.WaitReady("pre", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, err := page.CaptureScreenshot().
				WithCaptureBeyondViewport(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pngBytes = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed generating image: %w", err)
	}

	r.log.Debug("preview rendered", zap.Int("bytes", len(pngBytes)))
	return pngBytes, nil
}

// Helper for encoding HTML into a data URL
func urlEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
