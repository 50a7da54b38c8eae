package extract

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// RenderedPage fetches corporate pages through headless Chrome so that
// script-generated content is present in the returned HTML. Browser
// resources are scoped to each call: the chromedp contexts are cancelled on
// every exit path, success or not.
type RenderedPage struct {
	timeout time.Duration
}

// NewRenderedPage creates the headless-browser strategy. The timeout needs
// to be materially larger than the static strategy's; page loads include
// browser startup and script execution.
func NewRenderedPage(timeout time.Duration) *RenderedPage {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RenderedPage{timeout: timeout}
}

func (r *RenderedPage) Name() string { return "rendered" }

// FetchHTML navigates to the URL, waits for the network to go idle so late
// XHR content has landed, and returns the rendered document. A page-load
// timeout comes back as *FetchError.
func (r *RenderedPage) FetchHTML(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		enableLifecycleEvents(),
		navigateAndWaitIdle(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &FetchError{URL: url, Err: errors.New("rendered: page load timeout")}
		}
		return "", &FetchError{URL: url, Err: err}
	}

	return html, nil
}

func enableLifecycleEvents() chromedp.ActionFunc {
	return func(ctx context.Context) error {
		if err := page.Enable().Do(ctx); err != nil {
			return err
		}
		return page.SetLifecycleEventsEnabled(true).Do(ctx)
	}
}

// navigateAndWaitIdle starts the navigation and blocks until the page
// reports the networkIdle lifecycle event. The listener is installed before
// navigating so the event cannot be missed.
func navigateAndWaitIdle(url string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		idle := make(chan struct{})
		listenCtx, stopListening := context.WithCancel(ctx)
		defer stopListening()

		chromedp.ListenTarget(listenCtx, func(ev any) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
				stopListening()
				close(idle)
			}
		})

		if _, _, _, _, err := page.Navigate(url).Do(ctx); err != nil {
			return err
		}

		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
