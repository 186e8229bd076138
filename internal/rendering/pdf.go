package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPaginateTimeout bounds a single print run.
const DefaultPaginateTimeout = 60 * time.Second

// Paginate lays the document out on pages and returns the PDF bytes.
// Page breaks are the print engine's job, not this package's.
// Requires Chrome/Chromium to be installed on the system.
func Paginate(ctx context.Context, doc *Document) ([]byte, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}
	return printToPDF(ctx, html, DefaultPaginateTimeout)
}

// printToPDF loads the HTML into a headless browser and prints it.
func printToPDF(ctx context.Context, html string, timeout time.Duration) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &PaginateError{Message: "headless browser print failed", Cause: err}
	}

	return pdf, nil
}
