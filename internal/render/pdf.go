package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"guest-recovery-portal/internal/config"
	"guest-recovery-portal/internal/models"
)

// Renderer turns a set of complaint records into a printable PDF by
// rendering the report HTML in headless Chrome.
type Renderer struct {
	propertyName string
	chromePath   string
	timeout      time.Duration
	workDir      string
}

func NewRenderer(cfg config.RendererConfig, propertyName string) *Renderer {
	return &Renderer{
		propertyName: propertyName,
		chromePath:   cfg.ChromePath,
		timeout:      cfg.GetTimeout(),
		workDir:      cfg.WorkDir,
	}
}

// GeneratePDF builds the report document for the given period and prints
// it to PDF. The intermediate HTML file is removed once printing is done.
func (r *Renderer) GeneratePDF(ctx context.Context, complaints []models.Complaint, start, end time.Time) ([]byte, error) {
	html, err := BuildReportHTML(complaints, start, end, r.propertyName)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(r.workDir, "report-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create report working file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write report HTML: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close report HTML: %w", err)
	}

	absPath, err := filepath.Abs(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report path: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true), // Required for systemd/Docker
		chromedp.Flag("disable-dev-shm-usage", true), // Prevents /dev/shm issues
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-software-rasterizer", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, r.timeout)
	defer timeoutCancel()

	log.Debug().
		Int("complaints", len(complaints)).
		Str("period", start.Format("2006-01-02")+".."+end.Format("2006-01-02")).
		Msg("Printing recovery report")

	var pdf []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("file://"+absPath),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print report PDF: %w", err)
	}

	return pdf, nil
}
