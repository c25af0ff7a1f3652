package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/repos"
)

type PDFService interface {
	GenerateNotePDF(ctx context.Context, userID, noteID uuid.UUID) (string, error)
}

type pdfService struct {
	log      *logger.Logger
	cfg      config.PDFConfig
	noteRepo repos.NoteRepo
	bucket   BucketService
}

func NewPDFService(cfg config.PDFConfig, log *logger.Logger, noteRepo repos.NoteRepo, bucket BucketService) PDFService {
	return &pdfService{
		log:      log.With("service", "PDFService"),
		cfg:      cfg,
		noteRepo: noteRepo,
		bucket:   bucket,
	}
}

// GenerateNotePDF renders the note's HTML in a headless browser, uploads the
// result, and stores the object URL on the note. Each call spawns its own
// browser so a hung render cannot poison later requests.
func (s *pdfService) GenerateNotePDF(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	note, err := s.noteRepo.GetByID(ctx, nil, noteID, userID)
	if err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to load note: %w", err))
	}
	if note == nil {
		return "", apierr.NotFound(fmt.Errorf("note not found"))
	}

	pdf, err := s.renderPDF(ctx, printableDocument(note.Title, note.HTML))
	if err != nil {
		return "", apierr.Upstream(fmt.Errorf("Failed to render note PDF: %w", err))
	}

	filename := fmt.Sprintf("%s.pdf", note.ID)
	url, err := s.bucket.UploadStream(ctx, FolderNotePDFs, filename, "application/pdf", bytes.NewReader(pdf))
	if err != nil {
		return "", apierr.Upstream(err)
	}

	if _, err := s.noteRepo.UpdateFields(ctx, nil, note.ID, userID, map[string]interface{}{
		"pdf_url": url,
	}); err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to save note PDF URL: %w", err))
	}
	return url, nil
}

func (s *pdfService) renderPDF(ctx context.Context, html string) ([]byte, error) {
	renderCtx, cancelTimeout := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(renderCtx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

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
		return nil, err
	}
	return pdf, nil
}

func printableDocument(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 20px; }
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 40px; color: #1f2937; line-height: 1.6; }
  h1 { border-bottom: 2px solid #4f46e5; padding-bottom: 10px; }
  img { max-width: 100%%; }
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>`, title, body)
}
