// Package notion exports engagement findings to a Notion database,
// one page per assessed process.
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lighthouise/engine/internal/model"
)

// Client defines the Notion operations the exporter uses.
type Client interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// notionClient implements Client by wrapping a *notionapi.Client with
// Notion's 3 req/s rate limit.
type notionClient struct {
	inner   *notionapi.Client
	limiter *rate.Limiter
}

// NewClient creates a Notion client with the given integration token.
func NewClient(token string) Client {
	return &notionClient{
		inner:   notionapi.NewClient(notionapi.Token(token)),
		limiter: rate.NewLimiter(3, 1),
	}
}

func (c *notionClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "notion: rate limit")
	}
	page, err := c.inner.Page.Create(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "notion: create page")
	}
	return page, nil
}

// Exporter writes findings rows into a Notion findings database.
type Exporter struct {
	client Client
	dbID   string
}

// NewExporter creates an Exporter targeting the given database.
func NewExporter(client Client, dbID string) *Exporter {
	return &Exporter{client: client, dbID: dbID}
}

// ExportFindings creates one database page per assessed process and
// returns the number of pages created.
func (e *Exporter) ExportFindings(ctx context.Context, f *model.EngagementFindings) (int, error) {
	if e.dbID == "" {
		return 0, eris.New("notion: findings database id is required")
	}

	created := 0
	for _, pf := range f.FindingsByProcess {
		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(e.dbID),
			},
			Properties: notionapi.Properties{
				"Name": notionapi.TitleProperty{
					Title: []notionapi.RichText{
						{Text: &notionapi.Text{Content: fmt.Sprintf("%s - %s", f.Context.CompanyName, pf.ProcessName)}},
					},
				},
				"Company":        richText(f.Context.CompanyName),
				"Process":        richText(pf.ProcessName),
				"Savings Low":    numberProp(pf.TotalSavings.Low),
				"Savings Mid":    numberProp(pf.TotalSavings.Mid),
				"Savings High":   numberProp(pf.TotalSavings.High),
				"Steps Assessed": numberProp(float64(pf.AssessedStepCount)),
			},
		}
		if _, err := e.client.CreatePage(ctx, req); err != nil {
			return created, eris.Wrapf(err, "notion: export process %q", pf.ProcessName)
		}
		created++
	}

	zap.L().Info("notion: findings exported",
		zap.String("company", f.Context.CompanyName),
		zap.Int("pages", created),
	)
	return created, nil
}

func richText(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{
			{Text: &notionapi.Text{Content: s}},
		},
	}
}

func numberProp(v float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: v}
}
