// Package llm generates narrative commentary for findings views. The
// output is an opaque annotation: the findings core never feeds it
// back into any computation, and a missing or failed commentary leaves
// findings fully usable.
package llm

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lighthouise/engine/internal/model"
)

// Commentator produces narrative commentary for a process findings
// block.
type Commentator interface {
	ProcessCommentary(ctx context.Context, company model.CompanyContext, pf *model.ProcessFindings) (string, error)
}

// Options configures the SDK-backed commentator.
type Options struct {
	APIKey         string
	Model          string
	MaxTokens      int
	RequestsPerMin float64
}

// Client implements Commentator on the official Anthropic SDK with
// request-rate throttling.
type Client struct {
	client    sdk.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// New creates an SDK-backed commentator.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, eris.New("llm: api key is required")
	}
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5-20250929"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	if opts.RequestsPerMin <= 0 {
		opts.RequestsPerMin = 30
	}
	return &Client{
		client:    sdk.NewClient(option.WithAPIKey(opts.APIKey)),
		model:     opts.Model,
		maxTokens: int64(opts.MaxTokens),
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerMin/60), 1),
	}, nil
}

const systemPrompt = "You are a finance-transformation consultant writing concise, factual " +
	"commentary for a client findings report. Two short paragraphs, no headings, no bullet " +
	"lists. Ground every claim in the figures provided."

// ProcessCommentary generates commentary for one process findings
// block. Callers treat the result as optional.
func (c *Client) ProcessCommentary(ctx context.Context, company model.CompanyContext, pf *model.ProcessFindings) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "llm: rate limit wait")
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(buildPrompt(company, pf))),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: create message")
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}

	zap.L().Debug("llm: commentary generated",
		zap.String("company", company.CompanyName),
		zap.String("process", pf.ProcessName),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return out.String(), nil
}

// buildPrompt summarizes the findings block for the model. Only
// already-computed figures go in; the model never influences them.
func buildPrompt(company model.CompanyContext, pf *model.ProcessFindings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s, %s)\n", company.CompanyName, company.Industry, company.CompanySize)
	fmt.Fprintf(&b, "Process: %s, team of %g, %d of %d steps assessed\n",
		pf.ProcessName, pf.TeamSize, pf.AssessedStepCount, pf.TotalStepCount)
	fmt.Fprintf(&b, "Estimated annual savings: $%.0f to $%.0f (mid $%.0f)\n",
		pf.TotalSavings.Low, pf.TotalSavings.High, pf.TotalSavings.Mid)
	for _, est := range pf.StepEstimates {
		tool := "none identified"
		if est.TopTool != nil {
			tool = fmt.Sprintf("%s (fit %d)", est.TopTool.Name, est.TopTool.FitScore)
		}
		fmt.Fprintf(&b, "- %s: %s today, mid estimate $%.0f, top tool %s\n",
			est.StepTitle, est.Maturity, est.Savings.Mid, tool)
	}
	return b.String()
}
