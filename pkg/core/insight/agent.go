// Package insight asks a hosted model to explain problem rows: products no
// price keyword matched, and rows that settled at or below cost. The
// verdicts are suggestions shown next to the warning banners; the report
// itself never depends on this service answering.
package insight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"toko_insight/pkg/core/report"
	"toko_insight/pkg/core/utils"
)

// RowVerdict is the model's take on one problem row.
type RowVerdict struct {
	OrderID string `json:"order_id"`
	// Kind is "unmatched" or "loss".
	Kind        string `json:"kind"`
	Explanation string `json:"explanation"`
	// SuggestedKeyword, for unmatched rows, is a keyword the seller could
	// add to the price list so this product matches next time.
	SuggestedKeyword string `json:"suggested_keyword,omitempty"`
}

const systemPrompt = `Kamu adalah analis keuangan untuk seller marketplace Indonesia.
Kamu menerima daftar baris order yang bermasalah:
- "unmatched": harga modal produk tidak ditemukan di daftar harga
- "loss": profit baris <= 0
Untuk setiap baris, jelaskan singkat kemungkinan penyebabnya. Untuk baris
unmatched, usulkan satu keyword untuk ditambahkan ke daftar harga.
Jawab HANYA dengan array JSON berisi objek:
{"order_id": string, "kind": string, "explanation": string, "suggested_keyword": string}`

// Agent talks to Gemini through the generative-ai-go SDK.
type Agent struct {
	client    *genai.Client
	modelName string
}

// NewAgent builds an insight agent from GEMINI_API_KEY.
func NewAgent(ctx context.Context) (*Agent, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Agent{client: client, modelName: "gemini-2.0-flash"}, nil
}

// Close releases the underlying client.
func (a *Agent) Close() error {
	return a.client.Close()
}

// ExplainProblems sends the problem rows to the model and parses its
// verdicts. Rows beyond limit are dropped from the prompt to bound token
// usage; an empty problem list short-circuits without a model call.
func (a *Agent) ExplainProblems(ctx context.Context, rows []report.AnnotatedRow, limit int) ([]RowVerdict, error) {
	prompt := BuildProblemPrompt(rows, limit)
	if prompt == "" {
		return nil, nil
	}

	model := a.client.GenerativeModel(a.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("insight generation failed: %w", err)
	}

	var raw strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				raw.WriteString(string(text))
			}
		}
	}
	return ParseVerdicts(raw.String())
}

// BuildProblemPrompt lists the unmatched and loss rows, at most limit of
// them, in the line format the system prompt describes. Returns "" when
// nothing is wrong.
func BuildProblemPrompt(rows []report.AnnotatedRow, limit int) string {
	var b strings.Builder
	count := 0
	for _, r := range rows {
		kind := ""
		switch {
		case !r.Match.Matched:
			kind = "unmatched"
		case r.Anomaly():
			kind = "loss"
		default:
			continue
		}
		if limit > 0 && count >= limit {
			break
		}
		count++
		fmt.Fprintf(&b, "- order_id=%s kind=%s produk=%q variasi=%q qty=%d omset=%s modal=%s profit=%s\n",
			r.OrderID, kind, r.ProductName, r.Variation, r.Quantity,
			r.NetRevenue.StringFixed(0), r.Match.TotalCost.StringFixed(0), r.Profit.StringFixed(0))
	}
	if count == 0 {
		return ""
	}
	return "Baris bermasalah:\n" + b.String()
}

// ParseVerdicts reads the model's JSON array, tolerating the usual fencing
// and punctuation defects.
func ParseVerdicts(raw string) ([]RowVerdict, error) {
	var verdicts []RowVerdict
	if _, err := utils.SmartParse(raw, &verdicts); err != nil {
		return nil, fmt.Errorf("unreadable insight response: %w", err)
	}
	return verdicts, nil
}
