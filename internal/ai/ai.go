package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator produces text for a prompt and reports the tokens it used.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, int, error)
}

// GeminiGenerator calls a Gemini model.
type GeminiGenerator struct {
	Client    *genai.Client
	ModelName string
}

// NewGeminiGenerator initializes the Gemini client.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash" // Fallback default
	}
	return &GeminiGenerator{Client: client, ModelName: modelName}, nil
}

func (g *GeminiGenerator) Close() error { return g.Client.Close() }

func (g *GeminiGenerator) Generate(ctx context.Context, system, prompt string) (string, int, error) {
	// 1. Configure the model
	model := g.Client.GenerativeModel(g.ModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	// 2. Ask
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", 0, fmt.Errorf("error generating content: %w", err)
	}
	tokens := 0
	if res.UsageMetadata != nil {
		tokens = int(res.UsageMetadata.TotalTokenCount)
	}

	// 3. Collect the text parts
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", tokens, fmt.Errorf("no candidates returned")
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), tokens, nil
}

// Catalog is the read access the copywriter needs.
type Catalog interface {
	GetBale(ctx context.Context, id string) (*models.Bale, error)
	GetStockItem(ctx context.Context, id string) (*models.StockItem, error)
}

// Copywriter writes storefront descriptions for bales.
type Copywriter struct {
	generator TextGenerator
	catalog   Catalog
}

// NewCopywriter accepts a nil generator; calls then fail as unconfigured.
func NewCopywriter(generator TextGenerator, catalog Catalog) *Copywriter {
	return &Copywriter{generator: generator, catalog: catalog}
}

// Description is generated marketing copy.
type Description struct {
	BaleID     string `json:"bale_id"`
	Text       string `json:"description"`
	TokensUsed int    `json:"tokens_used"`
}

const copySystemPrompt = `You write product copy for a South African online store that sells
second-hand clothing in bales. Write 2 short paragraphs in plain text, no headings,
no markdown, no prices. Mention the kinds of garments and roughly how many.`

// GenerateBaleDescription loads a bale and each of its stock items in turn,
// then asks the model for a description.
func (w *Copywriter) GenerateBaleDescription(ctx context.Context, baleID string) (*Description, error) {
	if w.generator == nil {
		return nil, apperr.Configuration("GEMINI_API_KEY is not set")
	}

	// 1. Load the bale
	bale, err := w.catalog.GetBale(ctx, baleID)
	if err != nil {
		return nil, err
	}
	if len(bale.Items) == 0 {
		return nil, apperr.Validation("Bale has no items to describe")
	}

	// 2. Load each stock item, one at a time
	var lines []string
	for _, it := range bale.Items {
		stock, err := w.catalog.GetStockItem(ctx, it.StockItemID)
		if err != nil {
			log.Printf("WARNING: stock item %s for bale %s: %v", it.StockItemID, baleID, err)
			continue
		}
		line := fmt.Sprintf("- %d x %s", it.Quantity, stock.Name)
		if stock.Description != "" {
			line += ": " + stock.Description
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, apperr.Validation("Bale has no items to describe")
	}

	// 3. Generate
	prompt := fmt.Sprintf("Bale name: %s\nContents:\n%s", bale.Name, strings.Join(lines, "\n"))
	text, tokens, err := w.generator.Generate(ctx, copySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating description for bale %s: %w", baleID, err)
	}
	return &Description{BaleID: baleID, Text: text, TokensUsed: tokens}, nil
}
