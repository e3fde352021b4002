package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"warehouse-manager/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

var (
	// ErrNotConfigured means no API key was provided at startup.
	ErrNotConfigured = errors.New("ai advisor is not configured")
	// ErrRateLimited means the upstream model rejected the call with 429.
	ErrRateLimited = errors.New("ai advisor is rate limited")
)

// AdviceChartSeries is one line or bar group in a suggested chart.
type AdviceChartSeries struct {
	Name   string    `json:"name" jsonschema_description:"Series name shown in the chart legend"`
	Values []float64 `json:"values" jsonschema_description:"One value per label"`
}

type AdviceChartData struct {
	Labels []string            `json:"labels" jsonschema_description:"X axis labels"`
	Series []AdviceChartSeries `json:"series" jsonschema_description:"Data series plotted over the labels"`
}

// AdviceChart is a chart the model suggests rendering from the analytics.
type AdviceChart struct {
	Type  string          `json:"type" jsonschema:"enum=bar,enum=line" jsonschema_description:"Chart type"`
	Title string          `json:"title" jsonschema_description:"Chart title"`
	Data  AdviceChartData `json:"data"`
}

// AdviceTable is a small tabular breakdown included in the advice.
type AdviceTable struct {
	Title   string     `json:"title" jsonschema_description:"Table title"`
	Headers []string   `json:"headers" jsonschema_description:"Column headers"`
	Rows    [][]string `json:"rows" jsonschema_description:"Table rows, one cell per header"`
}

// Advice is the structured output of the advisor.
type Advice struct {
	Summary          string        `json:"summary" jsonschema_description:"Two or three sentence assessment of the warehouse state"`
	Recommendations  []string      `json:"recommendations" jsonschema_description:"Concrete actions, most important first"`
	Tables           []AdviceTable `json:"tables" jsonschema_description:"Supporting tables"`
	ChartSuggestions []AdviceChart `json:"chartSuggestions" jsonschema_description:"Charts worth rendering from the analytics"`
}

// AdviceWarehouse is the warehouse identity shared with the model.
type AdviceWarehouse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AdviceContext is everything the advisor sees: no raw ledger rows, only the
// warehouse identity plus the aggregated analytics.
type AdviceContext struct {
	Warehouse       AdviceWarehouse       `json:"warehouse"`
	CurrentDate     string                `json:"currentDate"`
	Season          int                   `json:"season"`
	Summary         core.AnalyticsSummary `json:"summary"`
	FlowTimeSeries  []core.PeriodBucket   `json:"flowTimeSeries"`
	InventoryByType []core.InventoryItem  `json:"inventoryByType"`
	FlowByType      []core.TypeFlow       `json:"flowByType"`
}

type AdvisorService interface {
	Advise(ctx context.Context, adviceCtx AdviceContext) (*Advice, error)
}

type Advisor struct {
	client     *openai.Client
	configured bool
}

// NewAdvisor builds an advisor. An empty API key yields a stub that returns
// ErrNotConfigured from every call, so the rest of the app can wire it
// unconditionally.
func NewAdvisor(apiKey string) *Advisor {
	if apiKey == "" {
		return &Advisor{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Advisor{client: &client, configured: true}
}

func (a *Advisor) Advise(ctx context.Context, adviceCtx AdviceContext) (*Advice, error) {
	if !a.configured {
		return nil, ErrNotConfigured
	}

	ctxJSON, err := json.MarshalIndent(adviceCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal advice context: %w", err)
	}

	prompt := fmt.Sprintf(`You are a warehouse operations analyst.
Given the warehouse analytics below, produce practical advice for the operator.
Rules:
1. Base every statement on the numbers provided; do not invent data.
2. Keep the summary to two or three sentences.
3. Recommendations must be concrete actions, most important first.
4. Suggest charts only when the time series or per-type flows support them.

Warehouse analytics:
%s`, ctxJSON)

	schemaJSON, err := json.Marshal(generateSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "warehouse_advice",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Operational advice derived from warehouse analytics"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) && apierr.StatusCode == 429 {
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	return ParseAdviceResponse(resp.OutputText()), nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v Advice
	return reflector.Reflect(v)
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseAdviceResponse turns raw model output into Advice without ever
// failing. Structured output makes valid JSON the common case, but the parse
// tolerates fenced code blocks and falls back to treating the whole text as
// the summary when no JSON can be extracted.
func ParseAdviceResponse(raw string) *Advice {
	text := strings.TrimSpace(raw)

	candidate := text
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	var advice Advice
	if err := json.Unmarshal([]byte(candidate), &advice); err == nil && advice.Summary != "" {
		normalizeAdvice(&advice)
		return &advice
	}

	summary := text
	if summary == "" {
		summary = "No response from AI."
	}
	advice = Advice{Summary: summary}
	normalizeAdvice(&advice)
	return &advice
}

func normalizeAdvice(a *Advice) {
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	if a.Tables == nil {
		a.Tables = []AdviceTable{}
	}
	if a.ChartSuggestions == nil {
		a.ChartSuggestions = []AdviceChart{}
	}
}
