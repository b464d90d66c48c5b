// file: internals/features/timetable/gateway/gemini.go
package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini memanggil Google GenAI dengan response schema JSON. Client dibuat
// lazy pada panggilan pertama supaya server tetap bisa start tanpa API key.
type Gemini struct {
	apiKey string
	model  string
	cal    *calendar.Calendar
	log    *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(apiKey, modelName string, cal *calendar.Calendar, log *zap.Logger) *Gemini {
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{apiKey: strings.TrimSpace(apiKey), model: modelName, cal: cal, log: log}
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not configured", errs.ErrServiceUnavailable)
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create GenAI client: %v", errs.ErrServiceUnavailable, err)
	}
	g.client = c
	return c, nil
}

func (g *Gemini) Generate(ctx context.Context, subjects []model.Subject) (model.Grid, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildPrompt(subjects, g.cal)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(g.cal),
	})
	if err != nil {
		g.log.Warn("[GATEWAY][GEMINI] ❌ request failed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errs.ErrServiceUnavailable, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response from GenAI", errs.ErrServiceUnavailable)
	}
	g.log.Info("[GATEWAY][GEMINI] ✅ response received",
		zap.String("model", g.model), zap.Int("subjects", len(subjects)),
		zap.Int("bytes", len(text)), zap.Duration("elapsed", time.Since(start)))

	return DecodeGrid(text, g.cal)
}

// ResponseSchema: objek dengan satu array per hari, masing-masing tepat
// ClassPeriodCount entri.
func ResponseSchema(cal *calendar.Calendar) *genai.Schema {
	n := int64(cal.ClassPeriodCount())
	period := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"subject":    {Type: genai.TypeString, Description: "Name of the subject or activity."},
			"teacher":    {Type: genai.TypeString, Description: "Teacher or supervisor."},
			"department": {Type: genai.TypeString, Description: "Department of the class."},
			"semester":   {Type: genai.TypeString, Description: "Semester group the class is for."},
			"is_lab":     {Type: genai.TypeBoolean, Description: "True when the period belongs to a lab block."},
			"capacity":   {Type: genai.TypeInteger, Description: "Maximum student capacity."},
		},
		Required: []string{"subject", "teacher", "department", "semester", "is_lab"},
	}

	props := make(map[string]*genai.Schema, len(cal.Days()))
	for _, d := range cal.Days() {
		props[d] = &genai.Schema{
			Type:        genai.TypeArray,
			Items:       period,
			MinItems:    &n,
			MaxItems:    &n,
			Description: fmt.Sprintf("Schedule for %s. Exactly %d period objects.", d, n),
		}
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         cal.Days(),
		PropertyOrdering: cal.Days(),
	}
}
