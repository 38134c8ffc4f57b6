package counsellor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"studyabroad-workers/internal/common/config"
	commonhttp "studyabroad-workers/internal/common/http"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

var (
	ErrCounsellorTimeout = errors.New("COUNSELLOR_TIMEOUT")
	ErrCounsellorFailed  = errors.New("COUNSELLOR_FAILED")
	ErrUnknownAction     = errors.New("UNKNOWN_ACTION")
)

// FallbackText is shown to the user when the model cannot be reached.
const FallbackText = "I'm having trouble connecting right now. Please try again later."

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Responder answers one user message given the user's state.
type Responder interface {
	Respond(ctx context.Context, message string, state models.AppState, catalog []models.University) (*Reply, error)
}

// Generator is the subset of genai.Models used by GenAIResponder.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIResponder asks a Gemini model for a reply and maps its function calls
// to typed actions.
type GenAIResponder struct {
	gen         Generator
	model       string
	temperature float32
	maxTokens   int32
	maxRetries  int
	logger      Logger
}

// New returns the responder selected by cfg.Provider. The genai provider
// without an API key falls back to the mock responder.
func New(ctx context.Context, cfg config.CounsellorConfig, log Logger) (Responder, error) {
	if cfg.Provider == config.CounsellorProviderMock {
		return NewMockResponder(), nil
	}
	if cfg.APIKey == "" {
		log.Warn("no counsellor API key configured, using mock responder", nil)
		return NewMockResponder(), nil
	}

	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: commonhttp.NewClient(timeout),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrCounsellorFailed, err)
	}
	return NewGenAIResponder(client.Models, cfg, log), nil
}

func NewGenAIResponder(gen Generator, cfg config.CounsellorConfig, log Logger) *GenAIResponder {
	return &GenAIResponder{
		gen:         gen,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
		maxRetries:  cfg.MaxRetries,
		logger:      log,
	}
}

func (r *GenAIResponder) Respond(ctx context.Context, message string, state models.AppState, catalog []models.University) (*Reply, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(state, catalog), genai.RoleUser),
		Temperature:       genai.Ptr(r.temperature),
		MaxOutputTokens:   r.maxTokens,
		Tools:             Tools(),
	}
	contents := []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)}

	var resp *genai.GenerateContentResponse
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrCounsellorTimeout
			}
		}

		resp, lastErr = r.gen.GenerateContent(ctx, r.model, contents, cfg)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ErrCounsellorTimeout
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCounsellorFailed, lastErr)
	}

	actions, errs := ActionsFromCalls(resp.FunctionCalls())
	for _, err := range errs {
		r.logger.Warn("ignoring function call", map[string]interface{}{"error": err.Error()})
	}

	text := replyText(resp)
	if text == "" {
		text = describeActions(actions, catalog)
	}

	r.logger.Info("counsellor replied", map[string]interface{}{
		"model":       r.model,
		"actionCount": len(actions),
	})
	return &Reply{Text: text, Actions: actions}, nil
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			parts = append(parts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// describeActions is used when the model only returned function calls.
func describeActions(actions []Action, catalog []models.University) string {
	if len(actions) == 0 {
		return "I don't have a suggestion for that yet. Could you tell me a bit more?"
	}
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		switch a.Type {
		case ActionShortlist:
			lines = append(lines, fmt.Sprintf("I've shortlisted %s for you.", universityName(catalog, a.UniversityID)))
		case ActionLock:
			lines = append(lines, fmt.Sprintf("You've locked %s.", universityName(catalog, a.UniversityID)))
		case ActionAddTask:
			lines = append(lines, fmt.Sprintf("I've added \"%s\" to your tasks.", a.Task))
		}
	}
	return strings.Join(lines, "\n")
}

func universityName(catalog []models.University, id string) string {
	for _, u := range catalog {
		if u.ID == id {
			return u.Name
		}
	}
	return "university " + id
}

// MockResponder answers from the local analysis without calling a model.
type MockResponder struct{}

func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

func (m *MockResponder) Respond(_ context.Context, _ string, state models.AppState, catalog []models.University) (*Reply, error) {
	analysis := scoring.AnalyzeProfile(state.Profile)
	recs := scoring.Recommend(catalog, state.Profile)

	var b strings.Builder
	fmt.Fprintf(&b, "Your profile strength is %d/100.", analysis.OverallScore)
	if len(analysis.Gaps) > 0 {
		fmt.Fprintf(&b, " The main thing to work on: %s.", analysis.Gaps[0])
	}
	if top := firstOf(recs); top != nil {
		fmt.Fprintf(&b, " A good place to start is %s (%s): %s.",
			top.Name, top.Country, scoring.FitReason(*top, state.Profile))
	}
	return &Reply{Text: b.String(), Actions: []Action{}}, nil
}

func firstOf(b models.RecommendationBuckets) *models.University {
	for _, bucket := range [][]models.University{b.Target, b.Safe, b.Dream} {
		if len(bucket) > 0 {
			return &bucket[0]
		}
	}
	return nil
}
