// internal/workers/profile/analyze-profile/handler.go
package analyzeprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "studyabroad-workers/internal/common/errors"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/common/metrics"
	"studyabroad-workers/internal/common/validation"
	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

const (
	TaskType = "analyze-profile"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

// ProfileLoader reads stored profiles.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Handler struct {
	config   *Config
	profiles ProfileLoader
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, profiles ProfileLoader, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		logger:   l,
		errors:   commonerrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, fmt.Errorf("%w: parse input: %v", ErrProfileValidationFailed, err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	analysis := scoring.AnalyzeProfile(*profile)
	metrics.ProfileOverallScore.Observe(float64(analysis.OverallScore))

	h.logger.Info("profile analyzed", map[string]interface{}{
		"userId":       input.UserID,
		"overallScore": analysis.OverallScore,
		"gaps":         len(analysis.Gaps),
	})

	return &Output{
		Analysis:        analysis,
		OverallScore:    analysis.OverallScore,
		ProfileStrength: scoring.ProfileStrength(*profile),
		HasGaps:         len(analysis.Gaps) > 0,
		GapReport:       counsellor.GapReport(analysis),
	}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.UserProfile, error) {
	raw := bytes.TrimSpace(input.Profile)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		result, err := validation.ValidateJSON(validation.ProfileSchema, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileValidationFailed, err)
		}
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrProfileValidationFailed, validation.FormatErrors(result.Errors))
		}
		var profile models.UserProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileValidationFailed, err)
		}
		return &profile, nil
	}

	if input.UserID == "" {
		return nil, fmt.Errorf("%w: profile or userId is required", ErrProfileValidationFailed)
	}
	if h.profiles == nil {
		return nil, fmt.Errorf("%w: no profile store configured", ErrProfileValidationFailed)
	}
	return h.profiles.LoadProfile(ctx, input.UserID)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
