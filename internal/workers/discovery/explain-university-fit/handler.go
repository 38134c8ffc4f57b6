// internal/workers/discovery/explain-university-fit/handler.go
package explainuniversityfit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"studyabroad-workers/internal/catalog"
	commonerrors "studyabroad-workers/internal/common/errors"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
)

const (
	TaskType = "explain-university-fit"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type ProfileLoader interface {
	LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Handler struct {
	config   *Config
	catalog  catalog.Source
	profiles ProfileLoader
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, src catalog.Source, profiles ProfileLoader, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  src,
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
	profile := input.Profile
	if profile == nil {
		if input.UserID == "" || h.profiles == nil {
			return nil, fmt.Errorf("%w: profile or userId is required", ErrProfileValidationFailed)
		}
		var err error
		if profile, err = h.profiles.LoadProfile(ctx, input.UserID); err != nil {
			return nil, err
		}
	}

	u, err := catalog.Get(ctx, h.catalog, input.UniversityID)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(u, *profile)
	affordable := scoring.TuitionFloor(u.TuitionFee) <= scoring.BudgetCeiling(profile.BudgetRange)

	h.logger.Info("fit explained", map[string]interface{}{
		"universityId": u.ID,
		"fitScore":     ranked.FitScore,
		"category":     ranked.ProfileCategory,
	})

	return &Output{
		University:      ranked,
		FitReason:       ranked.FitReason,
		FitScore:        ranked.FitScore,
		ProfileCategory: ranked.ProfileCategory,
		Affordable:      affordable,
	}, nil
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
