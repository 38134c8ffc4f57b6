// internal/workers/counsellor/apply-counsellor-action/handler.go
package applycounselloraction

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
	"studyabroad-workers/internal/counsellor"
)

const (
	TaskType = "apply-counsellor-action"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type Handler struct {
	config   *Config
	executor *counsellor.Executor
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, states counsellor.StateStore, src catalog.Source, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		executor: counsellor.NewExecutor(states, src),
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
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrProfileValidationFailed)
	}

	outcome, err := h.executor.Apply(ctx, input.UserID, input.Action)
	if err != nil {
		return nil, err
	}

	output := &Output{Outcome: *outcome}
	if outcome.Changed {
		switch input.Action.Type {
		case counsellor.ActionLock:
			output.NotificationType = NotificationUniversityLocked
			output.UniversityID = input.Action.UniversityID
		case counsellor.ActionCreatePlan, counsellor.ActionCreateTasks:
			output.NotificationType = NotificationPlanCreated
		}
	}

	h.logger.Info("counsellor action applied", map[string]interface{}{
		"userId":  input.UserID,
		"action":  string(input.Action.Type),
		"changed": outcome.Changed,
	})
	return output, nil
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
