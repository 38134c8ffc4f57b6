// internal/workers/counsellor/counsellor-chat/handler.go
package counsellorchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"studyabroad-workers/internal/catalog"
	commonerrors "studyabroad-workers/internal/common/errors"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/counsellor"
)

const (
	TaskType = "counsellor-chat"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type Handler struct {
	config    *Config
	store     counsellor.StateStore
	catalog   catalog.Source
	responder counsellor.Responder
	executor  *counsellor.Executor
	logger    logger.Logger
	errors    *commonerrors.ErrorHandler
}

func NewHandler(config *Config, store counsellor.StateStore, src catalog.Source, responder counsellor.Responder, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
		catalog:   src,
		responder: responder,
		executor:  counsellor.NewExecutor(store, src),
		logger:    l,
		errors:    commonerrors.NewErrorHandler(l),
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

	state, err := h.store.LoadState(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	unis, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	output := &Output{Outcomes: []counsellor.Outcome{}}

	// An empty message opens the conversation.
	if strings.TrimSpace(input.Message) == "" {
		output.Reply = counsellor.BuildGreeting(*state, unis)
		return output, nil
	}

	reply, err := h.responder.Respond(ctx, input.Message, *state, unis)
	if err != nil {
		h.logger.Warn("counsellor unavailable, replying with fallback", map[string]interface{}{
			"userId": input.UserID,
			"error":  err.Error(),
			"code":   string(commonerrors.FromError(err).Code),
		})
		output.Reply = counsellor.Reply{Text: counsellor.FallbackText, Actions: []counsellor.Action{}}
		output.Fallback = true
		return output, nil
	}
	output.Reply = *reply

	if h.config.ApplyActions {
		for _, action := range reply.Actions {
			outcome, err := h.executor.Apply(ctx, input.UserID, action)
			if err != nil {
				h.logger.Warn("counsellor action rejected", map[string]interface{}{
					"userId": input.UserID,
					"action": string(action.Type),
					"error":  err.Error(),
				})
				output.ActionErrors = append(output.ActionErrors, err.Error())
				continue
			}
			output.Outcomes = append(output.Outcomes, *outcome)
		}
	}

	h.logger.Info("counsellor replied", map[string]interface{}{
		"userId":   input.UserID,
		"actions":  len(reply.Actions),
		"applied":  len(output.Outcomes),
		"rejected": len(output.ActionErrors),
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
