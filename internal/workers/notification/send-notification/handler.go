// internal/workers/notification/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"studyabroad-workers/internal/catalog"
	commonerrors "studyabroad-workers/internal/common/errors"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/store"
)

const (
	TaskType = "send-notification"
)

var (
	ErrNotificationSendFailed  = errors.New("NOTIFICATION_SEND_FAILED")
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// ContactLoader resolves a user's email address and phone number.
type ContactLoader interface {
	Contact(ctx context.Context, userID string) (email, phone string, err error)
}

type Handler struct {
	config   *Config
	contacts ContactLoader
	catalog  catalog.Source
	ses      SESService
	sns      SNSService
	logger   logger.Logger
	errors   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, contacts ContactLoader, src catalog.Source, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		contacts: contacts,
		catalog:  src,
		ses:      sesClient,
		sns:      snsClient,
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
	tmpl, ok := templates[input.NotificationType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrProfileValidationFailed, input.NotificationType)
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return output, nil
	}

	email, phone, err := h.contacts.Contact(ctx, input.UserID)
	if errors.Is(err, store.ErrProfileNotFound) {
		h.logger.Warn("recipient not found", map[string]interface{}{"userId": input.UserID})
		output.Status = StatusSkipped
		return output, nil
	}
	if err != nil {
		return nil, err
	}

	data := h.templateData(ctx, input)
	subject := renderTemplate(tmpl.Subject, data)
	body := renderTemplate(tmpl.Body, data)

	if h.config.EmailEnabled && email != "" {
		if err := h.sendEmail(ctx, email, subject, body); err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
		output.Channels = append(output.Channels, ChannelEmail)
	}

	// SMS only goes out for high priority notifications.
	if h.config.SMSEnabled && phone != "" && input.Priority == "high" {
		err := h.sendSMS(ctx, phone, renderTemplate(tmpl.SMS, data))
		switch {
		case err == nil:
			output.Channels = append(output.Channels, ChannelSMS)
		case len(output.Channels) == 0:
			return nil, fmt.Errorf("%w: sms: %v", ErrNotificationSendFailed, err)
		default:
			// The email already went out; a retry would send it twice.
			h.logger.Warn("sms failed after email was sent", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
			output.FailedChannels = append(output.FailedChannels, ChannelSMS)
		}
	}

	switch {
	case len(output.FailedChannels) > 0:
		output.Status = StatusPartial
	case len(output.Channels) > 0:
		output.Status = StatusSent
	default:
		output.Status = StatusSkipped
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"userId":           input.UserID,
		"notificationType": input.NotificationType,
		"status":           output.Status,
		"channels":         output.Channels,
	})
	return output, nil
}

func (h *Handler) templateData(ctx context.Context, input *Input) map[string]interface{} {
	data := map[string]interface{}{
		"userId":           input.UserID,
		"notificationType": input.NotificationType,
		"universityId":     input.UniversityID,
		"universityName":   input.UniversityID,
	}
	if input.UniversityID != "" {
		u, err := catalog.Get(ctx, h.catalog, input.UniversityID)
		if err != nil {
			h.logger.Warn("university lookup failed", map[string]interface{}{
				"universityId": input.UniversityID,
				"error":        err.Error(),
			})
		} else {
			data["universityName"] = u.Name
			data["country"] = u.Country
		}
	}
	for k, v := range input.Metadata {
		data[k] = v
	}
	return data
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	in := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SenderID != "" {
		in.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SenderID)},
		}
	}
	_, err := h.sns.Publish(ctx, in)
	return err
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
