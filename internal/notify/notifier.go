// internal/notify/notifier.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"worklink-matching/internal/common/config"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/models"
)

// Service fires post-assignment notifications: an SNS event per task
// for the downstream chat/notification pipeline, plus an optional SES
// summary email to operations. Delivery is best-effort; assignment
// persistence never depends on it.
type Service struct {
	cfg    config.NotificationConfig
	sns    *sns.Client
	ses    *ses.Client
	logger logger.Logger
}

// New builds the notifier. Channels that are disabled in config leave
// their client nil and are skipped at send time.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Service, error) {
	svc := &Service{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notifier"}),
	}

	if !cfg.AWS.SNS.Enabled && !cfg.AWS.SES.Enabled {
		return svc, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if cfg.AWS.SNS.Enabled {
		svc.sns = sns.NewFromConfig(awsCfg)
	}
	if cfg.AWS.SES.Enabled {
		svc.ses = ses.NewFromConfig(awsCfg)
	}
	return svc, nil
}

// assignmentEvent is the SNS message body consumed downstream.
type assignmentEvent struct {
	Type      string  `json:"type"`
	JobID     string  `json:"jobId"`
	JobTitle  string  `json:"jobTitle"`
	WorkerID  string  `json:"workerId"`
	TaskID    string  `json:"taskId"`
	Role      string  `json:"role"`
	Payout    float64 `json:"payout"`
	Timestamp string  `json:"timestamp"`
}

// AssignmentsCreated publishes one event per created task and, when
// enabled, a summary email. Failures are logged and swallowed.
func (s *Service) AssignmentsCreated(ctx context.Context, job *models.Job, tasks []models.Task) {
	for _, t := range tasks {
		s.publishAssignment(ctx, job, t)
	}
	s.sendSummaryEmail(ctx, job, tasks)
}

func (s *Service) publishAssignment(ctx context.Context, job *models.Job, task models.Task) {
	if s.sns == nil {
		return
	}

	event := assignmentEvent{
		Type:      "worker.assigned",
		JobID:     job.ID,
		JobTitle:  job.Title,
		WorkerID:  task.WorkerID,
		TaskID:    task.ID,
		Role:      task.Role,
		Payout:    task.Payout,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, _ := json.Marshal(event)

	_, err := s.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.cfg.AWS.SNS.TopicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		s.logger.Error("assignment event publish failed", map[string]interface{}{
			"jobId":    job.ID,
			"workerId": task.WorkerID,
			"error":    err,
		})
	}
}

func (s *Service) sendSummaryEmail(ctx context.Context, job *models.Job, tasks []models.Task) {
	if s.ses == nil || s.cfg.AWS.SES.OpsEmail == "" {
		return
	}

	subject := fmt.Sprintf("Team assigned: %s (%d workers)", job.Title, len(tasks))
	body := fmt.Sprintf("Job %s (%s) was staffed with %d workers.\n\n", job.ID, job.Title, len(tasks))
	for _, t := range tasks {
		body += fmt.Sprintf("- %s: worker %s (payout %.2f)\n", t.Role, t.WorkerID, t.Payout)
	}

	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.cfg.AWS.SES.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.cfg.AWS.SES.OpsEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		s.logger.Error("assignment summary email failed", map[string]interface{}{
			"jobId": job.ID,
			"error": err,
		})
	}
}
