// Package ses delivers pipeline events by email through AWS SESv2.
package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"partflow/internal/domain"
	"partflow/internal/port"
)

type sesNotifier struct {
	client       *sesv2.Client
	fromAddress  string
	fromName     string
	toAddress    string
	dashboardURL string
}

// NewSESNotifier creates a Notifier that emails the review team via SES.
func NewSESNotifier(region, fromAddress, fromName, toAddress, dashboardURL string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:       sesv2.NewFromConfig(cfg),
		fromAddress:  fromAddress,
		fromName:     fromName,
		toAddress:    toAddress,
		dashboardURL: dashboardURL,
	}, nil
}

func (s *sesNotifier) FileDiscovered(ctx context.Context, f *domain.ImageFile) error {
	subject := fmt.Sprintf("New image file: %s", f.Filename)
	body := fmt.Sprintf(
		"A new image file was discovered.\n\nFile: %s\nPart number: %s\nMapping method: %s\nConfidence: %.0f%%\nNeeds review: %t\n\n%s",
		f.Filename, f.PartNumber, f.MappingMethod, f.MappingConfidence*100, f.RequiresReview, s.fileURL(f),
	)
	return s.send(ctx, subject, body)
}

func (s *sesNotifier) ReviewReady(ctx context.Context, f *domain.ImageFile) error {
	subject := fmt.Sprintf("Review needed: %s", f.Filename)
	body := fmt.Sprintf(
		"Background removal is complete and the result needs review.\n\nFile: %s\nPart number: %s\nConfidence: %.0f%%\n\n%s",
		f.Filename, f.PartNumber, f.MappingConfidence*100, s.fileURL(f),
	)
	return s.send(ctx, subject, body)
}

func (s *sesNotifier) ProcessingComplete(ctx context.Context, f *domain.ImageFile, renditions int) error {
	subject := fmt.Sprintf("Processing complete: %s", f.Filename)
	body := fmt.Sprintf(
		"Processing finished.\n\nFile: %s\nPart number: %s\nRenditions generated: %d\n\n%s",
		f.Filename, f.PartNumber, renditions, s.fileURL(f),
	)
	return s.send(ctx, subject, body)
}

func (s *sesNotifier) ProcessingFailed(ctx context.Context, f *domain.ImageFile, stage, message string) error {
	subject := fmt.Sprintf("Processing FAILED: %s", f.Filename)
	body := fmt.Sprintf(
		"Processing failed.\n\nFile: %s\nStage: %s\nError: %s\n\n%s",
		f.Filename, stage, message, s.fileURL(f),
	)
	return s.send(ctx, subject, body)
}

func (s *sesNotifier) send(ctx context.Context, subject, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func (s *sesNotifier) fileURL(f *domain.ImageFile) string {
	if s.dashboardURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/files/%s", s.dashboardURL, f.ID)
}
