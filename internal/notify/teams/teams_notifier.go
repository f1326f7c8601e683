// Package teams posts pipeline events to a Microsoft Teams incoming webhook
// as MessageCard payloads.
package teams

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"partflow/internal/domain"
	"partflow/internal/port"
)

type card struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	ThemeColor string    `json:"themeColor"`
	Summary    string    `json:"summary"`
	Sections   []section `json:"sections"`
	Actions    []action  `json:"potentialAction,omitempty"`
}

type section struct {
	ActivityTitle    string `json:"activityTitle"`
	ActivitySubtitle string `json:"activitySubtitle"`
	Facts            []fact `json:"facts"`
}

type fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type action struct {
	Type    string   `json:"@type"`
	Name    string   `json:"name"`
	Targets []target `json:"targets"`
}

type target struct {
	OS  string `json:"os"`
	URI string `json:"uri"`
}

type teamsNotifier struct {
	http         *resty.Client
	webhookURL   string
	dashboardURL string
}

// NewTeamsNotifier creates a Notifier that posts to a Teams incoming webhook.
func NewTeamsNotifier(webhookURL, dashboardURL string) port.Notifier {
	c := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &teamsNotifier{
		http:         c,
		webhookURL:   webhookURL,
		dashboardURL: dashboardURL,
	}
}

func (n *teamsNotifier) FileDiscovered(ctx context.Context, f *domain.ImageFile) error {
	return n.post(ctx, card{
		ThemeColor: "0078D4",
		Summary:    "New image file discovered",
		Sections: []section{{
			ActivityTitle:    "New image file discovered",
			ActivitySubtitle: f.Filename,
			Facts: []fact{
				{Name: "Part Number", Value: orDash(f.PartNumber)},
				{Name: "Mapping Method", Value: string(f.MappingMethod)},
				{Name: "Confidence", Value: fmt.Sprintf("%.0f%%", f.MappingConfidence*100)},
				{Name: "Needs Review", Value: yesNo(f.RequiresReview)},
			},
		}},
		Actions: n.openAction(f),
	})
}

func (n *teamsNotifier) ReviewReady(ctx context.Context, f *domain.ImageFile) error {
	return n.post(ctx, card{
		ThemeColor: "FFC107",
		Summary:    "Image ready for review",
		Sections: []section{{
			ActivityTitle:    "Background removal complete, review needed",
			ActivitySubtitle: f.Filename,
			Facts: []fact{
				{Name: "Part Number", Value: orDash(f.PartNumber)},
				{Name: "Confidence", Value: fmt.Sprintf("%.0f%%", f.MappingConfidence*100)},
			},
		}},
		Actions: n.openAction(f),
	})
}

func (n *teamsNotifier) ProcessingComplete(ctx context.Context, f *domain.ImageFile, renditions int) error {
	return n.post(ctx, card{
		ThemeColor: "28A745",
		Summary:    "Image processing complete",
		Sections: []section{{
			ActivityTitle:    "Processing complete",
			ActivitySubtitle: f.Filename,
			Facts: []fact{
				{Name: "Part Number", Value: orDash(f.PartNumber)},
				{Name: "Renditions", Value: fmt.Sprintf("%d", renditions)},
			},
		}},
		Actions: n.openAction(f),
	})
}

func (n *teamsNotifier) ProcessingFailed(ctx context.Context, f *domain.ImageFile, stage, message string) error {
	return n.post(ctx, card{
		ThemeColor: "DC3545",
		Summary:    "Image processing failed",
		Sections: []section{{
			ActivityTitle:    "Processing failed",
			ActivitySubtitle: f.Filename,
			Facts: []fact{
				{Name: "Stage", Value: stage},
				{Name: "Error", Value: message},
			},
		}},
		Actions: n.openAction(f),
	})
}

func (n *teamsNotifier) post(ctx context.Context, c card) error {
	c.Type = "MessageCard"
	c.Context = "http://schema.org/extensions"

	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(c).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("posting Teams notification: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("Teams webhook returned %d", resp.StatusCode())
	}
	return nil
}

func (n *teamsNotifier) openAction(f *domain.ImageFile) []action {
	if n.dashboardURL == "" {
		return nil
	}
	return []action{{
		Type: "OpenUri",
		Name: "Open in Dashboard",
		Targets: []target{{
			OS:  "default",
			URI: fmt.Sprintf("%s/files/%s", n.dashboardURL, f.ID),
		}},
	}}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
