package saveresults

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"outreach-campaigns/internal/models"
)

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes a campaign summary to a topic.
type SNSNotifier struct {
	client   SNSService
	topicARN string
}

func NewSNSNotifier(client SNSService, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

type campaignSummary struct {
	Timestamp string `json:"timestamp"`
	Total     int    `json:"total"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
}

func (n *SNSNotifier) Notify(ctx context.Context, report models.CampaignReport) error {
	sent, failed := report.Counts()
	body, err := json.Marshal(campaignSummary{
		Timestamp: report.Timestamp,
		Total:     len(report.Results),
		Sent:      sent,
		Failed:    failed,
	})
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("Campaign completed"),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"failed": {
				DataType:    aws.String("Number"),
				StringValue: aws.String(fmt.Sprintf("%d", failed)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish campaign summary: %w", err)
	}
	return nil
}
