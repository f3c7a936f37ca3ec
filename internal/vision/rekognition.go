package vision

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const personLabel = "Person"

// HeadCounter counts the people visible in one image.
type HeadCounter interface {
	CountHeads(ctx context.Context, image []byte) (int, error)
}

type rekognitionHeadCounter struct {
	client        *rekognition.Client
	minConfidence float32
}

func NewRekognitionHeadCounter(client *rekognition.Client, minConfidence float32) HeadCounter {
	return &rekognitionHeadCounter{
		client:        client,
		minConfidence: minConfidence,
	}
}

// CountHeads runs label detection and counts the bounding-box instances of
// the Person label. A Person label without instance boxes still counts as
// one.
func (c *rekognitionHeadCounter) CountHeads(ctx context.Context, image []byte) (int, error) {
	if c.client == nil {
		return 0, fmt.Errorf("rekognition client is not configured")
	}

	result, err := c.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &types.Image{
			Bytes: image,
		},
		MinConfidence: aws.Float32(c.minConfidence),
	})
	if err != nil {
		return 0, fmt.Errorf("label detection failed: %w", err)
	}

	count := 0
	for _, label := range result.Labels {
		if label.Name == nil || *label.Name != personLabel {
			continue
		}
		if len(label.Instances) > 0 {
			count += len(label.Instances)
		} else {
			count++
		}
	}

	return count, nil
}
