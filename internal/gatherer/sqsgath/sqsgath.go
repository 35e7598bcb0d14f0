// Package sqsgath streams grading progress to an SQS queue.
package sqsgath

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"github.com/programme-lv/autograder/internal/gatherer/wire"
)

const (
	DefaultRegion = "eu-central-1"

	// ContentEncodingAttr is set on compressed messages; their body is base64.
	ContentEncodingAttr = "content-encoding"

	sendTimeout = 10 * time.Second
)

// Sender is the subset of *sqs.Client the gatherer uses.
type Sender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type Gatherer struct {
	*wire.Stream
	client   Sender
	queueUrl string
	fifo     bool
}

func New(client Sender, runUuid string, queueUrl string) *Gatherer {
	g := &Gatherer{
		client:   client,
		queueUrl: queueUrl,
		fifo:     strings.HasSuffix(queueUrl, ".fifo"),
	}
	g.Stream = wire.NewStream(runUuid, g.send)
	return g
}

// Connect loads the default AWS configuration for region and returns a
// gatherer publishing to queueUrl.
func Connect(ctx context.Context, region string, runUuid string, queueUrl string) (*Gatherer, error) {
	if region == "" {
		region = DefaultRegion
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return New(sqs.NewFromConfig(cfg), runUuid, queueUrl), nil
}

func (g *Gatherer) send(msg any) {
	input, err := g.buildInput(msg)
	if err != nil {
		slog.Error("failed to encode progress message", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if _, err := g.client.SendMessage(ctx, input); err != nil {
		slog.Error("failed to send message to SQS", "queue", g.queueUrl, "error", err)
	}
}

func (g *Gatherer) buildInput(msg any) (*sqs.SendMessageInput, error) {
	body, encoding, err := wire.Encode(msg)
	if err != nil {
		return nil, err
	}

	input := &sqs.SendMessageInput{
		QueueUrl: aws.String(g.queueUrl),
	}
	if encoding == wire.EncodingIdentity {
		input.MessageBody = aws.String(string(body))
	} else {
		input.MessageBody = aws.String(base64.StdEncoding.EncodeToString(body))
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			ContentEncodingAttr: {
				DataType:    aws.String("String"),
				StringValue: aws.String(encoding),
			},
		}
	}
	if g.fifo {
		// one group per run keeps its events ordered
		input.MessageGroupId = aws.String(g.RunUuid())
		input.MessageDeduplicationId = aws.String(uuid.NewString())
	}
	return input, nil
}

func (g *Gatherer) Close() error {
	return nil
}
