// Package cloudwatch lists log streams in a log group and pages
// through their events, with the formatting helpers the commands
// share.
package cloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwl "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// API is the slice of the CloudWatch Logs surface the client needs.
// The real *cloudwatchlogs.Client satisfies it; tests substitute a
// mock.
type API interface {
	DescribeLogStreams(ctx context.Context, in *cwl.DescribeLogStreamsInput, opts ...func(*cwl.Options)) (*cwl.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, in *cwl.GetLogEventsInput, opts ...func(*cwl.Options)) (*cwl.GetLogEventsOutput, error)
}

// Client reads one log group.
type Client struct {
	api   API
	group string
}

func New(api API, logGroup string) *Client {
	return &Client{api: api, group: logGroup}
}

func (c *Client) Group() string {
	return c.group
}

// Stream summarizes one log stream.
type Stream struct {
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	FirstEvent time.Time `json:"first_event_at"`
	LastEvent  time.Time `json:"latest_event_at"`
}

// Duration is the span between the stream's first and last event.
func (s Stream) Duration() time.Duration {
	if s.FirstEvent.IsZero() || s.LastEvent.IsZero() {
		return 0
	}
	return s.LastEvent.Sub(s.FirstEvent)
}

// ListStreams returns streams ordered by last event time, newest
// first.  limit of 0 means all; a non-zero since drops streams created
// before it.
func (c *Client) ListStreams(ctx context.Context, limit int, since time.Time) ([]Stream, error) {
	pager := cwl.NewDescribeLogStreamsPaginator(c.api, &cwl.DescribeLogStreamsInput{
		LogGroupName: aws.String(c.group),
		OrderBy:      types.OrderByLastEventTime,
		Descending:   aws.Bool(true),
	})

	var out []Stream
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing log streams in %s: %w", c.group, err)
		}
		for _, s := range page.LogStreams {
			st := Stream{
				Name:       aws.ToString(s.LogStreamName),
				CreatedAt:  msToTime(s.CreationTime),
				FirstEvent: msToTime(s.FirstEventTimestamp),
				LastEvent:  msToTime(s.LastEventTimestamp),
			}
			if !since.IsZero() && st.CreatedAt.Before(since) {
				continue
			}
			out = append(out, st)
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func msToTime(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms)
}
