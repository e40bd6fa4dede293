package cloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwl "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// maxPageSize is the GetLogEvents per-request cap.
const maxPageSize = 10000

// Event is a single log event.
type Event struct {
	Timestamp time.Time
	Message   string
}

// WalkOpts controls event pagination.
type WalkOpts struct {
	Limit    int  // max events returned (0 = all)
	PageSize int  // events per request (0 = service cap)
	FromHead bool // read from the start of the stream instead of the end
}

// Events pages through a stream's events.  The walk ends when the
// forward token stops advancing (CloudWatch's end-of-stream signal) or
// when the limit is reached.
func (c *Client) Events(ctx context.Context, stream string, opts WalkOpts) ([]Event, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if opts.Limit > 0 && opts.Limit < pageSize {
		pageSize = opts.Limit
	}

	in := &cwl.GetLogEventsInput{
		LogGroupName:  aws.String(c.group),
		LogStreamName: aws.String(stream),
		Limit:         aws.Int32(int32(pageSize)),
		StartFromHead: aws.Bool(opts.FromHead),
	}

	var out []Event
	var token *string
	for {
		in.NextToken = token
		resp, err := c.api.GetLogEvents(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("reading events from %s/%s: %w", c.group, stream, err)
		}

		for _, e := range resp.Events {
			out = append(out, Event{
				Timestamp: msToTime(e.Timestamp),
				Message:   aws.ToString(e.Message),
			})
		}

		if aws.ToString(resp.NextForwardToken) == aws.ToString(token) {
			break
		}
		if opts.Limit > 0 && len(out) >= opts.Limit {
			out = out[:opts.Limit]
			break
		}
		token = resp.NextForwardToken
	}

	return out, nil
}
