package paramstore

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/kingalban/aws-butler/paramsync"
)

// API is the slice of the SSM surface the client needs.  The real
// *ssm.Client satisfies it; tests substitute a mock.
type API interface {
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, opts ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
	PutParameter(ctx context.Context, in *ssm.PutParameterInput, opts ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DescribeParameters(ctx context.Context, in *ssm.DescribeParametersInput, opts ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

// Client wraps SSM Parameter Store with the semantics the sync engine
// expects.  Fetches are read-only; Put is the only mutation.
type Client struct {
	api     API
	decrypt bool
}

// New builds a Client.  decrypt controls whether SecureString values
// come back decrypted on fetch.
func New(api API, decrypt bool) *Client {
	return &Client{api: api, decrypt: decrypt}
}

// FetchUnderPrefix retrieves every parameter under prefix as a
// point-in-time snapshot, sorted by name.  A prefix with no parameters
// is an empty set, not an error.
func (c *Client) FetchUnderPrefix(ctx context.Context, prefix string) (*paramsync.ParameterSet, error) {
	pager := ssm.NewGetParametersByPathPaginator(c.api, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(c.decrypt),
	})

	var params []types.Parameter
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, NewRemoteUnavailableError(prefix, err)
		}
		params = append(params, page.Parameters...)
	}

	sort.Slice(params, func(i, j int) bool {
		return aws.ToString(params[i].Name) < aws.ToString(params[j].Name)
	})

	ps := paramsync.NewParameterSet()
	for _, p := range params {
		ps.Set(aws.ToString(p.Name), aws.ToString(p.Value))
	}
	return ps, nil
}

// Put upserts a single parameter.  Overwrite is always on, which makes
// every put idempotent and safe to retry on a later run.  New
// parameters are created as String type.
func (c *Client) Put(ctx context.Context, key, value string) error {
	_, err := c.api.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(key),
		Value:     aws.String(value),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return NewWriteError(key, err)
	}
	return nil
}

// ParameterInfo is the metadata row behind `parameters ls`.
type ParameterInfo struct {
	Name         string
	Type         string
	Description  string
	LastModified time.Time
}

// List returns parameter metadata, optionally filtered to a path
// prefix, capped at limit when limit > 0.
func (c *Client) List(ctx context.Context, path string, limit int) ([]ParameterInfo, error) {
	in := &ssm.DescribeParametersInput{}
	if path != "" {
		in.ParameterFilters = []types.ParameterStringFilter{{
			Key:    aws.String("Path"),
			Option: aws.String("Recursive"),
			Values: []string{path},
		}}
	}

	pager := ssm.NewDescribeParametersPaginator(c.api, in)

	var out []ParameterInfo
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, NewRemoteUnavailableError(path, err)
		}
		for _, p := range page.Parameters {
			out = append(out, ParameterInfo{
				Name:         aws.ToString(p.Name),
				Type:         string(p.Type),
				Description:  aws.ToString(p.Description),
				LastModified: aws.ToTime(p.LastModifiedDate),
			})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}
