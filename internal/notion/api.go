package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	perrors "github.com/tessro/play-notion/internal/errors"
	"github.com/tidwall/gjson"
)

// FetchTagOptions returns the options currently defined on the tags property.
func (c *Client) FetchTagOptions(ctx context.Context) ([]string, error) {
	body, err := c.request(ctx, http.MethodGet, c.databaseURL, nil)
	if err != nil {
		return nil, err
	}

	prop := gjson.GetBytes(body, "properties."+gjson.Escape(c.props.Tags))
	if !prop.Exists() {
		return nil, fmt.Errorf("%w: database has no %q property", perrors.ErrRemoteService, c.props.Tags)
	}
	options := prop.Get("multi_select.options")
	if !options.IsArray() {
		return nil, fmt.Errorf("%w: property %q is not a multi-select", perrors.ErrRemoteService, c.props.Tags)
	}

	var names []string
	for _, o := range options.Array() {
		names = append(names, o.Get("name").String())
	}
	return names, nil
}

// QueryRecords runs q against the database and returns the first page of
// results in the order the service returned them.
func (c *Client) QueryRecords(ctx context.Context, q Query) ([]Record, error) {
	body, err := c.request(ctx, http.MethodPost, c.QueryURL(), q)
	if err != nil {
		return nil, err
	}

	if !gjson.GetBytes(body, "results").IsArray() {
		return nil, fmt.Errorf("%w: query response has no results list", perrors.ErrRemoteService)
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %w", perrors.ErrRemoteService, err)
	}

	if resp.HasMore {
		c.log("[notion] more results available; only the first page is used")
	}

	records := make([]Record, 0, len(resp.Results))
	for _, p := range resp.Results {
		records = append(records, p.record(c.props))
	}
	return records, nil
}
