package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikbrunner/mev/internal/model"
)

// SearchByKeyword fetches one page of GET /search. qs is the encoded
// location query and cursor the id of the last item already shown.
func (c *Client) SearchByKeyword(ctx context.Context, qs, cursor string) ([]model.MenuItem, error) {
	return c.page(ctx, "/search", qs, cursor)
}

// SearchByFilter fetches one page of GET /filter.
func (c *Client) SearchByFilter(ctx context.Context, qs, cursor string) ([]model.MenuItem, error) {
	return c.page(ctx, "/filter", qs, cursor)
}

func (c *Client) page(ctx context.Context, path, qs, cursor string) ([]model.MenuItem, error) {
	key := path + "?" + qs + "#" + cursor
	if c.pages != nil {
		if items, ok := c.pages.Get(key); ok {
			c.log.Debug("page cache hit", "path", path, "query", qs, "cursor", cursor)
			return items, nil
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryString(qs).
		SetQueryParam("id", cursor).
		Get(path)
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	var items []model.MenuItem
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	c.log.Debug("page loaded", "path", path, "query", qs, "cursor", cursor, "items", len(items))

	if c.pages != nil {
		c.pages.Add(key, items)
	}
	return items, nil
}
