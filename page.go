package manychat

import (
	"context"
	"net/http"
	"strings"
)

// maxBotFieldUpdates is the per-request limit the API enforces on
// setBotFields.
const maxBotFieldUpdates = 20

type setBotFieldsRequest struct {
	Fields []BotFieldUpdate `json:"fields"`
}

// GetPageInfo retrieves name, category, avatar and other metadata of the
// connected page.
func (c *Client) GetPageInfo(ctx context.Context) (*PageInfoResponse, error) {
	return do[PageInfoResponse](ctx, c, http.MethodGet, "/fb/page/getInfo", nil, nil)
}

// GetTags retrieves all tags created on the page.
func (c *Client) GetTags(ctx context.Context) (*TagsResponse, error) {
	return do[TagsResponse](ctx, c, http.MethodGet, "/fb/page/getTags", nil, nil)
}

// FindTagByName returns the tag with the given name, matched
// case-insensitively, or nil when the page has no such tag.
func (c *Client) FindTagByName(ctx context.Context, name string) (*Tag, error) {
	if name == "" {
		return nil, validationError("tag name is required")
	}

	resp, err := c.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	for _, tag := range resp.Data {
		if strings.EqualFold(tag.Name, name) {
			return &tag, nil
		}
	}
	return nil, nil
}

// SetBotFields updates up to 20 bot fields in a single request. Each
// update must address its field by ID or name.
func (c *Client) SetBotFields(ctx context.Context, fields []BotFieldUpdate) (*SetBotFieldsResponse, error) {
	if len(fields) == 0 {
		return nil, validationError("at least one field update is required")
	}
	if len(fields) > maxBotFieldUpdates {
		return nil, validationError("at most %d field updates per request, got %d", maxBotFieldUpdates, len(fields))
	}
	for i, f := range fields {
		if f.FieldID == 0 && f.FieldName == "" {
			return nil, validationError("field update %d: either FieldID or FieldName must be provided", i)
		}
	}

	body := setBotFieldsRequest{Fields: fields}
	return do[SetBotFieldsResponse](ctx, c, http.MethodPost, "/fb/page/setBotFields", body, nil)
}

// SetBotField updates a single bot field.
func (c *Client) SetBotField(ctx context.Context, field BotFieldUpdate) (*SetBotFieldsResponse, error) {
	return c.SetBotFields(ctx, []BotFieldUpdate{field})
}
