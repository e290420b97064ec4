package manychat

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

type addTagByNameRequest struct {
	SubscriberID string `json:"subscriber_id"`
	TagName      string `json:"tag_name"`
}

type removeTagRequest struct {
	SubscriberID string `json:"subscriber_id"`
	TagID        int    `json:"tag_id"`
}

type setCustomFieldRequest struct {
	SubscriberID string `json:"subscriber_id"`
	FieldID      int64  `json:"field_id,omitempty"`
	FieldName    string `json:"field_name,omitempty"`
	FieldValue   any    `json:"field_value"`
}

type sendFlowRequest struct {
	SubscriberID string `json:"subscriber_id"`
	FlowNS       string `json:"flow_ns"`
}

// GetSubscriberInfo retrieves a subscriber record, optionally narrowed to
// the named fields.
func (c *Client) GetSubscriberInfo(ctx context.Context, subscriberID string, fields ...string) (*SubscriberInfoResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}

	query := url.Values{"subscriber_id": {subscriberID}}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	return do[SubscriberInfoResponse](ctx, c, http.MethodGet, "/fb/subscriber/getInfo", nil, query)
}

// AddTagByName attaches the named tag to a subscriber.
func (c *Client) AddTagByName(ctx context.Context, subscriberID, tagName string) (*StatusResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}
	if tagName == "" {
		return nil, validationError("tag name is required")
	}

	body := addTagByNameRequest{SubscriberID: subscriberID, TagName: tagName}
	return do[StatusResponse](ctx, c, http.MethodPost, "/fb/subscriber/addTagByName", body, nil)
}

// RemoveTag detaches a tag from a subscriber by tag ID.
func (c *Client) RemoveTag(ctx context.Context, subscriberID string, tagID int) (*StatusResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}
	if tagID <= 0 {
		return nil, validationError("tag ID must be positive, got %d", tagID)
	}

	body := removeTagRequest{SubscriberID: subscriberID, TagID: tagID}
	return do[StatusResponse](ctx, c, http.MethodPost, "/fb/subscriber/removeTag", body, nil)
}

// SetCustomField sets a subscriber's custom field value by field ID.
func (c *Client) SetCustomField(ctx context.Context, subscriberID string, fieldID int64, value any) (*StatusResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}
	if fieldID <= 0 {
		return nil, validationError("field ID must be positive, got %d", fieldID)
	}

	body := setCustomFieldRequest{SubscriberID: subscriberID, FieldID: fieldID, FieldValue: value}
	return do[StatusResponse](ctx, c, http.MethodPost, "/fb/subscriber/setCustomField", body, nil)
}

// SetCustomFieldByName sets a subscriber's custom field value by field
// name.
func (c *Client) SetCustomFieldByName(ctx context.Context, subscriberID, fieldName string, value any) (*StatusResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}
	if fieldName == "" {
		return nil, validationError("field name is required")
	}

	body := setCustomFieldRequest{SubscriberID: subscriberID, FieldName: fieldName, FieldValue: value}
	return do[StatusResponse](ctx, c, http.MethodPost, "/fb/subscriber/setCustomFieldByName", body, nil)
}

// SendFlow triggers a flow for a subscriber by flow namespace.
func (c *Client) SendFlow(ctx context.Context, subscriberID, flowNS string) (*StatusResponse, error) {
	if subscriberID == "" {
		return nil, validationError("subscriber ID is required")
	}
	if flowNS == "" {
		return nil, validationError("flow namespace is required")
	}

	body := sendFlowRequest{SubscriberID: subscriberID, FlowNS: flowNS}
	return do[StatusResponse](ctx, c, http.MethodPost, "/fb/sending/sendFlow", body, nil)
}
