package manychat

// Wire shapes for the endpoint layer. Responses use the API's envelope:
// {"status": "success", "data": ...}. Unknown fields are ignored on
// decode; a body that does not decode at all surfaces as a Validation
// error from the executor.

// StatusResponse is the bare success envelope returned by mutation
// endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// OK reports whether the API marked the operation successful.
func (r StatusResponse) OK() bool {
	return r.Status == "success"
}

// Tag is a page tag.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TagsResponse is the envelope for GET /fb/page/getTags.
type TagsResponse struct {
	StatusResponse
	Data []Tag `json:"data"`
}

// PageInfo describes the connected page.
type PageInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	AvatarLink  string `json:"avatar_link,omitempty"`
	Username    string `json:"username,omitempty"`
	About       string `json:"about,omitempty"`
	Description string `json:"description,omitempty"`
	IsPro       bool   `json:"is_pro"`
	Timezone    string `json:"timezone"`
}

// PageInfoResponse is the envelope for GET /fb/page/getInfo.
type PageInfoResponse struct {
	StatusResponse
	Data PageInfo `json:"data"`
}

// UserRef is an opted-in user reference attached to a subscriber.
type UserRef struct {
	UserRef string `json:"user_ref"`
	OptedIn string `json:"opted_in"`
}

// CustomField is a custom field value attached to a subscriber.
type CustomField struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Value       any    `json:"value"`
}

// SubscriberInfo is the full subscriber record returned by
// GET /fb/subscriber/getInfo.
type SubscriberInfo struct {
	ID                string        `json:"id"`
	PageID            string        `json:"page_id"`
	UserRefs          []UserRef     `json:"user_refs,omitempty"`
	FirstName         string        `json:"first_name,omitempty"`
	LastName          string        `json:"last_name,omitempty"`
	Name              string        `json:"name,omitempty"`
	Gender            string        `json:"gender,omitempty"`
	ProfilePic        string        `json:"profile_pic,omitempty"`
	Locale            string        `json:"locale,omitempty"`
	Language          string        `json:"language,omitempty"`
	Timezone          string        `json:"timezone,omitempty"`
	LiveChatURL       string        `json:"live_chat_url,omitempty"`
	LastInputText     string        `json:"last_input_text,omitempty"`
	OptinPhone        bool          `json:"optin_phone"`
	Phone             string        `json:"phone,omitempty"`
	OptinEmail        bool          `json:"optin_email"`
	Email             string        `json:"email,omitempty"`
	Subscribed        string        `json:"subscribed,omitempty"`
	LastInteraction   string        `json:"last_interaction,omitempty"`
	LastSeen          string        `json:"last_seen,omitempty"`
	IsFollowupEnabled bool          `json:"is_followup_enabled"`
	IGUsername        string        `json:"ig_username,omitempty"`
	IGID              int64         `json:"ig_id,omitempty"`
	WhatsappPhone     string        `json:"whatsapp_phone,omitempty"`
	OptinWhatsapp     bool          `json:"optin_whatsapp"`
	CustomFields      []CustomField `json:"custom_fields,omitempty"`
	Tags              []Tag         `json:"tags,omitempty"`
}

// SubscriberInfoResponse is the envelope for GET /fb/subscriber/getInfo.
type SubscriberInfoResponse struct {
	StatusResponse
	Data SubscriberInfo `json:"data"`
}

// BotFieldUpdate addresses one bot field by ID or name and carries the
// value to set. Exactly one of FieldID or FieldName must be supplied.
type BotFieldUpdate struct {
	FieldID    int64  `json:"field_id,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
	FieldValue any    `json:"field_value"`
}

// BotFieldResult is the per-field outcome of a setBotFields call.
type BotFieldResult struct {
	FieldID   int64  `json:"field_id,omitempty"`
	FieldName string `json:"field_name,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// SetBotFieldsResponse is the envelope for POST /fb/page/setBotFields.
type SetBotFieldsResponse struct {
	StatusResponse
	Data []BotFieldResult `json:"data"`
}
