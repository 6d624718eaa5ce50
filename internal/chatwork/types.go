package chatwork

// WebhookRequest is the inbound Chatwork webhook envelope. The signature is
// a pre-shared token carried in the body, not an HMAC.
type WebhookRequest struct {
	Signature string        `json:"chatwork_webhook_signature"`
	Event     *WebhookEvent `json:"webhook_event,omitempty"`
}

// WebhookEvent carries the message fields the relay consumes.
type WebhookEvent struct {
	Body          string `json:"body"`
	RoomID        int64  `json:"room_id"`
	MessageID     string `json:"message_id"`
	FromAccountID int64  `json:"from_account_id"`
}

// AccountInfo is the contact record returned by GET /contacts/{id}.
type AccountInfo struct {
	AccountID        int64  `json:"account_id"`
	Name             string `json:"name"`
	ChatworkID       string `json:"chatwork_id,omitempty"`
	OrganizationID   int64  `json:"organization_id,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	Department       string `json:"department,omitempty"`
	AvatarImageURL   string `json:"avatar_image_url,omitempty"`
}

// RoomInfo is the room record returned by GET /rooms/{id}.
type RoomInfo struct {
	RoomID         int64  `json:"room_id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	MessageNum     int    `json:"message_num"`
	FileNum        int    `json:"file_num"`
	TaskNum        int    `json:"task_num"`
	LastUpdateTime int64  `json:"last_update_time"`
}
