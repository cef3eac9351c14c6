package sms

import "context"

// SMSProvider delivers dispatch alerts to rescue-team phones. Delivery is
// best effort; callers log failures and move on.
type SMSProvider interface {
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
}

type SMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}
