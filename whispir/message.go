package whispir

import (
	"context"
	"encoding/json"

	"github.com/kbukum/whispir/errors"
	"github.com/kbukum/whispir/logger"
	"github.com/kbukum/whispir/validation"
)

// Message is an outbound message. Body is the SMS text; the channel blocks
// add email, voice and web content.
type Message struct {
	// WorkspaceID sends within a workspace. Empty uses the default workspace.
	WorkspaceID string `json:"-"`

	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body,omitempty"`

	Email *EmailContent `json:"email,omitempty"`
	Voice *VoiceContent `json:"voice,omitempty"`
	Web   *WebContent   `json:"web,omitempty"`

	Label      string `json:"label,omitempty"`
	CallbackID string `json:"callbackId,omitempty"`
}

// EmailContent is the email channel of a message.
type EmailContent struct {
	Body   string `json:"body"`
	Footer string `json:"footer,omitempty"`
	// Type is text/plain or text/html.
	Type string `json:"type,omitempty"`
}

// VoiceContent is the voice call channel of a message.
type VoiceContent struct {
	Header string `json:"header,omitempty"`
	Body   string `json:"body"`
	Footer string `json:"footer,omitempty"`
	Other  string `json:"other,omitempty"`
	Type   string `json:"type,omitempty"`
}

// WebContent is the rich web channel of a message.
type WebContent struct {
	Body string `json:"body"`
	Type string `json:"type,omitempty"`
}

func (m *Message) validate() error {
	if err := validation.Validate(m); err != nil {
		return err
	}
	if m.Body == "" && m.Email == nil && m.Voice == nil && m.Web == nil {
		return errors.MissingField("body")
	}
	return nil
}

// SendMessage posts m to the messages resource and returns the final status
// code, 202 on acceptance.
func (c *Client) SendMessage(ctx context.Context, m Message) (int, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return 0, errors.Encoding(err)
	}

	status, err := c.Post(ctx, ResourceMessages, m.WorkspaceID, string(data))
	if err == nil {
		c.log.WithContext(ctx).Debug("message submitted", logger.Fields(
			logger.FieldStatus, status,
			logger.FieldWorkspace, m.WorkspaceID,
		))
	}
	return status, err
}

// SendSimpleMessage sends an SMS with the given subject and body.
func (c *Client) SendSimpleMessage(ctx context.Context, workspaceID, to, subject, body string) (int, error) {
	return c.SendMessage(ctx, Message{
		WorkspaceID: workspaceID,
		To:          to,
		Subject:     subject,
		Body:        body,
	})
}
