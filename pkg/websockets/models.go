package websockets

import "github.com/chris/star-tournaments/pkg/models"

// MessageType defines the type of a websocket notification.
type MessageType string

const (
	MessageTypeRegistration   MessageType = "tournament_registration"
	MessageTypeUnregistration MessageType = "tournament_unregistration"
	MessageTypeCreated        MessageType = "tournament_created"
	MessageTypeUpdated        MessageType = "tournament_updated"
	MessageTypeDeleted        MessageType = "tournament_deleted"
)

// Message is the notification handed to connected clients after a committed
// mutation. Tournament carries the post-commit snapshot where one exists;
// deletions only carry the ID.
type Message struct {
	Type         MessageType        `json:"type"`
	Tournament   *models.Tournament `json:"tournament,omitempty"`
	TournamentID string             `json:"tournament_id,omitempty"`
	UserID       string             `json:"user_id,omitempty"`
}

// RegistrationMessage builds the notification for a committed register or
// unregister operation.
func RegistrationMessage(msgType MessageType, outcome *models.RegistrationOutcome) Message {
	return Message{
		Type:         msgType,
		Tournament:   outcome.Tournament,
		TournamentID: outcome.Tournament.ID,
		UserID:       outcome.User.ID,
	}
}
