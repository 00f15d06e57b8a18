package domain

import "time"

type UserRole string

const (
	RoleDoctor UserRole = "doctor"
	RoleNurse  UserRole = "nurse"
	RoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusAway    UserStatus = "away"
	StatusOffline UserStatus = "offline"
)

type ConversationType string

const (
	ConversationPatient  ConversationType = "patient"
	ConversationTeam     ConversationType = "team"
	ConversationReferral ConversationType = "referral"
)

// Valid reports whether t is one of the known conversation types.
func (t ConversationType) Valid() bool {
	switch t {
	case ConversationPatient, ConversationTeam, ConversationReferral:
		return true
	}
	return false
}

type ConsentStatus string

const (
	ConsentReceived ConsentStatus = "received"
	ConsentMissing  ConsentStatus = "missing"
	ConsentExpired  ConsentStatus = "expired"
)

// User represents a member of the care network.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       UserRole   `json:"role"`
	Status     UserStatus `json:"status"`
	Title      *string    `json:"title,omitempty"`
	Department *string    `json:"department,omitempty"`
	KIMAddress *string    `json:"kim_address,omitempty"`
	Unknown    bool       `json:"unknown,omitempty"`
}

// UnknownSender is the placeholder returned when a sender id is not in the
// user directory. The result depends only on its arguments.
func UnknownSender(id, name string) *User {
	return &User{
		ID:      id,
		Name:    name,
		Role:    RoleDoctor,
		Status:  StatusOffline,
		Unknown: true,
	}
}

// Team is a named group of users.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"member_ids"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageAttachment struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Size string  `json:"size"`
	URL  *string `json:"url,omitempty"`
}

// Reaction groups every user who reacted to a message with the same emoji.
// Count always equals len(Users).
type Reaction struct {
	Emoji string   `json:"emoji"`
	Users []string `json:"users"`
	Count int      `json:"count"`
}

// Message represents a single chat message.
type Message struct {
	ID          string              `json:"id"`
	SenderID    string              `json:"sender_id"`
	SenderName  string              `json:"sender_name"`
	Content     string              `json:"content"`
	Timestamp   time.Time           `json:"timestamp"`
	Attachments []MessageAttachment `json:"attachments,omitempty"`
	Reactions   []Reaction          `json:"reactions,omitempty"`
	IsRead      bool                `json:"is_read"`
	IsUrgent    bool                `json:"is_urgent,omitempty"`
	IsEdited    bool                `json:"is_edited,omitempty"`
	EditedAt    *time.Time          `json:"edited_at,omitempty"`
	ReplyCount  int                 `json:"reply_count,omitempty"`
	ParentID    *string             `json:"parent_id,omitempty"`
}

// Conversation is a thread between a care team or patient and providers.
// Messages are kept in chronological order and LastMessage points at the
// final element once any message exists.
type Conversation struct {
	ID             string           `json:"id"`
	Type           ConversationType `json:"type"`
	Name           string           `json:"name"`
	PatientID      *string          `json:"patient_id,omitempty"`
	PatientName    *string          `json:"patient_name,omitempty"`
	ProviderName   *string          `json:"provider_name,omitempty"`
	ParticipantIDs []string         `json:"participant_ids"`
	LastMessage    *Message         `json:"last_message,omitempty"`
	UnreadCount    int              `json:"unread_count"`
	IsUrgent       bool             `json:"is_urgent"`
	Messages       []*Message       `json:"-"`
	IsPinned       bool             `json:"is_pinned"`
	IsMuted        bool             `json:"is_muted"`
	AISuggestions  []string         `json:"ai_suggestions,omitempty"`
}

// TimelineEvent is one entry of a patient's care history.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Provider    string    `json:"provider"`
	Urgent      bool      `json:"urgent"`
}

// Patient is read-mostly reference data looked up by Conversation.PatientID.
type Patient struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DateOfBirth   string          `json:"date_of_birth"`
	InsuranceID   string          `json:"insurance_id"`
	KIMAddress    *string         `json:"kim_address,omitempty"`
	ConsentStatus ConsentStatus   `json:"consent_status"`
	Timeline      []TimelineEvent `json:"timeline"`
}
