package content

import "time"

// Collection names. They match the collections the site has always used so an
// existing database keeps working.
const (
	StatusChecksCollection    = "status_checks"
	BiographyCollection       = "biography"
	PartnershipsCollection    = "partnerships"
	SocialMediaCollection     = "social_media"
	ContactFormsCollection    = "contact_forms"
	StreamingStatusCollection = "streaming_status"
)

// StatusCheck is a write-once health ping sent by a client.
type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

func (s StatusCheck) RecordID() string       { return s.ID }
func (s StatusCheck) CreatedTime() time.Time { return s.Timestamp }

type StatusCheckCreate struct {
	ClientName string `json:"client_name" binding:"required"`
}

// Biography is the singleton "about" text shown on the landing page.
type Biography struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Title     string    `json:"title" bson:"title"`
	Bio       string    `json:"bio" bson:"bio"`
	Tagline   string    `json:"tagline" bson:"tagline"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (b Biography) RecordID() string       { return b.ID }
func (b Biography) CreatedTime() time.Time { return b.UpdatedAt }

// Partnership is a sponsor or community the creator works with.
type Partnership struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Role      string    `json:"role" bson:"role"`
	Logo      string    `json:"logo" bson:"logo"`
	Handle    string    `json:"handle" bson:"handle"`
	URL       *string   `json:"url" bson:"url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (p Partnership) RecordID() string       { return p.ID }
func (p Partnership) CreatedTime() time.Time { return p.CreatedAt }

// PartnershipCreate is the body of POST /partnerships. An empty or null url
// means the partnership has no link.
type PartnershipCreate struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Logo   string `json:"logo" binding:"required"`
	Handle string `json:"handle" binding:"required"`
	URL    string `json:"url" binding:"omitempty,http_url"`
}

// SocialMedia is one link in the social bar.
type SocialMedia struct {
	ID        string    `json:"id" bson:"id"`
	Platform  string    `json:"platform" bson:"platform"`
	URL       string    `json:"url" bson:"url"`
	Icon      string    `json:"icon" bson:"icon"`
	Color     string    `json:"color" bson:"color"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (s SocialMedia) RecordID() string       { return s.ID }
func (s SocialMedia) CreatedTime() time.Time { return s.CreatedAt }

type SocialMediaCreate struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"required,http_url"`
	Icon     string `json:"icon" binding:"required"`
	Color    string `json:"color" binding:"required"`
}

// ContactStatus tracks how far a contact message has been handled.
type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

// Valid reports whether s is one of the known contact states.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactResponded:
		return true
	}
	return false
}

// ContactForm is a message submitted through the contact form.
type ContactForm struct {
	ID        string        `json:"id" bson:"id"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Message   string        `json:"message" bson:"message"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Status    ContactStatus `json:"status" bson:"status"`
}

func (c ContactForm) RecordID() string       { return c.ID }
func (c ContactForm) CreatedTime() time.Time { return c.CreatedAt }

type ContactFormCreate struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// StreamState is the live state shown in the hero banner.
type StreamState string

const (
	StreamOnline    StreamState = "online"
	StreamOffline   StreamState = "offline"
	StreamStreaming StreamState = "streaming"
)

func (s StreamState) Valid() bool {
	switch s {
	case StreamOnline, StreamOffline, StreamStreaming:
		return true
	}
	return false
}

// DefaultGame is used when a streaming update does not name a game.
const DefaultGame = "Rocket League"

// StreamingStatus is the singleton live-stream indicator.
type StreamingStatus struct {
	ID        string      `json:"id" bson:"id"`
	Platform  string      `json:"platform" bson:"platform"`
	URL       string      `json:"url" bson:"url"`
	Status    StreamState `json:"status" bson:"status"`
	Game      string      `json:"game" bson:"game"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

func (s StreamingStatus) RecordID() string       { return s.ID }
func (s StreamingStatus) CreatedTime() time.Time { return s.UpdatedAt }
