package comments

import "time"

// Comment status lifecycle:
//
//	published            (engine allowed)
//	held -> published    (moderator approved)
//	held -> rejected     (moderator rejected)
//
// Engine-rejected submissions are never persisted; only the audit trail
// records them.
type Status string

const (
	StatusPublished Status = "published"
	StatusHeld      Status = "held"
	StatusRejected  Status = "rejected"
)

type Comment struct {
	ID     string `json:"id" db:"id"`
	SiteID string `json:"site_id" db:"site_id"`

	// PostID identifies the content the comment is attached to.
	PostID string `json:"post_id" db:"post_id"`

	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorEmail string `json:"author_email,omitempty" db:"author_email"`
	Body        string `json:"body" db:"body"`

	Status Status `json:"status" db:"status"`

	// IPHash is the salted one-way hash of the submitter IP; raw addresses
	// are never stored.
	IPHash string `json:"ip_hash,omitempty" db:"ip_hash"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
