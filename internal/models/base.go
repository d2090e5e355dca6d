package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Custom string types for the fixed enumerations used across the portal.
type Role string
type TaskStatus string
type TaskKind string
type PhaseSlug string
type PageReviewStatus string
type CommentStatus string
type NotificationType string
type AssetType string
type AssetStatus string

const (
	// Roles
	RoleClientOwner        Role = "client_owner"
	RoleClientCollaborator Role = "client_collaborator"
	RolePM                 Role = "de_pm"
	RoleAdmin              Role = "de_admin"
	RoleSuperAdmin         Role = "super_admin"

	// Task statuses
	TaskPending   TaskStatus = "pending"
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
	TaskApproved  TaskStatus = "approved"
	TaskOverdue   TaskStatus = "overdue"

	// Task kinds
	KindGeneric       TaskKind = "generic"
	KindSiteMapReview TaskKind = "site_map_review"
	KindDesignReview  TaskKind = "design_review"

	// Phase slugs
	PhaseDiscovery PhaseSlug = "discovery"
	PhaseContent   PhaseSlug = "content"
	PhaseDesign    PhaseSlug = "design"
	PhaseLaunch    PhaseSlug = "launch"

	// Page review statuses
	ReviewPending          PageReviewStatus = "pending"
	ReviewChangesRequested PageReviewStatus = "changes_requested"
	ReviewApproved         PageReviewStatus = "approved"

	// Comment statuses
	CommentOpen     CommentStatus = "open"
	CommentResolved CommentStatus = "resolved"

	// Notification types
	NoticeInfo    NotificationType = "info"
	NoticeSuccess NotificationType = "success"
	NoticeWarning NotificationType = "warning"
	NoticeError   NotificationType = "error"

	// Deliverable asset types and statuses
	AssetImage    AssetType = "image"
	AssetDocument AssetType = "document"
	AssetVoice    AssetType = "voice"

	AssetDraft    AssetStatus = "draft"
	AssetApproved AssetStatus = "approved"
)

// Store-level sentinel errors. Handlers map these to HTTP statuses.
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrPageNotFound         = errors.New("page review not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAssetNotFound        = errors.New("asset not found")
	ErrUnknownPhase         = errors.New("unknown phase")
	ErrUnknownBlueprint     = errors.New("unknown blueprint")
	ErrHasOpenComments      = errors.New("page has open comments")
	ErrInvalidReplyTo       = errors.New("invalid reply target")
	ErrNoCurrentUser        = errors.New("no current user")
)

// JSONB handles JSON data storage
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONB")
	}
}

// StringList stores a JSON-encoded array of strings (attachment refs, site maps).
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// newID fills in a fresh identifier. Seeded rows keep their fixture slugs
// ('staff_bios', 'home', ...); rows created at runtime get a uuid.
func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
