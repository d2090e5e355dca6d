package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// User represents a portal user. Users are immutable once constructed; a
// role switch replaces the session binding, it never mutates the row.
type User struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Email      string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Role       Role      `gorm:"column:role;not null" json:"role"`
	AvatarURL  string    `gorm:"column:avatar_url" json:"avatar_url"`
	Provider   string    `gorm:"column:provider" json:"provider,omitempty"`
	ProviderID string    `gorm:"column:provider_id" json:"provider_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an identifier when none was seeded
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ID = newID(u.ID)
	return nil
}

// rolePermissions is the static role → permission-token mapping. Each role's
// list is authored independently; the de_pm ⊂ de_admin ⊂ super_admin and
// client_collaborator ⊂ client_owner containments are a data convention,
// not a derivation rule.
var rolePermissions = map[Role][]string{
	RoleClientOwner: {
		"upload_assets", "complete_tasks", "approve_designs",
		"invite_users", "view_timeline",
	},
	RoleClientCollaborator: {
		"upload_assets", "complete_tasks", "view_timeline",
	},
	RolePM: {
		"manage_tasks", "edit_automations", "impersonate_client",
		"adjust_timeline", "view_analytics",
	},
	RoleAdmin: {
		"manage_tasks", "edit_automations", "impersonate_client",
		"adjust_timeline", "view_analytics", "edit_templates",
	},
	RoleSuperAdmin: {
		"manage_tasks", "edit_automations", "impersonate_client",
		"adjust_timeline", "view_analytics", "edit_templates",
		"platform_settings", "billing", "sso",
	},
}

// Permissions returns the permission tokens for the role. Unknown roles get
// an empty list.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role carries the given token.
func (r Role) HasPermission(token string) bool {
	for _, p := range rolePermissions[r] {
		if p == token {
			return true
		}
	}
	return false
}

// UserManager provides Django-like ORM methods for User
type UserManager struct {
	db *gorm.DB
}

// NewUserManager creates a new UserManager instance
func NewUserManager(db *gorm.DB) *UserManager {
	return &UserManager{db: db}
}

// Create creates a new user
func (m *UserManager) Create(user *User) error {
	return m.db.Create(user).Error
}

// Get retrieves a user by ID
func (m *UserManager) Get(id string) (*User, error) {
	var user User
	err := m.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (m *UserManager) GetByEmail(email string) (*User, error) {
	var user User
	err := m.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByRole retrieves the first user carrying the given role. Role switching
// in the portal rebinds the session to such a user wholesale.
func (m *UserManager) GetByRole(role Role) (*User, error) {
	var user User
	err := m.db.Where("role = ?", role).Order("created_at asc").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate gets an existing user by OAuth provider identity or creates one
func (m *UserManager) GetOrCreate(provider, providerID string, defaults User) (*User, bool, error) {
	var user User
	created := false

	err := m.db.Where("provider = ? AND provider_id = ?", provider, providerID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = defaults
		user.Provider = provider
		user.ProviderID = providerID
		if err := m.db.Create(&user).Error; err != nil {
			return nil, false, err
		}
		created = true
	} else if err != nil {
		return nil, false, err
	}

	return &user, created, nil
}

// All retrieves all users
func (m *UserManager) All() ([]User, error) {
	var users []User
	err := m.db.Order("created_at asc").Find(&users).Error
	return users, err
}
