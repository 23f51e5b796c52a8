// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string       `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string       `json:"-" gorm:"size:255"`
	Provider     AuthProvider `json:"provider" gorm:"type:varchar(20);default:'local'"`
	ProviderID   string       `json:"-" gorm:"size:255;index"`
	Status       UserStatus   `json:"status" gorm:"type:varchar(20);default:'active'"`
	LastLoginAt  *time.Time   `json:"last_login_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:ID;references:ID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Profile carries per-user display data and the role gating admin screens.
// It shares its primary key with the owning user.
type Profile struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	DisplayName string    `json:"display_name" gorm:"size:255"`
	Role        Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) Role() Role {
	if u.Profile == nil {
		return RoleCustomer
	}
	return u.Profile.Role
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}
