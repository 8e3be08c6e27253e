package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether r is one of the three supported roles.
func ValidRole(r string) bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"-"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Name      string    `gorm:"column:name" json:"name"`
	Role      string    `gorm:"column:role;default:patient" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
