package models

import "time"

// UserRole determines which capabilities are visible to a user.
type UserRole string

const (
	RoleSystemAdmin      UserRole = "SYSTEM_ADMIN"
	RoleLubricenterAdmin UserRole = "LUBRICENTER_ADMIN"
	RoleEmployee         UserRole = "EMPLOYEE"
)

// User represents a user in the system.
// Employees and lubricenter admins reference the shop they work at via
// LubricenterID; owners may instead be resolved through ownerId lookups on the
// lubricenters collection.
type User struct {
	ID            string    `json:"id" firestore:"-"` // Firebase Auth UID, used as the document ID
	Email         string    `json:"email" firestore:"email"`
	Name          string    `json:"name" firestore:"name"`
	LastName      string    `json:"lastName,omitempty" firestore:"lastName,omitempty"`
	Role          UserRole  `json:"role" firestore:"role"`
	LubricenterID string    `json:"lubricenterId,omitempty" firestore:"lubricenterId,omitempty"`
	Active        bool      `json:"active" firestore:"active"`
	LastLogin     time.Time `json:"lastLogin,omitempty" firestore:"lastLogin,omitempty"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// FullName returns the display name stamped on tickets and audit entries.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}
