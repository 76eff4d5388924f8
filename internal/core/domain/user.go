package domain

import "time"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleStudent || s == RoleInstructor || s == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Profile holds the presentation data attached to a user. A profile is
// created lazily on the user's first authenticated access.
type Profile struct {
	UserID    string    `json:"user_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Bio       string    `json:"bio" bson:"bio"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Actor is the identity extracted from an authenticated request.
type Actor struct {
	ID   string
	Role string
}

// CanAuthor reports whether the actor may create courses.
func CanAuthor(a Actor) bool {
	return a.Role == RoleInstructor || a.Role == RoleAdmin
}

// CanEditCourse reports whether the actor may mutate the given course:
// update, delete, and all lesson editing. Owners and admins only.
func CanEditCourse(a Actor, c *Course) bool {
	return a.Role == RoleAdmin || a.ID == c.InstructorID
}

// CanViewLessonContent reports whether the actor may read full lesson
// content of the course. enrolled is the enrollment ledger's answer for
// the (actor, course) pair.
func CanViewLessonContent(a Actor, c *Course, enrolled bool) bool {
	return enrolled || CanEditCourse(a, c)
}
