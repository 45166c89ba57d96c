package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// User is an entry of the role distribution collection, keyed by email.
type User struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email" validate:"required,not_blank"`
	DisplayName *string            `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Role        *UserRole          `json:"role,omitempty" bson:"role,omitempty"`
	Extra       Fields             `json:"-" bson:",inline"`
}

type userFields User

var userKeys = jsonKeys(userFields{})

func (u User) MarshalJSON() ([]byte, error) {
	return marshalDocument(userFields(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var known userFields
	extra, err := unmarshalDocument(data, &known, userKeys)
	if err != nil {
		return err
	}
	*u = User(known)
	u.Extra = extra
	return nil
}

// HasRole reports whether the stored role equals role. A nil user has no role.
func (u *User) HasRole(role UserRole) bool {
	return u != nil && u.Role != nil && *u.Role == role
}

// RoleFlags is the response of the per-email role lookup.
type RoleFlags struct {
	Admin   bool `json:"admin"`
	Teacher bool `json:"teacher"`
}

func RoleFlagsFor(u *User) RoleFlags {
	return RoleFlags{
		Admin:   u.HasRole(RoleAdmin),
		Teacher: u.HasRole(RoleTeacher),
	}
}
