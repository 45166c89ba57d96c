package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student is a hostel resident. Keys outside the typed set are kept in Extra.
type Student struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name   *string            `json:"name,omitempty" bson:"name,omitempty"`
	Roll   *string            `json:"roll,omitempty" bson:"roll,omitempty"`
	Age    *int               `json:"age,omitempty" bson:"age,omitempty"`
	Class  *string            `json:"class,omitempty" bson:"class,omitempty"`
	Hall   *string            `json:"hall,omitempty" bson:"hall,omitempty"`
	Status *string            `json:"status,omitempty" bson:"status,omitempty"`
	Extra  Fields             `json:"-" bson:",inline"`
}

type studentFields Student

var studentKeys = jsonKeys(studentFields{})

// SetID records the id the store assigned on insert
func (s *Student) SetID(id primitive.ObjectID) { s.ID = id }

func (s Student) MarshalJSON() ([]byte, error) {
	return marshalDocument(studentFields(s), s.Extra)
}

func (s *Student) UnmarshalJSON(data []byte) error {
	var known studentFields
	extra, err := unmarshalDocument(data, &known, studentKeys)
	if err != nil {
		return err
	}
	*s = Student(known)
	s.Extra = extra
	return nil
}
