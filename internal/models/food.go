package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Food is a menu item served in the hostel dining hall.
type Food struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name   *string            `json:"name,omitempty" bson:"name,omitempty"`
	Price  *float64           `json:"price,omitempty" bson:"price,omitempty"`
	Status *string            `json:"status,omitempty" bson:"status,omitempty"`
	Extra  Fields             `json:"-" bson:",inline"`
}

type foodFields Food

var foodKeys = jsonKeys(foodFields{})

func (f *Food) SetID(id primitive.ObjectID) { f.ID = id }

func (f Food) MarshalJSON() ([]byte, error) {
	return marshalDocument(foodFields(f), f.Extra)
}

func (f *Food) UnmarshalJSON(data []byte) error {
	var known foodFields
	extra, err := unmarshalDocument(data, &known, foodKeys)
	if err != nil {
		return err
	}
	*f = Food(known)
	f.Extra = extra
	return nil
}
