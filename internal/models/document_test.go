package models

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStudentJSONKeepsUnknownFields(t *testing.T) {
	body := `{"name":"A","age":20,"guardian":{"phone":"123"},"tags":["x","y"]}`

	var s Student
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Name == nil || *s.Name != "A" {
		t.Fatalf("Name = %v", s.Name)
	}
	if s.Age == nil || *s.Age != 20 {
		t.Fatalf("Age = %v", s.Age)
	}
	if _, ok := s.Extra["name"]; ok {
		t.Error("typed key leaked into Extra")
	}
	if _, ok := s.Extra["guardian"]; !ok {
		t.Error("guardian missing from Extra")
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal output: %v", err)
	}
	for _, key := range []string{"name", "age", "guardian", "tags", "_id"} {
		if _, ok := got[key]; !ok {
			t.Errorf("output missing %q: %s", key, out)
		}
	}
	if _, ok := got["status"]; ok {
		t.Error("unset status should be omitted")
	}
}

func TestStudentJSONKeepsExactNumbers(t *testing.T) {
	body := `{"name":"A","phone":9007199254740993,"ratio":0.5,"meta":{"seq":9007199254740995,"scores":[1,2.5]}}`

	var s Student
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"large integer", s.Extra["phone"], int64(9007199254740993)},
		{"fraction", s.Extra["ratio"], 0.5},
		{"nested integer", s.Extra["meta"].(map[string]interface{})["seq"], int64(9007199254740995)},
		{"integer in array", s.Extra["meta"].(map[string]interface{})["scores"].([]interface{})[0], int64(1)},
		{"float in array", s.Extra["meta"].(map[string]interface{})["scores"].([]interface{})[1], 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#v, want %#v", tt.got, tt.want)
			}
		})
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, literal := range []string{`"phone":9007199254740993`, `"seq":9007199254740995`, `"scores":[1,2.5]`} {
		if !strings.Contains(string(out), literal) {
			t.Errorf("output %s missing %s", out, literal)
		}
	}

	raw, err := bson.Marshal(s)
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}
	if v := bson.Raw(raw).Lookup("phone"); v.Type != bson.TypeInt64 || v.Int64() != 9007199254740993 {
		t.Errorf("stored phone = %v (%v), want int64", v, v.Type)
	}
}

func TestStudentJSONRejectsWrongType(t *testing.T) {
	var s Student
	if err := json.Unmarshal([]byte(`{"age":"twenty"}`), &s); err == nil {
		t.Fatal("expected error for string age")
	}
}

func TestStudentBSONInlineExtra(t *testing.T) {
	name := "A"
	s := Student{
		ID:    primitive.NewObjectID(),
		Name:  &name,
		Extra: Fields{"room": "101"},
	}

	raw, err := bson.Marshal(s)
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("bson.Unmarshal: %v", err)
	}
	if doc["room"] != "101" {
		t.Errorf("room = %v, want inline field", doc["room"])
	}
	if _, ok := doc["Extra"]; ok {
		t.Error("Extra must be inlined, not nested")
	}

	var back Student
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Extra["room"] != "101" || back.ID != s.ID {
		t.Errorf("round trip = %+v", back)
	}
}

func TestRoleFlagsFor(t *testing.T) {
	admin, teacher, other := RoleAdmin, RoleTeacher, UserRole("student")

	tests := []struct {
		name string
		user *User
		want RoleFlags
	}{
		{"admin", &User{Email: "a@x", Role: &admin}, RoleFlags{Admin: true}},
		{"teacher", &User{Email: "t@x", Role: &teacher}, RoleFlags{Teacher: true}},
		{"other role", &User{Email: "o@x", Role: &other}, RoleFlags{}},
		{"no role", &User{Email: "n@x"}, RoleFlags{}},
		{"no record", nil, RoleFlags{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleFlagsFor(tt.user); got != tt.want {
				t.Errorf("RoleFlagsFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
