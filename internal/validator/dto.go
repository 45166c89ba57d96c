package validator

// StatusUpdateRequest is the body of PUT /tutors/:id and PUT /orders/:id.
// Any other keys in the body are ignored.
type StatusUpdateRequest struct {
	Status *string `json:"status" validate:"required"`
}

// RoleAssignRequest is the body of PUT /users/admin and PUT /users/teacher.
type RoleAssignRequest struct {
	Email string `json:"email" validate:"required,not_blank"`
}
