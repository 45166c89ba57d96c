package models

// ===== WRITE ACKNOWLEDGMENTS =====

type InsertAck struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type UpdateAck struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// ===== LIST RESPONSES =====

type StudentListResponse struct {
	Count    int64      `json:"count"`
	Students []*Student `json:"students"`
}

type FoodListResponse struct {
	Count int64   `json:"count"`
	Foods []*Food `json:"foods"`
}
