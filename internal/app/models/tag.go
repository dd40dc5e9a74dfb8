package models

// Tag is a deduplicated value-holder shared by community entities and posts.
// Rows are reused by value via get-or-create; unreferenced rows are left in
// place.
type Tag struct {
	ID    int64  `json:"id" db:"id"`
	Value string `json:"value" db:"value"`
}

// Link is a deduplicated URL/text value shared by community entities.
type Link struct {
	ID    int64  `json:"id" db:"id"`
	Value string `json:"value" db:"value"`
}
