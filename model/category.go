package model

// Category model
type Category struct {
	ID           string `json:"id" bson:"_id"`
	CategoryName string `json:"category_name" bson:"category_name"`
}
