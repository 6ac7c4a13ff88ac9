package model

import (
	"html/template"
	"time"
)

// DateAddedLayout is the format of Recipe.DateAdded, as produced by the date picker
const DateAddedLayout = "02 January, 2006"

// Recipe model
type Recipe struct {
	ID                string    `json:"id" bson:"_id"`
	CategoryID        string    `json:"category_id" bson:"category_id"`
	RecipeName        string    `json:"recipe_name" bson:"recipe_name"`
	RecipeDescription string    `json:"recipe_description" bson:"recipe_description"`
	DateAdded         string    `json:"date_added" bson:"date_added"`
	Healthy           bool      `json:"healthy" bson:"healthy"`
	CreatedBy         string    `json:"created_by" bson:"created_by"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// RecipeData includes the Recipe and extra data for the views
type RecipeData struct {
	Recipe       *Recipe
	CategoryName string
	QRCode       template.URL
}
