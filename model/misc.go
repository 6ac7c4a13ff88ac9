package model

// BaseData struct to pass value to the base template
type BaseData struct {
	Active      string
	CurrentUser string
	Admin       bool
}
