// Package model holds the records kept in the document store.
package model

import "errors"

// ErrNotFound is returned by stores when no document matches the filter.
var ErrNotFound = errors.New("document not found")

// Collection names.
const (
	RecipesCollection   = "recipes"
	NotesCollection     = "notes"
	GoalsCollection     = "goals"
	MealPlansCollection = "meal_plans"
)
