package domain

// Ingredient is one layer of a drink recipe.
type Ingredient struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	Parts int    `json:"parts"`
}

// Drink is a menu item with its layered recipe.
type Drink struct {
	ID     int64
	Title  string
	Recipe []Ingredient
}
