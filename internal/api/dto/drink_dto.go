package dto

import (
	"bytes"
	"encoding/json"
)

// IngredientRequest is one recipe layer in a drink payload.
type IngredientRequest struct {
	Color string `json:"color" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Parts int    `json:"parts" validate:"gt=0"`
}

// Recipe decodes either a single ingredient object or an array of them.
type Recipe []IngredientRequest

// UnmarshalJSON implements json.Unmarshaler.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var single IngredientRequest
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*r = Recipe{single}
		return nil
	}
	var many []IngredientRequest
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many
	return nil
}

// CreateDrinkRequest payload for POST /drinks.
type CreateDrinkRequest struct {
	Title  string `json:"title" validate:"required"`
	Recipe Recipe `json:"recipe" validate:"required,min=1,dive"`
}

// UpdateDrinkRequest payload for PATCH /drinks/:id.
type UpdateDrinkRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Recipe *Recipe `json:"recipe" validate:"omitempty,min=1,dive"`
}

// IngredientShort hides the ingredient name.
type IngredientShort struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// IngredientLong is the full ingredient.
type IngredientLong struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	Parts int    `json:"parts"`
}

// DrinkShort is the public drink representation.
type DrinkShort struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []IngredientShort `json:"recipe"`
}

// DrinkLong is the drink representation for staff.
type DrinkLong struct {
	ID     int64            `json:"id"`
	Title  string           `json:"title"`
	Recipe []IngredientLong `json:"recipe"`
}
