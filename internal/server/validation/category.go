package validation

import "github.com/dmitrijs2005/taskboard/internal/server/models"

// CategoryInput is the body of POST /api/categories.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Color       *string `json:"color" validate:"omitnil,oneof=blue green purple red amber"`
	Description *string `json:"description"`
}

// CategoryUpdateInput is the body of PUT /api/categories/:id. All fields
// are optional.
type CategoryUpdateInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Color       *string `json:"color" validate:"omitnil,oneof=blue green purple red amber"`
	Description *string `json:"description"`
}

func DecodeCategoryInput(body []byte) (*CategoryInput, error) {
	in := &CategoryInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}

func DecodeCategoryUpdate(body []byte) (*CategoryUpdateInput, error) {
	in := &CategoryUpdateInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}

// ToCategory applies defaults and attributes the category to userID.
func (in *CategoryInput) ToCategory(userID int64) *models.Category {
	c := &models.Category{Name: in.Name, Color: models.DefaultColor, UserID: userID}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	return c
}

func (in *CategoryUpdateInput) Patch() models.CategoryPatch {
	return models.CategoryPatch{Name: in.Name, Color: in.Color, Description: in.Description}
}
