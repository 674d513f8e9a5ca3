package models

// Category colours accepted by the API.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorPurple = "purple"
	ColorRed    = "red"
	ColorAmber  = "amber"

	DefaultColor = ColorBlue
)

// Colors lists every accepted colour tag in display order.
var Colors = []string{ColorBlue, ColorGreen, ColorPurple, ColorRed, ColorAmber}

// Category groups tasks. Every category belongs to exactly one user; names
// are not unique.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	UserID      int64  `json:"userId"`
}

// CategoryPatch carries a partial category update. Nil fields are left
// untouched.
type CategoryPatch struct {
	Name        *string
	Color       *string
	Description *string
}

// Apply copies the set fields of p onto c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

// Empty reports whether the patch changes nothing.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Color == nil && p.Description == nil
}
