package categories

// CategoryForm is the request body for create and update.
type CategoryForm struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
