package suppliers

// SupplierForm is the request body for create and update.
type SupplierForm struct {
	Name         string  `json:"name" validate:"required,max=150"`
	ContactEmail string  `json:"contactEmail" validate:"required,email,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
}
