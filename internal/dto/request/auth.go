package request

type RegisterRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=50"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,phone10"`
	LicenseNumber *string `json:"licenseNumber,omitempty" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
