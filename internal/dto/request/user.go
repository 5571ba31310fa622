package request

type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,phone10"`
	LicenseNumber *string `json:"licenseNumber,omitempty" validate:"omitempty,max=50"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
