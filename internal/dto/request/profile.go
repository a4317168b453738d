package request

// UpdateProfileRequest carries the user's own fields plus the optional
// company block. Nil pointers leave the stored value untouched.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Description  *string `json:"description,omitempty"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`

	CompanyName        *string `json:"companyName,omitempty"`
	CompanyDescription *string `json:"companyDescription,omitempty"`
	CompanyLocation    *string `json:"companyLocation,omitempty"`
	CompanyPhone       *string `json:"companyPhone,omitempty"`
	CompanyPhoto       *string `json:"companyPhoto,omitempty"`
}
