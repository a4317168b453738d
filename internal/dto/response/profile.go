package response

import "tic-marketplace/internal/data/entity"

type CompanyInfo struct {
	CompanyName        string `json:"companyName"`
	CompanyDescription string `json:"companyDescription"`
	CompanyLocation    string `json:"companyLocation"`
	CompanyPhone       string `json:"companyPhone"`
	CompanyPhoto       string `json:"companyPhoto"`
}

type ProfileResponse struct {
	UserID       string      `json:"user_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         string      `json:"role"`
	Phone        string      `json:"phone"`
	Description  string      `json:"description"`
	ProfilePhoto string      `json:"profile_photo"`
	CompanyInfo  CompanyInfo `json:"companyInfo"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ProfileToResponse joins the user with their company row; a missing company
// yields empty strings, matching what the frontend expects.
func ProfileToResponse(user *entity.User, company *entity.Company) *ProfileResponse {
	resp := &ProfileResponse{
		UserID:       user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		Phone:        deref(user.Phone),
		Description:  deref(user.Description),
		ProfilePhoto: deref(user.ProfilePhoto),
	}

	if company != nil {
		resp.CompanyInfo = CompanyInfo{
			CompanyName:        deref(company.Name),
			CompanyDescription: deref(company.Description),
			CompanyLocation:    deref(company.Location),
			CompanyPhone:       deref(company.Phone),
			CompanyPhoto:       deref(company.Photo),
		}
	}

	return resp
}
