package dtos

type EmployerSignupRequest struct {
	BusinessNumber string `json:"business_number" binding:"required,bizno_digits"`
	CompanyName    string `json:"company_name" binding:"required"`
	ContactName    string `json:"contact_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`

	CEOName         string `json:"ceo_name"`
	Email           string `json:"email" binding:"omitempty,email"`
	BusinessAddress string `json:"business_address"`
}

// BusinessNumberRequest checks a number before the signup form is submitted.
type BusinessNumberRequest struct {
	BusinessNumber string `json:"business_number" binding:"required"`
}

type EmployerApprovalRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}
