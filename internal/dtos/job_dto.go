package dtos

type JobCreationRequest struct {
	EmployerID string `json:"employer_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required"`
	JobType    string `json:"job_type" binding:"required"`
	Address    string `json:"address" binding:"required"`

	// Optional Fields
	HourlyWage  *int   `json:"hourly_wage" binding:"omitempty,min=0"`
	WorkHours   string `json:"work_hours"`
	WorkDays    string `json:"work_days"`
	Description string `json:"description"`
	Headcount   int    `json:"headcount" binding:"omitempty,min=1"` // Defaults to 1
}

type JobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}

type JobCategoryRequest struct {
	JobType string `json:"job_type" binding:"required"`
}
