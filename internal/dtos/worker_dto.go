package dtos

type WorkerRegistrationRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`

	Address        string   `json:"address"`
	BirthYear      *int     `json:"birth_year"`
	JobTypes       []string `json:"job_types"`
	AvailableTimes []string `json:"available_times"`
}
