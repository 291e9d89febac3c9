package dtos

type BroadcastRequest struct {
	WorkerIDs    []string `json:"worker_ids" binding:"required,min=1,dive,uuid"`
	JobID        string   `json:"job_id" binding:"omitempty,uuid"`
	TemplateCode string   `json:"template_code" binding:"required"`
	Message      string   `json:"message"` // Used only with the "custom" template
}
