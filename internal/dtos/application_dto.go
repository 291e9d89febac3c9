package dtos

// ApplyRequest names the worker for POST /jobs/:id/applications and
// POST /jobs/:id/recommendations.
type ApplyRequest struct {
	WorkerID string `json:"worker_id" binding:"required,uuid"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
