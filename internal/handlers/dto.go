package handlers

// somente os campos do contrato; chaves desconhecidas são rejeitadas

type ApplyDTO struct {
	JobID string `json:"jobId"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostJobDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Salary      int    `json:"salary"`
	Level       string `json:"level"`
	Category    string `json:"category"`
}

type ChangeStatusDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ChangeVisibilityDTO struct {
	ID string `json:"id"`
}
