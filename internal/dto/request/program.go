package request

type StartProgramRequest struct {
	Duration int    `json:"duration" validate:"required,gt=0"`
	Mode     string `json:"mode" validate:"required,max=50"`
}
