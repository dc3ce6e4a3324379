package dto

type CoordinatesInput struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// SubmitAttendanceInput is the body of POST /attendance. The photo is
// uploaded first through /img/upload.
type SubmitAttendanceInput struct {
	Kind          string            `json:"kind" binding:"required,oneof=in out"`
	Coordinates   *CoordinatesInput `json:"coordinates"`
	PhotoURL      string            `json:"photoUrl" binding:"required"`
	PhotoPublicID string            `json:"photoPublicId"`
	ClientTime    string            `json:"clientTime"`
}

type EvaluationResponse struct {
	Date   string `json:"date"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type AttendanceQuery struct {
	UID    string `form:"uid"`
	Date   string `form:"date"`
	From   string `form:"from"`
	To     string `form:"to"`
	Kind   string `form:"kind" binding:"omitempty,oneof=in out"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type NoteInput struct {
	Note string `json:"note"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
