package dto

type OverrideInput struct {
	Mode        string `json:"mode" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Description string `json:"description"`
}

type AnnouncementInput struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type NotificationInput struct {
	UID     string `json:"uid" binding:"required"`
	Title   string `json:"title"`
	Message string `json:"message" binding:"required"`
}

type ShellStatusResponse struct {
	Bucket  string `json:"bucket"`
	Version string `json:"version"`
	State   string `json:"state"`
}
