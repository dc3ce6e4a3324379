package controllers

import (
	"fupa/dto"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

const maxPhotoBytes = 8 << 20

type UploadController struct {
	media services.MediaStore
}

func NewUploadController(media services.MediaStore) UploadController {
	return UploadController{media: media}
}

// UploadPhoto stores the multipart "file" field and returns its url and public id.
func (u UploadController) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if file.Size > maxPhotoBytes {
		response.BadRequest(c, "file is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "could not open file")
		return
	}
	defer src.Close()

	ref, err := u.media.Upload(c.Request.Context(), src)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, dto.UploadResponse{URL: ref.URL, PublicID: ref.PublicID})
}
