package controllers

import (
	"strconv"

	"fupa/dto"
	"fupa/models"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	announcements *services.AnnouncementService
}

func NewAnnouncementController(announcements *services.AnnouncementService) AnnouncementController {
	return AnnouncementController{announcements: announcements}
}

func (a AnnouncementController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := a.announcements.List(c.Request.Context(), limit)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, items)
}

func (a AnnouncementController) Create(c *gin.Context) {
	var input dto.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := a.announcements.Create(c.Request.Context(), models.Announcement{
		Date:        input.Date,
		Time:        input.Time,
		Description: input.Description,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, item)
}

func (a AnnouncementController) Delete(c *gin.Context) {
	if err := a.announcements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
