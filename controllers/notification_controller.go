package controllers

import (
	"fupa/dto"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) NotificationController {
	return NotificationController{notifications: notifications}
}

func (n NotificationController) Mine(c *gin.Context) {
	items, err := n.notifications.ListMine(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, items)
}

func (n NotificationController) MarkRead(c *gin.Context) {
	if err := n.notifications.MarkRead(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id"), "read": true})
}

func (n NotificationController) Delete(c *gin.Context) {
	if err := n.notifications.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

// Push is the admin endpoint that notifies one user.
func (n NotificationController) Push(c *gin.Context) {
	var input dto.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := n.notifications.Push(c.Request.Context(), input.UID, input.Title, input.Message)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, item)
}
