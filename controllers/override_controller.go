package controllers

import (
	"fupa/dto"
	"fupa/models"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

type OverrideController struct {
	overrides *services.OverrideService
}

func NewOverrideController(overrides *services.OverrideService) OverrideController {
	return OverrideController{overrides: overrides}
}

func (o OverrideController) List(c *gin.Context) {
	rules, err := o.overrides.List(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, rules)
}

// ForDate returns the override in force on :date, or null.
func (o OverrideController) ForDate(c *gin.Context) {
	rule, err := o.overrides.ForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"date": c.Param("date"), "override": rule})
}

func (o OverrideController) Create(c *gin.Context) {
	var input dto.OverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rule, err := o.overrides.Create(c.Request.Context(), models.OverrideRule{
		Mode:        input.Mode,
		Start:       input.Start,
		End:         input.End,
		Description: input.Description,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, rule)
}

func (o OverrideController) Delete(c *gin.Context) {
	if err := o.overrides.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
