package controllers

import (
	"fupa/dto"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{users: users}
}

func (u UserController) GetProfile(c *gin.Context) {
	user, err := u.users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

func (u UserController) UpdateProfile(c *gin.Context) {
	var input dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := u.users.UpdateProfile(c.Request.Context(), currentUserID(c), services.ProfileUpdate{
		Name:     input.Name,
		Address:  input.Address,
		PhotoURL: input.PhotoURL,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, toUserResponse(*user))
}

func (u UserController) ListEmployees(c *gin.Context) {
	page, limit := pageParams(c, 20)
	users, total, err := u.users.ListEmployees(c.Request.Context(), page, limit)
	if err != nil {
		response.AppError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, usr := range users {
		out = append(out, toUserResponse(usr))
	}
	response.SuccessWithPagination(c, out, page, limit, int(total))
}

func (u UserController) SearchEmployees(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "q is required")
		return
	}
	_, limit := pageParams(c, 10)

	users, err := u.users.AllEmployees(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	matches := services.SearchEmployees(users, q, limit)
	out := make([]dto.UserResponse, 0, len(matches))
	for _, usr := range matches {
		out = append(out, toUserResponse(usr))
	}
	response.Success(c, out)
}
