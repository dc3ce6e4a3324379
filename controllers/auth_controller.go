package controllers

import (
	"fupa/dto"
	"fupa/models"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, dto.UserLoginResponse{Token: token, User: toUserResponse(*user)})
}

func (a AuthController) LoginWithGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.auth.LoginWithGoogle(c.Request.Context(), input.IDToken)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, dto.UserLoginResponse{Token: token, User: toUserResponse(*user)})
}

// CreateEmployee registers a new account. The admin's own token is untouched.
func (a AuthController) CreateEmployee(c *gin.Context) {
	var input dto.CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	uid, err := a.auth.CreateEmployee(c.Request.Context(), input.Email, input.Password, input.Role)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, dto.CreateEmployeeResponse{UID: uid})
}

func toUserResponse(u models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Address:  u.Address,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
}
