package response

import (
	"net/http"

	apperrors "fupa/errors"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope returned by every API endpoint
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	ErrorCode  string      `json:"errorCode,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success writes a 200 response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created writes a 201 response with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

// SuccessWithPagination writes a 200 response with data and paging info
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a 400 response with a custom code
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

// AppError maps an application error to its HTTP status and writes it.
// Errors that are not AppErrors become a 500.
func AppError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	c.JSON(statusFor(appErr.Code), Response{
		Code:      0,
		Mess:      appErr.Message,
		ErrorCode: string(appErr.Code),
	})
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken,
		apperrors.ErrCodeMissingToken, apperrors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case apperrors.ErrCodeUserNotFound, apperrors.ErrCodeRecordNotFound, apperrors.ErrCodeDBNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUserExists, apperrors.ErrCodeDBDuplicate:
		return http.StatusConflict
	case apperrors.ErrCodeDBError:
		return http.StatusInternalServerError
	case apperrors.ErrCodeUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// ServerError writes a 500 response
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized writes a 401 response
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthorized",
	})
}

// Forbidden writes a 403 response
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Forbidden",
	})
}

// NotFound writes a 404 response
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
	})
}

// BadRequest writes a 400 response with a message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict writes a 409 response
func Conflict(c *gin.Context) {
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: "Conflict",
	})
}
