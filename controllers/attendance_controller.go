package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"fupa/constants"
	"fupa/dto"
	"fupa/models"
	"fupa/response"
	"fupa/services"
	"fupa/services/export"
	"fupa/validator"

	"github.com/gin-gonic/gin"
)

type profileReader interface {
	GetProfile(ctx context.Context, uid string) (*models.User, error)
}

type AttendanceController struct {
	attendance *services.AttendanceService
	profiles   profileReader
}

func NewAttendanceController(attendance *services.AttendanceService, profiles profileReader) AttendanceController {
	return AttendanceController{attendance: attendance, profiles: profiles}
}

// Submit records a clock-in or clock-out for the caller.
func (a AttendanceController) Submit(c *gin.Context) {
	var input dto.SubmitAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := a.profiles.GetProfile(ctx, currentUserID(c))
	if err != nil {
		response.AppError(c, err)
		return
	}

	submission := services.SubmitAttendance{
		UID:           user.ID,
		Name:          user.Name,
		Kind:          input.Kind,
		PhotoURL:      input.PhotoURL,
		PhotoPublicID: input.PhotoPublicID,
		ClientTime:    input.ClientTime,
	}
	if input.Coordinates != nil {
		submission.Coordinates = &models.Coordinates{
			Latitude:  input.Coordinates.Latitude,
			Longitude: input.Coordinates.Longitude,
		}
	}

	rec, err := a.attendance.SaveAttendanceUnique(ctx, submission)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, rec)
}

func (a AttendanceController) Mine(c *gin.Context) {
	page, limit := pageParams(c, 31)
	records, total, err := a.attendance.List(c.Request.Context(), services.AttendanceFilter{
		UID:   currentUserID(c),
		From:  c.Query("from"),
		To:    c.Query("to"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.SuccessWithPagination(c, records, page, limit, int(total))
}

// Evaluate previews the status a submission would get right now.
func (a AttendanceController) Evaluate(c *gin.Context) {
	kind := c.DefaultQuery("kind", constants.KindIn)
	date, eval := a.attendance.Preview(kind)
	response.Success(c, dto.EvaluationResponse{
		Date:   date,
		Kind:   kind,
		Status: eval.Status,
		Reason: eval.Reason,
	})
}

func (a AttendanceController) AdminList(c *gin.Context) {
	var q dto.AttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, limit := pageParams(c, 50)
	f := filterFromQuery(q)
	f.Page, f.Limit = page, limit

	records, total, err := a.attendance.List(c.Request.Context(), f)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.SuccessWithPagination(c, records, page, limit, int(total))
}

func (a AttendanceController) Delete(c *gin.Context) {
	if err := a.attendance.DeleteAttendanceEntry(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

func (a AttendanceController) SetNote(c *gin.Context) {
	var input dto.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := a.attendance.SetNote(c.Request.Context(), c.Param("id"), input.Note); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id"), "note": input.Note})
}

// Export downloads the filtered records as CSV, or XLSX with format=xlsx.
func (a AttendanceController) Export(c *gin.Context) {
	var q dto.AttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	for field, v := range map[string]string{"date": q.Date, "from": q.From, "to": q.To} {
		if v == "" {
			continue
		}
		if err := validator.ValidateDate(field, v); err != nil {
			response.AppError(c, err)
			return
		}
	}

	records, _, err := a.attendance.List(c.Request.Context(), filterFromQuery(q))
	if err != nil {
		response.AppError(c, err)
		return
	}
	rows := export.AttendanceRows(records)

	var (
		buf         bytes.Buffer
		contentType string
		ext         string
	)
	if c.Query("format") == "xlsx" {
		err = export.WriteXLSX(&buf, "Attendance", rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	} else {
		err = export.WriteCSV(&buf, rows)
		contentType = "text/csv; charset=utf-8"
		ext = "csv"
	}
	if err != nil {
		response.AppError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.%s", a.attendance.Today(), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func filterFromQuery(q dto.AttendanceQuery) services.AttendanceFilter {
	return services.AttendanceFilter{
		UID:    q.UID,
		Date:   q.Date,
		From:   q.From,
		To:     q.To,
		Kind:   q.Kind,
		Status: q.Status,
	}
}
