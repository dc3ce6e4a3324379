package controllers

import (
	"strconv"

	"fupa/middleware"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// pageParams reads 0-based page and limit query parameters.
func pageParams(c *gin.Context, defLimit int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > 500 {
		limit = defLimit
	}
	return page, limit
}
