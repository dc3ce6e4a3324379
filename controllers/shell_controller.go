package controllers

import (
	"net/http"

	"fupa/dto"
	"fupa/response"
	"fupa/services/shellcache"

	"github.com/gin-gonic/gin"
)

type ShellController struct {
	cache    *shellcache.Controller
	manifest shellcache.Manifest
}

func NewShellController(cache *shellcache.Controller, manifest shellcache.Manifest) ShellController {
	return ShellController{cache: cache, manifest: manifest}
}

// Install registers the configured manifest again. A failed install keeps the
// previous version serving.
func (s ShellController) Install(c *gin.Context) {
	w, err := s.cache.Register(c.Request.Context(), s.manifest)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Response{Code: 0, Mess: "Shell install failed: " + err.Error()})
		return
	}
	response.Success(c, statusOf(w))
}

func (s ShellController) Status(c *gin.Context) {
	w := s.cache.Active()
	if w == nil {
		response.NotFound(c)
		return
	}
	response.Success(c, statusOf(w))
}

func statusOf(w *shellcache.Worker) dto.ShellStatusResponse {
	m := w.Manifest()
	return dto.ShellStatusResponse{
		Bucket:  m.BucketName(),
		Version: m.Version,
		State:   w.State().String(),
	}
}
