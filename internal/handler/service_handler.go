package handler

import (
	"net/http"

	"rankboost/internal/repository"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the public service catalog.
type ServiceHandler struct {
	services *repository.ServiceRepository
}

func NewServiceHandler(services *repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{services: services}
}

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.services.ListActive(c.Query("game"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.services.GetByID(idParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": s})
}
