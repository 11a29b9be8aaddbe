package staff

import (
	"errors"
	"io"
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("staff.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("staff request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("staff request failed", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Debug("staff request validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) Add(c *gin.Context) {
	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Staff added successfully", resp)
}

func (h *Handler) Get(c *gin.Context) {
	staffID := c.Param("staffID")
	h.logger.Debug("http get staff", zap.String("staff_id", staffID))

	resp, err := h.service.GetByStaffID(c.Request.Context(), staffID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Staff retrieved successfully", resp)
}

func (h *Handler) Edit(c *gin.Context) {
	staffID := c.Param("staffID")
	h.logger.Debug("http edit staff", zap.String("staff_id", staffID))

	var req EditStaffRequest
	// An empty body is a valid edit that changes nothing.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeBindError(c, err)
		return
	}

	if err := h.service.Edit(c.Request.Context(), staffID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Staff record updated successfully", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	staffID := c.Param("staffID")
	h.logger.Debug("http delete staff", zap.String("staff_id", staffID))

	if err := h.service.Delete(c.Request.Context(), staffID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Staff record deleted successfully", nil)
}
