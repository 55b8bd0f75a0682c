package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *handler) processPlanReq(c *gin.Context) (planReq, error) {
	var req planReq
	return req, bindOptionalJSON(c, &req)
}

func (h *handler) processScheduleReq(c *gin.Context) (scheduleReq, error) {
	var req scheduleReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processIngestReq(c *gin.Context) (ingestReq, error) {
	var req ingestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processListObligationsReq(c *gin.Context) (listObligationsReq, error) {
	var req listObligationsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processCompleteReq binds the optional body and the URI param.
func (h *handler) processCompleteReq(c *gin.Context) (completeReq, error) {
	var req completeReq
	if err := bindOptionalJSON(c, &req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errInvalidID
	}
	return req, nil
}

func (h *handler) processSnoozeReq(c *gin.Context) (snoozeReq, error) {
	var req snoozeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errInvalidID
	}
	return req, nil
}

func (h *handler) processUpdateBlockStatusReq(c *gin.Context) (updateBlockStatusReq, error) {
	var req updateBlockStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errInvalidID
	}
	return req, nil
}

// processUpsertCourseReq takes the ID from the URI when the route carries one.
func (h *handler) processUpsertCourseReq(c *gin.Context) (upsertCourseReq, error) {
	var req upsertCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	return req, nil
}

func (h *handler) processListConflictsReq(c *gin.Context) (listConflictsReq, error) {
	var req listConflictsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processResolveReq(c *gin.Context) (resolveReq, error) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errInvalidID
	}
	return req, nil
}

func (h *handler) processLogSessionReq(c *gin.Context) (logSessionReq, error) {
	var req logSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processUpdatePreferencesReq(c *gin.Context) (updatePreferencesReq, error) {
	var req updatePreferencesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
