package http

import (
	"errors"
	"net/http"
	"strconv"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/service"
	"banking-chatbot/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupJobs(base *echo.Group) {
	v1 := base.Group("/v1/jobs")
	{
		v1.GET("", h.ListJobs)
		v1.POST("/run", h.RunJobs)
		v1.POST("/run/:job_id", h.RunJob)
	}
}

// ListJobs returns the maintenance jobs with their schedules. Inactive jobs
// are included only with ?is_active=false.
func (h *HttpAPIHandler) ListJobs(c echo.Context) error {
	param := model.GetJobParam{IsActive: utils.ToPointer(true)}
	if raw := c.QueryParam("is_active"); raw != "" {
		isActive, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("is_active must be a boolean"))
		}
		param.IsActive = utils.ToPointer(isActive)
	}

	jobs, err := h.service.SchedulerService.GetJobSchedule(c.Request().Context(), param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, jobs)
}

// RunJobs dispatches every due background job immediately.
func (h *HttpAPIHandler) RunJobs(c echo.Context) error {
	response := dto.NewBaseResponse(http.StatusOK, "Start running jobs", nil)
	if err := h.service.SchedulerService.Execute(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}

// RunJob triggers a single job immediately, outside its schedule.
func (h *HttpAPIHandler) RunJob(c echo.Context) error {
	jobID, err := strconv.ParseUint(c.Param("job_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("job_id must be a positive integer"))
	}

	if err := h.service.SchedulerService.RunJobTask(c.Request().Context(), uint(jobID)); err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Job not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "Job dispatched", nil))
}
