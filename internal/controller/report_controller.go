package controller

import (
	"scouting-agent-be/internal/pkg/serverutils"
	"scouting-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	JobStatus(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("jobs/:job_id", c.JobStatus)
}

func (c *reportController) JobStatus(ctx *fiber.Ctx) error {
	jobId, err := uuid.Parse(ctx.Params("job_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job id")
	}

	res, err := c.reportService.GetJob(ctx.Context(), jobId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "render job not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Render job status", res))
}
