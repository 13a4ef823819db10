package controller

import (
	"errors"

	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/pkg/serverutils"
	"scouting-agent-be/internal/service"
	"scouting-agent-be/pkg/statsdb"

	"github.com/gofiber/fiber/v2"
)

type IDataController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Schema(ctx *fiber.Ctx) error
}

type dataController struct {
	dataService service.IDataService
}

func NewDataController(dataService service.IDataService) IDataController {
	return &dataController{
		dataService: dataService,
	}
}

func (c *dataController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/data/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("query", c.Query)
	h.Get("schema/:league", c.Schema)
}

func (c *dataController) Query(ctx *fiber.Ctx) error {
	var req dto.ExplorerQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dataService.Query(ctx.Context(), &req)
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, statsdb.ErrQueryRejected) || errors.Is(err, statsdb.ErrUnknownDataset) {
			code = fiber.StatusBadRequest
		}
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Query executed", res))
}

func (c *dataController) Schema(ctx *fiber.Ctx) error {
	league := ctx.Params("league")

	res, err := c.dataService.Schema(ctx.Context(), league)
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, statsdb.ErrUnknownDataset) {
			code = fiber.StatusNotFound
		}
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("League schema", res))
}
