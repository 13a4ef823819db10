package controller

import (
	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/pkg/serverutils"
	"scouting-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Players(ctx *fiber.Ctx) error
	PlayerDetail(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("players", c.Players)
	h.Get("player/:league/:id", c.PlayerDetail)
}

func (c *searchController) Players(ctx *fiber.Ctx) error {
	var req dto.SearchPlayersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	hits, err := c.searchService.SearchPlayers(ctx.Context(), req.Name, req.League)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	res := make([]dto.PlayerSearchHit, 0, len(hits))
	for _, h := range hits {
		res = append(res, dto.PlayerSearchHit{
			PlayerId: h.PlayerId,
			FullName: h.FullName,
			League:   h.League,
			Team:     h.Team,
			Position: h.Position,
			Score:    h.Score,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Player search results", res))
}

func (c *searchController) PlayerDetail(ctx *fiber.Ctx) error {
	league := ctx.Params("league")
	id := ctx.Params("id")

	detail, err := c.searchService.GetPlayerDetail(ctx.Context(), id, league)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Player detail", detail))
}
