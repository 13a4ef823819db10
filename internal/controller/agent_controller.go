package controller

import (
	"bufio"
	"context"
	"time"

	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/pkg/serverutils"
	"scouting-agent-be/internal/service"
	"scouting-agent-be/pkg/agent/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
}

func NewAgentController(agentService service.IAgentService) IAgentController {
	return &agentController{
		agentService: agentService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
	h.Get("history/:session_id", c.History)
}

// Chat streams NDJSON: one line per node execution, terminated by a final
// response, an interrupt sentinel or an error sentinel.
func (c *agentController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/x-ndjson")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")

	// The request context dies with the handler, so the stream writer runs
	// on its own deadline.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		emitter := stream.NewNDJSON(w)
		_ = c.agentService.StreamTurn(streamCtx, &req, emitter)
	}))

	return nil
}

func (c *agentController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.agentService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}
