package controller

import (
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", serverutils.ErrorLabel("Failed to process chat message"), c.SendChat)

	h := r.Group("/chat/v1")
	h.Get("history", serverutils.ErrorLabel("Failed to load chat history"), c.GetChatHistory)
}

// SendChat answers with the bare chat payload, not the success envelope,
// because the widget reads answer and session_id at the top level.
func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.UserContext(), serverutils.VisitorID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatbotController) GetChatHistory(ctx *fiber.Ctx) error {
	var req dto.ChatHistoryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.GetChatHistory(ctx.UserContext(), serverutils.VisitorID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
