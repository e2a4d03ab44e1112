package controller

import (
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Track(ctx *fiber.Ctx) error
}

type eventController struct {
	eventService service.IEventService
}

func NewEventController(eventService service.IEventService) IEventController {
	return &eventController{
		eventService: eventService,
	}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	r.Post("/events", serverutils.ErrorLabel("Failed to track event"), c.Track)
}

func (c *eventController) Track(ctx *fiber.Ctx) error {
	var req dto.TrackEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.eventService.TrackEvent(ctx.UserContext(), serverutils.VisitorID(ctx), ctx.Get(fiber.HeaderReferer), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
