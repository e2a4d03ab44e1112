package controller

import (
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{
		preferenceService: preferenceService,
	}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences", serverutils.ErrorLabel("Failed to save preferences"))
	h.Post("", c.Save)
	h.Get("", c.Show)
}

func (c *preferenceController) Save(ctx *fiber.Ctx) error {
	var req dto.SavePreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.preferenceService.SavePreference(ctx.UserContext(), serverutils.VisitorID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save preferences", res))
}

// Show returns null data for visitors who have not onboarded.
func (c *preferenceController) Show(ctx *fiber.Ctx) error {
	res, err := c.preferenceService.GetPreference(ctx.UserContext(), serverutils.VisitorID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preferences", res))
}
