package controller

import (
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/service"
	internalWS "portfolio-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
	Live(ctx *fiber.Ctx) error
}

type dashboardController struct {
	dashboardService service.IDashboardService
	hub              *internalWS.Hub
	jwtSecret        string
	logger           logger.ILogger
}

// NewDashboardController accepts a nil hub; the live route then answers 503.
func NewDashboardController(dashboardService service.IDashboardService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) IDashboardController {
	return &dashboardController{
		dashboardService: dashboardService,
		hub:              hub,
		jwtSecret:        jwtSecret,
		logger:           log,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Post("login", serverutils.ErrorLabel("Failed to log in"), c.Login)

	protected := h.Group("", serverutils.NewJwtMiddleware(c.jwtSecret))
	protected.Get("stats", serverutils.ErrorLabel("Failed to load dashboard stats"), c.Stats)
	protected.Get("logs", serverutils.ErrorLabel("Failed to load logs"), c.Logs)
	protected.Get("live", c.Live)
}

func (c *dashboardController) Login(ctx *fiber.Ctx) error {
	var req dto.DashboardLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dashboardService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success login", res))
}

func (c *dashboardController) Stats(ctx *fiber.Ctx) error {
	res, err := c.dashboardService.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *dashboardController) Logs(ctx *fiber.Ctx) error {
	var req dto.DashboardLogsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid query")
	}

	res, err := c.dashboardService.GetLogs(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}

// Live upgrades to a websocket that streams every tracked event.
func (c *dashboardController) Live(ctx *fiber.Ctx) error {
	if c.hub == nil {
		return dto.ErrFeatureDisabled
	}
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	subject, _ := ctx.Locals(serverutils.DashboardSubjectLocalKey).(string)
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("DASHBOARD", "Live feed session started", map[string]interface{}{"subject": subject})
		internalWS.ServeWs(c.hub, conn, subject)
		c.logger.Info("DASHBOARD", "Live feed session ended", map[string]interface{}{"subject": subject})
	})(ctx)
}
