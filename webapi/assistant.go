package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankline/bankline/infra/provider/assistant"
)

// AssistantRoutes registers the financial assistant endpoints.
func AssistantRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/assistant/greeting", GetAssistantGreeting(deps))
	app.Post("/api/assistant/messages", AskAssistant(deps))
}

// GetAssistantGreeting returns the canned opening line shown before the
// user has sent anything.
func GetAssistantGreeting(Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Assistant greeting",
			Data:    fiber.Map{"text": assistant.Greeting},
		})
	}
}

type assistantRequest struct {
	Message string `json:"message" validate:"required"`
}

// AskAssistant sends the user's message to the responder and returns
// the assistant slice snapshot.
func AskAssistant(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistantRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid assistant payload", err.Error())
		}
		if err := deps.Validate.Struct(req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Invalid assistant payload", err.Error())
		}
		_ = deps.Store.AskAssistant(c.Context(), req.Message)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Assistant slice",
			Data:    deps.Store.Assistant(),
		})
	}
}
