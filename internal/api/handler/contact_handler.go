package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/api/metrics"
	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// ContactHandler relays contact form submissions.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Message string `json:"message" validate:"required"`
}

// Send handles POST /v1/contact.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  contactRequest  true  "Message body"
// @Success      201
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/contact [post]
func (h *ContactHandler) Send(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err = h.service.Send(c.Request().Context(), domain.ContactMessage{
		Body:     req.Message,
		Username: sess.Username,
	})
	if err != nil {
		return err
	}

	metrics.ContactMessagesTotal.Inc()
	return c.NoContent(http.StatusCreated)
}
