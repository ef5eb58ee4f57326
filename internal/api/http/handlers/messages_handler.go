package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/helpdesk-service/internal/api/dto"
	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/service"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// MessagesHandler manages ticket thread endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Post POST /api/tickets/:id/messages. Accepts multipart form data with a
// "content" field and optional "files" parts, or a plain JSON body when no
// attachments are sent.
func (h *MessagesHandler) Post(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	content := ""
	var uploads []service.AttachmentUpload

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals := form.Value["content"]; len(vals) > 0 {
			content = vals[0]
		}
		for _, header := range form.File["files"] {
			file, err := header.Open()
			if err != nil {
				return apperrors.NewInternalError(err)
			}
			defer file.Close()
			uploads = append(uploads, service.AttachmentUpload{
				FileName: header.Filename,
				Size:     header.Size,
				Content:  file,
			})
		}
	} else {
		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		content = req.Content
	}

	msg, err := h.service.Post(c.UserContext(), principal.User, ticketID, content, uploads)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// List GET /api/tickets/:id/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	msgs, err := h.service.List(c.UserContext(), principal.User, ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DownloadAttachment GET /api/tickets/:id/messages/:messageID/attachments/:file.
func (h *MessagesHandler) DownloadAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	messageID, err := parseID(c, "messageID")
	if err != nil {
		return err
	}
	storedName := c.Params("file")

	rc, err := h.service.OpenAttachment(c.UserContext(), principal.User, ticketID, messageID, storedName)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+storedName+`"`)
	return c.SendStream(rc)
}
