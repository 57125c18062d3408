package handlers

import (
	"rishta/internal/models"
	"rishta/internal/services/directory"
	"rishta/internal/utils"
	"rishta/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type DirectoryHandler struct {
	directoryService directory.Service
}

func NewDirectoryHandler(directoryService directory.Service) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// Browse lists approved, non-blocked profiles for the signed-in member.
// Contact fields never appear here regardless of proposal state.
func (h *DirectoryHandler) Browse(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	profiles, total, err := h.directoryService.Browse(c.Context(), claims.UserID, p.Page, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to load directory")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, profiles))
}
