package handlers

import (
	"errors"

	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/services/profile"
	"rishta/internal/services/storage"
	"rishta/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService profile.Service
	storageService storage.Service
}

func NewProfileHandler(profileService profile.Service, storageService storage.Service) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		storageService: storageService,
	}
}

// GetMyProfile returns the caller's own profile, contact fields included.
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	p, err := h.profileService.GetByUserID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to load profile")
	}

	// The owner sees their own contact details.
	return utils.Success(c, fiber.Map{
		"profile":  p,
		"phone":    p.Phone,
		"whatsapp": p.Whatsapp,
	})
}

func (h *ProfileHandler) UpdateMyProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input profile.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	p, err := h.profileService.Update(c.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to update profile")
	}
	return utils.Success(c, fiber.Map{"profile": p})
}

// documentCategories maps the document kind in the URL to the storage
// bucket prefix it lands in.
var documentCategories = map[string]string{
	profile.DocumentProfilePicture: storage.CategoryProfilePictures,
	profile.DocumentIDDocument:     storage.CategoryIDDocuments,
	profile.DocumentSelfie:         storage.CategorySelfies,
}

// UploadDocument accepts a multipart "file" field for one of the known
// document kinds, pushes it to object storage and records the URL on the
// profile. Uploading a new ID document or selfie drops the verified flag
// until an admin reviews it again.
func (h *ProfileHandler) UploadDocument(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	kind := c.Params("kind")
	category, ok := documentCategories[kind]
	if !ok {
		return utils.BadRequest(c, "Unknown document kind")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}

	key, err := h.storageService.Upload(category, claims.UserID, fh)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return utils.BadRequest(c, "File exceeds the 5 MB limit")
		case errors.Is(err, storage.ErrUnsupportedType):
			return utils.BadRequest(c, "Unsupported file type")
		default:
			return utils.InternalError(c, "Upload failed")
		}
	}

	p, err := h.profileService.AttachDocument(c.Context(), claims.UserID, kind, h.storageService.PublicURL(key))
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to record document")
	}

	return utils.Success(c, fiber.Map{"profile": p})
}
