package handlers

import (
	"errors"
	"strconv"

	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/services/moderation"
	"rishta/internal/services/quota"
	"rishta/internal/utils"
	"rishta/internal/utils/pagination"
	"rishta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler backs the moderation panel. Every route it serves sits
// behind the admin middleware, which checks the role against the
// database rather than trusting the token.
type AdminHandler struct {
	moderationService moderation.Service
	quotaService      quota.Service
	userRepo          repositories.UserRepository
	profileRepo       repositories.ProfileRepository
	packageRepo       repositories.PackageRepository
}

func NewAdminHandler(
	moderationService moderation.Service,
	quotaService quota.Service,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	packageRepo repositories.PackageRepository,
) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		quotaService:      quotaService,
		userRepo:          userRepo,
		profileRepo:       profileRepo,
		packageRepo:       packageRepo,
	}
}

func (h *AdminHandler) GetUsersPaginated(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	users, total, err := h.userRepo.List(p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch users")
	}
	p.Total = total
	return utils.Success(c, pagination.Response(p, users))
}

// GetProfilesPaginated returns full profiles, contact fields and
// document URLs included, for review.
func (h *AdminHandler) GetProfilesPaginated(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	profiles, total, err := h.profileRepo.ListAll(p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch profiles")
	}
	p.Total = total
	return utils.Success(c, pagination.Response(p, profiles))
}

type moderateInput struct {
	Action string `json:"action" validate:"required,oneof=approve block unblock verify unverify feature unfeature"`
}

// ModerateProfile flips one moderation flag on a profile. Blocking hides
// the member from the directory and cuts off contact disclosure, but
// leaves existing proposal rows alone.
func (h *AdminHandler) ModerateProfile(c *fiber.Ctx) error {
	profileID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || profileID == 0 {
		return utils.BadRequest(c, "Invalid profile id")
	}

	var input moderateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return utils.BadRequest(c, validation.Message(err))
	}

	ctx := c.Context()
	id := uint(profileID)
	switch input.Action {
	case "approve":
		err = h.moderationService.ApproveProfile(ctx, id)
	case "block":
		err = h.moderationService.SetBlocked(ctx, id, true)
	case "unblock":
		err = h.moderationService.SetBlocked(ctx, id, false)
	case "verify":
		err = h.moderationService.SetVerified(ctx, id, true)
	case "unverify":
		err = h.moderationService.SetVerified(ctx, id, false)
	case "feature":
		err = h.moderationService.SetFeatured(ctx, id, true)
	case "unfeature":
		err = h.moderationService.SetFeatured(ctx, id, false)
	}
	if err != nil {
		if errors.Is(err, moderation.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to update profile")
	}
	return utils.Success(c, fiber.Map{"message": "Profile updated"})
}

func (h *AdminHandler) GetPendingPayments(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	purchases, total, err := h.quotaService.ListPending(c.Context(), p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch pending payments")
	}
	p.Total = total
	return utils.Success(c, pagination.Response(p, purchases))
}

type reviewPaymentInput struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// ReviewPayment settles a pending bank-transfer purchase. A purchase can
// be reviewed exactly once; racing reviews lose with a conflict.
func (h *AdminHandler) ReviewPayment(c *fiber.Ctx) error {
	purchaseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || purchaseID == 0 {
		return utils.BadRequest(c, "Invalid purchase id")
	}

	var input reviewPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return utils.BadRequest(c, validation.Message(err))
	}

	err = h.quotaService.ReviewPurchase(c.Context(), uint(purchaseID), input.Action == "approve")
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrPurchaseNotFound):
			return utils.NotFound(c, "Purchase not found")
		case errors.Is(err, quota.ErrAlreadyReviewed):
			return utils.Conflict(c, "This purchase has already been reviewed")
		default:
			return utils.InternalError(c, "Failed to review payment")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Payment " + input.Action + "d"})
}

func (h *AdminHandler) GetAllPackages(c *fiber.Ctx) error {
	packages, err := h.packageRepo.ListAllPackages()
	if err != nil {
		return utils.InternalError(c, "Failed to fetch packages")
	}
	return utils.Success(c, fiber.Map{"packages": packages})
}

type packageInput struct {
	Name           string `json:"name" validate:"required"`
	PricePKR       int64  `json:"price_pkr" validate:"required,gt=0"`
	ProposalsCount int    `json:"proposals_count" validate:"required,gt=0"`
	ValidityDays   int    `json:"validity_days" validate:"required,gt=0"`
	IsActive       *bool  `json:"is_active"`
}

func (h *AdminHandler) CreatePackage(c *fiber.Ctx) error {
	var input packageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return utils.BadRequest(c, validation.Message(err))
	}

	pkg := &models.Package{
		Name:           input.Name,
		PricePKR:       input.PricePKR,
		ProposalsCount: input.ProposalsCount,
		ValidityDays:   input.ValidityDays,
		IsActive:       true,
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if err := h.packageRepo.CreatePackage(pkg); err != nil {
		return utils.InternalError(c, "Failed to create package")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"package": pkg})
}

func (h *AdminHandler) UpdatePackage(c *fiber.Ctx) error {
	packageID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || packageID == 0 {
		return utils.BadRequest(c, "Invalid package id")
	}

	pkg, err := h.packageRepo.GetPackage(uint(packageID))
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return utils.NotFound(c, "Package not found")
		}
		return utils.InternalError(c, "Failed to load package")
	}

	var input packageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Name != "" {
		pkg.Name = input.Name
	}
	if input.PricePKR > 0 {
		pkg.PricePKR = input.PricePKR
	}
	if input.ProposalsCount > 0 {
		pkg.ProposalsCount = input.ProposalsCount
	}
	if input.ValidityDays > 0 {
		pkg.ValidityDays = input.ValidityDays
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}

	if err := h.packageRepo.UpdatePackage(pkg); err != nil {
		return utils.InternalError(c, "Failed to update package")
	}
	return utils.Success(c, fiber.Map{"package": pkg})
}
