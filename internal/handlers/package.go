package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"rishta/internal/models"
	"rishta/internal/services/payment"
	"rishta/internal/services/quota"
	"rishta/internal/services/storage"
	"rishta/internal/utils"
	"rishta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PackageHandler struct {
	quotaService   quota.Service
	paymentService payment.Service
	storageService storage.Service
}

func NewPackageHandler(quotaService quota.Service, paymentService payment.Service, storageService storage.Service) *PackageHandler {
	return &PackageHandler{
		quotaService:   quotaService,
		paymentService: paymentService,
		storageService: storageService,
	}
}

// Catalog lists the packages currently on sale. Public: pricing is
// visible before signup.
func (h *PackageHandler) Catalog(c *fiber.Ctx) error {
	packages, err := h.quotaService.Catalog(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load packages")
	}
	return utils.Success(c, fiber.Map{"packages": packages})
}

// MyPackages returns the caller's purchase history plus whichever
// purchase their next proposal would draw from.
func (h *PackageHandler) MyPackages(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	purchases, err := h.quotaService.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load purchases")
	}

	resp := fiber.Map{"purchases": purchases}
	if active, err := h.quotaService.ActivePackage(c.Context(), claims.UserID); err == nil {
		resp["active"] = active
		resp["proposals_remaining"] = active.ProposalsRemaining
	}
	return utils.Success(c, resp)
}

// PurchaseBankTransfer records a purchase paid by bank transfer. The
// caller uploads the deposit slip as a multipart "proof" file; the
// purchase stays pending until an admin reviews it.
func (h *PackageHandler) PurchaseBankTransfer(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	packageID, err := strconv.ParseUint(c.FormValue("package_id"), 10, 32)
	if err != nil || packageID == 0 {
		return utils.BadRequest(c, "package_id is required")
	}

	fh, err := c.FormFile("proof")
	if err != nil {
		return utils.BadRequest(c, "A payment proof file is required")
	}

	key, err := h.storageService.Upload(storage.CategoryPaymentProofs, claims.UserID, fh)
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

	up, err := h.quotaService.RecordPurchase(c.Context(), claims.UserID, uint(packageID),
		h.storageService.PublicURL(key), models.PaymentMethodBankTransfer, false)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrPackageNotFound):
			return utils.NotFound(c, "Package not found")
		case errors.Is(err, quota.ErrPackageInactive):
			return utils.BadRequest(c, "This package is not available for purchase")
		default:
			return utils.InternalError(c, "Failed to record purchase")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Purchase recorded. It will activate once an admin verifies the payment.",
		"purchase": up,
	})
}

type cardPurchaseInput struct {
	PackageID uint              `json:"package_id" validate:"required"`
	Card      payment.CardInput `json:"card" validate:"required"`
}

// PurchaseCard charges the card for the package price and activates the
// purchase immediately on success.
func (h *PackageHandler) PurchaseCard(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input cardPurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return utils.BadRequest(c, validation.Message(err))
	}

	pkg, err := h.quotaService.GetPackage(c.Context(), input.PackageID)
	if err != nil {
		if errors.Is(err, quota.ErrPackageNotFound) {
			return utils.NotFound(c, "Package not found")
		}
		return utils.InternalError(c, "Failed to load package")
	}
	if !pkg.IsActive {
		return utils.BadRequest(c, "This package is not available for purchase")
	}

	chargeID, err := h.paymentService.ChargeCard(input.Card, pkg.PricePKR,
		fmt.Sprintf("%s package for user %d", pkg.Name, claims.UserID))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidCard) {
			return utils.BadRequest(c, "Invalid card details")
		}
		return utils.BadRequest(c, "Card payment failed")
	}

	up, err := h.quotaService.RecordPurchase(c.Context(), claims.UserID, pkg.ID,
		chargeID, models.PaymentMethodCard, true)
	if err != nil {
		// The card was charged but the ledger write failed; surface it
		// loudly so support can reconcile against the charge id.
		return utils.InternalError(c, "Payment succeeded but activation failed, contact support with charge "+chargeID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Package activated",
		"purchase": up,
	})
}
