package handlers

import (
	"errors"
	"strconv"

	"rishta/internal/models"
	"rishta/internal/services/contact"
	"rishta/internal/services/proposal"
	"rishta/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProposalHandler struct {
	proposalService proposal.Service
	contactService  contact.Service
}

func NewProposalHandler(proposalService proposal.Service, contactService contact.Service) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		contactService:  contactService,
	}
}

type sendProposalInput struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// Send spends one proposal credit and creates a pending proposal towards
// the receiver. Quota and pair uniqueness are enforced in one database
// transaction, so concurrent sends cannot overspend or double up.
func (h *ProposalHandler) Send(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input sendProposalInput
	if err := c.BodyParser(&input); err != nil || input.ReceiverID == 0 {
		return utils.BadRequest(c, "receiver_id is required")
	}

	result, err := h.proposalService.Send(c.Context(), claims.UserID, input.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, proposal.ErrSelfProposal):
			return utils.BadRequest(c, "You cannot send a proposal to yourself")
		case errors.Is(err, proposal.ErrReceiverNotEligible):
			return utils.NotFound(c, "Profile not found")
		case errors.Is(err, proposal.ErrQuotaExhausted):
			return utils.PaymentRequired(c, "No active package")
		case errors.Is(err, proposal.ErrProposalExists):
			// Tell the client what already stands between this pair, so it
			// can render the right state instead of a dead-end error.
			resp := fiber.Map{"error": "A proposal already exists between you and this member"}
			if status, serr := h.proposalService.StatusForPair(c.Context(), claims.UserID, input.ReceiverID); serr == nil {
				resp["pair_status"] = status
			}
			return c.Status(fiber.StatusConflict).JSON(resp)
		default:
			return utils.InternalError(c, "Failed to send proposal")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"proposal":            result.Proposal,
		"proposals_remaining": result.Remaining,
	})
}

type respondInput struct {
	SenderID uint   `json:"sender_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=accept reject"`
}

// Respond lets the receiver accept or reject a pending proposal. Only the
// receiver may respond, and a resolved proposal stays resolved.
func (h *ProposalHandler) Respond(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input respondInput
	if err := c.BodyParser(&input); err != nil || input.SenderID == 0 {
		return utils.BadRequest(c, "sender_id is required")
	}
	if input.Action != "accept" && input.Action != "reject" {
		return utils.BadRequest(c, "action must be accept or reject")
	}

	p, err := h.proposalService.Respond(c.Context(), claims.UserID, input.SenderID, input.Action == "accept")
	if err != nil {
		switch {
		case errors.Is(err, proposal.ErrProposalNotFound):
			return utils.NotFound(c, "Proposal not found")
		case errors.Is(err, proposal.ErrNotReceiver):
			return utils.Forbidden(c, "Only the receiver can respond to this proposal")
		case errors.Is(err, proposal.ErrAlreadyResolved):
			return utils.Conflict(c, "This proposal has already been resolved")
		default:
			return utils.InternalError(c, "Failed to respond to proposal")
		}
	}
	return utils.Success(c, fiber.Map{"proposal": p})
}

func (h *ProposalHandler) List(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	proposals, err := h.proposalService.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load proposals")
	}
	return utils.Success(c, fiber.Map{"proposals": proposals})
}

// Status reports the proposal state between the caller and another member,
// so the client can render the right button on a directory card.
func (h *ProposalHandler) Status(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	otherID, err := strconv.ParseUint(c.Params("userID"), 10, 32)
	if err != nil || otherID == 0 {
		return utils.BadRequest(c, "Invalid user id")
	}

	status, err := h.proposalService.StatusForPair(c.Context(), claims.UserID, uint(otherID))
	if err != nil {
		return utils.InternalError(c, "Failed to load proposal status")
	}
	return utils.Success(c, status)
}

// Contact reveals the other member's phone and WhatsApp, but only when an
// accepted proposal links the two. The check runs against the database on
// every call; acceptance revealed yesterday means nothing if the member
// was blocked overnight.
func (h *ProposalHandler) Contact(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	targetID, err := strconv.ParseUint(c.Params("userID"), 10, 32)
	if err != nil || targetID == 0 {
		return utils.BadRequest(c, "Invalid user id")
	}

	info, err := h.contactService.ContactIfAccepted(c.Context(), claims.UserID, uint(targetID))
	if err != nil {
		if errors.Is(err, contact.ErrNotDisclosed) {
			return utils.Forbidden(c, "Contact details are only shared after an accepted proposal")
		}
		return utils.InternalError(c, "Failed to load contact details")
	}
	return utils.Success(c, info)
}
