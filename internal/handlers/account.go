package handlers

import (
	"strconv"

	"corebank/internal/services/account"
	"corebank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	result, err := h.accountService.Open(c.Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AccountHandler) CloseAccount(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		AccountNumber string `json:"account_number"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.AccountNumber == "" {
		return utils.BadRequest(c, "account_number is required")
	}

	result, err := h.accountService.Close(c.Context(), claims.UserID, input.AccountNumber)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, result)
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.BadRequest(c, "invalid account id")
	}

	result, err := h.accountService.GetAccount(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, result)
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	summaries, err := h.accountService.ListAccounts(c.Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"accounts": summaries,
	})
}
