package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/martapp/backend/internal/dto"
	"github.com/martapp/backend/internal/middleware"
	"github.com/martapp/backend/internal/services"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.cartService.Items()})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.cartService.AddToCart(req.Product, req.Quantity); err != nil {
		if errors.Is(err, services.ErrInvalidQuantity) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add to cart",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"items": h.cartService.Items()})
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.cartService.UpdateQuantity(productID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update cart item",
		})
	}

	return c.JSON(fiber.Map{"items": h.cartService.Items()})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	if err := h.cartService.Remove(productID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove cart item",
		})
	}

	return c.JSON(fiber.Map{"items": h.cartService.Items()})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cartService.Clear(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clear cart",
		})
	}
	return c.JSON(fiber.Map{"items": h.cartService.Items()})
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	// Detach from the request context so an impatient client cannot leave a
	// half-finished checkout behind.
	receipt, err := h.cartService.Checkout(context.Background(), userID)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Checkout failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

func (h *CartHandler) Receipts(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	receipts, err := h.cartService.Receipts(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list receipts",
		})
	}
	return c.JSON(fiber.Map{"receipts": receipts})
}
