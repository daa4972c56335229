package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/martapp/backend/internal/dto"
	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/services"
)

type FavoritesHandler struct {
	favoritesService *services.FavoritesService
}

func NewFavoritesHandler(favoritesService *services.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"favorites": h.favoritesService.Favorites()})
}

func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	var req dto.ToggleFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	favorite, err := h.favoritesService.Toggle(models.FavoriteProduct{
		ID:    req.ProductID,
		Title: req.Title,
		Image: req.Image,
		Price: req.Price,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to toggle favorite",
		})
	}

	return c.JSON(dto.ToggleFavoriteResponse{ProductID: req.ProductID, IsFavorite: favorite})
}

func (h *FavoritesHandler) IsFavorite(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	favorite, err := h.favoritesService.IsFavorite(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check favorite",
		})
	}

	return c.JSON(dto.ToggleFavoriteResponse{ProductID: productID, IsFavorite: favorite})
}
