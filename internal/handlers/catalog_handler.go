package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/martapp/backend/internal/dto"
	"github.com/martapp/backend/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts returns the filtered view. Query params steer the flow:
// ?search= recomputes the client-side filter, ?category= selects a category
// ("All" lifts the restriction), ?refresh=true forces a remote fetch.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	force := c.Query("refresh") == "true"
	h.catalogService.FetchProducts(c.Context(), force)

	if search := c.Query("search"); search != "" || c.Context().QueryArgs().Has("search") {
		h.catalogService.SetSearchQuery(search)
	}
	if category := c.Query("category"); category != "" {
		h.catalogService.SelectCategory(c.Context(), category)
	}

	return c.JSON(fiber.Map{
		"products": h.catalogService.Filtered(),
		"loading":  h.catalogService.Loading(),
	})
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	product, err := h.catalogService.GetProduct(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Product not found",
		})
	}
	return c.JSON(product)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	force := c.Query("refresh") == "true"
	h.catalogService.FetchCategories(c.Context(), force)
	return c.JSON(fiber.Map{"categories": h.catalogService.Categories()})
}
