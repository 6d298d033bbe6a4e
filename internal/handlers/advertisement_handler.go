package handlers

import (
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdvertisementHandler struct {
	adService *services.AdvertisementService
}

func NewAdvertisementHandler(adService *services.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{adService: adService}
}

func (h *AdvertisementHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.adService.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cfg)
}

// Save handles PUT /admin/advertisement as multipart/form-data with an
// optional "image" file.
func (h *AdvertisementHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveAdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var image *services.EvidenceUpload
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return respond(c, fiber.StatusBadRequest, "Unreadable image file")
		}
		defer f.Close()
		image = &services.EvidenceUpload{
			Name:     fh.Filename,
			MimeType: fh.Header.Get(fiber.HeaderContentType),
			Size:     fh.Size,
			Content:  f,
		}
	}

	cfg, err := h.adService.Save(c.UserContext(), identity.FromCtx(c), &req, image)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cfg)
}
