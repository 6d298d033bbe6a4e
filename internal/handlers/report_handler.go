package handlers

import (
	"io"

	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /reports. Anonymous callers are fine; the service narrows
// the status filter according to who is asking.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	var filters dto.ReportFilters
	if err := c.QueryParser(&filters); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	reports, err := h.reportService.Search(c.UserContext(), identity.FromCtx(c), &filters)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(reports)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	report, err := h.reportService.Get(c.UserContext(), identity.FromCtx(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(report)
}

// Create handles POST /reports as multipart/form-data: the report fields
// plus up to five files under the "evidence" field.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var files []services.EvidenceUpload
	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["evidence"] {
			f, err := fh.Open()
			if err != nil {
				closeAll()
				return respond(c, fiber.StatusBadRequest, "Unreadable evidence file")
			}
			opened = append(opened, f)
			files = append(files, services.EvidenceUpload{
				Name:     fh.Filename,
				MimeType: fh.Header.Get(fiber.HeaderContentType),
				Size:     fh.Size,
				Content:  f,
			})
		}
	}

	report, err := h.reportService.Create(c.UserContext(), identity.FromCtx(c), &req, files)
	closeAll()
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reportService.SetStatus(c.UserContext(), identity.FromCtx(c), id, req.Status)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(report)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	if err := h.reportService.Delete(c.UserContext(), identity.FromCtx(c), id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Report deleted"})
}

func (h *ReportHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	comments, err := h.reportService.Comments(c.UserContext(), identity.FromCtx(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(comments)
}

func (h *ReportHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	comment, err := h.reportService.AddComment(c.UserContext(), identity.FromCtx(c), id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
