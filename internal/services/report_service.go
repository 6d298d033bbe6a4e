package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/policy"
	"github.com/fardinbaf/scamguard-backend/internal/storage"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/google/uuid"
)

// MaxEvidenceFiles is the per-report cap on evidence uploads.
const MaxEvidenceFiles = 5

var ErrTooManyFiles = fmt.Errorf("%w: at most %d evidence files", policy.ErrValidation, MaxEvidenceFiles)

// EvidenceUpload is an incoming evidence file.
type EvidenceUpload struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// ReportService owns the report lifecycle, comments, and search. Every
// operation runs its inputs through the access policy before touching the
// store; the store never sees a filter the policy did not produce.
type ReportService struct {
	reports  store.ReportStore
	comments store.CommentStore
	blobs    storage.BlobStore
}

func NewReportService(reports store.ReportStore, comments store.CommentStore, blobs storage.BlobStore) *ReportService {
	return &ReportService{reports: reports, comments: comments, blobs: blobs}
}

// Create files a new report with up to MaxEvidenceFiles evidence blobs. The
// blobs are uploaded first, then the report and evidence metadata are
// inserted in one transaction. If the insert fails the uploaded blobs are
// left in place and logged; a blob without a metadata row is inert and gets
// picked up by the orphan sweep.
func (s *ReportService) Create(ctx context.Context, actor *identity.Identity, req *dto.CreateReportRequest, files []EvidenceUpload) (*models.Report, error) {
	if err := policy.CanCreateReport(actor); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	if len(files) > MaxEvidenceFiles {
		return nil, ErrTooManyFiles
	}

	report := &models.Report{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		TargetType:   req.TargetType,
		Category:     req.Category,
		Description:  strings.TrimSpace(req.Description),
		ContactInfo:  strings.TrimSpace(req.ContactInfo),
		Status:       models.StatusPending,
		ReportedByID: actor.ID,
	}

	evidence := make([]models.EvidenceFile, 0, len(files))
	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		blobPath := path.Join("evidence", report.ID.String(),
			uuid.NewString()+strings.ToLower(path.Ext(f.Name)))
		if err := s.blobs.Upload(blobPath, f.Content); err != nil {
			// Roll back blobs uploaded so far; the report row does not
			// exist yet.
			if rmErr := s.blobs.Remove(uploaded); rmErr != nil {
				slog.Error("failed to remove blobs after upload error",
					"error", rmErr, "paths", uploaded)
			}
			return nil, fmt.Errorf("upload evidence %q: %w", f.Name, err)
		}
		uploaded = append(uploaded, blobPath)
		evidence = append(evidence, models.EvidenceFile{
			ID:           uuid.New(),
			ReportID:     report.ID,
			FilePath:     blobPath,
			OriginalName: f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
		})
	}

	if err := s.reports.CreateReport(ctx, report, evidence); err != nil {
		slog.Warn("report insert failed after blob upload, blobs orphaned",
			"report_id", report.ID.String(), "blobs", uploaded, "error", err)
		return nil, fmt.Errorf("create report: %w", err)
	}

	report.EvidenceFiles = evidence
	report.ReporterIdentifier = actor.Identifier
	s.resolveEvidenceURLs(report)

	slog.Info("report created", "report_id", report.ID.String(),
		"category", report.Category, "evidence", len(evidence))
	return report, nil
}

// Search runs a filtered report query. The status filter always passes
// through policy narrowing; this is the only enforcement point, and the
// store receives nothing the policy did not allow.
func (s *ReportService) Search(ctx context.Context, actor *identity.Identity, filters *dto.ReportFilters) ([]models.Report, error) {
	statuses, denied, err := policy.NarrowStatus(actor, filters.Status)
	if err != nil {
		return nil, err
	}
	if denied {
		slog.Warn("non-admin status filter denied, narrowed to approved",
			"requested", filters.Status, "caller", callerLabel(actor))
	}

	effective := store.ReportFilter{
		Keyword:  strings.TrimSpace(filters.Keyword),
		Statuses: statuses,
	}
	// Sentinel values mean "no constraint" and never reach the store.
	if filters.TargetType != "" && filters.TargetType != dto.AllTypes {
		if !models.ValidTargetType(filters.TargetType) {
			return nil, policy.ErrValidation
		}
		effective.TargetType = filters.TargetType
	}
	if filters.Category != "" && filters.Category != dto.AllCategories {
		if !models.ValidCategory(filters.Category) {
			return nil, policy.ErrValidation
		}
		effective.Category = filters.Category
	}

	reports, err := s.reports.SearchReports(ctx, effective)
	if err != nil {
		return nil, fmt.Errorf("search reports: %w", err)
	}
	for i := range reports {
		s.resolveEvidenceURLs(&reports[i])
	}
	return reports, nil
}

// Get fetches a single report. Non-approved reports are hidden from
// non-admins as NotFound.
func (s *ReportService) Get(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*models.Report, error) {
	report, err := s.reports.ReportByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	if report == nil {
		return nil, policy.ErrNotFound
	}
	if err := policy.CanViewReport(actor, report.Status); err != nil {
		return nil, err
	}
	s.resolveEvidenceURLs(report)
	return report, nil
}

// SetStatus is the moderation transition. Any status can be revised to any
// other, so moderation mistakes are correctable. Setting the current status
// again is a no-op.
func (s *ReportService) SetStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, status string) (*models.Report, error) {
	if err := policy.CanModerate(actor); err != nil {
		return nil, err
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", policy.ErrValidation, status)
	}

	report, err := s.reports.ReportByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	if report == nil {
		return nil, policy.ErrNotFound
	}

	if report.Status != status {
		if err := s.reports.UpdateReportStatus(ctx, id, status); err != nil {
			return nil, fmt.Errorf("update report status: %w", err)
		}
		slog.Info("report status changed", "report_id", id.String(),
			"from", report.Status, "to", status, "admin", actor.Identifier)
		report.Status = status
	}

	s.resolveEvidenceURLs(report)
	return report, nil
}

// Delete removes a report, its comments and its evidence. The database rows
// go in one transaction; the evidence blobs are removed afterwards, and a
// failure there is logged rather than surfaced since the orphan sweep will
// flag leftovers.
func (s *ReportService) Delete(ctx context.Context, actor *identity.Identity, id uuid.UUID) error {
	if err := policy.CanModerate(actor); err != nil {
		return err
	}

	report, err := s.reports.ReportByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	if report == nil {
		return policy.ErrNotFound
	}

	if err := s.reports.DeleteReportCascade(ctx, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	paths := make([]string, len(report.EvidenceFiles))
	for i, f := range report.EvidenceFiles {
		paths[i] = f.FilePath
	}
	if err := s.blobs.Remove(paths); err != nil {
		slog.Error("failed to remove evidence blobs for deleted report",
			"report_id", id.String(), "error", err)
	}

	slog.Info("report deleted", "report_id", id.String(), "admin", actor.Identifier)
	return nil
}

// AddComment posts a comment on an approved report. IsAnonymous only hides
// the author from display; UserID always records the true author.
func (s *ReportService) AddComment(ctx context.Context, actor *identity.Identity, reportID uuid.UUID, req *dto.AddCommentRequest) (*models.Comment, error) {
	report, err := s.reports.ReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	if report == nil {
		return nil, policy.ErrNotFound
	}
	if err := policy.CanComment(actor, report.Status); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", policy.ErrValidation)
	}

	comment := &models.Comment{
		ID:          uuid.New(),
		ReportID:    reportID,
		UserID:      actor.ID,
		Text:        text,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if !comment.IsAnonymous {
		comment.UserIdentifier = actor.Identifier
	}
	return comment, nil
}

// Comments lists a report's comments, subject to the same visibility rule as
// the report itself. Anonymous comments have their author identifier
// stripped before leaving the service.
func (s *ReportService) Comments(ctx context.Context, actor *identity.Identity, reportID uuid.UUID) ([]models.Comment, error) {
	report, err := s.reports.ReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	if report == nil {
		return nil, policy.ErrNotFound
	}
	if err := policy.CanViewReport(actor, report.Status); err != nil {
		return nil, err
	}

	comments, err := s.comments.CommentsByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	for i := range comments {
		if comments[i].IsAnonymous {
			comments[i].UserIdentifier = ""
		}
	}
	return comments, nil
}

func (s *ReportService) resolveEvidenceURLs(r *models.Report) {
	for i := range r.EvidenceFiles {
		r.EvidenceFiles[i].PublicURL = s.blobs.PublicURL(r.EvidenceFiles[i].FilePath)
	}
}

func validateCreate(req *dto.CreateReportRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", policy.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", policy.ErrValidation)
	}
	if !models.ValidTargetType(req.TargetType) {
		return fmt.Errorf("%w: unknown target type %q", policy.ErrValidation, req.TargetType)
	}
	if !models.ValidCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", policy.ErrValidation, req.Category)
	}
	return nil
}

func callerLabel(actor *identity.Identity) string {
	if actor == nil {
		return "anonymous"
	}
	return actor.Identifier
}
