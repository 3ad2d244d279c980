package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"guest-recovery-portal/internal/config"
	"guest-recovery-portal/internal/excel"
	"guest-recovery-portal/internal/models"
	"guest-recovery-portal/internal/render"
	"guest-recovery-portal/internal/report"
)

// Handler serves the complaint upload and report endpoints.
type Handler struct {
	cfg      *config.Config
	renderer *render.Renderer
}

func NewHandler(cfg *config.Config, renderer *render.Renderer) *Handler {
	return &Handler{cfg: cfg, renderer: renderer}
}

// Upload accepts a multipart spreadsheet, parses it, and returns the
// extracted complaint records together with any per-row errors.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	if !h.allowedFile(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an Excel file."})
		return
	}

	if fileHeader.Size > h.cfg.Upload.MaxFileSizeBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File too large. Maximum size is %dMB.", h.cfg.Upload.MaxFileSizeMB)})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	complaints, parseErrs := excel.ParseBytes(data)
	if len(complaints) == 0 {
		log.Warn().Str("filename", fileHeader.Filename).Strs("details", parseErrs).Msg("Rejected workbook with no usable rows")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to parse Excel file",
			"details": parseErrs,
		})
		return
	}

	if parseErrs == nil {
		parseErrs = []string{}
	}

	log.Info().
		Str("filename", fileHeader.Filename).
		Int("complaints", len(complaints)).
		Int("row_errors", len(parseErrs)).
		Msg("Parsed complaint workbook")

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"complaints": complaints,
		"count":      len(complaints),
		"errors":     parseErrs,
	})
}

func (h *Handler) allowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range h.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// complaintPayload is the wire form of a complaint in report requests.
// Dates arrive as ISO strings so the browser can round-trip what the
// upload endpoint returned.
type complaintPayload struct {
	DateTime         string  `json:"dateTime"`
	GuestName        string  `json:"guestName"`
	Room             string  `json:"room"`
	ConfirmationNo   *string `json:"confirmationNo"`
	MembershipTier   *string `json:"membershipTier"`
	ProblemArea      string  `json:"problemArea"`
	ComplaintDetails *string `json:"complaintDetails"`
	ActionTaken      *string `json:"actionTaken"`
	FDStaff          *string `json:"fdStaff"`
	FollowUpRequired *string `json:"followUpRequired"`
	FollowUpDate     *string `json:"followUpDate"`
	FollowUpStaff    *string `json:"followUpStaff"`
	FollowUpComments *string `json:"followUpComments"`
}

type generateReportRequest struct {
	Complaints []complaintPayload `json:"complaints"`
	StartDate  string             `json:"startDate"`
	EndDate    string             `json:"endDate"`
}

// GenerateReport filters the submitted complaints to the requested
// period and responds with the rendered PDF as a download.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Complaints == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No complaints data provided"})
		return
	}

	var complaints []models.Complaint
	for i, p := range req.Complaints {
		record, err := p.toComplaint()
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping undecodable complaint")
			continue
		}
		complaints = append(complaints, record)
	}

	if len(complaints) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid complaints to process"})
		return
	}

	if req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date range is required"})
		return
	}

	startDate, err := parseISO(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date range is required"})
		return
	}
	endDate, err := parseISO(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date range is required"})
		return
	}

	filtered := report.FilterByDateRange(complaints, startDate, endDate)
	if len(filtered) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No complaints found in the specified date range"})
		return
	}

	pdf, err := h.renderer.GeneratePDF(c.Request.Context(), filtered, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Msg("Report generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report generation failed: " + err.Error()})
		return
	}

	filename := render.ReportFileName(startDate, endDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (p complaintPayload) toComplaint() (models.Complaint, error) {
	occurredAt, err := parseISO(p.DateTime)
	if err != nil {
		return models.Complaint{}, fmt.Errorf("invalid dateTime %q: %w", p.DateTime, err)
	}
	if p.GuestName == "" || p.Room == "" || p.ProblemArea == "" {
		return models.Complaint{}, fmt.Errorf("missing required fields")
	}

	record := models.Complaint{
		DateTime:         occurredAt,
		GuestName:        p.GuestName,
		Room:             p.Room,
		ConfirmationNo:   p.ConfirmationNo,
		MembershipTier:   p.MembershipTier,
		ProblemArea:      p.ProblemArea,
		ComplaintDetails: p.ComplaintDetails,
		ActionTaken:      p.ActionTaken,
		FDStaff:          p.FDStaff,
		FollowUpRequired: p.FollowUpRequired,
		FollowUpStaff:    p.FollowUpStaff,
		FollowUpComments: p.FollowUpComments,
	}

	if p.FollowUpDate != nil && *p.FollowUpDate != "" {
		due, err := parseISO(*p.FollowUpDate)
		if err != nil {
			return models.Complaint{}, fmt.Errorf("invalid followUpDate %q: %w", *p.FollowUpDate, err)
		}
		record.FollowUpDate = &due
	}

	return record, nil
}

var isoRequestLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range isoRequestLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Months lists the report months of the configured year that have
// already started, for the period picker.
func (h *Handler) Months(c *gin.Context) {
	now := time.Now()
	months := []gin.H{}
	for month := 1; month <= 12; month++ {
		monthStart := time.Date(h.cfg.Report.Year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		if monthStart.After(now) {
			continue
		}
		months = append(months, gin.H{
			"value": month,
			"label": fmt.Sprintf("%s %d", report.MonthName(month), h.cfg.Report.Year),
		})
	}
	c.JSON(http.StatusOK, months)
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
