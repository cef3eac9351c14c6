package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

type IncidentHandler struct {
	incidentService *services.IncidentService
	logger          *logger.Logger
}

func NewIncidentHandler(incidentService *services.IncidentService, log *logger.Logger) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
		logger:          log,
	}
}

// Create accepts a multipart form: type, description, latitude, longitude
// plus up to five image file parts named "images".
func (h *IncidentHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.CreateIncidentRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateCreateIncident(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) > utils.MaxImagesPerIncident {
		utils.BadRequestResponse(c, "Too many images attached")
		return
	}

	var images []*services.ImageUpload
	var openFiles []io.Closer
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for _, fh := range fileHeaders {
		if fh.Size > utils.MaxImageSize {
			utils.BadRequestResponse(c, "Image exceeds the 5MB size limit")
			return
		}

		contentType := fh.Header.Get("Content-Type")
		if !utils.IsAllowedImageType(contentType) {
			utils.BadRequestResponse(c, "Unsupported image type")
			return
		}

		file, err := fh.Open()
		if err != nil {
			utils.InternalServerErrorResponse(c)
			return
		}
		openFiles = append(openFiles, file)

		images = append(images, &services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Reader:      file,
		})
	}

	incident, err := h.incidentService.Create(c.Request.Context(), userID, &req, images)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Incident reported", incident)
}

func (h *IncidentHandler) MyReports(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	incidents, err := h.incidentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Incidents retrieved", incidents, &utils.Meta{Count: len(incidents)})
}

func (h *IncidentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid incident ID")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	role := middleware.CurrentUserRole(c)

	incident, err := h.incidentService.Get(c.Request.Context(), id, userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Incident retrieved", incident)
}

func (h *IncidentHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	role := middleware.CurrentUserRole(c)

	var req validators.ListIncidentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	params := utils.GetPaginationParams(c)
	filter := interfaces.IncidentFilter{Status: req.Status, Type: req.Type}

	incidents, total, err := h.incidentService.List(c.Request.Context(), userID, role, filter, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Incidents retrieved", incidents, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid incident ID")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	role := middleware.CurrentUserRole(c)

	var req validators.UpdateIncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	incident, err := h.incidentService.UpdateStatus(c.Request.Context(), id, userID, role,
		models.IncidentStatus(req.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Status updated", incident)
}

// ServeImage streams an image blob by its storage key. Keys contain slashes,
// so the route uses a wildcard parameter.
func (h *IncidentHandler) ServeImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		utils.BadRequestResponse(c, "Missing image key")
		return
	}

	resp, err := h.incidentService.GetImage(c.Request.Context(), key)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer resp.Reader.Close()

	c.DataFromReader(200, resp.Size, resp.ContentType, resp.Reader, nil)
}
