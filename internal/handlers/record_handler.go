package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/services"
	"github.com/SAP-F-2025/hostel-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecordHandler serves one id-keyed collection
type RecordHandler[T any] struct {
	BaseHandler
	name     string
	service  services.RecordService[T]
	listBody func(records []*T, count int64) interface{}
}

func NewStudentHandler(service services.RecordService[models.Student], logger utils.Logger) *RecordHandler[models.Student] {
	return &RecordHandler[models.Student]{
		BaseHandler: NewBaseHandler(logger),
		name:        "students",
		service:     service,
		listBody: func(records []*models.Student, count int64) interface{} {
			return models.StudentListResponse{Count: count, Students: nonNil(records)}
		},
	}
}

func NewFoodHandler(service services.RecordService[models.Food], logger utils.Logger) *RecordHandler[models.Food] {
	return &RecordHandler[models.Food]{
		BaseHandler: NewBaseHandler(logger),
		name:        "foods",
		service:     service,
		listBody: func(records []*models.Food, count int64) interface{} {
			return models.FoodListResponse{Count: count, Foods: nonNil(records)}
		},
	}
}

// List returns the total count and the page selected by page/size
// @Router /students [get]
// @Router /foods [get]
func (h *RecordHandler[T]) List(c *gin.Context) {
	query := services.ListQuery{
		Page: c.Query("page"),
		Size: c.Query("size"),
	}
	h.LogRequest(c, "Listing records", "collection", h.name, "page", query.Page, "size", query.Size)

	records, count, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.listBody(records, count))
}

// @Router /students [post]
// @Router /foods [post]
func (h *RecordHandler[T]) Create(c *gin.Context) {
	h.LogRequest(c, "Creating record", "collection", h.name)

	var record T
	if !h.bindJSON(c, &record) {
		return
	}

	ack, err := h.service.Create(c.Request.Context(), &record)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// Get answers 200 with a null body when no record has the id
// @Router /tutors/{id} [get]
func (h *RecordHandler[T]) Get(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting record", "collection", h.name, "id", id)

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// @Router /tutors/{id} [delete]
// @Router /orders/{id} [delete]
func (h *RecordHandler[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting record", "collection", h.name, "id", id)

	ack, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// UpdateStatus sets the status field only. Other body keys are ignored.
// @Router /tutors/{id} [put]
// @Router /orders/{id} [put]
func (h *RecordHandler[T]) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating record status", "collection", h.name, "id", id)

	var req services.StatusUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ack, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// ExportHandler streams collections as xlsx downloads
type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// @Router /students/export [get]
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	var buf bytes.Buffer
	if err := h.service.ExportStudents(c.Request.Context(), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "students", &buf)
}

// @Router /foods/export [get]
func (h *ExportHandler) ExportFoods(c *gin.Context) {
	h.LogRequest(c, "Exporting foods")

	var buf bytes.Buffer
	if err := h.service.ExportFoods(c.Request.Context(), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "foods", &buf)
}

func (h *ExportHandler) sendWorkbook(c *gin.Context, collection string, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.xlsx", collection, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func nonNil[T any](records []*T) []*T {
	if records == nil {
		return []*T{}
	}
	return records
}
