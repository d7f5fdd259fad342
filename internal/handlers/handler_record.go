package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clientbook/client_records_app/internal/apperrors"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/dto"
	"github.com/clientbook/client_records_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests related to records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// newRecordHandler creates a new recordHandler.
func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// registerRecordRoutes registers all record-related routes.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := newRecordHandler(recordService)

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/search", h.searchRecords)
		records.GET("/count", h.countRecords)
		records.GET("/:recordID", h.getRecord)
		records.DELETE("/:recordID", h.deleteRecord)
	}
}

// createRecord godoc
// @Summary Create a new record
// @Description Creates a record under a client and triggers a best-effort counter reconciliation for that client.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create record"
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create record request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid record payload", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record payload: " + err.Error()})
			return
		}
		logger.Error("Failed to create record in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		return
	}

	logger.Info("Record created successfully",
		slog.String("record_id", record.RecordID),
		slog.String("client_id", record.ClientID),
	)
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List records for a client
// @Description Retrieves all records of a client, soft-deleted ones included.
// @Tags records
// @Produce  json
// @Param   client_id query string true "Client ID"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} map[string]string "Missing client_id"
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	records, err := h.recordService.ListRecordsForClient(c.Request.Context(), params.ClientID)
	if err != nil {
		logger.Error("Failed to list records from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordsResponse(records))
}

// searchRecords godoc
// @Summary Search records by transaction description
// @Description Case-insensitive substring search. Only col=transaction is supported.
// @Tags records
// @Produce  json
// @Param   col query string true "Filter column (transaction)"
// @Param   val query string false "Substring to match"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} map[string]string "Unsupported filter column"
// @Router /records/search [get]
func (h *recordHandler) searchRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for searchRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if params.Col != "transaction" {
		logger.Warn("Unsupported record search column", slog.String("col", params.Col))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column specified"})
		return
	}

	records, err := h.recordService.SearchRecordsByTransaction(c.Request.Context(), params.Val)
	if err != nil {
		logger.Error("Failed to search records from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordsResponse(records))
}

// countRecords godoc
// @Summary Count active records per client
// @Description Returns the live non-deleted record count for each requested client, the read half of the reconciliation protocol.
// @Tags records
// @Produce  json
// @Param   client_id query []string true "Client IDs" collectionFormat(multi)
// @Success 200 {object} dto.CountRecordsResponse
// @Failure 400 {object} map[string]string "Missing client_id"
// @Router /records/count [get]
func (h *recordHandler) countRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CountRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for countRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	counts, err := h.recordService.CountActiveRecords(c.Request.Context(), params.ClientIDs)
	if err != nil {
		logger.Error("Failed to count records from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count records"})
		return
	}

	// Clients with no active records are absent from the store result;
	// report them as explicit zeros.
	for _, clientID := range params.ClientIDs {
		if _, ok := counts[clientID]; !ok {
			counts[clientID] = 0
		}
	}

	c.JSON(http.StatusOK, dto.CountRecordsResponse{Counts: counts})
}

// getRecord godoc
// @Summary Get a record by ID
// @Tags records
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Router /records/{recordID} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	record, err := h.recordService.GetRecordByID(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		logger.Error("Failed to get record from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// deleteRecord godoc
// @Summary Soft-delete a record
// @Description Flips the record status to Deleted and triggers a best-effort counter reconciliation for the owning client.
// @Tags records
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Record not found"
// @Router /records/{recordID} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	if err := h.recordService.DeleteRecord(c.Request.Context(), recordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		logger.Error("Failed to delete record in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	logger.Info("Record soft-deleted", slog.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}
