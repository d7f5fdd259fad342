package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clientbook/client_records_app/internal/apperrors"
	"github.com/clientbook/client_records_app/internal/core/domain"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/dto"
	"github.com/clientbook/client_records_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
	reconciler    portssvc.ReconcilerSvc
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs portssvc.ClientSvcFacade, rc portssvc.ReconcilerSvc) *clientHandler {
	return &clientHandler{
		clientService: cs,
		reconciler:    rc,
	}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, reconciler portssvc.ReconcilerSvc) {
	h := newClientHandler(clientService, reconciler)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/search", h.searchClients)
		clients.POST("/reconcile", h.reconcileClients)
		clients.GET("/:clientID", h.getClient)
		clients.PUT("/:clientID", h.updateClient)
		clients.PUT("/:clientID/transaction-count", h.setTransactionCount)
		clients.DELETE("/:clientID", h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a new client
// @Description Creates a client with a zero transaction counter. Fails when a non-deleted client with the same name exists.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Client name already taken"
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create client request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Client name already taken", slog.String("client_name", req.ClientName))
			c.JSON(http.StatusConflict, gin.H{"error": "Client with the same name already exists"})
			return
		}
		logger.Error("Failed to create client in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Retrieves all clients, soft-deleted ones included. With reconcile=true a best-effort counter refresh sweep runs first.
// @Tags clients
// @Produce  json
// @Param   reconcile query bool false "Run a refresh sweep before listing" default(false)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	if params.Reconcile {
		// Sweep failures leave some counters stale; the list stays usable
		// either way, so they only show up as warnings.
		result := h.reconciler.Sweep(c.Request.Context(), clientIDsOf(clients))
		if len(result.Failed) > 0 {
			logger.Warn("Refresh sweep completed with failures",
				slog.Int("reconciled", result.Reconciled),
				slog.Int("failed", len(result.Failed)),
			)
		}
		clients, err = h.clientService.ListClients(c.Request.Context())
		if err != nil {
			logger.Error("Failed to re-list clients after sweep", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
			return
		}
	}

	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// searchClients godoc
// @Summary Search clients by name
// @Description Case-insensitive substring search. Only col=client_name is supported.
// @Tags clients
// @Produce  json
// @Param   col query string true "Filter column (client_name)"
// @Param   val query string false "Substring to match"
// @Success 200 {object} dto.ListClientsResponse
// @Failure 400 {object} map[string]string "Unsupported filter column"
// @Router /clients/search [get]
func (h *clientHandler) searchClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for searchClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if params.Col != "client_name" {
		logger.Warn("Unsupported client search column", slog.String("col", params.Col))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column specified"})
		return
	}

	clients, err := h.clientService.SearchClientsByName(c.Request.Context(), params.Val)
	if err != nil {
		logger.Error("Failed to search clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search clients"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// reconcileClients godoc
// @Summary Reconcile all client counters
// @Description Runs an on-demand refresh sweep over every client. Per-client failures do not abort the sweep.
// @Tags clients
// @Produce  json
// @Success 200 {object} map[string]int "reconciled and failed counts"
// @Failure 500 {object} map[string]string "Failed to list clients for sweep"
// @Router /clients/reconcile [post]
func (h *clientHandler) reconcileClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list clients for sweep", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	result := h.reconciler.Sweep(c.Request.Context(), clientIDsOf(clients))
	logger.Info("On-demand reconciliation sweep finished",
		slog.Int("reconciled", result.Reconciled),
		slog.Int("failed", len(result.Failed)),
	)
	c.JSON(http.StatusOK, gin.H{"reconciled": result.Reconciled, "failed": len(result.Failed)})
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Router /clients/{clientID} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to get client from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Description Updates a client's name and contact number.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Client details to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Client not found"
// @Router /clients/{clientID} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update client request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to update client in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	logger.Info("Client updated successfully", slog.String("client_id", clientID))
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// setTransactionCount godoc
// @Summary Overwrite a client's cached transaction counter
// @Description Direct counter write, the push half of the reconciliation protocol. Last write wins.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Param   count body dto.SetTransactionCountRequest true "New counter value"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Client not found"
// @Router /clients/{clientID}/transaction-count [put]
func (h *clientHandler) setTransactionCount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.SetTransactionCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for set transaction count request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	client, err := h.clientService.SetTransactionCount(c.Request.Context(), clientID, *req.NoOfTransactions)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to set transaction count in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Soft-delete a client
// @Description Flips the account status to Deleted. The row remains queryable.
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Client not found"
// @Router /clients/{clientID} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to delete client in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.Status(http.StatusNoContent)
}

func clientIDsOf(clients []domain.Client) []string {
	ids := make([]string, len(clients))
	for i := range clients {
		ids[i] = clients[i].ClientID
	}
	return ids
}
