package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clientusecases "naplink/internal/application/client/usecases"
	connusecases "naplink/internal/application/connection/usecases"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type ClientHandler struct {
	getClientUC    *clientusecases.GetClientUseCase
	listClientsUC  *clientusecases.ListClientsUseCase
	deleteClientUC *connusecases.DeleteClientUseCase
	logger         logger.Interface
}

func NewClientHandler(
	getClientUC *clientusecases.GetClientUseCase,
	listClientsUC *clientusecases.ListClientsUseCase,
	deleteClientUC *connusecases.DeleteClientUseCase,
) *ClientHandler {
	return &ClientHandler{
		getClientUC:    getClientUC,
		listClientsUC:  listClientsUC,
		deleteClientUC: deleteClientUC,
		logger:         logger.NewLogger(),
	}
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getClientUC.Execute(c.Request.Context(), clientusecases.GetClientQuery{ClientID: clientID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"client":           ToClientResponse(result.Client),
		"live_connections": ToConnectionResponses(result.LiveConnections),
	})
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listClientsUC.Execute(c.Request.Context(), clientusecases.ListClientsQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	clients := make([]ClientResponse, 0, len(result.Clients))
	for _, item := range result.Clients {
		clients = append(clients, ToClientResponse(item))
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(clients, result.Total, result.Page, result.PageSize))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteClientUC.Execute(c.Request.Context(), connusecases.DeleteClientCommand{
		ClientID: clientID,
		ActorID:  middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client deleted", gin.H{
		"connections_finalized": result.ConnectionsFinalized,
	})
}
