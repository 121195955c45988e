package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List clients
// @Description Lists clients with pagination, search, and filters
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search by name, code, or contact"
// @Param client_type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	query := parseListQuery(c, "client_type", "status")

	clients, total, err := h.clientService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(clients, total, query))
}

// @Summary Get client
// @Description Returns a client with contracts and assignments
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Create client
// @Description Registers a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Client true "Client fields"
// @Success 201 {object} models.Client
// @Failure 409 {object} map[string]string
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_code and name are required"})
		return
	}
	if client.ClientCode == "" || client.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_code and name are required"})
		return
	}

	a := requestActor(c)
	if err := h.clientService.Create(c.Request.Context(), &client, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// @Summary Update client
// @Description Updates a client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body models.Client true "Client fields"
// @Success 200 {object} models.Client
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.clientService.Update(c.Request.Context(), id, &client, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete client
// @Description Deletes a client with contracts and assignments
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.clientService.Delete(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// @Summary List client contracts
// @Description Lists a client's service contracts, newest first
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {array} models.ServiceContract
// @Router /clients/{id}/contracts [get]
func (h *ClientHandler) ListContracts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contracts, err := h.clientService.ListContracts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// @Summary Create contract
// @Description Opens a service contract for a client
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body models.ServiceContract true "Contract fields"
// @Success 201 {object} models.ServiceContract
// @Failure 409 {object} map[string]string
// @Router /clients/{id}/contracts [post]
func (h *ClientHandler) CreateContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var contract models.ServiceContract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract_code and service_type are required"})
		return
	}
	if contract.ContractCode == "" || contract.ServiceType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract_code and service_type are required"})
		return
	}

	a := requestActor(c)
	if err := h.clientService.CreateContract(c.Request.Context(), id, &contract, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// @Summary Update contract
// @Description Updates a service contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param contractId path int true "Contract ID"
// @Param request body models.ServiceContract true "Contract fields"
// @Success 200 {object} models.ServiceContract
// @Router /clients/{id}/contracts/{contractId} [put]
func (h *ClientHandler) UpdateContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contractID, ok := parseID(c, "contractId")
	if !ok {
		return
	}

	var contract models.ServiceContract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.clientService.UpdateContract(c.Request.Context(), id, contractID, &contract, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete contract
// @Description Deletes a service contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param contractId path int true "Contract ID"
// @Success 200 {object} map[string]string
// @Router /clients/{id}/contracts/{contractId} [delete]
func (h *ClientHandler) DeleteContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contractID, ok := parseID(c, "contractId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.clientService.DeleteContract(c.Request.Context(), id, contractID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// @Summary List assignments
// @Description Lists a client's employee assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {array} models.EmployeeAssignment
// @Router /clients/{id}/assignments [get]
func (h *ClientHandler) ListAssignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.clientService.ListAssignments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// @Summary Assign employee
// @Description Places an employee with a client, optionally under a contract
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body services.AssignEmployeeInput true "Assignment fields"
// @Success 201 {object} models.EmployeeAssignment
// @Router /clients/{id}/assign-employee [post]
func (h *ClientHandler) AssignEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.AssignEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id is required"})
		return
	}

	a := requestActor(c)
	assignment, err := h.clientService.AssignEmployee(c.Request.Context(), id, input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// @Summary Remove assignment
// @Description Removes an employee assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} map[string]string
// @Router /clients/{id}/assignments/{assignmentId} [delete]
func (h *ClientHandler) RemoveAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "assignmentId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.clientService.EndAssignment(c.Request.Context(), id, assignmentID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment removed"})
}
