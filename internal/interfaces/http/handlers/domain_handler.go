package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/interfaces/http/response"
	"domain-agent.backend/internal/usecases"
	"domain-agent.backend/pkg/utils"
)

// DomainService is the slice of the domain usecase the handler depends on
type DomainService interface {
	Search(ctx context.Context, query string, extensions []string, includeAI bool) (*usecases.SearchResult, error)
	CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error)
	GetDetails(ctx context.Context, domain string) (*usecases.DomainDetails, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error)
	Purchase(ctx context.Context, userID uuid.UUID, input *entities.PurchaseDomainInput) (*entities.Domain, *entities.Transaction, error)
	Renew(ctx context.Context, userID, domainID uuid.UUID, years int) (*entities.Transaction, error)
	Transfer(ctx context.Context, userID uuid.UUID, input *entities.TransferDomainInput) (*entities.Domain, *entities.Transaction, error)
	GetDNSRecords(ctx context.Context, userID, domainID uuid.UUID) ([]entities.DNSRecord, error)
	UpdateDNSRecords(ctx context.Context, userID, domainID uuid.UUID, records []entities.DNSRecord) (*entities.Domain, error)
}

// DomainHandler handles domain search and portfolio endpoints
type DomainHandler struct {
	domains DomainService
}

// NewDomainHandler creates a new domain handler
func NewDomainHandler(domains DomainService) *DomainHandler {
	return &DomainHandler{domains: domains}
}

// Search checks a name across several extensions
// GET /api/domains/search?q=shop&extensions=com,io&includeAI=true
func (h *DomainHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error(c, domainerrors.BadRequest("query parameter q is required"))
		return
	}

	var extensions []string
	if raw := c.Query("extensions"); raw != "" {
		for _, ext := range strings.Split(raw, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				extensions = append(extensions, ext)
			}
		}
	}
	includeAI := c.Query("includeAI") == "true"

	result, err := h.domains.Search(c.Request.Context(), query, extensions, includeAI)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Check answers availability for one full domain
// GET /api/domains/check/:domain
func (h *DomainHandler) Check(c *gin.Context) {
	result, err := h.domains.CheckAvailability(c.Request.Context(), c.Param("domain"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Details returns the local record enriched with registrar and AI views
// GET /api/domains/:domain/details
func (h *DomainHandler) Details(c *gin.Context) {
	details, err := h.domains.GetDetails(c.Request.Context(), c.Param("domain"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// List returns the caller's domains
// GET /api/domains?page=&limit=&status=
func (h *DomainHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ValidationError(c, err)
		return
	}
	filter := entities.DomainListFilter{
		Status: entities.DomainStatus(c.Query("status")),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	domains, total, err := h.domains.ListOwned(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	normalized := utils.GetPaginationParams(filter.Page, filter.Limit)
	response.Paginated(c, domains, utils.CalculateMeta(total, normalized.Page, normalized.Limit))
}

// Purchase opens a pending order for an available name
// POST /api/domains/purchase
func (h *DomainHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.PurchaseDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	domain, tx, err := h.domains.Purchase(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"domain":      domain,
		"transaction": tx,
	})
}

// Renew opens a renewal order for a registered domain
// POST /api/domains/renew/:domainId
func (h *DomainHandler) Renew(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	domainID, err := uuid.Parse(c.Param("domainId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid domain id"))
		return
	}

	var input entities.RenewDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	tx, err := h.domains.Renew(c.Request.Context(), userID, domainID, input.Years)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// Transfer opens an inbound transfer order
// POST /api/domains/transfer
func (h *DomainHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.TransferDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	domain, tx, err := h.domains.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"domain":      domain,
		"transaction": tx,
	})
}

// GetDNS returns the stored host records for an owned domain
// GET /api/domains/dns/:domainId
func (h *DomainHandler) GetDNS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	domainID, err := uuid.Parse(c.Param("domainId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid domain id"))
		return
	}

	records, err := h.domains.GetDNSRecords(c.Request.Context(), userID, domainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// UpdateDNS replaces the host records at the registrar and stores them
// PUT /api/domains/dns/:domainId
func (h *DomainHandler) UpdateDNS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	domainID, err := uuid.Parse(c.Param("domainId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid domain id"))
		return
	}

	var input entities.UpdateDNSInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	domain, err := h.domains.UpdateDNSRecords(c.Request.Context(), userID, domainID, input.Records)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain)
}
