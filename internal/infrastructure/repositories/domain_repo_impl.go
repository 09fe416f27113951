package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/infrastructure/models"
	"domain-agent.backend/pkg/logger"
	"domain-agent.backend/pkg/utils"
)

// DomainRepository implements domain data operations
type DomainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new domain repository
func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

// Create inserts a domain row. The partial unique index on active
// full_domain rows turns a racing duplicate into ErrAlreadyExists.
func (r *DomainRepository) Create(ctx context.Context, domain *entities.Domain) error {
	m, err := r.toModel(domain)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a domain by ID
func (r *DomainRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Domain, error) {
	var m models.Domain
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByFullDomain returns the most recent row for a full domain
func (r *DomainRepository) GetByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error) {
	var m models.Domain
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("full_domain = ?", fullDomain).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetActiveByFullDomain returns the row currently holding an active status
// for a full domain. The partial unique index guarantees at most one.
func (r *DomainRepository) GetActiveByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error) {
	var m models.Domain
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("full_domain = ? AND status IN ?", fullDomain, activeStatusStrings()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetOwned gets a domain by ID scoped to an owner
func (r *DomainRepository) GetOwned(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entities.Domain, error) {
	var m models.Domain
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetOwnedByFullDomain gets the owner's most recent row for a full domain
func (r *DomainRepository) GetOwnedByFullDomain(ctx context.Context, ownerID uuid.UUID, fullDomain string) (*entities.Domain, error) {
	var m models.Domain
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("full_domain = ? AND owner_id = ?", fullDomain, ownerID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByOwner lists an owner's domains with optional status filter
func (r *DomainRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Domain{}).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.GetPaginationParams(filter.Page, filter.Limit)
	var domainModels []models.Domain
	err := query.Order("created_at DESC").
		Offset(params.CalculateOffset()).
		Limit(params.Limit).
		Find(&domainModels).Error
	if err != nil {
		return nil, 0, err
	}

	domains := make([]*entities.Domain, 0, len(domainModels))
	for i := range domainModels {
		domains = append(domains, r.toEntity(&domainModels[i]))
	}
	return domains, total, nil
}

// Update persists mutable domain fields
func (r *DomainRepository) Update(ctx context.Context, domain *entities.Domain) error {
	records, err := json.Marshal(domain.DNSRecords)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":        string(domain.Status),
		"cost":          domain.Pricing.Cost,
		"markup":        domain.Pricing.Markup,
		"selling_price": domain.Pricing.SellingPrice,
		"currency":      domain.Pricing.Currency,
		"dns_records":   string(records),
		"auto_renew":    domain.AutoRenew,
		"updated_at":    time.Now(),
	}
	if domain.OwnerID.Valid {
		updates["owner_id"] = domain.OwnerID.String
	} else {
		updates["owner_id"] = nil
	}
	if domain.RegistrationDate.Valid {
		updates["registration_date"] = domain.RegistrationDate.Time
	} else {
		updates["registration_date"] = nil
	}
	if domain.ExpirationDate.Valid {
		updates["expiration_date"] = domain.ExpirationDate.Time
	} else {
		updates["expiration_date"] = nil
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Domain{}).
		Where("id = ?", domain.ID).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByOwnerAndStatuses counts an owner's domains in the given statuses
func (r *DomainRepository) CountByOwnerAndStatuses(ctx context.Context, ownerID uuid.UUID, statuses []entities.DomainStatus) (int64, error) {
	strs := make([]string, 0, len(statuses))
	for _, s := range statuses {
		strs = append(strs, string(s))
	}
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Domain{}).
		Where("owner_id = ? AND status IN ?", ownerID, strs).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListStalePending returns pending domains created before the cutoff
func (r *DomainRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Domain, error) {
	var domainModels []models.Domain
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entities.DomainStatusPending), olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&domainModels).Error
	if err != nil {
		return nil, err
	}
	domains := make([]*entities.Domain, 0, len(domainModels))
	for i := range domainModels {
		domains = append(domains, r.toEntity(&domainModels[i]))
	}
	return domains, nil
}

func activeStatusStrings() []string {
	strs := make([]string, 0, len(entities.ActiveDomainStatuses))
	for _, s := range entities.ActiveDomainStatuses {
		strs = append(strs, string(s))
	}
	return strs
}

func (r *DomainRepository) toModel(d *entities.Domain) (*models.Domain, error) {
	records, err := json.Marshal(d.DNSRecords)
	if err != nil {
		return nil, err
	}
	m := &models.Domain{
		ID:           d.ID,
		Name:         d.Name,
		Extension:    d.Extension,
		FullDomain:   d.FullDomain,
		Status:       string(d.Status),
		Registrar:    d.Registrar,
		Cost:         d.Pricing.Cost,
		Markup:       d.Pricing.Markup,
		SellingPrice: d.Pricing.SellingPrice,
		Currency:     d.Pricing.Currency,
		DNSRecords:   string(records),
		AutoRenew:    d.AutoRenew,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.OwnerID.Valid {
		ownerID, err := uuid.Parse(d.OwnerID.String)
		if err != nil {
			return nil, err
		}
		m.OwnerID = &ownerID
	}
	if d.RegistrationDate.Valid {
		t := d.RegistrationDate.Time
		m.RegistrationDate = &t
	}
	if d.ExpirationDate.Valid {
		t := d.ExpirationDate.Time
		m.ExpirationDate = &t
	}
	return m, nil
}

func (r *DomainRepository) toEntity(m *models.Domain) *entities.Domain {
	d := &entities.Domain{
		ID:         m.ID,
		Name:       m.Name,
		Extension:  m.Extension,
		FullDomain: m.FullDomain,
		Status:     entities.DomainStatus(m.Status),
		Registrar:  m.Registrar,
		Pricing: entities.Pricing{
			Cost:         m.Cost,
			Markup:       m.Markup,
			SellingPrice: m.SellingPrice,
			Currency:     m.Currency,
		},
		DNSRecords: []entities.DNSRecord{},
		AutoRenew:  m.AutoRenew,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.OwnerID != nil {
		d.OwnerID = null.StringFrom(m.OwnerID.String())
	}
	d.RegistrationDate = null.TimeFromPtr(m.RegistrationDate)
	d.ExpirationDate = null.TimeFromPtr(m.ExpirationDate)
	if m.DNSRecords != "" {
		if err := json.Unmarshal([]byte(m.DNSRecords), &d.DNSRecords); err != nil {
			logger.Warn(context.Background(), "failed to decode dns records",
				zap.String("domain_id", m.ID.String()), zap.Error(err))
			d.DNSRecords = []entities.DNSRecord{}
		}
	}
	return d
}
