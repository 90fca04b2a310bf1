package partner

import (
	"context"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityService handles business entity operations
type EntityService struct {
	entityRepo partner.BusinessEntityRepository
	logger     *zap.Logger
}

// NewEntityService creates a new EntityService
func NewEntityService(entityRepo partner.BusinessEntityRepository, logger *zap.Logger) *EntityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityService{
		entityRepo: entityRepo,
		logger:     logger,
	}
}

// Create creates a new business entity
func (s *EntityService) Create(ctx context.Context, tenantID, ownerID uuid.UUID, req CreateEntityRequest) (*EntityResponse, error) {
	entity, err := partner.NewBusinessEntity(tenantID, ownerID, req.Name, partner.EntityType(req.EntityType), req.StateCode, req.GSTIN)
	if err != nil {
		return nil, err
	}
	entity.Phone = strings.TrimSpace(req.Phone)
	entity.Email = strings.TrimSpace(req.Email)
	entity.Address = strings.TrimSpace(req.Address)

	if err := s.entityRepo.Save(ctx, entity); err != nil {
		return nil, s.storeError("Failed to save business entity", err)
	}
	s.logger.Info("business entity created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entity_id", entity.ID.String()),
		zap.String("entity_type", string(entity.EntityType)),
	)

	response := ToEntityResponse(entity)
	return &response, nil
}

// GetByID retrieves a business entity by ID
func (s *EntityService) GetByID(ctx context.Context, tenantID, entityID uuid.UUID) (*EntityResponse, error) {
	entity, err := s.entityRepo.FindByIDForTenant(ctx, tenantID, entityID)
	if err != nil {
		return nil, s.storeError("Failed to load business entity", err)
	}
	response := ToEntityResponse(entity)
	return &response, nil
}

// List returns the tenant's entities, optionally of one type. Repeated
// registrations of the same name and type collapse to the newest one.
func (s *EntityService) List(ctx context.Context, tenantID uuid.UUID, filter EntityListFilter) ([]EntityResponse, error) {
	entityType := partner.EntityType(filter.EntityType)
	if entityType != "" && !entityType.IsValid() {
		return nil, shared.NewValidationError("Invalid entity type: " + filter.EntityType)
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.PageSize = 0
	domainFilter.Search = filter.Search

	entities, err := s.entityRepo.FindAllForTenant(ctx, tenantID, entityType, domainFilter)
	if err != nil {
		return nil, s.storeError("Failed to load business entities", err)
	}
	return ToEntityResponses(partner.Deduplicate(entities)), nil
}

// Update updates a business entity
func (s *EntityService) Update(ctx context.Context, tenantID, entityID uuid.UUID, req UpdateEntityRequest) (*EntityResponse, error) {
	entity, err := s.entityRepo.FindByIDForTenant(ctx, tenantID, entityID)
	if err != nil {
		return nil, s.storeError("Failed to load business entity", err)
	}

	if err := entity.Update(req.Name, partner.EntityType(req.EntityType), req.StateCode, req.GSTIN,
		strings.TrimSpace(req.Phone), strings.TrimSpace(req.Email), strings.TrimSpace(req.Address)); err != nil {
		return nil, err
	}

	if err := s.entityRepo.Save(ctx, entity); err != nil {
		return nil, s.storeError("Failed to save business entity", err)
	}

	response := ToEntityResponse(entity)
	return &response, nil
}

func (s *EntityService) storeError(message string, err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	s.logger.Error(message, zap.Error(err))
	return shared.WrapDomainError(shared.CodeDependencyFailure, message, err)
}
