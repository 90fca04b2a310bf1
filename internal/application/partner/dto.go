package partner

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateEntityRequest represents a request to create a business entity
type CreateEntityRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	EntityType string `json:"entity_type" binding:"required,oneof=customer supplier wholesaler transport labour other"`
	StateCode  string `json:"state_code" binding:"omitempty,max=10"`
	GSTIN      string `json:"gstin" binding:"omitempty,len=15"`
	Phone      string `json:"phone" binding:"omitempty,max=50"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address" binding:"omitempty,max=500"`
}

// UpdateEntityRequest represents a request to update a business entity
type UpdateEntityRequest = CreateEntityRequest

// EntityListFilter represents filter options for the entity list
type EntityListFilter struct {
	Search     string `form:"search"`
	EntityType string `form:"entity_type" binding:"omitempty,oneof=customer supplier wholesaler transport labour other"`
}

// EntityResponse represents a business entity in API responses
type EntityResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Name       string    `json:"name"`
	EntityType string    `json:"entity_type"`
	StateCode  string    `json:"state_code,omitempty"`
	GSTIN      string    `json:"gstin,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToEntityResponse converts a domain BusinessEntity to EntityResponse
func ToEntityResponse(e *partner.BusinessEntity) EntityResponse {
	return EntityResponse{
		ID:         e.ID,
		TenantID:   e.TenantID,
		Name:       e.Name,
		EntityType: string(e.EntityType),
		StateCode:  e.StateCode,
		GSTIN:      e.GSTIN,
		Phone:      e.Phone,
		Email:      e.Email,
		Address:    e.Address,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Version:    e.Version,
	}
}

// ToEntityResponses converts a slice of entities to responses
func ToEntityResponses(entities []partner.BusinessEntity) []EntityResponse {
	responses := make([]EntityResponse, len(entities))
	for i := range entities {
		responses[i] = ToEntityResponse(&entities[i])
	}
	return responses
}
