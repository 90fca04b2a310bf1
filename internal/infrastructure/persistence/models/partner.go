package models

import "github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"

// BusinessEntityModel is the persistence model for counterparties
type BusinessEntityModel struct {
	TenantAggregateModel
	Name       string `gorm:"type:varchar(200);not null"`
	EntityType string `gorm:"type:varchar(20);not null;index"`
	StateCode  string `gorm:"type:varchar(2)"`
	GSTIN      string `gorm:"column:gstin;type:varchar(15)"`
	Phone      string `gorm:"type:varchar(32)"`
	Email      string `gorm:"type:varchar(200)"`
	Address    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BusinessEntityModel) TableName() string {
	return "business_entities"
}

// ToDomain converts the model to a domain BusinessEntity
func (m *BusinessEntityModel) ToDomain() *partner.BusinessEntity {
	return &partner.BusinessEntity{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		EntityType:          partner.EntityType(m.EntityType),
		StateCode:           m.StateCode,
		GSTIN:               m.GSTIN,
		Phone:               m.Phone,
		Email:               m.Email,
		Address:             m.Address,
	}
}

// BusinessEntityModelFromDomain creates a model from a domain BusinessEntity
func BusinessEntityModelFromDomain(e *partner.BusinessEntity) *BusinessEntityModel {
	m := &BusinessEntityModel{
		Name:       e.Name,
		EntityType: string(e.EntityType),
		StateCode:  e.StateCode,
		GSTIN:      e.GSTIN,
		Phone:      e.Phone,
		Email:      e.Email,
		Address:    e.Address,
	}
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	return m
}
