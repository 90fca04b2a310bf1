// Package models holds the gorm persistence models. Domain types carry no ORM
// tags; each model converts to and from its domain type with ToDomain and
// FromDomain, and repositories only ever hand domain types to callers.
package models
