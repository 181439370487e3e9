// Package models contains the GORM persistence models of the inventory tables.
// Domain entities stay free of ORM tags; each model converts with ToDomain and FromDomain.
//
// Tables:
//   - supplier, product, tag, product_tags: catalog.go
//   - staff, sale: sales.go
package models
