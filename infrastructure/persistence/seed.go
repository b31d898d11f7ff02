package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/assistant-mcp/knowd/internal/database"
	"gorm.io/gorm"
)

// SeedSampleData populates an empty database with a fixed set of suppliers
// and orders so the order tools have data to work with on first start.
// Databases that already contain orders are left untouched.
func SeedSampleData(ctx context.Context, db database.Database) error {
	store := NewOrderStore(db)

	count, err := store.CountOrders(ctx)
	if err != nil {
		return fmt.Errorf("count orders before seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		suppliers := sampleSuppliers()
		if err := tx.Create(&suppliers).Error; err != nil {
			return fmt.Errorf("seed suppliers: %w", err)
		}

		orders := sampleOrders()
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		return nil
	})
}

func sampleSuppliers() []SupplierModel {
	return []SupplierModel{
		{ID: "SUP001", Name: "Eastern Textile Mill", TotalCapacity: 10, UsedCapacity: 8},
		{ID: "SUP002", Name: "Harbor Garment Works", TotalCapacity: 15, UsedCapacity: 6},
		{ID: "SUP003", Name: "Northgate Apparel", TotalCapacity: 12, UsedCapacity: 11},
	}
}

func sampleOrders() []OrderModel {
	day := func(month time.Month, d int) time.Time {
		return time.Date(2024, month, d, 9, 0, 0, 0, time.UTC)
	}
	return []OrderModel{
		{
			ID: "ORD001", OrderNumber: "1000000001", SupplierID: "SUP001",
			ProductName: "Classic denim jacket", SKC: "sf2302287372782550",
			RequiredQuantity: 1200, PriorityScore: 82.5, Status: "in_production",
			CreatedAt: day(time.January, 8),
		},
		{
			ID: "ORD002", OrderNumber: "1000000002", SupplierID: "SUP001",
			ProductName: "Slim fit chino trousers", SKC: "sf2302287372782551",
			RequiredQuantity: 800, PriorityScore: 45.0, Status: "pending",
			CreatedAt: day(time.January, 15),
		},
		{
			ID: "ORD003", OrderNumber: "1000000003", SupplierID: "SUP002",
			ProductName: "Organic cotton tee", SKC: "sf2302287372782552",
			RequiredQuantity: 2400, PriorityScore: 91.0, Status: "in_production",
			CreatedAt: day(time.January, 22),
		},
		{
			ID: "ORD004", OrderNumber: "1000000004", SupplierID: "SUP002",
			ProductName: "Linen summer dress", SKC: "sf2302287372782553",
			RequiredQuantity: 650, PriorityScore: 30.5, Status: "in_production",
			CreatedAt: day(time.February, 5),
		},
		{
			ID: "ORD005", OrderNumber: "1000000005", SupplierID: "SUP002",
			ProductName: "Wool blend overcoat", SKC: "sf2302287372782554",
			RequiredQuantity: 300, PriorityScore: 67.8, Status: "pending",
			CreatedAt: day(time.February, 12),
		},
		{
			ID: "ORD006", OrderNumber: "1000000006", SupplierID: "SUP003",
			ProductName: "Quilted bomber jacket", SKC: "sf2302287372782555",
			RequiredQuantity: 950, PriorityScore: 55.2, Status: "in_production",
			CreatedAt: day(time.February, 19),
		},
		{
			ID: "ORD007", OrderNumber: "1000000007", SupplierID: "SUP003",
			ProductName: "Ribbed knit sweater", SKC: "sf2302287372782556",
			RequiredQuantity: 1500, PriorityScore: 24.0, Status: "completed",
			CreatedAt: day(time.March, 4),
		},
		{
			ID: "ORD008", OrderNumber: "1000000008", SupplierID: "SUP001",
			ProductName: "Corduroy shirt", SKC: "sf2302287372782557",
			RequiredQuantity: 700, PriorityScore: 73.4, Status: "completed",
			CreatedAt: day(time.March, 11),
		},
	}
}
