package postgres

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncation order.
var Tables = []string{"orders", "product_stocks", "users"}

// Open connects with duplicate-key errors translated to gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &stockrepo.ProductStockDTO{}, &userrepo.UserDTO{})
}
