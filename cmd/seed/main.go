// Command seed fills an empty database with sample users, products and orders.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strconv"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "truncate users, products and orders first")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()
	if *reset {
		if err := truncate(ctx, database); err != nil {
			logger.L().Fatal("reset failed", zap.Error(err))
		}
	}

	if err := seed(ctx, database); err != nil {
		logger.L().Fatal("seeding failed", zap.Error(err))
	}
}

func truncate(ctx context.Context, database *sql.DB) error {
	_, err := database.ExecContext(ctx,
		`TRUNCATE order_items, orders, products, users RESTART IDENTITY CASCADE`)
	return err
}

func seed(ctx context.Context, database *sql.DB) error {
	log := logger.L()

	userIDs := make([]int, len(users))
	for i, u := range users {
		err := database.QueryRowContext(ctx, `
			INSERT INTO users (first_name, last_name, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			RETURNING id
		`, u.FirstName, u.LastName, u.Email).Scan(&userIDs[i])
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}

	productSvc := product.NewService(product.NewRepository(database), nil)
	productIDs := make([]int, len(products))
	names := make([]string, len(products))
	for i, p := range products {
		res, err := productSvc.CreateProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
		productIDs[i] = res.ID
		names[i] = p.Name
	}

	orderSvc := order.NewService(order.NewRepository(database))
	for _, o := range orders {
		created, err := orderSvc.CreateOrder(ctx, o.build(userIDs, productIDs, names))
		if err != nil {
			return fmt.Errorf("create order for %s: %w", o.Input.CustomerEmail, err)
		}
		log.Info("order created",
			zap.Int("order_id", created.ID),
			zap.String("customer", created.CustomerFirstName+" "+created.CustomerLastName),
		)
	}

	log.Info("seeding complete",
		zap.Int("users", len(users)),
		zap.Int("products", len(products)),
		zap.Int("orders", len(orders)),
	)
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }
