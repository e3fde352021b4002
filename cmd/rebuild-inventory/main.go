// Command rebuild-inventory replays a warehouse's full flow ledger into a
// fresh inventory projection, replacing the stored one. Usage:
//
//	rebuild-inventory <warehouse-id> <owner-id>
package main

import (
	"context"
	"log"
	"os"

	"warehouse-manager/internal/core"
	"warehouse-manager/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <warehouse-id> <owner-id>", os.Args[0])
	}
	warehouseID, ownerID := os.Args[1], os.Args[2]

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	w, err := core.NewWarehouseService(pool).RebuildInventory(ctx, warehouseID, ownerID)
	if err != nil {
		log.Fatalf("rebuild: %v", err)
	}

	totalItems, typeCount := core.InventoryTotals(w.Inventory)
	log.Printf("rebuilt inventory for %s: %d items across %d types", w.ID, totalItems, typeCount)
}
