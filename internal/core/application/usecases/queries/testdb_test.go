package queries_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"prodtrack/internal/adapters/out/postgres/accountrepo"
	"prodtrack/internal/adapters/out/postgres/auditrepo"
	"prodtrack/internal/adapters/out/postgres/orderrepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a named in-memory sqlite database with the full schema.
// Naming by test keeps parallel tests isolated while letting the handler and
// the seed helpers share one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusEventDTO{},
		&auditrepo.EntryDTO{},
		&accountrepo.AccountDTO{},
	)
	require.NoError(t, err)

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, accountID uuid.UUID, purchaseOrder, salesRep, stageValue string, createdAt time.Time) uuid.UUID {
	t.Helper()

	dto := orderrepo.OrderDTO{
		ID:            uuid.New(),
		AccountID:     accountID,
		PurchaseOrder: purchaseOrder,
		SalesRep:      salesRep,
		Stage:         stageValue,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&dto).Error)
	return dto.ID
}

func seedItem(t *testing.T, db *gorm.DB, orderID uuid.UUID, productCode string, quantity int, price float64, stageValue string, archivedAt *time.Time) uuid.UUID {
	t.Helper()

	dto := orderrepo.ItemDTO{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductCode: productCode,
		Quantity:    quantity,
		Price:       price,
		Stage:       stageValue,
		ArchivedAt:  archivedAt,
	}
	require.NoError(t, db.Create(&dto).Error)
	return dto.ID
}

func seedEvent(t *testing.T, db *gorm.DB, itemID, orderID uuid.UUID, stageValue, note string, createdAt time.Time) {
	t.Helper()

	dto := orderrepo.StatusEventDTO{
		ID:        uuid.New(),
		ItemID:    itemID,
		OrderID:   orderID,
		Stage:     stageValue,
		Note:      note,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&dto).Error)
}

func seedAuditEntry(t *testing.T, db *gorm.DB, entityType, entityID, action string, metadata map[string]any, actorName string, createdAt time.Time) {
	t.Helper()

	var raw []byte
	if metadata != nil {
		var err error
		raw, err = json.Marshal(metadata)
		require.NoError(t, err)
	}

	dto := auditrepo.EntryDTO{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Metadata:   raw,
		ActorID:    uuid.New(),
		ActorName:  actorName,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&dto).Error)
}
