package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lab_asset_ledger/models"
)

const SnapshotTable = "lab_snapshots"

// snapshotRow is the single-row table holding the serialized snapshot.
// The snapshot is saved and loaded as a whole, so entity-level tables
// would only complicate reconstructing ledger order.
type snapshotRow struct {
	ID        int       `gorm:"primaryKey"`
	Data      string    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (snapshotRow) TableName() string { return SnapshotTable }

// GormStore keeps the snapshot in Postgres via GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var row snapshotRow
	err := g.db.WithContext(ctx).First(&row, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(row.Data), &snap); err != nil {
		log.Printf("snapshot row is corrupt, starting fresh: %v", err)
		return nil, nil
	}
	return &snap, nil
}

func (g *GormStore) Save(ctx context.Context, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	row := snapshotRow{ID: 1, Data: string(b), UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
