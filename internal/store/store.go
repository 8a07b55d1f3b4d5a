package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-ops-backend/internal/model"
)

// SalesSummaryRow is one row of the per-driver sales aggregation.
type SalesSummaryRow struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	SaleCount  int64  `json:"sale_count"`
	Revenue    int64  `json:"revenue"`
}

// Store defines the interface for all database operations. List methods
// return rows in the canonical per-table order: products, drivers and
// locations by name ascending, sales by sold_at descending, schedule by
// date ascending, payments by period_start descending.
type Store interface {
	DB() *gorm.DB

	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListDrivers(ctx context.Context) ([]model.Driver, error)
	CreateDriver(ctx context.Context, d *model.Driver) error
	UpdateDriver(ctx context.Context, d *model.Driver) error
	DeleteDriver(ctx context.Context, id string) error

	ListLocations(ctx context.Context) ([]model.Location, error)
	CreateLocation(ctx context.Context, l *model.Location) error
	UpdateLocation(ctx context.Context, l *model.Location) error
	DeleteLocation(ctx context.Context, id string) error

	ListSales(ctx context.Context) ([]model.Sale, error)
	CreateSale(ctx context.Context, s *model.Sale) error
	DeleteSale(ctx context.Context, id string) error
	SalesSummary(ctx context.Context) ([]SalesSummaryRow, error)

	ListPayments(ctx context.Context) ([]model.Payment, error)
	CreatePayment(ctx context.Context, p *model.Payment) error
	UpdatePayment(ctx context.Context, p *model.Payment) error
	DeletePayment(ctx context.Context, id string) error

	ListSchedule(ctx context.Context) ([]model.ScheduleEntry, error)
	CreateScheduleEntries(ctx context.Context, entries []model.ScheduleEntry) error
	DeleteScheduleForDrivers(ctx context.Context, driverIDs []string) error
	DeleteAllSchedule(ctx context.Context) error
	UpdateScheduleEntryLocation(ctx context.Context, driverID string, date time.Time, locationID, locationName string) (int64, error)

	GetSettings(ctx context.Context) (*model.Setting, error)
	SaveSettings(ctx context.Context, s *model.Setting) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Products ---

func (s *gormStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	return updateByID(s.db.WithContext(ctx), &model.Product{}, p.ID, map[string]any{
		"name": p.Name, "unit_price": p.UnitPrice, "active": p.Active,
	})
}

func (s *gormStore) DeleteProduct(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.Product{}, id)
}

// --- Drivers ---

func (s *gormStore) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

func (s *gormStore) CreateDriver(ctx context.Context, d *model.Driver) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *gormStore) UpdateDriver(ctx context.Context, d *model.Driver) error {
	return updateByID(s.db.WithContext(ctx), &model.Driver{}, d.ID, map[string]any{
		"name": d.Name, "classification": d.Classification, "active": d.Active,
		"phone": d.Phone, "home_location_id": d.HomeLocationID,
	})
}

func (s *gormStore) DeleteDriver(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.Driver{}, id)
}

// --- Locations ---

func (s *gormStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *gormStore) CreateLocation(ctx context.Context, l *model.Location) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *gormStore) UpdateLocation(ctx context.Context, l *model.Location) error {
	return updateByID(s.db.WithContext(ctx), &model.Location{}, l.ID, map[string]any{
		"name": l.Name, "category": l.Category, "address": l.Address,
	})
}

func (s *gormStore) DeleteLocation(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.Location{}, id)
}

// --- Sales ---

func (s *gormStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := s.db.WithContext(ctx).Order("sold_at DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *gormStore) CreateSale(ctx context.Context, sale *model.Sale) error {
	return s.db.WithContext(ctx).Create(sale).Error
}

func (s *gormStore) DeleteSale(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.Sale{}, id)
}

func (s *gormStore) SalesSummary(ctx context.Context) ([]SalesSummaryRow, error) {
	var rows []SalesSummaryRow
	err := s.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select("driver_id, driver_name, COUNT(*) as sale_count, COALESCE(SUM(total), 0) as revenue").
		Group("driver_id, driver_name").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	return rows, nil
}

// --- Payments ---

func (s *gormStore) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	if err := s.db.WithContext(ctx).Order("period_start DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *gormStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) UpdatePayment(ctx context.Context, p *model.Payment) error {
	return updateByID(s.db.WithContext(ctx), &model.Payment{}, p.ID, map[string]any{
		"driver_id": p.DriverID, "driver_name": p.DriverName,
		"period_start": p.PeriodStart, "period_end": p.PeriodEnd,
		"amount": p.Amount, "paid": p.Paid, "paid_at": p.PaidAt,
	})
}

func (s *gormStore) DeletePayment(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &model.Payment{}, id)
}

// --- Schedule ---

func (s *gormStore) ListSchedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	if err := s.db.WithContext(ctx).Order("date ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return entries, nil
}

func (s *gormStore) CreateScheduleEntries(ctx context.Context, entries []model.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to insert %d schedule entries: %w", len(entries), err)
	}
	return nil
}

func (s *gormStore) DeleteScheduleForDrivers(ctx context.Context, driverIDs []string) error {
	if len(driverIDs) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).
		Where("driver_id IN ?", driverIDs).
		Delete(&model.ScheduleEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete schedule for drivers: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteAllSchedule(ctx context.Context) error {
	if err := s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.ScheduleEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}
	return nil
}

// UpdateScheduleEntryLocation overwrites the location of the (driver, date)
// entry and returns the number of rows matched.
func (s *gormStore) UpdateScheduleEntryLocation(ctx context.Context, driverID string, date time.Time, locationID, locationName string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("driver_id = ? AND date = ?", driverID, date).
		Updates(map[string]any{"location_id": locationID, "location_name": locationName})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update schedule entry: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// --- Settings ---

// GetSettings returns the single settings row, or nil when none exists.
func (s *gormStore) GetSettings(ctx context.Context) (*model.Setting, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &setting, nil
}

func (s *gormStore) SaveSettings(ctx context.Context, setting *model.Setting) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "currency_code", "rotation_interval",
			"excluded_weekdays", "timezone", "updated_at",
		}),
	}).Create(setting).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// --- Helpers ---

func updateByID(db *gorm.DB, m any, id string, fields map[string]any) error {
	res := db.Model(m).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(db *gorm.DB, m any, id string) error {
	res := db.Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
