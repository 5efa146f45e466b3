// Package notify surfaces batches approaching expiry as deduplicated
// alerts.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"pharmapos/m/domain"
)

// DefaultThresholdDays is used when the expiry_notification_days setting is
// missing or unparseable.
const DefaultThresholdDays = 30

// Scanner checks for near-expiry batches and manages the notification list.
type Scanner struct {
	db *sqlx.DB
}

// NewScanner constructs a Scanner on top of the shared database handle.
func NewScanner(db *sqlx.DB) *Scanner {
	return &Scanner{db: db}
}

type expiringBatch struct {
	BatchNumber string `db:"batch_number"`
	ExpiryDate  string `db:"expiry_date"`
	BrandName   string `db:"brand_name"`
}

// CheckExpiry scans for in-stock batches expiring within the threshold and
// inserts an expiry notification for each, unless an unread notification
// with the identical message already exists. thresholdDays <= 0 means use
// the expiry_notification_days setting.
//
// The returned count is the number of batches matched, not the number of
// notifications inserted; duplicates are silently skipped.
func (s *Scanner) CheckExpiry(ctx context.Context, thresholdDays int) (int, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.threshold(ctx)
	}
	cutoff := time.Now().AddDate(0, 0, thresholdDays).Format("2006-01-02")

	batches := []expiringBatch{}
	err := s.db.SelectContext(ctx, &batches,
		`SELECT COALESCE(b.batch_number, '') AS batch_number, COALESCE(b.expiry_date, '') AS expiry_date, m.brand_name
         FROM batches b
         JOIN medicines m ON b.medicine_id = m.id
         WHERE b.expiry_date <= ?
         AND b.current_qty > 0`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("scan expiring batches: %w", err)
	}

	for _, batch := range batches {
		message := fmt.Sprintf("Batch %s of %s is expiring on %s", batch.BatchNumber, batch.BrandName, batch.ExpiryDate)
		var exists int
		if err := s.db.GetContext(ctx, &exists,
			`SELECT count(*) FROM notifications WHERE message = ? AND is_read = 0`, message); err != nil {
			return 0, fmt.Errorf("check notification dedup: %w", err)
		}
		if exists > 0 {
			continue
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO notifications (type, message) VALUES (?, ?)`, "expiry", message); err != nil {
			return 0, fmt.Errorf("insert notification: %w", err)
		}
	}
	return len(batches), nil
}

func (s *Scanner) threshold(ctx context.Context) int {
	var value string
	if err := s.db.GetContext(ctx, &value,
		`SELECT value FROM settings WHERE key = ?`, "expiry_notification_days"); err != nil {
		return DefaultThresholdDays
	}
	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		return DefaultThresholdDays
	}
	return days
}

// List returns the most recent notifications, newest first.
func (s *Scanner) List(ctx context.Context) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	err := s.db.SelectContext(ctx, &notifications,
		`SELECT id, COALESCE(type, '') AS type, COALESCE(message, '') AS message, is_read, created_at
         FROM notifications ORDER BY created_at DESC, id DESC LIMIT 50`)
	return notifications, err
}

// MarkAllRead flags every notification as read.
func (s *Scanner) MarkAllRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1`)
	return err
}
