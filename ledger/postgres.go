package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"hostel-complaint-server/models"
)

// complaintRow is the append-mostly ledger record. Rows are never deleted;
// the only mutations ever applied are a status change and a feedback append.
type complaintRow struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	Submitter string         `gorm:"size:64;not null;index"`
	Text      string         `gorm:"type:text;not null"`
	Category  string         `gorm:"size:100;not null"`
	BlockName string         `gorm:"size:100;not null"`
	FloorNo   int            `gorm:"not null"`
	RoomNo    string         `gorm:"size:50"`
	Timestamp int64          `gorm:"not null"`
	Status    uint8          `gorm:"not null;default:0"`
	Feedbacks pq.StringArray `gorm:"type:text[]"`
}

func (complaintRow) TableName() string { return "ledger_complaints" }

func (r *complaintRow) toComplaint() models.Complaint {
	return models.Complaint{
		ID:        r.ID,
		Submitter: r.Submitter,
		Text:      r.Text,
		Category:  r.Category,
		BlockName: r.BlockName,
		FloorNo:   r.FloorNo,
		RoomNo:    r.RoomNo,
		Timestamp: r.Timestamp,
		Status:    models.ComplaintStatus(r.Status),
		Feedbacks: []string(r.Feedbacks),
	}
}

// PostgresLedger is the ledger implementation used when no remote gateway is
// configured. It keeps the external-ledger contract: callers only get the
// four Client operations, never direct row access.
type PostgresLedger struct {
	db *gorm.DB
}

// NewPostgresLedger migrates the ledger table and returns a ready client.
func NewPostgresLedger(db *gorm.DB) (*PostgresLedger, error) {
	if err := db.AutoMigrate(&complaintRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger table: %w", err)
	}
	return &PostgresLedger{db: db}, nil
}

// Create appends a new complaint and returns the assigned id.
func (pl *PostgresLedger) Create(ctx context.Context, submitter string, req models.ComplaintCreate) (uint64, error) {
	row := complaintRow{
		Submitter: submitter,
		Text:      req.Text,
		Category:  req.Category,
		BlockName: req.BlockName,
		FloorNo:   req.FloorNo,
		RoomNo:    req.RoomNo,
		Timestamp: time.Now().Unix(),
		Status:    uint8(models.StatusPending),
		Feedbacks: pq.StringArray{},
	}
	if err := pl.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return row.ID, nil
}

// ListAll returns every complaint ordered by ascending id.
func (pl *PostgresLedger) ListAll(ctx context.Context) ([]models.Complaint, error) {
	var rows []complaintRow
	if err := pl.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	complaints := make([]models.Complaint, 0, len(rows))
	for i := range rows {
		complaints = append(complaints, rows[i].toComplaint())
	}
	return complaints, nil
}

// SetStatus updates a complaint's status. Last write wins; concurrent staff
// transitions are not detected here.
func (pl *PostgresLedger) SetStatus(ctx context.Context, id uint64, status models.ComplaintStatus, actingIdentity string) error {
	result := pl.db.WithContext(ctx).
		Model(&complaintRow{}).
		Where("id = ?", id).
		Update("status", uint8(status))
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SubmitReview applies the review edge: an unsatisfied review appends the
// feedback and reopens the complaint as InProgress; a satisfied review leaves
// the record untouched.
func (pl *PostgresLedger) SubmitReview(ctx context.Context, id uint64, satisfied bool, feedback string, actingIdentity string) error {
	if satisfied {
		// Terminal acknowledgment: confirm the row exists, change nothing.
		var row complaintRow
		err := pl.db.WithContext(ctx).Select("id").First(&row, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	result := pl.db.WithContext(ctx).
		Model(&complaintRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    uint8(models.StatusInProgress),
			"feedbacks": gorm.Expr("array_append(feedbacks, ?)", feedback),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
