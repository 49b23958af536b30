package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusPaused   StudentStatus = "paused"
	StudentStatusFinished StudentStatus = "finished"
)

func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusPaused, StudentStatusFinished:
		return true
	default:
		return false
	}
}

// Student is a mentee enrolled in the program. StartDate is immutable once
// set. NextBillingDate is a write-through cache refreshed on payment writes;
// status reads always recompute from the payment history.
type Student struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name            string            `gorm:"not null" json:"name"`
	Email           string            `gorm:"" json:"email,omitempty"`
	Occupation      string            `gorm:"" json:"occupation,omitempty"`
	Status          StudentStatus     `gorm:"type:text;not null;default:'active'" json:"status"`
	StartDate       time.Time         `gorm:"type:date;not null" json:"start_date"`
	PaidInFull      bool              `gorm:"not null;default:false" json:"paid_in_full"`
	AmountPaid      int64             `gorm:"not null;default:0" json:"amount_paid"`
	AmountOwed      int64             `gorm:"not null;default:0" json:"amount_owed"`
	NextBillingDate *time.Time        `gorm:"type:date" json:"next_billing_date,omitempty"`
	ContractURL     string            `gorm:"" json:"contract_url,omitempty"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	Payments        []Payment         `gorm:"foreignKey:StudentID" json:"payments,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Student) TableName() string { return "students" }

// Payment is immutable once recorded; there are no update or delete
// operations. Amount is cents. PaidAt may carry a time-of-day used for
// ordering and display only.
type Payment struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID     snowflake.ID `gorm:"not null;index" json:"student_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	PaidAt        time.Time    `gorm:"not null" json:"paid_at"`
	Note          string       `gorm:"" json:"note,omitempty"`
	ReceiptNumber string       `gorm:"uniqueIndex" json:"receipt_number"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
