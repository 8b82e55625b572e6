package models

import "time"

type User struct {
	TelegramID     int64      `gorm:"primaryKey" json:"telegram_id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	Balance        int64      `gorm:"default:0" json:"balance"`
	TotalReferrals int64      `gorm:"default:0" json:"total_referrals"`
	LastBonusClaim *time.Time `json:"last_bonus_claim"`
	ReferredBy     *int64     `gorm:"index" json:"referred_by"`
	JoinedAt       time.Time  `json:"joined_at"`
}

type Channel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Link       string    `gorm:"uniqueIndex" json:"link"`
	ButtonName string    `json:"button_name"`
	AddedAt    time.Time `json:"added_at"`
}

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

type Withdrawal struct {
	WithdrawalID string     `gorm:"primaryKey" json:"withdrawal_id"`
	UserID       int64      `gorm:"index" json:"user_id"`
	Username     string     `json:"username"`
	Amount       int64      `json:"amount"`
	Status       string     `gorm:"default:pending;index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
}

type WithdrawalStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
