package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageQueued    MessageStatus = "queued"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageFailed    MessageStatus = "failed"
	MessageRetrying  MessageStatus = "retrying"
)

type MessageKind string

const (
	MessageReminder24h  MessageKind = "reminder_24h"
	MessageReminder2h   MessageKind = "reminder_2h"
	MessageConfirmation MessageKind = "confirmation"
	MessageSocialPost   MessageKind = "social_post"
)

// OutboundMessage is any notification leaving the system. Failed messages are
// retried by the retry engine while Attempts and age stay under the caps;
// after that they remain failed for operator visibility.
type OutboundMessage struct {
	gorm.Model
	SalonID        uint          `json:"salon_id" gorm:"index;not null"`
	AppointmentID  *uint         `json:"appointment_id,omitempty" gorm:"index"`
	Kind           MessageKind   `json:"kind" gorm:"not null"`
	Recipient      string        `json:"recipient" gorm:"not null"`
	Subject        string        `json:"subject"`
	Body           string        `json:"body" gorm:"type:text"`
	Status         MessageStatus `json:"status" gorm:"index;default:'queued'"`
	Attempts       int           `json:"attempts" gorm:"default:0"`
	LastError      string        `json:"last_error" gorm:"type:text"`
	IdempotencyKey string        `json:"idempotency_key" gorm:"uniqueIndex"`
	ProviderID     string        `json:"provider_id"`
	SentAt         *time.Time    `json:"sent_at,omitempty"`
}

func (m *OutboundMessage) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = MessageQueued
	}
	if m.IdempotencyKey == "" {
		m.IdempotencyKey = uuid.NewString()
	}
	return nil
}
