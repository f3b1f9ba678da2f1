package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"b2bees-backend/internal/shared/utils"
)

const DefaultSource = "website"

type Subscriber struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	Source      string    `json:"source"`
	BeeID       *int64    `json:"bee_id,omitempty"`
	UseCaseSlug *string   `json:"use_case_slug,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubscribeRequest là body của POST /api/subscribe (camelCase giữ nguyên như frontend gửi)
type SubscribeRequest struct {
	Email       string `json:"email"`
	Source      string `json:"source"`
	BeeID       *int64 `json:"beeId"`
	UseCaseSlug string `json:"useCaseSlug"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = DefaultSource
	}
	r.UseCaseSlug = strings.TrimSpace(r.UseCaseSlug)
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat, validation.Length(0, 254)),
		validation.Field(&r.Source, validation.Length(0, 50)),
		validation.Field(&r.BeeID, validation.Min(int64(1))),
		validation.Field(&r.UseCaseSlug, validation.Length(0, 200)),
	)
}

// ToEntity: subscriber mới luôn active
func (r SubscribeRequest) ToEntity() *Subscriber {
	return &Subscriber{
		Email:       r.Email,
		IsActive:    true,
		Source:      r.Source,
		BeeID:       r.BeeID,
		UseCaseSlug: utils.StringPtr(r.UseCaseSlug),
	}
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

func (r UnsubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// SubscribeResult: Created = false nghĩa là row cũ được reactivate
type SubscribeResult struct {
	Subscriber *Subscriber
	Created    bool
}
