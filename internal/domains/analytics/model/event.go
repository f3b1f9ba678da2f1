package model

import (
	"encoding/json"
	"time"
)

// Event types mà frontend gửi lên; field event_type vẫn là free-form
const (
	EventPageView    = "page_view"
	EventButtonClick = "button_click"
	EventSocialClick = "social_click"
)

// SummaryEventTypes là các type được đếm trong Summary
var SummaryEventTypes = []string{EventPageView, EventButtonClick, EventSocialClick}

// Event là một dòng append-only trong analytics_events
type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventData json.RawMessage `json:"event_data,omitempty"`
	UserAgent string          `json:"user_agent"`
	IPAddress string          `json:"ip_address"`
	CreatedAt time.Time       `json:"created_at"`
}

// TrackRequest không có schema: eventData lưu nguyên văn
type TrackRequest struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
}

func (r TrackRequest) ToEntity(userAgent, ip string) *Event {
	data := r.EventData
	if len(data) == 0 || string(data) == "null" {
		data = nil
	}
	return &Event{
		EventType: r.EventType,
		EventData: data,
		UserAgent: userAgent,
		IPAddress: ip,
	}
}

type Summary struct {
	PageViews        int64 `json:"page_views"`
	ButtonClicks     int64 `json:"button_clicks"`
	SocialClicks     int64 `json:"social_clicks"`
	TotalSubscribers int64 `json:"total_subscribers"`
}
