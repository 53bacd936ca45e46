package types

import "time"

type Status string

const (
	PendingStatus    Status = "pending"
	InProgressStatus Status = "in_progress"
	CompletedStatus  Status = "completed"
	CancelledStatus  Status = "cancelled"
)

// CanAdvanceTo reports whether a staff action may move an order from s to next.
// Status only ever moves forward; completed and cancelled are terminal.
func (s Status) CanAdvanceTo(next Status) bool {
	switch s {
	case PendingStatus:
		return next == InProgressStatus || next == CancelledStatus
	case InProgressStatus:
		return next == CompletedStatus || next == CancelledStatus
	default:
		return false
	}
}

type Timeline string

const (
	UrgentTimeline   Timeline = "urgent"
	TwoWeeksTimeline Timeline = "two_weeks"
	OneMonthTimeline Timeline = "one_month"
	FlexibleTimeline Timeline = "flexible"
)

func ValidTimeline(t Timeline) bool {
	switch t {
	case UrgentTimeline, TwoWeeksTimeline, OneMonthTimeline, FlexibleTimeline, "":
		return true
	}
	return false
}

type Priority string

const (
	LowPriority    Priority = "low"
	MediumPriority Priority = "medium"
	HighPriority   Priority = "high"
)

type Contact struct {
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Discord   string `json:"discord,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Empty reports whether no contact channel was filled in.
func (c Contact) Empty() bool {
	return c.Phone == "" && c.Email == "" && c.Discord == "" && c.Instagram == ""
}

type Order struct {
	ID           string    `json:"id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Contact      Contact   `json:"contact"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Features     []string  `json:"features,omitempty"`
	Plan         string    `json:"plan,omitempty"`
	Budget       string    `json:"budget,omitempty"`
	Timeline     Timeline  `json:"timeline,omitempty"`
	Priority     Priority  `json:"priority,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

type Promotion struct {
	Active        bool    `json:"active"`
	DiscountType  string  `json:"discount_type,omitempty"`
	DiscountValue float64 `json:"discount_value,omitempty"`
	Description   string  `json:"description,omitempty"`
}

type Plan struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Currency  string     `json:"currency"`
	Features  []string   `json:"features,omitempty"`
	Active    bool       `json:"active"`
	Order     int        `json:"order"`
	Promotion *Promotion `json:"promotion,omitempty"`
}

type MainCategory struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Active      bool   `json:"active"`
	Order       int    `json:"order"`
}

type FeatureToggle struct {
	ID          string `json:"id,omitempty"`
	Key         string `json:"key"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}
