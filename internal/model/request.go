package model

import "time"

type ServiceType string

const (
	ServiceTypeClassic     ServiceType = "classic"
	ServiceTypeExpress     ServiceType = "express"
	ServiceTypeSOSDressing ServiceType = "sos_dressing"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeClassic, ServiceTypeExpress, ServiceTypeSOSDressing:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusMatched    RequestStatus = "matched"
	RequestStatusScheduled  RequestStatus = "scheduled"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// requestStatusRank orders the forward path of the workflow. Used only
// when strict status flow is enabled; cancelled carries no rank because
// it is reachable from any non-terminal state.
var requestStatusRank = map[RequestStatus]int{
	RequestStatusPending:    0,
	RequestStatusMatched:    1,
	RequestStatusScheduled:  2,
	RequestStatusInProgress: 3,
	RequestStatusCompleted:  4,
}

// Before reports whether s comes before other on the forward path.
func (s RequestStatus) Before(other RequestStatus) bool {
	return requestStatusRank[s] < requestStatusRank[other]
}

// Request is a seller's batch engagement: "come pick up N items and
// sell them for me". ReusseID stays nil until exactly one approved
// reusse claims it.
type Request struct {
	ID              uint64        `gorm:"primaryKey;autoIncrement"`
	SellerID        string        `gorm:"column:seller_id;size:128;index;not null"`
	ReusseID        *string       `gorm:"column:reusse_id;size:128;index"`
	ServiceType     ServiceType   `gorm:"column:service_type;size:20;not null"`
	Status          RequestStatus `gorm:"column:status;size:20;index;not null;default:pending"`
	ItemCount       int           `gorm:"column:item_count;not null"`
	EstimatedValue  *float64      `gorm:"column:estimated_value;type:decimal(10,2)"`
	MeetingLocation *string       `gorm:"column:meeting_location;type:text"`
	Notes           *string       `gorm:"type:text"`
	CreatedAt       time.Time     `gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime"`
	CompletedAt     *time.Time    `gorm:"column:completed_at"`
}

func (Request) TableName() string {
	return "requests"
}

// IsParty reports whether uid is the seller or the assigned reusse.
func (r *Request) IsParty(uid string) bool {
	if uid == r.SellerID {
		return true
	}
	return r.ReusseID != nil && *r.ReusseID == uid
}

// Counterpart returns the other side of the request relative to uid,
// or "" when there is none (unassigned request, or uid not a party).
func (r *Request) Counterpart(uid string) string {
	if uid == r.SellerID {
		if r.ReusseID != nil {
			return *r.ReusseID
		}
		return ""
	}
	return r.SellerID
}
