package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ItemStatus string

const (
	ItemStatusPendingApproval ItemStatus = "pending_approval"
	ItemStatusApproved        ItemStatus = "approved"
	ItemStatusListed          ItemStatus = "listed"
	ItemStatusSold            ItemStatus = "sold"
	ItemStatusUnsold          ItemStatus = "unsold"
	ItemStatusReturned        ItemStatus = "returned"
	ItemStatusDonated         ItemStatus = "donated"
)

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Item is a single clothing piece inside a request. SellerID and
// ReusseID are copied from the parent request at creation so listings
// and earnings can be queried without a join.
type Item struct {
	ID                    uint64     `gorm:"primaryKey;autoIncrement"`
	RequestID             uint64     `gorm:"column:request_id;index;not null"`
	SellerID              string     `gorm:"column:seller_id;size:128;index;not null"`
	ReusseID              string     `gorm:"column:reusse_id;size:128;index;not null"`
	Title                 string     `gorm:"size:255;not null"`
	Description           *string    `gorm:"type:text"`
	Brand                 *string    `gorm:"size:100"`
	Size                  *string    `gorm:"size:20"`
	Category              string     `gorm:"size:20;not null"`
	Condition             string     `gorm:"size:20;not null"`
	Photos                StringList `gorm:"type:text"`
	MinPrice              *float64   `gorm:"column:min_price;type:decimal(10,2)"`
	MaxPrice              *float64   `gorm:"column:max_price;type:decimal(10,2)"`
	ApprovedPrice         *float64   `gorm:"column:approved_price;type:decimal(10,2)"`
	PriceApprovedBySeller bool       `gorm:"column:price_approved_by_seller;default:false"`
	Status                ItemStatus `gorm:"column:status;size:20;index;not null;default:pending_approval"`
	ListedAt              *time.Time `gorm:"column:listed_at"`
	SoldAt                *time.Time `gorm:"column:sold_at"`
	SalePrice             *float64   `gorm:"column:sale_price;type:decimal(10,2)"`
	PlatformListedOn      *string    `gorm:"column:platform_listed_on;size:100"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
