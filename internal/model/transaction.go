package model

import (
	"math"
	"time"
)

// Commission split applied when an item sells. Fixed platform-wide.
const (
	SellerShare = 0.80
	ReusseShare = 0.20
)

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SplitSale computes both earnings for a sale price. Each side is
// rounded independently, so the parts may differ from the total by up
// to a cent.
func SplitSale(salePrice float64) (sellerEarning, reusseEarning float64) {
	return Round2(salePrice * SellerShare), Round2(salePrice * ReusseShare)
}

// Transaction is the immutable earnings-split record created exactly
// once per item sale. It is the sole source for earnings aggregation.
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	ItemID        uint64    `gorm:"column:item_id;index;not null"`
	RequestID     *uint64   `gorm:"column:request_id;index"`
	SellerID      string    `gorm:"column:seller_id;size:128;index;not null"`
	ReusseID      string    `gorm:"column:reusse_id;size:128;index;not null"`
	SalePrice     float64   `gorm:"column:sale_price;type:decimal(10,2);not null"`
	SellerEarning float64   `gorm:"column:seller_earning;type:decimal(10,2);not null"`
	ReusseEarning float64   `gorm:"column:reusse_earning;type:decimal(10,2);not null"`
	Status        string    `gorm:"size:20;not null;default:completed"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
