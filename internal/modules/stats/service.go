package stats

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hotelops/minibar-backend/internal/modules/checkout"
)

// ReceiptSource is the slice of the checkout repository the reports need.
type ReceiptSource interface {
	ListReceipts(ctx context.Context) ([]*checkout.Receipt, error)
}

// SalesReport aggregates revenue over all receipts.
type SalesReport struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ReceiptCount int             `json:"receipt_count"`
	Items        []ItemSale      `json:"item_sales"`
}

// ItemSale is one product's aggregate across all receipts, sorted by value.
type ItemSale struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// BuildingRevenue is one building's aggregate.
type BuildingRevenue struct {
	Building     int             `json:"building"`
	Revenue      decimal.Decimal `json:"revenue"`
	ReceiptCount int             `json:"receipt_count"`
}

// Service computes reports over the receipt log.
type Service interface {
	TotalSales(ctx context.Context) (*SalesReport, error)
	BuildingRevenue(ctx context.Context) ([]BuildingRevenue, error)
}

type service struct {
	receipts ReceiptSource
	log      *zap.Logger
}

// NewService creates a new stats service.
func NewService(receipts ReceiptSource, log *zap.Logger) Service {
	return &service{receipts: receipts, log: log.Named("stats")}
}

func (s *service) TotalSales(ctx context.Context) (*SalesReport, error) {
	receipts, err := s.receipts.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		TotalRevenue: decimal.Zero,
		ReceiptCount: len(receipts),
	}
	byProduct := map[string]*ItemSale{}

	for _, receipt := range receipts {
		report.TotalRevenue = report.TotalRevenue.Add(receipt.TotalBill)
		for _, item := range receipt.ConsumedItems {
			productID := item.ProductID.String()
			sale, ok := byProduct[productID]
			if !ok {
				// Receipts arrive newest first, so the first snapshot seen
				// is the product's current name.
				sale = &ItemSale{
					ProductID:   productID,
					ProductName: item.ProductName,
					TotalValue:  decimal.Zero,
				}
				byProduct[productID] = sale
			}
			sale.QuantitySold += item.Quantity
			sale.TotalValue = sale.TotalValue.Add(item.LineTotal)
		}
	}

	report.Items = make([]ItemSale, 0, len(byProduct))
	for _, sale := range byProduct {
		report.Items = append(report.Items, *sale)
	}
	sort.Slice(report.Items, func(i, j int) bool {
		if !report.Items[i].TotalValue.Equal(report.Items[j].TotalValue) {
			return report.Items[i].TotalValue.GreaterThan(report.Items[j].TotalValue)
		}
		return report.Items[i].ProductName < report.Items[j].ProductName
	})

	s.log.Debug("sales report computed",
		zap.Int("receipts", report.ReceiptCount),
		zap.Int("products", len(report.Items)))
	return report, nil
}

func (s *service) BuildingRevenue(ctx context.Context) ([]BuildingRevenue, error) {
	receipts, err := s.receipts.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}

	byBuilding := map[int]*BuildingRevenue{}
	for _, receipt := range receipts {
		agg, ok := byBuilding[receipt.Building]
		if !ok {
			agg = &BuildingRevenue{Building: receipt.Building, Revenue: decimal.Zero}
			byBuilding[receipt.Building] = agg
		}
		agg.Revenue = agg.Revenue.Add(receipt.TotalBill)
		agg.ReceiptCount++
	}

	result := make([]BuildingRevenue, 0, len(byBuilding))
	for _, agg := range byBuilding {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Building < result[j].Building })
	return result, nil
}
