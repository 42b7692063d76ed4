package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/solarhub/solarhub-admin/internal/view"
)

// Filter selects the transaction dataset.
type Filter string

// Transaction filter tabs.
const (
	FilterWeekly  Filter = "weekly"
	FilterMonthly Filter = "monthly"
	FilterYearly  Filter = "yearly"
)

// DefaultFilter applies to missing or unknown filter values.
const DefaultFilter = FilterMonthly

// FilterOption is one transaction filter tab.
type FilterOption struct {
	Value Filter
	Label string
}

// FilterOptions lists the tabs in display order.
var FilterOptions = []FilterOption{
	{Value: FilterWeekly, Label: "Weekly"},
	{Value: FilterMonthly, Label: "Monthly"},
	{Value: FilterYearly, Label: "Yearly"},
}

// ParseFilter maps a query value onto a known filter.
func ParseFilter(raw string) Filter {
	for _, opt := range FilterOptions {
		if string(opt.Value) == raw {
			return opt.Value
		}
	}
	return DefaultFilter
}

// Point is one period of the transaction dataset.
type Point struct {
	Label      string
	Loans      decimal.Decimal
	Repayments decimal.Decimal
}

// Order is one row of the latest orders list.
type Order struct {
	Name  string
	Price decimal.Decimal
	User  string
	Image string
}

// Stats are the dashboard summary tiles.
var Stats = []view.StatCard{
	{Title: "Total Users", Value: "12,480", Color: "blue", Icon: "users"},
	{Title: "Active Loans", Value: "3,215", Color: "green", Icon: "wallet"},
	{Title: "Pending Orders", Value: "146", Color: "orange", Icon: "cart"},
	{Title: "Total Revenue", Value: "₦84,650,000.00", Color: "purple", Icon: "chart"},
}

// Datasets holds the chart series per filter.
var Datasets = map[Filter][]Point{
	FilterWeekly: {
		point("Mon", "1250000", "830000"),
		point("Tue", "980000", "910000"),
		point("Wed", "1430000", "760000"),
		point("Thu", "1120000", "1040000"),
		point("Fri", "1675000", "1215000"),
		point("Sat", "720000", "480000"),
		point("Sun", "410000", "295000"),
	},
	FilterMonthly: {
		point("Jan", "18500000", "12400000"),
		point("Feb", "21300000", "14750000"),
		point("Mar", "19800000", "16200000"),
		point("Apr", "24600000", "17900000"),
		point("May", "27150000", "19300000"),
		point("Jun", "25400000", "21050000"),
		point("Jul", "29800000", "22400000"),
		point("Aug", "31200000", "24100000"),
		point("Sep", "28750000", "23600000"),
		point("Oct", "33400000", "25800000"),
		point("Nov", "35100000", "27300000"),
		point("Dec", "38900000", "29750000"),
	},
	FilterYearly: {
		point("2020", "96000000", "61000000"),
		point("2021", "148000000", "102500000"),
		point("2022", "212500000", "163000000"),
		point("2023", "287000000", "221400000"),
		point("2024", "334000000", "254600000"),
	},
}

// Orders are the latest orders.
var Orders = []Order{
	{Name: "5kVA Hybrid Inverter", Price: decimal.RequireFromString("1250000"), User: "Adaeze Okafor", Image: "/static/img/inverter.svg"},
	{Name: "450W Mono Solar Panel x8", Price: decimal.RequireFromString("1680000"), User: "Chinedu Eze", Image: "/static/img/panel.svg"},
	{Name: "200Ah Lithium Battery", Price: decimal.RequireFromString("985000.50"), User: "Garba Musa", Image: "/static/img/battery.svg"},
	{Name: "60A MPPT Charge Controller", Price: decimal.RequireFromString("145000"), User: "Funmilayo Bello"},
	{Name: "3.5kVA Inverter Kit", Price: decimal.RequireFromString("875500.75"), User: "Ifeanyi Obi", Image: "/static/img/inverter.svg"},
}

// OrdersTotal sums order prices exactly.
func OrdersTotal(orders []Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Price)
	}
	return total
}

func point(label, loans, repayments string) Point {
	return Point{Label: label, Loans: decimal.RequireFromString(loans), Repayments: decimal.RequireFromString(repayments)}
}
