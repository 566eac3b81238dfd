package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact spending summary for one calendar month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Total      Money
	ByCategory []CategoryAmount
}

// InvoiceOverview is the resolved detail of one card invoice: the period
// bounding its transactions, the payment deadline and the running total.
type InvoiceOverview struct {
	CardID  int64
	Period  BillPeriod
	DueDate Date
	Total   Money
	Items   []Transaction
}

// InvoiceBucket is one invoice month's share of a person's report.
type InvoiceBucket struct {
	Invoice InvoiceMonth
	Total   Money
	Items   []Transaction
}

// PersonReport groups one household member's card spending by resolved
// invoice month over a requested window.
type PersonReport struct {
	PersonID int64
	From     InvoiceMonth
	To       InvoiceMonth
	Total    Money
	Buckets  []InvoiceBucket
}
