package http

import (
	"conti/internal/core"
)

// JSON views. Dates render as YYYY-MM-DD, amounts as cents plus a
// preformatted decimal string.

type moneyView struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func viewMoney(m core.Money) moneyView {
	return moneyView{Cents: m.Cents, Display: m.String()}
}

type accountView struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Balance moneyView `json:"balance"`
}

func viewAccount(a core.Account) accountView {
	return accountView{ID: a.ID, Name: a.Name, Kind: string(a.Kind), Balance: viewMoney(a.Balance)}
}

type personView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type goalView struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Target   moneyView `json:"target"`
	Saved    moneyView `json:"saved"`
	Deadline string    `json:"deadline,omitempty"`
}

func viewGoal(g core.Goal) goalView {
	v := goalView{ID: g.ID, Name: g.Name, Target: viewMoney(g.Target), Saved: viewMoney(g.Saved)}
	if !g.Deadline.IsEmpty() {
		v.Deadline = g.Deadline.Format("2006-01-02")
	}
	return v
}

type cardView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
}

func viewCard(c core.Card) cardView {
	return cardView{ID: c.ID, Name: c.Name, ClosingDay: c.Billing.ClosingDay, DueDay: c.Billing.DueDay}
}

type transactionView struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      moneyView `json:"amount"`
	Primary     string    `json:"primary"`
	Secondary   string    `json:"secondary,omitempty"`
	CardID      int64     `json:"card_id,omitempty"`
	PersonID    int64     `json:"person_id,omitempty"`
}

func viewTransaction(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      viewMoney(t.Amount),
		Primary:     t.Primary,
		Secondary:   t.Secondary,
		CardID:      t.CardID,
		PersonID:    t.PersonID,
	}
}

func viewTransactions(ts []core.Transaction) []transactionView {
	views := make([]transactionView, 0, len(ts))
	for _, t := range ts {
		views = append(views, viewTransaction(t))
	}
	return views
}

type invoiceView struct {
	CardID       int64             `json:"card_id"`
	InvoiceYear  int               `json:"invoice_year"`
	InvoiceMonth int               `json:"invoice_month"`
	PeriodStart  string            `json:"period_start"`
	PeriodEnd    string            `json:"period_end"`
	DueDate      string            `json:"due_date"`
	Total        moneyView         `json:"total"`
	Items        []transactionView `json:"items"`
}

func viewInvoice(inv core.InvoiceOverview) invoiceView {
	return invoiceView{
		CardID:       inv.CardID,
		InvoiceYear:  inv.Period.Due.Year,
		InvoiceMonth: inv.Period.Due.Month,
		PeriodStart:  inv.Period.Start.Format("2006-01-02"),
		PeriodEnd:    inv.Period.End.Format("2006-01-02"),
		DueDate:      inv.DueDate.Format("2006-01-02"),
		Total:        viewMoney(inv.Total),
		Items:        viewTransactions(inv.Items),
	}
}

type bucketView struct {
	InvoiceYear  int               `json:"invoice_year"`
	InvoiceMonth int               `json:"invoice_month"`
	Total        moneyView         `json:"total"`
	Items        []transactionView `json:"items"`
}

type reportView struct {
	PersonID int64        `json:"person_id"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Total    moneyView    `json:"total"`
	Buckets  []bucketView `json:"buckets"`
}

func viewReport(rep core.PersonReport) reportView {
	v := reportView{
		PersonID: rep.PersonID,
		From:     formatInvoiceMonth(rep.From),
		To:       formatInvoiceMonth(rep.To),
		Total:    viewMoney(rep.Total),
		Buckets:  make([]bucketView, 0, len(rep.Buckets)),
	}
	for _, b := range rep.Buckets {
		v.Buckets = append(v.Buckets, bucketView{
			InvoiceYear:  b.Invoice.Year,
			InvoiceMonth: b.Invoice.Month,
			Total:        viewMoney(b.Total),
			Items:        viewTransactions(b.Items),
		})
	}
	return v
}

type categoryAmountView struct {
	Name   string    `json:"name"`
	Amount moneyView `json:"amount"`
}

type overviewView struct {
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Total      moneyView            `json:"total"`
	ByCategory []categoryAmountView `json:"by_category"`
}

func viewOverview(o core.MonthOverview) overviewView {
	v := overviewView{
		Year:       o.Year,
		Month:      o.Month,
		Total:      viewMoney(o.Total),
		ByCategory: make([]categoryAmountView, 0, len(o.ByCategory)),
	}
	for _, c := range o.ByCategory {
		v.ByCategory = append(v.ByCategory, categoryAmountView{Name: c.Name, Amount: viewMoney(c.Amount)})
	}
	return v
}

func formatInvoiceMonth(m core.InvoiceMonth) string {
	return core.NewDate(m.Year, m.Month, 1).Format("2006-01")
}

type createdResponse struct {
	ID int64 `json:"id"`
}
