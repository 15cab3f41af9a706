package services

import (
	"sort"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/shopspring/decimal"
)

// MonthNames are the short Spanish month labels used in the monthly series.
var MonthNames = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type MonthStats struct {
	Month    string  `json:"mes"`
	Count    int     `json:"cotizaciones"`
	Total    float64 `json:"total"`
	Approved int     `json:"aprobadas"`
}

type StatusCount struct {
	Status models.Status `json:"estatus"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Count  int           `json:"value"`
}

type ClientStats struct {
	ClientID string  `json:"clienteId"`
	Name     string  `json:"nombre"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

type ItemStats struct {
	Name     string  `json:"nombre"`
	Quantity float64 `json:"count"`
	Total    float64 `json:"total"`
}

// Stats summarises every quotation.
type Stats struct {
	Year          int           `json:"anio"`
	TotalQuoted   float64       `json:"total"`
	TotalApproved float64       `json:"totalAprobado"`
	ApprovedCount int           `json:"aprobadas"`
	ApprovalRate  int           `json:"tasaAprobacion"`
	Monthly       []MonthStats  `json:"porMes"`
	ByStatus      []StatusCount `json:"porEstatus"`
	TopClients    []ClientStats `json:"topClientes"`
	TopItems      []ItemStats   `json:"topProductos"`
}

const topN = 5

// ComputeStats aggregates quotations by stored status. Monthly figures
// cover year only; status counts leave out statuses with no quotations.
func ComputeStats(quotes []models.Quotation, clients []models.Client, year int) Stats {
	st := Stats{Year: year, Monthly: make([]MonthStats, 12)}
	for i := range st.Monthly {
		st.Monthly[i].Month = MonthNames[i]
	}

	total, approved := decimal.Zero, decimal.Zero
	monthTotals := make([]decimal.Decimal, 12)
	statusCounts := map[models.Status]int{}

	type acc struct {
		count int
		qty   float64
		total decimal.Decimal
	}
	var clientOrder, itemOrder []string
	byClient := map[string]*acc{}
	byItem := map[string]*acc{}

	for _, q := range quotes {
		t := decimal.NewFromFloat(finite(q.Total))
		total = total.Add(t)
		statusCounts[q.Status]++
		if q.Status == models.StatusApproved {
			approved = approved.Add(t)
			st.ApprovedCount++
		}

		if d := q.IssueDate(); !d.IsZero() && d.Year() == year {
			m := int(d.Month()) - 1
			st.Monthly[m].Count++
			monthTotals[m] = monthTotals[m].Add(t)
			if q.Status == models.StatusApproved {
				st.Monthly[m].Approved++
			}
		}

		if q.ClientID != "" {
			a, ok := byClient[q.ClientID]
			if !ok {
				a = &acc{}
				byClient[q.ClientID] = a
				clientOrder = append(clientOrder, q.ClientID)
			}
			a.count++
			a.total = a.total.Add(t)
		}

		for _, item := range q.Items {
			a, ok := byItem[item.Name]
			if !ok {
				a = &acc{}
				byItem[item.Name] = a
				itemOrder = append(itemOrder, item.Name)
			}
			qty := item.Quantity.Float()
			if qty == 0 {
				qty = 1
			}
			a.qty += qty
			a.total = a.total.Add(decimal.NewFromFloat(finite(item.Price.Float() * item.Quantity.Float())))
		}
	}

	st.TotalQuoted = total.InexactFloat64()
	st.TotalApproved = approved.InexactFloat64()
	if len(quotes) > 0 {
		st.ApprovalRate = int(decimal.NewFromInt(int64(st.ApprovedCount)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(len(quotes)))).
			Round(0).IntPart())
	}
	for i := range st.Monthly {
		st.Monthly[i].Total = monthTotals[i].InexactFloat64()
	}

	for _, s := range models.Statuses {
		if n := statusCounts[s]; n > 0 {
			st.ByStatus = append(st.ByStatus, StatusCount{Status: s, Label: s.Label(), Color: s.Color(), Count: n})
		}
	}

	names := map[string]string{}
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	for _, id := range clientOrder {
		name, ok := names[id]
		if !ok || name == "" {
			name = models.UnknownClientName
		}
		a := byClient[id]
		st.TopClients = append(st.TopClients, ClientStats{ClientID: id, Name: name, Count: a.count, Total: a.total.InexactFloat64()})
	}
	sort.SliceStable(st.TopClients, func(i, j int) bool { return st.TopClients[i].Total > st.TopClients[j].Total })
	if len(st.TopClients) > topN {
		st.TopClients = st.TopClients[:topN]
	}

	for _, name := range itemOrder {
		a := byItem[name]
		st.TopItems = append(st.TopItems, ItemStats{Name: name, Quantity: a.qty, Total: a.total.InexactFloat64()})
	}
	sort.SliceStable(st.TopItems, func(i, j int) bool { return st.TopItems[i].Quantity > st.TopItems[j].Quantity })
	if len(st.TopItems) > topN {
		st.TopItems = st.TopItems[:topN]
	}
	return st
}

// Dashboard is the landing summary.
type Dashboard struct {
	Clients       int                `json:"clientes"`
	Products      int                `json:"productos"`
	Services      int                `json:"servicios"`
	Quotations    int                `json:"cotizaciones"`
	Approved      int                `json:"aprobadas"`
	TotalApproved float64            `json:"totalAprobado"`
	Pending       int                `json:"pendientes"`
	Recent        []models.Quotation `json:"recientes"`
}

// BuildDashboard counts the collections and picks the five latest quotations by fecha.
func BuildDashboard(snap models.Snapshot) Dashboard {
	d := Dashboard{
		Clients:    len(snap.Clients),
		Products:   len(snap.Products),
		Services:   len(snap.Services),
		Quotations: len(snap.Quotations),
	}
	approved := decimal.Zero
	for _, q := range snap.Quotations {
		switch q.Status {
		case models.StatusApproved:
			d.Approved++
			approved = approved.Add(decimal.NewFromFloat(finite(q.Total)))
		case models.StatusSent:
			d.Pending++
		}
	}
	d.TotalApproved = approved.InexactFloat64()

	recent := append([]models.Quotation{}, snap.Quotations...)
	sortByDateDesc(recent)
	if len(recent) > topN {
		recent = recent[:topN]
	}
	d.Recent = recent
	return d
}

// Stats computes the statistics for year, or for the current year when
// year is zero.
func (s *QuotationService) Stats(year int) Stats {
	if year <= 0 {
		year = s.opts.Now().Year()
	}
	return ComputeStats(s.store.Quotations.List(), s.store.Clients.List(), year)
}

// Dashboard summarises the current state.
func (s *QuotationService) Dashboard() Dashboard {
	return BuildDashboard(s.store.Snapshot())
}
