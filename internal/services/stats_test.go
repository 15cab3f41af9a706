package services

import (
	"math"
	"testing"

	"github.com/diewo77/go-cotizaciones/internal/models"
)

func quote(id, client, date string, status models.Status, total float64, items ...models.LineItem) models.Quotation {
	return models.Quotation{ID: id, ClientID: client, Date: date, Status: status, Items: items, Totals: models.Totals{Total: total}}
}

func TestComputeStats(t *testing.T) {
	clients := []models.Client{{ID: "a", Name: "Ana"}, {ID: "b", Name: "Beto"}}
	quotes := []models.Quotation{
		quote("1", "a", "2025-01-10", models.StatusApproved, 100.1, models.LineItem{Name: "Cable", Price: 10, Quantity: 3}),
		quote("2", "a", "2025-01-20", models.StatusSent, 200.2, models.LineItem{Name: "Cable", Price: 10, Quantity: 2}),
		quote("3", "b", "2025-03-01", models.StatusApproved, 50, models.LineItem{Name: "Soporte", Price: 400, Quantity: 1}),
		quote("4", "x", "2024-12-01", models.StatusRejected, 1000),
	}

	st := ComputeStats(quotes, clients, 2025)

	if !almostEqual(st.TotalQuoted, 1350.3) || !almostEqual(st.TotalApproved, 150.1) {
		t.Errorf("totals = %v / %v", st.TotalQuoted, st.TotalApproved)
	}
	if st.ApprovedCount != 2 || st.ApprovalRate != 50 {
		t.Errorf("approval = %d / %d%%", st.ApprovedCount, st.ApprovalRate)
	}

	jan := st.Monthly[0]
	if jan.Month != "Ene" || jan.Count != 2 || !almostEqual(jan.Total, 300.3) || jan.Approved != 1 {
		t.Errorf("january = %+v", jan)
	}
	if st.Monthly[2].Count != 1 || st.Monthly[11].Count != 0 {
		t.Errorf("2024 quotations must not land in the 2025 series: %+v", st.Monthly)
	}

	if len(st.ByStatus) != 3 {
		t.Fatalf("statuses with zero quotations should be omitted: %+v", st.ByStatus)
	}
	if st.ByStatus[0].Status != models.StatusSent || st.ByStatus[1].Count != 2 || st.ByStatus[1].Label != "Aprobada" {
		t.Errorf("by status = %+v", st.ByStatus)
	}

	if st.TopClients[0].Name != models.UnknownClientName || st.TopClients[1].Name != "Ana" || st.TopClients[1].Count != 2 {
		t.Errorf("top clients = %+v", st.TopClients)
	}
	if st.TopItems[0].Name != "Cable" || st.TopItems[0].Quantity != 5 || !almostEqual(st.TopItems[0].Total, 50) {
		t.Errorf("top items = %+v", st.TopItems)
	}
}

func TestComputeStats_NonFiniteValuesCountAsZero(t *testing.T) {
	huge := models.LineItem{Name: "Cable", Price: 1e200, Quantity: 1e200}
	quotes := []models.Quotation{
		quote("1", "a", "2025-01-10", models.StatusApproved, math.NaN(), huge),
		quote("2", "a", "2025-01-11", models.StatusApproved, math.Inf(1)),
		quote("3", "a", "2025-01-12", models.StatusApproved, 10),
	}

	st := ComputeStats(quotes, nil, 2025)

	if !almostEqual(st.TotalQuoted, 10) || !almostEqual(st.TotalApproved, 10) {
		t.Errorf("totals = %v / %v", st.TotalQuoted, st.TotalApproved)
	}
	if st.TopItems[0].Total != 0 {
		t.Errorf("overflowing line should add nothing: %+v", st.TopItems[0])
	}
	d := BuildDashboard(models.Snapshot{Quotations: quotes})
	if !almostEqual(d.TotalApproved, 10) {
		t.Errorf("dashboard total approved = %v", d.TotalApproved)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil, nil, 2025)
	if st.ApprovalRate != 0 || st.TotalQuoted != 0 || len(st.Monthly) != 12 {
		t.Errorf("empty stats = %+v", st)
	}
}

func TestComputeStats_RoundsRateAndCapsTop(t *testing.T) {
	var quotes []models.Quotation
	for i := 0; i < 7; i++ {
		status := models.StatusDraft
		if i < 2 {
			status = models.StatusApproved
		}
		id := string(rune('a' + i))
		quotes = append(quotes, quote(id, id, "2025-05-01", status, float64(i),
			models.LineItem{Name: "item-" + id, Quantity: models.Number(i + 1), Price: 1}))
	}
	st := ComputeStats(quotes, nil, 2025)
	if st.ApprovalRate != 29 {
		t.Errorf("2/7 should round to 29, got %d", st.ApprovalRate)
	}
	if len(st.TopClients) != 5 || len(st.TopItems) != 5 {
		t.Errorf("top lists should hold five entries: %d / %d", len(st.TopClients), len(st.TopItems))
	}
	if st.TopItems[0].Name != "item-g" || st.TopClients[0].Total != 6 {
		t.Errorf("ordering = %+v / %+v", st.TopItems[0], st.TopClients[0])
	}
}

func TestBuildDashboard(t *testing.T) {
	snap := models.DefaultSnapshot()
	snap.Clients = []models.Client{{ID: "a"}}
	for i, d := range []string{"2025-01-01", "2025-06-01", "2025-03-01", "2025-02-01", "2025-05-01", "2025-04-01"} {
		status := models.StatusDraft
		switch i {
		case 0:
			status = models.StatusApproved
		case 1, 2:
			status = models.StatusSent
		}
		snap.Quotations = append(snap.Quotations, quote(d, "a", d, status, 10))
	}
	d := BuildDashboard(snap)
	if d.Clients != 1 || d.Quotations != 6 || d.Pending != 2 || d.Approved != 1 || d.TotalApproved != 10 {
		t.Errorf("dashboard = %+v", d)
	}
	if len(d.Recent) != 5 || d.Recent[0].Date != "2025-06-01" || d.Recent[4].Date != "2025-02-01" {
		t.Errorf("recent = %+v", d.Recent)
	}
}
