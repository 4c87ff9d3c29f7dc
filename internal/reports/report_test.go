package reports

import (
	"context"
	"testing"
)

func TestPreviousPeriod(t *testing.T) {
	from, to, err := previousPeriod("2025-06-08", "2025-06-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != "2025-06-01" || to != "2025-06-07" {
		t.Fatalf("expected 2025-06-01..2025-06-07, got %s..%s", from, to)
	}

	from, to, err = previousPeriod("2025-06-10", "2025-06-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != "2025-06-09" || to != "2025-06-09" {
		t.Fatalf("expected single previous day, got %s..%s", from, to)
	}
}

func TestDeltaPercent(t *testing.T) {
	if got := deltaPercent(150, 100); got != 50 {
		t.Fatalf("expected +50%%, got %v", got)
	}
	if got := deltaPercent(75, 100); got != -25 {
		t.Fatalf("expected -25%%, got %v", got)
	}
	if got := deltaPercent(10, 0); got != 0 {
		t.Fatalf("expected no delta against empty period, got %v", got)
	}
}

func TestWaiterReportWithDeltas(t *testing.T) {
	rows := newMemRows()
	_ = rows.Put(context.Background(), &Row{
		WaiterEmail: "anna@greentasty.com", LocationID: "loc-1", Date: "2025-06-03",
		OrdersProcessed: 2, WorkingHours: 3,
		ServiceRatings: []float64{4}, MinServiceRate: 4,
	})
	_ = rows.Put(context.Background(), &Row{
		WaiterEmail: "anna@greentasty.com", LocationID: "loc-1", Date: "2025-06-10",
		OrdersProcessed: 4, WorkingHours: 6,
		ServiceRatings: []float64{5, 3}, MinServiceRate: 3,
	})

	reporting := &Reports{Rows: rows}
	summary, err := reporting.WaiterReport(context.Background(),
		"anna@greentasty.com", "2025-06-08", "2025-06-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.OrdersProcessed != 4 {
		t.Fatalf("expected 4 orders, got %d", summary.OrdersProcessed)
	}
	if summary.OrdersDelta != 100 {
		t.Fatalf("expected +100%% orders, got %v", summary.OrdersDelta)
	}
	if summary.WorkingHours != 6 || summary.WorkingHoursDelta != 100 {
		t.Fatalf("expected doubled hours, got %v (%v%%)", summary.WorkingHours, summary.WorkingHoursDelta)
	}
	if summary.AvgServiceRating != 4 || summary.MinServiceRating != 3 {
		t.Fatalf("expected avg 4 min 3, got %v / %v", summary.AvgServiceRating, summary.MinServiceRating)
	}
}

func TestLocationReportFoldsWaiters(t *testing.T) {
	rows := newMemRows()
	_ = rows.Put(context.Background(), &Row{
		WaiterEmail: "anna@greentasty.com", LocationID: "loc-1", Date: "2025-06-10",
		OrdersProcessed: 2, Revenue: 40,
		CuisineRatings: []float64{4, 5}, MinCuisineRate: 4,
	})
	_ = rows.Put(context.Background(), &Row{
		WaiterEmail: "boris@greentasty.com", LocationID: "loc-1", Date: "2025-06-11",
		OrdersProcessed: 3, Revenue: 60,
		CuisineRatings: []float64{3}, MinCuisineRate: 3,
	})
	_ = rows.Put(context.Background(), &Row{
		WaiterEmail: "carol@greentasty.com", LocationID: "loc-2", Date: "2025-06-10",
		OrdersProcessed: 9, Revenue: 900,
	})

	reporting := &Reports{Rows: rows}
	summary, err := reporting.LocationReport(context.Background(),
		"loc-1", "2025-06-08", "2025-06-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.OrdersProcessed != 5 {
		t.Fatalf("expected 5 orders folded, got %d", summary.OrdersProcessed)
	}
	if summary.Revenue != 100 {
		t.Fatalf("expected revenue 100, got %v", summary.Revenue)
	}
	if summary.MinCuisineRating != 3 {
		t.Fatalf("expected min of mins 3, got %v", summary.MinCuisineRating)
	}
	if summary.AvgCuisineRating != 4 {
		t.Fatalf("expected avg 4, got %v", summary.AvgCuisineRating)
	}
}
