package server

import (
	"sort"
	"time"

	"github.com/ladelicato/salesbot/store"
)

const chartWindow = 7

// computeMetrics aggregates the sale log into the dashboard numbers:
// today's and this month's totals, a per-day chart over the last
// chartWindow sales, and today's five most recent sales.
func computeMetrics(sales []store.SaleRecord, pendingClients int, botOnline bool, now time.Time) MetricsResponse {
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	var todaySales, monthSales float64
	var salesToday []store.SaleRecord

	for _, sale := range sales {
		day := sale.Timestamp.Format("2006-01-02")
		if day == today {
			todaySales += sale.Amount
			salesToday = append(salesToday, sale)
		}
		if sale.Timestamp.Format("2006-01") == month {
			monthSales += sale.Amount
		}
	}

	buckets := make(map[string]float64)
	chartSales := sales
	if len(chartSales) > chartWindow {
		chartSales = chartSales[len(chartSales)-chartWindow:]
	}
	for _, sale := range chartSales {
		buckets[sale.Timestamp.Format("2006-01-02")] += sale.Amount
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	chart := make([]ChartPoint, 0, len(days))
	for _, day := range days {
		chart = append(chart, ChartPoint{Day: day, Amount: buckets[day]})
	}

	sort.Slice(salesToday, func(i, j int) bool {
		return salesToday[i].Timestamp.After(salesToday[j].Timestamp)
	})
	recent := salesToday
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return MetricsResponse{
		TodaySales:     todaySales,
		MonthSales:     monthSales,
		ActiveSellers:  len(salesToday),
		PendingClients: pendingClients,
		ChartData:      chart,
		RecentSales:    recent,
		BotOnline:      botOnline,
		LastUpdate:     now.Format("15:04:05"),
	}
}

// pendingClients counts threads awaiting human follow-up: pending minus
// everything already answered.
func pendingClients(pending, answered []string) int {
	done := make(map[string]bool, len(answered))
	for _, id := range answered {
		done[id] = true
	}

	count := 0
	for _, id := range pending {
		if !done[id] {
			count++
		}
	}
	return count
}
