package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"continuum/internal/models"
	"continuum/internal/services"
)

const dateLayout = "2006-01-02"

// Dashboard writes the dashboard summary as a markdown document.
func Dashboard(w io.Writer, s *services.DashboardSummary, currency string) {
	fmt.Fprintf(w, "# Dashboard\n\n")
	fmt.Fprintf(w, "_As of %s, looking %d days ahead._\n\n", s.GeneratedAt.Format(dateLayout), s.WindowDays)

	fmt.Fprintf(w, "| Figure | Value |\n|---|---:|\n")
	fmt.Fprintf(w, "| Monthly recurring | %s |\n", Money(s.MonthlyRecurringTotal, currency))
	fmt.Fprintf(w, "| Total asset value | %s |\n", Money(s.TotalAssetValue, currency))
	fmt.Fprintf(w, "| Subscriptions | %d |\n", s.SubscriptionCount)
	fmt.Fprintf(w, "| Recurring payments | %d |\n", s.RecurringPaymentCount)
	fmt.Fprintf(w, "| Assets | %d |\n", s.AssetCount)
	fmt.Fprintf(w, "| Warranties | %d |\n\n", s.WarrantyCount)

	fmt.Fprintf(w, "## Monthly breakdown\n\n")
	if len(s.MonthlyBreakdown) == 0 {
		fmt.Fprintf(w, "_Nothing recurring yet._\n\n")
	} else {
		fmt.Fprintf(w, "| Name | Category | Kind | Per month |\n|---|---|---|---:|\n")
		for _, item := range s.MonthlyBreakdown {
			kind := "Payment"
			if item.IsSubscription {
				kind = "Subscription"
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
				cell(item.Name), cell(item.Category), kind, Money(item.MonthlyEquivalent, currency))
		}
		fmt.Fprintln(w)
	}

	Upcoming(w, s.UpcomingRenewals, s.ExpiringWarranties, s.GeneratedAt, s.WindowDays, currency)
}

// Upcoming writes the renewal and warranty sections shared by the dashboard
// and the upcoming command. Dates are printed on now's calendar.
func Upcoming(w io.Writer, renewals []models.Subscription, warranties []models.Warranty, now time.Time, windowDays int, currency string) {
	fmt.Fprintf(w, "## Upcoming renewals\n\n")
	if len(renewals) == 0 {
		fmt.Fprintf(w, "_None in the next %d days._\n\n", windowDays)
	} else {
		fmt.Fprintf(w, "| Name | Due | When | Amount | Cycle |\n|---|---|---|---:|---|\n")
		for _, sub := range renewals {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				cell(sub.Name), sub.NextDueDate.In(now.Location()).Format(dateLayout), relativeDays(now, sub.NextDueDate),
				Money(sub.Amount, currency), sub.BillingCycle)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Expiring warranties\n\n")
	if len(warranties) == 0 {
		fmt.Fprintf(w, "_None in the next %d days._\n", windowDays)
		return
	}
	fmt.Fprintf(w, "| Product | Vendor | Expires | When |\n|---|---|---|---|\n")
	for _, wt := range warranties {
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			cell(wt.ProductName), cell(wt.Vendor), wt.ExpiryDate.In(now.Location()).Format(dateLayout), relativeDays(now, wt.ExpiryDate))
	}
}

// relativeDays describes t in calendar days from now.
func relativeDays(now, t time.Time) string {
	days := models.CalendarDaysBetween(now, t)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "1 day ago"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
