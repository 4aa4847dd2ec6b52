package filter

import (
	"testing"
	"time"

	"github.com/amirvolinsky/fruitVeggieComparator/internal/reconcile"
	"github.com/amirvolinsky/fruitVeggieComparator/internal/tabular"
)

func date(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(day int) *time.Time {
	d := date(day)
	return &d
}

// fixtureResult builds a small reconciled table with two clients, two
// documents and three statuses across four rows.
func fixtureResult() *reconcile.Result {
	rows := []*reconcile.Row{
		{
			Cells:  tabular.Row{"לקוח": "מעדניית הגן", "תעודה": "1001", "פריט": "תפוח", "תאריך אספקה": "06/06/2024"},
			Date:   date(5),
			SKU:    "1",
			Status: reconcile.StatusMatch,
		},
		{
			Cells:  tabular.Row{"לקוח": "מעדניית הגן", "תעודה": "1002", "פריט": "אגס", "תאריך אספקה": "11/06/2024"},
			Date:   date(10),
			SKU:    "2",
			Status: reconcile.StatusPriceMismatch,
		},
		{
			Cells:  tabular.Row{"לקוח": "ירקות העמק", "תעודה": "1003", "פריט": "גזר", "תאריך אספקה": "21/06/2024"},
			Date:   date(20),
			SKU:    "3",
			Status: reconcile.StatusMissingFromPriceList,
		},
		{
			Cells:  tabular.Row{"לקוח": "ירקות העמק", "תעודה": "1004", "פריט": "מלפפון", "תאריך אספקה": "לא סופק"},
			Date:   date(25),
			SKU:    "4",
			Status: reconcile.StatusMatch,
		},
	}
	return &reconcile.Result{
		Columns:    []string{"תאריך", "מקט", "פריט", "לקוח", "תעודה", "תאריך אספקה", "סטטוס"},
		Rows:       rows,
		SKUColumn:  "מקט",
		ItemColumn: "פריט",
		Month:      time.June,
	}
}

func skus(result *reconcile.Result) []string {
	out := make([]string, 0, result.Len())
	for _, row := range result.Rows {
		out = append(out, row.SKU)
	}
	return out
}

func equalSKUs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmptySpecIsNoOp(t *testing.T) {
	result := fixtureResult()

	if (&Spec{}).Active() {
		t.Error("empty spec should not be active")
	}
	if (*Spec)(nil).Active() {
		t.Error("nil spec should not be active")
	}

	filtered := Apply(result, &Spec{}, DefaultConfig())
	if filtered != result {
		t.Error("empty spec should return the input unchanged")
	}
}

func TestClientPredicate(t *testing.T) {
	filtered := Apply(fixtureResult(), &Spec{Clients: []string{"מעדניית הגן"}}, DefaultConfig())
	if !equalSKUs(skus(filtered), "1", "2") {
		t.Errorf("client filter kept %v, want [1 2]", skus(filtered))
	}
}

func TestPredicatesCombineWithAND(t *testing.T) {
	spec := &Spec{
		Clients:  []string{"מעדניית הגן"},
		Statuses: []string{string(reconcile.StatusPriceMismatch)},
	}
	filtered := Apply(fixtureResult(), spec, DefaultConfig())
	if !equalSKUs(skus(filtered), "2") {
		t.Errorf("combined filter kept %v, want [2]", skus(filtered))
	}
}

func TestSKUAndDocumentPredicates(t *testing.T) {
	filtered := Apply(fixtureResult(), &Spec{SKUs: []string{"3", "4"}}, DefaultConfig())
	if !equalSKUs(skus(filtered), "3", "4") {
		t.Errorf("sku filter kept %v, want [3 4]", skus(filtered))
	}

	filtered = Apply(fixtureResult(), &Spec{Documents: []string{"1003"}}, DefaultConfig())
	if !equalSKUs(skus(filtered), "3") {
		t.Errorf("document filter kept %v, want [3]", skus(filtered))
	}
}

func TestDateRangeInclusive(t *testing.T) {
	spec := &Spec{DateFrom: datePtr(10), DateTo: datePtr(20)}
	filtered := Apply(fixtureResult(), spec, DefaultConfig())
	if !equalSKUs(skus(filtered), "2", "3") {
		t.Errorf("date range kept %v, want [2 3]", skus(filtered))
	}
}

func TestDeliveryRangeSkipsUnparseableCells(t *testing.T) {
	spec := &Spec{DeliveryFrom: datePtr(1), DeliveryTo: datePtr(30)}
	filtered := Apply(fixtureResult(), spec, DefaultConfig())
	// SKU 4 has a non-date delivery cell and must fail the active range.
	if !equalSKUs(skus(filtered), "1", "2", "3") {
		t.Errorf("delivery range kept %v, want [1 2 3]", skus(filtered))
	}
}

func TestItemContainsCaseInsensitive(t *testing.T) {
	result := fixtureResult()
	result.Rows[0].Cells["פריט"] = "Apple Fuji"

	filtered := Apply(result, &Spec{ItemContains: "apple"}, DefaultConfig())
	if !equalSKUs(skus(filtered), "1") {
		t.Errorf("item filter kept %v, want [1]", skus(filtered))
	}
}

func TestUnresolvableColumnExcludesNothing(t *testing.T) {
	result := fixtureResult()
	result.Columns = []string{"תאריך", "מקט", "פריט", "סטטוס"}
	for _, row := range result.Rows {
		delete(row.Cells, "לקוח")
		delete(row.Cells, "תאריך אספקה")
	}

	filtered := Apply(result, &Spec{Clients: []string{"מעדניית הגן"}}, DefaultConfig())
	if filtered.Len() != 4 {
		t.Errorf("unresolvable client column kept %d rows, want all 4", filtered.Len())
	}

	spec := &Spec{DeliveryFrom: datePtr(1), DeliveryTo: datePtr(30)}
	filtered = Apply(result, spec, DefaultConfig())
	if filtered.Len() != 4 {
		t.Errorf("unresolvable delivery column kept %d rows, want all 4", filtered.Len())
	}
}

func TestItemContainsWithoutItemColumn(t *testing.T) {
	result := fixtureResult()
	result.ItemColumn = ""

	filtered := Apply(result, &Spec{ItemContains: "תפוח"}, DefaultConfig())
	if filtered.Len() != 4 {
		t.Errorf("item filter without an item column kept %d rows, want all 4", filtered.Len())
	}
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	result := fixtureResult()
	filtered := Apply(result, &Spec{Statuses: []string{string(reconcile.StatusMatch)}}, DefaultConfig())

	if !equalSKUs(skus(filtered), "1", "4") {
		t.Errorf("status filter kept %v, want [1 4]", skus(filtered))
	}
	if result.Len() != 4 {
		t.Errorf("input was mutated, now %d rows", result.Len())
	}
	if filtered.ItemColumn != result.ItemColumn || filtered.Month != result.Month {
		t.Error("filtered result should share column metadata")
	}
}
