package core

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

func newTestWorkflow(store *memStore) *DamageWorkflow {
	return NewDamageWorkflow(store, zap.NewNop())
}

func fileTestReport(t *testing.T, workflow *DamageWorkflow, itemID uuid.UUID) *model.DamageReport {
	t.Helper()
	report, err := workflow.FileReport(context.Background(), ReportInput{
		ItemID:     itemID,
		DamageType: model.DamageAppliance,
		Severity:   model.SeveritySevere,
		ReportedBy: "E001",
		DamageDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("FileReport() error: %v", err)
	}
	return report
}

func TestFileReportMarksItemDamaged(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Smart TV", Condition: model.ConditionGood})

	workflow := newTestWorkflow(store)
	report := fileTestReport(t, workflow, item.ID)

	if report.Status != model.ReportPending {
		t.Fatalf("expected pending report, got %s", report.Status)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionDamaged {
		t.Fatalf("expected condition damaged, got %s", got)
	}
}

func TestFileReportRejectsOpenReport(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Smart TV", Condition: model.ConditionGood})

	workflow := newTestWorkflow(store)
	fileTestReport(t, workflow, item.ID)

	_, err := workflow.FileReport(context.Background(), ReportInput{
		ItemID:     item.ID,
		DamageType: model.DamageAppliance,
		Severity:   model.SeverityMinor,
		ReportedBy: "E002",
		DamageDate: time.Now(),
	})
	if !IsCode(err, CodeItemAlreadyReported) {
		t.Fatalf("expected item already reported, got %v", err)
	}
}

func TestFileReportValidation(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Lamp", Condition: model.ConditionGood})
	workflow := newTestWorkflow(store)

	_, err := workflow.FileReport(context.Background(), ReportInput{
		ItemID:     item.ID,
		DamageType: "vandalism",
		Severity:   model.SeverityMinor,
	})
	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation error for damage type, got %v", err)
	}

	cost := -5.0
	_, err = workflow.FileReport(context.Background(), ReportInput{
		ItemID:        item.ID,
		DamageType:    model.DamageOther,
		Severity:      model.SeverityMinor,
		EstimatedCost: &cost,
	})
	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation error for negative cost, got %v", err)
	}

	_, err = workflow.FileReport(context.Background(), ReportInput{
		ItemID:     uuid.New(),
		DamageType: model.DamageOther,
		Severity:   model.SeverityMinor,
	})
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}
}

func TestReportLifecycleSyncsCondition(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Smart TV", Condition: model.ConditionGood})
	workflow := newTestWorkflow(store)
	report := fileTestReport(t, workflow, item.ID)

	ctx := context.Background()

	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportInProgress); err != nil {
		t.Fatalf("pending -> in_progress: %v", err)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionRepairing {
		t.Fatalf("expected repairing, got %s", got)
	}

	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportResolved); err != nil {
		t.Fatalf("in_progress -> resolved: %v", err)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionGood {
		t.Fatalf("expected good after resolve, got %s", got)
	}
}

func TestReportSkipAheadResolve(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Chair", Condition: model.ConditionFair})
	workflow := newTestWorkflow(store)
	report := fileTestReport(t, workflow, item.ID)

	if _, err := workflow.AdvanceStatus(context.Background(), report.ID, model.ReportResolved); err != nil {
		t.Fatalf("pending -> resolved: %v", err)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionGood {
		t.Fatalf("expected good after skip-ahead resolve, got %s", got)
	}
}

func TestReportIllegalTransitions(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Desk", Condition: model.ConditionGood})
	workflow := newTestWorkflow(store)
	report := fileTestReport(t, workflow, item.ID)

	ctx := context.Background()

	// same-status is rejected
	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportPending); !IsCode(err, CodeInvalidTransition) {
		t.Fatalf("expected invalid transition for pending -> pending, got %v", err)
	}

	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportInProgress); err != nil {
		t.Fatalf("pending -> in_progress: %v", err)
	}

	// no backward transition
	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportPending); !IsCode(err, CodeInvalidTransition) {
		t.Fatalf("expected invalid transition for in_progress -> pending, got %v", err)
	}

	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportResolved); err != nil {
		t.Fatalf("in_progress -> resolved: %v", err)
	}

	// resolved is terminal; resolving twice fails
	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportResolved); !IsCode(err, CodeInvalidTransition) {
		t.Fatalf("expected invalid transition for second resolve, got %v", err)
	}
	if _, err := workflow.AdvanceStatus(ctx, report.ID, model.ReportInProgress); !IsCode(err, CodeInvalidTransition) {
		t.Fatalf("expected invalid transition out of resolved, got %v", err)
	}

	if _, err := workflow.AdvanceStatus(ctx, report.ID, "archived"); !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

// With two open reports on one item, resolving one keeps the condition owned
// by the other.
func TestResolveKeepsConditionWithOtherOpenReport(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Fridge", Condition: model.ConditionGood})
	workflow := newTestWorkflow(store)

	first := fileTestReport(t, workflow, item.ID)

	// Second open report injected directly; FileReport would reject it.
	second := model.DamageReport{
		ID: uuid.New(), ItemID: item.ID,
		DamageType: model.DamageElectrical, Severity: model.SeverityModerate,
		Status: model.ReportPending, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	store.reports[second.ID] = second

	if _, err := workflow.AdvanceStatus(context.Background(), first.ID, model.ReportResolved); err != nil {
		t.Fatalf("resolve first report: %v", err)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionDamaged {
		t.Fatalf("expected condition to stay damaged while second report open, got %s", got)
	}

	if _, err := workflow.AdvanceStatus(context.Background(), second.ID, model.ReportResolved); err != nil {
		t.Fatalf("resolve second report: %v", err)
	}
	if got := store.item(item.ID).Condition; got != model.ConditionGood {
		t.Fatalf("expected good after last open report resolved, got %s", got)
	}
}

func TestRecentlyRepairedWindow(t *testing.T) {
	store := newMemStore()
	item := store.addItem(model.InventoryItem{Name: "Smart TV", Condition: model.ConditionGood})

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	store.now = clock

	workflow := newTestWorkflow(store).WithClock(clock)
	report := fileTestReport(t, workflow, item.ID)

	resolved, err := workflow.AdvanceStatus(context.Background(), report.ID, model.ReportResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !workflow.RecentlyRepaired(resolved) {
		t.Fatal("expected recently repaired right after resolution")
	}

	current = current.Add(47 * time.Hour)
	if !workflow.RecentlyRepaired(resolved) {
		t.Fatal("expected recently repaired within the 2-day window")
	}

	current = current.Add(2 * time.Hour)
	if workflow.RecentlyRepaired(resolved) {
		t.Fatal("expected flag expired after the 2-day window")
	}

	pending := &model.DamageReport{Status: model.ReportPending, UpdatedAt: current}
	if workflow.RecentlyRepaired(pending) {
		t.Fatal("open reports are never recently repaired")
	}
}

func TestCountByStatusAndOpenReports(t *testing.T) {
	store := newMemStore()
	workflow := newTestWorkflow(store)
	ctx := context.Background()

	itemA := store.addItem(model.InventoryItem{Name: "TV", Condition: model.ConditionGood})
	itemB := store.addItem(model.InventoryItem{Name: "Sofa", Condition: model.ConditionGood})
	itemC := store.addItem(model.InventoryItem{Name: "Bed", Condition: model.ConditionGood})

	reportA := fileTestReport(t, workflow, itemA.ID)
	reportB := fileTestReport(t, workflow, itemB.ID)
	fileTestReport(t, workflow, itemC.ID)

	if _, err := workflow.AdvanceStatus(ctx, reportA.ID, model.ReportInProgress); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := workflow.AdvanceStatus(ctx, reportB.ID, model.ReportResolved); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	counts, err := workflow.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error: %v", err)
	}
	if counts[model.ReportPending] != 1 || counts[model.ReportInProgress] != 1 || counts[model.ReportResolved] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	open, err := workflow.ListOpenReports(ctx)
	if err != nil {
		t.Fatalf("ListOpenReports() error: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 open reports, got %d", len(open))
	}
}
