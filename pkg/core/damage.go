package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

// RecentlyRepairedWindow is the rolling window after resolution during which
// an item is flagged as recently repaired for display.
const RecentlyRepairedWindow = 48 * time.Hour

// DamageWorkflow is the state machine tying an item's condition to its damage
// reports: filing marks the item damaged, starting repair marks it repairing,
// and resolving the last open report returns it to good.
type DamageWorkflow struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewDamageWorkflow(store Store, logger *zap.Logger) *DamageWorkflow {
	return &DamageWorkflow{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the workflow clock. Used by tests.
func (w *DamageWorkflow) WithClock(now func() time.Time) *DamageWorkflow {
	w.now = now
	return w
}

type ReportInput struct {
	ItemID        uuid.UUID
	DamageType    model.DamageType
	Severity      model.DamageSeverity
	Description   string
	ReportedBy    string
	DamageDate    time.Time
	EstimatedCost *float64
	RepairNotes   string
}

func (in *ReportInput) validate() error {
	if !in.DamageType.IsValid() {
		return NewError(CodeValidation, "unrecognized damage type %q", in.DamageType)
	}
	if !in.Severity.IsValid() {
		return NewError(CodeValidation, "unrecognized severity %q", in.Severity)
	}
	if in.EstimatedCost != nil && *in.EstimatedCost < 0 {
		return NewError(CodeValidation, "estimated cost must not be negative")
	}
	return nil
}

// FileReport opens a damage report against an item and synchronizes the item's
// condition to damaged. Filing against an item that already has an open report
// is rejected so the report-to-condition link stays one-to-one.
func (w *DamageWorkflow) FileReport(ctx context.Context, in ReportInput) (*model.DamageReport, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var report *model.DamageReport
	err := w.store.InTx(ctx, func(tx Tx) error {
		item, err := tx.Item(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item.Condition.UnderRepair() {
			return ItemAlreadyReportedError(item)
		}
		open, err := tx.OpenReportsForItem(ctx, item.ID, uuid.Nil)
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return ItemAlreadyReportedError(item)
		}

		now := w.now()
		report = &model.DamageReport{
			ID:            uuid.New(),
			ItemID:        item.ID,
			DamageType:    in.DamageType,
			Severity:      in.Severity,
			Description:   in.Description,
			ReportedBy:    in.ReportedBy,
			DamageDate:    in.DamageDate,
			EstimatedCost: in.EstimatedCost,
			RepairNotes:   in.RepairNotes,
			Status:        model.ReportPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.CreateReport(ctx, report); err != nil {
			return err
		}
		return tx.SetItemCondition(ctx, item.ID, model.ConditionDamaged)
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("damage report filed",
		zap.String("report_id", report.ID.String()),
		zap.String("item_id", report.ItemID.String()),
		zap.String("severity", string(report.Severity)))
	return report, nil
}

func transitionAllowed(from, to model.ReportStatus) bool {
	switch from {
	case model.ReportPending:
		return to == model.ReportInProgress || to == model.ReportResolved
	case model.ReportInProgress:
		return to == model.ReportResolved
	default:
		// resolved is terminal
		return false
	}
}

// AdvanceStatus moves a report along pending -> in_progress -> resolved (the
// pending -> resolved shortcut included) and keeps the item's condition in
// step. Resolving returns the item to good unless another open report still
// holds it in a damaged or repairing state.
func (w *DamageWorkflow) AdvanceStatus(ctx context.Context, reportID uuid.UUID, newStatus model.ReportStatus) (*model.DamageReport, error) {
	if !newStatus.IsValid() {
		return nil, NewError(CodeValidation, "unrecognized report status %q", newStatus)
	}

	var updated *model.DamageReport
	err := w.store.InTx(ctx, func(tx Tx) error {
		report, err := tx.Report(ctx, reportID)
		if err != nil {
			return err
		}
		if !transitionAllowed(report.Status, newStatus) {
			return InvalidTransitionError(report.Status, newStatus)
		}

		updated, err = tx.SetReportStatus(ctx, report.ID, newStatus)
		if err != nil {
			return err
		}

		switch newStatus {
		case model.ReportInProgress:
			return tx.SetItemCondition(ctx, report.ItemID, model.ConditionRepairing)
		case model.ReportResolved:
			remaining, err := tx.OpenReportsForItem(ctx, report.ItemID, report.ID)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				// Another open report still owns the condition.
				return nil
			}
			return tx.SetItemCondition(ctx, report.ItemID, model.ConditionGood)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("damage report status changed",
		zap.String("report_id", updated.ID.String()),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

func (w *DamageWorkflow) ListOpenReports(ctx context.Context) ([]model.DamageReport, error) {
	var reports []model.DamageReport
	err := w.store.InTx(ctx, func(tx Tx) error {
		var err error
		reports, err = tx.OpenReports(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// CountByStatus backs the dashboard badges; the pending count drives the
// visible notification badge.
func (w *DamageWorkflow) CountByStatus(ctx context.Context) (map[model.ReportStatus]int64, error) {
	var counts map[model.ReportStatus]int64
	err := w.store.InTx(ctx, func(tx Tx) error {
		var err error
		counts, err = tx.CountReportsByStatus(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// RecentlyRepaired reports whether a resolved report falls within the rolling
// display window measured from its resolution timestamp.
func (w *DamageWorkflow) RecentlyRepaired(report *model.DamageReport) bool {
	if report.Status != model.ReportResolved {
		return false
	}
	return w.now().Sub(report.UpdatedAt) <= RecentlyRepairedWindow
}
