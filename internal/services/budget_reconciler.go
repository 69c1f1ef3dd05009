package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/repositories"

	"github.com/shopspring/decimal"
)

// BudgetReconciler applies spent-cache deltas in response to expense
// transaction writes. Income transactions never touch budgets. Deltas land
// as single UPDATE statements, so concurrent writes against the same budget
// key commute; when no budget exists for a key the delta is dropped without
// error, and no budget is ever created here.
type BudgetReconciler struct {
	budgetRepo repositories.BudgetRepositoryInterface
	location   *time.Location
	metrics    MetricsRecorderInterface
	logger     *slog.Logger
}

// NewBudgetReconciler creates a reconciler attributing transactions to
// months in the given location
func NewBudgetReconciler(
	budgetRepo repositories.BudgetRepositoryInterface,
	location *time.Location,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetReconcilerInterface {
	return &BudgetReconciler{
		budgetRepo: budgetRepo,
		location:   location,
		metrics:    metrics,
		logger:     logger,
	}
}

// OnTransactionCreated adds a new expense's amount to its budget's spent cache
func (r *BudgetReconciler) OnTransactionCreated(transaction *models.Transaction) error {
	if !transaction.IsExpense() {
		return nil
	}
	return r.apply("create", transaction, transaction.Amount)
}

// OnTransactionUpdated moves spent between the before and after budget keys.
// When the key is unchanged a single delta of (after - before) is applied;
// otherwise the before amount is withdrawn from the old key and the after
// amount added to the new one, each side a no-op if its budget is absent.
func (r *BudgetReconciler) OnTransactionUpdated(before, after *models.Transaction) error {
	beforeExpense := before.IsExpense()
	afterExpense := after.IsExpense()

	if beforeExpense && afterExpense && r.sameBudgetKey(before, after) {
		delta := after.Amount.Sub(before.Amount)
		if delta.IsZero() {
			return nil
		}
		return r.apply("update", after, delta)
	}

	if beforeExpense {
		if err := r.apply("update", before, before.Amount.Neg()); err != nil {
			return err
		}
	}
	if afterExpense {
		if err := r.apply("update", after, after.Amount); err != nil {
			return err
		}
	}
	return nil
}

// OnTransactionDeleted withdraws a deleted expense's amount from its budget
func (r *BudgetReconciler) OnTransactionDeleted(transaction *models.Transaction) error {
	if !transaction.IsExpense() {
		return nil
	}
	return r.apply("delete", transaction, transaction.Amount.Neg())
}

func (r *BudgetReconciler) sameBudgetKey(a, b *models.Transaction) bool {
	return a.Category == b.Category &&
		period.MonthOf(a.Date, r.location) == period.MonthOf(b.Date, r.location)
}

func (r *BudgetReconciler) apply(operation string, transaction *models.Transaction, delta decimal.Decimal) error {
	month := period.MonthOf(transaction.Date, r.location)

	applied, err := r.budgetRepo.ApplySpentDelta(transaction.UserID, transaction.Category, month, delta)
	if err != nil {
		r.metrics.RecordReconciliation(operation, "error")
		return fmt.Errorf("failed to reconcile budget for %s/%s: %w", transaction.Category, month, err)
	}

	if !applied {
		r.metrics.RecordReconciliation(operation, "no_budget")
		return nil
	}

	r.metrics.RecordReconciliation(operation, "applied")
	r.logger.Debug("budget spent adjusted",
		"user_id", transaction.UserID,
		"category", transaction.Category,
		"month", month,
		"delta", delta.String(),
	)
	return nil
}
