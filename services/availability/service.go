package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	availabilityRepo "slotwise/database/repository/availability"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
)

// Service is the business-logic interface for availability rules. Every
// write runs through the conflict guard; every read resolves through the
// same engine the guard uses.
type Service interface {
	CreateBase(ctx context.Context, providerID string, in models.ScheduleRuleInput) (*models.AvailabilityBase, error)
	UpdateBase(ctx context.Context, providerID, baseID string, in models.ScheduleRuleInput) (*models.AvailabilityBase, error)
	DeleteBase(ctx context.Context, providerID, baseID string) error
	ListBases(ctx context.Context, providerID string) ([]models.AvailabilityBase, error)

	CreateException(ctx context.Context, providerID, baseID string, in models.ExceptionInput) (*models.AvailabilityException, error)
	DeleteException(ctx context.Context, providerID, baseID, excID string) error

	CreateTimeOff(ctx context.Context, providerID string, in models.ScheduleRuleInput) (*models.TimeOff, error)
	ListTimeOff(ctx context.Context, providerID string) ([]models.TimeOff, error)
	DeleteTimeOff(ctx context.Context, providerID, timeOffID string) error

	IsAvailable(ctx context.Context, providerID string, at time.Time) (bool, error)
	GetDayAvailability(ctx context.Context, providerID string, day time.Time) ([]models.AvailableInterval, error)
}

// Write-serialization keys, per provider and kind.
const (
	kindBase      = "base"
	kindException = "exception"
	kindTimeOff   = "timeoff"
)

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo      availabilityRepo.AvailabilityRepository
	Providers providerRepo.ProviderRepository
	locks     *keyedLocks
}

// NewService wires the service with its injected stores.
func NewService(repo availabilityRepo.AvailabilityRepository, providers providerRepo.ProviderRepository) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Repo:      repo,
		Providers: providers,
		locks:     newKeyedLocks(),
	}
}

func (s *DefaultAvailabilityService) CreateBase(ctx context.Context, providerID string, in models.ScheduleRuleInput) (*models.AvailabilityBase, error) {
	rule, err := NormalizeInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProvider(ctx, providerID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lockKey(providerID, kindBase))
	defer unlock()

	existing, err := s.Repo.ListBases(ctx, providerID)
	if err != nil {
		return nil, storeError(err, "list availability")
	}
	if err := CheckConflict(rule, baseRules(existing, "")); err != nil {
		return nil, err
	}

	base := baseFromRule(providerID, rule)
	if err := s.Repo.InsertBase(ctx, base); err != nil {
		return nil, storeError(err, "insert availability")
	}
	return base, nil
}

func (s *DefaultAvailabilityService) UpdateBase(ctx context.Context, providerID, baseID string, in models.ScheduleRuleInput) (*models.AvailabilityBase, error) {
	rule, err := NormalizeInput(in)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lockKey(providerID, kindBase))
	defer unlock()

	current, err := s.Repo.GetBase(ctx, providerID, baseID)
	if err != nil {
		return nil, storeError(err, "load availability")
	}

	existing, err := s.Repo.ListBases(ctx, providerID)
	if err != nil {
		return nil, storeError(err, "list availability")
	}
	if err := CheckConflict(rule, baseRules(existing, baseID)); err != nil {
		return nil, err
	}

	// A narrowed base must still contain every exception carved from it.
	excs, err := s.Repo.ListExceptions(ctx, baseID)
	if err != nil {
		return nil, storeError(err, "list exceptions")
	}
	for _, e := range excs {
		if err := CheckContainment(e.StartMinute, e.EndMinute, rule); err != nil {
			return nil, err
		}
	}

	updated := baseFromRule(providerID, rule)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if err := s.Repo.UpdateBase(ctx, updated); err != nil {
		return nil, storeError(err, "update availability")
	}
	return updated, nil
}

// DeleteBase removes a base and cascades to its exceptions; an exception
// never outlives the base it carves.
func (s *DefaultAvailabilityService) DeleteBase(ctx context.Context, providerID, baseID string) error {
	unlock := s.locks.Lock(lockKey(providerID, kindBase))
	defer unlock()

	if err := s.Repo.DeleteBase(ctx, providerID, baseID); err != nil {
		return storeError(err, "delete availability")
	}
	if err := s.Repo.DeleteExceptionsByBase(ctx, baseID); err != nil {
		return storeError(err, "delete exceptions")
	}
	return nil
}

func (s *DefaultAvailabilityService) ListBases(ctx context.Context, providerID string) ([]models.AvailabilityBase, error) {
	bases, err := s.Repo.ListBases(ctx, providerID)
	if err != nil {
		return nil, storeError(err, "list availability")
	}
	return bases, nil
}

func (s *DefaultAvailabilityService) CreateException(ctx context.Context, providerID, baseID string, in models.ExceptionInput) (*models.AvailabilityException, error) {
	startMin, endMin, err := parseClockRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	base, err := s.Repo.GetBase(ctx, providerID, baseID)
	if err != nil {
		return nil, storeError(err, "load availability")
	}
	baseRule := RuleFromBase(*base)
	if err := CheckContainment(startMin, endMin, baseRule); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lockKey(providerID, kindException+":"+baseID))
	defer unlock()

	siblings, err := s.Repo.ListExceptions(ctx, baseID)
	if err != nil {
		return nil, storeError(err, "list exceptions")
	}
	candidate := baseRule
	candidate.Interval.StartMinute = startMin
	candidate.Interval.EndMinute = endMin
	existing := make([]ExistingRule, 0, len(siblings))
	for _, e := range siblings {
		existing = append(existing, ExistingRule{ID: e.ID, Rule: RuleFromException(e, *base)})
	}
	if err := CheckConflict(candidate, existing); err != nil {
		return nil, err
	}

	exc := &models.AvailabilityException{
		BaseID:      baseID,
		ProviderID:  providerID,
		StartMinute: startMin,
		EndMinute:   endMin,
		Reason:      in.Reason,
	}
	if err := s.Repo.InsertException(ctx, exc); err != nil {
		return nil, storeError(err, "insert exception")
	}
	return exc, nil
}

func (s *DefaultAvailabilityService) DeleteException(ctx context.Context, providerID, baseID, excID string) error {
	// Resolve the base first so a provider can only touch its own exceptions.
	if _, err := s.Repo.GetBase(ctx, providerID, baseID); err != nil {
		return storeError(err, "load availability")
	}
	if err := s.Repo.DeleteException(ctx, baseID, excID); err != nil {
		return storeError(err, "delete exception")
	}
	return nil
}

func (s *DefaultAvailabilityService) CreateTimeOff(ctx context.Context, providerID string, in models.ScheduleRuleInput) (*models.TimeOff, error) {
	rule, err := NormalizeInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProvider(ctx, providerID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lockKey(providerID, kindTimeOff))
	defer unlock()

	existing, err := s.Repo.ListTimeOff(ctx, providerID)
	if err != nil {
		return nil, storeError(err, "list time off")
	}
	rules := make([]ExistingRule, 0, len(existing))
	for _, t := range existing {
		rules = append(rules, ExistingRule{ID: t.ID, Rule: RuleFromTimeOff(t)})
	}
	if err := CheckConflict(rule, rules); err != nil {
		return nil, err
	}

	off := timeOffFromRule(providerID, rule, in.Reason)
	if err := s.Repo.InsertTimeOff(ctx, off); err != nil {
		return nil, storeError(err, "insert time off")
	}
	return off, nil
}

func (s *DefaultAvailabilityService) ListTimeOff(ctx context.Context, providerID string) ([]models.TimeOff, error) {
	offs, err := s.Repo.ListTimeOff(ctx, providerID)
	if err != nil {
		return nil, storeError(err, "list time off")
	}
	return offs, nil
}

func (s *DefaultAvailabilityService) DeleteTimeOff(ctx context.Context, providerID, timeOffID string) error {
	unlock := s.locks.Lock(lockKey(providerID, kindTimeOff))
	defer unlock()

	if err := s.Repo.DeleteTimeOff(ctx, providerID, timeOffID); err != nil {
		return storeError(err, "delete time off")
	}
	return nil
}

func (s *DefaultAvailabilityService) IsAvailable(ctx context.Context, providerID string, at time.Time) (bool, error) {
	bases, excsByBase, timeOff, err := s.loadRules(ctx, providerID)
	if err != nil {
		return false, err
	}
	return IsAvailable(bases, excsByBase, timeOff, at), nil
}

func (s *DefaultAvailabilityService) GetDayAvailability(ctx context.Context, providerID string, day time.Time) ([]models.AvailableInterval, error) {
	bases, excsByBase, timeOff, err := s.loadRules(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return ResolveDay(bases, excsByBase, timeOff, day), nil
}

func (s *DefaultAvailabilityService) loadRules(ctx context.Context, providerID string) ([]models.AvailabilityBase, map[string][]models.AvailabilityException, []models.TimeOff, error) {
	if err := s.ensureProvider(ctx, providerID); err != nil {
		return nil, nil, nil, err
	}
	bases, err := s.Repo.ListBases(ctx, providerID)
	if err != nil {
		return nil, nil, nil, storeError(err, "list availability")
	}
	excs, err := s.Repo.ListExceptionsByProvider(ctx, providerID)
	if err != nil {
		return nil, nil, nil, storeError(err, "list exceptions")
	}
	excsByBase := make(map[string][]models.AvailabilityException, len(excs))
	for _, e := range excs {
		excsByBase[e.BaseID] = append(excsByBase[e.BaseID], e)
	}
	timeOff, err := s.Repo.ListTimeOff(ctx, providerID)
	if err != nil {
		return nil, nil, nil, storeError(err, "list time off")
	}
	return bases, excsByBase, timeOff, nil
}

func (s *DefaultAvailabilityService) ensureProvider(ctx context.Context, providerID string) error {
	if _, err := s.Providers.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewError(KindNotFound, fmt.Sprintf("provider %s not found", providerID))
		}
		return storeError(err, "load provider")
	}
	return nil
}

func lockKey(providerID, kind string) string {
	return providerID + "|" + kind
}

func baseRules(bases []models.AvailabilityBase, excludeID string) []ExistingRule {
	rules := make([]ExistingRule, 0, len(bases))
	for _, b := range bases {
		if b.ID == excludeID {
			continue
		}
		rules = append(rules, ExistingRule{ID: b.ID, Rule: RuleFromBase(b)})
	}
	return rules
}

func baseFromRule(providerID string, r Rule) *models.AvailabilityBase {
	base := &models.AvailabilityBase{
		ProviderID:  providerID,
		StartMinute: r.Interval.StartMinute,
		EndMinute:   r.Interval.EndMinute,
	}
	if r.Recurring() {
		base.Recurrence, _ = EncodeRecurrence(r.Recurrence)
	} else {
		base.StartDate = r.Interval.StartDate.Format(dateLayout)
		base.EndDate = r.Interval.EndDate.Format(dateLayout)
	}
	return base
}

func timeOffFromRule(providerID string, r Rule, reason string) *models.TimeOff {
	off := &models.TimeOff{
		ProviderID:  providerID,
		StartMinute: r.Interval.StartMinute,
		EndMinute:   r.Interval.EndMinute,
		Reason:      reason,
	}
	if r.Recurring() {
		off.Recurrence, _ = EncodeRecurrence(r.Recurrence)
	} else {
		off.StartDate = r.Interval.StartDate.Format(dateLayout)
		off.EndDate = r.Interval.EndDate.Format(dateLayout)
	}
	return off
}

// storeError folds a failed store call into the engine's error surface. A
// deadline here means "conflict status unknown": the caller must refuse the
// write rather than proceed optimistically.
func storeError(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewError(KindNotFound, fmt.Sprintf("%s: not found", op))
	}
	e := NewError(KindStoreUnavailable, fmt.Sprintf("%s: %v", op, err))
	if errors.Is(err, context.DeadlineExceeded) {
		e.Timeout = true
	}
	return e
}
