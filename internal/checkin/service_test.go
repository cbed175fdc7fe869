package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ricore77995/strikehouse-sub000/internal/area"
	"github.com/ricore77995/strikehouse-sub000/internal/member"
	"github.com/ricore77995/strikehouse-sub000/internal/rental"
)

// Mock repositories
type MockCheckInRepo struct{ mock.Mock }
type MockMemberRepo struct{ mock.Mock }
type MockRentalRepo struct{ mock.Mock }
type MockAreaRepo struct{ mock.Mock }

func (m *MockCheckInRepo) ExclusiveRentalActive(ctx context.Context, now time.Time) (bool, error) {
	args := m.Called(ctx, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckInRepo) Record(ctx context.Context, p RecordParams) (*CheckInRecord, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckInRecord), args.Error(1)
}

func (m *MockCheckInRepo) ListRecords(ctx context.Context, limit, offset int) ([]CheckInRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CheckInRecord), args.Error(1)
}

func (m *MockMemberRepo) CreateMember(ctx context.Context, req member.CreateMemberRequest) (*member.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetAllMembers(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetMemberByID(ctx context.Context, id int) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) UpdateMember(ctx context.Context, id int, req member.UpdateMemberRequest) (*member.Member, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockRentalRepo) CreateRental(ctx context.Context, p rental.CreateParams) (*rental.Rental, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) GetRentalByID(ctx context.Context, id int) (*rental.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByArea(ctx context.Context, areaID int, date time.Time) ([]rental.Rental, error) {
	args := m.Called(ctx, areaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByCoach(ctx context.Context, coachID int) ([]rental.RentalWithDetails, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.RentalWithDetails), args.Error(1)
}

func (m *MockRentalRepo) ListBySeries(ctx context.Context, seriesID string) ([]rental.Rental, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListScheduledBySeries(ctx context.Context, seriesID string) ([]rental.Rental, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) CancelRental(ctx context.Context, rentalID, actorID int, now time.Time, grant *rental.CreditGrant) (*rental.Rental, error) {
	args := m.Called(ctx, rentalID, actorID, now, grant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) CompleteRental(ctx context.Context, rentalID int) (*rental.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Rental), args.Error(1)
}

func (m *MockRentalRepo) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockAreaRepo) CreateArea(ctx context.Context, name string, capacity int, isExclusive bool) (*area.Area, error) {
	args := m.Called(ctx, name, capacity, isExclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*area.Area), args.Error(1)
}

func (m *MockAreaRepo) GetAllAreas(ctx context.Context, includeInactive bool) ([]area.Area, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]area.Area), args.Error(1)
}

func (m *MockAreaRepo) GetAreaByID(ctx context.Context, id int) (*area.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*area.Area), args.Error(1)
}

func (m *MockAreaRepo) UpdateArea(ctx context.Context, id int, name *string, capacity *int, isExclusive *bool) (*area.Area, error) {
	args := m.Called(ctx, id, name, capacity, isExclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*area.Area), args.Error(1)
}

func (m *MockAreaRepo) DeactivateArea(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService() (Service, *MockCheckInRepo, *MockMemberRepo, *MockRentalRepo, *MockAreaRepo) {
	repo := new(MockCheckInRepo)
	memberRepo := new(MockMemberRepo)
	rentalRepo := new(MockRentalRepo)
	areaRepo := new(MockAreaRepo)
	return NewService(repo, memberRepo, rentalRepo, areaRepo), repo, memberRepo, rentalRepo, areaRepo
}

func recordFrom(p RecordParams) *CheckInRecord {
	return &CheckInRecord{
		ID:          1,
		Type:        p.Type,
		Result:      p.Result,
		Reason:      p.Reason,
		MemberID:    p.MemberID,
		GuestName:   p.GuestName,
		RentalID:    p.RentalID,
		CheckedInBy: p.CheckedInBy,
		CheckedInAt: p.CheckedInAt,
	}
}

func TestCheckInMember(t *testing.T) {
	now := time.Date(2026, 10, 5, 18, 30, 0, 0, time.Local)
	today := time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	activeSubscriber := func() *member.Member {
		exp := today.AddDate(0, 1, 0)
		return &member.Member{
			ID: 5, Name: "Marta", Status: member.StatusActivo,
			AccessType: member.AccessSubscription, AccessExpiresAt: &exp,
		}
	}

	tests := []struct {
		name       string
		member     *member.Member
		exclusive  bool
		wantResult Result
		wantReason string
		wantDecr   bool
	}{
		{
			name:       "active subscriber allowed",
			member:     activeSubscriber(),
			wantResult: ResultAllowed,
		},
		{
			name: "blocked status",
			member: &member.Member{
				ID: 5, Status: member.StatusBloqueado,
				AccessType: member.AccessSubscription,
			},
			wantResult: ResultBlocked,
			wantReason: "STATUS_BLOQUEADO",
		},
		{
			name: "lead cannot enter",
			member: &member.Member{
				ID: 5, Status: member.StatusLead,
				AccessType: member.AccessCredits, CreditsRemaining: 10,
			},
			wantResult: ResultBlocked,
			wantReason: "STATUS_LEAD",
		},
		{
			name: "expired subscription",
			member: func() *member.Member {
				m := activeSubscriber()
				m.AccessExpiresAt = &yesterday
				return m
			}(),
			wantResult: ResultBlocked,
			wantReason: ReasonExpired,
		},
		{
			name: "daily pass valid through end of its day",
			member: func() *member.Member {
				m := activeSubscriber()
				m.AccessType = member.AccessDailyPass
				m.AccessExpiresAt = &today
				return m
			}(),
			wantResult: ResultAllowed,
		},
		{
			name: "credits exhausted",
			member: &member.Member{
				ID: 5, Status: member.StatusActivo,
				AccessType: member.AccessCredits, CreditsRemaining: 0,
			},
			wantResult: ResultBlocked,
			wantReason: ReasonNoCredits,
		},
		{
			name: "credits member allowed and decremented",
			member: &member.Member{
				ID: 5, Status: member.StatusActivo,
				AccessType: member.AccessCredits, CreditsRemaining: 3,
			},
			wantResult: ResultAllowed,
			wantDecr:   true,
		},
		{
			name:       "exclusive rental blocks everyone",
			member:     activeSubscriber(),
			exclusive:  true,
			wantResult: ResultBlocked,
			wantReason: ReasonAreaExclusive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, memberRepo, _, _ := newTestService()

			memberRepo.On("GetMemberByID", mock.Anything, 5).Return(tt.member, nil)

			statusBlocked := tt.member.Status != member.StatusActivo
			expiredOrBroke := tt.wantReason == ReasonExpired || (tt.wantReason == ReasonNoCredits && !tt.wantDecr)
			if !statusBlocked && !expiredOrBroke {
				repo.On("ExclusiveRentalActive", mock.Anything, now).Return(tt.exclusive, nil)
			}

			repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
				if p.Type != TypeMember || p.Result != tt.wantResult {
					return false
				}
				if p.DecrementCredit != tt.wantDecr {
					return false
				}
				if tt.wantReason == "" {
					return p.Reason == nil
				}
				return p.Reason != nil && *p.Reason == tt.wantReason
			})).Return(recordFrom(RecordParams{Type: TypeMember, Result: tt.wantResult}), nil)

			decision, err := svc.CheckInMember(context.Background(), 5, 9, now)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantResult, decision.Result)
			assert.Equal(t, tt.wantReason, decision.Reason)
			repo.AssertExpectations(t)
		})
	}
}

func TestCheckInMember_LastCreditRace(t *testing.T) {
	now := time.Now()
	svc, repo, memberRepo, _, _ := newTestService()

	memberRepo.On("GetMemberByID", mock.Anything, 5).Return(&member.Member{
		ID: 5, Status: member.StatusActivo,
		AccessType: member.AccessCredits, CreditsRemaining: 1,
	}, nil)
	repo.On("ExclusiveRentalActive", mock.Anything, now).Return(false, nil)

	// the allowed write loses the guarded decrement
	repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
		return p.Result == ResultAllowed && p.DecrementCredit
	})).Return(nil, ErrNoCredits)

	reason := ReasonNoCredits
	repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
		return p.Result == ResultBlocked && !p.DecrementCredit &&
			p.Reason != nil && *p.Reason == ReasonNoCredits
	})).Return(recordFrom(RecordParams{Type: TypeMember, Result: ResultBlocked, Reason: &reason}), nil)

	decision, err := svc.CheckInMember(context.Background(), 5, 9, now)

	assert.NoError(t, err)
	assert.Equal(t, ResultBlocked, decision.Result)
	assert.Equal(t, ReasonNoCredits, decision.Reason)
	repo.AssertExpectations(t)
}

func TestCheckInGuest(t *testing.T) {
	now := time.Date(2026, 10, 5, 10, 30, 0, 0, time.Local)
	start := time.Date(2026, 10, 5, 10, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)

	scheduled := &rental.Rental{
		ID: 40, AreaID: 1, Status: rental.StatusScheduled,
		StartTime: start, EndTime: end, GuestCount: 2,
	}

	t.Run("guest allowed inside window", func(t *testing.T) {
		svc, repo, _, rentalRepo, areaRepo := newTestService()

		rentalRepo.On("GetRentalByID", mock.Anything, 40).Return(scheduled, nil)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Type == TypeGuest && p.Result == ResultAllowed &&
				p.IncrementGuest && p.RentalID != nil && *p.RentalID == 40 &&
				p.GuestName != nil && *p.GuestName == "Leo"
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultAllowed}), nil)
		areaRepo.On("GetAreaByID", mock.Anything, 1).Return(&area.Area{ID: 1, Capacity: 12}, nil)

		decision, err := svc.CheckInGuest(context.Background(), 40, "Leo", 9, now)

		assert.NoError(t, err)
		assert.Equal(t, ResultAllowed, decision.Result)
		assert.False(t, decision.CapacityWarning)
		repo.AssertExpectations(t)
	})

	t.Run("guest at exact end time still allowed", func(t *testing.T) {
		svc, repo, _, rentalRepo, areaRepo := newTestService()

		rentalRepo.On("GetRentalByID", mock.Anything, 40).Return(scheduled, nil)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Result == ResultAllowed
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultAllowed}), nil)
		areaRepo.On("GetAreaByID", mock.Anything, 1).Return(&area.Area{ID: 1, Capacity: 12}, nil)

		decision, err := svc.CheckInGuest(context.Background(), 40, "Leo", 9, end)

		assert.NoError(t, err)
		assert.Equal(t, ResultAllowed, decision.Result)
	})

	t.Run("over capacity warns but admits", func(t *testing.T) {
		svc, repo, _, rentalRepo, areaRepo := newTestService()

		packed := *scheduled
		packed.GuestCount = 12
		rentalRepo.On("GetRentalByID", mock.Anything, 40).Return(&packed, nil)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Result == ResultAllowed
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultAllowed}), nil)
		areaRepo.On("GetAreaByID", mock.Anything, 1).Return(&area.Area{ID: 1, Capacity: 12}, nil)

		decision, err := svc.CheckInGuest(context.Background(), 40, "Leo", 9, now)

		assert.NoError(t, err)
		assert.Equal(t, ResultAllowed, decision.Result)
		assert.True(t, decision.CapacityWarning)
	})

	t.Run("outside window blocked", func(t *testing.T) {
		svc, repo, _, rentalRepo, _ := newTestService()

		rentalRepo.On("GetRentalByID", mock.Anything, 40).Return(scheduled, nil)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Result == ResultBlocked && !p.IncrementGuest &&
				p.Reason != nil && *p.Reason == ReasonRentalNotActive
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultBlocked}), nil)

		decision, err := svc.CheckInGuest(context.Background(), 40, "Leo", 9, end.Add(time.Minute))

		assert.NoError(t, err)
		assert.Equal(t, ResultBlocked, decision.Result)
		assert.Equal(t, ReasonRentalNotActive, decision.Reason)
	})

	t.Run("cancelled rental blocked", func(t *testing.T) {
		svc, repo, _, rentalRepo, _ := newTestService()

		cancelled := *scheduled
		cancelled.Status = rental.StatusCancelled
		rentalRepo.On("GetRentalByID", mock.Anything, 40).Return(&cancelled, nil)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Result == ResultBlocked && p.Reason != nil && *p.Reason == ReasonRentalNotActive
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultBlocked}), nil)

		decision, err := svc.CheckInGuest(context.Background(), 40, "Leo", 9, now)

		assert.NoError(t, err)
		assert.Equal(t, ResultBlocked, decision.Result)
	})

	t.Run("unknown rental still audited", func(t *testing.T) {
		svc, repo, _, rentalRepo, _ := newTestService()

		rentalRepo.On("GetRentalByID", mock.Anything, 99).Return(nil, rental.ErrRentalNotFound)
		repo.On("Record", mock.Anything, mock.MatchedBy(func(p RecordParams) bool {
			return p.Result == ResultBlocked && p.RentalID == nil &&
				p.Reason != nil && *p.Reason == ReasonRentalNotFound
		})).Return(recordFrom(RecordParams{Type: TypeGuest, Result: ResultBlocked}), nil)

		decision, err := svc.CheckInGuest(context.Background(), 99, "Leo", 9, now)

		assert.NoError(t, err)
		assert.Equal(t, ResultBlocked, decision.Result)
		assert.Equal(t, ReasonRentalNotFound, decision.Reason)
		repo.AssertExpectations(t)
	})
}
