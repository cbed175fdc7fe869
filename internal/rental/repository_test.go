package rental

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func rentalRow(id int, status Status, start, end time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "area_id", "coach_id", "rental_date", "start_time", "end_time",
		"status", "fee_charged_cents", "guest_count", "is_recurring", "series_id",
		"created_by", "cancelled_by", "created_at", "cancelled_at",
	}).AddRow(id, 1, 2, start.Truncate(24*time.Hour), start, end,
		string(status), int64(3000), 0, false, nil, 7, nil, start, nil)
}

func TestCreateRental(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2026, 10, 5, 10, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	day := time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(1, "2026-10-05").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, day, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs(1, 2, day, start, end, int64(3000), 0, false, nil, 7).
		WillReturnRows(rentalRow(10, StatusScheduled, start, end))
	mock.ExpectCommit()

	rental, err := repo.CreateRental(context.Background(), CreateParams{
		AreaID: 1, CoachID: 2, RentalDate: day, StartTime: start, EndTime: end,
		FeeChargedCents: 3000, CreatedBy: 7,
	})
	require.NoError(t, err)
	require.Equal(t, 10, rental.ID)
	require.Equal(t, StatusScheduled, rental.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRental_Conflict(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2026, 10, 5, 10, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	day := time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(1, "2026-10-05").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, day, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateRental(context.Background(), CreateParams{
		AreaID: 1, CoachID: 2, RentalDate: day, StartTime: start, EndTime: end,
		FeeChargedCents: 3000, CreatedBy: 7,
	})
	require.ErrorIs(t, err, ErrSlotConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRental_WithCreditGrant(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.Local)
	start := now.Add(72 * time.Hour)
	end := start.Add(time.Hour)
	expires := now.AddDate(0, 0, 90)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(10).
		WillReturnRows(rentalRow(10, StatusScheduled, start, end))
	mock.ExpectQuery("UPDATE rentals").
		WithArgs(10, now, 7).
		WillReturnRows(rentalRow(10, StatusCancelled, start, end))
	mock.ExpectQuery("SELECT credits_balance FROM coaches").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"credits_balance"}).AddRow(4))
	mock.ExpectExec("INSERT INTO coach_credit_entries").
		WithArgs(2, 1, "cancellation", 10, expires).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE coaches").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cancelled, err := repo.CancelRental(context.Background(), 10, 7, now,
		&CreditGrant{Amount: 1, ExpiresAt: expires})
	require.NoError(t, err)
	require.Equal(t, 10, cancelled.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRental_NoGrant(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.Local)
	start := now.Add(2 * time.Hour)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(10).
		WillReturnRows(rentalRow(10, StatusScheduled, start, end))
	mock.ExpectQuery("UPDATE rentals").
		WithArgs(10, now, 7).
		WillReturnRows(rentalRow(10, StatusCancelled, start, end))
	mock.ExpectCommit()

	_, err := repo.CancelRental(context.Background(), 10, 7, now, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRental_AlreadyTerminal(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	start := now.Add(-2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(10).
		WillReturnRows(rentalRow(10, StatusCancelled, start, start.Add(time.Hour)))
	mock.ExpectRollback()

	_, err := repo.CancelRental(context.Background(), 10, 7, now, nil)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRental(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Now().Add(-3 * time.Hour)
	end := start.Add(time.Hour)

	mock.ExpectQuery("UPDATE rentals").
		WithArgs(10).
		WillReturnRows(rentalRow(10, StatusCompleted, start, end))

	rental, err := repo.CompleteRental(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, rental.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRental_AlreadyTerminal(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Now().Add(-3 * time.Hour)
	end := start.Add(time.Hour)

	// no scheduled row to update, but the rental exists cancelled
	mock.ExpectQuery("UPDATE rentals").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
		WithArgs(10).
		WillReturnRows(rentalRow(10, StatusCancelled, start, end))

	_, err := repo.CompleteRental(context.Background(), 10)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteElapsed(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectExec("UPDATE rentals").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.CompleteElapsed(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
