package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

var benefitColumns = []string{"id", "department_id", "name", "description", "value", "quantity", "is_active", "eligibility", "created_at", "updated_at"}

func TestBenefitRepositoryGetByID(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM benefits WHERE id = $1")).
		WithArgs(testBenefitID).
		WillReturnRows(sqlmock.NewRows(benefitColumns).
			AddRow(testBenefitID, "dept-1", "Senior Cash Aid", nil, 1500.0, nil, true, []byte(`{"minAge":60}`), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM benefit_assignments WHERE benefit_id = $1")).
		WithArgs(testBenefitID).
		WillReturnRows(sqlmock.NewRows([]string{"benefit_id", "user_id", "role", "created_at"}).
			AddRow(testBenefitID, testProviderID, "provider", now).
			AddRow(testBenefitID, testReleaserID, "releaser", now))

	benefit, err := repo.GetByID(context.Background(), testBenefitID)
	require.NoError(t, err)
	assert.True(t, benefit.Active)
	require.NotNil(t, benefit.Eligibility)
	require.NotNil(t, benefit.Eligibility.MinAge)
	assert.Equal(t, 60, *benefit.Eligibility.MinAge)
	assert.Equal(t, []string{testProviderID}, benefit.Providers)
	assert.Equal(t, []string{testReleaserID}, benefit.Releasers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryGetByIDUnrestricted(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM benefits WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(benefitColumns).
			AddRow(testOtherBenefitID, "dept-1", "Rice Aid", nil, nil, 200, true, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM benefit_assignments")).
		WillReturnRows(sqlmock.NewRows([]string{"benefit_id", "user_id", "role", "created_at"}))

	benefit, err := repo.GetByID(context.Background(), testOtherBenefitID)
	require.NoError(t, err)
	assert.Nil(t, benefit.Eligibility)
	assert.Empty(t, benefit.Providers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryFindAssignmentMissing(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM benefit_assignments")).
		WithArgs(testBenefitID, testUserID, models.AssignmentReleaser).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindAssignment(context.Background(), testBenefitID, testUserID, models.AssignmentReleaser)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryUpdateReplacesAssignments(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE benefits SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM benefit_assignments")).
		WithArgs(testBenefitID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO benefit_assignments")).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	minAge := 60
	err := repo.Update(context.Background(), &models.Benefit{
		ID:          testBenefitID,
		Name:        "Senior Cash Aid",
		Active:      true,
		Eligibility: &models.Eligibility{MinAge: &minAge},
		Providers:   []string{testProviderID, "provider-2"},
		Releasers:   []string{testReleaserID},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryUpdateRollsBack(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE benefits SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM benefit_assignments")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO benefit_assignments")).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.Benefit{
		ID:        testBenefitID,
		Name:      "Senior Cash Aid",
		Providers: []string{"ghost"},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryUpdateMissing(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE benefits SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.Benefit{ID: testOtherBenefitID, Name: "x"})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryMalformedIDSkipsQuery(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "abc")
	require.ErrorIs(t, err, sql.ErrNoRows)
	_, err = repo.FindAssignment(ctx, testBenefitID, "user-a", models.AssignmentProvider)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.ErrorIs(t, repo.SetActive(ctx, "abc", false), sql.ErrNoRows)
	require.ErrorIs(t, repo.Update(ctx, &models.Benefit{ID: "missing", Name: "x"}), sql.ErrNoRows)

	assignments, err := repo.ListAssignments(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, assignments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBenefitRepositoryCreate(t *testing.T) {
	db, mock := newVoucherRepoMock(t)
	repo := NewBenefitRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO benefits")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM benefit_assignments")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO benefit_assignments")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	benefit := &models.Benefit{DepartmentID: "dept-1", Name: "Rice Aid", Active: true, Providers: []string{"p"}, Releasers: []string{"r"}}
	require.NoError(t, repo.Create(context.Background(), benefit))
	assert.NotEmpty(t, benefit.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
