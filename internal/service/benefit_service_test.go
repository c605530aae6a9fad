package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

func newBenefitFixture() (*BenefitService, *benefitStoreStub, *activityStub) {
	store := newBenefitStoreStub(models.Benefit{
		ID:           "benefit-rice",
		DepartmentID: "dept-1",
		Name:         "Rice Aid",
		Active:       true,
		Providers:    []string{"user-a"},
		Releasers:    []string{"user-b"},
	})
	activity := &activityStub{}
	svc := NewBenefitService(store, NewAuthorizationService(newAssignmentStoreStub(), nil), activity, nil, nil)
	return svc, store, activity
}

func TestBenefitCreateRejectsOverlappingAssignments(t *testing.T) {
	svc, _, activity := newBenefitFixture()

	_, err := svc.Create(context.Background(), deptAdmin, dto.CreateBenefitRequest{
		Name:      "Senior Cash Aid",
		Providers: []string{"user-a", "user-c"},
		Releasers: []string{"user-b", " user-c "},
	})
	require.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "A user cannot be both provider and releaser for the same benefit", appErrors.FromError(err).Message)
	assert.Empty(t, activity.logs)
}

func TestBenefitCreateInActorDepartment(t *testing.T) {
	svc, store, activity := newBenefitFixture()

	benefit, err := svc.Create(context.Background(), deptAdmin, dto.CreateBenefitRequest{
		Name:        " Senior Cash Aid ",
		Eligibility: &models.Eligibility{MinAge: intPtr(60)},
		Providers:   []string{"user-a", "user-a", ""},
		Releasers:   []string{"user-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "dept-1", benefit.DepartmentID)
	assert.Equal(t, "Senior Cash Aid", benefit.Name)
	assert.True(t, benefit.Active)
	assert.Equal(t, []string{"user-a"}, benefit.Providers)
	assert.Contains(t, store.benefits, benefit.ID)

	log := activity.last()
	assert.Equal(t, models.ActivityCreate, log.Action)
	assert.Equal(t, models.EntityBenefit, log.EntityType)
}

func TestBenefitCreateScope(t *testing.T) {
	svc, _, _ := newBenefitFixture()

	_, err := svc.Create(context.Background(), deptAdmin, dto.CreateBenefitRequest{DepartmentID: "dept-2", Name: "Other"})
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)

	_, err = svc.Create(context.Background(), providerA, dto.CreateBenefitRequest{Name: "Mine"})
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)

	_, err = svc.Create(context.Background(), superuser, dto.CreateBenefitRequest{Name: "No department"})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	benefit, err := svc.Create(context.Background(), superuser, dto.CreateBenefitRequest{DepartmentID: "dept-2", Name: "Fuel Aid"})
	require.NoError(t, err)
	assert.Equal(t, "dept-2", benefit.DepartmentID)
}

func TestBenefitCreateValidatesEligibility(t *testing.T) {
	svc, _, _ := newBenefitFixture()
	cases := map[string]*models.Eligibility{
		"unknown category": {RequiredCategories: []string{"library_card"}},
		"bad mode":         {RequiredCategories: []string{"pwd"}, CategoryMode: "most"},
		"inverted ages":    {MinAge: intPtr(70), MaxAge: intPtr(60)},
	}
	for name, rules := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), deptAdmin, dto.CreateBenefitRequest{Name: "x", Eligibility: rules})
			require.Error(t, err)
			assert.Equal(t, 400, appErrors.FromError(err).Status)
		})
	}
}

func TestBenefitUpdateReplacesAssignments(t *testing.T) {
	svc, store, activity := newBenefitFixture()
	inactive := false

	updated, err := svc.Update(context.Background(), deptAdmin, "benefit-rice", dto.UpdateBenefitRequest{
		Name:      "Rice Aid 2026",
		Active:    &inactive,
		Providers: []string{"user-b"},
		Releasers: []string{"user-a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-b"}, updated.Providers)
	assert.Equal(t, []string{"user-a"}, updated.Releasers)
	assert.False(t, store.benefits["benefit-rice"].Active)

	var changes map[string]interface{}
	require.NoError(t, json.Unmarshal(activity.last().Changes, &changes))
	assert.Contains(t, changes, "name")
	assert.Contains(t, changes, "providers")
	assert.Contains(t, changes, "isActive")
	assert.NotContains(t, changes, "eligibility")
}

func TestBenefitUpdateDropsBlankAssignments(t *testing.T) {
	svc, _, _ := newBenefitFixture()

	updated, err := svc.Update(context.Background(), deptAdmin, "benefit-rice", dto.UpdateBenefitRequest{
		Name:      "Rice Aid",
		Providers: []string{" user-a ", "  ", ""},
		Releasers: []string{"", "user-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-a"}, updated.Providers)
	assert.Equal(t, []string{"user-b"}, updated.Releasers)
}

func TestBenefitUpdateErrors(t *testing.T) {
	svc, store, _ := newBenefitFixture()

	_, err := svc.Update(context.Background(), otherAdmin, "benefit-rice", dto.UpdateBenefitRequest{Name: "x"})
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)

	_, err = svc.Update(context.Background(), deptAdmin, "missing", dto.UpdateBenefitRequest{Name: "x"})
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	store.updateErr = errors.New("deadlock detected")
	_, err = svc.Update(context.Background(), deptAdmin, "benefit-rice", dto.UpdateBenefitRequest{Name: "x"})
	require.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, []string{"user-a"}, store.benefits["benefit-rice"].Providers)
}

func TestBenefitDeactivate(t *testing.T) {
	svc, store, activity := newBenefitFixture()

	benefit, err := svc.Deactivate(context.Background(), superuser, "benefit-rice")
	require.NoError(t, err)
	assert.False(t, benefit.Active)
	assert.False(t, store.benefits["benefit-rice"].Active)
	assert.Equal(t, models.ActivityDeactivate, activity.last().Action)

	_, err = svc.Deactivate(context.Background(), superuser, "benefit-rice")
	require.NoError(t, err)
	assert.Len(t, activity.logs, 1)
}

func TestBenefitGetAccess(t *testing.T) {
	svc, _, _ := newBenefitFixture()

	for _, actor := range []models.Actor{providerA, releaserB, deptAdmin, superuser} {
		_, err := svc.Get(context.Background(), actor, "benefit-rice")
		require.NoError(t, err, actor.ID)
	}
	_, err := svc.Get(context.Background(), outsider, "benefit-rice")
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)
}
