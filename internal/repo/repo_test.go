package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/testutil"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: testutil.OpenDB(t)}
}

func sampleEmployee(first, email string, createdAt time.Time) *models.Employee {
	return &models.Employee{
		FirstName:    first,
		LastName:     "Doe",
		Email:        email,
		Phone:        "555",
		EmployeeType: "Full-time",
		Department:   "Eng",
		Position:     "Dev",
		JoiningDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Salary:       90000,
		Status:       models.StatusActive,
		CreatedAt:    createdAt,
	}
}

func TestGormRepo_CreateUser_HashesAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	u, err := r.CreateUser(ctx, "alice", "Alice@X.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, r.VerifyPassword(u, "secret1"))
	assert.False(t, r.VerifyPassword(u, "secret2"))
	assert.False(t, r.VerifyPassword(nil, "secret1"))

	_, err = r.CreateUser(ctx, "alice", "other@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = r.CreateUser(ctx, "bob", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestGormRepo_FindUser(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateUser(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	byEmail, err := r.FindUserByEmail(ctx, " ALICE@x.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := r.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	either, err := r.FindUserByEmailOrUsername(ctx, "nobody@x.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, either.ID)

	_, err = r.FindUserByEmailOrUsername(ctx, "nobody@x.com", "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.FindUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGormRepo_SetRole(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	u, err := r.CreateUser(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, r.SetRole(ctx, "alice@x.com", domain.RoleAdmin))
	got, err := r.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	assert.ErrorIs(t, r.SetRole(ctx, "nobody@x.com", domain.RoleAdmin), domain.ErrNotFound)
}

func TestGormRepo_EmployeeCRUD(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateEmployee(ctx, sampleEmployee("Jane", "jane@x.com", time.Time{}))
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.True(t, created.JoiningDate.Equal(got.JoiningDate))

	next := sampleEmployee("Janet", "janet@x.com", time.Time{})
	next.Status = models.StatusInactive
	next.Salary = 95000
	updated, err := r.UpdateEmployee(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, models.StatusInactive, updated.Status)
	assert.EqualValues(t, 95000, updated.Salary)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Millisecond)

	_, err = r.UpdateEmployee(ctx, uuid.NewString(), next)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.DeleteEmployee(ctx, created.ID))
	_, err = r.GetEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.DeleteEmployee(ctx, created.ID), domain.ErrNotFound)
}

func TestGormRepo_EmployeeEmailUnique(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateEmployee(ctx, sampleEmployee("Jane", "jane@x.com", time.Time{}))
	require.NoError(t, err)
	other, err := r.CreateEmployee(ctx, sampleEmployee("John", "john@x.com", time.Time{}))
	require.NoError(t, err)

	_, err = r.CreateEmployee(ctx, sampleEmployee("Copy", "jane@x.com", time.Time{}))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = r.UpdateEmployee(ctx, other.ID, sampleEmployee("John", "jane@x.com", time.Time{}))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func seedForSearch(t *testing.T, r *GormRepo) []string {
	t.Helper()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	rows := []*models.Employee{
		sampleEmployee("Jane", "jane@x.com", base),
		sampleEmployee("Bob", "bob@corp.io", base.Add(time.Minute)),
		sampleEmployee("Carla", "carla_100%@x.com", base.Add(2*time.Minute)),
		sampleEmployee("Émile", "emile@x.com", base.Add(3*time.Minute)),
	}
	rows[1].Department = "Sales"
	rows[1].Position = "Account Manager"
	rows[2].LastName = "Engel"
	rows[3].LastName = "Ørsted"
	rows[3].Department = "Qualité"

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		created, err := r.CreateEmployee(context.Background(), row)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	return ids
}

func employeeIDs(items []models.Employee) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestGormRepo_ListEmployees_NewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ids := seedForSearch(t, r)

	items, err := r.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{ids[3], ids[2], ids[1], ids[0]}, employeeIDs(items))
}

func TestGormRepo_ListEmployees_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	items, err := r.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGormRepo_SearchEmployees(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ids := seedForSearch(t, r)
	ctx := context.Background()

	all, err := r.ListEmployees(ctx)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty equals list", query: "", want: employeeIDs(all)},
		{name: "whitespace equals list", query: "   ", want: employeeIDs(all)},
		{name: "first name case insensitive", query: "jAnE", want: []string{ids[0]}},
		{name: "email domain", query: "CORP.IO", want: []string{ids[1]}},
		{name: "department", query: "sales", want: []string{ids[1]}},
		{name: "position", query: "manager", want: []string{ids[1]}},
		{name: "or across fields keeps order", query: "eng", want: []string{ids[2], ids[0]}},
		{name: "percent is literal", query: "100%", want: []string{ids[2]}},
		{name: "underscore is literal", query: "a_1", want: []string{ids[2]}},
		{name: "non-ascii exact case", query: "Émile", want: []string{ids[3]}},
		{name: "non-ascii lower", query: "émile", want: []string{ids[3]}},
		{name: "non-ascii upper", query: "ÉMILE", want: []string{ids[3]}},
		{name: "non-ascii last name", query: "ørsted", want: []string{ids[3]}},
		{name: "non-ascii department", query: "QUALITÉ", want: []string{ids[3]}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.SearchEmployees(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, employeeIDs(items))
		})
	}
}
