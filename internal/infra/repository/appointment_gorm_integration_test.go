package repository

import (
	"context"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/appointment-services/internal/db"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

var (
	day1 = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	day3 = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
)

// openTestDB migrates a throwaway schema on APP_TEST_DATABASE_URL and drops
// it when the test ends.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	databaseURL := strings.TrimSpace(os.Getenv("APP_TEST_DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("APP_TEST_DATABASE_URL not set")
	}

	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	root, err := gorm.Open(postgres.Open(databaseURL), cfg)
	require.NoError(t, err)

	schema := "appointments_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	require.NoError(t, root.Exec("CREATE SCHEMA "+schema).Error)

	db, err := gorm.Open(postgres.Open(withSearchPath(t, databaseURL, schema)), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = root.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Error
		if sqlDB, err := root.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func withSearchPath(t *testing.T, dsn, schema string) string {
	t.Helper()

	if !strings.Contains(dsn, "://") {
		return dsn + " search_path=" + schema
	}

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}

type seed struct {
	client   *models.User
	other    *models.User
	admin    *models.User
	admin2   *models.User
	services []*models.Service
}

func seedRows(t *testing.T, db *gorm.DB) seed {
	t.Helper()
	ctx := context.Background()
	users := NewUserGormRepository(db)
	catalog := NewServiceGormRepository(db)

	user := func(name, role string) *models.User {
		u := &models.User{
			Name:         name,
			Email:        strings.ToLower(name) + "@example.com",
			PasswordHash: "x",
			Phone:        "11999990000",
			Role:         role,
		}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	s := seed{
		client: user("Ana", models.RoleClient),
		other:  user("Bruno", models.RoleClient),
		admin:  user("Carla", models.RoleAdmin),
		admin2: user("Davi", models.RoleAdmin),
	}
	for _, name := range []string{"Haircut", "Beard", "Wash"} {
		svc := &models.Service{Name: name, Price: decimal.RequireFromString("30.00")}
		require.NoError(t, catalog.Create(ctx, svc))
		s.services = append(s.services, svc)
	}
	return s
}

func links(ids ...uuid.UUID) []models.AppointmentService {
	out := make([]models.AppointmentService, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.AppointmentService{ServiceID: id})
	}
	return out
}

func save(t *testing.T, repo *AppointmentGormRepository, ap *models.Appointment) *models.Appointment {
	t.Helper()
	if ap.Status == "" {
		ap.Status = string(domain.StatusPending)
	}
	saved, err := repo.Save(context.Background(), ap)
	require.NoError(t, err)
	return saved
}

func TestAppointmentGorm_SaveAndGet(t *testing.T) {
	db := openTestDB(t)
	s := seedRows(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	saved := save(t, repo, &models.Appointment{
		Date:             datatypes.Date(day1),
		ClientID:         s.client.ID,
		PreferredAdminID: &s.admin.ID,
		Services:         links(s.services[0].ID, s.services[1].ID),
	})

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)

	assert.True(t, time.Time(got.Date).Equal(day1), "date %v", time.Time(got.Date))
	assert.Equal(t, string(domain.StatusPending), got.Status)
	assert.Equal(t, 1, got.Version)
	assert.Nil(t, got.AdminID)
	require.NotNil(t, got.PreferredAdminID)
	assert.Equal(t, s.admin.ID, *got.PreferredAdminID)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Ana", got.Client.Name)

	assert.ElementsMatch(t, []uuid.UUID{s.services[0].ID, s.services[1].ID}, got.ServiceIDs())
	for _, link := range got.Services {
		require.NotNil(t, link.Service)
		assert.Equal(t, link.ServiceID, link.Service.ID)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
}

func TestAppointmentGorm_ConfirmIfUnassigned(t *testing.T) {
	db := openTestDB(t)
	s := seedRows(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := save(t, repo, &models.Appointment{
		Date:     datatypes.Date(day1),
		ClientID: s.client.ID,
		Services: links(s.services[0].ID),
	})

	admins := []uuid.UUID{s.admin.ID, s.admin2.ID, s.admin.ID, s.admin2.ID, s.admin.ID, s.admin2.ID}
	now := day1.Add(-24 * time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
	)
	for _, adminID := range admins {
		wg.Add(1)
		go func(adminID uuid.UUID) {
			defer wg.Done()
			won, err := repo.ConfirmIfUnassigned(ctx, ap.ID, adminID, now)
			assert.NoError(t, err)
			if won {
				mu.Lock()
				winners = append(winners, adminID)
				mu.Unlock()
			}
		}(adminID)
	}
	wg.Wait()

	require.Len(t, winners, 1)

	got, err := repo.GetByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	require.NotNil(t, got.AdminID)
	assert.Equal(t, winners[0], *got.AdminID)
	assert.Equal(t, 2, got.Version)
	assert.True(t, got.UpdatedAt.Equal(now), "updated_at %v", got.UpdatedAt)

	won, err := repo.ConfirmIfUnassigned(ctx, uuid.New(), s.admin.ID, now)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestAppointmentGorm_CountActiveForAdminOnDate(t *testing.T) {
	db := openTestDB(t)
	s := seedRows(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()
	svc := s.services[0].ID

	// counted for admin: assigned, and preferred while unassigned
	save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.client.ID, AdminID: &s.admin.ID, Status: string(domain.StatusConfirmed), Services: links(svc)})
	save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.other.ID, PreferredAdminID: &s.admin.ID, Services: links(svc)})
	save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.client.ID, AdminID: &s.admin.ID, Status: string(domain.StatusCompleted), Services: links(svc)})

	// not counted for admin
	save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.client.ID, AdminID: &s.admin.ID, Status: string(domain.StatusCancelled), Services: links(svc)})
	save(t, repo, &models.Appointment{Date: datatypes.Date(day2), ClientID: s.client.ID, AdminID: &s.admin.ID, Status: string(domain.StatusConfirmed), Services: links(svc)})
	save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.other.ID, AdminID: &s.admin2.ID, PreferredAdminID: &s.admin.ID, Status: string(domain.StatusConfirmed), Services: links(svc)})

	n, err := repo.CountActiveForAdminOnDate(ctx, s.admin.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountActiveForAdminOnDate(ctx, s.admin2.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountActiveForAdminOnDate(ctx, s.admin.ID, day3)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAppointmentGorm_GetAll(t *testing.T) {
	db := openTestDB(t)
	s := seedRows(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()
	svc := s.services[0].ID
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	oldest := save(t, repo, &models.Appointment{Date: datatypes.Date(day1), ClientID: s.client.ID, Services: links(svc), CreatedAt: base})
	middle := save(t, repo, &models.Appointment{Date: datatypes.Date(day2), ClientID: s.client.ID, AdminID: &s.admin.ID, Status: string(domain.StatusConfirmed), Services: links(svc), CreatedAt: base.Add(time.Hour)})
	newest := save(t, repo, &models.Appointment{Date: datatypes.Date(day3), ClientID: s.client.ID, Services: links(svc), CreatedAt: base.Add(2 * time.Hour)})
	foreign := save(t, repo, &models.Appointment{Date: datatypes.Date(day2), ClientID: s.other.ID, Services: links(svc), CreatedAt: base.Add(3 * time.Hour)})

	ids := func(p domain.Page) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(p.Items))
		for _, ap := range p.Items {
			out = append(out, ap.ID)
		}
		return out
	}
	confirmed := domain.StatusConfirmed

	tests := []struct {
		name   string
		filter domain.ListFilter
		total  int64
		want   []uuid.UUID
	}{
		{
			name:   "everything newest first",
			filter: domain.ListFilter{Page: 1, Size: 10},
			total:  4,
			want:   []uuid.UUID{foreign.ID, newest.ID, middle.ID, oldest.ID},
		},
		{
			name:   "client",
			filter: domain.ListFilter{ClientID: &s.client.ID, Page: 1, Size: 10},
			total:  3,
			want:   []uuid.UUID{newest.ID, middle.ID, oldest.ID},
		},
		{
			name:   "admin",
			filter: domain.ListFilter{AdminID: &s.admin.ID, Page: 1, Size: 10},
			total:  1,
			want:   []uuid.UUID{middle.ID},
		},
		{
			name:   "unassigned",
			filter: domain.ListFilter{Unassigned: true, Page: 1, Size: 10},
			total:  3,
			want:   []uuid.UUID{foreign.ID, newest.ID, oldest.ID},
		},
		{
			name:   "status",
			filter: domain.ListFilter{Status: &confirmed, Page: 1, Size: 10},
			total:  1,
			want:   []uuid.UUID{middle.ID},
		},
		{
			name:   "date window is inclusive",
			filter: domain.ListFilter{ClientID: &s.client.ID, DateFrom: &day1, DateTo: &day2, Page: 1, Size: 10},
			total:  2,
			want:   []uuid.UUID{middle.ID, oldest.ID},
		},
		{
			name:   "second page",
			filter: domain.ListFilter{Page: 2, Size: 3},
			total:  4,
			want:   []uuid.UUID{oldest.ID},
		},
		{
			name:   "no match",
			filter: domain.ListFilter{ClientID: &s.admin.ID, Page: 1, Size: 10},
			total:  0,
			want:   []uuid.UUID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.GetAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.want, ids(page))
			assert.NotNil(t, page.Items)
		})
	}
}

func TestAppointmentGorm_Update(t *testing.T) {
	db := openTestDB(t)
	s := seedRows(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)

	t.Run("replaces date and services", func(t *testing.T) {
		ap := save(t, repo, &models.Appointment{
			Date:     datatypes.Date(day1),
			ClientID: s.client.ID,
			Services: links(s.services[0].ID, s.services[1].ID),
		})
		from := domain.VersionOf(ap)

		ap.Date = datatypes.Date(day2)
		ap.UpdatedAt = at
		domain.ReplaceServices(ap, []uuid.UUID{s.services[2].ID})

		got, err := repo.Update(ctx, ap, from, true)
		require.NoError(t, err)
		assert.True(t, time.Time(got.Date).Equal(day2))
		assert.Equal(t, []uuid.UUID{s.services[2].ID}, got.ServiceIDs())
		assert.Equal(t, 2, got.Version)
		assert.True(t, got.UpdatedAt.Equal(at), "updated_at %v", got.UpdatedAt)

		var count int64
		require.NoError(t, db.Model(&models.AppointmentService{}).Where("appointment_id = ?", ap.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("keeps services unless asked", func(t *testing.T) {
		ap := save(t, repo, &models.Appointment{
			Date:     datatypes.Date(day1),
			ClientID: s.client.ID,
			Services: links(s.services[0].ID),
		})
		from := domain.VersionOf(ap)

		ap.Services = nil
		require.NoError(t, domain.Cancel(ap, "travelling", at))

		got, err := repo.Update(ctx, ap, from, false)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), got.Status)
		require.NotNil(t, got.CancelReason)
		assert.Equal(t, "travelling", *got.CancelReason)
		require.NotNil(t, got.CancelledAt)
		assert.True(t, got.CancelledAt.Equal(at))
		assert.Equal(t, []uuid.UUID{s.services[0].ID}, got.ServiceIDs())
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		ap := save(t, repo, &models.Appointment{
			Date:     datatypes.Date(day1),
			ClientID: s.client.ID,
			Services: links(s.services[0].ID),
		})
		stale := domain.VersionOf(ap)

		won, err := repo.ConfirmIfUnassigned(ctx, ap.ID, s.admin.ID, at)
		require.NoError(t, err)
		require.True(t, won)

		ap.Date = datatypes.Date(day3)
		ap.UpdatedAt = at
		domain.ReplaceServices(ap, []uuid.UUID{s.services[1].ID})

		_, err = repo.Update(ctx, ap, stale, true)
		assert.True(t, httperr.IsBusiness(err, "appointment_changed"), "got %v", err)
		assert.Equal(t, httperr.KindInvalidState, httperr.KindOf(err))

		got, err := repo.GetByID(ctx, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), got.Status)
		assert.True(t, time.Time(got.Date).Equal(day1))
		assert.Equal(t, []uuid.UUID{s.services[0].ID}, got.ServiceIDs())
	})

	t.Run("complete after cancel loses", func(t *testing.T) {
		ap := save(t, repo, &models.Appointment{
			Date:     datatypes.Date(day1),
			ClientID: s.client.ID,
			AdminID:  &s.admin.ID,
			Status:   string(domain.StatusConfirmed),
			Services: links(s.services[0].ID),
		})
		from := domain.VersionOf(ap)

		cancelled := *ap
		require.NoError(t, domain.Cancel(&cancelled, "sick", at))
		_, err := repo.Update(ctx, &cancelled, from, false)
		require.NoError(t, err)

		require.NoError(t, domain.Complete(ap, at))
		_, err = repo.Update(ctx, ap, from, false)
		assert.True(t, httperr.IsBusiness(err, "appointment_changed"), "got %v", err)

		got, err := repo.GetByID(ctx, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), got.Status)
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("missing row", func(t *testing.T) {
		ap := &models.Appointment{ID: uuid.New(), Date: datatypes.Date(day1), Status: string(domain.StatusCancelled), UpdatedAt: at}
		_, err := repo.Update(ctx, ap, domain.Version{Status: domain.StatusPending, Number: 1}, false)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
	})
}
