package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

// TestMain spins up a throwaway Postgres container for the DAO tests. When
// Docker is not available the whole package is skipped.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping dao tests, could not construct docker pool: %v", err)
		os.Exit(0)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping dao tests, docker is not running: %v", err)
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Printf("skipping dao tests, could not start postgres: %v", err)
		os.Exit(0)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		testDB = db

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func createAttendance(t *testing.T, userID, festivalID uuid.UUID, date string) Attendance {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	attendance, err := NewAttendanceDAO(testDB).Create(context.Background(), Attendance{
		UserID:     userID,
		FestivalID: festivalID,
		Date:       parsed,
	})
	require.NoError(t, err)

	return attendance
}

func createConsumption(t *testing.T, attendanceID uuid.UUID, drinkType string, paid, tip int) {
	t.Helper()

	_, err := NewAttendanceDAO(testDB).CreateConsumption(context.Background(), Consumption{
		AttendanceID:   attendanceID,
		DrinkType:      drinkType,
		BasePriceCents: paid - tip,
		PricePaidCents: paid,
		TipCents:       tip,
		VolumeML:       1000,
		RecordedAt:     time.Now(),
	})
	require.NoError(t, err)
}

func TestAttendanceDAO_GetTotals(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)

	attendance := createAttendance(t, uuid.New(), uuid.New(), "2025-09-20")

	createConsumption(t, attendance.ID, "beer", 1620, 0)
	createConsumption(t, attendance.ID, "beer", 1700, 80)
	createConsumption(t, attendance.ID, "radler", 1620, 0)
	createConsumption(t, attendance.ID, "soft_drink", 600, 0)

	totals, err := d.GetTotals(ctx, attendance.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, totals.DrinkCount)
	// radler counts as beer, soft_drink does not.
	assert.Equal(t, 3, totals.BeerCount)
	assert.Equal(t, 1620+1700+1620+600, totals.TotalSpentCents)
	assert.Equal(t, 80, totals.TotalTipCents)
	assert.Equal(t, 1385, totals.AvgPriceCents)
}

func TestAttendanceDAO_GetTotalsEmpty(t *testing.T) {
	d := NewAttendanceDAO(testDB)
	attendance := createAttendance(t, uuid.New(), uuid.New(), "2025-09-21")

	totals, err := d.GetTotals(context.Background(), attendance.ID)
	require.NoError(t, err)

	assert.Zero(t, totals.DrinkCount)
	assert.Zero(t, totals.BeerCount)
	assert.Zero(t, totals.TotalSpentCents)
}

func TestAttendanceDAO_DeleteCascadesToConsumptions(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)
	userID := uuid.New()

	attendance := createAttendance(t, userID, uuid.New(), "2025-09-22")
	createConsumption(t, attendance.ID, "beer", 1620, 0)

	require.NoError(t, d.Delete(ctx, attendance.ID, userID))

	var count int64
	require.NoError(t, testDB.Model(&Consumption{}).
		Where("attendance_id = ?", attendance.ID).
		Count(&count).Error)
	assert.Zero(t, count)

	// Deleting again reports not found.
	assert.ErrorIs(t, d.Delete(ctx, attendance.ID, userID), ErrAttendanceNotFound)
}

func TestAttendanceDAO_DeleteIgnoresForeignRows(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)

	attendance := createAttendance(t, uuid.New(), uuid.New(), "2025-09-23")

	// A different user cannot delete it.
	err := d.Delete(ctx, attendance.ID, uuid.New())
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestAttendanceDAO_FindConsumptionByIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)

	attendance := createAttendance(t, uuid.New(), uuid.New(), "2025-09-24")

	_, err := d.CreateConsumption(ctx, Consumption{
		AttendanceID:   attendance.ID,
		DrinkType:      "beer",
		BasePriceCents: 1620,
		PricePaidCents: 1620,
		VolumeML:       1000,
		RecordedAt:     time.Now(),
		IdempotencyKey: "key-123",
	})
	require.NoError(t, err)

	_, found, err := d.FindConsumptionByIdempotencyKey(ctx, attendance.ID, "key-123")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = d.FindConsumptionByIdempotencyKey(ctx, attendance.ID, "key-456")
	require.NoError(t, err)
	assert.False(t, found)

	// The key is scoped per attendance.
	other := createAttendance(t, uuid.New(), uuid.New(), "2025-09-24")
	_, found, err = d.FindConsumptionByIdempotencyKey(ctx, other.ID, "key-123")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAttendanceDAO_ListByUser(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)
	userID := uuid.New()
	festivalID := uuid.New()

	for _, date := range []string{"2025-09-20", "2025-09-21", "2025-09-22"} {
		attendance := createAttendance(t, userID, festivalID, date)
		createConsumption(t, attendance.ID, "beer", 1620, 0)
	}

	rows, total, err := d.ListByUser(ctx, userID, festivalID, 2, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	// Newest date first.
	assert.Equal(t, "2025-09-22", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, 1, rows[0].DrinkCount)

	rows, total, err = d.ListByUser(ctx, userID, festivalID, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-09-20", rows[0].Date.Format("2006-01-02"))
}

func TestFestivalDAO_PriceLookups(t *testing.T) {
	ctx := context.Background()
	d := NewFestivalDAO(testDB)
	festivalID := uuid.New()
	tentID := uuid.New()

	require.NoError(t, testDB.Create(&TentPrice{
		FestivalID: festivalID,
		TentID:     tentID,
		DrinkType:  "beer",
		PriceCents: 1480,
	}).Error)
	require.NoError(t, testDB.Create(&FestivalPrice{
		FestivalID: festivalID,
		DrinkType:  "beer",
		PriceCents: 1550,
	}).Error)

	price, err := d.FindTentPrice(ctx, festivalID, tentID, "beer")
	require.NoError(t, err)
	assert.Equal(t, 1480, price)

	price, err = d.FindFestivalPrice(ctx, festivalID, "beer")
	require.NoError(t, err)
	assert.Equal(t, 1550, price)

	_, err = d.FindTentPrice(ctx, festivalID, uuid.New(), "beer")
	assert.ErrorIs(t, err, ErrPriceNotFound)

	_, err = d.FindFestivalPrice(ctx, festivalID, "wine")
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestUserDAO_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(testDB)

	_, err := d.Create(ctx, User{
		Email:    "dup@example.com",
		Password: "hash",
		Name:     "First",
	})
	require.NoError(t, err)

	_, err = d.Create(ctx, User{
		Email:    "dup@example.com",
		Password: "hash",
		Name:     "Second",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLocationDAO_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	d := NewLocationDAO(testDB)
	userID := uuid.New()
	festivalID := uuid.New()
	now := time.Now()

	session, err := d.CreateSession(ctx, LocationSession{
		UserID:     userID,
		FestivalID: festivalID,
		IsActive:   true,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	})
	require.NoError(t, err)

	found, err := d.FindActiveSession(ctx, userID, festivalID, now)
	require.NoError(t, err)
	assert.Equal(t, session.ID, found.ID)

	require.NoError(t, d.AppendPoint(ctx, LocationPoint{
		SessionID:  session.ID,
		Latitude:   48.1315,
		Longitude:  11.5497,
		RecordedAt: now,
	}))

	stopped, err := d.StopSession(ctx, session.ID, userID)
	require.NoError(t, err)
	assert.False(t, stopped.IsActive)

	_, err = d.FindActiveSession(ctx, userID, festivalID, now)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func createUserWithSession(t *testing.T, name string, festivalID uuid.UUID, lat, lng float64) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	user, err := NewUserDAO(testDB).Create(ctx, User{
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Password: "hash",
		Name:     name,
	})
	require.NoError(t, err)

	now := time.Now()
	session, err := NewLocationDAO(testDB).CreateSession(ctx, LocationSession{
		UserID:     user.ID,
		FestivalID: festivalID,
		IsActive:   true,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, NewLocationDAO(testDB).AppendPoint(ctx, LocationPoint{
		SessionID:  session.ID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: now,
	}))

	return user.ID
}

func TestLocationDAO_NearbyMembers(t *testing.T) {
	ctx := context.Background()
	d := NewLocationDAO(testDB)
	festivalID := uuid.New()

	const baseLat, baseLng = 48.1315, 11.5497

	callerID := createUserWithSession(t, "caller", festivalID, baseLat, baseLng)
	nearID := createUserWithSession(t, "near", festivalID, baseLat+0.0005, baseLng)    // ~55m
	midID := createUserWithSession(t, "mid", festivalID, baseLat+0.009, baseLng)      // ~1km
	farID := createUserWithSession(t, "far", festivalID, baseLat+0.09, baseLng)       // ~10km
	strangerID := createUserWithSession(t, "stranger", festivalID, baseLat, baseLng)  // no shared group

	group, err := NewGroupDAO(testDB).Create(ctx, Group{
		FestivalID:  festivalID,
		Name:        "test group",
		InviteToken: uuid.NewString(),
		CreatedBy:   callerID,
	})
	require.NoError(t, err)
	for _, id := range []uuid.UUID{nearID, midID, farID} {
		require.NoError(t, NewGroupDAO(testDB).AddMember(ctx, group.ID, id))
	}

	rows, err := d.NearbyMembers(ctx, callerID, festivalID, baseLat, baseLng, 5000, nil)
	require.NoError(t, err)

	// far is outside the radius, stranger shares no group, the caller is
	// excluded; the rest come back sorted by distance.
	require.Len(t, rows, 2)
	assert.Equal(t, nearID, rows[0].UserID)
	assert.Equal(t, midID, rows[1].UserID)
	assert.Less(t, rows[0].DistanceMeters, rows[1].DistanceMeters)
	for _, row := range rows {
		assert.NotEqual(t, callerID, row.UserID)
		assert.NotEqual(t, strangerID, row.UserID)
	}
}

func TestLocationDAO_ExpireSessions(t *testing.T) {
	ctx := context.Background()
	d := NewLocationDAO(testDB)
	now := time.Now()

	_, err := d.CreateSession(ctx, LocationSession{
		UserID:     uuid.New(),
		FestivalID: uuid.New(),
		IsActive:   true,
		StartedAt:  now.Add(-2 * time.Hour),
		ExpiresAt:  now.Add(-time.Hour),
	})
	require.NoError(t, err)

	expired, err := d.ExpireSessions(ctx, now)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, expired, int64(1))

	// A second sweep finds nothing new.
	expired, err = d.ExpireSessions(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, expired)
}
