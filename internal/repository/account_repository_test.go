package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type accountRepositorySuite struct {
	suite.Suite

	customers   port.CustomerRepository
	subscribers port.SubscriberRepository
	audit       port.AuditRepository
	profiles    port.ProfileRepository
	pool        *pgxpool.Pool
	container   *postgres.PostgresContainer
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(accountRepositorySuite))
}

func (suite *accountRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.customers, err = repository.NewCustomer(suite.pool)
	suite.Require().NoError(err)

	suite.subscribers, err = repository.NewSubscriber(suite.pool)
	suite.Require().NoError(err)

	suite.audit, err = repository.NewAudit(suite.pool)
	suite.Require().NoError(err)

	suite.profiles, err = repository.NewProfile(suite.pool)
	suite.Require().NoError(err)
}

func (suite *accountRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *accountRepositorySuite) TestCustomers() {
	t := suite.T()
	ctx := t.Context()

	uid := gofakeit.UUID()
	require.NoError(t, suite.customers.Upsert(ctx, domain.Customer{UID: uid, Email: gofakeit.Email()}))

	renamed := domain.Customer{UID: uid, Email: gofakeit.Email(), Name: gofakeit.Name()}
	require.NoError(t, suite.customers.Upsert(ctx, renamed))

	customers, err := suite.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, renamed.Email, customers[0].Email)
	assert.Equal(t, renamed.Name, customers[0].Name)
	assert.False(t, customers[0].LastSeenAt.Before(customers[0].CreatedAt))

	require.EqualError(t, suite.customers.Upsert(ctx, domain.Customer{}), "uid is empty")
}

func (suite *accountRepositorySuite) TestAdmins() {
	t := suite.T()
	ctx := t.Context()

	uid := gofakeit.UUID()
	_, err := suite.customers.GetAdmin(ctx, uid)
	require.ErrorIs(t, err, domain.ErrNotFound)

	admin := domain.AdminProfile{UID: uid, Name: gofakeit.Name(), Email: gofakeit.Email()}
	require.NoError(t, suite.customers.AddAdmin(ctx, admin))

	got, err := suite.customers.GetAdmin(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, admin.Name, got.Name)
	assert.Equal(t, admin.Email, got.Email)
	assert.False(t, got.CreatedAt.IsZero())
}

func (suite *accountRepositorySuite) TestSubscribers() {
	t := suite.T()
	ctx := t.Context()

	email := gofakeit.Email()
	require.NoError(t, suite.subscribers.Add(ctx, domain.Subscriber{Email: email}))

	err := suite.subscribers.Add(ctx, domain.Subscriber{Email: email})
	require.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	subscribers, err := suite.subscribers.List(ctx)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, email, subscribers[0].Email)
}

func (suite *accountRepositorySuite) TestAudit() {
	t := suite.T()
	ctx := t.Context()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, action := range []string{"product.create", "order.status", "admin.add"} {
		err := suite.audit.Append(ctx, domain.AuditEntry{
			Action:  action,
			Actor:   "admin-1",
			Payload: map[string]any{"n": i},
			At:      base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := suite.audit.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "admin.add", entries[0].Action)
	assert.Equal(t, "order.status", entries[1].Action)
	assert.EqualValues(t, 1, entries[1].Payload["n"])

	require.EqualError(t, suite.audit.Append(ctx, domain.AuditEntry{}), "action is empty")
}

func (suite *accountRepositorySuite) TestProfiles() {
	t := suite.T()
	ctx := t.Context()
	uid := gofakeit.UUID()

	_, err := suite.profiles.Get(ctx, uid)
	require.ErrorIs(t, err, domain.ErrNotFound)

	profile := domain.Profile{
		UID:      uid,
		FullName: gofakeit.Name(),
		Phone:    "9876543210",
		DefaultAddress: domain.ProfileAddress{
			Address: gofakeit.Street(),
			City:    gofakeit.City(),
			State:   "KA",
			Pincode: "560001",
		},
	}
	require.NoError(t, suite.profiles.Save(ctx, profile))

	profile.Phone = "9123456780"
	require.NoError(t, suite.profiles.Save(ctx, profile))

	got, err := suite.profiles.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, profile.FullName, got.FullName)
	assert.Equal(t, "9123456780", got.Phone)
	assert.Equal(t, profile.DefaultAddress, got.DefaultAddress)
	assert.False(t, got.UpdatedAt.IsZero())

	require.EqualError(t, suite.profiles.Save(ctx, domain.Profile{}), "uid is empty")
}
