package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/role"
	"github.com/velostock/velostock/foundation/logger"
)

// keyStore serves a single generated RSA key under a fixed kid.
type keyStore struct {
	privatePEM string
	publicPEM  string
}

func newKeyStore(t *testing.T) *keyStore {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privateBlock := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicBlock := pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pub,
	}

	return &keyStore{
		privatePEM: string(pem.EncodeToMemory(&privateBlock)),
		publicPEM:  string(pem.EncodeToMemory(&publicBlock)),
	}
}

func (ks *keyStore) PrivateKey(kid string) (string, error) {
	return ks.privatePEM, nil
}

func (ks *keyStore) PublicKey(kid string) (string, error) {
	return ks.publicPEM, nil
}

// =============================================================================

// fakeStorer serves users from memory so the auth layer can be exercised
// without a database.
type fakeStorer struct {
	users map[uuid.UUID]userbus.User
}

func (s *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *fakeStorer) Create(ctx context.Context, usr userbus.User) error {
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeStorer) Update(ctx context.Context, usr userbus.User) error {
	s.users[usr.ID] = usr
	return nil
}

func (s *fakeStorer) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return nil, nil
}

func (s *fakeStorer) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(s.users), nil
}

func (s *fakeStorer) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	usr, ok := s.users[userID]
	if !ok {
		return userbus.User{}, userbus.ErrNotFound
	}
	return usr, nil
}

func (s *fakeStorer) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	for _, usr := range s.users {
		if usr.Email.Address == email.Address {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

// =============================================================================

func newTestAuth(t *testing.T, storer *fakeStorer) *auth.Auth {
	t.Helper()

	ath, err := auth.New(auth.Config{
		Log:       logger.New(io.Discard, logger.LevelInfo, "TEST", nil),
		UserBus:   userbus.NewCore(storer),
		KeyLookup: newKeyStore(t),
		Issuer:    "https://velostock.com/auth/",
		ActiveKID: "test-kid",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)

	return ath
}

func seedUser(storer *fakeStorer, enabled bool) userbus.User {
	usr := userbus.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      name.MustParse("Ana Souza"),
		Email:     mail.Address{Address: "ana@revenda.com"},
		Role:      role.Seller,
		Enabled:   enabled,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	storer.users[usr.ID] = usr
	return usr
}

func Test_TokenRoundTrip(t *testing.T) {
	storer := &fakeStorer{users: map[uuid.UUID]userbus.User{}}
	ath := newTestAuth(t, storer)

	usr := seedUser(storer, true)

	token, err := ath.GenerateToken(usr)
	require.NoError(t, err)

	gotUsr, claims, err := ath.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	assert.Equal(t, usr.ID, gotUsr.ID)
	assert.Equal(t, usr.ID.String(), claims.Subject)
	assert.Equal(t, usr.CompanyID.String(), claims.CompanyID)
	assert.Equal(t, role.Seller.String(), claims.Role)
	assert.Equal(t, ath.Issuer(), claims.Issuer)
}

func Test_Authenticate_MissingBearer(t *testing.T) {
	storer := &fakeStorer{users: map[uuid.UUID]userbus.User{}}
	ath := newTestAuth(t, storer)

	_, _, err := ath.Authenticate(context.Background(), "not-a-bearer-token")
	require.Error(t, err)
}

func Test_Authenticate_DisabledUser(t *testing.T) {
	storer := &fakeStorer{users: map[uuid.UUID]userbus.User{}}
	ath := newTestAuth(t, storer)

	usr := seedUser(storer, false)

	token, err := ath.GenerateToken(usr)
	require.NoError(t, err)

	_, _, err = ath.Authenticate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, auth.ErrUserDisabled)
}

func Test_Authenticate_TamperedToken(t *testing.T) {
	storer := &fakeStorer{users: map[uuid.UUID]userbus.User{}}

	// Sign with one key pair, verify with another.
	signer := newTestAuth(t, storer)
	verifier := newTestAuth(t, storer)

	usr := seedUser(storer, true)

	token, err := signer.GenerateToken(usr)
	require.NoError(t, err)

	_, _, err = verifier.Authenticate(context.Background(), "Bearer "+token)
	require.Error(t, err)
}

func Test_Authorize(t *testing.T) {
	storer := &fakeStorer{users: map[uuid.UUID]userbus.User{}}
	ath := newTestAuth(t, storer)

	usr := seedUser(storer, true)

	// Role default applies.
	require.NoError(t, ath.Authorize(context.Background(), usr, capability.ManageLeads))
	require.ErrorIs(t, ath.Authorize(context.Background(), usr, capability.ViewFinancials), auth.ErrForbidden)

	// An explicit grant overrides the role default.
	usr.Capabilities = map[string]bool{capability.ViewFinancials.String(): true}
	require.NoError(t, ath.Authorize(context.Background(), usr, capability.ViewFinancials))

	// An explicit deny closes a capability the role has.
	usr.Capabilities = map[string]bool{capability.ManageLeads.String(): false}
	require.ErrorIs(t, ath.Authorize(context.Background(), usr, capability.ManageLeads), auth.ErrForbidden)
}
