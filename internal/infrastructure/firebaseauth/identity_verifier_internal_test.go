package firebaseauth

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/domain"
)

type fakeAuthClient struct {
	token     *auth.Token
	verifyErr error
	user      *auth.UserRecord
	getErr    error
	gotUID    string
}

func (f *fakeAuthClient) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return f.token, f.verifyErr
}

func (f *fakeAuthClient) GetUser(_ context.Context, uid string) (*auth.UserRecord, error) {
	f.gotUID = uid
	return f.user, f.getErr
}

func googleUser() *auth.UserRecord {
	return &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:         "uid-1",
			Email:       "Meera@Example.com",
			DisplayName: "Meera Nair",
			PhoneNumber: "+919812345678",
			PhotoURL:    "https://lh3.test/meera.png",
		},
		ProviderUserInfo: []*auth.UserInfo{{ProviderID: "google.com"}, nil, {ProviderID: "password"}},
	}
}

func TestVerify_DevuelveCuentaConProveedores(t *testing.T) {
	client := &fakeAuthClient{token: &auth.Token{UID: "uid-1"}, user: googleUser()}
	v := &IdentityVerifier{client: client}

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", client.gotUID)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "Meera@Example.com", id.Email)
	assert.Equal(t, "Meera Nair", id.DisplayName)
	assert.Equal(t, "+919812345678", id.PhoneNumber)
	assert.Equal(t, []string{"google.com", "password"}, id.Providers)
	assert.True(t, id.HasProvider("google.com"))
}

func TestVerify_CuentaDeshabilitadaEsForbidden(t *testing.T) {
	user := googleUser()
	user.Disabled = true
	v := &IdentityVerifier{client: &fakeAuthClient{token: &auth.Token{UID: "uid-1"}, user: user}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerify_ErrorDelProveedorNoSeConfundeConTokenInvalido(t *testing.T) {
	boom := errors.New("certificados no disponibles")
	v := &IdentityVerifier{client: &fakeAuthClient{verifyErr: boom}}

	_, err := v.Verify(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	v = &IdentityVerifier{client: &fakeAuthClient{token: &auth.Token{UID: "uid-1"}, getErr: boom}}
	_, err = v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, boom)
}

func TestToIdentity_SinUserInfo(t *testing.T) {
	id := toIdentity(&auth.Token{UID: "uid-2"}, &auth.UserRecord{})
	assert.Equal(t, "uid-2", id.UID)
	assert.Empty(t, id.Email)
	assert.Empty(t, id.Providers)
}
