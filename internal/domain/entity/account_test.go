package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw     string
		want    Kind
		wantErr bool
	}{
		{raw: "donor", want: KindDonor},
		{raw: "recycler", want: KindRecycler},
		{raw: "", wantErr: true},
		{raw: "Donor", wantErr: true},
		{raw: "receiver", wantErr: true},
		{raw: "admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKind(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Collection(t *testing.T) {
	assert.Equal(t, "donors", KindDonor.Collection())
	assert.Equal(t, "receivers", KindRecycler.Collection())
}

func TestAccount_PendingCredentialState(t *testing.T) {
	account := &Account{Kind: KindDonor, Username: "alice"}

	// A fresh account has no staged credential.
	_, ok := account.PendingPassword()
	assert.False(t, ok)

	account.SetPassword("pw1")
	plain, ok := account.PendingPassword()
	assert.True(t, ok)
	assert.Equal(t, "pw1", plain)

	// Installing the hash clears the staged plaintext.
	account.SetPasswordHash("hashed")
	assert.Equal(t, "hashed", account.PasswordHash)
	_, ok = account.PendingPassword()
	assert.False(t, ok)
}
