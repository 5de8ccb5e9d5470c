package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProtectors(t *testing.T) map[string]Protector {
	t.Helper()
	hashKey := []byte("test1234test1234test1234test1234")
	encryptKey := []byte("test1234test1234test1234test1234")
	var joseKey [32]byte
	copy(joseKey[:], encryptKey)
	return map[string]Protector{
		"securecookie": NewProtector(hashKey, encryptKey),
		"jwe":          NewJWEProtector(joseKey),
	}
}

func TestProtectorRoundTrip(t *testing.T) {
	for name, protector := range newTestProtectors(t) {
		t.Run(name, func(t *testing.T) {
			ref := &OrderRef{OrderRef: "order-123", AutoStartToken: "ast-456"}
			token, err := protector.ProtectOrderRef(ref)
			require.NoError(t, err)
			assert.NotContains(t, token, "order-123")
			assert.NotContains(t, token, "ast-456")

			got, err := protector.UnprotectOrderRef(token)
			require.NoError(t, err)
			assert.Equal(t, ref, got)

			options := &LoginOptions{
				AllowChangingIdentity: true,
				AutoLaunch:            true,
				CertificatePolicies:   []string{"1.2.752.78.1.5"},
			}
			optionsToken, err := protector.ProtectLoginOptions(options)
			require.NoError(t, err)
			gotOptions, err := protector.UnprotectLoginOptions(optionsToken)
			require.NoError(t, err)
			assert.Equal(t, options, gotOptions)

			result := &LoginResult{
				PersonalNumber: "201212121212",
				Name:           "Test Testsson",
				GivenName:      "Test",
				Surname:        "Testsson",
			}
			resultToken, err := protector.ProtectLoginResult(result)
			require.NoError(t, err)
			assert.NotContains(t, resultToken, "201212121212")
			gotResult, err := protector.UnprotectLoginResult(resultToken)
			require.NoError(t, err)
			assert.Equal(t, result, gotResult)
		})
	}
}

func TestProtectorRejectsWrongKind(t *testing.T) {
	for name, protector := range newTestProtectors(t) {
		t.Run(name, func(t *testing.T) {
			token, err := protector.ProtectOrderRef(&OrderRef{OrderRef: "order-123"})
			require.NoError(t, err)

			_, err = protector.UnprotectLoginOptions(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			_, err = protector.UnprotectLoginResult(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestProtectorRejectsTamperedToken(t *testing.T) {
	for name, protector := range newTestProtectors(t) {
		t.Run(name, func(t *testing.T) {
			token, err := protector.ProtectOrderRef(&OrderRef{OrderRef: "order-123"})
			require.NoError(t, err)

			tampered := "x" + token[1:]
			if tampered == token {
				tampered = "y" + token[1:]
			}
			_, err = protector.UnprotectOrderRef(tampered)
			assert.ErrorIs(t, err, ErrInvalidToken)

			_, err = protector.UnprotectOrderRef("not a token")
			assert.ErrorIs(t, err, ErrInvalidToken)
			_, err = protector.UnprotectOrderRef("")
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestProtectorKeysAreNotInterchangeable(t *testing.T) {
	hashKey := []byte("test1234test1234test1234test1234")
	a := NewProtector(hashKey, []byte("aaaa1234test1234test1234test1234"))
	b := NewProtector([]byte("bbbb1234test1234test1234test1234"), []byte("aaaa1234test1234test1234test1234"))

	token, err := a.ProtectOrderRef(&OrderRef{OrderRef: "order-123"})
	require.NoError(t, err)
	_, err = b.UnprotectOrderRef(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
