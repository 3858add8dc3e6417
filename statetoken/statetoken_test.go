package statetoken_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-login/statetoken"
	"github.com/stretchr/testify/require"
)

const (
	secretStr    = "test-state-secret"
	testLifetime = 10 * time.Minute
)

func TestGenerateDecodeRoundTrip(t *testing.T) {
	secret := []byte(secretStr)
	data := map[string]string{"foo": "bar", "nonce": "abc123"}

	token, err := statetoken.Generate(data, secret, testLifetime, "TEST_AUDIENCE")
	require.NoError(t, err)

	decoded, err := statetoken.Decode(token, secret, "TEST_AUDIENCE")
	require.NoError(t, err)
	require.Equal(t, "bar", decoded["foo"])
	require.Equal(t, "abc123", decoded["nonce"])
}

func TestCodecRoundTripEmptyData(t *testing.T) {
	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)

	token, err := codec.Issue(map[string]string{})
	require.NoError(t, err)

	decoded, err := codec.Verify(token)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestAudienceOverwritesCallerValue(t *testing.T) {
	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)

	// A caller-supplied aud must not survive issuing
	token, err := codec.Issue(map[string]string{"aud": "evil-audience"})
	require.NoError(t, err)

	decoded, err := codec.Verify(token)
	require.NoError(t, err)
	require.NotContains(t, decoded, "aud")
}

func TestAudienceIsolation(t *testing.T) {
	secret := []byte(secretStr)

	token, err := statetoken.Generate(map[string]string{"foo": "bar"}, secret, testLifetime, "audience-a")
	require.NoError(t, err)

	_, err = statetoken.Decode(token, secret, "audience-b")
	require.ErrorIs(t, err, statetoken.ErrInvalidStateToken)
}

func TestMissingAudienceRejected(t *testing.T) {
	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)

	// Token signed with the right secret but a foreign audience must not
	// verify as a state token.
	token, err := statetoken.Generate(nil, []byte(secretStr), testLifetime, "other")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, statetoken.ErrInvalidStateToken)
}

func TestExpiryEnforcement(t *testing.T) {
	defer func() { statetoken.NowTimeFunc = time.Now }()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	statetoken.NowTimeFunc = func() time.Time { return issuedAt }

	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)
	token, err := codec.Issue(map[string]string{"foo": "bar"})
	require.NoError(t, err)

	// Just before expiry the token still verifies
	statetoken.NowTimeFunc = func() time.Time { return issuedAt.Add(testLifetime - time.Second) }
	_, err = codec.Verify(token)
	require.NoError(t, err)

	// Just after expiry it does not
	statetoken.NowTimeFunc = func() time.Time { return issuedAt.Add(testLifetime + time.Second) }
	_, err = codec.Verify(token)
	require.ErrorIs(t, err, statetoken.ErrInvalidStateToken)
}

func TestTamperedSignatureRejected(t *testing.T) {
	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)

	token, err := codec.Issue(map[string]string{"foo": "bar"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a byte in the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	require.ErrorIs(t, err, statetoken.ErrInvalidStateToken)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := statetoken.Generate(map[string]string{"foo": "bar"}, []byte(secretStr), testLifetime, statetoken.Audience)
	require.NoError(t, err)

	_, err = statetoken.Decode(token, []byte("another-secret"), statetoken.Audience)
	require.ErrorIs(t, err, statetoken.ErrInvalidStateToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	codec := statetoken.NewCodec([]byte(secretStr), testLifetime)

	for _, malformed := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(malformed)
		require.ErrorIs(t, err, statetoken.ErrInvalidStateToken, "token %q", malformed)
	}
}
