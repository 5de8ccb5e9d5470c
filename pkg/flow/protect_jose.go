package flow

import (
	"encoding/json"
	"fmt"

	jose "github.com/go-jose/go-jose/v3"
)

const joseKindHeader = jose.HeaderKey("urn:bankid:token:kind")

type joseProtector struct {
	key []byte
}

// NewJWEProtector returns a Protector that serializes payloads as compact
// JWEs, encrypted with AES-256-GCM using direct key agreement. Use it when
// tokens must be consumable by other services sharing the key; the payload
// kind is pinned in a protected header.
func NewJWEProtector(key [32]byte) Protector {
	return &joseProtector{key: key[:]}
}

func (p *joseProtector) protect(kind string, value any) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("protect %s: %w", kind, err)
	}
	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: p.key},
		(&jose.EncrypterOptions{}).WithHeader(joseKindHeader, kind),
	)
	if err != nil {
		return "", fmt.Errorf("protect %s: %w", kind, err)
	}
	object, err := encrypter.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("protect %s: %w", kind, err)
	}
	return object.CompactSerialize()
}

func (p *joseProtector) unprotect(kind, token string, dst any) error {
	object, err := jose.ParseEncrypted(token)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, kind)
	}
	if object.Header.ExtraHeaders[joseKindHeader] != kind {
		return fmt.Errorf("%w: %s", ErrInvalidToken, kind)
	}
	plaintext, err := object.Decrypt(p.key)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, kind)
	}
	if err := json.Unmarshal(plaintext, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, kind)
	}
	return nil
}

func (p *joseProtector) ProtectOrderRef(ref *OrderRef) (string, error) {
	return p.protect(kindOrderRef, ref)
}

func (p *joseProtector) UnprotectOrderRef(token string) (*OrderRef, error) {
	ref := new(OrderRef)
	if err := p.unprotect(kindOrderRef, token, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (p *joseProtector) ProtectLoginOptions(options *LoginOptions) (string, error) {
	return p.protect(kindLoginOptions, options)
}

func (p *joseProtector) UnprotectLoginOptions(token string) (*LoginOptions, error) {
	options := new(LoginOptions)
	if err := p.unprotect(kindLoginOptions, token, options); err != nil {
		return nil, err
	}
	return options, nil
}

func (p *joseProtector) ProtectLoginResult(result *LoginResult) (string, error) {
	return p.protect(kindLoginResult, result)
}

func (p *joseProtector) UnprotectLoginResult(token string) (*LoginResult, error) {
	result := new(LoginResult)
	if err := p.unprotect(kindLoginResult, token, result); err != nil {
		return nil, err
	}
	return result, nil
}
