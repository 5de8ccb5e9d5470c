package flow

import (
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"
)

// ErrInvalidToken is returned when a protected token cannot be decoded,
// whether it is malformed, tampered with, expired or of the wrong payload
// kind. Callers must not be able to tell those cases apart.
var ErrInvalidToken = errors.New("invalid token")

// Payload kind names, bound into each token so that a token of one kind can
// never decode as another.
const (
	kindOrderRef     = "orderRef"
	kindLoginOptions = "loginOptions"
	kindLoginResult  = "loginResult"
)

// OrderRef identifies one in-flight order at the BankID RP API together with
// the autostart token needed to launch the app for it.
type OrderRef struct {
	OrderRef       string `json:"orderRef"`
	AutoStartToken string `json:"autoStartToken"`
}

// LoginResult carries the verified identity out of a completed order. It is
// handed to the embedding application as a protected token on the return
// URL.
type LoginResult struct {
	PersonalNumber string `json:"personalNumber"`
	Name           string `json:"name"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
}

// Protector converts session payloads to and from opaque client-held tokens.
// Tokens are authenticated and encrypted; decoding fails closed on any
// mismatch, including a token of a different payload kind.
type Protector interface {
	ProtectOrderRef(*OrderRef) (string, error)
	UnprotectOrderRef(token string) (*OrderRef, error)
	ProtectLoginOptions(*LoginOptions) (string, error)
	UnprotectLoginOptions(token string) (*LoginOptions, error)
	ProtectLoginResult(*LoginResult) (string, error)
	UnprotectLoginResult(token string) (*LoginResult, error)
}

type cookieProtector struct {
	codec *securecookie.SecureCookie
}

// NewProtector returns a Protector backed by gorilla/securecookie.
// hashKey authenticates tokens and should be 32 or 64 bytes, encryptKey
// encrypts them with AES and must be 16, 24 or 32 bytes. Tokens expire one
// hour after creation.
func NewProtector(hashKey, encryptKey []byte) Protector {
	codec := securecookie.New(hashKey, encryptKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(3600)
	return &cookieProtector{codec: codec}
}

func (p *cookieProtector) protect(kind string, value any) (string, error) {
	token, err := p.codec.Encode(kind, value)
	if err != nil {
		return "", fmt.Errorf("protect %s: %w", kind, err)
	}
	return token, nil
}

func (p *cookieProtector) unprotect(kind, token string, dst any) error {
	if err := p.codec.Decode(kind, token, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, kind)
	}
	return nil
}

func (p *cookieProtector) ProtectOrderRef(ref *OrderRef) (string, error) {
	return p.protect(kindOrderRef, ref)
}

func (p *cookieProtector) UnprotectOrderRef(token string) (*OrderRef, error) {
	ref := new(OrderRef)
	if err := p.unprotect(kindOrderRef, token, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (p *cookieProtector) ProtectLoginOptions(options *LoginOptions) (string, error) {
	return p.protect(kindLoginOptions, options)
}

func (p *cookieProtector) UnprotectLoginOptions(token string) (*LoginOptions, error) {
	options := new(LoginOptions)
	if err := p.unprotect(kindLoginOptions, token, options); err != nil {
		return nil, err
	}
	return options, nil
}

func (p *cookieProtector) ProtectLoginResult(result *LoginResult) (string, error) {
	return p.protect(kindLoginResult, result)
}

func (p *cookieProtector) UnprotectLoginResult(token string) (*LoginResult, error) {
	result := new(LoginResult)
	if err := p.unprotect(kindLoginResult, token, result); err != nil {
		return nil, err
	}
	return result, nil
}
