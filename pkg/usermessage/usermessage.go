// Package usermessage resolves the state of an order into the recommended
// user messages of the BankID Relying Party Guidelines (the RFA texts),
// and localizes them.
package usermessage

import (
	"github.com/norlig/bankid/pkg/bankid"
)

// ShortName is the symbolic key of a recommended user message. The RFA
// numbering follows the Relying Party Guidelines; the A/B suffix selects the
// computer respectively mobile wording, QR the QR code wording.
type ShortName string

const (
	ShortNameUnknown ShortName = "unknown"

	RFA1   ShortName = "rfa1"
	RFA1QR ShortName = "rfa1-qr"
	RFA2   ShortName = "rfa2"
	RFA3   ShortName = "rfa3"
	RFA4   ShortName = "rfa4"
	RFA5   ShortName = "rfa5"
	RFA6   ShortName = "rfa6"
	RFA8   ShortName = "rfa8"
	RFA9   ShortName = "rfa9"
	RFA13  ShortName = "rfa13"
	RFA14A ShortName = "rfa14-a"
	RFA14B ShortName = "rfa14-b"
	RFA15A ShortName = "rfa15-a"
	RFA15B ShortName = "rfa15-b"
	RFA16  ShortName = "rfa16"
	RFA17A ShortName = "rfa17-a"
	RFA17B ShortName = "rfa17-b"
	RFA21  ShortName = "rfa21"
	RFA22  ShortName = "rfa22"
)

// ForCollectResponse resolves one collect result into a message key.
//
// It is total: any combination it has no specific message for falls back to
// RFA21 while the order is pending and RFA22 otherwise, as recommended by the
// guidelines for unknown hint codes.
func ForCollectResponse(
	status bankid.CollectStatus,
	hintCode bankid.CollectHintCode,
	identityProvided bool,
	onMobileDevice bool,
	usingQRCode bool,
) ShortName {
	switch status {
	case bankid.CollectStatusPending:
		return forPending(hintCode, identityProvided, onMobileDevice, usingQRCode)
	case bankid.CollectStatusFailed:
		return forFailed(hintCode, usingQRCode)
	case bankid.CollectStatusComplete:
		return ShortNameUnknown
	default:
		return RFA22
	}
}

func forPending(hintCode bankid.CollectHintCode, identityProvided, onMobileDevice, usingQRCode bool) ShortName {
	switch hintCode {
	case bankid.HintCodeOutstandingTransaction, bankid.HintCodeNoClient:
		switch {
		case identityProvided:
			return RFA1
		case usingQRCode:
			return RFA1QR
		default:
			// autostart launch in flight
			return RFA13
		}
	case bankid.HintCodeStarted:
		// RFA14 requires a known identity, RFA15 covers the rest
		switch {
		case identityProvided && onMobileDevice:
			return RFA14B
		case identityProvided:
			return RFA14A
		case onMobileDevice:
			return RFA15B
		default:
			return RFA15A
		}
	case bankid.HintCodeUserSign:
		return RFA9
	default:
		return RFA21
	}
}

func forFailed(hintCode bankid.CollectHintCode, usingQRCode bool) ShortName {
	switch hintCode {
	case bankid.HintCodeExpiredTransaction:
		return RFA8
	case bankid.HintCodeCertificateErr:
		return RFA16
	case bankid.HintCodeUserCancel:
		return RFA6
	case bankid.HintCodeCancelled:
		return RFA3
	case bankid.HintCodeStartFailed:
		if usingQRCode {
			return RFA17B
		}
		return RFA17A
	default:
		return RFA22
	}
}

// ForAPIError resolves a remote API error into a message key, total over all
// error codes.
func ForAPIError(code bankid.ErrorCode) ShortName {
	switch code {
	case bankid.ErrorCodeAlreadyInProgress:
		return RFA4
	case bankid.ErrorCodeRequestTimeout, bankid.ErrorCodeMaintenance, bankid.ErrorCodeInternalError:
		return RFA5
	default:
		return RFA22
	}
}
