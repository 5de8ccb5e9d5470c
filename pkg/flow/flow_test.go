package flow_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/flow"
	"github.com/norlig/bankid/pkg/flow/mock"
	"github.com/norlig/bankid/pkg/usermessage"
)

const (
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	uaAndroid = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36"
	uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"
)

var messages = usermessage.NewLocalizer()

func newTestFlow(t *testing.T, api flow.APIClient, events flow.EventTrigger, options ...flow.Option) (*flow.Flow, flow.Protector) {
	t.Helper()
	protector := flow.NewProtector(
		[]byte("test1234test1234test1234test1234"),
		[]byte("test1234test1234test1234test1234"),
	)
	options = append([]flow.Option{flow.WithEventTrigger(events)}, options...)
	return flow.New(api, protector, options...), protector
}

func protectOptions(t *testing.T, protector flow.Protector, options *flow.LoginOptions) string {
	t.Helper()
	token, err := protector.ProtectLoginOptions(options)
	require.NoError(t, err)
	return token
}

func TestInitialize_PresetIdentitySkipsParsing(t *testing.T) {
	api := mock.NewAPIClient(t)
	api.EXPECT().Auth(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request *bankid.AuthRequest) (*bankid.AuthResponse, error) {
			assert.Equal(t, "201212121212", request.PersonalNumber)
			require.NotNil(t, request.Requirement)
			assert.Nil(t, request.Requirement.AutoStartTokenRequired)
			return &bankid.AuthResponse{OrderRef: "order-1", AutoStartToken: "ast-1"}, nil
		})
	events := mock.NewEventTriggerExpect(t, flow.EventTypeAuthSuccess)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: protectOptions(t, protector, &flow.LoginOptions{
			PersonalNumber: "201212121212",
		}),
		ReturnURL: "/account",
		// raw input must be ignored on an identity-fixed session
		PersonalNumber: "not a personal number",
		EndUserIP:      "192.0.2.1",
		UserAgent:      uaDesktop,
	})
	require.NoError(t, err)
	manual, ok := outcome.(*flow.InitializeManualLaunch)
	require.True(t, ok, "outcome is %T", outcome)
	assert.NotEmpty(t, manual.OrderRefToken)
	assert.Empty(t, manual.QRCode)

	ref, err := protector.UnprotectOrderRef(manual.OrderRefToken)
	require.NoError(t, err)
	assert.Equal(t, "order-1", ref.OrderRef)
	assert.Equal(t, "ast-1", ref.AutoStartToken)
}

func TestInitialize_InvalidIdentityNeverStartsOrder(t *testing.T) {
	// no EXPECT on the client: any call fails the test
	api := mock.NewAPIClient(t)
	events := mock.NewEventTrigger(t)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: protectOptions(t, protector, &flow.LoginOptions{
			AllowChangingIdentity: true,
		}),
		ReturnURL:      "/account",
		PersonalNumber: "121212-1213",
		EndUserIP:      "192.0.2.1",
		UserAgent:      uaDesktop,
	})
	require.NoError(t, err)
	failure, ok := outcome.(*flow.InitializeValidationFailure)
	require.True(t, ok, "outcome is %T", outcome)
	assert.Equal(t, "personalIdentityNumber", failure.Field)
	assert.NotEmpty(t, failure.Message)
}

func TestInitialize_InputErrors(t *testing.T) {
	api := mock.NewAPIClient(t)
	events := mock.NewEventTrigger(t)
	f, protector := newTestFlow(t, api, events)
	optionsToken := protectOptions(t, protector, &flow.LoginOptions{AutoLaunch: true})

	_, err := f.Initialize(context.Background(), &flow.InitializeRequest{
		ReturnURL: "/account",
	})
	assert.ErrorIs(t, err, flow.ErrMissingInput)

	_, err = f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: optionsToken,
	})
	assert.ErrorIs(t, err, flow.ErrMissingInput)

	_, err = f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: "tampered",
		ReturnURL:         "/account",
	})
	assert.ErrorIs(t, err, flow.ErrInvalidToken)

	_, err = f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: optionsToken,
		ReturnURL:         "https://evil.example.com/account",
	})
	assert.ErrorIs(t, err, flow.ErrNonLocalReturnURL)
}

func TestInitialize_AutoLaunch(t *testing.T) {
	for _, tt := range []struct {
		name            string
		userAgent       string
		wantCheckStatus bool
		wantInteraction bool
		wantPrefix      string
	}{
		{
			name:            "ios waits for the page reload",
			userAgent:       uaIPhone,
			wantCheckStatus: false,
			wantInteraction: true,
			wantPrefix:      "https://app.bankid.com/",
		},
		{
			name:            "android keeps polling",
			userAgent:       uaAndroid,
			wantCheckStatus: true,
			wantPrefix:      "bankid:///",
		},
		{
			name:            "desktop keeps polling",
			userAgent:       uaDesktop,
			wantCheckStatus: true,
			wantPrefix:      "bankid:///",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			api := mock.NewAPIClient(t)
			api.EXPECT().Auth(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, request *bankid.AuthRequest) (*bankid.AuthResponse, error) {
					// no identity on this session, the app must pick the
					// order up through the autostart token
					assert.Empty(t, request.PersonalNumber)
					require.NotNil(t, request.Requirement)
					require.NotNil(t, request.Requirement.AutoStartTokenRequired)
					assert.True(t, *request.Requirement.AutoStartTokenRequired)
					return &bankid.AuthResponse{OrderRef: "order-1", AutoStartToken: "ast-1"}, nil
				})
			events := mock.NewEventTriggerExpect(t, flow.EventTypeAuthSuccess)
			f, protector := newTestFlow(t, api, events)

			outcome, err := f.Initialize(context.Background(), &flow.InitializeRequest{
				LoginOptionsToken: protectOptions(t, protector, &flow.LoginOptions{AutoLaunch: true}),
				ReturnURL:         "/account",
				EndUserIP:         "192.0.2.1",
				Origin:            "https://demo.example.com",
				UserAgent:         tt.userAgent,
			})
			require.NoError(t, err)
			launch, ok := outcome.(*flow.InitializeAutoLaunch)
			require.True(t, ok, "outcome is %T", outcome)
			assert.Equal(t, tt.wantCheckStatus, launch.CheckStatus)
			assert.Equal(t, tt.wantInteraction, launch.DeviceMightRequireUserInteraction)
			assert.Contains(t, launch.LaunchURL, "autostarttoken=ast-1")
			assert.True(t, len(launch.LaunchURL) > len(tt.wantPrefix) && launch.LaunchURL[:len(tt.wantPrefix)] == tt.wantPrefix,
				"launch url %q does not start with %q", launch.LaunchURL, tt.wantPrefix)
		})
	}
}

func TestInitialize_QRCode(t *testing.T) {
	api := mock.NewAPIClientExpectAuth(t, "order-1", "ast-1")
	events := mock.NewEventTriggerExpect(t, flow.EventTypeAuthSuccess)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: protectOptions(t, protector, &flow.LoginOptions{UseQRCode: true}),
		ReturnURL:         "/account",
		EndUserIP:         "192.0.2.1",
		UserAgent:         uaDesktop,
	})
	require.NoError(t, err)
	manual, ok := outcome.(*flow.InitializeManualLaunch)
	require.True(t, ok, "outcome is %T", outcome)
	assert.NotEmpty(t, manual.QRCode)
}

func TestInitialize_APIError(t *testing.T) {
	api := mock.NewAPIClient(t)
	api.EXPECT().Auth(gomock.Any(), gomock.Any()).Return(nil, bankid.ErrAlreadyInProgress())
	events := mock.NewEventTriggerExpect(t, flow.EventTypeAuthError)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Initialize(context.Background(), &flow.InitializeRequest{
		LoginOptionsToken: protectOptions(t, protector, &flow.LoginOptions{AutoLaunch: true}),
		ReturnURL:         "/account",
		EndUserIP:         "192.0.2.1",
		UserAgent:         uaDesktop,
		AcceptLanguage:    "en",
	})
	require.NoError(t, err)
	apiErr, ok := outcome.(*flow.InitializeAPIError)
	require.True(t, ok, "outcome is %T", outcome)
	assert.Equal(t, messages.Localize("en", usermessage.RFA4), apiErr.Message)
}

func newStatusRequest(t *testing.T, protector flow.Protector, options *flow.LoginOptions, attempts int) *flow.StatusRequest {
	t.Helper()
	orderRefToken, err := protector.ProtectOrderRef(&flow.OrderRef{OrderRef: "order-1", AutoStartToken: "ast-1"})
	require.NoError(t, err)
	return &flow.StatusRequest{
		LoginOptionsToken: protectOptions(t, protector, options),
		OrderRefToken:     orderRefToken,
		ReturnURL:         "/account",
		AutoStartAttempts: attempts,
		UserAgent:         uaDesktop,
		AcceptLanguage:    "en",
	}
}

func TestStatus_Pending(t *testing.T) {
	api := mock.NewAPIClientExpectCollect(t, &bankid.CollectResponse{
		OrderRef: "order-1",
		Status:   bankid.CollectStatusPending,
		HintCode: bankid.HintCodeOutstandingTransaction,
	})
	events := mock.NewEventTriggerExpect(t, flow.EventTypeCollectPending)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{UseQRCode: true}, 0))
	require.NoError(t, err)
	pending, ok := outcome.(*flow.StatusPending)
	require.True(t, ok, "outcome is %T", outcome)
	assert.Equal(t, messages.Localize("en", usermessage.RFA1QR), pending.Message)
}

func TestStatus_RetryBound(t *testing.T) {
	startFailed := func() *bankid.CollectResponse {
		return &bankid.CollectResponse{
			OrderRef: "order-1",
			Status:   bankid.CollectStatusFailed,
			HintCode: bankid.HintCodeStartFailed,
		}
	}

	t.Run("attempts left turns start failure into retry", func(t *testing.T) {
		api := mock.NewAPIClientExpectCollect(t, startFailed())
		events := mock.NewEventTrigger(t)
		f, protector := newTestFlow(t, api, events)

		outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, flow.DefaultMaxRetryAttempts-1))
		require.NoError(t, err)
		_, ok := outcome.(*flow.StatusRetry)
		require.True(t, ok, "outcome is %T", outcome)
	})

	t.Run("attempts exhausted fails the session", func(t *testing.T) {
		api := mock.NewAPIClientExpectCollect(t, startFailed())
		events := mock.NewEventTriggerExpect(t, flow.EventTypeCollectError)
		f, protector := newTestFlow(t, api, events)

		outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, flow.DefaultMaxRetryAttempts))
		require.NoError(t, err)
		failure, ok := outcome.(*flow.StatusFailure)
		require.True(t, ok, "outcome is %T", outcome)
		assert.Equal(t, messages.Localize("en", usermessage.RFA17A), failure.Message)
	})
}

func TestStatus_Failed(t *testing.T) {
	api := mock.NewAPIClientExpectCollect(t, &bankid.CollectResponse{
		OrderRef: "order-1",
		Status:   bankid.CollectStatusFailed,
		HintCode: bankid.HintCodeUserCancel,
	})
	events := mock.NewEventTriggerExpect(t, flow.EventTypeCollectError)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, 0))
	require.NoError(t, err)
	failure, ok := outcome.(*flow.StatusFailure)
	require.True(t, ok, "outcome is %T", outcome)
	assert.Equal(t, messages.Localize("en", usermessage.RFA6), failure.Message)
}

func TestStatus_Finished(t *testing.T) {
	api := mock.NewAPIClientExpectCollect(t, &bankid.CollectResponse{
		OrderRef: "order-1",
		Status:   bankid.CollectStatusComplete,
		CompletionData: &bankid.CompletionData{
			User: &bankid.User{
				PersonalNumber: "201212121212",
				Name:           "Test Testsson",
				GivenName:      "Test",
				Surname:        "Testsson",
			},
		},
	})
	events := mock.NewEventTriggerExpect(t, flow.EventTypeCollectCompleted)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, 0))
	require.NoError(t, err)
	finished, ok := outcome.(*flow.StatusFinished)
	require.True(t, ok, "outcome is %T", outcome)

	redirect, err := url.Parse(finished.RedirectURL)
	require.NoError(t, err)
	assert.Empty(t, redirect.Scheme)
	assert.Empty(t, redirect.Host)
	assert.Equal(t, "/account", redirect.Path)

	result, err := protector.UnprotectLoginResult(redirect.Query().Get("loginResult"))
	require.NoError(t, err)
	assert.Equal(t, &flow.LoginResult{
		PersonalNumber: "201212121212",
		Name:           "Test Testsson",
		GivenName:      "Test",
		Surname:        "Testsson",
	}, result)
}

func TestStatus_CompleteWithoutCompletionData(t *testing.T) {
	api := mock.NewAPIClientExpectCollect(t, &bankid.CollectResponse{
		OrderRef: "order-1",
		Status:   bankid.CollectStatusComplete,
	})
	events := mock.NewEventTrigger(t)
	f, protector := newTestFlow(t, api, events)

	_, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, 0))
	assert.ErrorIs(t, err, flow.ErrMissingCompletionData)
}

func TestStatus_APIError(t *testing.T) {
	api := mock.NewAPIClient(t)
	api.EXPECT().Collect(gomock.Any(), "order-1").Return(nil, bankid.ErrInternalError())
	events := mock.NewEventTriggerExpect(t, flow.EventTypeCollectError)
	f, protector := newTestFlow(t, api, events)

	outcome, err := f.Status(context.Background(), newStatusRequest(t, protector, &flow.LoginOptions{AutoLaunch: true}, 0))
	require.NoError(t, err)
	apiErr, ok := outcome.(*flow.StatusAPIError)
	require.True(t, ok, "outcome is %T", outcome)
	assert.Equal(t, messages.Localize("en", usermessage.RFA5), apiErr.Message)
}

func TestStatus_WrongKindToken(t *testing.T) {
	api := mock.NewAPIClient(t)
	events := mock.NewEventTrigger(t)
	f, protector := newTestFlow(t, api, events)

	optionsToken := protectOptions(t, protector, &flow.LoginOptions{AutoLaunch: true})
	_, err := f.Status(context.Background(), &flow.StatusRequest{
		LoginOptionsToken: optionsToken,
		// a login options token is not an order reference
		OrderRefToken: optionsToken,
		ReturnURL:     "/account",
	})
	assert.ErrorIs(t, err, flow.ErrInvalidToken)
}

func TestCancel(t *testing.T) {
	t.Run("remote cancel succeeded", func(t *testing.T) {
		api := mock.NewAPIClient(t)
		api.EXPECT().Cancel(gomock.Any(), "order-1").Return(nil)
		events := mock.NewEventTriggerExpect(t, flow.EventTypeCancelSuccess)
		f, protector := newTestFlow(t, api, events)

		orderRefToken, err := protector.ProtectOrderRef(&flow.OrderRef{OrderRef: "order-1"})
		require.NoError(t, err)
		outcome, err := f.Cancel(context.Background(), &flow.CancelRequest{OrderRefToken: orderRefToken})
		require.NoError(t, err)
		assert.NotNil(t, outcome)
	})

	t.Run("remote cancel failed", func(t *testing.T) {
		api := mock.NewAPIClient(t)
		api.EXPECT().Cancel(gomock.Any(), "order-1").Return(errors.New("order already completed"))
		events := mock.NewEventTriggerExpect(t, flow.EventTypeCancelError)
		f, protector := newTestFlow(t, api, events)

		orderRefToken, err := protector.ProtectOrderRef(&flow.OrderRef{OrderRef: "order-1"})
		require.NoError(t, err)
		outcome, err := f.Cancel(context.Background(), &flow.CancelRequest{OrderRefToken: orderRefToken})
		require.NoError(t, err)
		assert.NotNil(t, outcome)
	})

	t.Run("missing token", func(t *testing.T) {
		f, _ := newTestFlow(t, mock.NewAPIClient(t), mock.NewEventTrigger(t))
		_, err := f.Cancel(context.Background(), &flow.CancelRequest{})
		assert.ErrorIs(t, err, flow.ErrMissingInput)
	})
}
