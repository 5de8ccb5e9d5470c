package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/norlig/bankid/pkg/bankid"
)

const DefaultTimeout = 30 * time.Second

var DefaultHTTPClient = &http.Client{
	Timeout: DefaultTimeout,
}

type Encoder interface {
	Encode(src any, dst map[string][]string) error
}

// JSONRequest builds a POST request with a JSON body, as expected by all
// endpoints of the BankID Relying Party API.
func JSONRequest(ctx context.Context, endpoint string, request any) (*http.Request, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// HttpRequest executes req and unmarshals the body into response. A non-200
// status is returned as *bankid.Error when the body carries one.
func HttpRequest(client *http.Client, req *http.Request, response any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("unable to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr bankid.Error
		err = json.Unmarshal(body, &apiErr)
		if err != nil || apiErr.ErrorCode == "" {
			return fmt.Errorf("http status not ok: %s %s", resp.Status, body)
		}
		return &apiErr
	}

	if response == nil {
		return nil
	}
	err = json.Unmarshal(body, response)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response: %v %s", err, body)
	}
	return nil
}

// URLEncodeParams encodes resp into query values using the given encoder.
func URLEncodeParams(resp any, encoder Encoder) (url.Values, error) {
	values := make(url.Values)
	err := encoder.Encode(resp, values)
	if err != nil {
		return nil, err
	}
	return values, nil
}
