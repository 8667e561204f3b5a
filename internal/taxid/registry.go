package taxid

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RegistryClient verifies a 14-digit business identifier against an
// external company registry. Implementations should return a
// *ValidationError when the identifier is rejected and any other error
// only for failures the caller cannot present to the user.
type RegistryClient interface {
	Verify(ctx context.Context, cnpj string) error
}

// BrasilAPIClient verifies CNPJ numbers through the public BrasilAPI
// lookup endpoint. A single blocking GET per verification, no retry and
// no circuit breaking. A non-200 response means the identifier is
// rejected; a transport failure surfaces with its own reason since it
// says nothing about the identifier itself.
type BrasilAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBrasilAPIClient constructs a registry client. A nil httpClient
// falls back to http.DefaultClient.
func NewBrasilAPIClient(baseURL string, httpClient *http.Client) *BrasilAPIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BrasilAPIClient{baseURL: baseURL, httpClient: httpClient}
}

// Verify looks the CNPJ up in the registry. HTTP 200 means the
// identifier exists and is accepted.
func (c *BrasilAPIClient) Verify(ctx context.Context, cnpj string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/cnpj/v1/%s", c.baseURL, cnpj), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ValidationError{Reason: "Failed to validate the CNPJ."}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &ValidationError{Reason: "CNPJ is invalid or not found in the registry."}
	}
	return nil
}

var _ RegistryClient = (*BrasilAPIClient)(nil)
